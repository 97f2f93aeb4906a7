package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "create-app" {
		t.Errorf("CLIName() = %q, want %q", got, "create-app")
	}
	if got := DefaultTemplatePackage(); got == "" {
		t.Error("DefaultTemplatePackage() should not be empty")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("log_level"); got != "CREATE_APP_LOG_LEVEL" {
		t.Errorf("EnvVar(log_level) = %q, want %q", got, "CREATE_APP_LOG_LEVEL")
	}
}
