package manifest

import "testing"

func TestValidate(t *testing.T) {
	tests := []struct {
		name  string
		doc   string
		valid bool
		path  string
	}{
		{"empty object", `{}`, true, ""},
		{"full manifest", `{"scripts":{"start":"yarn dev"},"dependencies":{"a":"1"},"devDependencies":{"b":"*"}}`, true, ""},
		{"extra keys allowed", `{"eslintConfig":{"extends":"app"}}`, true, ""},
		{"non-object root", `[]`, false, ""},
		{"scripts not object", `{"scripts":"npm start"}`, false, "/scripts"},
		{"dependency not string", `{"dependencies":{"a":true}}`, false, "/dependencies/a"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate([]byte(tt.doc))
			if err != nil {
				t.Fatalf("Validate error: %v", err)
			}
			if result.Valid != tt.valid {
				t.Fatalf("Valid = %v, want %v (issues: %v)", result.Valid, tt.valid, result.Messages())
			}
			if tt.valid {
				return
			}
			if len(result.Issues) == 0 {
				t.Fatal("expected at least one issue")
			}
			if tt.path == "" {
				return
			}
			found := false
			for _, issue := range result.Issues {
				if issue.Path == tt.path {
					found = true
				}
			}
			if !found {
				t.Errorf("no issue at %s: %v", tt.path, result.Messages())
			}
		})
	}
}

func TestValidateMalformedJSON(t *testing.T) {
	if _, err := Validate([]byte(`{"scripts":`)); err == nil {
		t.Error("expected error for malformed JSON")
	}
}

func TestValidateFile(t *testing.T) {
	dir := t.TempDir()
	path := dir + "/template.json"
	writeFile(t, path, `{"devDependencies":{"foo":1}}`)

	result, err := ValidateFile(path)
	if err != nil {
		t.Fatalf("ValidateFile error: %v", err)
	}
	if result.Valid {
		t.Error("expected invalid result")
	}

	if _, err := ValidateFile(dir + "/missing.json"); err == nil {
		t.Error("expected error for missing file")
	}
}
