// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package before building; Go's
// //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName                string `yaml:"cli_name"`
	DisplayName            string `yaml:"display_name"`
	Description            string `yaml:"description"`
	HomeDir                string `yaml:"home_dir"`
	EnvPrefix              string `yaml:"env_prefix"`
	GoModule               string `yaml:"go_module"`
	DefaultTemplatePackage string `yaml:"default_template_package"`
}

func load() {
	once.Do(func() {
		// Set hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:                "create-app",
			DisplayName:            "Create App",
			Description:            "Scaffold a new project from a template package",
			HomeDir:                ".create-app",
			EnvPrefix:              "CREATE_APP",
			GoModule:               "github.com/agentx-labs/create-app",
			DefaultTemplatePackage: "create-app-templates",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-app").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".create-app").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_APP").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// GoModule returns the Go module path. Not consumed at runtime.
func GoModule() string { load(); return defaults.GoModule }

// DefaultTemplatePackage returns the template package used when neither the
// --template flag nor the template_package config key is set.
func DefaultTemplatePackage() string { load(); return defaults.DefaultTemplatePackage }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("HOME") → "CREATE_APP_HOME".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
