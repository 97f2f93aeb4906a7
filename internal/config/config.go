package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/create-app/internal/branding"
	"github.com/agentx-labs/create-app/internal/pkgmgr"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Recognized configuration keys.
const (
	KeyTemplatePackage = "template_package"
	KeyType            = "type"
	KeyLanguage        = "language"
	KeyUseNpm          = "use_npm"
	KeyUsePnp          = "use_pnp"
	KeyRegistryHost    = "registry_host"
	KeyReservedNames   = "reserved_names"
	KeyStrictLanguages = "strict_languages"
	KeyLogLevel        = "log_level"
)

var knownKeys = []string{
	KeyTemplatePackage,
	KeyType,
	KeyLanguage,
	KeyUseNpm,
	KeyUsePnp,
	KeyRegistryHost,
	KeyReservedNames,
	KeyStrictLanguages,
	KeyLogLevel,
}

// Keys returns every recognized configuration key.
func Keys() []string {
	return append([]string(nil), knownKeys...)
}

// IsKnownKey reports whether key is a recognized configuration key.
func IsKnownKey(key string) bool {
	for _, k := range knownKeys {
		if k == key {
			return true
		}
	}
	return false
}

// Dir returns the path to the config directory (~/.create-app/).
func Dir() string {
	home, err := homedir.Dir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.create-app/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the config directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	LoadFile(FilePath())
}

// LoadFile is Load with an explicit config file path.
func LoadFile(path string) {
	viper.SetConfigFile(path)
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	setDefaults()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

func setDefaults() {
	viper.SetDefault(KeyTemplatePackage, branding.DefaultTemplatePackage())
	viper.SetDefault(KeyType, "web")
	viper.SetDefault(KeyLanguage, "javascript")
	viper.SetDefault(KeyUseNpm, false)
	viper.SetDefault(KeyUsePnp, false)
	viper.SetDefault(KeyRegistryHost, pkgmgr.DefaultRegistryHost)
	viper.SetDefault(KeyReservedNames, []string{})
	viper.SetDefault(KeyStrictLanguages, []string{"typescript"})
	viper.SetDefault(KeyLogLevel, "warn")
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value. Returns false if not set.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// GetStringSlice returns a list config value. Comma-separated strings, as
// supplied through environment variables, are split into their elements.
func GetStringSlice(key string) []string {
	raw := viper.GetStringSlice(key)
	var out []string
	for _, v := range raw {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}
	return SetFile(FilePath(), key, value)
}

// SetFile is Set with an explicit config file path.
func SetFile(configFile, key, value string) error {
	viper.Set(key, value)

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}
