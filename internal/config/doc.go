// Package config manages user-level settings stored at ~/.create-app/config.yaml.
// Values can be overridden with CREATE_APP_* environment variables and are in
// turn overridden by explicit command-line flags. Keys cover the default
// template package, project type and language, package-manager preferences,
// the registry host used for the online probe, and the log level.
package config
