// Package config loads application configuration from an optional YAML
// file layered under KEYVAULT_* environment variables. Environment values
// win over file values; both win over the built-in defaults.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Backend names accepted by Config.Backend.
const (
	BackendKeychain = "keychain"
	BackendVault    = "vault"
)

// configFileName is looked up under ~/.config and the working directory
// when no explicit path is given.
const configFileName = "keyvault.yaml"

// Config holds the application configuration.
type Config struct {
	Service     string `yaml:"service"`      // default service namespace for CLI identities
	Backend     string `yaml:"backend"`      // "keychain" or "vault"
	VaultPath   string `yaml:"vault_path"`   // vault database location, vault backend only
	EnvOverride bool   `yaml:"env_override"` // consult the environment before the backend
	LogLevel    string `yaml:"log_level"`    // debug, info, warn, or error
}

// Load returns a validated Config. An explicit non-empty path must exist
// and parse; with an empty path the usual locations are tried and a
// missing file just means defaults plus environment.
func Load(path string) (*Config, error) {
	cfg := &Config{
		Service:     "keyvault",
		Backend:     BackendKeychain,
		VaultPath:   defaultVaultPath(),
		EnvOverride: false,
		LogLevel:    "info",
	}

	explicit := path != ""
	if !explicit {
		path = resolveConfigPath()
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			if explicit {
				return nil, fmt.Errorf("read config %s: %w", path, err)
			}
		} else if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SlogLevel maps the configured log level onto slog's levels.
func (c *Config) SlogLevel() (slog.Level, error) {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return 0, fmt.Errorf("log_level must be debug, info, warn, or error, got %q", c.LogLevel)
}

// resolveConfigPath returns the first config file that exists among
// ~/.config/keyvault.yaml and ./keyvault.yaml, or "" when neither does.
func resolveConfigPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, ".config", configFileName)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	if _, err := os.Stat(configFileName); err == nil {
		return configFileName
	}
	return ""
}

// defaultVaultPath places the vault database under the user's data
// directory, falling back to the working directory when no home resolves.
func defaultVaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "keyvault.db"
	}
	return filepath.Join(home, ".local", "share", "keyvault", "vault.db")
}

// applyEnv layers KEYVAULT_* environment variables over cfg.
func applyEnv(cfg *Config) error {
	if v, ok := os.LookupEnv("KEYVAULT_SERVICE"); ok && v != "" {
		cfg.Service = v
	}
	if v, ok := os.LookupEnv("KEYVAULT_BACKEND"); ok && v != "" {
		cfg.Backend = v
	}
	if v, ok := os.LookupEnv("KEYVAULT_VAULT_PATH"); ok && v != "" {
		cfg.VaultPath = v
	}
	if v, ok := os.LookupEnv("KEYVAULT_ENV_OVERRIDE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("KEYVAULT_ENV_OVERRIDE has invalid boolean %q: %w", v, err)
		}
		cfg.EnvOverride = b
	}
	if v, ok := os.LookupEnv("KEYVAULT_LOG_LEVEL"); ok && v != "" {
		cfg.LogLevel = v
	}
	return nil
}

// validate fails fast on values no component could act on.
func validate(cfg *Config) error {
	switch cfg.Backend {
	case BackendKeychain, BackendVault:
	default:
		return fmt.Errorf("backend must be %q or %q, got %q", BackendKeychain, BackendVault, cfg.Backend)
	}

	if cfg.Backend == BackendVault && cfg.VaultPath == "" {
		return fmt.Errorf("vault_path must be set for the %q backend", BackendVault)
	}

	if cfg.Service == "" {
		return fmt.Errorf("service must not be empty")
	}

	if _, err := cfg.SlogLevel(); err != nil {
		return err
	}
	return nil
}
