package cli

import (
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config holds user-level CLI settings loaded from the config file.
// Flags take precedence over config values, which take precedence over the
// built-in defaults.
type Config struct {
	// Verbose enables debug-level logging without passing --verbose.
	Verbose bool `toml:"verbose"`
	// CacheDir overrides the XDG cache directory.
	CacheDir string `toml:"cache_dir"`
	// NoCache disables the validation report cache entirely.
	NoCache bool `toml:"no_cache"`
	// ServeAddr is the default listen address for the serve command.
	ServeAddr string `toml:"serve_addr"`
}

// DefaultConfig returns the built-in defaults.
func DefaultConfig() Config {
	return Config{
		ServeAddr: "localhost:8080",
	}
}

// configPath returns the config file location, following the XDG convention
// (~/.config/gltfkit/config.toml).
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// LoadConfig reads the config file at path. Fields absent from the file keep
// their defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// LoadConfigOrDefault reads the standard config file, falling back to
// defaults when it is missing or unreadable. A broken config file should
// never prevent the CLI from running.
func LoadConfigOrDefault() Config {
	path, err := configPath()
	if err != nil {
		return DefaultConfig()
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		return DefaultConfig()
	}
	return cfg
}
