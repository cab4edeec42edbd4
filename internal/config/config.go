// Package config loads the client configuration file and resolves the
// config directory.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// AppName is the configuration directory name.
	AppName = "todo-client"

	// FileName is the config file inside the config directory.
	FileName = "config.toml"

	// TokenFileName is the stored credential filename.
	TokenFileName = "credentials.json"

	// LogFileName receives debug logs while the TUI owns the terminal.
	LogFileName = "client.log"
)

// Default values.
const (
	DefaultServerURL      = "http://localhost:8080/api"
	DefaultTimeoutSeconds = 10
	DefaultTheme          = "classic"
)

// Config holds the client settings.
type Config struct {
	ServerURL      string `toml:"server_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	Theme          string `toml:"theme"`
	Debug          bool   `toml:"debug"`

	// Dir is the resolved config directory (computed, not in the file).
	Dir string `toml:"-"`
}

// Load reads dir/config.toml, applying defaults for anything unset.
// A missing file is not an error. If dir is empty the default XDG
// directory is used.
func Load(dir string) (*Config, error) {
	if dir == "" {
		dir = DefaultDir()
	}
	cfg := &Config{
		ServerURL:      DefaultServerURL,
		TimeoutSeconds: DefaultTimeoutSeconds,
		Theme:          DefaultTheme,
		Dir:            dir,
	}

	path := filepath.Join(dir, FileName)
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	if cfg.TimeoutSeconds <= 0 {
		cfg.TimeoutSeconds = DefaultTimeoutSeconds
	}
	return cfg, nil
}

// DefaultDir returns XDG_CONFIG_HOME/todo-client, or $HOME/.config/todo-client.
func DefaultDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// Timeout returns the per-request timeout.
func (c *Config) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// TokenPath returns the path to the stored credential file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFileName)
}

// LogPath returns the path to the debug log file.
func (c *Config) LogPath() string {
	return filepath.Join(c.Dir, LogFileName)
}

// EnsureDir creates the config directory with owner-only mode.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0o700)
}
