// Package config handles XDG configuration directory and file paths.
package config

import (
	"os"
	"path/filepath"
)

const (
	// AppName is the application directory name.
	AppName = "taskboard"

	// TokenFile is the stored session token filename.
	TokenFile = "token.json"

	// UserFile is the cached user profile filename.
	UserFile = "user.json"

	// TasksFile is the offline task collection filename.
	TasksFile = "tasks.json"

	// DefaultBaseURL is used when TASKBOARD_API_URL is not set.
	DefaultBaseURL = "http://localhost:8080/api"

	// BaseURLEnv is the environment variable overriding the API base URL.
	BaseURLEnv = "TASKBOARD_API_URL"
)

// Config holds configuration paths and settings.
type Config struct {
	// Dir is the configuration directory path.
	Dir string

	// BaseURL is the remote API base URL.
	BaseURL string

	// Offline selects the local-only task store (no remote backing).
	Offline bool

	// Debug enables debug logging.
	Debug bool

	// Quiet suppresses informational output.
	Quiet bool
}

// New creates a new Config with the default or specified config directory.
// If configDir is empty, uses XDG_CONFIG_HOME/taskboard or
// $HOME/.config/taskboard. The API base URL comes from TASKBOARD_API_URL
// when set.
func New(configDir string) (*Config, error) {
	dir := configDir
	if dir == "" {
		dir = DefaultConfigDir()
	}
	base := os.Getenv(BaseURLEnv)
	if base == "" {
		base = DefaultBaseURL
	}
	return &Config{Dir: dir, BaseURL: base}, nil
}

// DefaultConfigDir returns the default configuration directory.
// Uses XDG_CONFIG_HOME if set, otherwise $HOME/.config.
func DefaultConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, AppName)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		// Fallback to current directory if home can't be determined
		return AppName
	}
	return filepath.Join(home, ".config", AppName)
}

// TokenPath returns the path to the stored token file.
func (c *Config) TokenPath() string {
	return filepath.Join(c.Dir, TokenFile)
}

// UserPath returns the path to the cached user profile file.
func (c *Config) UserPath() string {
	return filepath.Join(c.Dir, UserFile)
}

// TasksPath returns the path to the offline task collection file.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Dir, TasksFile)
}

// EnsureDir creates the config directory if it doesn't exist.
// Directory is created with mode 0700.
func (c *Config) EnsureDir() error {
	return os.MkdirAll(c.Dir, 0700)
}

// HasToken checks if the token file exists.
func (c *Config) HasToken() bool {
	_, err := os.Stat(c.TokenPath())
	return err == nil
}
