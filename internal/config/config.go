// Package config loads optional defaults for the command layer from
// ~/.sapgui-cli/config.yaml. A missing file is not an error: commands fall
// back to their flag defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config holds the file-backed defaults.
type Config struct {
	// Server is the default connection description.
	Server string `yaml:"server,omitempty"`
	// Path is the frontend executable to launch when none is running.
	Path string `yaml:"path,omitempty"`
	// SessionTimeoutSec overrides the session-discovery deadline.
	SessionTimeoutSec int `yaml:"session_timeout_sec,omitempty"`
}

// DefaultFile returns the per-user config file path.
func DefaultFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".sapgui-cli", "config.yaml")
}

// Load reads the config at path. An empty path selects DefaultFile; a
// missing file yields a zero Config.
func Load(path string) (Config, error) {
	if path == "" {
		path = DefaultFile()
	}

	var cfg Config
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
