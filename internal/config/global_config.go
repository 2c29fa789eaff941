package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectConfigFile is the per-directory config file name.
const ProjectConfigFile = ".sreagent.yaml"

// UserConfigDir returns the directory holding the per-user configuration,
// ~/.config/sreagent.
func UserConfigDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", "sreagent"), nil
}

// UserConfigPath returns the per-user configuration file. A project
// .sreagent.yaml takes precedence over it.
func UserConfigPath() (string, error) {
	dir, err := UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}
