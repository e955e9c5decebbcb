package config

import (
	"os"
	"path/filepath"
)

// UserConfigPath returns the path to the user-level config file:
// os.UserConfigDir()/changegov/config.yml (XDG compliant on Linux).
func UserConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "changegov", "config.yml"), nil
}

// ProjectConfigPath returns the project-level config file path, relative to
// the current directory.
func ProjectConfigPath() string {
	return filepath.Join(".changegov", "config.yml")
}

// ProjectConfigDir returns the project-level config directory.
func ProjectConfigDir() string {
	return ".changegov"
}

// LegacyProjectConfigPath returns the deprecated JSON project config path.
func LegacyProjectConfigPath() string {
	return filepath.Join(".changegov", "config.json")
}
