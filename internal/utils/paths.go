package utils

import (
	"os"
	"path/filepath"
)

const (
	stateDirName     = ".prefect-manager"
	prefectDirName   = ".prefect"
	activeConfigName = "config.toml"
	fallbackEditor   = "nano"
)

// DefaultStateDir returns ~/.prefect-manager, where the account registry and
// the config templates live.
func DefaultStateDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, stateDirName), nil
}

// DefaultActiveConfigPath returns the config file the prefect CLI reads at
// runtime.
func DefaultActiveConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, prefectDirName, activeConfigName), nil
}

// DefaultEditor prefers $VISUAL, then $EDITOR, then nano.
func DefaultEditor() string {
	for _, key := range []string{"VISUAL", "EDITOR"} {
		if v := os.Getenv(key); v != "" {
			return v
		}
	}
	return fallbackEditor
}
