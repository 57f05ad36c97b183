// Package config handles configuration loading, saving, and path management.
package config

import (
	"os"
	"path/filepath"
)

const (
	// GlobalDirName is the name of the SusOps workspace directory.
	GlobalDirName = ".susops"
)

// File names
const (
	ConfigFileName = "config.yaml"
	TrayFileName   = "tray.yaml"
)

// EnvHome overrides the workspace directory (used by tests and the CLI's own
// SUSOPS_WORKSPACE convention).
const EnvHome = "SUSOPS_WORKSPACE"

// GlobalDir returns the path to the SusOps workspace (~/.susops/).
func GlobalDir() (string, error) {
	if dir := os.Getenv(EnvHome); dir != "" {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, GlobalDirName), nil
}

// GlobalConfigFile returns the path to the config.yaml shared with the CLI.
func GlobalConfigFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, ConfigFileName), nil
}

// GlobalTrayFile returns the path to the tray.yaml instance file.
func GlobalTrayFile() (string, error) {
	dir, err := GlobalDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TrayFileName), nil
}

// EnsureGlobalDir creates the workspace directory if it doesn't exist.
func EnsureGlobalDir() error {
	dir, err := GlobalDir()
	if err != nil {
		return err
	}
	return os.MkdirAll(dir, 0755)
}
