package config

import (
	"os"
	"syscall"

	"github.com/susops/susops-tray/internal/models"
)

// LoadTrayInfo loads the running instance info from ~/.susops/tray.yaml.
// Returns nil if the file doesn't exist.
func LoadTrayInfo() (*models.TrayInfo, error) {
	path, err := GlobalTrayFile()
	if err != nil {
		return nil, err
	}

	if !FileExists(path) {
		return nil, nil
	}

	var info models.TrayInfo
	if err := LoadYAML(path, &info); err != nil {
		return nil, err
	}
	return &info, nil
}

// SaveTrayInfo saves the instance info to ~/.susops/tray.yaml.
func SaveTrayInfo(info *models.TrayInfo) error {
	if err := EnsureGlobalDir(); err != nil {
		return err
	}

	path, err := GlobalTrayFile()
	if err != nil {
		return err
	}
	return SaveYAML(path, info)
}

// RemoveTrayInfo removes the tray.yaml file.
func RemoveTrayInfo() error {
	path, err := GlobalTrayFile()
	if err != nil {
		return err
	}

	if !FileExists(path) {
		return nil
	}
	return os.Remove(path)
}

// IsTrayRunning checks if another tray instance is alive.
// Returns true if tray.yaml exists and the PID is alive.
func IsTrayRunning() (bool, *models.TrayInfo, error) {
	info, err := LoadTrayInfo()
	if err != nil {
		return false, nil, err
	}
	if info == nil {
		return false, nil, nil
	}

	process, err := os.FindProcess(info.PID)
	if err != nil {
		// On Unix, FindProcess always succeeds
		return false, info, nil
	}

	// Send signal 0 to check if process exists
	if err := process.Signal(syscall.Signal(0)); err != nil {
		// Process doesn't exist, clean up stale file
		_ = RemoveTrayInfo()
		return false, info, nil
	}

	return true, info, nil
}
