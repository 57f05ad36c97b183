package models

import "time"

// TrayInfo records the running tray instance.
// This corresponds to ~/.susops/tray.yaml.
type TrayInfo struct {
	Version   int       `yaml:"version"`
	PID       int       `yaml:"pid"`
	SusOpsBin string    `yaml:"susops_bin"`
	StartedAt time.Time `yaml:"started_at"`
}

// NewTrayInfo creates tray info with current values.
func NewTrayInfo(pid int, susopsBin string) *TrayInfo {
	return &TrayInfo{
		Version:   1,
		PID:       pid,
		SusOpsBin: susopsBin,
		StartedAt: time.Now().UTC(),
	}
}
