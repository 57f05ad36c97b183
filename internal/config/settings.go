package config

import (
	"fmt"
	"strconv"
	"sync/atomic"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/models"
)

// Keys of the tray settings inside config.yaml.
var (
	keyPACServerPort  = []string{"pac_server_port"}
	keyLogoStyle      = []string{"susops_app", "logo_style"}
	keyStopOnQuit     = []string{"susops_app", "stop_on_quit"}
	keyEphemeralPorts = []string{"susops_app", "ephemeral_ports"}
	keyMappingVersion = []string{"susops_app", "mapping_version"}
)

var validate = validator.New()

// LoadSettings reads the tray settings from the document at path.
// Absent or invalid values fall back to defaults. An unknown logo style is
// replaced with the default and written back to the file.
func LoadSettings(path string, logger zerolog.Logger) (*models.Settings, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}

	s := models.NewSettings()

	if raw, ok := doc.Get(keyPACServerPort...); ok {
		port, err := strconv.Atoi(raw)
		if err == nil && validate.Var(port, "min=1,max=65535") == nil {
			s.PACServerPort = port
		} else {
			logger.Warn().Str("value", raw).Msg("invalid pac_server_port, using default")
		}
	}

	if raw, ok := doc.Get(keyLogoStyle...); ok {
		style, ok := models.LookupLogoStyle(raw)
		if !ok {
			logger.Warn().Str("value", raw).Msg("unknown logo style, resetting to default")
			if err := doc.Set(string(models.DefaultLogoStyle), keyLogoStyle...); err != nil {
				return nil, err
			}
			if err := doc.Save(); err != nil {
				return nil, fmt.Errorf("failed to persist default logo style: %w", err)
			}
		} else {
			s.LogoStyle = style
		}
	}

	if raw, ok := doc.Get(keyStopOnQuit...); ok {
		s.StopOnQuit = parseFlag(raw)
	}
	if raw, ok := doc.Get(keyEphemeralPorts...); ok {
		s.EphemeralPorts = parseFlag(raw)
	}
	if raw, ok := doc.Get(keyMappingVersion...); ok {
		v, err := strconv.Atoi(raw)
		if err == nil && v >= 1 {
			s.MappingVersion = v
		} else {
			logger.Warn().Str("value", raw).Msg("invalid mapping_version, using default")
		}
	}

	return s, nil
}

// SaveSettings validates s and writes it into the document at path.
func SaveSettings(path string, s *models.Settings) error {
	if err := validate.Struct(s); err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	doc, err := LoadDocument(path)
	if err != nil {
		return err
	}
	updates := []struct {
		keys  []string
		value string
	}{
		{keyPACServerPort, strconv.Itoa(s.PACServerPort)},
		{keyLogoStyle, string(s.LogoStyle)},
		{keyStopOnQuit, formatFlag(s.StopOnQuit)},
		{keyEphemeralPorts, formatFlag(s.EphemeralPorts)},
	}
	for _, u := range updates {
		if err := doc.Set(u.value, u.keys...); err != nil {
			return err
		}
	}
	return doc.Save()
}

func parseFlag(raw string) bool {
	switch raw {
	case "1", "true", "yes", "on":
		return true
	default:
		return false
	}
}

func formatFlag(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// SettingsStore publishes the current settings snapshot. Snapshots are
// swapped atomically and never mutated after publication.
type SettingsStore struct {
	path string
	log  zerolog.Logger
	cur  atomic.Pointer[models.Settings]
}

// NewSettingsStore creates a store backed by the config file at path and
// loads the initial snapshot.
func NewSettingsStore(path string, logger zerolog.Logger) (*SettingsStore, error) {
	st := &SettingsStore{
		path: path,
		log:  logger.With().Str("module", "settings").Logger(),
	}
	if _, err := st.Reload(); err != nil {
		return nil, err
	}
	return st, nil
}

// Path returns the backing config file.
func (st *SettingsStore) Path() string {
	return st.path
}

// Current returns the published snapshot.
func (st *SettingsStore) Current() *models.Settings {
	return st.cur.Load()
}

// Reload reads the file again and publishes a fresh snapshot.
func (st *SettingsStore) Reload() (*models.Settings, error) {
	s, err := LoadSettings(st.path, st.log)
	if err != nil {
		return nil, err
	}
	st.cur.Store(s)
	st.log.Debug().
		Int("pac_server_port", s.PACServerPort).
		Str("logo_style", string(s.LogoStyle)).
		Bool("stop_on_quit", s.StopOnQuit).
		Bool("ephemeral_ports", s.EphemeralPorts).
		Msg("settings loaded")
	return s, nil
}

// Save persists s and publishes it as the current snapshot.
func (st *SettingsStore) Save(s *models.Settings) error {
	if err := SaveSettings(st.path, s); err != nil {
		return err
	}
	st.cur.Store(s)
	return nil
}

// Preview publishes s without persisting it, e.g. while a style is being
// tried out. The next Reload discards it.
func (st *SettingsStore) Preview(s *models.Settings) {
	st.cur.Store(s)
}
