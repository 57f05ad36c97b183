// Package monitor keeps the UI in step with the proxy state: it probes the
// CLI on a schedule, classifies the result and reconciles the view.
package monitor

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/susops/susops-tray/internal/appearance"
	"github.com/susops/susops-tray/internal/assets"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
)

// Frame is everything a view shows for one state. Views apply a frame as a
// whole so the icon, title and actions never disagree.
type Frame struct {
	State      state.ProcessState
	Style      models.LogoStyle
	Appearance appearance.Appearance
	Icon       []byte
	IconPath   string
	Title      string
	Tooltip    string
	Bindings   state.Bindings
}

// View renders frames. Apply must be idempotent.
type View interface {
	Apply(Frame)
}

// Views fans a frame out to several views in order.
type Views []View

// Apply implements View.
func (vs Views) Apply(f Frame) {
	for _, v := range vs {
		v.Apply(f)
	}
}

// SettingsSource provides the current settings snapshot.
type SettingsSource interface {
	Current() *models.Settings
}

// Reconciler turns a state into a Frame and applies it to a View.
type Reconciler struct {
	view     View
	settings SettingsSource
	detector appearance.Detector
	log      zerolog.Logger

	mu        sync.Mutex
	lastStyle models.LogoStyle
	lastLook  appearance.Appearance
}

// NewReconciler creates a reconciler. detector may be nil (always light).
func NewReconciler(view View, settings SettingsSource, detector appearance.Detector, logger zerolog.Logger) *Reconciler {
	if detector == nil {
		detector = appearance.Static(appearance.Light)
	}
	return &Reconciler{
		view:     view,
		settings: settings,
		detector: detector,
		log:      logger.With().Str("module", "reconciler").Logger(),
	}
}

// Prepare builds the frame for s without touching the view.
func (r *Reconciler) Prepare(s state.ProcessState) (Frame, error) {
	style := models.DefaultLogoStyle
	if cur := r.settings.Current(); cur != nil {
		style = cur.LogoStyle
	}
	icon := assets.Icon{Style: style, State: s, Appearance: r.detector.Current()}

	data, err := icon.Load()
	if err != nil {
		return Frame{}, fmt.Errorf("prepare frame for %v: %w", s, err)
	}

	return Frame{
		State:      s,
		Style:      icon.Style,
		Appearance: icon.Appearance,
		Icon:       data,
		IconPath:   icon.Path(),
		Title:      "Status: " + s.Title(),
		Tooltip:    "SusOps: " + s.Title(),
		Bindings:   state.BindingsFor(s),
	}, nil
}

// Apply hands a prepared frame to the view.
func (r *Reconciler) Apply(f Frame) {
	r.mu.Lock()
	r.lastStyle, r.lastLook = f.Style, f.Appearance
	r.mu.Unlock()

	r.view.Apply(f)
	r.log.Debug().Str("state", f.State.String()).Str("icon", f.IconPath).Msg("view reconciled")
}

// Reconcile brings the view in line with next. Nothing is applied if the
// frame cannot be built.
func (r *Reconciler) Reconcile(old, next state.ProcessState) error {
	f, err := r.Prepare(next)
	if err != nil {
		return err
	}
	if old != next {
		r.log.Info().Str("from", old.String()).Str("to", next.String()).Msg("state changed")
	}
	r.Apply(f)
	return nil
}

// Stale reports whether the icon on screen no longer matches the current
// appearance or logo style.
func (r *Reconciler) Stale() bool {
	style := models.DefaultLogoStyle
	if cur := r.settings.Current(); cur != nil {
		style = cur.LogoStyle
	}
	look := r.detector.Current()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastStyle != style || r.lastLook != look
}
