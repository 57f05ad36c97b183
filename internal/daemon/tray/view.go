package tray

import (
	"sync"

	"github.com/getlantern/systray"

	"github.com/susops/susops-tray/internal/daemon/monitor"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/models"
)

// item is the part of *systray.MenuItem the view drives.
type item interface {
	SetTitle(string)
	Enable()
	Disable()
	Check()
	Uncheck()
}

// surface is the tray icon itself.
type surface interface {
	SetIcon([]byte)
	SetTooltip(string)
}

type systraySurface struct{}

func (systraySurface) SetIcon(b []byte)    { systray.SetIcon(b) }
func (systraySurface) SetTooltip(s string) { systray.SetTooltip(s) }

// menu holds the items whose look depends on the state or the settings.
type menu struct {
	status         item
	actions        map[state.Action]item
	styles         map[models.LogoStyle]item
	stopOnQuit     item
	ephemeralPorts item
}

// View renders frames into the tray. Frames applied before the menu exists
// are kept and rendered once it is built.
type View struct {
	mu       sync.Mutex
	surface  surface
	menu     *menu
	frame    *monitor.Frame
	settings *models.Settings
}

// NewView creates a view drawing into the system tray.
func NewView() *View {
	return &View{surface: systraySurface{}}
}

// Apply implements monitor.View.
func (v *View) Apply(f monitor.Frame) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.frame = &f
	if v.menu != nil {
		v.renderFrame()
	}
}

// SyncSettings updates the settings checkboxes.
func (v *View) SyncSettings(s *models.Settings) {
	if s == nil {
		return
	}
	v.mu.Lock()
	defer v.mu.Unlock()
	v.settings = s
	if v.menu != nil {
		v.renderSettings()
	}
}

func (v *View) bind(m *menu) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.menu = m
	if v.frame != nil {
		v.renderFrame()
	} else {
		v.renderBindings(state.BindingsFor(state.Initial))
	}
	if v.settings != nil {
		v.renderSettings()
	}
}

func (v *View) renderFrame() {
	f := v.frame
	if len(f.Icon) > 0 {
		v.surface.SetIcon(f.Icon)
	}
	v.surface.SetTooltip(f.Tooltip)
	v.menu.status.SetTitle(f.Title)
	v.renderBindings(f.Bindings)
	for style, it := range v.menu.styles {
		setChecked(it, style == f.Style)
	}
}

func (v *View) renderBindings(b state.Bindings) {
	for _, a := range state.Actions() {
		it, ok := v.menu.actions[a]
		if !ok {
			continue
		}
		if b.Enabled(a) {
			it.Enable()
		} else {
			it.Disable()
		}
	}
}

func (v *View) renderSettings() {
	setChecked(v.menu.stopOnQuit, v.settings.StopOnQuit)
	setChecked(v.menu.ephemeralPorts, v.settings.EphemeralPorts)
}

func setChecked(it item, on bool) {
	if it == nil {
		return
	}
	if on {
		it.Check()
	} else {
		it.Uncheck()
	}
}
