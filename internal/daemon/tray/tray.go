// Package tray is the menu bar front end. It renders monitor frames into a
// systray menu and routes menu clicks to the action dispatcher.
package tray

import (
	"context"
	"errors"

	"github.com/getlantern/systray"
	"github.com/rs/zerolog"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/susops/susops-tray/internal/daemon/actions"
	"github.com/susops/susops-tray/internal/daemon/state"
	"github.com/susops/susops-tray/internal/dialog"
	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

// Project links listed under About.
var links = []struct{ title, url string }{
	{"GitHub", "https://github.com/mashb1t/susops-mac"},
	{"CLI", "https://github.com/mashb1t/susops-cli"},
	{"Sponsor", "https://github.com/sponsors/mashb1t"},
	{"Report a Bug", "https://github.com/mashb1t/susops-mac/issues/new"},
}

// App is what the tray needs to act on clicks.
type App struct {
	Ctx      context.Context
	View     *View
	Actions  *actions.Dispatcher
	Settings actions.Settings
	Version  string
	Log      zerolog.Logger
}

var (
	app     App
	onStart func()
	onExit  func()

	statusItem *systray.MenuItem

	settingsStopOnQuit *systray.MenuItem
	settingsEphemeral  *systray.MenuItem
	settingsPACPort    *systray.MenuItem
	styleItems         = map[models.LogoStyle]*systray.MenuItem{}

	addConnection    *systray.MenuItem
	addDomain        *systray.MenuItem
	addLocalForward  *systray.MenuItem
	addRemoteForward *systray.MenuItem

	rmConnection    *systray.MenuItem
	rmDomain        *systray.MenuItem
	rmLocalForward  *systray.MenuItem
	rmRemoteForward *systray.MenuItem

	listItem       *systray.MenuItem
	openConfigItem *systray.MenuItem

	actionItems = map[state.Action]*systray.MenuItem{}
	showStatus  *systray.MenuItem

	browserItems = map[actions.Browser]*systray.MenuItem{}

	resetItem *systray.MenuItem
	linkItems []*systray.MenuItem
	quitItem  *systray.MenuItem
)

// Run starts the system tray. This blocks the calling goroutine (must be main).
// onStartFn is called once the menu exists (start polling here).
// onExitFn is called when the tray exits (cleanup here).
func Run(a App, onStartFn, onExitFn func()) {
	if a.Ctx == nil {
		a.Ctx = context.Background()
	}
	app = a
	onStart = onStartFn
	onExit = onExitFn
	systray.Run(onReady, onQuit)
}

// Quit signals the tray to exit.
func Quit() {
	systray.Quit()
}

func onReady() {
	systray.SetTooltip("SusOps")

	statusItem = systray.AddMenuItem("Status: "+state.Initial.Title(), "")
	statusItem.Disable()

	systray.AddSeparator()

	settings := systray.AddMenuItem("Settings", "")
	settingsStopOnQuit = settings.AddSubMenuItemCheckbox("Stop Proxy on Quit", "", false)
	settingsEphemeral = settings.AddSubMenuItemCheckbox("Ephemeral Ports", "Pick new ports on every start", false)
	settingsPACPort = settings.AddSubMenuItem("PAC Server Port…", "")
	logo := settings.AddSubMenuItem("Logo Style", "")
	for _, style := range models.LogoStyles() {
		styleItems[style] = logo.AddSubMenuItemCheckbox(titleCase(style.Label()), "", false)
	}

	systray.AddSeparator()

	add := systray.AddMenuItem("Add", "")
	addConnection = add.AddSubMenuItem("Connection…", "")
	addDomain = add.AddSubMenuItem("Domain…", "")
	addLocalForward = add.AddSubMenuItem("Local Forward…", "")
	addRemoteForward = add.AddSubMenuItem("Remote Forward…", "")

	rm := systray.AddMenuItem("Remove", "")
	rmConnection = rm.AddSubMenuItem("Connection…", "")
	rmDomain = rm.AddSubMenuItem("Domain…", "")
	rmLocalForward = rm.AddSubMenuItem("Local Forward…", "")
	rmRemoteForward = rm.AddSubMenuItem("Remote Forward…", "")

	listItem = systray.AddMenuItem("List All", "Show every domain and forward")
	openConfigItem = systray.AddMenuItem("Open Config File", "")

	systray.AddSeparator()

	for _, a := range []state.Action{state.ActionStart, state.ActionStop, state.ActionRestart} {
		actionItems[a] = systray.AddMenuItem(a.Label(), "")
	}

	systray.AddSeparator()

	showStatus = systray.AddMenuItem("Show Status", "")
	test := systray.AddMenuItem("Test", "")
	for _, a := range []state.Action{state.ActionTestAny, state.ActionTestAll} {
		actionItems[a] = test.AddSubMenuItem(a.Label(), "")
	}
	browser := systray.AddMenuItem("Launch Browser", "")
	for _, b := range actions.Browsers() {
		browserItems[b] = browser.AddSubMenuItem(b.Label(), "")
	}

	systray.AddSeparator()

	resetItem = systray.AddMenuItem("Reset All", "Stop SusOps and remove all of its configs")
	about := systray.AddMenuItem("About", "")
	version := about.AddSubMenuItem("SusOps "+app.Version, "")
	version.Disable()
	for _, l := range links {
		linkItems = append(linkItems, about.AddSubMenuItem(l.title, l.url))
	}
	quitItem = systray.AddMenuItem("Quit", "Quit SusOps")

	m := &menu{
		status:         statusItem,
		actions:        make(map[state.Action]item, len(actionItems)),
		styles:         make(map[models.LogoStyle]item, len(styleItems)),
		stopOnQuit:     settingsStopOnQuit,
		ephemeralPorts: settingsEphemeral,
	}
	for a, it := range actionItems {
		m.actions[a] = it
	}
	for s, it := range styleItems {
		m.styles[s] = it
	}
	app.View.bind(m)
	app.View.SyncSettings(app.Settings.Current())

	if onStart != nil {
		onStart()
	}

	go handleClicks()
}

func onQuit() {
	if onExit != nil {
		onExit()
	}
}

// handleClicks runs one action at a time. Dialogs are modal, so clicks made
// while one is open are dropped by systray.
func handleClicks() {
	ctx := app.Ctx
	d := app.Actions
	for {
		select {
		case <-ctx.Done():
			return

		case <-settingsStopOnQuit.ClickedCh:
			syncAfter(d.SetStopOnQuit(!settingsStopOnQuit.Checked()))
		case <-settingsEphemeral.ClickedCh:
			syncAfter(d.SetEphemeralPorts(ctx, !settingsEphemeral.Checked()))
		case <-settingsPACPort.ClickedCh:
			syncAfter(d.PACServerPortDialog(ctx))
		case <-styleItems[models.LogoStyleGear].ClickedCh:
			syncAfter(d.SetLogoStyle(models.LogoStyleGear))
		case <-styleItems[models.LogoStyleColoredGlasses].ClickedCh:
			syncAfter(d.SetLogoStyle(models.LogoStyleColoredGlasses))
		case <-styleItems[models.LogoStyleColoredS].ClickedCh:
			syncAfter(d.SetLogoStyle(models.LogoStyleColoredS))

		case <-addConnection.ClickedCh:
			logDialog(d.AddConnectionDialog(ctx))
		case <-addDomain.ClickedCh:
			logDialog(d.AddDomainDialog(ctx))
		case <-addLocalForward.ClickedCh:
			logDialog(d.AddLocalForwardDialog(ctx))
		case <-addRemoteForward.ClickedCh:
			logDialog(d.AddRemoteForwardDialog(ctx))

		case <-rmConnection.ClickedCh:
			logDialog(d.RemoveConnectionDialog(ctx))
		case <-rmDomain.ClickedCh:
			logDialog(d.RemoveDomainDialog(ctx))
		case <-rmLocalForward.ClickedCh:
			logDialog(d.RemoveLocalForwardDialog(ctx))
		case <-rmRemoteForward.ClickedCh:
			logDialog(d.RemoveRemoteForwardDialog(ctx))

		case <-listItem.ClickedCh:
			d.List(ctx)
		case <-openConfigItem.ClickedCh:
			d.OpenConfig(ctx)

		case <-actionItems[state.ActionStart].ClickedCh:
			d.Start(ctx)
		case <-actionItems[state.ActionStop].ClickedCh:
			d.Stop(ctx)
		case <-actionItems[state.ActionRestart].ClickedCh:
			d.Restart(ctx)
		case <-actionItems[state.ActionTestAny].ClickedCh:
			logDialog(d.TestDialog(ctx))
		case <-actionItems[state.ActionTestAll].ClickedCh:
			d.TestAll(ctx)
		case <-showStatus.ClickedCh:
			d.Status(ctx)

		case <-browserItems[actions.BrowserChrome].ClickedCh:
			d.Launch(ctx, actions.BrowserChrome)
		case <-browserItems[actions.BrowserChromeProxySettings].ClickedCh:
			d.Launch(ctx, actions.BrowserChromeProxySettings)
		case <-browserItems[actions.BrowserFirefox].ClickedCh:
			d.Launch(ctx, actions.BrowserFirefox)

		case <-resetItem.ClickedCh:
			if d.Reset(ctx) {
				app.View.SyncSettings(app.Settings.Current())
			}

		case <-linkItems[0].ClickedCh:
			openLink(ctx, links[0].url)
		case <-linkItems[1].ClickedCh:
			openLink(ctx, links[1].url)
		case <-linkItems[2].ClickedCh:
			openLink(ctx, links[2].url)
		case <-linkItems[3].ClickedCh:
			openLink(ctx, links[3].url)

		case <-quitItem.ClickedCh:
			app.Log.Info().Msg("quit requested from menu")
			d.Quit(ctx)
			systray.Quit()
			return
		}
	}
}

// syncAfter redraws the settings checkboxes after a settings change. Failed
// saves were already reported to the user.
func syncAfter(_ *models.Settings, err error) {
	if err != nil {
		app.Log.Debug().Err(err).Msg("settings unchanged")
	}
	app.View.SyncSettings(app.Settings.Current())
}

func logDialog(_ susops.Result, err error) {
	switch {
	case err == nil:
	case errors.Is(err, actions.ErrCancelled):
		app.Log.Debug().Msg("dialog cancelled")
	default:
		app.Log.Info().Err(err).Msg("dialog closed without changes")
	}
}

func openLink(ctx context.Context, url string) {
	if err := dialog.OpenURL(ctx, url); err != nil {
		app.Log.Warn().Err(err).Msg("failed to open link")
	}
}

func titleCase(s string) string {
	return cases.Title(language.English).String(s)
}
