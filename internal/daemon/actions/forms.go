package actions

import (
	"context"
	"errors"
	"strconv"

	"github.com/susops/susops-tray/internal/models"
	"github.com/susops/susops-tray/internal/susops"
)

// field is one input of a form. Fields with choices are picked from a
// list; an empty list is submitted as an empty value and ends the form.
type field struct {
	prompt  string
	choices func() []string
	initial string
}

type form struct {
	title  string
	fields []field
	build  func(values []string) any
}

// ask shows the form until its values validate, at most MaxAttempts times.
// Each attempt starts from the values entered last.
func (d *Dispatcher) ask(f form) (any, error) {
	values := make([]string, len(f.fields))
	for i, fld := range f.fields {
		values[i] = fld.initial
	}

	var lastErr error
	for attempt := 1; attempt <= MaxAttempts; attempt++ {
		interactive, exhausted := false, false
		for i, fld := range f.fields {
			v, shown, ok := d.input(f.title, fld, values[i])
			if !ok {
				return nil, ErrCancelled
			}
			values[i] = v
			if fld.choices != nil && !shown {
				exhausted = true
				break
			}
			interactive = interactive || shown
		}

		req := f.build(values)
		err := Validate(req)
		if err == nil {
			return req, nil
		}
		d.dialogs.Alert("Error", err.Error())
		lastErr = err
		if exhausted || !interactive {
			break
		}
		d.log.Debug().Int("attempt", attempt).Err(err).Str("form", f.title).Msg("invalid input")
	}
	return nil, lastErr
}

// input reads one field. shown reports whether a dialog was displayed.
func (d *Dispatcher) input(title string, f field, last string) (value string, shown, ok bool) {
	if f.choices != nil {
		items := f.choices()
		if len(items) == 0 {
			return "", false, true
		}
		value, ok = d.dialogs.Choose(title, f.prompt, items)
		return value, true, ok
	}
	value, ok = d.dialogs.Prompt(title, f.prompt, last)
	return value, true, ok
}

// submit runs a form's request and reports success.
func (d *Dispatcher) submit(ctx context.Context, f form, onSuccess func(susops.Result)) (susops.Result, error) {
	req, err := d.ask(f)
	if err != nil {
		return susops.Result{}, err
	}
	res, err := d.Execute(ctx, req.(Request))
	if err != nil {
		return res, err
	}
	if res.OK() {
		onSuccess(res)
	}
	return res, nil
}

func (d *Dispatcher) success(res susops.Result) {
	d.dialogs.Alert("Success", res.Output)
}

func (d *Dispatcher) connections() []string {
	return d.loadInventory().Tags()
}

// AddConnectionDialog asks for a new connection and adds it.
func (d *Dispatcher) AddConnectionDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Add Connection",
		fields: []field{
			{prompt: "Connection Tag:"},
			{prompt: hostHint(d.inventory.SSHHosts())},
			{prompt: "SOCKS Proxy Port (optional):"},
		},
		build: func(v []string) any {
			return AddConnection{Tag: v[0], Host: v[1], SOCKSPort: v[2]}
		},
	}, d.success)
}

// AddDomainDialog asks for a domain and adds it to the PAC rules of a
// connection.
func (d *Dispatcher) AddDomainDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Add Domain",
		fields: []field{
			{prompt: "Connection:", choices: d.connections},
			{prompt: "Domain:\n\nThis domain and one level of subdomains will be added to the PAC rules."},
		},
		build: func(v []string) any {
			return AddDomain{Connection: v[0], Host: v[1]}
		},
	}, d.success)
}

// AddLocalForwardDialog asks for a local forward and adds it.
func (d *Dispatcher) AddLocalForwardDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Add Local Forward",
		fields: []field{
			{prompt: "Connection:", choices: d.connections},
			{prompt: "Tag (optional):"},
			{prompt: "Forward Local Port:"},
			{prompt: "To Remote Port:"},
		},
		build: func(v []string) any {
			return AddLocalForward{Connection: v[0], Tag: v[1], LocalPort: v[2], RemotePort: v[3]}
		},
	}, func(res susops.Result) { d.OfferRestart(ctx, "Success", res.Output) })
}

// AddRemoteForwardDialog asks for a remote forward and adds it.
func (d *Dispatcher) AddRemoteForwardDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Add Remote Forward",
		fields: []field{
			{prompt: "Connection:", choices: d.connections},
			{prompt: "Tag (optional):"},
			{prompt: "Forward Remote Port:"},
			{prompt: "To Local Port:"},
		},
		build: func(v []string) any {
			return AddRemoteForward{Connection: v[0], Tag: v[1], RemotePort: v[2], LocalPort: v[3]}
		},
	}, func(res susops.Result) { d.OfferRestart(ctx, "Success", res.Output) })
}

// RemoveConnectionDialog asks which connection to remove.
func (d *Dispatcher) RemoveConnectionDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title:  "Remove Connection",
		fields: []field{{prompt: "Connection Tag:", choices: d.connections}},
		build:  func(v []string) any { return RemoveConnection{Tag: v[0]} },
	}, d.success)
}

// RemoveDomainDialog asks which domain to remove.
func (d *Dispatcher) RemoveDomainDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Remove Domain",
		fields: []field{{prompt: "Domain:", choices: func() []string {
			return d.loadInventory().Domains()
		}}},
		build: func(v []string) any { return RemoveDomain{Host: v[0]} },
	}, d.success)
}

// RemoveLocalForwardDialog asks which local forward to remove.
func (d *Dispatcher) RemoveLocalForwardDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Remove Local Forward",
		fields: []field{{prompt: "Local Forward:", choices: func() []string {
			return forwardLabels(d.loadInventory().LocalForwards())
		}}},
		build: func(v []string) any { return RemoveLocalForward{Entry: v[0]} },
	}, d.success)
}

// RemoveRemoteForwardDialog asks which remote forward to remove.
func (d *Dispatcher) RemoveRemoteForwardDialog(ctx context.Context) (susops.Result, error) {
	return d.submit(ctx, form{
		title: "Remove Remote Forward",
		fields: []field{{prompt: "Remote Forward:", choices: func() []string {
			return forwardLabels(d.loadInventory().RemoteForwards())
		}}},
		build: func(v []string) any { return RemoveRemoteForward{Entry: v[0]} },
	}, d.success)
}

// TestDialog asks for a domain or port and shows the test report.
func (d *Dispatcher) TestDialog(ctx context.Context) (susops.Result, error) {
	req, err := d.ask(form{
		title:  "Test Any",
		fields: []field{{prompt: "Enter domain or port to test:"}},
		build:  func(v []string) any { return TestTarget{Target: v[0]} },
	})
	if err != nil {
		return susops.Result{}, err
	}
	res, err := d.Execute(ctx, req.(Request), susops.WithSuppressAlert())
	if err != nil {
		return res, err
	}
	d.dialogs.Alert("SusOps Test", res.Message())
	return res, nil
}

// PACServerPortDialog asks for the PAC server port and saves it.
func (d *Dispatcher) PACServerPortDialog(ctx context.Context) (*models.Settings, error) {
	cur := d.currentSettings()
	req, err := d.ask(form{
		title:  "Settings",
		fields: []field{{prompt: "PAC Server Port:", initial: strconv.Itoa(cur.PACServerPort)}},
		build:  func(v []string) any { return PACServerPort{Port: v[0]} },
	})
	if err != nil {
		return nil, err
	}
	port, err := strconv.Atoi(req.(PACServerPort).Port)
	if err != nil {
		return nil, errors.Join(ErrValidation, err)
	}
	s, err := d.save(cur.WithPACServerPort(port))
	if err != nil {
		return nil, err
	}
	d.OfferRestart(ctx, "Settings Saved", "Settings will be applied on next proxy start.")
	return s, nil
}
