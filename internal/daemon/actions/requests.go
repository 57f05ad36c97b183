package actions

// Request is a validated, mutating CLI command.
type Request interface {
	Args() []string
}

// AddConnection registers a new SSH connection. SOCKSPort is optional; the
// CLI picks a random port when it is empty.
type AddConnection struct {
	Tag       string `label:"Connection Tag" validate:"required"`
	Host      string `label:"SSH Host" validate:"required"`
	SOCKSPort string `label:"SOCKS Proxy Port" validate:"omitempty,port"`
}

func (r AddConnection) Args() []string {
	args := []string{"add-connection", r.Tag, r.Host}
	if r.SOCKSPort != "" {
		args = append(args, r.SOCKSPort)
	}
	return args
}

// AddDomain adds a PAC host to a connection.
type AddDomain struct {
	Connection string `label:"Connection" validate:"required"`
	Host       string `label:"Host" validate:"required"`
}

func (r AddDomain) Args() []string {
	return []string{"-c", r.Connection, "add", r.Host}
}

// AddLocalForward forwards a local port to a port on the remote host.
type AddLocalForward struct {
	Connection string `label:"Connection" validate:"required"`
	LocalPort  string `label:"Local Port" validate:"port"`
	RemotePort string `label:"Remote Port" validate:"port"`
	Tag        string `label:"Tag"`
}

func (r AddLocalForward) Args() []string {
	args := []string{"-c", r.Connection, "add", "-l", r.LocalPort, r.RemotePort}
	if r.Tag != "" {
		args = append(args, r.Tag)
	}
	return args
}

// AddRemoteForward forwards a port on the remote host to a local port.
type AddRemoteForward struct {
	Connection string `label:"Connection" validate:"required"`
	RemotePort string `label:"Remote Port" validate:"port"`
	LocalPort  string `label:"Local Port" validate:"port"`
	Tag        string `label:"Tag"`
}

func (r AddRemoteForward) Args() []string {
	args := []string{"-c", r.Connection, "add", "-r", r.RemotePort, r.LocalPort}
	if r.Tag != "" {
		args = append(args, r.Tag)
	}
	return args
}

// RemoveConnection deletes a connection by tag.
type RemoveConnection struct {
	Tag string `label:"Connection Tag" validate:"required"`
}

func (r RemoveConnection) Args() []string {
	return []string{"rm-connection", r.Tag}
}

// RemoveDomain deletes a PAC host.
type RemoveDomain struct {
	Host string `label:"Domain" validate:"required"`
}

func (r RemoveDomain) Args() []string {
	return []string{"rm", r.Host}
}

// RemoveLocalForward deletes the local forward listed as Entry.
type RemoveLocalForward struct {
	Entry string `label:"Local Forward" validate:"required,forward"`
}

func (r RemoveLocalForward) Args() []string {
	src, _ := ForwardSource(r.Entry)
	return []string{"rm", "-l", src}
}

// RemoveRemoteForward deletes the remote forward listed as Entry.
type RemoveRemoteForward struct {
	Entry string `label:"Remote Forward" validate:"required,forward"`
}

func (r RemoveRemoteForward) Args() []string {
	src, _ := ForwardSource(r.Entry)
	return []string{"rm", "-r", src}
}

// TestTarget checks that a domain or port is reachable through the proxy.
type TestTarget struct {
	Target string `label:"Domain or Port" validate:"required"`
}

func (r TestTarget) Args() []string {
	return []string{"test", r.Target}
}

// PACServerPort changes the port of the PAC server.
type PACServerPort struct {
	Port string `label:"PAC Server Port" validate:"port"`
}

// Fixed commands.
var (
	StartArgs    = []string{"start"}
	RestartArgs  = []string{"restart"}
	StatusArgs   = []string{"ps"}
	ListArgs     = []string{"ls"}
	ConfigArgs   = []string{"config"}
	TestAllArgs  = []string{"test", "--all"}
	ResetArgs    = []string{"reset", "--force"}
	QuitStopArgs = []string{"stop", "--keep-ports"}
)

// StopArgs returns the stop command. Ports are kept unless they are
// ephemeral.
func StopArgs(ephemeralPorts bool) []string {
	if ephemeralPorts {
		return []string{"stop"}
	}
	return []string{"stop", "--keep-ports"}
}

// Browser is a browser the CLI can launch with the proxy configured.
type Browser string

// Browsers.
const (
	BrowserChrome              Browser = "chrome"
	BrowserChromeProxySettings Browser = "chrome-proxy-settings"
	BrowserFirefox             Browser = "firefox"
)

// Browsers lists every launchable browser in menu order.
func Browsers() []Browser {
	return []Browser{BrowserChrome, BrowserChromeProxySettings, BrowserFirefox}
}

// Label returns the menu title of the browser.
func (b Browser) Label() string {
	switch b {
	case BrowserChrome:
		return "Chrome"
	case BrowserChromeProxySettings:
		return "Chrome Proxy Settings"
	case BrowserFirefox:
		return "Firefox"
	default:
		return string(b)
	}
}
