// Package models contains shared data structures used across the application.
package models

import "fmt"

// Forward is a single SSH port forward owned by a connection.
type Forward struct {
	Tag string `yaml:"tag"`
	Src int    `yaml:"src"`
	Dst int    `yaml:"dst"`
}

// Label renders the forward the way it is listed in remove dialogs,
// e.g. "db (5432 → 5432)".
func (f Forward) Label() string {
	return fmt.Sprintf("%s (%d → %d)", f.Tag, f.Src, f.Dst)
}

// Forwards groups the local and remote forwards of a connection.
type Forwards struct {
	Local  []Forward `yaml:"local"`
	Remote []Forward `yaml:"remote"`
}

// Connection is an SSH connection managed by the susops CLI.
type Connection struct {
	Tag        string   `yaml:"tag"`
	SSHHost    string   `yaml:"ssh_host"`
	SocksProxy int      `yaml:"socks_proxy_port"`
	PACHosts   []string `yaml:"pac_hosts"`
	Forwards   Forwards `yaml:"forwards"`
}

// Inventory is the read-only subset of ~/.susops/config.yaml the tray uses
// to populate its dialogs. The file itself is written by the CLI.
type Inventory struct {
	PACServerPort int          `yaml:"pac_server_port"`
	Connections   []Connection `yaml:"connections"`
}

// Tags returns the tag of every connection.
func (inv *Inventory) Tags() []string {
	tags := make([]string, 0, len(inv.Connections))
	for _, c := range inv.Connections {
		if c.Tag != "" {
			tags = append(tags, c.Tag)
		}
	}
	return tags
}

// Domains returns every PAC host across all connections.
func (inv *Inventory) Domains() []string {
	var domains []string
	for _, c := range inv.Connections {
		domains = append(domains, c.PACHosts...)
	}
	return domains
}

// LocalForwards returns every local forward across all connections.
func (inv *Inventory) LocalForwards() []Forward {
	var out []Forward
	for _, c := range inv.Connections {
		out = append(out, c.Forwards.Local...)
	}
	return out
}

// RemoteForwards returns every remote forward across all connections.
func (inv *Inventory) RemoteForwards() []Forward {
	var out []Forward
	for _, c := range inv.Connections {
		out = append(out, c.Forwards.Remote...)
	}
	return out
}
