package config

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/susops/susops-tray/internal/models"
)

// LoadInventory reads the connections defined in the config file at path.
// A missing file yields an empty inventory.
func LoadInventory(path string) (*models.Inventory, error) {
	doc, err := LoadDocument(path)
	if err != nil {
		return nil, err
	}
	var inv models.Inventory
	if err := doc.Decode(&inv); err != nil {
		return nil, err
	}
	return &inv, nil
}

// SSHConfigFile returns ~/.ssh/config.
func SSHConfigFile() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".ssh", "config"), nil
}

// LoadSSHHosts returns the host aliases declared in an OpenSSH client config.
// Wildcard patterns are skipped. A missing file yields no hosts.
func LoadSSHHosts(path string) ([]string, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to open ssh config: %w", err)
	}
	defer f.Close()

	var hosts []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 || !strings.EqualFold(fields[0], "Host") {
			continue
		}
		for _, h := range fields[1:] {
			if strings.ContainsAny(h, "*?!") {
				continue
			}
			hosts = append(hosts, h)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read ssh config: %w", err)
	}
	return hosts, nil
}

// InventoryReader reads the connection inventory and the SSH host list on
// every call, so dialogs always offer what is currently on disk.
type InventoryReader struct {
	ConfigPath    string
	SSHConfigPath string
}

// Inventory loads the connection inventory.
func (r InventoryReader) Inventory() (*models.Inventory, error) {
	return LoadInventory(r.ConfigPath)
}

// SSHHosts loads the SSH host aliases. Errors yield no hosts.
func (r InventoryReader) SSHHosts() []string {
	if r.SSHConfigPath == "" {
		return nil
	}
	hosts, err := LoadSSHHosts(r.SSHConfigPath)
	if err != nil {
		return nil
	}
	return hosts
}
