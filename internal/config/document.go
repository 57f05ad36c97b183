package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Document is a YAML file edited in place. Keys this application does not
// own are preserved verbatim, including comments and ordering.
type Document struct {
	path string
	root *yaml.Node
}

// LoadDocument reads path. A missing file yields an empty document.
func LoadDocument(path string) (*Document, error) {
	doc := &Document{path: path}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var root yaml.Node
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &root); err != nil {
			return nil, fmt.Errorf("failed to parse YAML from %s: %w", path, err)
		}
	}
	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		root = yaml.Node{Kind: yaml.DocumentNode, Content: []*yaml.Node{{Kind: yaml.MappingNode}}}
	}
	if root.Content[0].Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%s: top level is not a mapping", path)
	}
	doc.root = &root
	return doc, nil
}

// Path returns the file the document was loaded from.
func (d *Document) Path() string {
	return d.path
}

// Get returns the scalar at keys, e.g. Get("susops_app", "logo_style").
// A missing key, a non-scalar or an explicit null reports ok=false.
func (d *Document) Get(keys ...string) (string, bool) {
	node := d.root.Content[0]
	for _, k := range keys {
		node = child(node, k)
		if node == nil {
			return "", false
		}
	}
	if node.Kind != yaml.ScalarNode || node.Tag == "!!null" {
		return "", false
	}
	return node.Value, true
}

// Set stores value at keys, creating intermediate mappings as needed.
// The scalar style follows the value: numbers and booleans stay plain,
// everything else is double quoted.
func (d *Document) Set(value string, keys ...string) error {
	if len(keys) == 0 {
		return fmt.Errorf("set: empty key path")
	}
	node := d.root.Content[0]
	for _, k := range keys[:len(keys)-1] {
		next := child(node, k)
		if next == nil {
			next = &yaml.Node{Kind: yaml.MappingNode}
			node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: k}, next)
		}
		if next.Kind != yaml.MappingNode {
			return fmt.Errorf("set %v: %q is not a mapping", keys, k)
		}
		node = next
	}

	leaf := scalar(value)
	last := keys[len(keys)-1]
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == last {
			node.Content[i+1] = leaf
			return nil
		}
	}
	node.Content = append(node.Content, &yaml.Node{Kind: yaml.ScalarNode, Value: last}, leaf)
	return nil
}

// Decode unmarshals the whole document into v.
func (d *Document) Decode(v interface{}) error {
	if err := d.root.Decode(v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", d.path, err)
	}
	return nil
}

// Save writes the document back to its path.
func (d *Document) Save() error {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(d.root); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("failed to marshal YAML: %w", err)
	}

	dir := filepath.Dir(d.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	if err := os.WriteFile(d.path, buf.Bytes(), 0644); err != nil {
		return fmt.Errorf("failed to write file %s: %w", d.path, err)
	}
	return nil
}

func child(node *yaml.Node, key string) *yaml.Node {
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			return node.Content[i+1]
		}
	}
	return nil
}

func scalar(value string) *yaml.Node {
	n := &yaml.Node{Kind: yaml.ScalarNode, Value: value}
	var probe interface{}
	if err := yaml.Unmarshal([]byte(value), &probe); err == nil {
		switch probe.(type) {
		case int, bool, float64:
			return n
		}
	}
	n.Style = yaml.DoubleQuotedStyle
	return n
}
