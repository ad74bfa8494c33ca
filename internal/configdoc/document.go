// Package configdoc reads and writes prefect config.toml documents without
// knowing their schema. Only the token field is ever touched.
package configdoc

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"prefect-manager/internal/utils"

	"github.com/BurntSushi/toml"
)

const (
	// Ext is the template file extension, also the list filter.
	Ext = ".toml"

	// DefaultName is the template seeded on first run and used when no
	// config name is given.
	DefaultName = "default_config"
)

// Document is a decoded TOML document: tables are map[string]any.
type Document map[string]any

// Default is the template seeded on first run: an empty cloud.agent table.
func Default() Document {
	return Document{
		"cloud": map[string]any{
			"agent": map[string]any{},
		},
	}
}

// Path returns the template file for name inside dir.
func Path(dir, name string) string {
	return filepath.Join(dir, name+Ext)
}

// Load parses the TOML file at path. The returned error wraps
// os.ErrNotExist when the file is missing.
func Load(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

func Parse(data []byte) (Document, error) {
	doc := Document{}
	if err := toml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse toml: %w", err)
	}
	return doc, nil
}

func (d Document) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(map[string]any(d)); err != nil {
		return nil, fmt.Errorf("encode toml: %w", err)
	}
	return buf.Bytes(), nil
}

// Save writes the document to path via a temp file and rename.
func (d Document) Save(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, 0o600)
}

// Set stores value at the dotted key path, creating intermediate tables.
// A non-table value sitting on an intermediate key is replaced.
func (d Document) Set(path []string, value any) {
	if len(path) == 0 {
		return
	}
	table := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		next, ok := table[key].(map[string]any)
		if !ok {
			next = map[string]any{}
			table[key] = next
		}
		table = next
	}
	table[path[len(path)-1]] = value
}

// Get returns the value at the dotted key path.
func (d Document) Get(path []string) (any, bool) {
	if len(path) == 0 {
		return nil, false
	}
	table := map[string]any(d)
	for _, key := range path[:len(path)-1] {
		next, ok := table[key].(map[string]any)
		if !ok {
			return nil, false
		}
		table = next
	}
	v, ok := table[path[len(path)-1]]
	return v, ok
}

// ListNames returns every entry in dir whose file name contains ".toml",
// cut at the first dot.
func ListNames(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, e := range entries {
		if !strings.Contains(e.Name(), Ext) {
			continue
		}
		name, _, _ := strings.Cut(e.Name(), ".")
		names = append(names, name)
	}
	return names, nil
}
