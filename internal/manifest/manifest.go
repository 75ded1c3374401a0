// Package manifest reads, edits and rewrites the project's package.json.
//
// Key order is preserved at the top level and inside "dependencies" so that
// a rewrite only shows the entries that actually changed.
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	oerrors "github.com/openimis/fe-config/internal/errors"
	"github.com/openimis/fe-config/internal/fileutil"
	"github.com/openimis/fe-config/internal/ordered"
)

// DependenciesKey is the manifest field holding declared dependencies.
const DependenciesKey = "dependencies"

// Indent is the indentation used when writing the manifest.
const Indent = "  "

// Dependency is a single declared dependency.
type Dependency struct {
	Name    string
	Version string
}

// Manifest is a parsed package.json.
type Manifest struct {
	doc  *ordered.Map
	deps *ordered.Map

	// depsNull records a "dependencies": null field.
	depsNull bool
}

// Load reads and parses the manifest at path.
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, oerrors.WrapFS(err, "reading", path)
	}
	m, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return m, nil
}

// Parse parses manifest JSON.
func Parse(data []byte) (*Manifest, error) {
	doc := ordered.New()
	if err := json.Unmarshal(data, doc); err != nil {
		return nil, err
	}

	m := &Manifest{doc: doc, deps: ordered.New()}
	if raw, ok := doc.Get(DependenciesKey); ok {
		if string(raw) == "null" {
			m.depsNull = true
		} else if err := json.Unmarshal(raw, m.deps); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", DependenciesKey, err)
		}
	}

	return m, nil
}

// PurgePrefix removes every dependency whose name starts with prefix and
// returns the removed names in manifest order.
func (m *Manifest) PurgePrefix(prefix string) []string {
	var removed []string
	for _, name := range m.deps.Keys() {
		if strings.HasPrefix(name, prefix) {
			m.deps.Delete(name)
			removed = append(removed, name)
		}
	}
	return removed
}

// Set declares name at version, replacing any existing entry in place.
// New names are appended.
func (m *Manifest) Set(name, version string) error {
	return m.deps.Set(name, version)
}

// Version returns the declared version of name. Non-string values are
// returned as raw JSON text.
func (m *Manifest) Version(name string) (string, bool) {
	raw, ok := m.deps.Get(name)
	if !ok {
		return "", false
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return string(raw), true
	}
	return s, true
}

// Dependencies returns the declared dependencies in order.
func (m *Manifest) Dependencies() []Dependency {
	keys := m.deps.Keys()
	out := make([]Dependency, 0, len(keys))
	for _, k := range keys {
		v, _ := m.Version(k)
		out = append(out, Dependency{Name: k, Version: v})
	}
	return out
}

// Marshal renders the manifest with two-space indentation and no trailing
// newline. A null "dependencies" field stays null until a dependency is set.
func (m *Manifest) Marshal() ([]byte, error) {
	if m.depsNull && m.deps.Len() == 0 {
		return ordered.MarshalIndent(m.doc, Indent)
	}
	if m.deps.Len() > 0 || m.doc.Has(DependenciesKey) {
		raw, err := ordered.Marshal(m.deps)
		if err != nil {
			return nil, fmt.Errorf("encoding %s: %w", DependenciesKey, err)
		}
		m.doc.SetRaw(DependenciesKey, raw)
	}
	return ordered.MarshalIndent(m.doc, Indent)
}

// Save writes the manifest to path, replacing the file in full.
func (m *Manifest) Save(path string) error {
	data, err := m.Marshal()
	if err != nil {
		return err
	}
	return fileutil.WriteAtomic(path, data)
}
