// Package manifest reads package.json files, discovers workspace members
// and rewrites version fields in auxiliary JSON files.
//
// Manifests are read as JSONC (JSON plus comments and trailing commas) so a
// hand-edited file never aborts a release on a cosmetic issue. Dependency
// maps keep their declaration order, which the workspace graph relies on
// for deterministic edge insertion.
package manifest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/tidwall/jsonc"
)

// FileName is the manifest file looked up in every package directory.
const FileName = "package.json"

// Entry is one name -> range pair of a dependency map.
type Entry struct {
	Name  string
	Range string
}

// DependencyMap is a dependency object in declaration order.
type DependencyMap []Entry

// UnmarshalJSON decodes a JSON object of string ranges, keeping key order.
func (m *DependencyMap) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*m = nil
		return nil
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("dependency map must be an object")
	}

	entries := make(DependencyMap, 0)
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		name := keyTok.(string)

		var rng string
		if err := dec.Decode(&rng); err != nil {
			return fmt.Errorf("range of %q must be a string: %w", name, err)
		}
		entries = append(entries, Entry{Name: name, Range: rng})
	}
	if _, err := dec.Token(); err != nil {
		return err
	}

	*m = entries
	return nil
}

// Workspaces holds the workspace glob patterns. Both the npm array form and
// the yarn object form ({"packages": [...]}) are accepted.
type Workspaces []string

// UnmarshalJSON accepts either form.
func (w *Workspaces) UnmarshalJSON(data []byte) error {
	var patterns []string
	if err := json.Unmarshal(data, &patterns); err == nil {
		*w = patterns
		return nil
	}

	var object struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &object); err != nil {
		return fmt.Errorf("workspaces must be an array of globs or an object with packages: %w", err)
	}
	*w = object.Packages
	return nil
}

// Manifest is the subset of package.json npmversion reads.
type Manifest struct {
	Name                 string            `json:"name"`
	Version              string            `json:"version"`
	Private              bool              `json:"private"`
	Workspaces           Workspaces        `json:"workspaces"`
	Scripts              map[string]string `json:"scripts"`
	Dependencies         DependencyMap     `json:"dependencies"`
	DevDependencies      DependencyMap     `json:"devDependencies"`
	PeerDependencies     DependencyMap     `json:"peerDependencies"`
	OptionalDependencies DependencyMap     `json:"optionalDependencies"`

	// Dir is the absolute directory holding the manifest.
	Dir string `json:"-"`
	// Path is the absolute path of the manifest file.
	Path string `json:"-"`
}

// HasScript reports whether the manifest declares a non-empty script.
func (m *Manifest) HasScript(name string) bool {
	return m.Scripts[name] != ""
}

// Parse decodes manifest bytes. path is only used in error messages.
func Parse(data []byte, path string) (*Manifest, error) {
	var m Manifest
	if err := json.Unmarshal(jsonc.ToJSON(data), &m); err != nil {
		return nil, &ManifestParseError{Path: path, Err: err}
	}
	return &m, nil
}

// Load reads dir/package.json.
func Load(dir string) (*Manifest, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving %s: %w", dir, err)
	}
	path := filepath.Join(abs, FileName)

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &ManifestNotFoundError{Path: path, Err: err}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	m, err := Parse(data, path)
	if err != nil {
		return nil, err
	}
	m.Dir = abs
	m.Path = path
	return m, nil
}
