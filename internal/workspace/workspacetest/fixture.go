// Package workspacetest provides the sample monorepo used by tests across
// packages.
package workspacetest

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rochejul/npmversion-sub000/internal/manifest"
)

// RootName and CurrentVersion describe the sample root package.
const (
	RootName       = "npmversion"
	CurrentVersion = "1.42.4"
)

type pkg struct {
	dir          string
	name         string
	dependencies map[string]string
	peer         map[string]string
	dev          map[string]string
	order        []string
}

// packages lists the sample members in directory order. Dependency
// declaration order is carried by order.
var packages = []pkg{
	{
		dir: "cli", name: "cli",
		dependencies: map[string]string{"core": "1.42.4", "yargs": "^17.0.0"},
		peer:         map[string]string{"jest-utils": "*"},
		dev:          map[string]string{"jest": "^29.0.0"},
		order:        []string{"core", "yargs"},
	},
	{
		dir: "core", name: "core",
		dependencies: map[string]string{"util": "1.42.4", "workspace": "1.42.4"},
		peer:         map[string]string{"jest-utils": "*"},
		order:        []string{"util", "workspace"},
	},
	{dir: "jest-utils", name: "jest-utils"},
	{
		dir: "util", name: "util",
		peer: map[string]string{"jest-utils": "*"},
	},
	{
		dir: "workspace", name: "workspace",
		dependencies: map[string]string{"util": "1.42.4"},
		peer:         map[string]string{"jest-utils": "*"},
		order:        []string{"util"},
	},
}

func entries(deps map[string]string, order []string) manifest.DependencyMap {
	if len(deps) == 0 {
		return nil
	}
	if len(order) == 0 {
		for name := range deps {
			order = append(order, name)
		}
	}
	out := make(manifest.DependencyMap, 0, len(order))
	for _, name := range order {
		out = append(out, manifest.Entry{Name: name, Range: deps[name]})
	}
	return out
}

// Root returns the root manifest rooted at dir.
func Root(dir string) *manifest.Manifest {
	return &manifest.Manifest{
		Name:       RootName,
		Version:    CurrentVersion,
		Private:    true,
		Workspaces: manifest.Workspaces{"packages/*"},
		Dir:        dir,
		Path:       filepath.Join(dir, manifest.FileName),
	}
}

// Members returns the member manifests in discovery order, located under
// dir/packages.
func Members(dir string) []*manifest.Manifest {
	out := make([]*manifest.Manifest, 0, len(packages))
	for _, p := range packages {
		memberDir := filepath.Join(dir, "packages", p.dir)
		out = append(out, &manifest.Manifest{
			Name:             p.name,
			Version:          CurrentVersion,
			Dependencies:     entries(p.dependencies, p.order),
			PeerDependencies: entries(p.peer, nil),
			DevDependencies:  entries(p.dev, nil),
			Dir:              memberDir,
			Path:             filepath.Join(memberDir, manifest.FileName),
		})
	}
	return out
}

// WriteTree writes the sample monorepo to dir as package.json files.
// scripts are added to the root manifest.
func WriteTree(t testing.TB, dir string, scripts map[string]string) {
	t.Helper()

	root := map[string]any{
		"name":       RootName,
		"version":    CurrentVersion,
		"private":    true,
		"workspaces": []string{"packages/*"},
	}
	if len(scripts) > 0 {
		root["scripts"] = scripts
	}
	write(t, dir, root)

	for _, p := range packages {
		content := map[string]any{"name": p.name, "version": CurrentVersion}
		if len(p.dependencies) > 0 {
			content["dependencies"] = p.dependencies
		}
		if len(p.peer) > 0 {
			content["peerDependencies"] = p.peer
		}
		if len(p.dev) > 0 {
			content["devDependencies"] = p.dev
		}
		write(t, filepath.Join(dir, "packages", p.dir), content)
	}
}

func write(t testing.TB, dir string, content map[string]any) {
	t.Helper()

	data, err := json.MarshalIndent(content, "", "  ")
	if err != nil {
		t.Fatalf("encoding manifest: %v", err)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("creating %s: %v", dir, err)
	}
	if err := os.WriteFile(filepath.Join(dir, manifest.FileName), append(data, '\n'), 0o644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
}
