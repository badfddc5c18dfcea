// Package workspace models an npm workspace: the root package, its members
// and the graph of intra-workspace dependencies between them.
package workspace

import (
	"github.com/rochejul/npmversion-sub000/internal/manifest"
	"github.com/rochejul/npmversion-sub000/internal/semver"
)

// Kind is one of the four package.json dependency maps.
type Kind string

const (
	KindDependencies         Kind = "dependencies"
	KindDevDependencies      Kind = "devDependencies"
	KindPeerDependencies     Kind = "peerDependencies"
	KindOptionalDependencies Kind = "optionalDependencies"
)

// Kinds is the order edges are inserted into the graph.
var Kinds = []Kind{
	KindDependencies,
	KindDevDependencies,
	KindPeerDependencies,
	KindOptionalDependencies,
}

// Dependency is a declared dependency on another package.
type Dependency struct {
	Name  string
	Range string
}

// Satisfies reports whether version falls inside the declared range.
// Ranges that are not semver ranges (file:, workspace:, git urls) never do.
func (d Dependency) Satisfies(version string) bool {
	return semver.Satisfies(version, d.Range)
}

// Member is one package of the workspace. It is immutable once built.
type Member struct {
	name    string
	version string
	dir     string
	deps    map[Kind][]Dependency
}

// NewMember builds a member from its manifest. dir is the resolved package
// directory.
func NewMember(m *manifest.Manifest, dir string) *Member {
	return &Member{
		name:    m.Name,
		version: m.Version,
		dir:     dir,
		deps: map[Kind][]Dependency{
			KindDependencies:         convert(m.Dependencies),
			KindDevDependencies:      convert(m.DevDependencies),
			KindPeerDependencies:     convert(m.PeerDependencies),
			KindOptionalDependencies: convert(m.OptionalDependencies),
		},
	}
}

func convert(entries manifest.DependencyMap) []Dependency {
	deps := make([]Dependency, 0, len(entries))
	for _, e := range entries {
		deps = append(deps, Dependency{Name: e.Name, Range: e.Range})
	}
	return deps
}

func (m *Member) Name() string    { return m.name }
func (m *Member) Version() string { return m.version }
func (m *Member) Dir() string     { return m.dir }

// DependenciesOf returns a copy of the dependencies declared under kind, in
// declaration order.
func (m *Member) DependenciesOf(kind Kind) []Dependency {
	deps := m.deps[kind]
	out := make([]Dependency, len(deps))
	copy(out, deps)
	return out
}
