package workspace

import (
	"github.com/rochejul/npmversion-sub000/internal/manifest"
)

// Workspace is the root package plus its members. A workspace without
// members is a leaf: a plain single package.
type Workspace struct {
	root    *Member
	members []*Member
	byName  map[string]*Member
	graph   *graph
}

// Build assembles the workspace from the root manifest and the member
// manifests in discovery order.
func Build(root *manifest.Manifest, members []*manifest.Manifest) (*Workspace, error) {
	ws := &Workspace{
		root:   NewMember(root, root.Dir),
		byName: make(map[string]*Member, len(members)),
	}
	if len(members) == 0 {
		return ws, nil
	}

	for _, m := range members {
		if prev, ok := ws.byName[m.Name]; ok {
			return nil, &DuplicateMemberError{Name: m.Name, Dirs: []string{prev.Dir(), m.Dir}}
		}
		member := NewMember(m, m.Dir)
		ws.members = append(ws.members, member)
		ws.byName[member.Name()] = member
	}

	ws.graph = newGraph()
	for _, m := range ws.members {
		ws.graph.addNode(m.Name())
	}
	for _, m := range ws.members {
		for _, kind := range Kinds {
			for _, dep := range m.deps[kind] {
				if _, ok := ws.byName[dep.Name]; !ok {
					continue
				}
				if err := ws.graph.addEdge(m.Name(), dep.Name); err != nil {
					return nil, err
				}
			}
		}
	}
	return ws, nil
}

func (w *Workspace) Name() string    { return w.root.Name() }
func (w *Workspace) Version() string { return w.root.Version() }
func (w *Workspace) Dir() string     { return w.root.Dir() }

// RootDependenciesOf returns the root package's own dependencies of kind.
func (w *Workspace) RootDependenciesOf(kind Kind) []Dependency {
	return w.root.DependenciesOf(kind)
}

// IsLeaf reports whether the root package has no workspace members.
func (w *Workspace) IsLeaf() bool {
	return len(w.members) == 0
}

// Members returns the members in discovery order.
func (w *Workspace) Members() []*Member {
	return append([]*Member{}, w.members...)
}

// GetMemberByName looks a member up by package name.
func (w *Workspace) GetMemberByName(name string) (*Member, bool) {
	m, ok := w.byName[name]
	return m, ok
}

// IsMember reports whether name is a package of this workspace.
func (w *Workspace) IsMember(name string) bool {
	_, ok := w.byName[name]
	return ok
}

// DependenciesOrder returns member names with every member placed after
// the members it depends on. A leaf workspace has an empty order.
func (w *Workspace) DependenciesOrder() ([]string, error) {
	if w.IsLeaf() {
		return []string{}, nil
	}
	return w.graph.topologicalSort()
}

// Dependencies returns the members name depends on directly.
func (w *Workspace) Dependencies(name string) []string {
	if w.graph == nil {
		return nil
	}
	return w.graph.targets(name)
}

// Dependents returns the members depending directly on name.
func (w *Workspace) Dependents(name string) []string {
	if w.graph == nil {
		return nil
	}
	return w.graph.sources(name)
}
