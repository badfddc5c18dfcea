// Package propagation computes the ordered list of actions that moves a
// whole workspace to a new version.
package propagation

import (
	"fmt"

	"github.com/rochejul/npmversion-sub000/internal/semver"
	"github.com/rochejul/npmversion-sub000/internal/workspace"
)

// Action is one step of a propagation plan. The concrete types are
// UpdateMemberVersion, UpdateRootVersion and RewriteDependency.
type Action interface {
	fmt.Stringer
	action()
}

// UpdateMemberVersion sets the version of a member package.
type UpdateMemberVersion struct {
	Member  string
	Version string
}

// UpdateRootVersion sets the version of the root package.
type UpdateRootVersion struct {
	Version string
}

// RewriteDependency points a member's dependency on another member at
// Version.
type RewriteDependency struct {
	Member     string
	Kind       workspace.Kind
	Dependency string
	Version    string
}

func (UpdateMemberVersion) action() {}
func (UpdateRootVersion) action()   {}
func (RewriteDependency) action()   {}

func (a UpdateMemberVersion) String() string {
	return fmt.Sprintf("version %s -> %s", a.Member, a.Version)
}

func (a UpdateRootVersion) String() string {
	return fmt.Sprintf("version <root> -> %s", a.Version)
}

func (a RewriteDependency) String() string {
	return fmt.Sprintf("rewrite %s %s %s -> %s", a.Member, a.Kind, a.Dependency, a.Version)
}

// RewriteKinds is the order dependency kinds are visited when rewriting.
var RewriteKinds = []workspace.Kind{
	workspace.KindPeerDependencies,
	workspace.KindOptionalDependencies,
	workspace.KindDevDependencies,
	workspace.KindDependencies,
}

// Plan returns the actions bumping ws to target.
//
// Every member is bumped first, in dependency order, then the root. Only
// then are intra-workspace ranges that do not already accept target
// rewritten, so each install resolves against siblings already carrying
// the new version.
func Plan(ws *workspace.Workspace, target string) ([]Action, error) {
	if _, err := semver.ParseVersion(target); err != nil {
		return nil, err
	}
	if ws.IsLeaf() {
		return []Action{UpdateRootVersion{Version: target}}, nil
	}

	order, err := ws.DependenciesOrder()
	if err != nil {
		return nil, err
	}

	actions := make([]Action, 0, len(order)*2+1)
	for _, name := range order {
		actions = append(actions, UpdateMemberVersion{Member: name, Version: target})
	}
	actions = append(actions, UpdateRootVersion{Version: target})

	for _, name := range order {
		m, ok := ws.GetMemberByName(name)
		if !ok {
			continue
		}
		for _, kind := range RewriteKinds {
			for _, dep := range m.DependenciesOf(kind) {
				if !ws.IsMember(dep.Name) || dep.Satisfies(target) {
					continue
				}
				actions = append(actions, RewriteDependency{
					Member:     name,
					Kind:       kind,
					Dependency: dep.Name,
					Version:    target,
				})
			}
		}
	}
	return actions, nil
}
