package propagation

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rochejul/npmversion-sub000/internal/manifest"
	"github.com/rochejul/npmversion-sub000/internal/semver"
	"github.com/rochejul/npmversion-sub000/internal/workspace"
	"github.com/rochejul/npmversion-sub000/internal/workspace/workspacetest"
)

func sample(t *testing.T) *workspace.Workspace {
	t.Helper()
	ws, err := workspace.Build(workspacetest.Root("/repo"), workspacetest.Members("/repo"))
	require.NoError(t, err)
	return ws
}

func TestPlan_SampleMonorepo(t *testing.T) {
	actions, err := Plan(sample(t), "1.42.5")
	require.NoError(t, err)

	assert.Equal(t, []Action{
		UpdateMemberVersion{Member: "jest-utils", Version: "1.42.5"},
		UpdateMemberVersion{Member: "util", Version: "1.42.5"},
		UpdateMemberVersion{Member: "workspace", Version: "1.42.5"},
		UpdateMemberVersion{Member: "core", Version: "1.42.5"},
		UpdateMemberVersion{Member: "cli", Version: "1.42.5"},
		UpdateRootVersion{Version: "1.42.5"},
		RewriteDependency{Member: "workspace", Kind: workspace.KindDependencies, Dependency: "util", Version: "1.42.5"},
		RewriteDependency{Member: "core", Kind: workspace.KindDependencies, Dependency: "util", Version: "1.42.5"},
		RewriteDependency{Member: "core", Kind: workspace.KindDependencies, Dependency: "workspace", Version: "1.42.5"},
		RewriteDependency{Member: "cli", Kind: workspace.KindDependencies, Dependency: "core", Version: "1.42.5"},
	}, actions)
}

func TestPlan_PrereleaseRewritesWildcardPeers(t *testing.T) {
	actions, err := Plan(sample(t), "1.43.0-beta.0")
	require.NoError(t, err)

	// "*" does not accept prereleases, so the peers get rewritten too
	var peers int
	for _, a := range actions {
		if r, ok := a.(RewriteDependency); ok && r.Kind == workspace.KindPeerDependencies {
			peers++
			assert.Equal(t, "jest-utils", r.Dependency)
		}
	}
	assert.Equal(t, 4, peers)
}

func TestPlan_KindOrderAndDuplicateDeclarations(t *testing.T) {
	root := &manifest.Manifest{Name: "root", Version: "0.1.0", Dir: "/repo"}
	app := &manifest.Manifest{
		Name:                 "app",
		Version:              "0.1.0",
		Dir:                  "/repo/app",
		Dependencies:         manifest.DependencyMap{{Name: "lib", Range: "0.1.0"}},
		DevDependencies:      manifest.DependencyMap{{Name: "lib", Range: "~0.1.0"}},
		PeerDependencies:     manifest.DependencyMap{{Name: "lib", Range: "^0.1.0"}},
		OptionalDependencies: manifest.DependencyMap{{Name: "lib", Range: ">=0.1.0"}, {Name: "left-pad", Range: "0.0.1"}},
	}
	lib := &manifest.Manifest{Name: "lib", Version: "0.1.0", Dir: "/repo/lib"}

	ws, err := workspace.Build(root, []*manifest.Manifest{app, lib})
	require.NoError(t, err)

	actions, err := Plan(ws, "0.2.0")
	require.NoError(t, err)

	var rewrites []RewriteDependency
	for _, a := range actions {
		if r, ok := a.(RewriteDependency); ok {
			rewrites = append(rewrites, r)
		}
	}
	assert.Equal(t, []RewriteDependency{
		{Member: "app", Kind: workspace.KindPeerDependencies, Dependency: "lib", Version: "0.2.0"},
		{Member: "app", Kind: workspace.KindDevDependencies, Dependency: "lib", Version: "0.2.0"},
		{Member: "app", Kind: workspace.KindDependencies, Dependency: "lib", Version: "0.2.0"},
	}, rewrites)
	assert.Equal(t, []string{"lib"}, ws.Dependencies("app"))
}

func TestPlan_Leaf(t *testing.T) {
	ws, err := workspace.Build(&manifest.Manifest{Name: "single", Version: "1.0.0"}, nil)
	require.NoError(t, err)

	actions, err := Plan(ws, "1.0.1")
	require.NoError(t, err)
	assert.Equal(t, []Action{UpdateRootVersion{Version: "1.0.1"}}, actions)
}

func TestPlan_InvalidTarget(t *testing.T) {
	actions, err := Plan(sample(t), "next")
	assert.Nil(t, actions)

	var invalid *semver.InvalidVersionError
	assert.True(t, errors.As(err, &invalid))
}

func TestPlan_Cycle(t *testing.T) {
	ws, err := workspace.Build(&manifest.Manifest{Name: "root", Version: "1.0.0"}, []*manifest.Manifest{
		{Name: "a", Version: "1.0.0", Dependencies: manifest.DependencyMap{{Name: "b", Range: "1.0.0"}}},
		{Name: "b", Version: "1.0.0", Dependencies: manifest.DependencyMap{{Name: "a", Range: "1.0.0"}}},
	})
	require.NoError(t, err)

	actions, err := Plan(ws, "2.0.0")
	assert.Nil(t, actions)

	var cyclic *workspace.CyclicDependencyError
	assert.True(t, errors.As(err, &cyclic))
}

func TestAction_String(t *testing.T) {
	assert.Equal(t, "version core -> 2.0.0", UpdateMemberVersion{Member: "core", Version: "2.0.0"}.String())
	assert.Equal(t, "version <root> -> 2.0.0", UpdateRootVersion{Version: "2.0.0"}.String())
	assert.Equal(t, "rewrite cli dependencies core -> 2.0.0",
		RewriteDependency{Member: "cli", Kind: workspace.KindDependencies, Dependency: "core", Version: "2.0.0"}.String())
}
