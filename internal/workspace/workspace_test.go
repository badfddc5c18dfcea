package workspace

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rochejul/npmversion-sub000/internal/manifest"
	"github.com/rochejul/npmversion-sub000/internal/workspace/workspacetest"
)

func member(name string, deps, dev, peer, optional manifest.DependencyMap) *manifest.Manifest {
	return &manifest.Manifest{
		Name:                 name,
		Version:              "1.0.0",
		Dependencies:         deps,
		DevDependencies:      dev,
		PeerDependencies:     peer,
		OptionalDependencies: optional,
		Dir:                  "/repo/packages/" + name,
	}
}

func deps(pairs ...string) manifest.DependencyMap {
	var out manifest.DependencyMap
	for i := 0; i+1 < len(pairs); i += 2 {
		out = append(out, manifest.Entry{Name: pairs[i], Range: pairs[i+1]})
	}
	return out
}

func root() *manifest.Manifest {
	return &manifest.Manifest{Name: "root", Version: "1.0.0", Dir: "/repo"}
}

func TestBuild_SampleMonorepo(t *testing.T) {
	ws, err := Build(workspacetest.Root("/repo"), workspacetest.Members("/repo"))
	require.NoError(t, err)

	assert.False(t, ws.IsLeaf())
	assert.Equal(t, workspacetest.RootName, ws.Name())
	assert.Equal(t, workspacetest.CurrentVersion, ws.Version())

	order, err := ws.DependenciesOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"jest-utils", "util", "workspace", "core", "cli"}, order)

	assert.Equal(t, []string{"util", "workspace", "jest-utils"}, ws.Dependencies("core"))
	assert.Equal(t, []string{"cli", "core", "util", "workspace"}, ws.Dependents("jest-utils"))
	assert.Empty(t, ws.Dependencies("jest-utils"))

	// external packages never become nodes
	assert.False(t, ws.IsMember("yargs"))
	assert.Empty(t, ws.Dependents("yargs"))
}

func TestDependenciesOrder_EveryDependencyFirst(t *testing.T) {
	ws, err := Build(workspacetest.Root("/repo"), workspacetest.Members("/repo"))
	require.NoError(t, err)

	order, err := ws.DependenciesOrder()
	require.NoError(t, err)

	index := make(map[string]int, len(order))
	for i, name := range order {
		index[name] = i
	}
	for _, m := range ws.Members() {
		for _, dep := range ws.Dependencies(m.Name()) {
			assert.Less(t, index[dep], index[m.Name()], "%s must come before %s", dep, m.Name())
		}
	}
}

func TestDependenciesOrder_IsolatedMembersKept(t *testing.T) {
	ws, err := Build(root(), []*manifest.Manifest{
		member("b", nil, nil, nil, nil),
		member("a", deps("lodash", "^4.0.0"), nil, nil, nil),
	})
	require.NoError(t, err)

	order, err := ws.DependenciesOrder()
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, order)
}

func TestDependenciesOrder_Cycle(t *testing.T) {
	tests := []struct {
		name    string
		members []*manifest.Manifest
		cycle   []string
	}{
		{
			name: "direct",
			members: []*manifest.Manifest{
				member("a", deps("b", "1.0.0"), nil, nil, nil),
				member("b", nil, deps("a", "1.0.0"), nil, nil),
			},
			cycle: []string{"a", "b", "a"},
		},
		{
			name: "transitive",
			members: []*manifest.Manifest{
				member("a", deps("b", "*"), nil, nil, nil),
				member("b", nil, nil, deps("c", "*"), nil),
				member("c", nil, nil, nil, deps("a", "*")),
			},
			cycle: []string{"a", "b", "c", "a"},
		},
		{
			name: "self",
			members: []*manifest.Manifest{
				member("a", deps("a", "*"), nil, nil, nil),
			},
			cycle: []string{"a", "a"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws, err := Build(root(), tt.members)
			require.NoError(t, err)

			order, err := ws.DependenciesOrder()
			assert.Nil(t, order)

			var cyclic *CyclicDependencyError
			require.True(t, errors.As(err, &cyclic))
			assert.Equal(t, tt.cycle, cyclic.Cycle)
			assert.Contains(t, err.Error(), "a -> ")
		})
	}
}

func TestBuild_DuplicateEdgesAreIgnored(t *testing.T) {
	ws, err := Build(root(), []*manifest.Manifest{
		member("app", deps("lib", "^0.1.0"), deps("lib", "^0.1.0"), deps("lib", "*"), nil),
		member("lib", nil, nil, nil, nil),
	})
	require.NoError(t, err)

	assert.Equal(t, []string{"lib"}, ws.Dependencies("app"))
	assert.Equal(t, []string{"app"}, ws.Dependents("lib"))
}

func TestBuild_DuplicateMember(t *testing.T) {
	_, err := Build(root(), []*manifest.Manifest{
		member("a", nil, nil, nil, nil),
		member("a", nil, nil, nil, nil),
	})

	var dup *DuplicateMemberError
	require.True(t, errors.As(err, &dup))
	assert.Equal(t, "a", dup.Name)
}

func TestBuild_Leaf(t *testing.T) {
	r := root()
	r.DevDependencies = deps("jest", "^29.0.0")

	ws, err := Build(r, nil)
	require.NoError(t, err)

	assert.True(t, ws.IsLeaf())
	order, err := ws.DependenciesOrder()
	require.NoError(t, err)
	assert.Empty(t, order)
	assert.Nil(t, ws.Dependencies("anything"))
	assert.Equal(t, []Dependency{{Name: "jest", Range: "^29.0.0"}}, ws.RootDependenciesOf(KindDevDependencies))
}

func TestGetMemberByName(t *testing.T) {
	ws, err := Build(workspacetest.Root("/repo"), workspacetest.Members("/repo"))
	require.NoError(t, err)

	m, ok := ws.GetMemberByName("core")
	require.True(t, ok)
	assert.Equal(t, "core", m.Name())
	assert.Equal(t, "/repo/packages/core", m.Dir())

	_, ok = ws.GetMemberByName("yargs")
	assert.False(t, ok)
}

func TestMember_DependenciesAreCopies(t *testing.T) {
	m := NewMember(member("a", deps("b", "1.0.0", "c", "2.0.0"), nil, nil, nil), "/a")

	got := m.DependenciesOf(KindDependencies)
	require.Len(t, got, 2)
	got[0].Range = "9.9.9"

	assert.Equal(t, []Dependency{{Name: "b", Range: "1.0.0"}, {Name: "c", Range: "2.0.0"}}, m.DependenciesOf(KindDependencies))
	assert.Empty(t, m.DependenciesOf(KindOptionalDependencies))
}

func TestDependency_Satisfies(t *testing.T) {
	assert.True(t, Dependency{Name: "a", Range: "*"}.Satisfies("1.42.5"))
	assert.True(t, Dependency{Name: "a", Range: "^1.0.0"}.Satisfies("1.42.5"))
	assert.False(t, Dependency{Name: "a", Range: "1.42.4"}.Satisfies("1.42.5"))
	assert.False(t, Dependency{Name: "a", Range: "workspace:^"}.Satisfies("1.42.5"))
}
