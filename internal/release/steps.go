package release

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/rochejul/npmversion-sub000/internal/process"
	"github.com/rochejul/npmversion-sub000/internal/propagation"
	"github.com/rochejul/npmversion-sub000/internal/workspace"
)

// Step is one unit of a release: an external command, or the in-process
// rewrite of a JSON file's version field when JSONFile is set.
type Step struct {
	Name     string
	Command  process.Command
	JSONFile string
	Version  string

	run func(ctx context.Context) error
}

// Dir is where the step runs.
func (s Step) Dir() string {
	if s.JSONFile != "" {
		return filepath.Dir(s.JSONFile)
	}
	return s.Command.Dir
}

func (s Step) String() string {
	if s.JSONFile != "" {
		return fmt.Sprintf("set version %s in %s", s.Version, s.JSONFile)
	}
	return s.Command.String()
}

var saveFlags = map[workspace.Kind]string{
	workspace.KindDependencies:         "--save-prod",
	workspace.KindDevDependencies:      "--save-dev",
	workspace.KindPeerDependencies:     "--save-peer",
	workspace.KindOptionalDependencies: "--save-optional",
}

// CommandFor returns the npm command carrying out action inside ws.
func CommandFor(action propagation.Action, ws *workspace.Workspace) (process.Command, error) {
	switch a := action.(type) {
	case propagation.UpdateMemberVersion:
		m, ok := ws.GetMemberByName(a.Member)
		if !ok {
			return process.Command{}, fmt.Errorf("unknown workspace member %q", a.Member)
		}
		return npmVersion(m.Dir(), a.Version), nil

	case propagation.UpdateRootVersion:
		return npmVersion(ws.Dir(), a.Version), nil

	case propagation.RewriteDependency:
		if !ws.IsMember(a.Member) {
			return process.Command{}, fmt.Errorf("unknown workspace member %q", a.Member)
		}
		flag, ok := saveFlags[a.Kind]
		if !ok {
			return process.Command{}, fmt.Errorf("unknown dependency kind %q", a.Kind)
		}
		return process.Command{
			Dir:  ws.Dir(),
			Name: "npm",
			Args: []string{
				"install",
				a.Dependency + "@" + a.Version,
				flag,
				"--workspace=" + a.Member,
				"--ignore-scripts",
			},
		}, nil
	}
	return process.Command{}, fmt.Errorf("unsupported action %T", action)
}

func npmVersion(dir, version string) process.Command {
	return process.Command{
		Dir:  dir,
		Name: "npm",
		Args: []string{"version", version, "--no-git-tag-version", "--allow-same-version", "--ignore-scripts"},
	}
}

func npmRun(dir, script string) process.Command {
	return process.Command{Dir: dir, Name: "npm", Args: []string{"run", script}}
}

func gitCommand(dir string, args ...string) process.Command {
	return process.Command{Dir: dir, Name: "git", Args: args}
}
