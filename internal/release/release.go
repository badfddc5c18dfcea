// Package release sequences a version bump: hooks, npm version updates,
// dependency rewrites, auxiliary JSON files and git bookkeeping.
//
// Steps run one at a time and the first failure stops the release. Nothing
// already done is rolled back.
package release

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/rochejul/npmversion-sub000/internal/config"
	"github.com/rochejul/npmversion-sub000/internal/git"
	"github.com/rochejul/npmversion-sub000/internal/manifest"
	"github.com/rochejul/npmversion-sub000/internal/process"
	"github.com/rochejul/npmversion-sub000/internal/propagation"
	"github.com/rochejul/npmversion-sub000/internal/semver"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/rochejul/npmversion-sub000/internal/workspace"
)

// ErrNotRepository is returned when a git step is enabled outside a git
// work tree.
var ErrNotRepository = errors.New("not inside a git repository; use --nogit-commit and --nogit-tag to release without git")

const (
	scriptPreversion  = "preversion"
	scriptPostversion = "postversion"
)

// Release is a computed, not yet executed, version bump.
type Release struct {
	Root        *manifest.Manifest
	Workspace   *workspace.Workspace
	FromVersion string
	Version     string
	Actions     []propagation.Action
}

// TargetVersion computes the version the root package moves to.
func TargetVersion(current string, opts config.Options) (string, error) {
	if opts.Unpreid {
		return semver.Unpreid(current)
	}
	level, err := semver.ParseLevel(opts.Increment)
	if err != nil {
		return "", err
	}
	return semver.Increment(current, level, opts.Preid, opts.ForcePreid)
}

// Prepare loads the root manifest and computes the target version. Unless
// opts.ReadOnly is set it also discovers the workspace members and plans
// the propagation.
func Prepare(opts config.Options) (*Release, error) {
	root, err := manifest.Load(opts.Dir)
	if err != nil {
		return nil, err
	}

	version, err := TargetVersion(root.Version, opts)
	if err != nil {
		return nil, fmt.Errorf("computing next version of %s: %w", root.Name, err)
	}

	rel := &Release{Root: root, FromVersion: root.Version, Version: version}
	if opts.ReadOnly {
		return rel, nil
	}

	ws, err := buildWorkspace(root)
	if err != nil {
		return nil, err
	}
	actions, err := propagation.Plan(ws, version)
	if err != nil {
		return nil, err
	}

	rel.Workspace = ws
	rel.Actions = actions
	return rel, nil
}

// LoadWorkspace reads the root manifest of dir and builds its workspace.
// The root version is not looked at, so a private root without one loads.
func LoadWorkspace(dir string) (*workspace.Workspace, error) {
	root, err := manifest.Load(dir)
	if err != nil {
		return nil, err
	}
	return buildWorkspace(root)
}

func buildWorkspace(root *manifest.Manifest) (*workspace.Workspace, error) {
	members, err := manifest.DiscoverMembers(root.Dir, root.Workspaces)
	if err != nil {
		return nil, fmt.Errorf("discovering workspace members: %w", err)
	}
	utils.LogDebug("discovered %d workspace member(s)", len(members))

	return workspace.Build(root, members)
}

// Result is the outcome of Run.
type Result struct {
	Release *Release
	Steps   []Step
	Report  *Report
}

// Releaser runs releases through a process runner.
type Releaser struct {
	runner process.Runner
	now    func() time.Time
}

// New returns a Releaser executing commands with runner.
func New(runner process.Runner) *Releaser {
	return &Releaser{runner: runner, now: time.Now}
}

// Run performs the release described by opts. With opts.ReadOnly only the
// version is computed; with opts.DryRun the steps are computed and
// recorded but not executed. The report is written to opts.Report when set,
// also when the release fails.
func (r *Releaser) Run(ctx context.Context, opts config.Options) (res *Result, err error) {
	rel, err := Prepare(opts)
	if err != nil {
		return nil, err
	}
	res = &Result{Release: rel}
	if opts.ReadOnly {
		return res, nil
	}

	steps, err := r.Steps(ctx, rel, opts)
	if err != nil {
		return nil, err
	}
	res.Steps = steps

	report := newReport(rel.Root.Name, rel.FromVersion, rel.Version, opts.DryRun, r.now())
	res.Report = report
	if opts.Report != "" {
		reportPath := ReportPath(opts.Report, report.StartTime)
		defer func() {
			if saveErr := report.Save(reportPath); saveErr != nil {
				if err == nil {
					err = saveErr
				} else {
					utils.LogWarning("could not write report: %v", saveErr)
				}
			}
		}()
	}

	records := make([]*StepRecord, 0, len(steps))
	for _, s := range steps {
		records = append(records, report.addStep(s))
	}

	if opts.DryRun {
		for _, rec := range records {
			report.setStepStatus(rec, StepSkipped)
		}
		report.finish(StatusDryRun, nil, r.now())
		return res, nil
	}

	report.setStatus(StatusRunning)
	for i, s := range steps {
		rec := records[i]
		if err := ctx.Err(); err != nil {
			report.finish(StatusFailed, err, r.now())
			return res, err
		}

		report.setStepStatus(rec, StepRunning)
		report.AddEvent(rec.ID, "started", s.String(), r.now())
		utils.LogInfo("%s", s.Name)

		if err := s.run(ctx); err != nil {
			report.setStepStatus(rec, StepFailed)
			report.AddEvent(rec.ID, "failed", err.Error(), r.now())
			err = fmt.Errorf("%s: %w", s.Name, err)
			report.finish(StatusFailed, err, r.now())
			return res, err
		}

		report.setStepStatus(rec, StepComplete)
		report.AddEvent(rec.ID, "completed", s.String(), r.now())
	}

	report.finish(StatusComplete, nil, r.now())
	utils.LogSuccess("Released %s %s", utils.Highlight(rel.Root.Name), utils.Highlight(rel.Version))
	return res, nil
}

// Steps turns a prepared release into the ordered step list. Enabled git
// steps need read-only git queries (work tree check, remote, branch),
// which run even for a dry run.
func (r *Releaser) Steps(ctx context.Context, rel *Release, opts config.Options) ([]Step, error) {
	dir := rel.Root.Dir
	version := rel.Version
	gitClient := git.New(r.runner, dir)

	var remote, branch string
	if opts.GitEnabled() {
		ok, err := gitClient.IsRepository(ctx)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, ErrNotRepository
		}
		if opts.GitPush {
			if remote, err = gitClient.ResolveRemote(ctx, opts.GitRemoteName); err != nil {
				return nil, err
			}
			if opts.GitCreateBranch {
				branch = opts.BranchName(version)
			} else if branch, err = gitClient.CurrentBranch(ctx); err != nil {
				return nil, err
			}
		}
	}

	var steps []Step

	if rel.Root.HasScript(scriptPreversion) {
		steps = append(steps, r.commandStep("Run preversion script", npmRun(dir, scriptPreversion)))
	}

	for _, action := range rel.Actions {
		cmd, err := CommandFor(action, rel.Workspace)
		if err != nil {
			return nil, err
		}
		steps = append(steps, r.commandStep(describe(action), cmd))
	}

	for _, file := range opts.JSONFiles {
		path := file
		if !filepath.IsAbs(path) {
			path = filepath.Join(dir, path)
		}
		steps = append(steps, Step{
			Name:     "Update version in " + file,
			JSONFile: path,
			Version:  version,
			run: func(context.Context) error {
				return manifest.UpdateVersionField(path, version)
			},
		})
	}

	if rel.Root.HasScript(scriptPostversion) {
		steps = append(steps, r.commandStep("Run postversion script", npmRun(dir, scriptPostversion)))
	}

	if opts.GitCreateBranch {
		name := opts.BranchName(version)
		steps = append(steps, Step{
			Name:    "Create branch " + name,
			Command: gitCommand(dir, "checkout", "-b", name),
			run:     func(ctx context.Context) error { return gitClient.CreateBranch(ctx, name) },
		})
	}
	if !opts.NoGitCommit {
		msg := opts.CommitMessage(version)
		steps = append(steps, Step{
			Name:    "Commit release",
			Command: gitCommand(dir, "commit", "--all", "-m", msg),
			run:     func(ctx context.Context) error { return gitClient.Commit(ctx, msg) },
		})
	}
	if !opts.NoGitTag {
		tag := opts.TagName(version)
		steps = append(steps, Step{
			Name:    "Tag " + tag,
			Command: gitCommand(dir, "tag", "-a", tag, "-m", tag),
			run:     func(ctx context.Context) error { return gitClient.Tag(ctx, tag, tag) },
		})
	}
	if opts.GitPush {
		steps = append(steps, Step{
			Name:    fmt.Sprintf("Push %s to %s", branch, remote),
			Command: gitCommand(dir, "push", remote, branch),
			run:     func(ctx context.Context) error { return gitClient.Push(ctx, remote, branch) },
		})
		if !opts.NoGitTag {
			steps = append(steps, Step{
				Name:    "Push tags to " + remote,
				Command: gitCommand(dir, "push", remote, "--tags"),
				run:     func(ctx context.Context) error { return gitClient.PushTags(ctx, remote) },
			})
		}
	}
	return steps, nil
}

func (r *Releaser) commandStep(name string, cmd process.Command) Step {
	return Step{
		Name:    name,
		Command: cmd,
		run: func(ctx context.Context) error {
			_, err := r.runner.Run(ctx, cmd.Dir, cmd.Name, cmd.Args...)
			return err
		},
	}
}

func describe(action propagation.Action) string {
	switch a := action.(type) {
	case propagation.UpdateMemberVersion:
		return fmt.Sprintf("Set %s version to %s", a.Member, a.Version)
	case propagation.UpdateRootVersion:
		return fmt.Sprintf("Set root version to %s", a.Version)
	case propagation.RewriteDependency:
		return fmt.Sprintf("Point %s %s on %s to %s", a.Member, a.Kind, a.Dependency, a.Version)
	}
	return action.String()
}
