// Package git wraps the handful of git commands a release needs.
package git

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rochejul/npmversion-sub000/internal/process"
)

// ErrNoRemote is returned when a push is requested and the repository has
// no remote configured.
var ErrNoRemote = errors.New("git: repository has no remote")

// Client runs git in a fixed working directory.
type Client struct {
	runner process.Runner
	dir    string
}

// New returns a Client running git through runner inside dir.
func New(runner process.Runner, dir string) *Client {
	return &Client{runner: runner, dir: dir}
}

func (c *Client) git(ctx context.Context, args ...string) (string, error) {
	return c.runner.Run(ctx, c.dir, "git", args...)
}

// IsRepository reports whether the working directory is inside a git work
// tree. A failing git command means it is not.
func (c *Client) IsRepository(ctx context.Context) (bool, error) {
	out, err := c.git(ctx, "rev-parse", "--is-inside-work-tree")
	if err != nil {
		var cmdErr *process.ExternalCommandError
		if errors.As(err, &cmdErr) && cmdErr.ExitCode > 0 {
			return false, nil
		}
		return false, err
	}
	return strings.TrimSpace(out) == "true", nil
}

// Remotes lists the configured remote names.
func (c *Client) Remotes(ctx context.Context) ([]string, error) {
	out, err := c.git(ctx, "remote")
	if err != nil {
		return nil, err
	}
	var remotes []string
	for _, line := range strings.Split(out, "\n") {
		if name := strings.TrimSpace(line); name != "" {
			remotes = append(remotes, name)
		}
	}
	return remotes, nil
}

// ResolveRemote returns preferred when it is a configured remote, or the
// first configured remote when preferred is empty.
func (c *Client) ResolveRemote(ctx context.Context, preferred string) (string, error) {
	remotes, err := c.Remotes(ctx)
	if err != nil {
		return "", err
	}
	if len(remotes) == 0 {
		return "", ErrNoRemote
	}
	if preferred == "" {
		return remotes[0], nil
	}
	for _, r := range remotes {
		if r == preferred {
			return r, nil
		}
	}
	return "", fmt.Errorf("git: remote %q not found (available: %s)", preferred, strings.Join(remotes, ", "))
}

// CurrentBranch returns the checked out branch name.
func (c *Client) CurrentBranch(ctx context.Context) (string, error) {
	return c.git(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// CreateBranch creates and checks out a new branch.
func (c *Client) CreateBranch(ctx context.Context, name string) error {
	_, err := c.git(ctx, "checkout", "-b", name)
	return err
}

// Commit commits every tracked change.
func (c *Client) Commit(ctx context.Context, message string) error {
	_, err := c.git(ctx, "commit", "--all", "-m", message)
	return err
}

// Tag creates an annotated tag on HEAD.
func (c *Client) Tag(ctx context.Context, name, message string) error {
	_, err := c.git(ctx, "tag", "-a", name, "-m", message)
	return err
}

// Push pushes branch to remote.
func (c *Client) Push(ctx context.Context, remote, branch string) error {
	_, err := c.git(ctx, "push", remote, branch)
	return err
}

// PushTags pushes all tags to remote.
func (c *Client) PushTags(ctx context.Context, remote string) error {
	_, err := c.git(ctx, "push", remote, "--tags")
	return err
}
