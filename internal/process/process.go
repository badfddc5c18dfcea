// Package process runs external commands (npm, git) one at a time.
package process

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/rochejul/npmversion-sub000/internal/utils"
)

// execCommand allows us to mock exec.CommandContext in tests
var execCommand = exec.CommandContext

// Runner runs a command in dir and returns its trimmed standard output.
type Runner interface {
	Run(ctx context.Context, dir, name string, args ...string) (string, error)
}

// Command is a fully resolved command line.
type Command struct {
	Dir  string
	Name string
	Args []string
}

// String renders the command line with arguments quoted when needed.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, arg := range c.Args {
		parts = append(parts, quote(arg))
	}
	return strings.Join(parts, " ")
}

func quote(arg string) string {
	if arg == "" {
		return `""`
	}
	if strings.ContainsAny(arg, " \t\n\"'$`\\|&;<>()*?") {
		return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
	}
	return arg
}

// ExternalCommandError reports a command that could not be started or
// exited with a non-zero status.
type ExternalCommandError struct {
	Command  Command
	ExitCode int
	Stderr   string
	Err      error
}

func (e *ExternalCommandError) Error() string {
	msg := fmt.Sprintf("command %q failed in %s", e.Command.String(), e.Command.Dir)
	if e.ExitCode > 0 {
		msg += fmt.Sprintf(" with exit code %d", e.ExitCode)
	}
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	} else if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ExternalCommandError) Unwrap() error {
	return e.Err
}

// ExecRunner runs commands on the host.
type ExecRunner struct{}

// NewExecRunner returns a Runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run executes name with args in dir and waits for it to finish.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) (string, error) {
	command := Command{Dir: dir, Name: name, Args: args}
	utils.LogVerbose("$ %s", command)

	cmd := execCommand(ctx, name, args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		cmdErr := &ExternalCommandError{
			Command: command,
			Stderr:  strings.TrimSpace(stderr.String()),
			Err:     err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			cmdErr.ExitCode = exitErr.ExitCode()
		}
		return "", cmdErr
	}

	out := strings.TrimSpace(stdout.String())
	if out != "" {
		utils.LogDebug("%s", out)
	}
	return out, nil
}
