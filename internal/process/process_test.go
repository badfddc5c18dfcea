package process

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var originalExecCommand = execCommand

// fakeExecCommand re-runs the test binary as the command
func fakeExecCommand(ctx context.Context, command string, args ...string) *exec.Cmd {
	cs := []string{"-test.run=TestHelperProcess", "--", command}
	cs = append(cs, args...)
	cmd := exec.CommandContext(ctx, os.Args[0], cs...)
	cmd.Env = []string{"GO_WANT_HELPER_PROCESS=1"}
	return cmd
}

// TestHelperProcess is not a real test, it's used to mock exec.CommandContext
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	args = args[1:]

	if args[0] == "fail" {
		fmt.Fprintln(os.Stderr, "boom")
		os.Exit(3)
	}
	fmt.Printf("  %s  \n", strings.Join(args, " "))
	os.Exit(0)
}

func TestExecRunner_Run(t *testing.T) {
	execCommand = fakeExecCommand
	defer func() {
		execCommand = originalExecCommand
	}()

	out, err := NewExecRunner().Run(context.Background(), t.TempDir(), "npm", "version", "1.0.0")
	require.NoError(t, err)
	assert.Equal(t, "npm version 1.0.0", out)
}

func TestExecRunner_Failure(t *testing.T) {
	execCommand = fakeExecCommand
	defer func() {
		execCommand = originalExecCommand
	}()

	dir := t.TempDir()
	_, err := NewExecRunner().Run(context.Background(), dir, "fail", "now")
	require.Error(t, err)

	var cmdErr *ExternalCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 3, cmdErr.ExitCode)
	assert.Equal(t, "boom", cmdErr.Stderr)
	assert.Equal(t, Command{Dir: dir, Name: "fail", Args: []string{"now"}}, cmdErr.Command)
	assert.Contains(t, err.Error(), "exit code 3")
}

func TestExecRunner_MissingBinary(t *testing.T) {
	_, err := NewExecRunner().Run(context.Background(), t.TempDir(), "npmversion-does-not-exist")

	var cmdErr *ExternalCommandError
	require.True(t, errors.As(err, &cmdErr))
	assert.Equal(t, 0, cmdErr.ExitCode)
	assert.True(t, errors.Is(err, exec.ErrNotFound))
}

func TestCommand_String(t *testing.T) {
	tests := []struct {
		cmd  Command
		want string
	}{
		{Command{Name: "git", Args: []string{"tag", "v1.0.0"}}, "git tag v1.0.0"},
		{Command{Name: "git", Args: []string{"commit", "-m", "Release version: 1.0.0"}}, "git commit -m 'Release version: 1.0.0'"},
		{Command{Name: "git", Args: []string{"tag", "-m", "it's"}}, `git tag -m 'it'\''s'`},
		{Command{Name: "npm", Args: []string{""}}, `npm ""`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.cmd.String())
		})
	}
}
