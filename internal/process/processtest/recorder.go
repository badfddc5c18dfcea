// Package processtest provides a recording process.Runner for tests.
package processtest

import (
	"context"
	"strings"
	"sync"

	"github.com/rochejul/npmversion-sub000/internal/process"
)

// Response is the canned result of a command.
type Response struct {
	Output string
	Err    error
}

// Recorder records every command it is asked to run and answers with the
// response registered for the command line, or an empty output.
type Recorder struct {
	mu        sync.Mutex
	Commands  []process.Command
	Responses map[string]Response
}

// NewRecorder returns an empty Recorder.
func NewRecorder() *Recorder {
	return &Recorder{Responses: make(map[string]Response)}
}

// On registers the response for the command line "name arg1 arg2...".
func (r *Recorder) On(line string, output string, err error) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Responses[line] = Response{Output: output, Err: err}
	return r
}

// Run implements process.Runner.
func (r *Recorder) Run(_ context.Context, dir, name string, args ...string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.Commands = append(r.Commands, process.Command{Dir: dir, Name: name, Args: append([]string{}, args...)})
	line := strings.Join(append([]string{name}, args...), " ")
	resp := r.Responses[line]
	return resp.Output, resp.Err
}

// Lines returns the recorded commands as plain "name args..." strings.
func (r *Recorder) Lines() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	lines := make([]string, 0, len(r.Commands))
	for _, c := range r.Commands {
		lines = append(lines, strings.Join(append([]string{c.Name}, c.Args...), " "))
	}
	return lines
}
