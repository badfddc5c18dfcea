package utils

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
)

// ExecLookPath allows us to mock exec.LookPath in tests
var ExecLookPath = exec.LookPath

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Message string
	Err     error
}

func (e *ValidationError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Field, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidateRequiredDependency checks if a required command is available
func ValidateRequiredDependency(cmd string) error {
	if _, err := ExecLookPath(cmd); err != nil {
		return &ValidationError{
			Field:   cmd,
			Message: fmt.Sprintf("%s not found in PATH", cmd),
			Err:     err,
		}
	}
	return nil
}

// ValidateWorkingDirectory checks that dir exists and is a directory, and
// returns its absolute form.
func ValidateWorkingDirectory(dir string) (string, error) {
	if dir == "" {
		return "", &ValidationError{
			Field:   "cwd",
			Message: "working directory is required",
		}
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", &ValidationError{
			Field:   "cwd",
			Message: fmt.Sprintf("cannot resolve %s", dir),
			Err:     err,
		}
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", &ValidationError{
			Field:   "cwd",
			Message: fmt.Sprintf("working directory does not exist: %s", abs),
			Err:     err,
		}
	}
	if !info.IsDir() {
		return "", &ValidationError{
			Field:   "cwd",
			Message: fmt.Sprintf("working directory is not a directory: %s", abs),
		}
	}
	return abs, nil
}
