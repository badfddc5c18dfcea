// Package validator checks that the external tools a release shells out to
// are installed.
package validator

import (
	"fmt"
	"os/exec"
	"strings"

	"github.com/rochejul/npmversion-sub000/internal/semver"
	"github.com/rochejul/npmversion-sub000/internal/utils"
)

// execCommand allows us to mock exec.Command in tests
var execCommand = exec.Command

// ExternalTool represents an external command-line tool requirement
type ExternalTool struct {
	Name        string
	VersionArgs []string
	Validate    func(output string) bool
}

// NPM bumps versions and rewrites workspace dependencies.
var NPM = ExternalTool{
	Name:        "npm",
	VersionArgs: []string{"--version"},
	Validate: func(output string) bool {
		_, err := semver.ParseVersion(strings.TrimSpace(output))
		return err == nil
	},
}

// Git commits, tags and pushes the release.
var Git = ExternalTool{
	Name:        "git",
	VersionArgs: []string{"--version"},
	Validate: func(output string) bool {
		return strings.HasPrefix(strings.TrimSpace(output), "git version")
	},
}

// RequiredTools lists the tools a release needs. git is only needed when a
// git step is enabled.
func RequiredTools(gitEnabled bool) []ExternalTool {
	if gitEnabled {
		return []ExternalTool{NPM, Git}
	}
	return []ExternalTool{NPM}
}

// ValidateExternalTools checks that every tool is in PATH and reports a
// version it recognizes.
func ValidateExternalTools(tools []ExternalTool) error {
	for _, tool := range tools {
		if err := utils.ValidateRequiredDependency(tool.Name); err != nil {
			return err
		}
		path, _ := utils.ExecLookPath(tool.Name)

		cmd := execCommand(path, tool.VersionArgs...)
		output, err := cmd.Output()
		if err != nil {
			return fmt.Errorf("failed to run %s: %w", tool.Name, err)
		}

		if !tool.Validate(string(output)) {
			return fmt.Errorf("invalid version of %s detected: %s", tool.Name, strings.TrimSpace(string(output)))
		}

		utils.LogVerbose("✓ %s %s found at %s", tool.Name, strings.TrimSpace(string(output)), path)
	}
	return nil
}
