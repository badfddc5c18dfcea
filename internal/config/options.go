// Package config holds the release options and their sources: built-in
// defaults, the .npmversionrc file and command line flags, in increasing
// order of precedence.
package config

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/rochejul/npmversion-sub000/internal/utils"
)

const (
	DefaultIncrement     = "patch"
	DefaultCommitMessage = "Release version: %s"
	DefaultTagMessage    = "v%s"
	DefaultBranchPrefix  = "release/"

	versionPlaceholder = "%s"
)

var (
	validate       *validator.Validate
	preidPattern   = regexp.MustCompile(`^[0-9A-Za-z-]+$`)
	fieldNameMatch = regexp.MustCompile(`^Options\.`)
)

func init() {
	validate = validator.New()
	_ = validate.RegisterValidation("preid", validatePreid)
}

// validatePreid accepts a single semver prerelease identifier.
func validatePreid(fl validator.FieldLevel) bool {
	return preidPattern.MatchString(fl.Field().String())
}

// Options drives one npmversion invocation.
type Options struct {
	// Dir is the root package directory.
	Dir string `validate:"required"`

	Increment  string `validate:"required,oneof=major minor patch premajor preminor prepatch prerelease"`
	Preid      string `validate:"omitempty,preid"`
	ForcePreid bool
	Unpreid    bool
	ReadOnly   bool

	NoGitCommit      bool
	NoGitTag         bool
	GitPush          bool
	GitCreateBranch  bool
	GitBranchPrefix  string
	GitRemoteName    string
	GitCommitMessage string `validate:"required,contains=%s"`
	GitTagMessage    string `validate:"required,contains=%s"`

	JSONFiles []string `validate:"dive,required"`

	DryRun bool
	Report string
}

// Defaults returns the options used when neither the rc file nor flags say
// otherwise.
func Defaults(dir string) Options {
	return Options{
		Dir:              dir,
		Increment:        DefaultIncrement,
		GitBranchPrefix:  DefaultBranchPrefix,
		GitCommitMessage: DefaultCommitMessage,
		GitTagMessage:    DefaultTagMessage,
	}
}

// Validate checks the merged options.
func (o *Options) Validate() error {
	err := validate.Struct(o)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	return &utils.ValidationError{
		Field:   fieldNameMatch.ReplaceAllString(fe.Namespace(), ""),
		Message: describe(fe),
	}
}

func describe(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "oneof":
		return fmt.Sprintf("must be one of: %s", strings.ReplaceAll(fe.Param(), " ", ", "))
	case "contains":
		return fmt.Sprintf("must contain the %q version placeholder", fe.Param())
	case "preid":
		return fmt.Sprintf("%q is not a valid prerelease identifier", fe.Value())
	}
	return fmt.Sprintf("failed the %q check", fe.Tag())
}

// GitEnabled reports whether any git step runs.
func (o *Options) GitEnabled() bool {
	return !o.NoGitCommit || !o.NoGitTag || o.GitPush || o.GitCreateBranch
}

// CommitMessage renders the commit message for version.
func (o *Options) CommitMessage(version string) string {
	return render(o.GitCommitMessage, version)
}

// TagName renders the tag name, also used as the tag annotation.
func (o *Options) TagName(version string) string {
	return render(o.GitTagMessage, version)
}

// BranchName renders the release branch name.
func (o *Options) BranchName(version string) string {
	return o.GitBranchPrefix + version
}

func render(template, version string) string {
	return strings.ReplaceAll(template, versionPlaceholder, version)
}
