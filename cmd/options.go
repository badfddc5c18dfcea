package cmd

import (
	"fmt"

	"github.com/rochejul/npmversion-sub000/internal/config"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// Values of the flags shared by the commands computing a version
var (
	workingDir string
	increment  string
	preid      string
	forcePreid bool
	unpreid    bool
)

// Values of the flags only the release command has
var (
	readOnly        bool
	noGitCommit     bool
	noGitTag        bool
	gitPush         bool
	gitCreateBranch bool
	gitBranchPrefix string
	gitRemoteName   string
	gitCommitMsg    string
	gitTagMsg       string
	jsonFiles       []string
	dryRun          bool
	reportPath      string
)

func registerWorkingDirFlag(cmd *cobra.Command) {
	cmd.Flags().StringVar(&workingDir, "cwd", ".", "Directory of the root package.json")
}

// registerVersionFlags adds --cwd and the increment flags to the commands
// that compute a version.
func registerVersionFlags(cmd *cobra.Command) {
	registerWorkingDirFlag(cmd)
	f := cmd.Flags()
	f.StringVarP(&increment, "increment", "i", config.DefaultIncrement,
		"Increment level: major, minor, patch, premajor, preminor, prepatch, prerelease")
	f.StringVarP(&preid, "preid", "p", "", "Prerelease identifier, e.g. beta")
	f.BoolVar(&forcePreid, "force-preid", false, "Append the prerelease identifier even for major, minor and patch")
	f.BoolVar(&unpreid, "unpreid", false, "Drop the prerelease part of the current version")
}

func registerReleaseFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.BoolVar(&readOnly, "read-only", false, "Only print the next version")
	f.BoolVar(&noGitCommit, "nogit-commit", false, "Do not commit the release")
	f.BoolVar(&noGitTag, "nogit-tag", false, "Do not tag the release")
	f.BoolVar(&gitPush, "git-push", false, "Push the release branch and tags")
	f.BoolVar(&gitCreateBranch, "git-create-branch", false, "Create a release branch before committing")
	f.StringVar(&gitBranchPrefix, "git-branch-prefix", config.DefaultBranchPrefix, "Prefix of the release branch name")
	f.StringVar(&gitRemoteName, "git-remote-name", "", "Remote to push to (default: first configured remote)")
	f.StringVar(&gitCommitMsg, "git-commit-message", config.DefaultCommitMessage, "Commit message, %s is the version")
	f.StringVar(&gitTagMsg, "git-tag-message", config.DefaultTagMessage, "Tag name and message, %s is the version")
	f.StringSliceVarP(&jsonFiles, "json-files", "j", nil, "Extra JSON files whose version field is updated")
	f.BoolVarP(&dryRun, "dry-run", "n", false, "Print the release steps without running them")
	f.StringVar(&reportPath, "report", "", "Write a YAML run report to this file or directory")
}

// loadOptions merges defaults, the rc file and the flags set on the
// command line, in that order.
func loadOptions(cmd *cobra.Command) (config.Options, error) {
	dir, err := utils.ValidateWorkingDirectory(workingDir)
	if err != nil {
		return config.Options{}, err
	}

	opts := config.Defaults(dir)
	rc, err := config.LoadRCFile(dir)
	if err != nil {
		return opts, err
	}
	if rc != nil {
		utils.LogVerbose("Using configuration from %s", rc.Path)
		rc.Apply(&opts)
	}

	applyFlags(cmd.Flags(), &opts)

	if err := opts.Validate(); err != nil {
		return opts, fmt.Errorf("invalid options: %w", err)
	}
	return opts, nil
}

func applyFlags(fs *pflag.FlagSet, opts *config.Options) {
	set := func(name string, apply func()) {
		if fs.Changed(name) {
			apply()
		}
	}

	set("increment", func() { opts.Increment = increment })
	set("preid", func() { opts.Preid = preid })
	set("force-preid", func() { opts.ForcePreid = forcePreid })
	set("unpreid", func() { opts.Unpreid = unpreid })
	set("read-only", func() { opts.ReadOnly = readOnly })
	set("nogit-commit", func() { opts.NoGitCommit = noGitCommit })
	set("nogit-tag", func() { opts.NoGitTag = noGitTag })
	set("git-push", func() { opts.GitPush = gitPush })
	set("git-create-branch", func() { opts.GitCreateBranch = gitCreateBranch })
	set("git-branch-prefix", func() { opts.GitBranchPrefix = gitBranchPrefix })
	set("git-remote-name", func() { opts.GitRemoteName = gitRemoteName })
	set("git-commit-message", func() { opts.GitCommitMessage = gitCommitMsg })
	set("git-tag-message", func() { opts.GitTagMessage = gitTagMsg })
	set("json-files", func() { opts.JSONFiles = append([]string{}, jsonFiles...) })
	set("dry-run", func() { opts.DryRun = dryRun })
	set("report", func() { opts.Report = reportPath })
}
