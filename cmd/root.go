package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rochejul/npmversion-sub000/internal/process"
	"github.com/rochejul/npmversion-sub000/internal/release"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/rochejul/npmversion-sub000/internal/validator"
	"github.com/spf13/cobra"
)

var (
	// verbosityLevel is the command-line flag for setting the log level
	verbosityLevel string
)

var rootCmd = &cobra.Command{
	Use:   "npmversion",
	Short: "Bump the version of an npm package or workspace",
	Long: `npmversion increments the version of an npm package, keeps every
member of an npm workspace and their cross dependencies in step, and records
the release with a git commit, tag and push.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Set the global log level based on the flag
		logLevel := utils.LogLevelFromString(verbosityLevel)
		utils.SetLogLevel(logLevel)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}

		if !opts.ReadOnly && !opts.DryRun {
			if err := validator.ValidateExternalTools(validator.RequiredTools(opts.GitEnabled())); err != nil {
				return fmt.Errorf("dependency validation failed: %w", err)
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()

		res, err := release.New(process.NewExecRunner()).Run(ctx, opts)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if opts.ReadOnly {
			fmt.Fprintln(out, res.Release.Version)
			return nil
		}
		if opts.DryRun {
			utils.LogInfo("Dry run: %s %s -> %s", utils.Highlight(res.Release.Root.Name),
				res.Release.FromVersion, utils.Highlight(res.Release.Version))
			for _, s := range res.Steps {
				fmt.Fprintf(out, "[%s] %s\n", s.Dir(), s)
			}
		}
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Initialize global flags
	rootCmd.PersistentFlags().StringVarP(&verbosityLevel, "log-level", "l", "normal",
		"Set the logging verbosity level: quiet, normal, verbose, debug")
	registerVersionFlags(rootCmd)
	registerReleaseFlags(rootCmd)
}
