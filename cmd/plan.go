package cmd

import (
	"fmt"

	"github.com/rochejul/npmversion-sub000/internal/release"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/spf13/cobra"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show the version propagation plan",
	Long: `Compute the next version and print, in execution order, every member
version update and workspace dependency rewrite a release would perform.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := loadOptions(cmd)
		if err != nil {
			return err
		}

		rel, err := release.Prepare(opts)
		if err != nil {
			return err
		}

		utils.LogInfo("%s %s -> %s", utils.Highlight(rel.Root.Name), rel.FromVersion, utils.Highlight(rel.Version))
		out := cmd.OutOrStdout()
		for _, action := range rel.Actions {
			command, err := release.CommandFor(action, rel.Workspace)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s\n", action)
			utils.LogVerbose("$ %s (in %s)", command, command.Dir)
		}
		return nil
	},
}

func init() {
	registerVersionFlags(planCmd)
	rootCmd.AddCommand(planCmd)
}
