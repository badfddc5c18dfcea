package cmd

import (
	"fmt"
	"strings"

	"github.com/rochejul/npmversion-sub000/internal/release"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/spf13/cobra"
)

var orderCmd = &cobra.Command{
	Use:   "order",
	Short: "Print workspace members in dependency order",
	Long:  `List the workspace members so that every member comes after the members it depends on.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := utils.ValidateWorkingDirectory(workingDir)
		if err != nil {
			return err
		}

		ws, err := release.LoadWorkspace(dir)
		if err != nil {
			return err
		}
		if ws.IsLeaf() {
			utils.LogWarning("%s has no workspace members", ws.Name())
			return nil
		}

		order, err := ws.DependenciesOrder()
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, name := range order {
			deps := ws.Dependencies(name)
			if len(deps) == 0 {
				fmt.Fprintln(out, name)
				continue
			}
			fmt.Fprintf(out, "%s (depends on %s)\n", name, strings.Join(deps, ", "))
		}
		return nil
	},
}

func init() {
	registerWorkingDirFlag(orderCmd)
	rootCmd.AddCommand(orderCmd)
}
