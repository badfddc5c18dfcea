package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/rochejul/npmversion-sub000/internal/release"
	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/spf13/cobra"
)

// removeReport deletes one report file, replaced in tests
var removeReport = os.Remove

var (
	reportDir     string
	keepLatest    int
	olderThanDays int
	cleanupDryRun bool
)

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Clean up old release reports",
	Long:  `Remove timestamped run reports written with --report <dir> based on age or count.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if reportDir == "" {
			return fmt.Errorf("report directory is required")
		}

		reports, err := release.FindReports(reportDir)
		if err != nil {
			return err
		}
		if len(reports) == 0 {
			utils.LogInfo("No release reports found.")
			return nil
		}

		toDelete := release.SelectStale(reports, keepLatest, time.Duration(olderThanDays)*24*time.Hour, time.Now())
		if len(toDelete) == 0 {
			utils.LogInfo("No reports to delete.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Found %d reports to delete:\n", len(toDelete))
		for _, r := range toDelete {
			fmt.Fprintf(out, "- %s\n", r.Path)
		}

		if cleanupDryRun {
			utils.LogInfo("Dry run - no reports were deleted.")
			return nil
		}

		failed := 0
		for _, r := range toDelete {
			utils.LogVerbose("Deleting %s...", r.Path)
			if err := removeReport(r.Path); err != nil {
				utils.LogError("Error deleting %s: %v", r.Path, err)
				failed++
			}
		}
		if failed > 0 {
			return fmt.Errorf("failed to delete %d of %d reports", failed, len(toDelete))
		}

		utils.LogSuccess("Cleanup completed.")
		return nil
	},
}

func init() {
	cleanupCmd.Flags().StringVarP(&reportDir, "dir", "d", "", "Report directory to clean up (required)")
	cleanupCmd.Flags().IntVarP(&keepLatest, "keep-latest", "k", 0, "Keep this many latest reports")
	cleanupCmd.Flags().IntVarP(&olderThanDays, "older-than", "o", 0, "Delete reports older than this many days")
	cleanupCmd.Flags().BoolVar(&cleanupDryRun, "dry-run", false, "Show what would be deleted without actually deleting")

	_ = cleanupCmd.MarkFlagRequired("dir")
	rootCmd.AddCommand(cleanupCmd)
}
