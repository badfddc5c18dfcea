package cmd

import (
	"fmt"

	"github.com/rochejul/npmversion-sub000/internal/utils"
	"github.com/rochejul/npmversion-sub000/internal/validator"

	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate environment setup",
	Long:  `Check that npm and git are installed and that the configuration of the working directory is valid.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		utils.LogInfo("Validating environment...")

		if err := validator.ValidateExternalTools(validator.RequiredTools(true)); err != nil {
			return fmt.Errorf("external tools validation failed: %w", err)
		}
		utils.LogSuccess("External tools: OK")

		if _, err := loadOptions(cmd); err != nil {
			return fmt.Errorf("configuration validation failed: %w", err)
		}
		utils.LogSuccess("Configuration: OK")

		utils.LogSuccess("Environment validation completed successfully")
		return nil
	},
}

func init() {
	registerWorkingDirFlag(validateCmd)
	rootCmd.AddCommand(validateCmd)
}
