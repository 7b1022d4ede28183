package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/queuenet/queuenet/sim/scenario"
)

var validateScenarioFile string // Path to the scenario YAML file to check

// validateCmd checks a scenario file without running it, reporting the
// first problem found: parse errors, unknown keys, or any network rule
// the engine would reject at construction.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate a scenario file without running it",
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := scenario.Load(validateScenarioFile)
		if err != nil {
			return err
		}
		if err := sc.Validate(); err != nil {
			return fmt.Errorf("invalid scenario %s: %w", validateScenarioFile, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", validateScenarioFile)
		return nil
	},
}

func init() {
	validateCmd.Flags().StringVar(&validateScenarioFile, "scenario", "", "Path to the scenario YAML file")
	_ = validateCmd.MarkFlagRequired("scenario")

	// Attach `validate` as a subcommand to `root`
	rootCmd.AddCommand(validateCmd)
}
