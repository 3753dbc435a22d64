package cmd

import (
	"github.com/spf13/cobra"
	"github.com/xkilldash9x/verdict-cli/internal/observability"
	"github.com/xkilldash9x/verdict-cli/internal/validate"
	"go.uber.org/zap"
)

var checkDefinitionPath string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate task definitions without grading anything.",
	Long: `Check parses and validates every task definition in the file: predicate
names against the catalog, required parameters, and group structure. It
touches no interaction records.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		defs, err := validate.LoadDefinitions(checkDefinitionPath)
		if err != nil {
			return err
		}

		observability.GetLogger().Info("Task definitions are valid",
			zap.String("file", checkDefinitionPath),
			zap.Int("tasks", len(defs)),
		)
		return nil
	},
}

func init() {
	checkCmd.Flags().StringVarP(&checkDefinitionPath, "definition", "d", "", "path to the task definition JSON file (required)")
	checkCmd.MarkFlagRequired("definition")
	rootCmd.AddCommand(checkCmd)
}
