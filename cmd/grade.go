package cmd

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/xkilldash9x/verdict-cli/internal/config"
	"github.com/xkilldash9x/verdict-cli/internal/grader"
	"github.com/xkilldash9x/verdict-cli/internal/observability"
	"github.com/xkilldash9x/verdict-cli/internal/reporting"
	"github.com/xkilldash9x/verdict-cli/internal/store"
	"github.com/xkilldash9x/verdict-cli/internal/validate"
	"go.uber.org/zap"
)

var (
	gradeDefinitionPath string
	gradeRunsDir        string
	gradeDatabaseURL    string
	gradeOutputPath     string
	gradeOutputFormat   string
	gradeConcurrency    int
)

var gradeCmd = &cobra.Command{
	Use:   "grade",
	Short: "Grade recorded agent runs against task definitions.",
	Long: `Grade evaluates every run's interaction record against the declared
validation checks of each task definition, and reports per-run verdicts plus
a correct/incorrect tally per task.

Runs are read either from a directory of exported JSON artifacts (--runs-dir)
or straight from the interaction store database (--database-url).`,
	RunE: runGrade,
}

func init() {
	gradeCmd.Flags().StringVarP(&gradeDefinitionPath, "definition", "d", "", "path to the task definition JSON file (required)")
	gradeCmd.Flags().StringVar(&gradeRunsDir, "runs-dir", "", "directory of per-run JSON interaction records")
	gradeCmd.Flags().StringVar(&gradeDatabaseURL, "database-url", "", "interaction store Postgres URL (overrides config)")
	gradeCmd.Flags().StringVarP(&gradeOutputPath, "output", "o", "", "report output path (default stdout)")
	gradeCmd.Flags().StringVar(&gradeOutputFormat, "format", "json", "report output format")
	gradeCmd.Flags().IntVar(&gradeConcurrency, "concurrency", 0, "override engine.worker_concurrency")
	gradeCmd.MarkFlagRequired("definition")
	rootCmd.AddCommand(gradeCmd)
}

func runGrade(cmd *cobra.Command, args []string) error {
	logger := observability.GetLogger()

	cfg, err := config.NewConfigFromViper(viper.GetViper())
	if err != nil {
		return err
	}
	if gradeConcurrency > 0 {
		cfg.SetEngineWorkerConcurrency(gradeConcurrency)
	}
	if gradeDatabaseURL != "" {
		cfg.SetDatabaseURL(gradeDatabaseURL)
	}

	// Definitions are validated in full before any record is touched;
	// a malformed check is a configuration error, not a grading result.
	defs, err := validate.LoadDefinitions(gradeDefinitionPath)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	source, runIDs, cleanup, err := openRunSource(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(runIDs) == 0 {
		return fmt.Errorf("no runs found to grade")
	}

	reporter, err := reporting.New(gradeOutputFormat, gradeOutputPath)
	if err != nil {
		return err
	}

	g := grader.New(cfg, logger, source)
	for i := range defs {
		summary, err := g.GradeAll(ctx, &defs[i], runIDs)
		if err != nil {
			reporter.Close()
			return err
		}
		if err := reporter.Write(summary); err != nil {
			reporter.Close()
			return err
		}
	}

	if err := reporter.Close(); err != nil {
		return err
	}

	logger.Info("Grading complete",
		zap.Int("tasks", len(defs)),
		zap.Int("runs", len(runIDs)),
	)
	return nil
}

// openRunSource picks the record source: a directory of JSON artifacts when
// --runs-dir is set, otherwise the Postgres interaction store.
func openRunSource(ctx context.Context, cfg config.Interface, logger *zap.Logger) (grader.Source, []string, func(), error) {
	if gradeRunsDir != "" {
		paths, err := store.FindRunFiles(gradeRunsDir)
		if err != nil {
			return nil, nil, nil, err
		}
		return store.FileSource{}, paths, func() {}, nil
	}

	dbURL := cfg.Database().URL
	if dbURL == "" {
		return nil, nil, nil, fmt.Errorf("either --runs-dir or a database URL (--database-url / database.url) is required")
	}

	pool, err := pgxpool.New(ctx, dbURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to connect to interaction store: %w", err)
	}

	st, err := store.New(ctx, pool, logger)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	runIDs, err := st.ListRunIDs(ctx)
	if err != nil {
		pool.Close()
		return nil, nil, nil, err
	}
	return st, runIDs, pool.Close, nil
}
