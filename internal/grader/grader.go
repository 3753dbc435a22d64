package grader

import (
	"context"

	"github.com/xkilldash9x/verdict-cli/api/schemas"
	"github.com/xkilldash9x/verdict-cli/internal/config"
	"github.com/xkilldash9x/verdict-cli/internal/validate"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Source loads one finished interaction record. Both the Postgres store and
// the JSON artifact reader satisfy it.
type Source interface {
	GetRun(ctx context.Context, runID string) (*schemas.InteractionRecord, error)
}

// Grader evaluates one task definition against many runs. Each run is an
// independent, pure computation over its own read-only record, so runs are
// graded in parallel with no shared mutable state beyond the result
// collection.
type Grader struct {
	cfg    config.Interface
	logger *zap.Logger
	engine *validate.Engine
	source Source
}

// New creates a grader backed by the given record source.
func New(cfg config.Interface, logger *zap.Logger, source Source) *Grader {
	return &Grader{
		cfg:    cfg,
		logger: logger.Named("grader"),
		engine: validate.NewEngine(logger),
		source: source,
	}
}

// GradeAll grades every listed run against the task definition and tallies
// correct versus incorrect verdicts. The definition is validated up front;
// a malformed definition aborts the whole batch before any store access.
//
// A run whose record cannot be loaded is reported under Errors, not counted
// as incorrect: "the agent failed the task" and "the record was unreadable"
// must stay distinguishable.
func (g *Grader) GradeAll(ctx context.Context, def *schemas.TaskDefinition, runIDs []string) (*schemas.TaskSummary, error) {
	if err := validate.ValidateDefinition(def); err != nil {
		return nil, err
	}

	summary := &schemas.TaskSummary{TaskID: def.TaskID}

	// Indexed slots keep report order deterministic regardless of which
	// worker finishes first.
	reports := make([]*schemas.Report, len(runIDs))
	runErrs := make([]*schemas.RunError, len(runIDs))

	limit := g.cfg.Engine().WorkerConcurrency
	if limit < 1 {
		limit = 1
	}

	grp, grpCtx := errgroup.WithContext(ctx)
	grp.SetLimit(limit)

	for i, runID := range runIDs {
		i, runID := i, runID
		grp.Go(func() error {
			if err := grpCtx.Err(); err != nil {
				return err
			}

			rec, err := g.source.GetRun(grpCtx, runID)
			if err != nil {
				g.logger.Warn("Skipping unreadable run",
					zap.String("run_id", runID),
					zap.Error(err),
				)
				runErrs[i] = &schemas.RunError{RunID: runID, Error: err.Error()}
				return nil
			}

			report, err := g.engine.Evaluate(def, rec)
			if err != nil {
				// Unreachable after the eager validation above, but a
				// definition error must never be swallowed.
				return err
			}
			reports[i] = report
			return nil
		})
	}

	if err := grp.Wait(); err != nil {
		return nil, err
	}

	for i := range runIDs {
		if runErrs[i] != nil {
			summary.Errors = append(summary.Errors, *runErrs[i])
			continue
		}
		summary.Reports = append(summary.Reports, *reports[i])
		if reports[i].Overall {
			summary.Correct++
		} else {
			summary.Incorrect++
		}
	}

	g.logger.Info("Graded task runs",
		zap.String("task_id", def.TaskID),
		zap.Int("correct", summary.Correct),
		zap.Int("incorrect", summary.Incorrect),
		zap.Int("unreadable", len(summary.Errors)),
	)
	return summary, nil
}

// GradeRun grades a single run. It is a convenience wrapper used by the CLI
// when only one record is in play.
func (g *Grader) GradeRun(ctx context.Context, def *schemas.TaskDefinition, runID string) (*schemas.Report, error) {
	rec, err := g.source.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	return g.engine.Evaluate(def, rec)
}
