package validate

import (
	"strconv"

	"github.com/xkilldash9x/verdict-cli/api/schemas"
	"go.uber.org/zap"
)

// Engine evaluates task definitions against interaction records. It holds
// no mutable state beyond its logger, so a single Engine is safe for any
// number of concurrent evaluations.
type Engine struct {
	logger *zap.Logger
}

// NewEngine creates a new validation engine.
func NewEngine(logger *zap.Logger) *Engine {
	return &Engine{
		logger: logger.Named("validate"),
	}
}

// Evaluate grades one interaction record against a task definition. The
// definition is validated first; a malformed definition is the only error
// path. Every declared check is evaluated (no short-circuit) so the report
// names each individual result, not just the aggregate.
func (e *Engine) Evaluate(def *schemas.TaskDefinition, rec *schemas.InteractionRecord) (*schemas.Report, error) {
	if err := ValidateDefinition(def); err != nil {
		return nil, err
	}

	labels := newLabeler()
	results := make(map[string]bool)
	overall := e.evalNode(&def.Checks, rec, results, labels)

	e.logger.Debug("Evaluated task definition against run",
		zap.String("task_id", def.TaskID),
		zap.String("run_id", rec.RunID),
		zap.Bool("overall", overall),
		zap.Int("checks", len(results)),
	)

	return &schemas.Report{
		TaskID:  def.TaskID,
		RunID:   rec.RunID,
		Overall: overall,
		Results: results,
	}, nil
}

// evalNode computes the final boolean of one check node, recording every
// predicate's post-invert result (and any labeled group's result) in the
// result map.
func (e *Engine) evalNode(node *schemas.CheckNode, rec *schemas.InteractionRecord, results map[string]bool, labels *labeler) bool {
	if node.Check != "" {
		fn := catalog[node.Check].eval
		if node.Invert {
			fn = inverted(fn)
		}
		final := fn(rec, node.Params)
		results[labels.keyFor(node)] = final
		return final
	}

	op := node.Op
	if op == "" {
		op = schemas.GroupAnd
	}

	// Children are pure and order-independent, so all of them are evaluated
	// even once the group's outcome is decided; diagnostic reporting needs
	// the full set.
	agg := op == schemas.GroupAnd
	for i := range node.Checks {
		child := e.evalNode(&node.Checks[i], rec, results, labels)
		if op == schemas.GroupAnd {
			agg = agg && child
		} else {
			agg = agg || child
		}
	}

	if node.Label != "" {
		results[labels.keyFor(node)] = agg
	}
	return agg
}

// labeler assigns a stable, unique result-map key to each check: the
// authored label when present, otherwise the predicate name, with a
// positional suffix on repeats ("EXACT_CLICK_MATCH_BY_ID#2").
type labeler struct {
	seen map[string]int
}

func newLabeler() *labeler {
	return &labeler{seen: make(map[string]int)}
}

func (l *labeler) keyFor(node *schemas.CheckNode) string {
	base := node.Label
	if base == "" {
		if node.IsGroup() {
			base = "group"
		} else {
			base = string(node.Check)
		}
	}

	l.seen[base]++
	if n := l.seen[base]; n > 1 {
		return base + "#" + strconv.Itoa(n)
	}
	return base
}
