package validate

import (
	"fmt"

	"github.com/xkilldash9x/verdict-cli/api/schemas"
)

// evalFunc answers one boolean fact-check against an interaction record.
// Implementations must be pure and total: a record with no matching events
// is a normal false result, never a failure.
type evalFunc func(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool

// paramCheck validates a predicate's parameters at definition time.
type paramCheck func(p schemas.PredicateParams) error

// predicate is one catalog entry: its evaluation logic plus the parameter
// contract enforced before any run is graded.
type predicate struct {
	eval     evalFunc
	validate paramCheck
}

// inverted wraps an evalFunc with negation. The invert flag is applied
// through this single wrapper as the last evaluation step, regardless of
// which predicate is wrapped; no predicate bakes negation into its own
// logic.
func inverted(fn evalFunc) evalFunc {
	return func(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
		return !fn(rec, p)
	}
}

// catalog is the fixed predicate vocabulary. Task definitions may only
// reference names registered here.
var catalog = map[schemas.PredicateName]predicate{
	schemas.PredHasNClicksByIDSubstring: {
		eval:     evalHasNClicksByIDSubstring,
		validate: needsIDSubstringAndCount,
	},
	schemas.PredExactClickMatchByID: {
		eval:     evalExactClickMatchByID,
		validate: needsElementID,
	},
	schemas.PredScratchpadSubstringMatch: {
		eval:     evalScratchpadSubstringMatch,
		validate: needsMatchString,
	},
	schemas.PredInputExistsByPath: {
		eval:     evalInputExistsByPath,
		validate: needsTargetPath,
	},
	schemas.PredExactClickMatchByPath: {
		eval:     evalExactClickMatchByPath,
		validate: needsTargetPath,
	},
	schemas.PredIDSubstringAbsentInClicks: {
		eval:     evalIDSubstringAbsentInClicks,
		validate: needsIDSubstring,
	},
	schemas.PredIDSubstringPresentInClicks: {
		eval:     evalIDSubstringPresentInClicks,
		validate: needsIDSubstring,
	},
	schemas.PredAnyOfIDsClicked: {
		eval:     evalAnyOfIDsClicked,
		validate: needsElementIDs,
	},
	schemas.PredAnyOfPathsClicked: {
		eval:     evalAnyOfPathsClicked,
		validate: needsTargetPaths,
	},
	schemas.PredAllIDsClicked: {
		eval:     evalAllIDsClicked,
		validate: needsElementIDs,
	},
	schemas.PredAllPathsClicked: {
		eval:     evalAllPathsClicked,
		validate: needsTargetPaths,
	},
}

// --- Parameter contracts ---

func needsIDSubstring(p schemas.PredicateParams) error {
	if p.IDSubstring == "" {
		return fmt.Errorf("parameter 'id_substring' is required")
	}
	return nil
}

func needsIDSubstringAndCount(p schemas.PredicateParams) error {
	if err := needsIDSubstring(p); err != nil {
		return err
	}
	if p.NumInstances == nil {
		return fmt.Errorf("parameter 'num_instances' is required")
	}
	if *p.NumInstances < 0 {
		return fmt.Errorf("parameter 'num_instances' must not be negative, got %d", *p.NumInstances)
	}
	return nil
}

func needsElementID(p schemas.PredicateParams) error {
	if p.ElementID == "" {
		return fmt.Errorf("parameter 'element_id' is required")
	}
	return nil
}

func needsMatchString(p schemas.PredicateParams) error {
	if p.MatchString == "" {
		return fmt.Errorf("parameter 'match_string' is required")
	}
	return nil
}

func needsTargetPath(p schemas.PredicateParams) error {
	if p.TargetPath == "" {
		return fmt.Errorf("parameter 'target_path' is required")
	}
	return nil
}

// An empty list under at-least-one or for-all semantics has no sensible
// truth value; it is rejected here rather than guessed at during grading.
func needsElementIDs(p schemas.PredicateParams) error {
	if len(p.ElementIDs) == 0 {
		return fmt.Errorf("parameter 'element_ids' must list at least one id")
	}
	for i, id := range p.ElementIDs {
		if id == "" {
			return fmt.Errorf("parameter 'element_ids' has an empty entry at index %d", i)
		}
	}
	return nil
}

func needsTargetPaths(p schemas.PredicateParams) error {
	if len(p.TargetPaths) == 0 {
		return fmt.Errorf("parameter 'target_paths' must list at least one path")
	}
	for i, path := range p.TargetPaths {
		if path == "" {
			return fmt.Errorf("parameter 'target_paths' has an empty entry at index %d", i)
		}
	}
	return nil
}
