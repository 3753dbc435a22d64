package validate

import (
	"github.com/xkilldash9x/verdict-cli/api/schemas"
)

// The predicate implementations. Each one answers a single fact-check
// against the interaction record by delegating to the record's query
// helpers; composition concerns (invert, grouping) live entirely in the
// evaluator.

// True iff the count of clicks whose element id contains the substring
// equals num_instances exactly. Not "at least": a record with three
// matching clicks fails num_instances of two and of four.
func evalHasNClicksByIDSubstring(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.CountClicksByIDSubstring(p.IDSubstring) == *p.NumInstances
}

// True iff at least one click's element id equals element_id by full-string
// equality. "add_to_cart_42" does not satisfy a check for "add_to_cart".
func evalExactClickMatchByID(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.HasClickWithID(p.ElementID)
}

func evalScratchpadSubstringMatch(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.ScratchpadContains(p.MatchString)
}

// True iff any input event targeted the path; the entered value is not
// checked.
func evalInputExistsByPath(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.HasInputAtPath(p.TargetPath)
}

func evalExactClickMatchByPath(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.HasClickWithPath(p.TargetPath)
}

// Kept as a distinct catalog entry rather than relying on the invert flag,
// since "the agent never touched X" is the common authoring case.
func evalIDSubstringAbsentInClicks(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.CountClicksByIDSubstring(p.IDSubstring) == 0
}

func evalIDSubstringPresentInClicks(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	return rec.CountClicksByIDSubstring(p.IDSubstring) > 0
}

func evalAnyOfIDsClicked(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	for _, id := range p.ElementIDs {
		if rec.HasClickWithID(id) {
			return true
		}
	}
	return false
}

func evalAnyOfPathsClicked(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	for _, path := range p.TargetPaths {
		if rec.HasClickWithPath(path) {
			return true
		}
	}
	return false
}

// Order is irrelevant and duplicates in the input list do not require
// duplicate clicks; extra unrelated clicks in the record are ignored.
func evalAllIDsClicked(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	for _, id := range p.ElementIDs {
		if !rec.HasClickWithID(id) {
			return false
		}
	}
	return true
}

func evalAllPathsClicked(rec *schemas.InteractionRecord, p schemas.PredicateParams) bool {
	for _, path := range p.TargetPaths {
		if !rec.HasClickWithPath(path) {
			return false
		}
	}
	return true
}
