package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/verdict-cli/api/schemas"
	"github.com/xkilldash9x/verdict-cli/internal/validate"
)

func singleCheckDef(check schemas.PredicateName, params schemas.PredicateParams) *schemas.TaskDefinition {
	return &schemas.TaskDefinition{
		TaskID: "task-1",
		Checks: schemas.CheckNode{
			Op:     schemas.GroupAnd,
			Checks: []schemas.CheckNode{{Check: check, Params: params}},
		},
	}
}

func TestValidateDefinition_AcceptsWellFormed(t *testing.T) {
	def := singleCheckDef(schemas.PredHasNClicksByIDSubstring,
		schemas.PredicateParams{IDSubstring: "add_", NumInstances: intPtr(0)})
	assert.NoError(t, validate.ValidateDefinition(def))
}

func TestValidateDefinition_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		def    *schemas.TaskDefinition
		reason string
	}{
		{
			name:   "unknown predicate name",
			def:    singleCheckDef("CLICKED_REALLY_HARD", schemas.PredicateParams{}),
			reason: "unknown predicate",
		},
		{
			name:   "missing id_substring",
			def:    singleCheckDef(schemas.PredIDSubstringPresentInClicks, schemas.PredicateParams{}),
			reason: "id_substring",
		},
		{
			name: "missing num_instances",
			def: singleCheckDef(schemas.PredHasNClicksByIDSubstring,
				schemas.PredicateParams{IDSubstring: "add_"}),
			reason: "num_instances",
		},
		{
			name: "negative num_instances",
			def: singleCheckDef(schemas.PredHasNClicksByIDSubstring,
				schemas.PredicateParams{IDSubstring: "add_", NumInstances: intPtr(-1)}),
			reason: "must not be negative",
		},
		{
			name:   "empty element_ids list",
			def:    singleCheckDef(schemas.PredAllIDsClicked, schemas.PredicateParams{}),
			reason: "at least one id",
		},
		{
			name: "blank entry in element_ids",
			def: singleCheckDef(schemas.PredAnyOfIDsClicked,
				schemas.PredicateParams{ElementIDs: []string{"ok", ""}}),
			reason: "empty entry at index 1",
		},
		{
			name:   "empty target_paths list",
			def:    singleCheckDef(schemas.PredAnyOfPathsClicked, schemas.PredicateParams{}),
			reason: "at least one path",
		},
		{
			name: "task with no checks",
			def: &schemas.TaskDefinition{
				TaskID: "task-1",
				Checks: schemas.CheckNode{Op: schemas.GroupAnd},
			},
			reason: "no checks",
		},
		{
			name: "empty nested group",
			def: &schemas.TaskDefinition{
				TaskID: "task-1",
				Checks: schemas.CheckNode{
					Op: schemas.GroupAnd,
					Checks: []schemas.CheckNode{
						{Op: schemas.GroupOr},
					},
				},
			},
			reason: "group is empty",
		},
		{
			name: "node that is both predicate and group",
			def: &schemas.TaskDefinition{
				TaskID: "task-1",
				Checks: schemas.CheckNode{
					Op: schemas.GroupAnd,
					Checks: []schemas.CheckNode{
						{
							Check:  schemas.PredExactClickMatchByID,
							Params: schemas.PredicateParams{ElementID: "x"},
							Op:     schemas.GroupOr,
						},
					},
				},
			},
			reason: "both predicate",
		},
		{
			name: "invert on a group node",
			def: &schemas.TaskDefinition{
				TaskID: "task-1",
				Checks: schemas.CheckNode{
					Op:     schemas.GroupOr,
					Invert: true,
					Checks: []schemas.CheckNode{
						{Check: schemas.PredExactClickMatchByID, Params: schemas.PredicateParams{ElementID: "x"}},
					},
				},
			},
			reason: "invert is not supported on group nodes",
		},
		{
			name: "unknown group operator",
			def: &schemas.TaskDefinition{
				TaskID: "task-1",
				Checks: schemas.CheckNode{
					Op: "XOR",
					Checks: []schemas.CheckNode{
						{Check: schemas.PredExactClickMatchByID, Params: schemas.PredicateParams{ElementID: "x"}},
					},
				},
			},
			reason: "unknown group operator",
		},
		{
			name: "missing task id",
			def: &schemas.TaskDefinition{
				Checks: schemas.CheckNode{
					Op: schemas.GroupAnd,
					Checks: []schemas.CheckNode{
						{Check: schemas.PredExactClickMatchByID, Params: schemas.PredicateParams{ElementID: "x"}},
					},
				},
			},
			reason: "task_id",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := validate.ValidateDefinition(tc.def)
			require.Error(t, err)

			var defErr *validate.DefinitionError
			require.ErrorAs(t, err, &defErr)
			assert.Contains(t, defErr.Error(), tc.reason)
		})
	}
}

func TestValidateDefinition_ErrorNamesOffendingNode(t *testing.T) {
	def := &schemas.TaskDefinition{
		TaskID: "deep",
		Checks: schemas.CheckNode{
			Op: schemas.GroupAnd,
			Checks: []schemas.CheckNode{
				{Check: schemas.PredExactClickMatchByID, Params: schemas.PredicateParams{ElementID: "fine"}},
				{
					Op: schemas.GroupOr,
					Checks: []schemas.CheckNode{
						{Check: schemas.PredAllIDsClicked, Params: schemas.PredicateParams{}},
					},
				},
			},
		},
	}

	err := validate.ValidateDefinition(def)
	var defErr *validate.DefinitionError
	require.ErrorAs(t, err, &defErr)
	assert.Equal(t, "deep", defErr.TaskID)
	assert.Equal(t, "checks[1][0]", defErr.Path)
}
