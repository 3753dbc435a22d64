package validate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xkilldash9x/verdict-cli/internal/validate"
)

func writeDefinitionFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validDefinitions = `[
  {
    "task_id": "buy-two-widgets",
    "description": "Add two widgets to the cart and check out.",
    "checks": {
      "op": "AND",
      "checks": [
        {"check": "HAS_N_CLICKS_BY_ID_SUBSTRING", "params": {"id_substring": "add_to_cart_", "num_instances": 2}},
        {"check": "EXACT_CLICK_MATCH_BY_ID", "params": {"element_id": "checkout_btn"}},
        {"check": "ID_SUBSTRING_PRESENT_IN_CLICKS", "params": {"id_substring": "newsletter_"}, "invert": true}
      ]
    }
  }
]`

func TestLoadDefinitions(t *testing.T) {
	path := writeDefinitionFile(t, validDefinitions)

	defs, err := validate.LoadDefinitions(path)
	require.NoError(t, err)
	require.Len(t, defs, 1)

	assert.Equal(t, "buy-two-widgets", defs[0].TaskID)
	require.Len(t, defs[0].Checks.Checks, 3)
	// The invert flag is an explicit field, defaulting to false.
	assert.False(t, defs[0].Checks.Checks[0].Invert)
	assert.True(t, defs[0].Checks.Checks[2].Invert)
}

func TestLoadDefinitions_Failures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := validate.LoadDefinitions(filepath.Join(t.TempDir(), "nope.json"))
		assert.Error(t, err)
	})

	t.Run("syntax error", func(t *testing.T) {
		path := writeDefinitionFile(t, `[{"task_id": `)
		_, err := validate.LoadDefinitions(path)
		assert.ErrorContains(t, err, "failed to parse")
	})

	t.Run("empty document", func(t *testing.T) {
		path := writeDefinitionFile(t, `[]`)
		_, err := validate.LoadDefinitions(path)
		assert.ErrorContains(t, err, "declares no tasks")
	})

	t.Run("semantic error is a DefinitionError", func(t *testing.T) {
		path := writeDefinitionFile(t, `[
          {"task_id": "bad", "checks": {"op": "AND", "checks": [
            {"check": "ALL_IDS_CLICKED", "params": {"element_ids": []}}
          ]}}
        ]`)
		_, err := validate.LoadDefinitions(path)

		var defErr *validate.DefinitionError
		require.ErrorAs(t, err, &defErr)
		assert.Equal(t, "bad", defErr.TaskID)
	})

	t.Run("duplicate task ids", func(t *testing.T) {
		path := writeDefinitionFile(t, `[
          {"task_id": "dup", "checks": {"checks": [{"check": "SCRATCHPAD_SUBSTRING_MATCH", "params": {"match_string": "x"}}]}},
          {"task_id": "dup", "checks": {"checks": [{"check": "SCRATCHPAD_SUBSTRING_MATCH", "params": {"match_string": "y"}}]}}
        ]`)
		_, err := validate.LoadDefinitions(path)
		assert.ErrorContains(t, err, "duplicate task_id")
	})
}
