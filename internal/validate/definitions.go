package validate

import (
	"fmt"
	"os"

	jsoniter "github.com/json-iterator/go"
	"github.com/xkilldash9x/verdict-cli/api/schemas"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeDefinitions parses a task definition document: a JSON array of task
// definitions. Parsing is separate from validation so callers can report
// syntax problems and semantic problems distinctly.
func DecodeDefinitions(data []byte) ([]schemas.TaskDefinition, error) {
	var defs []schemas.TaskDefinition
	if err := json.Unmarshal(data, &defs); err != nil {
		return nil, fmt.Errorf("failed to parse task definitions: %w", err)
	}
	return defs, nil
}

// LoadDefinitions reads and validates every task definition in the file.
// Any malformed definition is fatal to the whole document.
func LoadDefinitions(path string) ([]schemas.TaskDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read task definitions %s: %w", path, err)
	}

	defs, err := DecodeDefinitions(data)
	if err != nil {
		return nil, err
	}
	if len(defs) == 0 {
		return nil, fmt.Errorf("task definition file %s declares no tasks", path)
	}

	seen := make(map[string]bool, len(defs))
	for i := range defs {
		if err := ValidateDefinition(&defs[i]); err != nil {
			return nil, err
		}
		if seen[defs[i].TaskID] {
			return nil, fmt.Errorf("duplicate task_id %q in %s", defs[i].TaskID, path)
		}
		seen[defs[i].TaskID] = true
	}
	return defs, nil
}
