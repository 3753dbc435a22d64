package validate

import (
	"strconv"

	"github.com/xkilldash9x/verdict-cli/api/schemas"
)

// ValidateDefinition checks a task definition eagerly, before any run is
// graded. A nil error guarantees that evaluation over any interaction
// record, however empty, cannot fail.
func ValidateDefinition(def *schemas.TaskDefinition) error {
	if def.TaskID == "" {
		return defErr("", "task_id", "task_id must not be empty")
	}
	return validateNode(def.TaskID, &def.Checks, "checks", true)
}

func validateNode(taskID string, node *schemas.CheckNode, path string, isRoot bool) error {
	isPredicate := node.Check != ""
	hasChildren := len(node.Checks) > 0

	if isPredicate {
		if node.Op != "" || hasChildren {
			return defErr(taskID, path, "node declares both predicate %q and a group", node.Check)
		}
		entry, ok := catalog[node.Check]
		if !ok {
			return defErr(taskID, path, "unknown predicate %q", node.Check)
		}
		if err := entry.validate(node.Params); err != nil {
			return defErr(taskID, path, "predicate %s: %v", node.Check, err)
		}
		return nil
	}

	// Group form. An omitted operator on a group means AND, the default
	// aggregation for a task's declared checks.
	if node.Invert {
		return defErr(taskID, path, "invert is not supported on group nodes")
	}
	switch node.Op {
	case "", schemas.GroupAnd, schemas.GroupOr:
	default:
		return defErr(taskID, path, "unknown group operator %q", node.Op)
	}
	if !hasChildren {
		if isRoot {
			return defErr(taskID, path, "task declares no checks")
		}
		return defErr(taskID, path, "group is empty")
	}

	for i := range node.Checks {
		childPath := path + "[" + strconv.Itoa(i) + "]"
		if err := validateNode(taskID, &node.Checks[i], childPath, false); err != nil {
			return err
		}
	}
	return nil
}
