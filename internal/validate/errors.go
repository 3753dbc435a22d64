package validate

import "fmt"

// DefinitionError reports a malformed task definition: an unknown predicate
// name, a missing or mistyped parameter, or an empty group. It is detected
// eagerly, before any run is evaluated, and is fatal to the definition.
//
// It is deliberately a different failure class from a false verdict: a
// predicate that simply finds no matching events returns false, never an
// error.
type DefinitionError struct {
	TaskID string
	// Path locates the offending node within the definition's check tree,
	// e.g. "checks[1][0]".
	Path   string
	Reason string
}

func (e *DefinitionError) Error() string {
	return fmt.Sprintf("invalid task definition %q at %s: %s", e.TaskID, e.Path, e.Reason)
}

func defErr(taskID, path, format string, args ...interface{}) *DefinitionError {
	return &DefinitionError{
		TaskID: taskID,
		Path:   path,
		Reason: fmt.Sprintf(format, args...),
	}
}
