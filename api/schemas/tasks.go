package schemas

// -- Task Definition Schemas --

// PredicateName identifies one entry of the validation predicate catalog.
type PredicateName string

const (
	PredHasNClicksByIDSubstring    PredicateName = "HAS_N_CLICKS_BY_ID_SUBSTRING"
	PredExactClickMatchByID        PredicateName = "EXACT_CLICK_MATCH_BY_ID"
	PredScratchpadSubstringMatch   PredicateName = "SCRATCHPAD_SUBSTRING_MATCH"
	PredInputExistsByPath          PredicateName = "INPUT_EXISTS_BY_PATH"
	PredExactClickMatchByPath      PredicateName = "EXACT_CLICK_MATCH_BY_PATH"
	PredIDSubstringAbsentInClicks  PredicateName = "ID_SUBSTRING_ABSENT_IN_CLICKS"
	PredIDSubstringPresentInClicks PredicateName = "ID_SUBSTRING_PRESENT_IN_CLICKS"
	PredAnyOfIDsClicked            PredicateName = "ANY_OF_IDS_CLICKED"
	PredAnyOfPathsClicked          PredicateName = "ANY_OF_PATHS_CLICKED"
	PredAllIDsClicked              PredicateName = "ALL_IDS_CLICKED"
	PredAllPathsClicked            PredicateName = "ALL_PATHS_CLICKED"
)

// GroupOp selects how a check group aggregates its children.
type GroupOp string

const (
	GroupAnd GroupOp = "AND"
	GroupOr  GroupOp = "OR"
)

// PredicateParams carries the parameters for a single predicate invocation.
// Which fields are required depends on the predicate; definition validation
// enforces that before any run is graded.
type PredicateParams struct {
	IDSubstring  string   `json:"id_substring,omitempty"`
	ElementID    string   `json:"element_id,omitempty"`
	MatchString  string   `json:"match_string,omitempty"`
	TargetPath   string   `json:"target_path,omitempty"`
	NumInstances *int     `json:"num_instances,omitempty"`
	ElementIDs   []string `json:"element_ids,omitempty"`
	TargetPaths  []string `json:"target_paths,omitempty"`
}

// CheckNode is one node of a task's check tree. A node is either a single
// predicate invocation (Check set) or a nested group (Op set); it is a
// definition error for a node to be both or neither.
type CheckNode struct {
	// Predicate form.
	Check  PredicateName   `json:"check,omitempty"`
	Params PredicateParams `json:"params,omitempty"`
	// Invert negates the predicate's raw result. It is an explicit field
	// rather than a positional convention, defaults to false, and is only
	// legal on predicate nodes.
	Invert bool `json:"invert,omitempty"`

	// Group form.
	Op     GroupOp     `json:"op,omitempty"`
	Checks []CheckNode `json:"checks,omitempty"`

	// Label names this check in the result map. Optional; unlabeled checks
	// get a positional key derived from the predicate name.
	Label string `json:"label,omitempty"`
}

// IsGroup reports whether the node is a nested group rather than a
// predicate. A group may omit its operator, so the predicate field is the
// discriminator.
func (n *CheckNode) IsGroup() bool { return n.Check == "" }

// TaskDefinition is the declarative grading criteria for one task. It is
// authored once and reused across every run of that task. The root Checks
// node is a group; its default operator is AND.
type TaskDefinition struct {
	TaskID      string    `json:"task_id"`
	Description string    `json:"description,omitempty"`
	Checks      CheckNode `json:"checks"`
}
