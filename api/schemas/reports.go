package schemas

// -- Grading Report Schemas --

// Report is the verdict for one run of one task: the aggregated pass/fail
// plus every individual check's final (post-invert) boolean, keyed by the
// check's label. The full result map is always populated, including when
// the overall verdict is already decided, so a failing run can be traced
// to the exact check that failed.
type Report struct {
	TaskID  string          `json:"task_id"`
	RunID   string          `json:"run_id"`
	Overall bool            `json:"overall"`
	Results map[string]bool `json:"results"`
}

// RunError records a run that could not be graded because its interaction
// record was unreadable. This is an I/O failure, kept separate from a
// failing verdict.
type RunError struct {
	RunID string `json:"run_id"`
	Error string `json:"error"`
}

// TaskSummary aggregates the grading of many runs against one task
// definition, in the correct/incorrect tally form used for benchmarking
// agents.
type TaskSummary struct {
	TaskID    string     `json:"task_id"`
	Correct   int        `json:"correct"`
	Incorrect int        `json:"incorrect"`
	Reports   []Report   `json:"reports,omitempty"`
	Errors    []RunError `json:"errors,omitempty"`
}
