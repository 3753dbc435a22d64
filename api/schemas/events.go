package schemas

import (
	"strings"
	"time"
)

// -- Interaction Record Schemas --

// ClickEvent records one physical click captured during an agent run.
// Identity is positional: repeated clicks on the same target produce
// distinct records, and their multiplicity is significant.
type ClickEvent struct {
	// ElementID is the DOM id of the click target, if the target had one.
	ElementID string `json:"element_id"`
	// Path is the structural locator (xpath) of the click target.
	Path string `json:"path"`
	// Timestamp orders the event within the run.
	Timestamp time.Time `json:"timestamp"`
}

// InputEvent records one completed text entry into a field.
type InputEvent struct {
	Path      string    `json:"path"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// InteractionRecord is the complete, read-only record of one agent run:
// ordered click and input events plus the agent's free-text scratchpad.
// The engine never reorders or deduplicates events.
type InteractionRecord struct {
	RunID      string       `json:"run_id"`
	Clicks     []ClickEvent `json:"clicks"`
	Inputs     []InputEvent `json:"inputs"`
	Scratchpad string       `json:"scratchpad"`
}

// -- Query helpers --
//
// These are the only read operations the validation engine needs. All of
// them treat an empty record as a legitimate state: a query over zero
// events simply reports zero matches.

// CountClicksByIDSubstring returns how many clicks have an element id
// containing sub.
func (r *InteractionRecord) CountClicksByIDSubstring(sub string) int {
	n := 0
	for _, c := range r.Clicks {
		if strings.Contains(c.ElementID, sub) {
			n++
		}
	}
	return n
}

// HasClickWithID reports whether any click's element id equals id exactly.
func (r *InteractionRecord) HasClickWithID(id string) bool {
	for _, c := range r.Clicks {
		if c.ElementID == id {
			return true
		}
	}
	return false
}

// HasClickWithPath reports whether any click's locator equals path exactly.
func (r *InteractionRecord) HasClickWithPath(path string) bool {
	for _, c := range r.Clicks {
		if c.Path == path {
			return true
		}
	}
	return false
}

// HasInputAtPath reports whether any input event targeted path. The entered
// value is not inspected.
func (r *InteractionRecord) HasInputAtPath(path string) bool {
	for _, in := range r.Inputs {
		if in.Path == path {
			return true
		}
	}
	return false
}

// ScratchpadContains reports whether s occurs in the scratchpad buffer.
func (r *InteractionRecord) ScratchpadContains(s string) bool {
	return strings.Contains(r.Scratchpad, s)
}
