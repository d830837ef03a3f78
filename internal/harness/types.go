package harness

import "github.com/roach88/lorenz/internal/machine"

// TraceEvent records one symbol passing through the machine.
// Key, MuState and Positions are read before the machine steps.
type TraceEvent struct {
	Seq       int               `json:"seq"`
	Input     int               `json:"input"`
	Key       int               `json:"key"`
	Output    int               `json:"output"`
	MuState   int               `json:"mu_state"`
	Positions machine.Positions `json:"positions"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true if every assertion held.
	Pass bool `json:"pass"`

	// Setting and Fingerprint identify the wheels the scenario ran on.
	Setting     string `json:"setting"`
	Fingerprint string `json:"fingerprint"`

	// Trace holds one event per fed symbol, across all feed steps.
	Trace []TraceEvent `json:"trace"`

	// Output is every feed step's output, concatenated.
	Output []int `json:"output"`

	// Start and Final are the wheel positions before the first step and
	// after the last.
	Start machine.Positions `json:"start"`
	Final machine.Positions `json:"final"`

	// Errors contains assertion failures. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`

	// segments holds each feed step's output separately for round trips.
	segments [][]int
}

// NewResult creates a new passing result.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Output: []int{},
		Errors: []string{},
	}
}

// AddError adds a validation error and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddTrace appends an event, numbering it after the last one.
func (r *Result) AddTrace(ev TraceEvent) {
	ev.Seq = len(r.Trace) + 1
	r.Trace = append(r.Trace, ev)
}
