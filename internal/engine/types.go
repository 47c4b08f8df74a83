package engine

import (
	"time"

	"github.com/danieljhkim/datebucket/internal/config"
	"github.com/danieljhkim/datebucket/internal/planner"
)

// RunResult represents the outcome of a run.
// A non-nil RunResult may accompany an error: it then describes how far the
// run got before failing.
type RunResult struct {
	// Mode is the relocation mode used
	Mode config.Mode `json:"mode"`

	// Source is the scanned directory
	Source string `json:"source"`

	// Dest is the destination root
	Dest string `json:"dest"`

	// Plan is the generated plan (nil if planning failed)
	Plan *planner.RelocationPlan `json:"plan"`

	// Buckets lists bucket dates seen while planning, including on failure
	Buckets []string `json:"buckets"`

	// Applied lists the relocations that completed, sorted by source
	Applied []planner.Relocation `json:"applied"`

	// StartedAt is when the run began
	StartedAt time.Time `json:"started_at"`

	// FinishedAt is when the run ended
	FinishedAt time.Time `json:"finished_at"`
}

// Planned returns the number of planned relocations.
func (r *RunResult) Planned() int {
	if r.Plan == nil {
		return 0
	}
	return r.Plan.Len()
}

// Partial reports whether some, but not all, planned relocations completed.
func (r *RunResult) Partial() bool {
	return len(r.Applied) > 0 && len(r.Applied) < r.Planned()
}

// Duration returns how long the run took.
func (r *RunResult) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}
