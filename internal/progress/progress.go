// Package progress derives the completion percentage shown for a workspace.
package progress

import (
	"math"

	"github.com/offloadr/connect-api/internal/domain"
)

// Milestones are the stored-progress values that trigger a client-facing
// notification. 100 produces workspace_completed, the rest progress_update.
var Milestones = [...]int{25, 50, 75, 100}

// Displayed computes the percentage a workspace shows. With at least one
// task it is the completed/total ratio, rounded; otherwise the manually
// stored value. Always clamped to [0, 100]. The stored field stays writable
// even when tasks exist, but this function is the single source of truth
// for what is displayed.
func Displayed(tasks []domain.Task, stored int) int {
	if len(tasks) == 0 {
		return Clamp(stored)
	}
	done := 0
	for _, t := range tasks {
		if t.Completed {
			done++
		}
	}
	pct := math.Round(100 * float64(done) / float64(len(tasks)))
	return Clamp(int(pct))
}

// Clamp bounds a percentage to [0, 100].
func Clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}

// IsMilestone reports whether the value is one of the fixed milestones.
func IsMilestone(v int) bool {
	for _, m := range Milestones {
		if v == m {
			return true
		}
	}
	return false
}
