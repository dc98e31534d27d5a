package pacing

import "github.com/abhisek/pacer/internal/course"

// Start positions understood by Plan. Any other value is a video id.
const (
	StartLast       = "last"
	StartBeginning  = "beginning"
	StartCheckpoint = "checkpoint"
)

// PlanOptions configures a planning run.
type PlanOptions struct {
	// TimeBudget is the available study time in seconds.
	TimeBudget float64

	// StartFrom is StartLast (default when empty), StartBeginning,
	// StartCheckpoint, or a literal video id.
	StartFrom string

	// Section restricts the playlist to one section when non-empty.
	Section string

	// IncludePractice charges practice time against the budget.
	IncludePractice bool
}

// SessionPlan is the ordered playlist for one study session.
type SessionPlan struct {
	Videos            []course.VideoItem `json:"videos"`
	TotalVideoTime    float64            `json:"totalVideoTime"`
	TotalPracticeTime float64            `json:"totalPracticeTime"`
	TotalTime         float64            `json:"totalTime"`
	StartCheckpoint   string             `json:"startCheckpoint"`
	EndCheckpoint     string             `json:"endCheckpoint"`
}

// Utilization is the share of the budget the plan uses, in percent.
func (p *SessionPlan) Utilization(budget float64) int {
	if budget <= 0 {
		return 0
	}
	return int(p.TotalTime/budget*100 + 0.5)
}
