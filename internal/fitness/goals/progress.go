package goals

import (
	"math"
	"time"
)

type Status string

const (
	StatusCompleted Status = "completed"
	StatusOverdue   Status = "overdue"
	StatusUrgent    Status = "urgent"
	StatusOnTrack   Status = "on_track"
)

// urgencyWindowDays is how close a deadline has to be, in days, before
// an unfinished goal turns urgent.
const urgencyWindowDays = 7

type GoalProgress struct {
	Goal            Goal    `json:"goal"`
	ProgressPercent float64 `json:"progressPercent"`
	DaysLeft        *int    `json:"daysLeft,omitempty"`
	Status          Status  `json:"status"`
}

// EvaluateProgress derives progress and status for each goal at the
// given moment. It is a pure function of its inputs, every goal always
// gets exactly one status.
//
// Status precedence: completed beats overdue, overdue beats urgent,
// urgent beats on_track. A deadline landing today counts as urgent,
// not overdue.
func EvaluateProgress(allGoals []Goal, now time.Time) []GoalProgress {
	result := make([]GoalProgress, 0, len(allGoals))
	for _, g := range allGoals {
		result = append(result, evaluateOne(g, now))
	}
	return result
}

func evaluateOne(g Goal, now time.Time) GoalProgress {
	p := GoalProgress{Goal: g}

	if g.TargetValue > 0 {
		p.ProgressPercent = math.Min(100, g.CurrentValue/g.TargetValue*100)
	}

	if g.Deadline != nil {
		days := int(math.Ceil(g.Deadline.Sub(now).Hours() / 24))
		p.DaysLeft = &days
	}

	switch {
	case g.Achieved || p.ProgressPercent >= 100:
		p.Status = StatusCompleted
	case p.DaysLeft != nil && *p.DaysLeft < 0:
		p.Status = StatusOverdue
	case p.DaysLeft != nil && *p.DaysLeft <= urgencyWindowDays:
		p.Status = StatusUrgent
	default:
		p.Status = StatusOnTrack
	}

	return p
}
