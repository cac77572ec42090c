package recommendations

import (
	"fmt"
	"math"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/goals"
)

// Per-goal nudges. The conditions are checked independently, so one
// goal can emit more than one recommendation when several hold at once.

const (
	almostThereRatio    = 0.9
	behindScheduleRatio = 0.8
	stalledRatio        = 0.1
	deadlineSoonDays    = 7
)

func goalRules(s *Snapshot) []Recommendation {
	var recs []Recommendation
	for _, g := range s.OpenGoals {
		recs = append(recs, evaluateGoal(s, g)...)
	}
	return recs
}

func evaluateGoal(s *Snapshot, g goals.Goal) []Recommendation {
	if g.TargetValue <= 0 {
		return nil
	}
	ratio := g.CurrentValue / g.TargetValue

	var daysLeft *int
	if g.Deadline != nil {
		d := int(math.Ceil(g.Deadline.Sub(s.Now).Hours() / 24))
		daysLeft = &d
	}

	basedOn := func() map[string]any {
		out := map[string]any{
			"goalId":   g.ID,
			"progress": ratio,
		}
		if daysLeft != nil {
			out["daysLeft"] = *daysLeft
		}
		return out
	}

	var recs []Recommendation

	if ratio >= almostThereRatio {
		recs = append(recs, Recommendation{
			Type:  RecTypeGoal,
			Title: "Almost There",
			Description: fmt.Sprintf(
				"Your goal %q is %.0f%% done. One final push.", g.Title, ratio*100,
			),
			Priority:   PriorityHigh,
			Confidence: 1.0,
			BasedOn:    basedOn(),
			ExpiresAt:  copyDeadline(g.Deadline),
		})
	}

	// fires for overdue goals too, a passed deadline needs the nudge most
	if daysLeft != nil && *daysLeft <= deadlineSoonDays && ratio < behindScheduleRatio {
		recs = append(recs, Recommendation{
			Type:  RecTypeGoal,
			Title: "Deadline Approaching",
			Description: fmt.Sprintf(
				"Only %d days left for %q and you are at %.0f%%. Time to focus or adjust the target.",
				*daysLeft, g.Title, ratio*100,
			),
			Priority:   PriorityHigh,
			Confidence: 0.9,
			BasedOn:    basedOn(),
			ExpiresAt:  copyDeadline(g.Deadline),
		})
	}

	if ratio < stalledRatio {
		recs = append(recs, Recommendation{
			Type:  RecTypeGoal,
			Title: "Get Started",
			Description: fmt.Sprintf(
				"%q has barely moved since you set it. Break it into smaller steps or pick a target that fits your routine.",
				g.Title,
			),
			Priority:   PriorityMedium,
			Confidence: 0.75,
			BasedOn:    basedOn(),
			ExpiresAt:  expiresIn(s.Now, 14),
		})
	}

	return recs
}

func copyDeadline(d *time.Time) *time.Time {
	if d == nil {
		return nil
	}
	t := *d
	return &t
}
