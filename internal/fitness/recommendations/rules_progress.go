package recommendations

import (
	"fmt"

	"github.com/fittrackhq/fittrack/internal/fitness/users"
)

// Weight-delta nutrition rules and record-based progress rules.

const (
	gainMuscleDropKG     = 0.5
	congratsRecordCount  = 2
	strengthTestSessions = 12
)

// nutritionRules compares the two most recent weight readings against
// the stated fitness goal.
func nutritionRules(s *Snapshot) []Recommendation {
	if len(s.Weights) < 2 {
		return nil
	}
	latest, previous := s.Weights[0], s.Weights[1]
	delta := latest.Value - previous.Value
	weeksApart := latest.Date.Sub(previous.Date).Hours() / (24 * 7)

	basedOn := map[string]any{
		"weightDeltaKg": delta,
		"weeksBetween":  weeksApart,
		"fitnessGoal":   string(s.FitnessGoal),
	}

	switch {
	case s.FitnessGoal == users.FitnessGoalLoseWeight && delta > 0:
		return []Recommendation{{
			Type:  RecTypeNutrition,
			Title: "Review Your Nutrition",
			Description: fmt.Sprintf(
				"Your weight went up %.1f kg over the last %.1f weeks while your goal is to lose weight. Check your calorie intake.",
				delta, weeksApart,
			),
			Priority:   PriorityHigh,
			Confidence: 0.85,
			BasedOn:    basedOn,
			ExpiresAt:  expiresIn(s.Now, 7),
		}}

	case s.FitnessGoal == users.FitnessGoalGainMuscle && delta < -gainMuscleDropKG:
		return []Recommendation{{
			Type:  RecTypeNutrition,
			Title: "Eat More to Grow",
			Description: fmt.Sprintf(
				"You lost %.1f kg over the last %.1f weeks while trying to gain muscle. You likely need a calorie surplus and more protein.",
				-delta, weeksApart,
			),
			Priority:   PriorityHigh,
			Confidence: 0.85,
			BasedOn:    basedOn,
			ExpiresAt:  expiresIn(s.Now, 7),
		}}
	}

	return nil
}

// progressRules: the congratulation and the nudge are mutually
// exclusive branches over the 30-day record count.
func progressRules(s *Snapshot) []Recommendation {
	switch {
	case len(s.RecentRecords) >= congratsRecordCount:
		return []Recommendation{{
			Type:  RecTypeProgress,
			Title: "Crushing It",
			Description: fmt.Sprintf(
				"%d new personal records this month. Whatever you are doing, keep doing it.",
				len(s.RecentRecords),
			),
			Priority:   PriorityLow,
			Confidence: 1.0,
			BasedOn: map[string]any{
				"recordsLast30Days": len(s.RecentRecords),
			},
			ExpiresAt: expiresIn(s.Now, 7),
		}}

	case len(s.Sessions) >= strengthTestSessions && len(s.RecentRecords) == 0:
		return []Recommendation{{
			Type:  RecTypeProgress,
			Title: "Time to Test Your Strength",
			Description: "You train consistently but have not set a record lately. " +
				"Pick a lift and go for a personal best this week.",
			Priority:   PriorityMedium,
			Confidence: 0.75,
			BasedOn: map[string]any{
				"sessionsLast30Days": len(s.Sessions),
				"recordsLast30Days":  0,
			},
			ExpiresAt: expiresIn(s.Now, 7),
		}}
	}

	return nil
}
