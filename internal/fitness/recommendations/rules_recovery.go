package recommendations

import (
	"fmt"
)

// Sleep, overtraining and hydration rules over the wellness entries.

const (
	minWellnessEntries    = 3
	recentWellnessEntries = 7
	lowSleepHours         = 7.0
	overtrainingSessions  = 6
	lowSessionRating      = 3.0
	lowWaterIntakeML      = 2000.0
)

func recoveryRules(s *Snapshot) []Recommendation {
	var recs []Recommendation

	if avg, n, ok := avgSleep(s); ok && avg < lowSleepHours {
		recs = append(recs, Recommendation{
			Type:  RecTypeRecovery,
			Title: "Prioritize Sleep",
			Description: fmt.Sprintf(
				"You averaged %.1f hours of sleep over your recent check-ins. Muscles grow while you rest, aim for at least 7 hours.",
				avg,
			),
			Priority:   PriorityHigh,
			Confidence: 0.9,
			BasedOn: map[string]any{
				"avgSleepHours": avg,
				"entries":       n,
			},
			ExpiresAt: expiresIn(s.Now, 7),
		})
	}

	lastWeek := s.sessionsWithinDays(7)
	if len(lastWeek) >= overtrainingSessions {
		if avg, ok := avgRating(s); ok && avg < lowSessionRating {
			recs = append(recs, Recommendation{
				Type:  RecTypeRecovery,
				Title: "Take a Rest Day",
				Description: fmt.Sprintf(
					"%d sessions this week with an average rating of %.1f. Feeling worn down is a signal, schedule a rest day.",
					len(lastWeek), avg,
				),
				Priority:   PriorityHigh,
				Confidence: 0.85,
				BasedOn: map[string]any{
					"sessionsLast7Days": len(lastWeek),
					"avgRating":         avg,
				},
				ExpiresAt: expiresIn(s.Now, 3),
			})
		}
	}

	if avg, n, ok := avgWater(s); ok && avg < lowWaterIntakeML {
		recs = append(recs, Recommendation{
			Type:  RecTypeRecovery,
			Title: "Drink More Water",
			Description: fmt.Sprintf(
				"You averaged %.0f ml of water a day over your recent check-ins. Aim for at least 2 liters, more on training days.",
				avg,
			),
			Priority:   PriorityMedium,
			Confidence: 0.8,
			BasedOn: map[string]any{
				"avgWaterIntakeMl": avg,
				"entries":          n,
			},
			ExpiresAt: expiresIn(s.Now, 7),
		})
	}

	return recs
}

// avgSleep averages the most recent recorded sleep values, up to
// seven of them. Too few entries and the average means nothing.
func avgSleep(s *Snapshot) (float64, int, bool) {
	var sum float64
	var n int
	for _, e := range s.Wellness {
		if e.SleepHours == nil {
			continue
		}
		sum += *e.SleepHours
		n++
		if n == recentWellnessEntries {
			break
		}
	}
	if n < minWellnessEntries {
		return 0, n, false
	}
	return sum / float64(n), n, true
}

func avgWater(s *Snapshot) (float64, int, bool) {
	var sum float64
	var n int
	for _, e := range s.Wellness {
		if e.WaterIntakeML == nil {
			continue
		}
		sum += *e.WaterIntakeML
		n++
		if n == recentWellnessEntries {
			break
		}
	}
	if n < minWellnessEntries {
		return 0, n, false
	}
	return sum / float64(n), n, true
}

// avgRating averages the ratings of the last week's sessions, skipping
// unrated ones.
func avgRating(s *Snapshot) (float64, bool) {
	var sum float64
	var n int
	for _, sess := range s.sessionsWithinDays(7) {
		if sess.Rating == nil {
			continue
		}
		sum += float64(*sess.Rating)
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}
