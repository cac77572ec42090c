package recommendations

import (
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/goals"
	"github.com/fittrackhq/fittrack/internal/fitness/progress"
	"github.com/fittrackhq/fittrack/internal/fitness/records"
	"github.com/fittrackhq/fittrack/internal/fitness/sessions"
	"github.com/fittrackhq/fittrack/internal/fitness/users"
)

// WeightReading is one dated body-weight value, wherever it was
// recorded.
type WeightReading struct {
	Date  time.Time
	Value float64
}

// Snapshot is everything the rule sets look at, gathered once per
// generation run. The rules are pure functions over it, the same
// snapshot always produces the same advice.
type Snapshot struct {
	UserID      int
	FitnessGoal users.FitnessGoal

	// Sessions covers the last 30 days, newest first.
	Sessions []sessions.TrainingSession
	// Wellness covers the last 30 days of daily entries, newest
	// first. The recovery rules only look at the most recent few
	// recorded values per metric.
	Wellness []progress.DailyProgress
	// Weights holds the body weights of the latest measurements,
	// newest first, regardless of age.
	Weights   []WeightReading
	OpenGoals []goals.Goal
	// RecentRecords covers the last 30 days.
	RecentRecords []records.PersonalRecord

	// MuscleGroups maps exercise id to muscle group for the whole
	// catalog.
	MuscleGroups map[int]string

	Now time.Time
}

// sessionsWithinDays filters the snapshot sessions to the given
// trailing window.
func (s *Snapshot) sessionsWithinDays(days int) []sessions.TrainingSession {
	cutoff := s.Now.AddDate(0, 0, -days)
	var out []sessions.TrainingSession
	for _, sess := range s.Sessions {
		if !sess.Date.Before(cutoff) {
			out = append(out, sess)
		}
	}
	return out
}

// muscleGroupShares computes, per muscle group the user actually
// trained, the share of logged exercises that hit it. Groups absent
// from the logs are not judged at all.
func (s *Snapshot) muscleGroupShares() (map[string]float64, int) {
	counts := make(map[string]int)
	total := 0
	for _, sess := range s.Sessions {
		for _, l := range sess.Logs {
			group, ok := s.MuscleGroups[l.ExerciseID]
			if !ok {
				continue
			}
			counts[group]++
			total++
		}
	}

	shares := make(map[string]float64, len(counts))
	for group, count := range counts {
		shares[group] = float64(count) / float64(total)
	}
	return shares, total
}
