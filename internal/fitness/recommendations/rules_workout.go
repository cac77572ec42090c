package recommendations

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"
)

// Frequency, balance and plateau rules over the training history.

const (
	minSessionsPerMonth    = 8
	neglectedGroupShare    = 0.10
	plateauWindowSessions  = 5
	plateauMinSamples      = 3
	plateauVolumeTolerance = 0.10
)

func workoutRules(s *Snapshot) []Recommendation {
	var recs []Recommendation

	if len(s.Sessions) < minSessionsPerMonth {
		recs = append(recs, Recommendation{
			Type:  RecTypeWorkout,
			Title: "Increase Training Frequency",
			Description: fmt.Sprintf(
				"You trained %d times in the last 30 days. Aim for at least 2 sessions a week to keep making progress.",
				len(s.Sessions),
			),
			Priority:   PriorityHigh,
			Confidence: 0.9,
			BasedOn: map[string]any{
				"sessionsLast30Days": len(s.Sessions),
			},
			ExpiresAt: expiresIn(s.Now, 7),
		})
	}

	if neglected, total := neglectedGroups(s); len(neglected) > 0 {
		recs = append(recs, Recommendation{
			Type:  RecTypeWorkout,
			Title: "Balance Your Training",
			Description: fmt.Sprintf(
				"These muscle groups got less than 10%% of your training volume: %s. Mix them into your next sessions.",
				strings.Join(neglected, ", "),
			),
			Priority:   PriorityMedium,
			Confidence: 0.85,
			BasedOn: map[string]any{
				"neglectedGroups": neglected,
				"loggedExercises": total,
			},
			ExpiresAt: expiresIn(s.Now, 14),
		})
	}

	if mean, samples, ok := volumePlateau(s); ok {
		recs = append(recs, Recommendation{
			Type:  RecTypeWorkout,
			Title: "Break Through Your Plateau",
			Description: "Your training volume has barely moved over your last five sessions. " +
				"Try adding weight, reps or a new exercise variation.",
			Priority:   PriorityMedium,
			Confidence: 0.8,
			BasedOn: map[string]any{
				"meanVolume":   mean,
				"windowLength": samples,
			},
			ExpiresAt: expiresIn(s.Now, 7),
		})
	}

	return recs
}

// neglectedGroups returns the trained muscle groups under the share
// threshold, sorted for stable output.
func neglectedGroups(s *Snapshot) ([]string, int) {
	shares, total := s.muscleGroupShares()
	if total == 0 {
		return nil, 0
	}

	var neglected []string
	for group, share := range shares {
		if share < neglectedGroupShare {
			neglected = append(neglected, group)
		}
	}
	sort.Strings(neglected)
	return neglected, total
}

// volumePlateau looks at the recorded volumes of up to the five most
// recent sessions and reports whether they all landed within the
// tolerance band around their mean.
func volumePlateau(s *Snapshot) (float64, int, bool) {
	var volumes []float64
	for _, sess := range s.Sessions {
		if len(volumes) == plateauWindowSessions {
			break
		}
		if sess.TotalVolume > 0 {
			volumes = append(volumes, sess.TotalVolume)
		}
	}
	if len(volumes) < plateauMinSamples {
		return 0, 0, false
	}

	var sum float64
	for _, v := range volumes {
		sum += v
	}
	mean := sum / float64(len(volumes))

	for _, v := range volumes {
		if math.Abs(v-mean)/mean > plateauVolumeTolerance {
			return 0, 0, false
		}
	}
	return mean, len(volumes), true
}

func expiresIn(now time.Time, days int) *time.Time {
	t := now.AddDate(0, 0, days)
	return &t
}
