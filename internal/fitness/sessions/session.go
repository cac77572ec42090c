package sessions

import (
	"errors"
	"fmt"
	"time"

	"github.com/fittrackhq/fittrack/internal/fitness/records"
	"github.com/fittrackhq/fittrack/pkg"
)

// WorkoutLog is the performance of one exercise within a session.
type WorkoutLog struct {
	ID         int           `json:"id"`
	ExerciseID int           `json:"exerciseId"`
	Sets       []records.Set `json:"sets"`
	Notes      string        `json:"notes,omitempty"`
}

// TrainingSession is one completed workout. TotalVolume is derived at
// ingestion from the completed sets and stored, never recomputed on
// read.
type TrainingSession struct {
	ID          int          `json:"id"`
	UserID      int          `json:"userId"`
	Date        time.Time    `json:"date"`
	DurationMin int          `json:"durationMin"`
	TotalVolume float64      `json:"totalVolume"`
	Rating      *int         `json:"rating,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	Logs        []WorkoutLog `json:"logs"`
}

// TotalVolume sums reps times weight over every completed set in the
// session. Skipped sets contribute nothing.
func TotalVolume(logs []WorkoutLog) float64 {
	var total float64
	for _, l := range logs {
		for _, s := range l.Sets {
			if !s.Completed {
				continue
			}
			total += float64(s.Reps) * s.Weight
		}
	}
	return total
}

// Validate rejects sessions the analytics engine could not make sense
// of, before anything is persisted.
func (s *TrainingSession) Validate() error {
	if s.Date.IsZero() {
		return errors.New("session date is required")
	}
	if s.DurationMin < 0 {
		return errors.New("duration must not be negative")
	}
	if s.Rating != nil && (*s.Rating < 1 || *s.Rating > 5) {
		return errors.New("rating must be between 1 and 5")
	}
	for i, l := range s.Logs {
		if l.ExerciseID <= 0 {
			return fmt.Errorf("log %d: exercise id is required", i)
		}
		for j, set := range l.Sets {
			if set.Reps < 0 {
				return fmt.Errorf("log %d set %d: reps must not be negative", i, j)
			}
			if !pkg.IsFiniteNumber(set.Weight) || set.Weight < 0 {
				return fmt.Errorf("log %d set %d: weight must be a non-negative number", i, j)
			}
		}
	}
	return nil
}

// Performances converts the session logs to the shape the record
// detector evaluates.
func (s *TrainingSession) Performances() []records.ExercisePerformance {
	perfs := make([]records.ExercisePerformance, 0, len(s.Logs))
	for _, l := range s.Logs {
		perfs = append(perfs, records.ExercisePerformance{
			ExerciseID: l.ExerciseID,
			Sets:       l.Sets,
			Date:       s.Date,
		})
	}
	return perfs
}
