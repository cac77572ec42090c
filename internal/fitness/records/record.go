package records

import (
	"time"
)

type RecordType string

const (
	RecordTypeMaxWeight RecordType = "max_weight"
	RecordTypeMaxReps   RecordType = "max_reps"
	RecordTypeMaxVolume RecordType = "max_volume"
)

// PersonalRecord is one achieved best for a user and exercise. Value
// carries the headline number for the record type, Reps and Weight
// carry the secondary context where it makes sense (the reps at which
// the heaviest weight was lifted, the weight at which the most reps
// were done).
type PersonalRecord struct {
	ID         int        `json:"id"`
	UserID     int        `json:"userId"`
	ExerciseID int        `json:"exerciseId"`
	Type       RecordType `json:"type"`
	Value      float64    `json:"value"`
	Reps       *int       `json:"reps,omitempty"`
	Weight     *float64   `json:"weight,omitempty"`
	Date       time.Time  `json:"date"`
}

// Set is one performed set inside a workout log.
type Set struct {
	Reps      int     `json:"reps"`
	Weight    float64 `json:"weight"`
	Completed bool    `json:"completed"`
}

// ExercisePerformance is what a training session contributes for one
// exercise, the unit the detector evaluates.
type ExercisePerformance struct {
	ExerciseID int
	Sets       []Set
	Date       time.Time
}

type candidates struct {
	maxWeight     float64
	maxWeightReps int
	maxReps       int
	maxRepsWeight float64
	totalVolume   float64
}

// extractCandidates reduces the completed sets of one exercise to the
// three record candidates. Sets not marked completed do not count.
func extractCandidates(sets []Set) (candidates, bool) {
	var c candidates
	var anyCompleted bool
	for _, s := range sets {
		if !s.Completed {
			continue
		}
		anyCompleted = true
		if s.Weight > c.maxWeight {
			c.maxWeight = s.Weight
			c.maxWeightReps = s.Reps
		}
		if s.Reps > c.maxReps {
			c.maxReps = s.Reps
			c.maxRepsWeight = s.Weight
		}
		c.totalVolume += float64(s.Reps) * s.Weight
	}
	return c, anyCompleted
}
