package routines

import (
	"time"
)

// Routine is a reusable workout template. The exercise list is ordered
// by position and carries per-exercise targets for the session built
// from it.
type Routine struct {
	ID          int               `json:"id"`
	UserID      int               `json:"userId"`
	Name        string            `json:"name"`
	Description string            `json:"description,omitempty"`
	Difficulty  string            `json:"difficulty,omitempty"`
	IsFavorite  bool              `json:"isFavorite"`
	Exercises   []RoutineExercise `json:"exercises"`
	CreatedAt   time.Time         `json:"createdAt"`
}

// RoutineExercise links one exercise into a routine at a position,
// with optional targets.
type RoutineExercise struct {
	ExerciseID   int      `json:"exerciseId"`
	Position     int      `json:"position"`
	TargetSets   *int     `json:"targetSets,omitempty"`
	TargetReps   *int     `json:"targetReps,omitempty"`
	TargetWeight *float64 `json:"targetWeight,omitempty"`
	RestSec      *int     `json:"restSec,omitempty"`
	Notes        string   `json:"notes,omitempty"`
}
