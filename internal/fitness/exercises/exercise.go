package exercises

import (
	"errors"
)

type Exercise struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscleGroup"`
	Difficulty  string `json:"difficulty,omitempty"`
	Equipment   string `json:"equipment,omitempty"`
	Description string `json:"description,omitempty"`
}

func (e *Exercise) Validate() error {
	if e.Name == "" {
		return errors.New("name is required")
	}
	if e.MuscleGroup == "" {
		return errors.New("muscle group is required")
	}
	return nil
}
