package progress

import (
	"errors"
	"time"

	"github.com/fittrackhq/fittrack/pkg"
)

// DailyProgress is one per-day wellness entry. The pointer fields
// distinguish "not recorded" from a recorded zero, the recovery
// analytics only average over recorded values.
type DailyProgress struct {
	ID               int       `json:"id"`
	UserID           int       `json:"userId"`
	Date             time.Time `json:"date"`
	Weight           *float64  `json:"weight,omitempty"`
	SleepHours       *float64  `json:"sleepHours,omitempty"`
	WaterIntakeML    *float64  `json:"waterIntakeMl,omitempty"`
	CaloriesConsumed *int      `json:"caloriesConsumed,omitempty"`
	CaloriesBurned   *int      `json:"caloriesBurned,omitempty"`
	Mood             string    `json:"mood,omitempty"`
	Notes            string    `json:"notes,omitempty"`
}

func (p *DailyProgress) Validate() error {
	if p.Date.IsZero() {
		return errors.New("date is required")
	}
	for name, val := range map[string]*float64{
		"weight":      p.Weight,
		"sleepHours":  p.SleepHours,
		"waterIntake": p.WaterIntakeML,
	} {
		if val == nil {
			continue
		}
		if !pkg.IsFiniteNumber(*val) || *val < 0 {
			return errors.New(name + " must be a non-negative number")
		}
	}
	if p.SleepHours != nil && *p.SleepHours > 24 {
		return errors.New("sleepHours must not exceed 24")
	}
	if p.CaloriesConsumed != nil && *p.CaloriesConsumed < 0 {
		return errors.New("caloriesConsumed must not be negative")
	}
	if p.CaloriesBurned != nil && *p.CaloriesBurned < 0 {
		return errors.New("caloriesBurned must not be negative")
	}
	return nil
}
