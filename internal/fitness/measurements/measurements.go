package measurements

import (
	"errors"
	"time"

	"github.com/fittrackhq/fittrack/pkg"
)

// BodyMeasurement is one measuring-tape session. All dimension fields
// are optional, whatever was measured that day.
type BodyMeasurement struct {
	ID        int       `json:"id"`
	UserID    int       `json:"userId"`
	Date      time.Time `json:"date"`
	Weight    *float64  `json:"weight,omitempty"`
	BodyFat   *float64  `json:"bodyFat,omitempty"`
	Chest     *float64  `json:"chest,omitempty"`
	Waist     *float64  `json:"waist,omitempty"`
	Hips      *float64  `json:"hips,omitempty"`
	Biceps    *float64  `json:"biceps,omitempty"`
	Thighs    *float64  `json:"thighs,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

func (m *BodyMeasurement) Validate() error {
	if m.Date.IsZero() {
		return errors.New("date is required")
	}
	for name, val := range map[string]*float64{
		"weight": m.Weight, "bodyFat": m.BodyFat, "chest": m.Chest,
		"waist": m.Waist, "hips": m.Hips, "biceps": m.Biceps, "thighs": m.Thighs,
	} {
		if val == nil {
			continue
		}
		if !pkg.IsFiniteNumber(*val) || *val < 0 {
			return errors.New(name + " must be a non-negative number")
		}
	}
	if m.BodyFat != nil && *m.BodyFat > 100 {
		return errors.New("bodyFat must be a percentage")
	}
	return nil
}
