package users

import (
	"errors"
	"net/mail"
	"time"
)

type FitnessGoal string

const (
	FitnessGoalLoseWeight    FitnessGoal = "lose_weight"
	FitnessGoalGainMuscle    FitnessGoal = "gain_muscle"
	FitnessGoalImproveCardio FitnessGoal = "improve_cardio"
	FitnessGoalStayActive    FitnessGoal = "stay_active"
)

type ActivityLevel string

const (
	ActivityLevelSedentary ActivityLevel = "sedentary"
	ActivityLevelLight     ActivityLevel = "light"
	ActivityLevelModerate  ActivityLevel = "moderate"
	ActivityLevelActive    ActivityLevel = "active"
	ActivityLevelAthlete   ActivityLevel = "athlete"
)

type User struct {
	ID            int           `json:"id"`
	Email         string        `json:"email"`
	Name          string        `json:"name"`
	Age           *int          `json:"age,omitempty"`
	WeightKG      *float64      `json:"weightKg,omitempty"`
	HeightCM      *float64      `json:"heightCm,omitempty"`
	ActivityLevel ActivityLevel `json:"activityLevel,omitempty"`
	FitnessGoal   FitnessGoal   `json:"fitnessGoal,omitempty"`
	CreatedAt     time.Time     `json:"createdAt"`
}

func (u *User) Validate() error {
	if _, err := mail.ParseAddress(u.Email); err != nil {
		return errors.New("invalid email")
	}
	if u.Name == "" {
		return errors.New("name is required")
	}
	if u.Age != nil && (*u.Age < 13 || *u.Age > 120) {
		return errors.New("age out of range")
	}
	switch u.FitnessGoal {
	case "", FitnessGoalLoseWeight, FitnessGoalGainMuscle, FitnessGoalImproveCardio, FitnessGoalStayActive:
	default:
		return errors.New("unknown fitness goal")
	}
	switch u.ActivityLevel {
	case "", ActivityLevelSedentary, ActivityLevelLight, ActivityLevelModerate, ActivityLevelActive, ActivityLevelAthlete:
	default:
		return errors.New("unknown activity level")
	}
	return nil
}
