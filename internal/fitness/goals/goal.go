package goals

import (
	"time"
)

type GoalType string

const (
	GoalTypeLoseWeight    GoalType = "lose_weight"
	GoalTypeGainMuscle    GoalType = "gain_muscle"
	GoalTypeImproveCardio GoalType = "improve_cardio"
	GoalTypeIncreaseLifts GoalType = "increase_lifts"
	GoalTypeGeneral       GoalType = "general_fitness"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Goal struct {
	ID           int        `json:"id"`
	UserID       int        `json:"userId"`
	Type         GoalType   `json:"type"`
	Title        string     `json:"title"`
	TargetValue  float64    `json:"targetValue"`
	CurrentValue float64    `json:"currentValue"`
	Unit         string     `json:"unit"`
	Deadline     *time.Time `json:"deadline,omitempty"`
	Priority     Priority   `json:"priority"`
	Achieved     bool       `json:"achieved"`
	CreatedAt    time.Time  `json:"createdAt"`
}
