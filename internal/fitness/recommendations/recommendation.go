package recommendations

import (
	"time"
)

type RecType string

const (
	RecTypeWorkout   RecType = "workout"
	RecTypeRecovery  RecType = "recovery"
	RecTypeGoal      RecType = "goal"
	RecTypeNutrition RecType = "nutrition"
	RecTypeProgress  RecType = "progress"
)

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusAccepted  Status = "accepted"
	StatusDismissed Status = "dismissed"
)

// Recommendation is one piece of rule-derived advice. BasedOn carries
// the raw numbers the rule fired on, so the client can show its work.
type Recommendation struct {
	ID          int            `json:"id"`
	UserID      int            `json:"userId"`
	Type        RecType        `json:"type"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Priority    Priority       `json:"priority"`
	BasedOn     map[string]any `json:"basedOn,omitempty"`
	Confidence  float64        `json:"confidence"`
	Status      Status         `json:"status"`
	ExpiresAt   *time.Time     `json:"expiresAt,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}
