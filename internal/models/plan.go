package models

import (
	"time"

	"github.com/google/uuid"
)

// PlanRate is a per-country price point for a subscription plan.
type PlanRate struct {
	Country string  `json:"country"`
	Amount  float64 `json:"amount"`
}

type Plan struct {
	ID          uuid.UUID   `json:"id"`
	PlanName    string      `json:"planname"`
	Description string      `json:"description"`
	Rates       []PlanRate  `json:"plantype"`
	CategoryIDs []uuid.UUID `json:"categories"`
	CreatedAt   time.Time   `json:"createdAt"`
	UpdatedAt   time.Time   `json:"updatedAt"`
}

// UserPlan links a user to a purchased plan at the amount they paid.
type UserPlan struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user"`
	PlanID    uuid.UUID `json:"plan"`
	Amount    float64   `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
