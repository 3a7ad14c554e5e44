package models

import (
	"time"

	"github.com/google/uuid"
)

type RevenueStatusType string

const (
	RevenueStatusCompleted RevenueStatusType = "completed"
	RevenueStatusRefunded  RevenueStatusType = "refunded"
)

// Revenue is a ledger row written when a booking is reconciled; the
// analytics endpoints aggregate over it.
type Revenue struct {
	ID         uuid.UUID         `json:"id"`
	BookingID  uuid.UUID         `json:"bookingId"`
	PropertyID uuid.UUID         `json:"propertyId"`
	Amount     float64           `json:"amount"`
	Currency   string            `json:"currency"`
	Status     RevenueStatusType `json:"status"`
	CreatedAt  time.Time         `json:"createdAt"`
}

// MonthlyRevenue is one point of the revenue chart series.
type MonthlyRevenue struct {
	Year  int     `json:"year"`
	Month int     `json:"month"`
	Total float64 `json:"total"`
}
