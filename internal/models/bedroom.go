package models

import (
	"time"

	"github.com/google/uuid"
)

// BedroomStatusType is the availability state of an individually bookable
// room. A bedroom must never be booked by two confirmed bookings at once;
// the repository enforces the transition with a conditional update.
type BedroomStatusType string

const (
	BedroomStatusAvailable BedroomStatusType = "available"
	BedroomStatusBooked    BedroomStatusType = "booked"
)

type Bedroom struct {
	Versioned
	ID              uuid.UUID         `json:"id"`
	PropertyID      uuid.UUID         `json:"propertyId"`
	Name            string            `json:"name"`
	Rent            float64           `json:"rent"`
	SizeSqFt        int               `json:"sizeSqFt"`
	Furnished       bool              `json:"furnished"`
	PrivateWashroom bool              `json:"privateWashroom"`
	SharedWashroom  bool              `json:"sharedWashroom"`
	SharedKitchen   bool              `json:"sharedKitchen"`
	Images          []string          `json:"images"`
	AvailableFrom   string            `json:"availableFrom,omitempty"`
	Lease           string            `json:"lease,omitempty"`
	Floor           string            `json:"floor,omitempty"`
	Note            string            `json:"note,omitempty"`
	Status          BedroomStatusType `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
	UpdatedAt       time.Time         `json:"updatedAt"`
}

func (b *Bedroom) GetID() string { return b.ID.String() }
