package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	PropertyID uuid.UUID `json:"propertyId"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	CreatedAt  time.Time `json:"createdAt"`
}

// Favorite is a wishlist entry. (user_id, property_id) is unique.
type Favorite struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"userId"`
	PropertyID uuid.UUID `json:"propertyId"`
	CreatedAt  time.Time `json:"createdAt"`
}
