package models

import (
	"time"

	"github.com/google/uuid"
)

type PropertyType string

const (
	PropertyTypeApartment  PropertyType = "apartment"
	PropertyTypeHouse      PropertyType = "house"
	PropertyTypeCommercial PropertyType = "commercial"
	PropertyTypeLand       PropertyType = "land"
)

type OccupancyType string

const (
	OccupancyPrivate OccupancyType = "private"
	OccupancyShared  OccupancyType = "shared"
)

// Overview summarizes the livable layout of a property. Bedrooms are
// tracked individually in the bedrooms table; Bedrooms here is the count.
type Overview struct {
	Bedrooms           int           `json:"bedrooms"`
	Bathrooms          int           `json:"bathrooms"`
	SquareFeet         int           `json:"squareFeet"`
	Kitchen            string        `json:"kitchen"`
	YearOfConstruction int           `json:"yearOfConstruction"`
	RoomType           OccupancyType `json:"roomType"`
	KitchenType        OccupancyType `json:"kitchenType"`
	BathroomType       OccupancyType `json:"bathroomType"`
}

// BookingOptions controls which upfront payments a listing accepts.
type BookingOptions struct {
	AllowSecurityDeposit  bool `json:"allowSecurityDeposit"`
	AllowFirstRent        bool `json:"allowFirstRent"`
	AllowFirstAndLastRent bool `json:"allowFirstAndLastRent"`
}

type Property struct {
	Versioned
	ID                  uuid.UUID      `json:"id"`
	Title               string         `json:"title"`
	Description         string         `json:"description"`
	Price               float64        `json:"price"`
	SecurityDeposit     float64        `json:"securityDeposit"`
	Currency            string         `json:"currency"`
	Country             string         `json:"country"`
	Latitude            *float64       `json:"latitude,omitempty"`
	Longitude           *float64       `json:"longitude,omitempty"`
	Type                PropertyType   `json:"type"`
	Amenities           []string       `json:"amenities"`
	Utilities           []string       `json:"utilities"`
	Overview            Overview       `json:"overview"`
	RentDetails         string         `json:"rentDetails"`
	TermsOfStay         string         `json:"termsOfStay"`
	CancellationPolicy  string         `json:"cancellationPolicy"`
	Location            string         `json:"location"`
	City                string         `json:"city"`
	Locality            string         `json:"locality"`
	Images              []string       `json:"images"`
	Verified            bool           `json:"verified"`
	OnSiteVerification  bool           `json:"onSiteVerification"`
	MinimumStayDuration string         `json:"minimumStayDuration"`
	AvailableFrom       string         `json:"availableFrom"`
	NearbyUniversities  []string       `json:"nearbyUniversities"`
	BookingOptions      BookingOptions `json:"bookingOptions"`
	InstantBooking      bool           `json:"instantBooking"`
	BookByEnquiry       bool           `json:"bookByEnquiry"`
	CreatedAt           time.Time      `json:"createdAt"`
	UpdatedAt           time.Time      `json:"updatedAt"`

	// Populated on reads that join the bedrooms table.
	Bedrooms []*Bedroom `json:"bedroomDetails,omitempty"`
}

func (p *Property) GetID() string { return p.ID.String() }
