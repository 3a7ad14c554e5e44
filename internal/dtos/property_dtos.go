package dtos

type OverviewDTO struct {
	Bedrooms           int    `json:"bedrooms" validate:"gte=0"`
	Bathrooms          int    `json:"bathrooms" validate:"gte=0"`
	SquareFeet         int    `json:"squareFeet" validate:"gte=0"`
	Kitchen            string `json:"kitchen,omitempty"`
	YearOfConstruction int    `json:"yearOfConstruction,omitempty"`
	RoomType           string `json:"roomType,omitempty" validate:"omitempty,oneof=private shared"`
	KitchenType        string `json:"kitchenType,omitempty" validate:"omitempty,oneof=private shared"`
	BathroomType       string `json:"bathroomType,omitempty" validate:"omitempty,oneof=private shared"`
}

type BookingOptionsDTO struct {
	AllowSecurityDeposit  bool `json:"allowSecurityDeposit"`
	AllowFirstRent        bool `json:"allowFirstRent"`
	AllowFirstAndLastRent bool `json:"allowFirstAndLastRent"`
}

type BedroomDTO struct {
	Name            string   `json:"name" validate:"required"`
	Rent            float64  `json:"rent" validate:"required,gt=0"`
	SizeSqFt        int      `json:"sizeSqFt,omitempty" validate:"omitempty,gte=0"`
	Furnished       bool     `json:"furnished"`
	PrivateWashroom bool     `json:"privateWashroom"`
	SharedWashroom  bool     `json:"sharedWashroom"`
	SharedKitchen   bool     `json:"sharedKitchen"`
	Images          []string `json:"images,omitempty"`
	AvailableFrom   string   `json:"availableFrom,omitempty"`
	Lease           string   `json:"lease,omitempty"`
	Floor           string   `json:"floor,omitempty"`
	Note            string   `json:"note,omitempty"`
}

type PropertyRequest struct {
	Title               string            `json:"title" validate:"required"`
	Description         string            `json:"description" validate:"required"`
	Price               float64           `json:"price" validate:"required,gt=0"`
	SecurityDeposit     float64           `json:"securityDeposit,omitempty" validate:"omitempty,gte=0"`
	Currency            string            `json:"currency" validate:"required,len=3"`
	Country             string            `json:"country" validate:"required"`
	Latitude            *float64          `json:"latitude,omitempty"`
	Longitude           *float64          `json:"longitude,omitempty"`
	Type                string            `json:"type" validate:"required,oneof=apartment house commercial land"`
	Amenities           []string          `json:"amenities,omitempty"`
	Utilities           []string          `json:"utilities,omitempty"`
	Overview            OverviewDTO       `json:"overview"`
	RentDetails         string            `json:"rentDetails,omitempty"`
	TermsOfStay         string            `json:"termsOfStay,omitempty"`
	CancellationPolicy  string            `json:"cancellationPolicy,omitempty"`
	Location            string            `json:"location" validate:"required"`
	City                string            `json:"city" validate:"required"`
	Locality            string            `json:"locality,omitempty"`
	Images              []string          `json:"images,omitempty"`
	Verified            bool              `json:"verified"`
	OnSiteVerification  bool              `json:"onSiteVerification"`
	MinimumStayDuration string            `json:"minimumStayDuration,omitempty"`
	AvailableFrom       string            `json:"availableFrom,omitempty"`
	NearbyUniversities  []string          `json:"nearbyUniversities,omitempty"`
	BookingOptions      BookingOptionsDTO `json:"bookingOptions"`
	InstantBooking      bool              `json:"instantBooking"`
	BookByEnquiry       bool              `json:"bookByEnquiry"`
	Bedrooms            []BedroomDTO      `json:"bedroomDetails,omitempty" validate:"omitempty,dive"`
}
