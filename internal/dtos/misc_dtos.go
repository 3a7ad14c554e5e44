package dtos

type ReviewRequest struct {
	PropertyID string `json:"propertyId" validate:"required,uuid4"`
	Rating     int    `json:"rating" validate:"required,gte=1,lte=5"`
	Comment    string `json:"comment,omitempty"`
}

type FavoriteRequest struct {
	PropertyID string `json:"propertyId" validate:"required,uuid4"`
}

type PlanRateDTO struct {
	Country string  `json:"country" validate:"required"`
	Amount  float64 `json:"amount" validate:"required,gte=0"`
}

type PlanRequest struct {
	PlanName    string        `json:"planname" validate:"required"`
	Description string        `json:"description,omitempty"`
	Rates       []PlanRateDTO `json:"plantype" validate:"required,min=1,dive"`
	CategoryIDs []string      `json:"categories,omitempty" validate:"omitempty,dive,uuid4"`
}

type PurchasePlanRequest struct {
	PlanID string  `json:"planId" validate:"required,uuid4"`
	Amount float64 `json:"amount" validate:"required,gte=0"`
}

type ContentRequest struct {
	Title       string `json:"title" validate:"required"`
	BannerImage string `json:"bannerImage,omitempty"`
	Description string `json:"description,omitempty"`
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
}

type CategoryRequest struct {
	CategoryName string   `json:"categoryName" validate:"required"`
	Labels       []string `json:"labels,omitempty"`
}

type UserRequest struct {
	Phone       string `json:"phone,omitempty"`
	Email       string `json:"email,omitempty" validate:"omitempty,email"`
	Username    string `json:"username,omitempty"`
	FirstName   string `json:"firstname,omitempty"`
	LastName    string `json:"lastname,omitempty"`
	CountryCode string `json:"countryCode,omitempty"`
	CountryName string `json:"countryName,omitempty"`
}
