package dtos

type EnquiryRequest struct {
	Name        string `json:"name" validate:"required"`
	DateOfBirth string `json:"dateOfBirth" validate:"required"`
	Gender      string `json:"gender,omitempty"`
	Nationality string `json:"nationality,omitempty"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`

	Address       string `json:"address,omitempty"`
	AddressLine2  string `json:"addressLine2,omitempty"`
	Country       string `json:"country,omitempty"`
	StateProvince string `json:"stateProvince,omitempty"`

	LeaseDuration string `json:"leaseDuration" validate:"required"`
	MoveInDate    string `json:"moveInDate" validate:"required"`
	MoveOutDate   string `json:"moveOutDate,omitempty"`

	UniversityName    string `json:"universityName,omitempty"`
	CourseName        string `json:"courseName,omitempty"`
	UniversityAddress string `json:"universityAddress,omitempty"`
	EnrollmentStatus  string `json:"enrollmentStatus,omitempty"`

	HasMedicalConditions bool   `json:"hasMedicalConditions"`
	MedicalDetails       string `json:"medicalDetails,omitempty"`

	PropertyID  string  `json:"propertyId" validate:"required,uuid4"`
	BedroomID   string  `json:"bedroomId,omitempty" validate:"omitempty,uuid4"`
	BedroomName string  `json:"bedroomName,omitempty"`
	Price       float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Currency    string  `json:"currency,omitempty" validate:"omitempty,len=3"`
}

type UpdateEnquiryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=pending approved rejected"`
}
