package models

import (
	"time"

	"github.com/google/uuid"
)

type EnquiryStatusType string

const (
	EnquiryStatusPending  EnquiryStatusType = "pending"
	EnquiryStatusApproved EnquiryStatusType = "approved"
	EnquiryStatusRejected EnquiryStatusType = "rejected"
)

// Enquiry is a booking request for listings that are book-by-enquiry only.
// Approving one creates a pending booking hold (no payment yet).
type Enquiry struct {
	ID          uuid.UUID  `json:"id"`
	UserID      *uuid.UUID `json:"userId,omitempty"`
	Name        string     `json:"name"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Gender      string    `json:"gender"`
	Nationality string    `json:"nationality"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone"`

	Address       string `json:"address"`
	AddressLine2  string `json:"addressLine2,omitempty"`
	Country       string `json:"country"`
	StateProvince string `json:"stateProvince"`

	LeaseDuration string     `json:"leaseDuration"`
	MoveInDate    time.Time  `json:"moveInDate"`
	MoveOutDate   *time.Time `json:"moveOutDate,omitempty"`

	UniversityName    string `json:"universityName"`
	CourseName        string `json:"courseName"`
	UniversityAddress string `json:"universityAddress"`
	EnrollmentStatus  string `json:"enrollmentStatus"`

	HasMedicalConditions bool   `json:"hasMedicalConditions"`
	MedicalDetails       string `json:"medicalDetails,omitempty"`

	PropertyID  uuid.UUID  `json:"propertyId"`
	BedroomID   *uuid.UUID `json:"bedroomId,omitempty"`
	BedroomName *string    `json:"bedroomName,omitempty"`
	Price       float64    `json:"price"`
	Currency    string     `json:"currency"`

	Status    EnquiryStatusType `json:"status"`
	CreatedAt time.Time         `json:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}
