package models

import (
	"time"

	"github.com/google/uuid"
)

type BookingStatusType string

const (
	BookingStatusPending   BookingStatusType = "pending"
	BookingStatusConfirmed BookingStatusType = "confirmed"
	BookingStatusCancelled BookingStatusType = "cancelled"
)

type PaymentStatusType string

const (
	PaymentStatusPending    PaymentStatusType = "pending"
	PaymentStatusProcessing PaymentStatusType = "processing"
	PaymentStatusCompleted  PaymentStatusType = "completed"
	PaymentStatusFailed     PaymentStatusType = "failed"
	PaymentStatusRefunded   PaymentStatusType = "refunded"
)

// Booking records a renter's hold on a property (and optionally one of its
// bedrooms). PaymentIntentID links 1:1 to the gateway transaction and is the
// idempotency key for reconciliation; the table carries a partial unique
// index on it.
type Booking struct {
	Versioned
	ID     uuid.UUID `json:"id"`
	UserID uuid.UUID `json:"userId"`
	Name   string    `json:"name"`
	Email  string    `json:"email"`
	Phone  string    `json:"phone"`

	PropertyID  uuid.UUID  `json:"propertyId"`
	BedroomID   *uuid.UUID `json:"bedroomId,omitempty"`
	BedroomName *string    `json:"bedroomName,omitempty"`

	LeaseStart    *time.Time `json:"leaseStart,omitempty"`
	LeaseEnd      *time.Time `json:"leaseEnd,omitempty"`
	MoveInDate    *time.Time `json:"moveInDate,omitempty"`
	MoveOutDate   *time.Time `json:"moveOutDate,omitempty"`
	RentalDays    int        `json:"rentalDays"`
	MoveInMonth   string     `json:"moveInMonth"`
	LeaseDuration string     `json:"leaseDuration,omitempty"`

	Price                float64 `json:"price"`
	Currency             string  `json:"currency"`
	SecurityDeposit      float64 `json:"securityDeposit"`
	SecurityDepositPaid  bool    `json:"securityDepositPaid"`
	LastMonthPayment     float64 `json:"lastMonthPayment"`
	LastMonthPaymentPaid bool    `json:"lastMonthPaymentPaid"`

	Status BookingStatusType `json:"status"`

	PaymentIntentID  *string           `json:"paymentIntentId,omitempty"`
	PaymentStatus    PaymentStatusType `json:"paymentStatus"`
	PaymentMethod    *string           `json:"paymentMethod,omitempty"`
	PaymentAmount    float64           `json:"paymentAmount"`
	PaymentDate      *time.Time        `json:"paymentDate,omitempty"`
	StripeCustomerID *string           `json:"stripeCustomerId,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (b *Booking) GetID() string { return b.ID.String() }
