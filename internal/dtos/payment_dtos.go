package dtos

import "time"

// BookingForm is the client-supplied booking detail that rides along with
// the payment intent (and is replayed verbatim at confirmation time).
type BookingForm struct {
	UserID      string `json:"userId" validate:"required,uuid4"`
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	Phone       string `json:"phone" validate:"required"`
	PropertyID  string `json:"propertyId" validate:"required,uuid4"`
	BedroomID   string `json:"bedroomId,omitempty" validate:"omitempty,uuid4"`
	BedroomName string `json:"bedroomName,omitempty"`

	LeaseStart    string `json:"leaseStart,omitempty"`
	LeaseEnd      string `json:"leaseEnd,omitempty"`
	MoveInDate    string `json:"moveInDate,omitempty"`
	MoveOutDate   string `json:"moveOutDate,omitempty"`
	RentalDays    int    `json:"rentalDays,omitempty" validate:"omitempty,gte=0"`
	MoveInMonth   string `json:"moveInMonth,omitempty"`
	LeaseDuration string `json:"leaseDuration,omitempty"`

	Price                float64 `json:"price" validate:"required,gt=0"`
	Currency             string  `json:"currency" validate:"required,len=3"`
	SecurityDeposit      float64 `json:"securityDeposit,omitempty" validate:"omitempty,gte=0"`
	SecurityDepositPaid  bool    `json:"securityDepositPaid,omitempty"`
	LastMonthPayment     float64 `json:"lastMonthPayment,omitempty" validate:"omitempty,gte=0"`
	LastMonthPaymentPaid bool    `json:"lastMonthPaymentPaid,omitempty"`
}

type CreatePaymentIntentRequest struct {
	Amount   float64     `json:"amount" validate:"required,gt=0"`
	Currency string      `json:"currency" validate:"required,len=3"`
	Booking  BookingForm `json:"bookingDetails" validate:"required"`
}

type CreatePaymentIntentResponse struct {
	PaymentIntentID string `json:"paymentIntentId"`
	ClientSecret    string `json:"clientSecret"`
}

type ConfirmPaymentRequest struct {
	PaymentIntentID string `json:"paymentIntentId" validate:"required"`
}

// ConfirmPaymentResponse carries the reconciled booking. AlreadyProcessed is
// true when a previous confirmation (or the webhook) won the race.
type ConfirmPaymentResponse struct {
	BookingID        string `json:"bookingId"`
	Status           string `json:"status"`
	PaymentStatus    string `json:"paymentStatus"`
	AlreadyProcessed bool   `json:"alreadyProcessed"`
}

type PaymentStatusResponse struct {
	BookingID       string     `json:"bookingId"`
	PaymentIntentID string     `json:"paymentIntentId,omitempty"`
	PaymentStatus   string     `json:"paymentStatus"`
	PaymentAmount   float64    `json:"paymentAmount"`
	Currency        string     `json:"currency"`
	PaymentDate     *time.Time `json:"paymentDate,omitempty"`
}
