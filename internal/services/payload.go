package services

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/utils"
)

// bookingPayloadVersion guards the metadata schema. Intents created before a
// schema change decode against the version they were written with; anything
// unrecognized is rejected, never guessed at.
const bookingPayloadVersion = 1

// BookingPayload is the booking detail serialized into the payment intent's
// metadata. It is the single source of truth at reconciliation time.
type BookingPayload struct {
	Version int              `json:"version"`
	Booking dtos.BookingForm `json:"booking"`
}

func EncodeBookingPayload(form dtos.BookingForm) (string, error) {
	raw, err := json.Marshal(BookingPayload{
		Version: bookingPayloadVersion,
		Booking: form,
	})
	if err != nil {
		return "", err
	}
	return string(raw), nil
}

func DecodeBookingPayload(raw string) (*BookingPayload, error) {
	if raw == "" {
		return nil, fmt.Errorf("%w: missing booking details metadata", utils.ErrInvalidPayload)
	}
	var p BookingPayload
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrInvalidPayload, err)
	}
	if p.Version != bookingPayloadVersion {
		return nil, fmt.Errorf("%w: unsupported booking payload version %d", utils.ErrInvalidPayload, p.Version)
	}
	return &p, nil
}

// BookingFromPayload materializes a Booking from a decoded payload and the
// succeeded intent it was reconciled against.
func BookingFromPayload(p *BookingPayload, intent *PaymentIntent) (*models.Booking, error) {
	form := p.Booking

	userID, err := uuid.Parse(form.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad userId: %v", utils.ErrInvalidPayload, err)
	}
	propID, err := uuid.Parse(form.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad propertyId: %v", utils.ErrInvalidPayload, err)
	}

	var bedroomID *uuid.UUID
	if form.BedroomID != "" {
		id, err := uuid.Parse(form.BedroomID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad bedroomId: %v", utils.ErrInvalidPayload, err)
		}
		bedroomID = &id
	}

	leaseStart, err := parseOptionalDate(form.LeaseStart)
	if err != nil {
		return nil, err
	}
	leaseEnd, err := parseOptionalDate(form.LeaseEnd)
	if err != nil {
		return nil, err
	}
	moveIn, err := parseOptionalDate(form.MoveInDate)
	if err != nil {
		return nil, err
	}
	moveOut, err := parseOptionalDate(form.MoveOutDate)
	if err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	b := &models.Booking{
		ID:     uuid.New(),
		UserID: userID,
		Name:   form.Name,
		Email:  form.Email,
		Phone:  form.Phone,

		PropertyID: propID,
		BedroomID:  bedroomID,

		LeaseStart:    leaseStart,
		LeaseEnd:      leaseEnd,
		MoveInDate:    moveIn,
		MoveOutDate:   moveOut,
		RentalDays:    form.RentalDays,
		MoveInMonth:   form.MoveInMonth,
		LeaseDuration: form.LeaseDuration,

		Price:                form.Price,
		Currency:             form.Currency,
		SecurityDeposit:      form.SecurityDeposit,
		SecurityDepositPaid:  form.SecurityDepositPaid,
		LastMonthPayment:     form.LastMonthPayment,
		LastMonthPaymentPaid: form.LastMonthPaymentPaid,

		Status: models.BookingStatusConfirmed,

		PaymentIntentID: &intent.ID,
		PaymentStatus:   models.PaymentStatusCompleted,
		PaymentAmount:   FromMinorUnits(intent.Amount, intent.Currency),
		PaymentDate:     &now,
	}
	if form.BedroomName != "" {
		b.BedroomName = &form.BedroomName
	}
	if intent.PaymentMethod != "" {
		b.PaymentMethod = &intent.PaymentMethod
	}
	if intent.CustomerID != "" {
		b.StripeCustomerID = &intent.CustomerID
	}
	return b, nil
}

func parseOptionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%w: bad date %q", utils.ErrInvalidPayload, s)
}
