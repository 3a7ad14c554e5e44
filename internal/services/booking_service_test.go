package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/utils"
)

func newBookingServiceFixture(t *testing.T) (*BookingService, *reconcilerFixture) {
	t.Helper()
	f := newReconcilerFixture(t)
	svc := NewBookingService(f.bookings, f.bedrooms, f.properties, f.notifier)
	return svc, f
}

func TestCreateBookingPlacesPendingHold(t *testing.T) {
	svc, f := newBookingServiceFixture(t)
	ctx := context.Background()
	form := f.bookingForm()

	b, err := svc.Create(ctx, &form)
	require.NoError(t, err)
	assert.Equal(t, models.BookingStatusPending, b.Status)
	assert.Equal(t, models.PaymentStatusPending, b.PaymentStatus)
	assert.Nil(t, b.PaymentIntentID)
	require.NotNil(t, b.BedroomID)
	assert.Equal(t, form.BedroomID, b.BedroomID.String())
	require.NotNil(t, b.BedroomName)
	assert.Equal(t, "Room A", *b.BedroomName)
	require.NotNil(t, b.MoveInDate)
	assert.Equal(t, "2026-09-01", b.MoveInDate.Format("2006-01-02"))

	// The hold claims the room immediately.
	room, err := f.bedrooms.GetByID(ctx, *b.BedroomID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusBooked, room.Status)

	// A second renter cannot hold the same room.
	other := f.bookingForm()
	_, err = svc.Create(ctx, &other)
	assert.ErrorIs(t, err, utils.ErrBedroomUnavailable)
}

func TestCreateBookingUnknownProperty(t *testing.T) {
	svc, f := newBookingServiceFixture(t)
	form := f.bookingForm()
	form.PropertyID = uuid.New().String()

	_, err := svc.Create(context.Background(), &form)
	assert.ErrorIs(t, err, utils.ErrNotFound)
}

func TestCreateBookingRejectsBadDates(t *testing.T) {
	svc, f := newBookingServiceFixture(t)
	ctx := context.Background()
	form := f.bookingForm()
	form.MoveInDate = "01/09/2026"

	_, err := svc.Create(ctx, &form)
	assert.ErrorIs(t, err, utils.ErrInvalidPayload)

	// Validation failed before the claim, so the room stays available.
	room, err := f.bedrooms.GetByID(ctx, f.bedroom.ID)
	require.NoError(t, err)
	assert.Equal(t, models.BedroomStatusAvailable, room.Status)
}

func TestCreateBookingWithoutBedroom(t *testing.T) {
	svc, f := newBookingServiceFixture(t)
	form := f.bookingForm()
	form.BedroomID = ""

	b, err := svc.Create(context.Background(), &form)
	require.NoError(t, err)
	assert.Nil(t, b.BedroomID)
	assert.Equal(t, models.BookingStatusPending, b.Status)
}
