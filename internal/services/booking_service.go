package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

type BookingService struct {
	bookings   repositories.BookingRepository
	bedrooms   repositories.BedroomRepository
	properties repositories.PropertyRepository
	notifier   Notifier
}

func NewBookingService(
	bookings repositories.BookingRepository,
	bedrooms repositories.BedroomRepository,
	properties repositories.PropertyRepository,
	notifier Notifier,
) *BookingService {
	return &BookingService{bookings: bookings, bedrooms: bedrooms, properties: properties, notifier: notifier}
}

// Create places a pending booking hold without a payment attached: the
// bedroom is claimed immediately so it cannot be sold twice while payment
// is arranged separately. Paid bookings come out of the reconciler instead.
func (s *BookingService) Create(ctx context.Context, form *dtos.BookingForm) (*models.Booking, error) {
	userID, err := uuid.Parse(form.UserID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad userId", utils.ErrInvalidPayload)
	}
	propID, err := uuid.Parse(form.PropertyID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad propertyId", utils.ErrInvalidPayload)
	}
	prop, err := s.properties.GetByID(ctx, propID)
	if err != nil {
		return nil, err
	}
	if prop == nil {
		return nil, fmt.Errorf("%w: property %s", utils.ErrNotFound, propID)
	}

	b := &models.Booking{
		ID:            uuid.New(),
		UserID:        userID,
		Name:          form.Name,
		Email:         form.Email,
		Phone:         form.Phone,
		PropertyID:    propID,
		RentalDays:    form.RentalDays,
		MoveInMonth:   form.MoveInMonth,
		LeaseDuration: form.LeaseDuration,
		Price:         form.Price,
		Currency:      form.Currency,

		SecurityDeposit:      form.SecurityDeposit,
		SecurityDepositPaid:  form.SecurityDepositPaid,
		LastMonthPayment:     form.LastMonthPayment,
		LastMonthPaymentPaid: form.LastMonthPaymentPaid,

		Status:        models.BookingStatusPending,
		PaymentStatus: models.PaymentStatusPending,
	}
	if form.BedroomName != "" {
		b.BedroomName = &form.BedroomName
	}
	if b.MoveInDate, err = parseOptionalDate(form.MoveInDate); err != nil {
		return nil, err
	}
	if b.MoveOutDate, err = parseOptionalDate(form.MoveOutDate); err != nil {
		return nil, err
	}
	if b.LeaseStart, err = parseOptionalDate(form.LeaseStart); err != nil {
		return nil, err
	}
	if b.LeaseEnd, err = parseOptionalDate(form.LeaseEnd); err != nil {
		return nil, err
	}

	bedroomClaimed := false
	if form.BedroomID != "" {
		bedroomID, err := uuid.Parse(form.BedroomID)
		if err != nil {
			return nil, fmt.Errorf("%w: bad bedroomId", utils.ErrInvalidPayload)
		}
		bedroom, err := s.bedrooms.GetByID(ctx, bedroomID)
		if err != nil {
			return nil, err
		}
		if bedroom == nil || bedroom.PropertyID != propID {
			return nil, fmt.Errorf("%w: bedroom %s", utils.ErrNotFound, bedroomID)
		}
		if err := s.bedrooms.MarkBooked(ctx, propID, bedroomID); err != nil {
			return nil, err
		}
		bedroomClaimed = true
		b.BedroomID = &bedroomID
		if b.BedroomName == nil {
			b.BedroomName = &bedroom.Name
		}
	}

	if err := s.bookings.Create(ctx, b); err != nil {
		if bedroomClaimed {
			if rerr := s.bedrooms.MarkAvailable(ctx, propID, *b.BedroomID); rerr != nil {
				utils.Logger.WithError(rerr).Errorf("Failed to release bedroom %s after hold failure", b.BedroomID)
			}
		}
		return nil, err
	}

	utils.Logger.Infof("Booking hold %s placed for property %s", b.ID, propID)
	return b, nil
}

func (s *BookingService) Get(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	b, err := s.bookings.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if b == nil {
		return nil, fmt.Errorf("%w: booking %s", utils.ErrNotFound, id)
	}
	return b, nil
}

func (s *BookingService) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return s.bookings.ListAll(ctx)
}

func (s *BookingService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return s.bookings.ListByUserID(ctx, userID)
}

func (s *BookingService) ListByProperty(ctx context.Context, propID uuid.UUID) ([]*models.Booking, error) {
	return s.bookings.ListByPropertyID(ctx, propID)
}

// UpdateStatus transitions the booking and keeps the bedroom ledger in sync:
// cancelling releases a held room, confirming claims it.
func (s *BookingService) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatusType) (*models.Booking, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if b.Status == status {
		return b, nil
	}

	if b.BedroomID != nil {
		switch status {
		case models.BookingStatusCancelled:
			if err := s.bedrooms.MarkAvailable(ctx, b.PropertyID, *b.BedroomID); err != nil {
				return nil, err
			}
		case models.BookingStatusConfirmed:
			if err := s.bedrooms.MarkBooked(ctx, b.PropertyID, *b.BedroomID); err != nil {
				return nil, err
			}
		}
	}

	updated, err := s.bookings.UpdateStatus(ctx, id, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, fmt.Errorf("%w: booking %s", utils.ErrNotFound, id)
	}

	if status == models.BookingStatusCancelled {
		if updated.PaymentStatus == models.PaymentStatusCompleted {
			if err := s.bookings.UpdatePaymentStatus(ctx, id, models.PaymentStatusRefunded); err != nil {
				utils.Logger.WithError(err).Errorf("Failed to mark booking %s payment refunded", id)
			} else {
				updated.PaymentStatus = models.PaymentStatusRefunded
			}
		}
		s.notifier.BookingCancelled(ctx, updated)
	}

	return updated, nil
}

// PaymentStatus backs GET /api/payment/status/{bookingId}.
func (s *BookingService) PaymentStatus(ctx context.Context, id uuid.UUID) (*dtos.PaymentStatusResponse, error) {
	b, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := &dtos.PaymentStatusResponse{
		BookingID:     b.ID.String(),
		PaymentStatus: string(b.PaymentStatus),
		PaymentAmount: b.PaymentAmount,
		Currency:      b.Currency,
		PaymentDate:   b.PaymentDate,
	}
	if b.PaymentIntentID != nil {
		resp.PaymentIntentID = *b.PaymentIntentID
	}
	return resp, nil
}

func (s *BookingService) Delete(ctx context.Context, id uuid.UUID) error {
	b, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if b.BedroomID != nil && b.Status == models.BookingStatusConfirmed {
		if err := s.bedrooms.MarkAvailable(ctx, b.PropertyID, *b.BedroomID); err != nil {
			return err
		}
	}
	return s.bookings.Delete(ctx, id)
}
