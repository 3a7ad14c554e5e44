package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"
	"github.com/sirupsen/logrus"

	"github.com/cloudstay/rental-service/internal/constants"
	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

// BookingReconciler owns the payment-to-booking reconciliation flow. The
// payment intent id is the idempotency key: confirm-payment calls and
// webhook deliveries can race or repeat, and exactly one booking comes out.
type BookingReconciler struct {
	gateway    PaymentGateway
	bookings   repositories.BookingRepository
	bedrooms   repositories.BedroomRepository
	properties repositories.PropertyRepository
	revenues   repositories.RevenueRepository
	notifier   Notifier
}

func NewBookingReconciler(
	gateway PaymentGateway,
	bookings repositories.BookingRepository,
	bedrooms repositories.BedroomRepository,
	properties repositories.PropertyRepository,
	revenues repositories.RevenueRepository,
	notifier Notifier,
) *BookingReconciler {
	return &BookingReconciler{
		gateway:    gateway,
		bookings:   bookings,
		bedrooms:   bedrooms,
		properties: properties,
		revenues:   revenues,
		notifier:   notifier,
	}
}

// CreateIntent validates the target listing, then opens a payment intent
// carrying the full booking form in its metadata.
func (s *BookingReconciler) CreateIntent(ctx context.Context, req *dtos.CreatePaymentIntentRequest) (*dtos.CreatePaymentIntentResponse, error) {
	propID, err := uuid.Parse(req.Booking.PropertyID)
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

	// Best-effort availability precheck. The authoritative guard is the
	// conditional update at reconciliation time.
	if req.Booking.BedroomID != "" {
		bedroomID, err := uuid.Parse(req.Booking.BedroomID)
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
		if bedroom.Status != models.BedroomStatusAvailable {
			return nil, utils.ErrBedroomUnavailable
		}
	}

	payload, err := EncodeBookingPayload(req.Booking)
	if err != nil {
		return nil, err
	}

	intent, err := s.gateway.CreateIntent(ctx, req.Amount, req.Currency, map[string]string{
		constants.MetadataBookingDetailsKey: payload,
		constants.MetadataUserIDKey:         req.Booking.UserID,
		constants.MetadataPropertyIDKey:     req.Booking.PropertyID,
	})
	if err != nil {
		return nil, err
	}

	utils.Logger.Infof("Created payment intent %s for property %s (%.2f %s)",
		intent.ID, req.Booking.PropertyID, req.Amount, req.Currency)

	return &dtos.CreatePaymentIntentResponse{
		PaymentIntentID: intent.ID,
		ClientSecret:    intent.ClientSecret,
	}, nil
}

// Reconcile turns a succeeded payment intent into exactly one confirmed
// booking. Returns created=false when a previous call already did the work.
func (s *BookingReconciler) Reconcile(ctx context.Context, intentID string) (*models.Booking, bool, error) {
	// Fast path: someone already reconciled this intent.
	existing, err := s.bookings.GetByPaymentIntentID(ctx, intentID)
	if err != nil {
		return nil, false, err
	}
	if existing != nil {
		return existing, false, nil
	}

	intent, err := s.gateway.RetrieveIntent(ctx, intentID)
	if err != nil {
		return nil, false, err
	}
	if intent.Status != IntentStatusSucceeded {
		return nil, false, fmt.Errorf("%w: intent %s is %s", utils.ErrPaymentIncomplete, intentID, intent.Status)
	}

	// Past this point money has moved. Unusable metadata is no longer a
	// caller mistake: it means a paid intent cannot be reconciled, so it
	// gets an operator-facing log with everything needed to repair it.
	payload, perr := DecodeBookingPayload(intent.Metadata[constants.MetadataBookingDetailsKey])
	var booking *models.Booking
	if perr == nil {
		booking, perr = BookingFromPayload(payload, intent)
	}
	if perr != nil {
		utils.Logger.WithError(perr).WithFields(logrus.Fields{
			"intentId": intentID,
			"metadata": intent.Metadata,
		}).Error("Payment succeeded but booking metadata is unusable; manual reconciliation required")
		return nil, false, fmt.Errorf("%w: intent %s: %v", utils.ErrPayloadCorrupt, intentID, perr)
	}

	// Claim the bedroom before inserting the booking. The conditional
	// update is the only thing standing between two renters and one room.
	bedroomClaimed := false
	if booking.BedroomID != nil {
		err := s.bedrooms.MarkBooked(ctx, booking.PropertyID, *booking.BedroomID)
		switch {
		case err == nil:
			bedroomClaimed = true
		case errors.Is(err, utils.ErrBedroomUnavailable):
			// Either a concurrent reconcile of this same intent holds the
			// room, or a different renter genuinely beat us to it.
			winner, rerr := s.bookings.GetByPaymentIntentID(ctx, intentID)
			if rerr != nil {
				return nil, false, rerr
			}
			if winner != nil {
				return winner, false, nil
			}
			return nil, false, err
		case errors.Is(err, pgx.ErrNoRows):
			return nil, false, fmt.Errorf("%w: bedroom %s", utils.ErrNotFound, booking.BedroomID)
		default:
			return nil, false, err
		}
	}

	if err := s.bookings.Create(ctx, booking); err != nil {
		if repositories.IsUniqueViolation(err) {
			// Lost the insert race to another reconcile of the same intent.
			if bedroomClaimed {
				if rerr := s.bedrooms.MarkAvailable(ctx, booking.PropertyID, *booking.BedroomID); rerr != nil {
					utils.Logger.WithError(rerr).Errorf("Failed to release bedroom %s after losing insert race", booking.BedroomID)
				}
			}
			winner, rerr := s.bookings.GetByPaymentIntentID(ctx, intentID)
			if rerr != nil {
				return nil, false, rerr
			}
			if winner != nil {
				return winner, false, nil
			}
			return nil, false, err
		}
		if bedroomClaimed {
			if rerr := s.bedrooms.MarkAvailable(ctx, booking.PropertyID, *booking.BedroomID); rerr != nil {
				utils.Logger.WithError(rerr).Errorf("Failed to release bedroom %s after booking insert failure", booking.BedroomID)
			}
		}
		return nil, false, err
	}

	// Ledger and notifications are best effort; the booking is already
	// durable and a retry here must not double-charge or double-book.
	s.recordRevenue(ctx, booking)
	s.notifier.BookingConfirmed(ctx, booking)

	utils.Logger.Infof("Reconciled intent %s into booking %s (%.2f %s)",
		intentID, booking.ID, booking.PaymentAmount, booking.Currency)
	return booking, true, nil
}

// HandleWebhookEvent feeds verified gateway events into reconciliation.
// Errors are logged, not returned: Stripe retries on non-2xx and a poison
// event would retry forever.
func (s *BookingReconciler) HandleWebhookEvent(ctx context.Context, event *WebhookEvent) {
	switch event.Type {
	case EventPaymentIntentSucceeded:
		if event.Intent == nil {
			utils.Logger.Errorf("payment_intent.succeeded event %s carried no intent", event.ID)
			return
		}
		if _, _, err := s.Reconcile(ctx, event.Intent.ID); err != nil {
			utils.Logger.WithError(err).Errorf("Webhook reconcile failed for intent %s", event.Intent.ID)
		}
	default:
		utils.Logger.Debugf("Ignoring gateway event type %s", event.Type)
	}
}

// AuditInventory re-derives bedroom state from active bookings and heals
// drift in both directions (a crash between MarkBooked and Create can strand
// a room, and manual DB edits happen). Runs on a schedule.
func (s *BookingReconciler) AuditInventory(ctx context.Context) error {
	bookings, err := s.bookings.ListActiveWithBedrooms(ctx)
	if err != nil {
		return err
	}

	held := make(map[uuid.UUID]*models.Booking, len(bookings))
	for _, b := range bookings {
		held[*b.BedroomID] = b
	}

	var healed int
	for bedroomID, b := range held {
		bedroom, err := s.bedrooms.GetByID(ctx, bedroomID)
		if err != nil {
			return err
		}
		if bedroom == nil {
			utils.Logger.Warnf("Active booking %s references missing bedroom %s", b.ID, bedroomID)
			continue
		}
		if bedroom.Status != models.BedroomStatusBooked {
			if err := s.bedrooms.MarkBooked(ctx, b.PropertyID, bedroomID); err != nil {
				utils.Logger.WithError(err).Errorf("Inventory audit could not re-book bedroom %s", bedroomID)
				continue
			}
			healed++
			utils.Logger.Warnf("Inventory audit re-booked bedroom %s held by booking %s", bedroomID, b.ID)
		}
	}

	// Inverse leg: a booked bedroom with no active booking is a stranded
	// claim (crash between the claim and the insert). Releasing it lets the
	// next confirm or webhook replay reconcile the paid intent.
	booked, err := s.bedrooms.ListBooked(ctx)
	if err != nil {
		return err
	}
	var released int
	for _, bedroom := range booked {
		if _, ok := held[bedroom.ID]; ok {
			continue
		}
		if err := s.bedrooms.MarkAvailable(ctx, bedroom.PropertyID, bedroom.ID); err != nil {
			utils.Logger.WithError(err).Errorf("Inventory audit could not release stranded bedroom %s", bedroom.ID)
			continue
		}
		released++
		utils.Logger.Warnf("Inventory audit released bedroom %s with no active booking", bedroom.ID)
	}

	utils.Logger.Infof("Inventory audit complete: %d active holds checked, %d re-booked, %d released", len(held), healed, released)
	return nil
}

func (s *BookingReconciler) recordRevenue(ctx context.Context, b *models.Booking) {
	rev := &models.Revenue{
		ID:         uuid.New(),
		BookingID:  b.ID,
		PropertyID: b.PropertyID,
		Amount:     b.PaymentAmount,
		Currency:   b.Currency,
		Status:     models.RevenueStatusCompleted,
	}
	if err := s.revenues.Create(ctx, rev); err != nil {
		utils.Logger.WithError(err).Errorf("Failed to record revenue for booking %s", b.ID)
	}
}
