package services

import (
	"context"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/paymentintent"
	"github.com/stripe/stripe-go/v82/webhook"

	"github.com/cloudstay/rental-service/internal/config"
	"github.com/cloudstay/rental-service/internal/constants"
	"github.com/cloudstay/rental-service/internal/utils"
)

// PaymentIntent is the gateway-neutral view of a payment transaction.
// Amount is in the currency's minor unit, exactly as the gateway holds it.
type PaymentIntent struct {
	ID            string
	ClientSecret  string
	Status        string
	Amount        int64
	Currency      string
	PaymentMethod string
	CustomerID    string
	Metadata      map[string]string
}

const IntentStatusSucceeded = "succeeded"

// WebhookEvent is a verified gateway event. Intent is set for
// payment_intent.* events and nil otherwise.
type WebhookEvent struct {
	ID     string
	Type   string
	Intent *PaymentIntent
}

const EventPaymentIntentSucceeded = "payment_intent.succeeded"

type PaymentGateway interface {
	CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error)
	RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error)
	VerifyWebhook(payload []byte, sigHeader string) (*WebhookEvent, error)
}

/* ------------------------------------------------------------------
   Stripe implementation
------------------------------------------------------------------ */

type stripeGateway struct {
	webhookSecret string
}

func NewStripeGateway(cfg *config.Config) PaymentGateway {
	stripe.Key = cfg.StripeSecretKey
	return &stripeGateway{webhookSecret: cfg.StripeWebhookSecret}
}

func (g *stripeGateway) CreateIntent(ctx context.Context, amount float64, currency string, metadata map[string]string) (*PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.GatewayCallTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(ToMinorUnits(amount, currency)),
		Currency: stripe.String(strings.ToLower(currency)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := paymentintent.New(params)
	if err != nil {
		return nil, g.wrapErr(err)
	}
	return fromStripeIntent(pi), nil
}

func (g *stripeGateway) RetrieveIntent(ctx context.Context, id string) (*PaymentIntent, error) {
	ctx, cancel := context.WithTimeout(ctx, constants.GatewayCallTimeout)
	defer cancel()

	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := paymentintent.Get(id, params)
	if err != nil {
		return nil, g.wrapErr(err)
	}
	return fromStripeIntent(pi), nil
}

func (g *stripeGateway) VerifyWebhook(payload []byte, sigHeader string) (*WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, sigHeader, g.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrSignatureInvalid, err)
	}

	out := &WebhookEvent{ID: event.ID, Type: string(event.Type)}
	if strings.HasPrefix(out.Type, "payment_intent.") {
		var pi stripe.PaymentIntent
		if err := pi.UnmarshalJSON(event.Data.Raw); err != nil {
			return nil, fmt.Errorf("%w: malformed payment intent in event %s", utils.ErrInvalidPayload, event.ID)
		}
		out.Intent = fromStripeIntent(&pi)
	}
	return out, nil
}

// wrapErr classifies gateway failures. Timeouts and cancellations are
// retryable transport problems, never payment failures.
func (g *stripeGateway) wrapErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err)
	}
	var sErr *stripe.Error
	if errors.As(err, &sErr) {
		if sErr.HTTPStatusCode == http.StatusNotFound {
			return utils.ErrIntentNotFound
		}
		if sErr.HTTPStatusCode >= http.StatusInternalServerError {
			return fmt.Errorf("%w: %v", utils.ErrExternalServiceFailure, err)
		}
	}
	return err
}

func fromStripeIntent(pi *stripe.PaymentIntent) *PaymentIntent {
	out := &PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Amount:       pi.Amount,
		Currency:     string(pi.Currency),
		Metadata:     pi.Metadata,
	}
	if pi.PaymentMethod != nil {
		out.PaymentMethod = pi.PaymentMethod.ID
	}
	if pi.Customer != nil {
		out.CustomerID = pi.Customer.ID
	}
	return out
}

/* ---------- minor-unit conversion ---------- */

// ToMinorUnits converts a major-unit amount to the gateway's smallest unit.
func ToMinorUnits(amount float64, currency string) int64 {
	if constants.ZeroDecimalCurrencies[strings.ToLower(currency)] {
		return int64(math.Round(amount))
	}
	return int64(math.Round(amount * 100))
}

// FromMinorUnits is the inverse of ToMinorUnits.
func FromMinorUnits(minor int64, currency string) float64 {
	if constants.ZeroDecimalCurrencies[strings.ToLower(currency)] {
		return float64(minor)
	}
	return float64(minor) / 100
}
