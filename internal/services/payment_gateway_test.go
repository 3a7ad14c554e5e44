package services

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v82"

	"github.com/cloudstay/rental-service/internal/utils"
)

const testWebhookSecret = "whsec_test_secret"

// signStripePayload builds a valid Stripe-Signature header for payload.
func signStripePayload(payload []byte, secret string, ts time.Time) string {
	mac := hmac.New(sha256.New, []byte(secret))
	_, _ = mac.Write([]byte(fmt.Sprintf("%d.", ts.Unix())))
	_, _ = mac.Write(payload)
	return fmt.Sprintf("t=%d,v1=%s", ts.Unix(), hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookAcceptsSignedEvent(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}

	// ConstructEvent refuses events from a different API version, so the
	// fixture pins the one the SDK ships with.
	payload := []byte(fmt.Sprintf(`{
		"id": "evt_test_1",
		"object": "event",
		"api_version": %q,
		"type": "payment_intent.succeeded",
		"data": {
			"object": {
				"id": "pi_test_1",
				"object": "payment_intent",
				"status": "succeeded",
				"amount": 75000,
				"currency": "gbp",
				"metadata": {"bookingDetails": "{}"}
			}
		}
	}`, stripe.APIVersion))

	event, err := g.VerifyWebhook(payload, signStripePayload(payload, testWebhookSecret, time.Now()))
	require.NoError(t, err)
	assert.Equal(t, "evt_test_1", event.ID)
	assert.Equal(t, EventPaymentIntentSucceeded, event.Type)
	require.NotNil(t, event.Intent)
	assert.Equal(t, "pi_test_1", event.Intent.ID)
	assert.Equal(t, IntentStatusSucceeded, event.Intent.Status)
	assert.Equal(t, int64(75000), event.Intent.Amount)
	assert.Equal(t, "{}", event.Intent.Metadata["bookingDetails"])
}

func TestVerifyWebhookRejectsBadSignature(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}
	payload := []byte(`{"id":"evt_test_2","type":"payment_intent.succeeded"}`)

	_, err := g.VerifyWebhook(payload, signStripePayload(payload, "whsec_wrong_secret", time.Now()))
	assert.ErrorIs(t, err, utils.ErrSignatureInvalid)

	_, err = g.VerifyWebhook(payload, "t=1,v1=deadbeef")
	assert.ErrorIs(t, err, utils.ErrSignatureInvalid)
}

func TestVerifyWebhookRejectsStaleTimestamp(t *testing.T) {
	g := &stripeGateway{webhookSecret: testWebhookSecret}
	payload := []byte(`{"id":"evt_test_3","type":"payment_intent.succeeded"}`)

	stale := time.Now().Add(-time.Hour)
	_, err := g.VerifyWebhook(payload, signStripePayload(payload, testWebhookSecret, stale))
	assert.ErrorIs(t, err, utils.ErrSignatureInvalid)
}

func TestWrapErrClassification(t *testing.T) {
	g := &stripeGateway{}

	err := g.wrapErr(context.DeadlineExceeded)
	assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)

	err = g.wrapErr(&stripe.Error{HTTPStatusCode: http.StatusNotFound})
	assert.ErrorIs(t, err, utils.ErrIntentNotFound)

	err = g.wrapErr(&stripe.Error{HTTPStatusCode: http.StatusServiceUnavailable})
	assert.ErrorIs(t, err, utils.ErrExternalServiceFailure)

	// Card declines and similar 4xx are payment outcomes, not transport
	// failures, and pass through untouched.
	declined := &stripe.Error{HTTPStatusCode: http.StatusPaymentRequired, Code: stripe.ErrorCodeCardDeclined}
	assert.Equal(t, error(declined), g.wrapErr(declined))
}
