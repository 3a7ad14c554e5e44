package controllers

import (
	"io"
	"net/http"

	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type StripeWebhookController struct {
	gateway    services.PaymentGateway
	reconciler *services.BookingReconciler
}

func NewStripeWebhookController(gateway services.PaymentGateway, reconciler *services.BookingReconciler) *StripeWebhookController {
	return &StripeWebhookController{gateway: gateway, reconciler: reconciler}
}

// WebhookHandler -> POST /api/payment/webhook
//
// Returns 200 for every verified event, even when handling fails: Stripe
// retries non-2xx responses and reconciliation is idempotent anyway.
func (c *StripeWebhookController) WebhookHandler(w http.ResponseWriter, r *http.Request) {
	sigHeader := r.Header.Get("Stripe-Signature")
	if sigHeader == "" {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Missing Stripe-Signature header", nil)
		return
	}

	payload, err := io.ReadAll(r.Body)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Failed to read webhook body", nil, err)
		return
	}

	event, err := c.gateway.VerifyWebhook(payload, sigHeader)
	if err != nil {
		utils.Logger.WithError(err).Error("Stripe webhook signature verification failed")
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeSignatureInvalid, "Invalid webhook signature", nil, err)
		return
	}

	c.reconciler.HandleWebhookEvent(r.Context(), event)
	w.WriteHeader(http.StatusOK)
}
