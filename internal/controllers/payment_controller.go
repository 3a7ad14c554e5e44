package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type PaymentController struct {
	reconciler *services.BookingReconciler
	bookings   *services.BookingService
}

func NewPaymentController(reconciler *services.BookingReconciler, bookings *services.BookingService) *PaymentController {
	return &PaymentController{reconciler: reconciler, bookings: bookings}
}

// CreatePaymentIntentHandler -> POST /api/payment/create-payment-intent
func (c *PaymentController) CreatePaymentIntentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.CreatePaymentIntentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	resp, err := c.reconciler.CreateIntent(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create payment intent")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, resp)
}

// ConfirmPaymentHandler -> POST /api/payment/confirm-payment
//
// Safe to call any number of times for the same intent; only the first
// successful call creates the booking.
func (c *PaymentController) ConfirmPaymentHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.ConfirmPaymentRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	booking, created, err := c.reconciler.Reconcile(r.Context(), req.PaymentIntentID)
	if err != nil {
		respondServiceError(w, err, "Failed to confirm payment")
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	utils.RespondWithJSON(w, status, dtos.ConfirmPaymentResponse{
		BookingID:        booking.ID.String(),
		Status:           string(booking.Status),
		PaymentStatus:    string(booking.PaymentStatus),
		AlreadyProcessed: !created,
	})
}

// PaymentStatusHandler -> GET /api/payment/status/{bookingId}
func (c *PaymentController) PaymentStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "bookingId")
	if !ok {
		return
	}
	resp, err := c.bookings.PaymentStatus(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch payment status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
