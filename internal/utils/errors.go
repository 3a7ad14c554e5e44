package utils

import (
	"errors"
	"net/http"
)

// Domain-level errors used by the service layer to provide
// fine-grained failure reasons.
var (
	ErrNotFound           = errors.New("not_found")
	ErrIntentNotFound     = errors.New("payment_intent_not_found")
	ErrPaymentIncomplete  = errors.New("payment_incomplete")
	ErrInvalidPayload     = errors.New("invalid_payload")
	ErrBedroomUnavailable = errors.New("bedroom_unavailable")
	// ErrPayloadCorrupt marks metadata that fails to decode after the
	// payment already succeeded. Unlike ErrInvalidPayload it is not the
	// caller's fault and maps to a 500.
	ErrPayloadCorrupt = errors.New("payload_corrupt")
	ErrDuplicateFavorite  = errors.New("duplicate_favorite")
	ErrSignatureInvalid   = errors.New("signature_invalid")

	// For concurrency conflicts
	ErrRowVersionConflict = errors.New("row_version_conflict")

	// For external service failures (Stripe, SendGrid, Twilio)
	ErrExternalServiceFailure = errors.New("external_service_failure")

	ErrNoRowsUpdated = errors.New("no_rows_updated")
)

// AppError for structured error handling from services to controllers.
type AppError struct {
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// HandleAppError centralizes responding to AppErrors.
func HandleAppError(w http.ResponseWriter, err error) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		RespondErrorWithCode(w, appErr.StatusCode, appErr.Code, appErr.Message, nil, appErr.Err)
	} else {
		RespondErrorWithCode(w, http.StatusInternalServerError, ErrCodeInternal, "An unexpected error occurred", nil, err)
	}
}
