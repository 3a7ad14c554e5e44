package controllers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/utils"
)

var validate = validator.New()

// decodeAndValidate unmarshals the request body into dst and runs the
// struct's validation tags. Responds on failure and reports whether the
// caller should continue.
func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid JSON body", nil, err)
		return false
	}
	if err := validate.Struct(dst); err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeValidation, "Validation failed", err.Error())
		return false
	}
	return true
}

// pathUUID parses the named mux var as a UUID, responding on failure.
func pathUUID(w http.ResponseWriter, r *http.Request, name string) (uuid.UUID, bool) {
	raw := mux.Vars(r)[name]
	id, err := uuid.Parse(raw)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid "+name, nil, err)
		return uuid.Nil, false
	}
	return id, true
}

// respondServiceError maps service-layer sentinels onto the wire taxonomy.
func respondServiceError(w http.ResponseWriter, err error, publicMsg string) {
	switch {
	case errors.Is(err, utils.ErrNotFound), errors.Is(err, utils.ErrIntentNotFound), errors.Is(err, pgx.ErrNoRows):
		utils.RespondErrorWithCode(w, http.StatusNotFound, utils.ErrCodeNotFound, publicMsg, nil, err)
	case errors.Is(err, utils.ErrInvalidPayload):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, publicMsg, nil, err)
	case errors.Is(err, utils.ErrPayloadCorrupt):
		// Money already moved; the client cannot fix this by changing the
		// request.
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, "Payment could not be reconciled", nil, err)
	case errors.Is(err, utils.ErrPaymentIncomplete):
		utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodePaymentIncomplete, "Payment has not succeeded", nil, err)
	case errors.Is(err, utils.ErrBedroomUnavailable):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Bedroom is no longer available", nil, err)
	case errors.Is(err, utils.ErrDuplicateFavorite):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeConflict, "Property already in wishlist", nil, err)
	case errors.Is(err, utils.ErrRowVersionConflict):
		utils.RespondErrorWithCode(w, http.StatusConflict, utils.ErrCodeRowVersionConflict, "Record was modified concurrently", nil, err)
	case errors.Is(err, utils.ErrExternalServiceFailure):
		utils.RespondErrorWithCode(w, http.StatusBadGateway, utils.ErrCodeExternalServiceFailure, "Upstream provider unavailable", nil, err)
	default:
		utils.RespondErrorWithCode(w, http.StatusInternalServerError, utils.ErrCodeInternal, publicMsg, nil, err)
	}
}
