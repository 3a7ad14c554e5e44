package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/middleware"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type EnquiryController struct {
	enquiries *services.EnquiryService
}

func NewEnquiryController(enquiries *services.EnquiryService) *EnquiryController {
	return &EnquiryController{enquiries: enquiries}
}

// CreateEnquiryHandler -> POST /api/enquiry
// Works for both signed-in and anonymous visitors.
func (c *EnquiryController) CreateEnquiryHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.EnquiryRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	var userID *uuid.UUID
	if sub, ok := middleware.UserIDFromContext(r.Context()); ok {
		if id, err := uuid.Parse(sub); err == nil {
			userID = &id
		}
	}

	e, err := c.enquiries.Create(r.Context(), &req, userID)
	if err != nil {
		respondServiceError(w, err, "Failed to create enquiry")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, e)
}

// ListEnquiriesHandler -> GET /api/enquiry
func (c *EnquiryController) ListEnquiriesHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.enquiries.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list enquiries")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetEnquiryHandler -> GET /api/enquiry/{id}
func (c *EnquiryController) GetEnquiryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	e, err := c.enquiries.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch enquiry")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, e)
}

// ListUserEnquiriesHandler -> GET /api/enquiry/user/{userId}
func (c *EnquiryController) ListUserEnquiriesHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	list, err := c.enquiries.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list enquiries")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// UpdateEnquiryStatusHandler -> PATCH /api/enquiry/{id}/status
func (c *EnquiryController) UpdateEnquiryStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateEnquiryStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	e, err := c.enquiries.UpdateStatus(r.Context(), id, models.EnquiryStatusType(req.Status))
	if err != nil {
		respondServiceError(w, err, "Failed to update enquiry status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, e)
}

// DeleteEnquiryHandler -> DELETE /api/enquiry/{id}
func (c *EnquiryController) DeleteEnquiryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.enquiries.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete enquiry")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Enquiry deleted"})
}
