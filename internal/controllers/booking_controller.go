package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type BookingController struct {
	bookings *services.BookingService
}

func NewBookingController(bookings *services.BookingService) *BookingController {
	return &BookingController{bookings: bookings}
}

// CreateBookingHandler -> POST /api/booking/create
// Places an unpaid pending hold. Paid bookings are created by the payment
// confirmation flow instead.
func (c *BookingController) CreateBookingHandler(w http.ResponseWriter, r *http.Request) {
	var form dtos.BookingForm
	if !decodeAndValidate(w, r, &form) {
		return
	}
	b, err := c.bookings.Create(r.Context(), &form)
	if err != nil {
		respondServiceError(w, err, "Failed to create booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, b)
}

// ListBookingsHandler -> GET /api/booking
func (c *BookingController) ListBookingsHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.bookings.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetBookingHandler -> GET /api/booking/{id}
func (c *BookingController) GetBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	b, err := c.bookings.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// ListUserBookingsHandler -> GET /api/booking/user/{userId}
func (c *BookingController) ListUserBookingsHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathUUID(w, r, "userId")
	if !ok {
		return
	}
	list, err := c.bookings.ListByUser(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// ListPropertyBookingsHandler -> GET /api/booking/property/{propertyId}
func (c *BookingController) ListPropertyBookingsHandler(w http.ResponseWriter, r *http.Request) {
	propID, ok := pathUUID(w, r, "propertyId")
	if !ok {
		return
	}
	list, err := c.bookings.ListByProperty(r.Context(), propID)
	if err != nil {
		respondServiceError(w, err, "Failed to list bookings")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// UpdateBookingStatusHandler -> PATCH /api/booking/{id}/status
func (c *BookingController) UpdateBookingStatusHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.UpdateBookingStatusRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	b, err := c.bookings.UpdateStatus(r.Context(), id, models.BookingStatusType(req.Status))
	if err != nil {
		respondServiceError(w, err, "Failed to update booking status")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, b)
}

// DeleteBookingHandler -> DELETE /api/booking/{id}
func (c *BookingController) DeleteBookingHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.bookings.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete booking")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Booking deleted"})
}
