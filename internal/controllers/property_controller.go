package controllers

import (
	"net/http"
	"strconv"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type PropertyController struct {
	properties *services.PropertyService
}

func NewPropertyController(properties *services.PropertyService) *PropertyController {
	return &PropertyController{properties: properties}
}

// SearchPropertiesHandler -> GET /api/property
func (c *PropertyController) SearchPropertiesHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repositories.PropertyFilter{
		Title:        q.Get("title"),
		City:         q.Get("city"),
		Locality:     q.Get("locality"),
		Country:      q.Get("country"),
		Type:         q.Get("type"),
		University:   q.Get("university"),
		MoveInMonth:  q.Get("moveInMonth"),
		StayDuration: q.Get("stayDuration"),
		RoomType:     q.Get("roomType"),
		KitchenType:  q.Get("kitchenType"),
		BathroomType: q.Get("bathroomType"),
		Search:       q.Get("search"),
		Sort:         q.Get("sort"),
		VerifiedOnly: q.Get("verified") == "true",
	}
	if raw := q.Get("minPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid minPrice", nil, err)
			return
		}
		filter.MinPrice = v
	}
	if raw := q.Get("maxPrice"); raw != "" {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			utils.RespondErrorWithCode(w, http.StatusBadRequest, utils.ErrCodeInvalidPayload, "Invalid maxPrice", nil, err)
			return
		}
		filter.MaxPrice = v
	}

	list, err := c.properties.Search(r.Context(), filter)
	if err != nil {
		respondServiceError(w, err, "Failed to search properties")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetPropertyHandler -> GET /api/property/{id}
func (c *PropertyController) GetPropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	prop, err := c.properties.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// CreatePropertyHandler -> POST /api/property
func (c *PropertyController) CreatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	prop, err := c.properties.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create property")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, prop)
}

// UpdatePropertyHandler -> PUT /api/property/{id}
func (c *PropertyController) UpdatePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.PropertyRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	prop, err := c.properties.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, prop)
}

// DeletePropertyHandler -> DELETE /api/property/{id}
func (c *PropertyController) DeletePropertyHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.properties.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete property")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Property deleted"})
}
