package controllers

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/middleware"
	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type PlanController struct {
	plans *services.PlanService
}

func NewPlanController(plans *services.PlanService) *PlanController {
	return &PlanController{plans: plans}
}

// ListPlansHandler -> GET /api/plans
func (c *PlanController) ListPlansHandler(w http.ResponseWriter, r *http.Request) {
	list, err := c.plans.ListAll(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to list plans")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// GetPlanHandler -> GET /api/plans/{id}
func (c *PlanController) GetPlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	p, err := c.plans.Get(r.Context(), id)
	if err != nil {
		respondServiceError(w, err, "Failed to fetch plan")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// CreatePlanHandler -> POST /api/plans
func (c *PlanController) CreatePlanHandler(w http.ResponseWriter, r *http.Request) {
	var req dtos.PlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.plans.Create(r.Context(), &req)
	if err != nil {
		respondServiceError(w, err, "Failed to create plan")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, p)
}

// UpdatePlanHandler -> PUT /api/plans/{id}
func (c *PlanController) UpdatePlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	var req dtos.PlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	p, err := c.plans.Update(r.Context(), id, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to update plan")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, p)
}

// DeletePlanHandler -> DELETE /api/plans/{id}
func (c *PlanController) DeletePlanHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathUUID(w, r, "id")
	if !ok {
		return
	}
	if err := c.plans.Delete(r.Context(), id); err != nil {
		respondServiceError(w, err, "Failed to delete plan")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dtos.MessageResponse{Message: "Plan deleted"})
}

// PurchasePlanHandler -> POST /api/plans/purchase
func (c *PlanController) PurchasePlanHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	var req dtos.PurchasePlanRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}
	up, err := c.plans.Purchase(r.Context(), userID, &req)
	if err != nil {
		respondServiceError(w, err, "Failed to purchase plan")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, up)
}

// ListMyPlansHandler -> GET /api/plans/my
func (c *PlanController) ListMyPlansHandler(w http.ResponseWriter, r *http.Request) {
	userID, ok := authedUserID(w, r)
	if !ok {
		return
	}
	list, err := c.plans.ListPurchases(r.Context(), userID)
	if err != nil {
		respondServiceError(w, err, "Failed to list purchased plans")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, list)
}

// authedUserID pulls the authenticated user's UUID out of the request
// context, responding 401 when it is absent or malformed.
func authedUserID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	sub, ok := middleware.UserIDFromContext(r.Context())
	if !ok {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "No userID in context", nil)
		return uuid.Nil, false
	}
	id, err := uuid.Parse(sub)
	if err != nil {
		utils.RespondErrorWithCode(w, http.StatusUnauthorized, utils.ErrCodeUnauthorized, "Invalid userID in token", nil, err)
		return uuid.Nil, false
	}
	return id, true
}
