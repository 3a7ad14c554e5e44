package controllers

import (
	"net/http"

	"github.com/cloudstay/rental-service/internal/services"
	"github.com/cloudstay/rental-service/internal/utils"
)

type AnalyticsController struct {
	analytics *services.AnalyticsService
}

func NewAnalyticsController(analytics *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{analytics: analytics}
}

// DashboardHandler -> GET /api/analytics/dashboard
func (c *AnalyticsController) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	resp, err := c.analytics.Dashboard(r.Context())
	if err != nil {
		respondServiceError(w, err, "Failed to build dashboard")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, resp)
}
