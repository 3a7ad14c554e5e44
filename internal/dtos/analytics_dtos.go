package dtos

import "github.com/cloudstay/rental-service/internal/models"

// DashboardResponse backs the admin analytics dashboard.
type DashboardResponse struct {
	TotalUsers      int64                    `json:"totalUsers"`
	TotalProperties int64                    `json:"totalProperties"`
	TotalBookings   int64                    `json:"totalBookings"`
	TotalRevenue    float64                  `json:"totalRevenue"`
	MonthlyRevenue  []*models.MonthlyRevenue `json:"monthlyRevenue"`
}

type HealthResponse struct {
	Status string `json:"status"`
}
