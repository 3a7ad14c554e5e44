package services

import (
	"context"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/repositories"
)

type AnalyticsService struct {
	users      repositories.UserRepository
	properties repositories.PropertyRepository
	bookings   repositories.BookingRepository
	revenues   repositories.RevenueRepository
}

func NewAnalyticsService(
	users repositories.UserRepository,
	properties repositories.PropertyRepository,
	bookings repositories.BookingRepository,
	revenues repositories.RevenueRepository,
) *AnalyticsService {
	return &AnalyticsService{users: users, properties: properties, bookings: bookings, revenues: revenues}
}

func (s *AnalyticsService) Dashboard(ctx context.Context) (*dtos.DashboardResponse, error) {
	users, err := s.users.Count(ctx)
	if err != nil {
		return nil, err
	}
	properties, err := s.properties.Count(ctx)
	if err != nil {
		return nil, err
	}
	bookings, err := s.bookings.Count(ctx)
	if err != nil {
		return nil, err
	}
	total, err := s.revenues.Total(ctx)
	if err != nil {
		return nil, err
	}
	monthly, err := s.revenues.MonthlyTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &dtos.DashboardResponse{
		TotalUsers:      users,
		TotalProperties: properties,
		TotalBookings:   bookings,
		TotalRevenue:    total,
		MonthlyRevenue:  monthly,
	}, nil
}
