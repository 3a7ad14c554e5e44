package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cloudstay/rental-service/internal/dtos"
	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/repositories"
	"github.com/cloudstay/rental-service/internal/utils"
)

type PlanService struct {
	plans     repositories.PlanRepository
	userPlans repositories.UserPlanRepository
}

func NewPlanService(plans repositories.PlanRepository, userPlans repositories.UserPlanRepository) *PlanService {
	return &PlanService{plans: plans, userPlans: userPlans}
}

func (s *PlanService) Create(ctx context.Context, req *dtos.PlanRequest) (*models.Plan, error) {
	p := &models.Plan{ID: uuid.New()}
	if err := applyPlanRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.plans.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlanService) Get(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, fmt.Errorf("%w: plan %s", utils.ErrNotFound, id)
	}
	return p, nil
}

func (s *PlanService) ListAll(ctx context.Context) ([]*models.Plan, error) {
	return s.plans.ListAll(ctx)
}

func (s *PlanService) Update(ctx context.Context, id uuid.UUID, req *dtos.PlanRequest) (*models.Plan, error) {
	p, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := applyPlanRequest(p, req); err != nil {
		return nil, err
	}
	if err := s.plans.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.plans.Delete(ctx, id)
}

// Purchase links a plan to a user at the amount paid.
func (s *PlanService) Purchase(ctx context.Context, userID uuid.UUID, req *dtos.PurchasePlanRequest) (*models.UserPlan, error) {
	planID, err := uuid.Parse(req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%w: bad planId", utils.ErrInvalidPayload)
	}
	if _, err := s.Get(ctx, planID); err != nil {
		return nil, err
	}

	up := &models.UserPlan{
		ID:     uuid.New(),
		UserID: userID,
		PlanID: planID,
		Amount: req.Amount,
	}
	if err := s.userPlans.Create(ctx, up); err != nil {
		return nil, err
	}
	return up, nil
}

func (s *PlanService) ListPurchases(ctx context.Context, userID uuid.UUID) ([]*models.UserPlan, error) {
	return s.userPlans.ListByUserID(ctx, userID)
}

func applyPlanRequest(p *models.Plan, req *dtos.PlanRequest) error {
	p.PlanName = req.PlanName
	p.Description = req.Description
	p.Rates = make([]models.PlanRate, 0, len(req.Rates))
	for _, r := range req.Rates {
		p.Rates = append(p.Rates, models.PlanRate{Country: r.Country, Amount: r.Amount})
	}
	p.CategoryIDs = make([]uuid.UUID, 0, len(req.CategoryIDs))
	for _, raw := range req.CategoryIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			return fmt.Errorf("%w: bad category id %q", utils.ErrInvalidPayload, raw)
		}
		p.CategoryIDs = append(p.CategoryIDs, id)
	}
	return nil
}
