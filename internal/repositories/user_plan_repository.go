package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type UserPlanRepository interface {
	Create(ctx context.Context, up *models.UserPlan) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type userPlanRepo struct {
	db DB
}

func NewUserPlanRepository(db DB) UserPlanRepository {
	return &userPlanRepo{db: db}
}

func (r *userPlanRepo) Create(ctx context.Context, up *models.UserPlan) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO user_plans (id, user_id, plan_id, amount, created_at, updated_at)
        VALUES ($1,$2,$3,$4, NOW(), NOW())
    `, up.ID, up.UserID, up.PlanID, up.Amount)
	return err
}

func (r *userPlanRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.UserPlan, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, plan_id, amount, created_at, updated_at
        FROM user_plans WHERE user_id=$1 ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.UserPlan
	for rows.Next() {
		var up models.UserPlan
		if err := rows.Scan(&up.ID, &up.UserID, &up.PlanID, &up.Amount, &up.CreatedAt, &up.UpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, &up)
	}
	return out, rows.Err()
}

func (r *userPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM user_plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
