package repositories

import (
	"context"
	"encoding/json"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type PlanRepository interface {
	Create(ctx context.Context, p *models.Plan) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error)
	ListAll(ctx context.Context) ([]*models.Plan, error)
	Update(ctx context.Context, p *models.Plan) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type planRepo struct {
	db DB
}

func NewPlanRepository(db DB) PlanRepository {
	return &planRepo{db: db}
}

func (r *planRepo) Create(ctx context.Context, p *models.Plan) error {
	ratesJSON, err := json.Marshal(p.Rates)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO plans (id, plan_name, description, rates, category_ids, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5, NOW(), NOW())
    `, p.ID, p.PlanName, p.Description, ratesJSON, p.CategoryIDs)
	return err
}

func (r *planRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Plan, error) {
	row := r.db.QueryRow(ctx, baseSelectPlan()+" WHERE id=$1", id)
	return scanPlan(row)
}

func (r *planRepo) ListAll(ctx context.Context) ([]*models.Plan, error) {
	rows, err := r.db.Query(ctx, baseSelectPlan()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *planRepo) Update(ctx context.Context, p *models.Plan) error {
	ratesJSON, err := json.Marshal(p.Rates)
	if err != nil {
		return err
	}
	tag, err := r.db.Exec(ctx, `
        UPDATE plans SET plan_name=$1, description=$2, rates=$3, category_ids=$4, updated_at=NOW()
        WHERE id=$5
    `, p.PlanName, p.Description, ratesJSON, p.CategoryIDs, p.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *planRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM plans WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectPlan() string {
	return `SELECT id, plan_name, description, rates, category_ids, created_at, updated_at FROM plans`
}

func scanPlan(row pgx.Row) (*models.Plan, error) {
	var (
		p         models.Plan
		ratesJSON []byte
	)
	err := row.Scan(&p.ID, &p.PlanName, &p.Description, &ratesJSON, &p.CategoryIDs, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(ratesJSON, &p.Rates); err != nil {
		return nil, err
	}
	return &p, nil
}
