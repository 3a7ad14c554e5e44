package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type CategoryRepository interface {
	Create(ctx context.Context, c *models.Category) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error)
	ListAll(ctx context.Context) ([]*models.Category, error)
	Update(ctx context.Context, c *models.Category) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type categoryRepo struct {
	db DB
}

func NewCategoryRepository(db DB) CategoryRepository {
	return &categoryRepo{db: db}
}

func (r *categoryRepo) Create(ctx context.Context, c *models.Category) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO categories (id, category_name, labels, created_at, updated_at)
        VALUES ($1,$2,$3, NOW(), NOW())
    `, c.ID, c.CategoryName, c.Labels)
	return err
}

func (r *categoryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Category, error) {
	row := r.db.QueryRow(ctx, baseSelectCategory()+" WHERE id=$1", id)
	return scanCategory(row)
}

func (r *categoryRepo) ListAll(ctx context.Context) ([]*models.Category, error) {
	rows, err := r.db.Query(ctx, baseSelectCategory()+" ORDER BY category_name")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *categoryRepo) Update(ctx context.Context, c *models.Category) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE categories SET category_name=$1, labels=$2, updated_at=NOW() WHERE id=$3
    `, c.CategoryName, c.Labels, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *categoryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectCategory() string {
	return `SELECT id, category_name, labels, created_at, updated_at FROM categories`
}

func scanCategory(row pgx.Row) (*models.Category, error) {
	var c models.Category
	err := row.Scan(&c.ID, &c.CategoryName, &c.Labels, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
