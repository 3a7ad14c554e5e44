package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type ContentRepository interface {
	Create(ctx context.Context, c *models.Content) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error)
	ListAll(ctx context.Context) ([]*models.Content, error)
	Update(ctx context.Context, c *models.Content) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type contentRepo struct {
	db DB
}

func NewContentRepository(db DB) ContentRepository {
	return &contentRepo{db: db}
}

func (r *contentRepo) Create(ctx context.Context, c *models.Content) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO contents (id, title, banner_image, description, phone, email, created_at, updated_at)
        VALUES ($1,$2,$3,$4,$5,$6, NOW(), NOW())
    `, c.ID, c.Title, c.BannerImage, c.Description, c.Phone, c.Email)
	return err
}

func (r *contentRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	row := r.db.QueryRow(ctx, baseSelectContent()+" WHERE id=$1", id)
	return scanContent(row)
}

func (r *contentRepo) ListAll(ctx context.Context) ([]*models.Content, error) {
	rows, err := r.db.Query(ctx, baseSelectContent()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Content
	for rows.Next() {
		c, err := scanContent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *contentRepo) Update(ctx context.Context, c *models.Content) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE contents SET title=$1, banner_image=$2, description=$3, phone=$4, email=$5, updated_at=NOW()
        WHERE id=$6
    `, c.Title, c.BannerImage, c.Description, c.Phone, c.Email, c.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *contentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contents WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectContent() string {
	return `SELECT id, title, banner_image, description, phone, email, created_at, updated_at FROM contents`
}

func scanContent(row pgx.Row) (*models.Content, error) {
	var c models.Content
	err := row.Scan(&c.ID, &c.Title, &c.BannerImage, &c.Description, &c.Phone,
		&c.Email, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}
