package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type ReviewRepository interface {
	Create(ctx context.Context, rv *models.Review) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Review, error)
	AverageRating(ctx context.Context, propID uuid.UUID) (float64, int64, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type reviewRepo struct {
	db DB
}

func NewReviewRepository(db DB) ReviewRepository {
	return &reviewRepo{db: db}
}

func (r *reviewRepo) Create(ctx context.Context, rv *models.Review) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO reviews (id, user_id, property_id, rating, comment, created_at)
        VALUES ($1,$2,$3,$4,$5, NOW())
    `, rv.ID, rv.UserID, rv.PropertyID, rv.Rating, rv.Comment)
	return err
}

func (r *reviewRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Review, error) {
	row := r.db.QueryRow(ctx, baseSelectReview()+" WHERE id=$1", id)
	return scanReview(row)
}

func (r *reviewRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Review, error) {
	rows, err := r.db.Query(ctx, baseSelectReview()+" WHERE property_id=$1 ORDER BY created_at DESC", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rv)
	}
	return out, rows.Err()
}

func (r *reviewRepo) AverageRating(ctx context.Context, propID uuid.UUID) (float64, int64, error) {
	var (
		avg float64
		n   int64
	)
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE property_id=$1
    `, propID).Scan(&avg, &n)
	return avg, n, err
}

func (r *reviewRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM reviews WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectReview() string {
	return `SELECT id, user_id, property_id, rating, comment, created_at FROM reviews`
}

func scanReview(row pgx.Row) (*models.Review, error) {
	var rv models.Review
	err := row.Scan(&rv.ID, &rv.UserID, &rv.PropertyID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &rv, nil
}
