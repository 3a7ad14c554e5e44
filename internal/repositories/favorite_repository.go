package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/utils"
)

type FavoriteRepository interface {
	// Create adds the property to the user's wishlist. The unique index on
	// (user_id, property_id) makes a repeat add utils.ErrDuplicateFavorite.
	Create(ctx context.Context, f *models.Favorite) error
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error)
	Delete(ctx context.Context, userID, propID uuid.UUID) error
}

type favoriteRepo struct {
	db DB
}

func NewFavoriteRepository(db DB) FavoriteRepository {
	return &favoriteRepo{db: db}
}

func (r *favoriteRepo) Create(ctx context.Context, f *models.Favorite) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO favorites (id, user_id, property_id, created_at)
        VALUES ($1,$2,$3, NOW())
    `, f.ID, f.UserID, f.PropertyID)
	if err != nil {
		if IsUniqueViolation(err) {
			return utils.ErrDuplicateFavorite
		}
		return err
	}
	return nil
}

func (r *favoriteRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Favorite, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, user_id, property_id, created_at
        FROM favorites WHERE user_id=$1 ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.PropertyID, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}

func (r *favoriteRepo) Delete(ctx context.Context, userID, propID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM favorites WHERE user_id=$1 AND property_id=$2`, userID, propID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
