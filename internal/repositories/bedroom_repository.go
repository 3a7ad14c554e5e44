package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
	"github.com/cloudstay/rental-service/internal/utils"
)

/* ───────────── public interface ───────────── */

type BedroomRepository interface {
	Create(ctx context.Context, b *models.Bedroom) error
	CreateMany(ctx context.Context, list []models.Bedroom) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Bedroom, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Bedroom, error)
	// ListBooked returns every bedroom currently marked booked, for the
	// inventory audit to cross-check against confirmed bookings.
	ListBooked(ctx context.Context) ([]*models.Bedroom, error)

	// MarkBooked flips available → booked with a conditional update.
	// Returns utils.ErrBedroomUnavailable when the bedroom is already booked
	// and pgx.ErrNoRows when it does not exist. Never read-modify-write.
	MarkBooked(ctx context.Context, propID, bedroomID uuid.UUID) error
	// MarkAvailable flips booked → available (cancellations, refunds,
	// inventory audit). A no-op when already available.
	MarkAvailable(ctx context.Context, propID, bedroomID uuid.UUID) error

	DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error
}

/* ───────────── implementation ───────────── */

type bedroomRepo struct {
	db DB
}

func NewBedroomRepository(db DB) BedroomRepository {
	return &bedroomRepo{db: db}
}

func (r *bedroomRepo) Create(ctx context.Context, b *models.Bedroom) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO bedrooms (
			id, property_id, name, rent, size_sq_ft, furnished,
			private_washroom, shared_washroom, shared_kitchen, images,
			available_from, lease, floor, note, status,
			created_at, updated_at, row_version
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15, NOW(), NOW(), 1)
	`, b.ID, b.PropertyID, b.Name, b.Rent, b.SizeSqFt, b.Furnished,
		b.PrivateWashroom, b.SharedWashroom, b.SharedKitchen, b.Images,
		b.AvailableFrom, b.Lease, b.Floor, b.Note, b.Status)
	return err
}

func (r *bedroomRepo) CreateMany(ctx context.Context, list []models.Bedroom) error {
	for i := range list {
		if err := r.Create(ctx, &list[i]); err != nil {
			return err
		}
	}
	return nil
}

func (r *bedroomRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Bedroom, error) {
	row := r.db.QueryRow(ctx, baseSelectBedroom()+" WHERE id=$1", id)
	return scanBedroom(row)
}

func (r *bedroomRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Bedroom, error) {
	rows, err := r.db.Query(ctx, baseSelectBedroom()+" WHERE property_id=$1 ORDER BY name", propID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBedrooms(rows)
}

func (r *bedroomRepo) ListBooked(ctx context.Context) ([]*models.Bedroom, error) {
	rows, err := r.db.Query(ctx, baseSelectBedroom()+" WHERE status=$1", models.BedroomStatusBooked)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBedrooms(rows)
}

func (r *bedroomRepo) MarkBooked(ctx context.Context, propID, bedroomID uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE bedrooms
		SET status=$1, updated_at=NOW(), row_version=row_version+1
		WHERE id=$2 AND property_id=$3 AND status=$4
	`, models.BedroomStatusBooked, bedroomID, propID, models.BedroomStatusAvailable)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 1 {
		return nil
	}

	// Zero rows: either the bedroom is gone or someone else holds it.
	existing, err := r.GetByID(ctx, bedroomID)
	if err != nil {
		return err
	}
	if existing == nil || existing.PropertyID != propID {
		return pgx.ErrNoRows
	}
	return utils.ErrBedroomUnavailable
}

func (r *bedroomRepo) MarkAvailable(ctx context.Context, propID, bedroomID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `
		UPDATE bedrooms
		SET status=$1, updated_at=NOW(), row_version=row_version+1
		WHERE id=$2 AND property_id=$3 AND status=$4
	`, models.BedroomStatusAvailable, bedroomID, propID, models.BedroomStatusBooked)
	return err
}

func (r *bedroomRepo) DeleteByPropertyID(ctx context.Context, propID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bedrooms WHERE property_id=$1`, propID)
	return err
}

/* ---------- internals ---------- */

func baseSelectBedroom() string {
	return `
		SELECT id, property_id, name, rent, size_sq_ft, furnished,
		       private_washroom, shared_washroom, shared_kitchen, images,
		       available_from, lease, floor, note, status,
		       created_at, updated_at, row_version
		FROM bedrooms`
}

func scanBedroom(row pgx.Row) (*models.Bedroom, error) {
	var b models.Bedroom
	if err := row.Scan(
		&b.ID, &b.PropertyID, &b.Name, &b.Rent, &b.SizeSqFt, &b.Furnished,
		&b.PrivateWashroom, &b.SharedWashroom, &b.SharedKitchen, &b.Images,
		&b.AvailableFrom, &b.Lease, &b.Floor, &b.Note, &b.Status,
		&b.CreatedAt, &b.UpdatedAt, &b.RowVersion,
	); err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}

func scanBedrooms(rows pgx.Rows) ([]*models.Bedroom, error) {
	var out []*models.Bedroom
	for rows.Next() {
		b, err := scanBedroom(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
