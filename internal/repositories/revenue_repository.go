package repositories

import (
	"context"

	"github.com/cloudstay/rental-service/internal/models"
)

type RevenueRepository interface {
	Create(ctx context.Context, rev *models.Revenue) error
	ListAll(ctx context.Context) ([]*models.Revenue, error)
	Total(ctx context.Context) (float64, error)
	// MonthlyTotals aggregates completed revenue by calendar month,
	// newest month first.
	MonthlyTotals(ctx context.Context) ([]*models.MonthlyRevenue, error)
}

type revenueRepo struct {
	db DB
}

func NewRevenueRepository(db DB) RevenueRepository {
	return &revenueRepo{db: db}
}

func (r *revenueRepo) Create(ctx context.Context, rev *models.Revenue) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO revenues (id, booking_id, property_id, amount, currency, status, created_at)
        VALUES ($1,$2,$3,$4,$5,$6, NOW())
    `, rev.ID, rev.BookingID, rev.PropertyID, rev.Amount, rev.Currency, rev.Status)
	return err
}

func (r *revenueRepo) ListAll(ctx context.Context) ([]*models.Revenue, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, booking_id, property_id, amount, currency, status, created_at
        FROM revenues ORDER BY created_at DESC
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Revenue
	for rows.Next() {
		var rev models.Revenue
		if err := rows.Scan(&rev.ID, &rev.BookingID, &rev.PropertyID,
			&rev.Amount, &rev.Currency, &rev.Status, &rev.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rev)
	}
	return out, rows.Err()
}

func (r *revenueRepo) Total(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.QueryRow(ctx, `
        SELECT COALESCE(SUM(amount), 0) FROM revenues WHERE status=$1
    `, models.RevenueStatusCompleted).Scan(&total)
	return total, err
}

func (r *revenueRepo) MonthlyTotals(ctx context.Context) ([]*models.MonthlyRevenue, error) {
	rows, err := r.db.Query(ctx, `
        SELECT EXTRACT(YEAR FROM created_at)::int,
               EXTRACT(MONTH FROM created_at)::int,
               COALESCE(SUM(amount), 0)
        FROM revenues
        WHERE status=$1
        GROUP BY 1, 2
        ORDER BY 1 DESC, 2 DESC
    `, models.RevenueStatusCompleted)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.MonthlyRevenue
	for rows.Next() {
		var m models.MonthlyRevenue
		if err := rows.Scan(&m.Year, &m.Month, &m.Total); err != nil {
			return nil, err
		}
		out = append(out, &m)
	}
	return out, rows.Err()
}
