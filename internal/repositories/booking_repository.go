package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type BookingRepository interface {
	// Create inserts the booking. A duplicate payment_intent_id surfaces as
	// a unique violation (IsUniqueViolation) for the reconciler to resolve.
	Create(ctx context.Context, b *models.Booking) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error)
	ListAll(ctx context.Context) ([]*models.Booking, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Booking, error)
	// ListActiveWithBedrooms returns pending and confirmed bookings that
	// hold a bedroom, for the inventory audit.
	ListActiveWithBedrooms(ctx context.Context) ([]*models.Booking, error)
	Count(ctx context.Context) (int64, error)

	UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatusType) (*models.Booking, error)
	UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatusType) error
	UpdateIfVersion(ctx context.Context, b *models.Booking, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Booking) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type bookingRepo struct {
	*BaseVersionedRepo[*models.Booking]
	db DB
}

func NewBookingRepository(db DB) BookingRepository {
	r := &bookingRepo{db: db}
	selectStmt := baseSelectBooking() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanBooking)
	return r
}

func (r *bookingRepo) Create(ctx context.Context, b *models.Booking) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO bookings (
            id, user_id, name, email, phone, property_id, bedroom_id,
            bedroom_name, lease_start, lease_end, move_in_date, move_out_date,
            rental_days, move_in_month, lease_duration, price, currency,
            security_deposit, security_deposit_paid, last_month_payment,
            last_month_payment_paid, status, payment_intent_id, payment_status,
            payment_method, payment_amount, payment_date, stripe_customer_id,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
                  $18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28, NOW(), NOW(), 1)
    `,
		b.ID, b.UserID, b.Name, b.Email, b.Phone, b.PropertyID, b.BedroomID,
		b.BedroomName, b.LeaseStart, b.LeaseEnd, b.MoveInDate, b.MoveOutDate,
		b.RentalDays, b.MoveInMonth, b.LeaseDuration, b.Price, b.Currency,
		b.SecurityDeposit, b.SecurityDepositPaid, b.LastMonthPayment,
		b.LastMonthPaymentPaid, b.Status, b.PaymentIntentID, b.PaymentStatus,
		b.PaymentMethod, b.PaymentAmount, b.PaymentDate, b.StripeCustomerID,
	)
	return err
}

func (r *bookingRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *bookingRepo) GetByPaymentIntentID(ctx context.Context, intentID string) (*models.Booking, error) {
	row := r.db.QueryRow(ctx, baseSelectBooking()+" WHERE payment_intent_id=$1", intentID)
	return scanBooking(row)
}

func (r *bookingRepo) ListAll(ctx context.Context) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" ORDER BY created_at DESC")
}

func (r *bookingRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" WHERE user_id=$1 ORDER BY created_at DESC", userID)
}

func (r *bookingRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" WHERE property_id=$1 ORDER BY created_at DESC", propID)
}

func (r *bookingRepo) ListActiveWithBedrooms(ctx context.Context) ([]*models.Booking, error) {
	return r.list(ctx, baseSelectBooking()+" WHERE status IN ($1,$2) AND bedroom_id IS NOT NULL ORDER BY created_at DESC",
		models.BookingStatusPending, models.BookingStatusConfirmed)
}

func (r *bookingRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM bookings`).Scan(&n)
	return n, err
}

func (r *bookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.BookingStatusType) (*models.Booking, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE bookings SET status=$1, updated_at=NOW(), row_version=row_version+1
        WHERE id=$2
    `, status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *bookingRepo) UpdatePaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatusType) error {
	tag, err := r.db.Exec(ctx, `
        UPDATE bookings SET payment_status=$1, updated_at=NOW(), row_version=row_version+1
        WHERE id=$2
    `, status, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookingRepo) UpdateIfVersion(ctx context.Context, b *models.Booking, expected int64) (pgconn.CommandTag, error) {
	return r.db.Exec(ctx, `
        UPDATE bookings SET
            status=$1, payment_status=$2, payment_method=$3, payment_amount=$4,
            payment_date=$5, lease_start=$6, lease_end=$7, move_in_date=$8,
            move_out_date=$9, updated_at=NOW(), row_version=row_version+1
        WHERE id=$10 AND row_version=$11
    `, b.Status, b.PaymentStatus, b.PaymentMethod, b.PaymentAmount,
		b.PaymentDate, b.LeaseStart, b.LeaseEnd, b.MoveInDate, b.MoveOutDate,
		b.ID, expected)
}

func (r *bookingRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Booking) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *bookingRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM bookings WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

/* ---------- internals ---------- */

func (r *bookingRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Booking, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

func baseSelectBooking() string {
	return `
        SELECT
            id, user_id, name, email, phone, property_id, bedroom_id,
            bedroom_name, lease_start, lease_end, move_in_date, move_out_date,
            rental_days, move_in_month, lease_duration, price, currency,
            security_deposit, security_deposit_paid, last_month_payment,
            last_month_payment_paid, status, payment_intent_id, payment_status,
            payment_method, payment_amount, payment_date, stripe_customer_id,
            created_at, updated_at, row_version
        FROM bookings
    `
}

func scanBooking(row pgx.Row) (*models.Booking, error) {
	var b models.Booking
	err := row.Scan(
		&b.ID, &b.UserID, &b.Name, &b.Email, &b.Phone, &b.PropertyID,
		&b.BedroomID, &b.BedroomName, &b.LeaseStart, &b.LeaseEnd,
		&b.MoveInDate, &b.MoveOutDate, &b.RentalDays, &b.MoveInMonth,
		&b.LeaseDuration, &b.Price, &b.Currency, &b.SecurityDeposit,
		&b.SecurityDepositPaid, &b.LastMonthPayment, &b.LastMonthPaymentPaid,
		&b.Status, &b.PaymentIntentID, &b.PaymentStatus, &b.PaymentMethod,
		&b.PaymentAmount, &b.PaymentDate, &b.StripeCustomerID,
		&b.CreatedAt, &b.UpdatedAt, &b.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &b, nil
}
