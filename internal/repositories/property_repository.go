package repositories

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgconn"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

// PropertyFilter mirrors the search query params of GET /api/property.
// Zero values mean "not filtered".
type PropertyFilter struct {
	Title        string
	City         string
	Locality     string
	Country      string
	Type         string
	University   string
	MoveInMonth  string
	StayDuration string
	RoomType     string
	KitchenType  string
	BathroomType string
	MinPrice     float64
	MaxPrice     float64
	Search       string
	VerifiedOnly bool
	Sort         string // price_asc | price_desc | newest (default)
}

/* ------------------------------------------------------------------
   Public interface
------------------------------------------------------------------ */

type PropertyRepository interface {
	Create(ctx context.Context, p *models.Property) error

	GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error)
	Search(ctx context.Context, f PropertyFilter) ([]*models.Property, error)
	Count(ctx context.Context) (int64, error)

	Update(ctx context.Context, p *models.Property) error
	UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error)
	UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error
	Delete(ctx context.Context, id uuid.UUID) error
}

/* ------------------------------------------------------------------
   Implementation
------------------------------------------------------------------ */

type propertyRepo struct {
	*BaseVersionedRepo[*models.Property]
	db DB
}

func NewPropertyRepository(db DB) PropertyRepository {
	r := &propertyRepo{db: db}
	selectStmt := baseSelectProperty() + " WHERE id=$1"
	r.BaseVersionedRepo = NewBaseRepo(db, selectStmt, scanProperty)
	return r
}

func (r *propertyRepo) Create(ctx context.Context, p *models.Property) error {
	overviewJSON, err := json.Marshal(p.Overview)
	if err != nil {
		return err
	}
	optionsJSON, err := json.Marshal(p.BookingOptions)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx, `
        INSERT INTO properties (
            id, title, description, price, security_deposit, currency, country,
            latitude, longitude, type, amenities, utilities, overview,
            rent_details, terms_of_stay, cancellation_policy, location, city,
            locality, images, verified, on_site_verification,
            minimum_stay_duration, available_from, nearby_universities,
            booking_options, instant_booking, book_by_enquiry,
            created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
                  $18,$19,$20,$21,$22,$23,$24,$25,$26,$27,$28, NOW(), NOW(), 1)
    `,
		p.ID, p.Title, p.Description, p.Price, p.SecurityDeposit, p.Currency,
		p.Country, p.Latitude, p.Longitude, p.Type, p.Amenities, p.Utilities,
		overviewJSON, p.RentDetails, p.TermsOfStay, p.CancellationPolicy,
		p.Location, p.City, p.Locality, p.Images, p.Verified,
		p.OnSiteVerification, p.MinimumStayDuration, p.AvailableFrom,
		p.NearbyUniversities, optionsJSON, p.InstantBooking, p.BookByEnquiry,
	)
	return err
}

func (r *propertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	return r.BaseVersionedRepo.GetByID(ctx, id.String())
}

func (r *propertyRepo) Search(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	var (
		conds []string
		args  []interface{}
	)
	add := func(cond string, arg interface{}) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if f.Title != "" {
		add("title ILIKE '%%'||$%d||'%%'", f.Title)
	}
	if f.City != "" {
		add("city ILIKE '%%'||$%d||'%%'", f.City)
	}
	if f.Locality != "" {
		add("locality ILIKE '%%'||$%d||'%%'", f.Locality)
	}
	if f.Country != "" {
		add("country=$%d", f.Country)
	}
	if f.Type != "" {
		add("type=$%d", f.Type)
	}
	if f.University != "" {
		add("EXISTS (SELECT 1 FROM unnest(nearby_universities) u WHERE u ILIKE '%%'||$%d||'%%')", f.University)
	}
	if f.MoveInMonth != "" {
		add("available_from=$%d", f.MoveInMonth)
	}
	if f.StayDuration != "" {
		add("minimum_stay_duration=$%d", f.StayDuration)
	}
	if f.RoomType != "" {
		add("overview->>'roomType'=$%d", f.RoomType)
	}
	if f.KitchenType != "" {
		add("overview->>'kitchenType'=$%d", f.KitchenType)
	}
	if f.BathroomType != "" {
		add("overview->>'bathroomType'=$%d", f.BathroomType)
	}
	if f.MinPrice > 0 {
		add("price >= $%d", f.MinPrice)
	}
	if f.MaxPrice > 0 {
		add("price <= $%d", f.MaxPrice)
	}
	if f.Search != "" {
		add("(title ILIKE '%%'||$%d||'%%' OR description ILIKE '%%'||$%[1]d||'%%' OR location ILIKE '%%'||$%[1]d||'%%')", f.Search)
	}
	if f.VerifiedOnly {
		conds = append(conds, "verified=TRUE")
	}

	sql := baseSelectProperty()
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}

	switch f.Sort {
	case "price_asc":
		sql += " ORDER BY price ASC"
	case "price_desc":
		sql += " ORDER BY price DESC"
	default:
		sql += " ORDER BY created_at DESC"
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Property
	for rows.Next() {
		p, err := scanProperty(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *propertyRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM properties`).Scan(&n)
	return n, err
}

func (r *propertyRepo) Update(ctx context.Context, p *models.Property) error {
	_, err := r.update(ctx, p, false, 0)
	return err
}

func (r *propertyRepo) UpdateIfVersion(ctx context.Context, p *models.Property, expected int64) (pgconn.CommandTag, error) {
	return r.update(ctx, p, true, expected)
}

func (r *propertyRepo) UpdateWithRetry(ctx context.Context, id uuid.UUID, mutate func(*models.Property) error) error {
	return r.BaseVersionedRepo.UpdateWithRetry(ctx, id.String(), mutate, r.UpdateIfVersion)
}

func (r *propertyRepo) update(ctx context.Context, p *models.Property, check bool, expected int64) (pgconn.CommandTag, error) {
	overviewJSON, err := json.Marshal(p.Overview)
	if err != nil {
		return nil, err
	}
	optionsJSON, err := json.Marshal(p.BookingOptions)
	if err != nil {
		return nil, err
	}

	sql := `
        UPDATE properties SET
            title=$1, description=$2, price=$3, security_deposit=$4,
            currency=$5, country=$6, latitude=$7, longitude=$8, type=$9,
            amenities=$10, utilities=$11, overview=$12, rent_details=$13,
            terms_of_stay=$14, cancellation_policy=$15, location=$16, city=$17,
            locality=$18, images=$19, verified=$20, on_site_verification=$21,
            minimum_stay_duration=$22, available_from=$23,
            nearby_universities=$24, booking_options=$25, instant_booking=$26,
            book_by_enquiry=$27, updated_at=NOW()
    `
	args := []interface{}{
		p.Title, p.Description, p.Price, p.SecurityDeposit, p.Currency,
		p.Country, p.Latitude, p.Longitude, p.Type, p.Amenities, p.Utilities,
		overviewJSON, p.RentDetails, p.TermsOfStay, p.CancellationPolicy,
		p.Location, p.City, p.Locality, p.Images, p.Verified,
		p.OnSiteVerification, p.MinimumStayDuration, p.AvailableFrom,
		p.NearbyUniversities, optionsJSON, p.InstantBooking, p.BookByEnquiry,
	}
	if check {
		sql += `, row_version=row_version+1 WHERE id=$28 AND row_version=$29`
		args = append(args, p.ID, expected)
	} else {
		sql += ` WHERE id=$28`
		args = append(args, p.ID)
	}

	return r.db.Exec(ctx, sql, args...)
}

func (r *propertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM properties WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectProperty() string {
	return `
        SELECT
            id, title, description, price, security_deposit, currency, country,
            latitude, longitude, type, amenities, utilities, overview,
            rent_details, terms_of_stay, cancellation_policy, location, city,
            locality, images, verified, on_site_verification,
            minimum_stay_duration, available_from, nearby_universities,
            booking_options, instant_booking, book_by_enquiry,
            created_at, updated_at, row_version
        FROM properties
    `
}

func scanProperty(row pgx.Row) (*models.Property, error) {
	var (
		p            models.Property
		overviewJSON []byte
		optionsJSON  []byte
	)
	err := row.Scan(
		&p.ID, &p.Title, &p.Description, &p.Price, &p.SecurityDeposit,
		&p.Currency, &p.Country, &p.Latitude, &p.Longitude, &p.Type,
		&p.Amenities, &p.Utilities, &overviewJSON, &p.RentDetails,
		&p.TermsOfStay, &p.CancellationPolicy, &p.Location, &p.City,
		&p.Locality, &p.Images, &p.Verified, &p.OnSiteVerification,
		&p.MinimumStayDuration, &p.AvailableFrom, &p.NearbyUniversities,
		&optionsJSON, &p.InstantBooking, &p.BookByEnquiry,
		&p.CreatedAt, &p.UpdatedAt, &p.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	if err := json.Unmarshal(overviewJSON, &p.Overview); err != nil {
		return nil, err
	}
	if err := json.Unmarshal(optionsJSON, &p.BookingOptions); err != nil {
		return nil, err
	}
	return &p, nil
}
