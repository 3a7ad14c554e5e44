package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type EnquiryRepository interface {
	Create(ctx context.Context, e *models.Enquiry) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error)
	ListAll(ctx context.Context) ([]*models.Enquiry, error)
	ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Enquiry, error)
	ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Enquiry, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatusType) (*models.Enquiry, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type enquiryRepo struct {
	db DB
}

func NewEnquiryRepository(db DB) EnquiryRepository {
	return &enquiryRepo{db: db}
}

func (r *enquiryRepo) Create(ctx context.Context, e *models.Enquiry) error {
	_, err := r.db.Exec(ctx, `
        INSERT INTO enquiries (
            id, user_id, name, date_of_birth, gender, nationality, email, phone,
            address, address_line2, country, state_province,
            lease_duration, move_in_date, move_out_date,
            university_name, course_name, university_address, enrollment_status,
            has_medical_conditions, medical_details,
            property_id, bedroom_id, bedroom_name, price, currency, status,
            created_at, updated_at
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,
                  $18,$19,$20,$21,$22,$23,$24,$25,$26,$27, NOW(), NOW())
    `, e.ID, e.UserID, e.Name, e.DateOfBirth, e.Gender, e.Nationality, e.Email,
		e.Phone, e.Address, e.AddressLine2, e.Country, e.StateProvince,
		e.LeaseDuration, e.MoveInDate, e.MoveOutDate,
		e.UniversityName, e.CourseName, e.UniversityAddress, e.EnrollmentStatus,
		e.HasMedicalConditions, e.MedicalDetails,
		e.PropertyID, e.BedroomID, e.BedroomName, e.Price, e.Currency, e.Status)
	return err
}

func (r *enquiryRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Enquiry, error) {
	row := r.db.QueryRow(ctx, baseSelectEnquiry()+" WHERE id=$1", id)
	return scanEnquiry(row)
}

func (r *enquiryRepo) ListAll(ctx context.Context) ([]*models.Enquiry, error) {
	return r.list(ctx, baseSelectEnquiry()+" ORDER BY created_at DESC")
}

func (r *enquiryRepo) ListByUserID(ctx context.Context, userID uuid.UUID) ([]*models.Enquiry, error) {
	return r.list(ctx, baseSelectEnquiry()+" WHERE user_id=$1 ORDER BY created_at DESC", userID)
}

func (r *enquiryRepo) ListByPropertyID(ctx context.Context, propID uuid.UUID) ([]*models.Enquiry, error) {
	return r.list(ctx, baseSelectEnquiry()+" WHERE property_id=$1 ORDER BY created_at DESC", propID)
}

func (r *enquiryRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.EnquiryStatusType) (*models.Enquiry, error) {
	tag, err := r.db.Exec(ctx, `
        UPDATE enquiries SET status=$1, updated_at=NOW() WHERE id=$2
    `, status, id)
	if err != nil {
		return nil, err
	}
	if tag.RowsAffected() == 0 {
		return nil, nil
	}
	return r.GetByID(ctx, id)
}

func (r *enquiryRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM enquiries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *enquiryRepo) list(ctx context.Context, sql string, args ...interface{}) ([]*models.Enquiry, error) {
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.Enquiry
	for rows.Next() {
		e, err := scanEnquiry(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func baseSelectEnquiry() string {
	return `
        SELECT id, user_id, name, date_of_birth, gender, nationality, email, phone,
               address, address_line2, country, state_province,
               lease_duration, move_in_date, move_out_date,
               university_name, course_name, university_address, enrollment_status,
               has_medical_conditions, medical_details,
               property_id, bedroom_id, bedroom_name, price, currency, status,
               created_at, updated_at
        FROM enquiries
    `
}

func scanEnquiry(row pgx.Row) (*models.Enquiry, error) {
	var e models.Enquiry
	err := row.Scan(
		&e.ID, &e.UserID, &e.Name, &e.DateOfBirth, &e.Gender, &e.Nationality,
		&e.Email, &e.Phone, &e.Address, &e.AddressLine2, &e.Country,
		&e.StateProvince, &e.LeaseDuration, &e.MoveInDate, &e.MoveOutDate,
		&e.UniversityName, &e.CourseName, &e.UniversityAddress,
		&e.EnrollmentStatus, &e.HasMedicalConditions, &e.MedicalDetails,
		&e.PropertyID, &e.BedroomID, &e.BedroomName, &e.Price, &e.Currency,
		&e.Status, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &e, nil
}
