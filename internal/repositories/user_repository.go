package repositories

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/cloudstay/rental-service/internal/models"
)

type UserRepository interface {
	Create(ctx context.Context, u *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	ListAll(ctx context.Context) ([]*models.User, error)
	Count(ctx context.Context) (int64, error)
	Update(ctx context.Context, u *models.User) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type userRepo struct {
	db DB
}

func NewUserRepository(db DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) Create(ctx context.Context, u *models.User) error {
	roles := rolesToStrings(u.Roles)
	_, err := r.db.Exec(ctx, `
        INSERT INTO users (
            id, phone, email, username, first_name, last_name, country_code,
            country_name, verified, plan, roles, created_at, updated_at, row_version
        ) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11, NOW(), NOW(), 1)
    `, u.ID, u.Phone, u.Email, u.Username, u.FirstName, u.LastName,
		u.CountryCode, u.CountryName, u.Verified, u.Plan, roles)
	return err
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE id=$1", id)
	return scanUser(row)
}

func (r *userRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	row := r.db.QueryRow(ctx, baseSelectUser()+" WHERE email=$1", email)
	return scanUser(row)
}

func (r *userRepo) ListAll(ctx context.Context) ([]*models.User, error) {
	rows, err := r.db.Query(ctx, baseSelectUser()+" ORDER BY created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *userRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	return n, err
}

func (r *userRepo) Update(ctx context.Context, u *models.User) error {
	roles := rolesToStrings(u.Roles)
	tag, err := r.db.Exec(ctx, `
        UPDATE users SET
            phone=$1, email=$2, username=$3, first_name=$4, last_name=$5,
            country_code=$6, country_name=$7, verified=$8, plan=$9, roles=$10,
            updated_at=NOW(), row_version=row_version+1
        WHERE id=$11
    `, u.Phone, u.Email, u.Username, u.FirstName, u.LastName, u.CountryCode,
		u.CountryName, u.Verified, u.Plan, roles, u.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func baseSelectUser() string {
	return `
        SELECT id, phone, email, username, first_name, last_name, country_code,
               country_name, verified, plan, roles, created_at, updated_at, row_version
        FROM users
    `
}

func scanUser(row pgx.Row) (*models.User, error) {
	var (
		u     models.User
		roles []string
	)
	err := row.Scan(
		&u.ID, &u.Phone, &u.Email, &u.Username, &u.FirstName, &u.LastName,
		&u.CountryCode, &u.CountryName, &u.Verified, &u.Plan, &roles,
		&u.CreatedAt, &u.UpdatedAt, &u.RowVersion,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	u.Roles = make([]models.RoleType, 0, len(roles))
	for _, s := range roles {
		u.Roles = append(u.Roles, models.RoleType(s))
	}
	return &u, nil
}

func rolesToStrings(roles []models.RoleType) []string {
	out := make([]string, 0, len(roles))
	for _, role := range roles {
		out = append(out, string(role))
	}
	return out
}
