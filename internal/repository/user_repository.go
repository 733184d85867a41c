package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/phoenix-adventures/trip-service/internal/domain"
)

const userColumns = `id, first_name, last_name, email, password, role, active, last_logged_in,
               password_changed_at, password_reset_token, password_reset_token_expires, trip_id, created_at`

// UserRepository defines persistence access for user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id int64) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateProfile(ctx context.Context, id int64, firstName, lastName, email *string) (*domain.User, error)
	UpdatePassword(ctx context.Context, id int64, passwordHash string) error
	SetResetToken(ctx context.Context, email, hashedToken string, expiresAt time.Time) error
	ResetPassword(ctx context.Context, hashedToken, passwordHash string) (*domain.User, error)
	TouchLogin(ctx context.Context, email string) error
	Deactivate(ctx context.Context, id int64) error
	AssignTrip(ctx context.Context, userID, tripID int64) (bool, error)
	PurgeInactive(ctx context.Context, cutoff time.Time) (int64, error)
}

type userRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository returns a Postgres-backed implementation.
func NewUserRepository(pool *pgxpool.Pool) UserRepository {
	return &userRepository{pool: pool}
}

func (r *userRepository) Create(ctx context.Context, user *domain.User) error {
	const query = `
        INSERT INTO users (first_name, last_name, email, password, role)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, active, last_logged_in, created_at`

	return r.pool.QueryRow(ctx, query,
		user.FirstName,
		user.LastName,
		user.Email,
		user.PasswordHash,
		user.Role,
	).Scan(&user.ID, &user.Active, &user.LastLoggedIn, &user.CreatedAt)
}

func (r *userRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id=$1`
	return r.fetchSingle(ctx, query, id)
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email=$1`
	return r.fetchSingle(ctx, query, email)
}

func (r *userRepository) fetchSingle(ctx context.Context, query string, arg any) (*domain.User, error) {
	var user domain.User
	if err := r.pool.QueryRow(ctx, query, arg).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.LastLoggedIn,
		&user.PasswordChangedAt,
		&user.PasswordResetToken,
		&user.PasswordResetExpiresAt,
		&user.TripID,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// UpdateProfile merges only the provided fields; nil pointers keep prior values.
func (r *userRepository) UpdateProfile(ctx context.Context, id int64, firstName, lastName, email *string) (*domain.User, error) {
	query := `
        UPDATE users
        SET first_name = COALESCE($1, first_name),
            last_name = COALESCE($2, last_name),
            email = COALESCE($3, email)
        WHERE id = $4
        RETURNING ` + userColumns

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, firstName, lastName, email, id).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.LastLoggedIn,
		&user.PasswordChangedAt,
		&user.PasswordResetToken,
		&user.PasswordResetExpiresAt,
		&user.TripID,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) UpdatePassword(ctx context.Context, id int64, passwordHash string) error {
	const query = `
        UPDATE users SET password=$1, password_changed_at=NOW()
        WHERE id=$2`
	cmd, err := r.pool.Exec(ctx, query, passwordHash, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *userRepository) SetResetToken(ctx context.Context, email, hashedToken string, expiresAt time.Time) error {
	const query = `
        UPDATE users SET password_reset_token=$1, password_reset_token_expires=$2
        WHERE email=$3`
	cmd, err := r.pool.Exec(ctx, query, hashedToken, expiresAt, email)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// ResetPassword consumes an unexpired reset token in a single conditional
// update so a token cannot be redeemed twice.
func (r *userRepository) ResetPassword(ctx context.Context, hashedToken, passwordHash string) (*domain.User, error) {
	query := `
        UPDATE users
        SET password=$1, password_reset_token=NULL, password_reset_token_expires=NULL,
            password_changed_at=NOW()
        WHERE password_reset_token=$2 AND password_reset_token_expires > NOW()
        RETURNING ` + userColumns

	var user domain.User
	if err := r.pool.QueryRow(ctx, query, passwordHash, hashedToken).Scan(
		&user.ID,
		&user.FirstName,
		&user.LastName,
		&user.Email,
		&user.PasswordHash,
		&user.Role,
		&user.Active,
		&user.LastLoggedIn,
		&user.PasswordChangedAt,
		&user.PasswordResetToken,
		&user.PasswordResetExpiresAt,
		&user.TripID,
		&user.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) TouchLogin(ctx context.Context, email string) error {
	const query = `UPDATE users SET last_logged_in=NOW(), active=TRUE WHERE email=$1`
	_, err := r.pool.Exec(ctx, query, email)
	return err
}

func (r *userRepository) Deactivate(ctx context.Context, id int64) error {
	const query = `UPDATE users SET active=FALSE WHERE id=$1`
	cmd, err := r.pool.Exec(ctx, query, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

// AssignTrip records a trip application. Returns false when the user already
// holds that trip; the guard lives in the WHERE clause, so concurrent applies
// cannot double-book.
func (r *userRepository) AssignTrip(ctx context.Context, userID, tripID int64) (bool, error) {
	const query = `
        UPDATE users SET trip_id=$1
        WHERE id=$2 AND trip_id IS DISTINCT FROM $1`
	cmd, err := r.pool.Exec(ctx, query, tripID, userID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() > 0, nil
}

func (r *userRepository) PurgeInactive(ctx context.Context, cutoff time.Time) (int64, error) {
	const query = `DELETE FROM users WHERE active=FALSE AND last_logged_in < $1`
	cmd, err := r.pool.Exec(ctx, query, cutoff)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
