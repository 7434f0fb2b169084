package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ademgunay/nest-api-sandbox/internal/models"
)

// ==========================
// UserRepo
// ==========================
type UserRepo struct {
	DB *sql.DB
}

// ==========================
// Constructor
// ==========================
func NewUserRepo(db *sql.DB) *UserRepo {
	return &UserRepo{DB: db}
}

const userColumns = `id, email, hash, first_name, last_name, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*models.User, error) {
	u := &models.User{}
	err := row.Scan(&u.ID, &u.Email, &u.Hash, &u.FirstName, &u.LastName, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}

// ==========================
// Create User
// ==========================

// Create inserts a user. The unique index on email makes concurrent duplicates fail with
// ErrDuplicate; no application lock is involved.
func (r *UserRepo) Create(ctx context.Context, email, hash string) (*models.User, error) {
	query := `
		INSERT INTO users (email, hash)
		VALUES ($1, $2)
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email, hash))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("insert user: %w", err)
	}
	return user, nil
}

// ==========================
// Get By ID
// ==========================
func (r *UserRepo) GetByID(ctx context.Context, id int) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, id))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("select user by id: %w", err)
	}
	return user, err
}

// ==========================
// Get By Email
// ==========================
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE email = $1
	`

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, email))
	if err != nil && !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("select user by email: %w", err)
	}
	return user, err
}

// ==========================
// Update User
// ==========================

// Update applies the non-nil fields of u. Changing the email to one already in use
// returns ErrDuplicate.
func (r *UserRepo) Update(ctx context.Context, id int, u models.UserUpdate) (*models.User, error) {
	query := `
		UPDATE users
		SET email = COALESCE($1, email),
		    first_name = COALESCE($2, first_name),
		    last_name = COALESCE($3, last_name),
		    updated_at = now()
		WHERE id = $4
		RETURNING ` + userColumns

	user, err := scanUser(r.DB.QueryRowContext(ctx, query, u.Email, u.FirstName, u.LastName, id))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		if isUniqueViolation(err) {
			return nil, ErrDuplicate
		}
		return nil, fmt.Errorf("update user: %w", err)
	}
	return user, nil
}
