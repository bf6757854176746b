package repository

import (
	"database/sql"
	"fmt"

	"healthyfamilies/internal/database"
	"healthyfamilies/internal/models"
)

// UserRepository handles database operations for user accounts. Accounts
// are created by the registration flow; this repository only reads them.
type UserRepository struct {
	db *database.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *database.DB) *UserRepository {
	return &UserRepository{db: db}
}

// GetUserByID retrieves a user by ID, returning nil when absent
func (r *UserRepository) GetUserByID(userID string) (*models.User, error) {
	query := "SELECT id, email, display_name, created_at FROM users WHERE id = ?"
	user := &models.User{}
	err := r.db.QueryRow(query, userID).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// GetUserByEmail retrieves a user by email, returning nil when absent.
// The email is expected to be normalized already.
func (r *UserRepository) GetUserByEmail(email string) (*models.User, error) {
	query := "SELECT id, email, display_name, created_at FROM users WHERE email = ? LIMIT 1"
	user := &models.User{}
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Email,
		&user.DisplayName,
		&user.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}
	return user, nil
}

// CreateUser inserts a user row. Exposed for seeding and tests; the
// production registration flow lives outside this service.
func (r *UserRepository) CreateUser(id, email, displayName string) (*models.User, error) {
	query := "INSERT INTO users (id, email, display_name) VALUES (?, ?, ?)"
	if _, err := r.db.Exec(query, id, email, displayName); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return r.GetUserByID(id)
}
