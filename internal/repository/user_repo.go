package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// UserRepository handles user database operations
type UserRepository struct {
	db database.DBTX
}

// NewUserRepository creates a new user repository
func NewUserRepository(db database.DBTX) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts a new user
func (r *UserRepository) Create(email, passwordHash, nickname string) (*models.User, error) {
	query := `
		INSERT INTO users (email, password_hash, nickname)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, email, passwordHash, nickname)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a user by ID, nil if not found
func (r *UserRepository) GetByID(id int64) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, profile_image_url, created_at, updated_at
		FROM users
		WHERE id = ?
	`
	return r.scanOne(r.db.QueryRow(query, id))
}

// GetByEmail retrieves a user by email, nil if not found
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, email, password_hash, nickname, profile_image_url, created_at, updated_at
		FROM users
		WHERE email = ?
	`
	return r.scanOne(r.db.QueryRow(query, email))
}

// Update persists profile changes
func (r *UserRepository) Update(user *models.User) error {
	query := `
		UPDATE users
		SET nickname = ?, profile_image_url = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, user.Nickname, user.ProfileImageURL, time.Now(), user.ID)
	return err
}

// UpdatePassword replaces a user's password hash
func (r *UserRepository) UpdatePassword(id int64, passwordHash string) error {
	query := `UPDATE users SET password_hash = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.Exec(query, passwordHash, time.Now(), id)
	return err
}

// Delete removes a user and, via cascades, everything they own
func (r *UserRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM users WHERE id = ?`, id)
	return err
}

func (r *UserRepository) scanOne(row *sql.Row) (*models.User, error) {
	user := &models.User{}
	var profileImageURL sql.NullString

	err := row.Scan(
		&user.ID,
		&user.Email,
		&user.PasswordHash,
		&user.Nickname,
		&profileImageURL,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if profileImageURL.Valid {
		user.ProfileImageURL = &profileImageURL.String
	}
	return user, nil
}
