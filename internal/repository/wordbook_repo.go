package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// WordBookRepository handles word book database operations
type WordBookRepository struct {
	db database.DBTX
}

// NewWordBookRepository creates a new word book repository
func NewWordBookRepository(db database.DBTX) *WordBookRepository {
	return &WordBookRepository{db: db}
}

// Create inserts a new word book
func (r *WordBookRepository) Create(userID int64, title string, description *string, ratios models.FrequencyRatios) (*models.WordBook, error) {
	query := `
		INSERT INTO wordbooks (user_id, title, description, hard_frequency_ratio, normal_frequency_ratio, easy_frequency_ratio)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, userID, title, description, ratios.Hard, ratios.Normal, ratios.Easy)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a word book by ID, nil if not found
func (r *WordBookRepository) GetByID(id int64) (*models.WordBook, error) {
	query := `
		SELECT id, user_id, title, description,
		       hard_frequency_ratio, normal_frequency_ratio, easy_frequency_ratio,
		       created_at, updated_at
		FROM wordbooks
		WHERE id = ?
	`

	wb, err := scanWordBook(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return wb, nil
}

// ListByUser retrieves all word books owned by a user, newest first
func (r *WordBookRepository) ListByUser(userID int64) ([]models.WordBook, error) {
	query := `
		SELECT id, user_id, title, description,
		       hard_frequency_ratio, normal_frequency_ratio, easy_frequency_ratio,
		       created_at, updated_at
		FROM wordbooks
		WHERE user_id = ?
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var books []models.WordBook
	for rows.Next() {
		wb, err := scanWordBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *wb)
	}
	return books, rows.Err()
}

// Update persists title, description and ratio changes
func (r *WordBookRepository) Update(wb *models.WordBook) error {
	query := `
		UPDATE wordbooks
		SET title = ?, description = ?,
		    hard_frequency_ratio = ?, normal_frequency_ratio = ?, easy_frequency_ratio = ?,
		    updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, wb.Title, wb.Description, wb.Hard, wb.Normal, wb.Easy, time.Now(), wb.ID)
	return err
}

// Delete removes a word book and its cards via cascade
func (r *WordBookRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM wordbooks WHERE id = ?`, id)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanWordBook(row rowScanner) (*models.WordBook, error) {
	wb := &models.WordBook{}
	var description sql.NullString

	err := row.Scan(
		&wb.ID,
		&wb.UserID,
		&wb.Title,
		&description,
		&wb.Hard,
		&wb.Normal,
		&wb.Easy,
		&wb.CreatedAt,
		&wb.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		wb.Description = &description.String
	}
	return wb, nil
}
