package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// CardRepository handles flashcard database operations
type CardRepository struct {
	db database.DBTX
}

// NewCardRepository creates a new card repository
func NewCardRepository(db database.DBTX) *CardRepository {
	return &CardRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *CardRepository) WithTx(tx database.DBTX) *CardRepository {
	return &CardRepository{db: tx}
}

// Create inserts a new card with a zero review priority
func (r *CardRepository) Create(wordBookID int64, frontText, backText string) (*models.Card, error) {
	query := `
		INSERT INTO cards (wordbook_id, front_text, back_text)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, wordBookID, frontText, backText)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// CreateBatch inserts many cards at once, used by the bulk importer.
// Returns the number of cards inserted.
func (r *CardRepository) CreateBatch(wordBookID int64, cards []models.CardContent) (int, error) {
	query := `
		INSERT INTO cards (wordbook_id, front_text, back_text)
		VALUES (?, ?, ?)
	`

	for i, c := range cards {
		if _, err := r.db.Exec(query, wordBookID, c.FrontText, c.BackText); err != nil {
			return i, fmt.Errorf("failed to insert card %d: %w", i+1, err)
		}
	}
	return len(cards), nil
}

// GetByID retrieves a card by ID, nil if not found
func (r *CardRepository) GetByID(id int64) (*models.Card, error) {
	query := selectCard + ` WHERE id = ?`

	card, err := scanCard(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// ListByWordBook retrieves all cards in a word book in creation order
func (r *CardRepository) ListByWordBook(wordBookID int64) ([]models.Card, error) {
	query := selectCard + ` WHERE wordbook_id = ? ORDER BY id ASC`

	rows, err := r.db.Query(query, wordBookID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var cards []models.Card
	for rows.Next() {
		card, err := scanCard(rows)
		if err != nil {
			return nil, err
		}
		cards = append(cards, *card)
	}
	return cards, rows.Err()
}

// NextDue retrieves the card with the lowest review priority in a word
// book, ties broken by id ascending. Nil if the book has no cards.
func (r *CardRepository) NextDue(wordBookID int64) (*models.Card, error) {
	query := selectCard + `
		WHERE wordbook_id = ?
		ORDER BY review_priority ASC, id ASC
		LIMIT 1
	`

	card, err := scanCard(r.db.QueryRow(query, wordBookID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return card, nil
}

// CountByWordBook counts the cards in a word book
func (r *CardRepository) CountByWordBook(wordBookID int64) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM cards WHERE wordbook_id = ?`, wordBookID).Scan(&count)
	return count, err
}

// CountByDifficultyForUser tallies a user's cards per difficulty across
// all their word books. Ungraded cards contribute to the total only.
func (r *CardRepository) CountByDifficultyForUser(userID int64) (total int, counts models.DifficultyCount, err error) {
	query := `
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN c.difficulty = 'HARD' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.difficulty = 'NORMAL' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN c.difficulty = 'EASY' THEN 1 ELSE 0 END), 0)
		FROM cards c
		JOIN wordbooks w ON w.id = c.wordbook_id
		WHERE w.user_id = ?
	`

	err = r.db.QueryRow(query, userID).Scan(&total, &counts.Hard, &counts.Normal, &counts.Easy)
	return total, counts, err
}

// CountByDifficultyForWordBook tallies one word book's cards per difficulty
func (r *CardRepository) CountByDifficultyForWordBook(wordBookID int64) (models.DifficultyCount, error) {
	query := `
		SELECT
			COALESCE(SUM(CASE WHEN difficulty = 'HARD' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN difficulty = 'NORMAL' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN difficulty = 'EASY' THEN 1 ELSE 0 END), 0)
		FROM cards
		WHERE wordbook_id = ?
	`

	var counts models.DifficultyCount
	err := r.db.QueryRow(query, wordBookID).Scan(&counts.Hard, &counts.Normal, &counts.Easy)
	return counts, err
}

// UpdateContent persists front/back text and difficulty changes
func (r *CardRepository) UpdateContent(card *models.Card) error {
	query := `
		UPDATE cards
		SET front_text = ?, back_text = ?, difficulty = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, card.FrontText, card.BackText, difficultyValue(card.Difficulty), time.Now(), card.ID)
	return err
}

// UpdateReview persists the scheduling fields after a grading
func (r *CardRepository) UpdateReview(card *models.Card) error {
	query := `
		UPDATE cards
		SET difficulty = ?, review_priority = ?, last_reviewed_at = ?, view_count = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		difficultyValue(card.Difficulty),
		card.ReviewPriority,
		card.LastReviewedAt,
		card.ViewCount,
		time.Now(),
		card.ID,
	)
	return err
}

// ResetPriorities re-baselines every card in a word book to one priority
func (r *CardRepository) ResetPriorities(wordBookID int64, priority int64) error {
	query := `
		UPDATE cards
		SET review_priority = ?, updated_at = ?
		WHERE wordbook_id = ?
	`

	_, err := r.db.Exec(query, priority, time.Now(), wordBookID)
	return err
}

// Delete removes a card
func (r *CardRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM cards WHERE id = ?`, id)
	return err
}

const selectCard = `
	SELECT id, wordbook_id, front_text, back_text, difficulty,
	       review_priority, last_reviewed_at, view_count, created_at, updated_at
	FROM cards`

func scanCard(row rowScanner) (*models.Card, error) {
	card := &models.Card{}
	var difficulty sql.NullString
	var lastReviewedAt sql.NullTime

	err := row.Scan(
		&card.ID,
		&card.WordBookID,
		&card.FrontText,
		&card.BackText,
		&difficulty,
		&card.ReviewPriority,
		&lastReviewedAt,
		&card.ViewCount,
		&card.CreatedAt,
		&card.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if difficulty.Valid {
		d := models.Difficulty(difficulty.String)
		card.Difficulty = &d
	}
	if lastReviewedAt.Valid {
		card.LastReviewedAt = &lastReviewedAt.Time
	}
	return card, nil
}

func difficultyValue(d *models.Difficulty) interface{} {
	if d == nil {
		return nil
	}
	return string(*d)
}
