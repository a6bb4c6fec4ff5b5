package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// WordBookSessionRepository handles word-book review session database
// operations
type WordBookSessionRepository struct {
	db database.DBTX
}

// NewWordBookSessionRepository creates a new word-book session repository
func NewWordBookSessionRepository(db database.DBTX) *WordBookSessionRepository {
	return &WordBookSessionRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *WordBookSessionRepository) WithTx(tx database.DBTX) *WordBookSessionRepository {
	return &WordBookSessionRepository{db: tx}
}

// Create inserts a new in-progress session with its opening snapshot
func (r *WordBookSessionRepository) Create(userID, wordBookID int64, startedAt time.Time, startCounts models.DifficultyCount) (*models.WordBookStudySession, error) {
	query := `
		INSERT INTO wordbook_study_sessions
			(user_id, wordbook_id, started_at, start_hard_count, start_normal_count, start_easy_count)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		userID, wordBookID, startedAt, startCounts.Hard, startCounts.Normal, startCounts.Easy)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a session by ID, nil if not found
func (r *WordBookSessionRepository) GetByID(id int64) (*models.WordBookStudySession, error) {
	query := selectWordBookSession + ` WHERE id = ?`

	session, err := scanWordBookSession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveByUser retrieves the user's in-progress session, nil if none
func (r *WordBookSessionRepository) GetActiveByUser(userID int64) (*models.WordBookStudySession, error) {
	query := selectWordBookSession + ` WHERE user_id = ? AND ended_at IS NULL ORDER BY started_at DESC LIMIT 1`

	session, err := scanWordBookSession(r.db.QueryRow(query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListByUser retrieves a user's sessions, newest first
func (r *WordBookSessionRepository) ListByUser(userID int64) ([]models.WordBookStudySession, error) {
	query := selectWordBookSession + ` WHERE user_id = ? ORDER BY started_at DESC, id DESC`
	return r.list(query, userID)
}

// ListByUserInRange retrieves a user's sessions started within [start, end)
func (r *WordBookSessionRepository) ListByUserInRange(userID int64, start, end time.Time) ([]models.WordBookStudySession, error) {
	query := selectWordBookSession + `
		WHERE user_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at ASC
	`
	return r.list(query, userID, start, end)
}

// Update persists the closing snapshot and end time
func (r *WordBookSessionRepository) Update(session *models.WordBookStudySession) error {
	query := `
		UPDATE wordbook_study_sessions
		SET ended_at = ?, end_hard_count = ?, end_normal_count = ?, end_easy_count = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		session.EndedAt, session.EndCounts.Hard, session.EndCounts.Normal, session.EndCounts.Easy,
		time.Now(), session.ID)
	return err
}

// Delete removes a session
func (r *WordBookSessionRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM wordbook_study_sessions WHERE id = ?`, id)
	return err
}

func (r *WordBookSessionRepository) list(query string, args ...interface{}) ([]models.WordBookStudySession, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.WordBookStudySession
	for rows.Next() {
		session, err := scanWordBookSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

const selectWordBookSession = `
	SELECT id, user_id, wordbook_id, started_at, ended_at,
	       start_hard_count, start_normal_count, start_easy_count,
	       end_hard_count, end_normal_count, end_easy_count,
	       created_at, updated_at
	FROM wordbook_study_sessions`

func scanWordBookSession(row rowScanner) (*models.WordBookStudySession, error) {
	session := &models.WordBookStudySession{}
	var endedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&session.WordBookID,
		&session.StartedAt,
		&endedAt,
		&session.StartCounts.Hard,
		&session.StartCounts.Normal,
		&session.StartCounts.Easy,
		&session.EndCounts.Hard,
		&session.EndCounts.Normal,
		&session.EndCounts.Easy,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}
	return session, nil
}
