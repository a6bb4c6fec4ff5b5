package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// StudySessionRepository handles pomodoro session database operations.
// The generic and the goal-linked session flavors share one row shape in
// two tables, so one repository type backs both.
type StudySessionRepository struct {
	db    database.DBTX
	table string
}

// NewStudySessionRepository creates a repository over the generic
// study_sessions table
func NewStudySessionRepository(db database.DBTX) *StudySessionRepository {
	return &StudySessionRepository{db: db, table: "study_sessions"}
}

// NewGoalStudySessionRepository creates a repository over the
// goal_study_sessions table
func NewGoalStudySessionRepository(db database.DBTX) *StudySessionRepository {
	return &StudySessionRepository{db: db, table: "goal_study_sessions"}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *StudySessionRepository) WithTx(tx database.DBTX) *StudySessionRepository {
	return &StudySessionRepository{db: tx, table: r.table}
}

// Create inserts a new in-progress session
func (r *StudySessionRepository) Create(userID int64, goalID *int64, startedAt time.Time) (*models.StudySession, error) {
	query := `
		INSERT INTO ` + r.table + ` (user_id, goal_id, started_at)
		VALUES (?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query, userID, goalID, startedAt)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a session by ID, nil if not found
func (r *StudySessionRepository) GetByID(id int64) (*models.StudySession, error) {
	query := r.selectQuery() + ` WHERE id = ?`

	session, err := scanStudySession(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// GetActiveByUser retrieves the user's in-progress session, nil if none
func (r *StudySessionRepository) GetActiveByUser(userID int64) (*models.StudySession, error) {
	query := r.selectQuery() + ` WHERE user_id = ? AND ended_at IS NULL ORDER BY started_at DESC LIMIT 1`

	session, err := scanStudySession(r.db.QueryRow(query, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return session, nil
}

// ListByUser retrieves a user's sessions, newest first
func (r *StudySessionRepository) ListByUser(userID int64) ([]models.StudySession, error) {
	query := r.selectQuery() + ` WHERE user_id = ? ORDER BY started_at DESC, id DESC`
	return r.list(query, userID)
}

// ListByUserInRange retrieves a user's sessions started within [start, end)
func (r *StudySessionRepository) ListByUserInRange(userID int64, start, end time.Time) ([]models.StudySession, error) {
	query := r.selectQuery() + `
		WHERE user_id = ? AND started_at >= ? AND started_at < ?
		ORDER BY started_at ASC
	`
	return r.list(query, userID, start, end)
}

// Update persists the mutable session fields
func (r *StudySessionRepository) Update(session *models.StudySession) error {
	query := `
		UPDATE ` + r.table + `
		SET ended_at = ?, achieved_amount = ?, duration_minutes = ?, pomo_count = ?, note = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		session.EndedAt, session.AchievedAmount, session.DurationMinutes,
		session.PomoCount, session.Note, time.Now(), session.ID)
	return err
}

// Delete removes a session
func (r *StudySessionRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM `+r.table+` WHERE id = ?`, id)
	return err
}

func (r *StudySessionRepository) selectQuery() string {
	return `
		SELECT id, user_id, goal_id, started_at, ended_at,
		       achieved_amount, duration_minutes, pomo_count, note, created_at, updated_at
		FROM ` + r.table
}

func (r *StudySessionRepository) list(query string, args ...interface{}) ([]models.StudySession, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []models.StudySession
	for rows.Next() {
		session, err := scanStudySession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, *session)
	}
	return sessions, rows.Err()
}

func scanStudySession(row rowScanner) (*models.StudySession, error) {
	session := &models.StudySession{}
	var goalID sql.NullInt64
	var endedAt sql.NullTime
	var note sql.NullString

	err := row.Scan(
		&session.ID,
		&session.UserID,
		&goalID,
		&session.StartedAt,
		&endedAt,
		&session.AchievedAmount,
		&session.DurationMinutes,
		&session.PomoCount,
		&note,
		&session.CreatedAt,
		&session.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if goalID.Valid {
		session.GoalID = &goalID.Int64
	}
	if endedAt.Valid {
		session.EndedAt = &endedAt.Time
	}
	if note.Valid {
		session.Note = note.String
	}
	return session, nil
}
