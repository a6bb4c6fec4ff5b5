package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// GoalRepository handles goal database operations
type GoalRepository struct {
	db database.DBTX
}

// NewGoalRepository creates a new goal repository
func NewGoalRepository(db database.DBTX) *GoalRepository {
	return &GoalRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *GoalRepository) WithTx(tx database.DBTX) *GoalRepository {
	return &GoalRepository{db: tx}
}

// Create inserts a new goal
func (r *GoalRepository) Create(goal *models.Goal) (*models.Goal, error) {
	query := `
		INSERT INTO goals (user_id, title, start_date, end_date, total_target_amount, target_unit)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		goal.UserID, goal.Title, goal.StartDate, goal.EndDate, goal.TotalTargetAmount, goal.TargetUnit)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a goal by ID, nil if not found
func (r *GoalRepository) GetByID(id int64) (*models.Goal, error) {
	query := selectGoal + ` WHERE id = ?`

	goal, err := scanGoal(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return goal, nil
}

// ListByUser retrieves all goals owned by a user, newest first
func (r *GoalRepository) ListByUser(userID int64) ([]models.Goal, error) {
	query := selectGoal + ` WHERE user_id = ? ORDER BY created_at DESC, id DESC`
	return r.list(query, userID)
}

// ListActiveByUser retrieves a user's goals that are not completed yet
func (r *GoalRepository) ListActiveByUser(userID int64) ([]models.Goal, error) {
	query := selectGoal + ` WHERE user_id = ? AND is_completed = 0 ORDER BY created_at DESC, id DESC`
	return r.list(query, userID)
}

// ListByIDs retrieves the goals with the given IDs that still exist.
// Missing IDs are silently absent from the result.
func (r *GoalRepository) ListByIDs(ids []int64) ([]models.Goal, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	query := selectGoal + ` WHERE id IN (`
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		if i > 0 {
			query += ", "
		}
		query += "?"
		args[i] = id
	}
	query += `) ORDER BY id ASC`

	return r.list(query, args...)
}

// CountByUser counts a user's goals and how many are completed
func (r *GoalRepository) CountByUser(userID int64) (total, completed int, err error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(CASE WHEN is_completed THEN 1 ELSE 0 END), 0)
		FROM goals
		WHERE user_id = ?
	`

	err = r.db.QueryRow(query, userID).Scan(&total, &completed)
	return total, completed, err
}

// Update persists all mutable goal fields
func (r *GoalRepository) Update(goal *models.Goal) error {
	query := `
		UPDATE goals
		SET title = ?, start_date = ?, end_date = ?, total_target_amount = ?, target_unit = ?,
		    current_progress = ?, is_completed = ?, completed_at = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		goal.Title, goal.StartDate, goal.EndDate, goal.TotalTargetAmount, goal.TargetUnit,
		goal.CurrentProgress, goal.IsCompleted, goal.CompletedAt, time.Now(), goal.ID)
	return err
}

// Delete removes a goal. Sessions that referenced it keep their rows
// with a nulled goal id.
func (r *GoalRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM goals WHERE id = ?`, id)
	return err
}

func (r *GoalRepository) list(query string, args ...interface{}) ([]models.Goal, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		goal, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		goals = append(goals, *goal)
	}
	return goals, rows.Err()
}

const selectGoal = `
	SELECT id, user_id, title, start_date, end_date, total_target_amount, target_unit,
	       current_progress, is_completed, completed_at, created_at, updated_at
	FROM goals`

func scanGoal(row rowScanner) (*models.Goal, error) {
	goal := &models.Goal{}
	var startDate, endDate, completedAt sql.NullTime

	err := row.Scan(
		&goal.ID,
		&goal.UserID,
		&goal.Title,
		&startDate,
		&endDate,
		&goal.TotalTargetAmount,
		&goal.TargetUnit,
		&goal.CurrentProgress,
		&goal.IsCompleted,
		&completedAt,
		&goal.CreatedAt,
		&goal.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if startDate.Valid {
		goal.StartDate = &startDate.Time
	}
	if endDate.Valid {
		goal.EndDate = &endDate.Time
	}
	if completedAt.Valid {
		goal.CompletedAt = &completedAt.Time
	}
	return goal, nil
}
