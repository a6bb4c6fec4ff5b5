package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// ScheduleRepository handles schedule database operations
type ScheduleRepository struct {
	db database.DBTX
}

// NewScheduleRepository creates a new schedule repository
func NewScheduleRepository(db database.DBTX) *ScheduleRepository {
	return &ScheduleRepository{db: db}
}

// Create inserts a new schedule entry
func (r *ScheduleRepository) Create(schedule *models.Schedule) (*models.Schedule, error) {
	query := `
		INSERT INTO schedules (user_id, title, description, start_time, end_time)
		VALUES (?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		schedule.UserID, schedule.Title, schedule.Description, schedule.StartTime, schedule.EndTime)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a schedule by ID, nil if not found
func (r *ScheduleRepository) GetByID(id int64) (*models.Schedule, error) {
	query := selectSchedule + ` WHERE id = ?`

	schedule, err := scanSchedule(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return schedule, nil
}

// ListByUser retrieves all schedules for a user ordered by start time
func (r *ScheduleRepository) ListByUser(userID int64) ([]models.Schedule, error) {
	query := selectSchedule + ` WHERE user_id = ? ORDER BY start_time ASC, id ASC`
	return r.list(query, userID)
}

// ListByUserInRange retrieves schedules overlapping [start, end)
func (r *ScheduleRepository) ListByUserInRange(userID int64, start, end time.Time) ([]models.Schedule, error) {
	query := selectSchedule + `
		WHERE user_id = ? AND start_time < ? AND end_time >= ?
		ORDER BY start_time ASC, id ASC
	`
	return r.list(query, userID, end, start)
}

// Update persists schedule changes
func (r *ScheduleRepository) Update(schedule *models.Schedule) error {
	query := `
		UPDATE schedules
		SET title = ?, description = ?, start_time = ?, end_time = ?, is_completed = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query,
		schedule.Title, schedule.Description, schedule.StartTime, schedule.EndTime,
		schedule.IsCompleted, time.Now(), schedule.ID)
	return err
}

// Delete removes a schedule. Linked reminders keep their rows with a
// nulled schedule id.
func (r *ScheduleRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM schedules WHERE id = ?`, id)
	return err
}

func (r *ScheduleRepository) list(query string, args ...interface{}) ([]models.Schedule, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var schedules []models.Schedule
	for rows.Next() {
		schedule, err := scanSchedule(rows)
		if err != nil {
			return nil, err
		}
		schedules = append(schedules, *schedule)
	}
	return schedules, rows.Err()
}

const selectSchedule = `
	SELECT id, user_id, title, description, start_time, end_time, is_completed, created_at, updated_at
	FROM schedules`

func scanSchedule(row rowScanner) (*models.Schedule, error) {
	schedule := &models.Schedule{}
	var description sql.NullString

	err := row.Scan(
		&schedule.ID,
		&schedule.UserID,
		&schedule.Title,
		&description,
		&schedule.StartTime,
		&schedule.EndTime,
		&schedule.IsCompleted,
		&schedule.CreatedAt,
		&schedule.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		schedule.Description = &description.String
	}
	return schedule, nil
}
