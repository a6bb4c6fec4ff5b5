package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// ReminderRepository handles reminder database operations
type ReminderRepository struct {
	db database.DBTX
}

// NewReminderRepository creates a new reminder repository
func NewReminderRepository(db database.DBTX) *ReminderRepository {
	return &ReminderRepository{db: db}
}

// Create inserts a new reminder
func (r *ReminderRepository) Create(reminder *models.Reminder) (*models.Reminder, error) {
	query := `
		INSERT INTO reminders (user_id, schedule_id, message, notification_time)
		VALUES (?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		reminder.UserID, reminder.ScheduleID, reminder.Message, reminder.NotificationTime)
	if err != nil {
		return nil, err
	}

	return r.GetByID(id)
}

// GetByID retrieves a reminder by ID, nil if not found
func (r *ReminderRepository) GetByID(id int64) (*models.Reminder, error) {
	query := selectReminder + ` WHERE id = ?`

	reminder, err := scanReminder(r.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return reminder, nil
}

// ListByUser retrieves all reminders for a user ordered by delivery time
func (r *ReminderRepository) ListByUser(userID int64) ([]models.Reminder, error) {
	query := selectReminder + ` WHERE user_id = ? ORDER BY notification_time ASC, id ASC`
	return r.list(query, userID)
}

// ListUpcomingByUser retrieves a user's not-yet-delivered reminders
// whose time is still ahead
func (r *ReminderRepository) ListUpcomingByUser(userID int64, now time.Time) ([]models.Reminder, error) {
	query := selectReminder + `
		WHERE user_id = ? AND notification_time > ? AND sent_at IS NULL
		ORDER BY notification_time ASC, id ASC
	`
	return r.list(query, userID, now)
}

// ListDueUnsent retrieves reminders whose delivery time has passed and
// which have not been sent yet
func (r *ReminderRepository) ListDueUnsent(now time.Time) ([]models.Reminder, error) {
	query := selectReminder + `
		WHERE notification_time <= ? AND sent_at IS NULL
		ORDER BY notification_time ASC, id ASC
	`
	return r.list(query, now)
}

// MarkSent stamps a reminder as delivered
func (r *ReminderRepository) MarkSent(id int64, sentAt time.Time) error {
	query := `UPDATE reminders SET sent_at = ?, updated_at = ? WHERE id = ?`

	_, err := r.db.Exec(query, sentAt, time.Now(), id)
	return err
}

// Update persists message and delivery time changes
func (r *ReminderRepository) Update(reminder *models.Reminder) error {
	query := `
		UPDATE reminders
		SET message = ?, notification_time = ?, updated_at = ?
		WHERE id = ?
	`

	_, err := r.db.Exec(query, reminder.Message, reminder.NotificationTime, time.Now(), reminder.ID)
	return err
}

// Delete removes a reminder
func (r *ReminderRepository) Delete(id int64) error {
	_, err := r.db.Exec(`DELETE FROM reminders WHERE id = ?`, id)
	return err
}

func (r *ReminderRepository) list(query string, args ...interface{}) ([]models.Reminder, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reminders []models.Reminder
	for rows.Next() {
		reminder, err := scanReminder(rows)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, *reminder)
	}
	return reminders, rows.Err()
}

const selectReminder = `
	SELECT id, user_id, schedule_id, message, notification_time, sent_at, created_at, updated_at
	FROM reminders`

func scanReminder(row rowScanner) (*models.Reminder, error) {
	reminder := &models.Reminder{}
	var scheduleID sql.NullInt64
	var sentAt sql.NullTime

	err := row.Scan(
		&reminder.ID,
		&reminder.UserID,
		&scheduleID,
		&reminder.Message,
		&reminder.NotificationTime,
		&sentAt,
		&reminder.CreatedAt,
		&reminder.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if scheduleID.Valid {
		reminder.ScheduleID = &scheduleID.Int64
	}
	if sentAt.Valid {
		reminder.SentAt = &sentAt.Time
	}
	return reminder, nil
}
