package repository

import (
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// AppLaunchRepository handles app launch log database operations
type AppLaunchRepository struct {
	db database.DBTX
}

// NewAppLaunchRepository creates a new app launch repository
func NewAppLaunchRepository(db database.DBTX) *AppLaunchRepository {
	return &AppLaunchRepository{db: db}
}

// Create records one app launch
func (r *AppLaunchRepository) Create(userID int64, launchTime time.Time) (*models.AppLaunch, error) {
	query := `INSERT INTO app_launches (user_id, launch_time) VALUES (?, ?)`

	id, err := r.db.ExecReturningID(query, userID, launchTime)
	if err != nil {
		return nil, err
	}

	return &models.AppLaunch{ID: id, UserID: userID, LaunchTime: launchTime}, nil
}

// ListByUserInRange retrieves launches within [start, end)
func (r *AppLaunchRepository) ListByUserInRange(userID int64, start, end time.Time) ([]models.AppLaunch, error) {
	query := `
		SELECT id, user_id, launch_time
		FROM app_launches
		WHERE user_id = ? AND launch_time >= ? AND launch_time < ?
		ORDER BY launch_time ASC
	`

	rows, err := r.db.Query(query, userID, start, end)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var launches []models.AppLaunch
	for rows.Next() {
		var l models.AppLaunch
		if err := rows.Scan(&l.ID, &l.UserID, &l.LaunchTime); err != nil {
			return nil, err
		}
		launches = append(launches, l)
	}
	return launches, rows.Err()
}
