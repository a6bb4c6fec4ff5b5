package repository

import (
	"database/sql"
	"errors"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// WeeklyRepository handles the weekly baseline and stat tables
type WeeklyRepository struct {
	db database.DBTX
}

// NewWeeklyRepository creates a new weekly repository
func NewWeeklyRepository(db database.DBTX) *WeeklyRepository {
	return &WeeklyRepository{db: db}
}

// WithTx returns a copy of the repository bound to a transaction
func (r *WeeklyRepository) WithTx(tx database.DBTX) *WeeklyRepository {
	return &WeeklyRepository{db: tx}
}

// GetCardBaseline retrieves the card baseline for one week, nil if the
// week has not been baselined yet
func (r *WeeklyRepository) GetCardBaseline(userID int64, week models.WeekKey) (*models.WeeklyCardBaseline, error) {
	query := `
		SELECT id, user_id, year, month, week_number, total_count,
		       hard_count, normal_count, easy_count, created_at
		FROM weekly_card_baselines
		WHERE user_id = ? AND year = ? AND month = ? AND week_number = ?
	`

	b := &models.WeeklyCardBaseline{}
	err := r.db.QueryRow(query, userID, week.Year, week.Month, week.WeekNumber).Scan(
		&b.ID,
		&b.UserID,
		&b.Year,
		&b.Month,
		&b.WeekNumber,
		&b.TotalCount,
		&b.Counts.Hard,
		&b.Counts.Normal,
		&b.Counts.Easy,
		&b.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

// CreateCardBaseline inserts the card snapshot for one week
func (r *WeeklyRepository) CreateCardBaseline(b *models.WeeklyCardBaseline) error {
	query := `
		INSERT INTO weekly_card_baselines
			(user_id, year, month, week_number, total_count, hard_count, normal_count, easy_count)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		b.UserID, b.Year, b.Month, b.WeekNumber,
		b.TotalCount, b.Counts.Hard, b.Counts.Normal, b.Counts.Easy)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// ListGoalBaselines retrieves all goal baselines for one week
func (r *WeeklyRepository) ListGoalBaselines(userID int64, week models.WeekKey) ([]models.WeeklyGoalBaseline, error) {
	query := `
		SELECT id, user_id, goal_id, year, month, week_number,
		       start_amount, target_unit, title, created_at
		FROM weekly_goal_baselines
		WHERE user_id = ? AND year = ? AND month = ? AND week_number = ?
		ORDER BY goal_id ASC
	`

	rows, err := r.db.Query(query, userID, week.Year, week.Month, week.WeekNumber)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var baselines []models.WeeklyGoalBaseline
	for rows.Next() {
		var b models.WeeklyGoalBaseline
		err := rows.Scan(
			&b.ID,
			&b.UserID,
			&b.GoalID,
			&b.Year,
			&b.Month,
			&b.WeekNumber,
			&b.StartAmount,
			&b.TargetUnit,
			&b.Title,
			&b.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		baselines = append(baselines, b)
	}
	return baselines, rows.Err()
}

// CreateGoalBaseline inserts one goal's snapshot for one week
func (r *WeeklyRepository) CreateGoalBaseline(b *models.WeeklyGoalBaseline) error {
	query := `
		INSERT INTO weekly_goal_baselines
			(user_id, goal_id, year, month, week_number, start_amount, target_unit, title)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`

	id, err := r.db.ExecReturningID(query,
		b.UserID, b.GoalID, b.Year, b.Month, b.WeekNumber,
		b.StartAmount, b.TargetUnit, b.Title)
	if err != nil {
		return err
	}
	b.ID = id
	return nil
}

// GetStat retrieves the weekly stat row, nil if not created yet
func (r *WeeklyRepository) GetStat(userID int64, week models.WeekKey) (*models.WeeklyStat, error) {
	query := `
		SELECT id, user_id, year, month, week_number, achievement_rate, created_at, updated_at
		FROM weekly_stats
		WHERE user_id = ? AND year = ? AND month = ? AND week_number = ?
	`

	stat := &models.WeeklyStat{}
	err := r.db.QueryRow(query, userID, week.Year, week.Month, week.WeekNumber).Scan(
		&stat.ID,
		&stat.UserID,
		&stat.Year,
		&stat.Month,
		&stat.WeekNumber,
		&stat.AchievementRate,
		&stat.CreatedAt,
		&stat.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return stat, nil
}

// UpsertStat creates or overwrites the weekly stat row with a freshly
// computed achievement rate
func (r *WeeklyRepository) UpsertStat(userID int64, week models.WeekKey, achievementRate float64) (*models.WeeklyStat, error) {
	existing, err := r.GetStat(userID, week)
	if err != nil {
		return nil, err
	}

	if existing == nil {
		query := `
			INSERT INTO weekly_stats (user_id, year, month, week_number, achievement_rate)
			VALUES (?, ?, ?, ?, ?)
		`
		if _, err := r.db.ExecReturningID(query,
			userID, week.Year, week.Month, week.WeekNumber, achievementRate); err != nil {
			return nil, err
		}
	} else {
		query := `UPDATE weekly_stats SET achievement_rate = ?, updated_at = ? WHERE id = ?`
		if _, err := r.db.Exec(query, achievementRate, time.Now(), existing.ID); err != nil {
			return nil, err
		}
	}

	return r.GetStat(userID, week)
}
