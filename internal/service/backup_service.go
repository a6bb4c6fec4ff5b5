package service

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
)

// BackupData represents the complete database backup structure
type BackupData struct {
	Version          string                        `json:"version"`
	ExportedAt       time.Time                     `json:"exported_at"`
	Users            []UserBackup                  `json:"users"`
	WordBooks        []models.WordBook             `json:"wordbooks"`
	Cards            []models.Card                 `json:"cards"`
	Goals            []models.Goal                 `json:"goals"`
	StudySessions    []models.StudySession         `json:"study_sessions"`
	GoalSessions     []models.StudySession         `json:"goal_study_sessions"`
	WordBookSessions []models.WordBookStudySession `json:"wordbook_study_sessions"`
	Schedules        []models.Schedule             `json:"schedules"`
	Reminders        []models.Reminder             `json:"reminders"`
	CardBaselines    []models.WeeklyCardBaseline   `json:"weekly_card_baselines"`
	GoalBaselines    []models.WeeklyGoalBaseline   `json:"weekly_goal_baselines"`
	WeeklyStats      []models.WeeklyStat           `json:"weekly_stats"`
	AppLaunches      []models.AppLaunch            `json:"app_launches"`
}

// UserBackup carries the user row including the password hash, which
// the public User model deliberately never serializes.
type UserBackup struct {
	ID              int64     `json:"id"`
	Email           string    `json:"email"`
	PasswordHash    string    `json:"password_hash"`
	Nickname        string    `json:"nickname"`
	ProfileImageURL *string   `json:"profile_image_url"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// BackupService handles database backup and restore operations
type BackupService struct {
	db *database.DB
}

// NewBackupService creates a new backup service
func NewBackupService(db *database.DB) *BackupService {
	return &BackupService{db: db}
}

// Export creates a complete backup of the database to a file
func (s *BackupService) Export(outputPath string) error {
	log.Println("Starting database export...")

	backup := &BackupData{
		Version:    "1.0",
		ExportedAt: time.Now(),
	}

	steps := []struct {
		name string
		fn   func(*BackupData) error
	}{
		{"users", s.exportUsers},
		{"wordbooks", s.exportWordBooks},
		{"cards", s.exportCards},
		{"goals", s.exportGoals},
		{"study sessions", s.exportStudySessions},
		{"word-book sessions", s.exportWordBookSessions},
		{"schedules", s.exportSchedules},
		{"reminders", s.exportReminders},
		{"weekly data", s.exportWeekly},
		{"app launches", s.exportAppLaunches},
	}
	for _, step := range steps {
		if err := step.fn(backup); err != nil {
			return fmt.Errorf("failed to export %s: %w", step.name, err)
		}
	}

	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(backup); err != nil {
		return fmt.Errorf("failed to encode backup: %w", err)
	}

	log.Printf("Database exported successfully to %s", outputPath)
	log.Printf("Exported: %d users, %d wordbooks, %d cards, %d goals, %d schedules, %d reminders",
		len(backup.Users), len(backup.WordBooks), len(backup.Cards),
		len(backup.Goals), len(backup.Schedules), len(backup.Reminders))
	return nil
}

// Import restores a database from a backup file
func (s *BackupService) Import(inputPath string) error {
	file, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("failed to open input file: %w", err)
	}
	defer file.Close()

	return s.ImportFromReader(file)
}

// ImportFromReader restores a database from a backup stream
func (s *BackupService) ImportFromReader(reader io.Reader) error {
	log.Println("Starting database import...")

	var backup BackupData
	if err := json.NewDecoder(reader).Decode(&backup); err != nil {
		return fmt.Errorf("failed to decode backup: %w", err)
	}

	log.Printf("Backup version: %s, exported at: %s", backup.Version, backup.ExportedAt)

	// Insert in dependency order so foreign keys resolve
	if err := s.importUsers(backup.Users); err != nil {
		return fmt.Errorf("failed to import users: %w", err)
	}
	if err := s.importWordBooks(backup.WordBooks); err != nil {
		return fmt.Errorf("failed to import wordbooks: %w", err)
	}
	if err := s.importCards(backup.Cards); err != nil {
		return fmt.Errorf("failed to import cards: %w", err)
	}
	if err := s.importGoals(backup.Goals); err != nil {
		return fmt.Errorf("failed to import goals: %w", err)
	}
	if err := s.importStudySessions("study_sessions", backup.StudySessions); err != nil {
		return fmt.Errorf("failed to import study sessions: %w", err)
	}
	if err := s.importStudySessions("goal_study_sessions", backup.GoalSessions); err != nil {
		return fmt.Errorf("failed to import goal sessions: %w", err)
	}
	if err := s.importWordBookSessions(backup.WordBookSessions); err != nil {
		return fmt.Errorf("failed to import word-book sessions: %w", err)
	}
	if err := s.importSchedules(backup.Schedules); err != nil {
		return fmt.Errorf("failed to import schedules: %w", err)
	}
	if err := s.importReminders(backup.Reminders); err != nil {
		return fmt.Errorf("failed to import reminders: %w", err)
	}
	if err := s.importWeekly(&backup); err != nil {
		return fmt.Errorf("failed to import weekly data: %w", err)
	}
	if err := s.importAppLaunches(backup.AppLaunches); err != nil {
		return fmt.Errorf("failed to import app launches: %w", err)
	}

	log.Println("Database import completed successfully")
	return nil
}

func (s *BackupService) exportUsers(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, email, password_hash, nickname, profile_image_url, created_at, updated_at FROM users ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var u UserBackup
		var profileImageURL sql.NullString
		if err := rows.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Nickname, &profileImageURL, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return err
		}
		if profileImageURL.Valid {
			u.ProfileImageURL = &profileImageURL.String
		}
		backup.Users = append(backup.Users, u)
	}
	return rows.Err()
}

func (s *BackupService) exportWordBooks(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, description,
		       hard_frequency_ratio, normal_frequency_ratio, easy_frequency_ratio,
		       created_at, updated_at
		FROM wordbooks ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		wb, err := scanBackupWordBook(rows)
		if err != nil {
			return err
		}
		backup.WordBooks = append(backup.WordBooks, *wb)
	}
	return rows.Err()
}

func (s *BackupService) exportCards(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, wordbook_id, front_text, back_text, difficulty,
		       review_priority, last_reviewed_at, view_count, created_at, updated_at
		FROM cards ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var c models.Card
		var difficulty sql.NullString
		var lastReviewedAt sql.NullTime
		if err := rows.Scan(&c.ID, &c.WordBookID, &c.FrontText, &c.BackText, &difficulty,
			&c.ReviewPriority, &lastReviewedAt, &c.ViewCount, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return err
		}
		if difficulty.Valid {
			d := models.Difficulty(difficulty.String)
			c.Difficulty = &d
		}
		if lastReviewedAt.Valid {
			c.LastReviewedAt = &lastReviewedAt.Time
		}
		backup.Cards = append(backup.Cards, c)
	}
	return rows.Err()
}

func (s *BackupService) exportGoals(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, start_date, end_date, total_target_amount, target_unit,
		       current_progress, is_completed, completed_at, created_at, updated_at
		FROM goals ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var g models.Goal
		var startDate, endDate, completedAt sql.NullTime
		if err := rows.Scan(&g.ID, &g.UserID, &g.Title, &startDate, &endDate,
			&g.TotalTargetAmount, &g.TargetUnit, &g.CurrentProgress, &g.IsCompleted,
			&completedAt, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return err
		}
		if startDate.Valid {
			g.StartDate = &startDate.Time
		}
		if endDate.Valid {
			g.EndDate = &endDate.Time
		}
		if completedAt.Valid {
			g.CompletedAt = &completedAt.Time
		}
		backup.Goals = append(backup.Goals, g)
	}
	return rows.Err()
}

func (s *BackupService) exportStudySessions(backup *BackupData) error {
	for _, table := range []string{"study_sessions", "goal_study_sessions"} {
		rows, err := s.db.Query(`
			SELECT id, user_id, goal_id, started_at, ended_at,
			       achieved_amount, duration_minutes, pomo_count, note, created_at, updated_at
			FROM ` + table + ` ORDER BY id`)
		if err != nil {
			return err
		}

		for rows.Next() {
			var ss models.StudySession
			var goalID sql.NullInt64
			var endedAt sql.NullTime
			var note sql.NullString
			if err := rows.Scan(&ss.ID, &ss.UserID, &goalID, &ss.StartedAt, &endedAt,
				&ss.AchievedAmount, &ss.DurationMinutes, &ss.PomoCount, &note,
				&ss.CreatedAt, &ss.UpdatedAt); err != nil {
				rows.Close()
				return err
			}
			if goalID.Valid {
				ss.GoalID = &goalID.Int64
			}
			if endedAt.Valid {
				ss.EndedAt = &endedAt.Time
			}
			if note.Valid {
				ss.Note = note.String
			}
			if table == "study_sessions" {
				backup.StudySessions = append(backup.StudySessions, ss)
			} else {
				backup.GoalSessions = append(backup.GoalSessions, ss)
			}
		}
		if err := rows.Err(); err != nil {
			rows.Close()
			return err
		}
		rows.Close()
	}
	return nil
}

func (s *BackupService) exportWordBookSessions(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, wordbook_id, started_at, ended_at,
		       start_hard_count, start_normal_count, start_easy_count,
		       end_hard_count, end_normal_count, end_easy_count,
		       created_at, updated_at
		FROM wordbook_study_sessions ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var ws models.WordBookStudySession
		var endedAt sql.NullTime
		if err := rows.Scan(&ws.ID, &ws.UserID, &ws.WordBookID, &ws.StartedAt, &endedAt,
			&ws.StartCounts.Hard, &ws.StartCounts.Normal, &ws.StartCounts.Easy,
			&ws.EndCounts.Hard, &ws.EndCounts.Normal, &ws.EndCounts.Easy,
			&ws.CreatedAt, &ws.UpdatedAt); err != nil {
			return err
		}
		if endedAt.Valid {
			ws.EndedAt = &endedAt.Time
		}
		backup.WordBookSessions = append(backup.WordBookSessions, ws)
	}
	return rows.Err()
}

func (s *BackupService) exportSchedules(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, title, description, start_time, end_time, is_completed, created_at, updated_at
		FROM schedules ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var sc models.Schedule
		var description sql.NullString
		if err := rows.Scan(&sc.ID, &sc.UserID, &sc.Title, &description,
			&sc.StartTime, &sc.EndTime, &sc.IsCompleted, &sc.CreatedAt, &sc.UpdatedAt); err != nil {
			return err
		}
		if description.Valid {
			sc.Description = &description.String
		}
		backup.Schedules = append(backup.Schedules, sc)
	}
	return rows.Err()
}

func (s *BackupService) exportReminders(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, schedule_id, message, notification_time, sent_at, created_at, updated_at
		FROM reminders ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var rm models.Reminder
		var scheduleID sql.NullInt64
		var sentAt sql.NullTime
		if err := rows.Scan(&rm.ID, &rm.UserID, &scheduleID, &rm.Message,
			&rm.NotificationTime, &sentAt, &rm.CreatedAt, &rm.UpdatedAt); err != nil {
			return err
		}
		if scheduleID.Valid {
			rm.ScheduleID = &scheduleID.Int64
		}
		if sentAt.Valid {
			rm.SentAt = &sentAt.Time
		}
		backup.Reminders = append(backup.Reminders, rm)
	}
	return rows.Err()
}

func (s *BackupService) exportWeekly(backup *BackupData) error {
	rows, err := s.db.Query(`
		SELECT id, user_id, year, month, week_number, total_count, hard_count, normal_count, easy_count, created_at
		FROM weekly_card_baselines ORDER BY id`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var b models.WeeklyCardBaseline
		if err := rows.Scan(&b.ID, &b.UserID, &b.Year, &b.Month, &b.WeekNumber,
			&b.TotalCount, &b.Counts.Hard, &b.Counts.Normal, &b.Counts.Easy, &b.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		backup.CardBaselines = append(backup.CardBaselines, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT id, user_id, goal_id, year, month, week_number, start_amount, target_unit, title, created_at
		FROM weekly_goal_baselines ORDER BY id`)
	if err != nil {
		return err
	}
	for rows.Next() {
		var b models.WeeklyGoalBaseline
		if err := rows.Scan(&b.ID, &b.UserID, &b.GoalID, &b.Year, &b.Month, &b.WeekNumber,
			&b.StartAmount, &b.TargetUnit, &b.Title, &b.CreatedAt); err != nil {
			rows.Close()
			return err
		}
		backup.GoalBaselines = append(backup.GoalBaselines, b)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return err
	}
	rows.Close()

	rows, err = s.db.Query(`
		SELECT id, user_id, year, month, week_number, achievement_rate, created_at, updated_at
		FROM weekly_stats ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()
	for rows.Next() {
		var st models.WeeklyStat
		if err := rows.Scan(&st.ID, &st.UserID, &st.Year, &st.Month, &st.WeekNumber,
			&st.AchievementRate, &st.CreatedAt, &st.UpdatedAt); err != nil {
			return err
		}
		backup.WeeklyStats = append(backup.WeeklyStats, st)
	}
	return rows.Err()
}

func (s *BackupService) exportAppLaunches(backup *BackupData) error {
	rows, err := s.db.Query(`SELECT id, user_id, launch_time FROM app_launches ORDER BY id`)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var l models.AppLaunch
		if err := rows.Scan(&l.ID, &l.UserID, &l.LaunchTime); err != nil {
			return err
		}
		backup.AppLaunches = append(backup.AppLaunches, l)
	}
	return rows.Err()
}

func (s *BackupService) importUsers(users []UserBackup) error {
	for _, u := range users {
		_, err := s.db.Exec(`
			INSERT INTO users (id, email, password_hash, nickname, profile_image_url, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			u.ID, u.Email, u.PasswordHash, u.Nickname, u.ProfileImageURL, u.CreatedAt, u.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importWordBooks(books []models.WordBook) error {
	for _, wb := range books {
		_, err := s.db.Exec(`
			INSERT INTO wordbooks (id, user_id, title, description,
				hard_frequency_ratio, normal_frequency_ratio, easy_frequency_ratio, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			wb.ID, wb.UserID, wb.Title, wb.Description, wb.Hard, wb.Normal, wb.Easy, wb.CreatedAt, wb.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importCards(cards []models.Card) error {
	for _, c := range cards {
		_, err := s.db.Exec(`
			INSERT INTO cards (id, wordbook_id, front_text, back_text, difficulty,
				review_priority, last_reviewed_at, view_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			c.ID, c.WordBookID, c.FrontText, c.BackText, difficultyBackupValue(c.Difficulty),
			c.ReviewPriority, c.LastReviewedAt, c.ViewCount, c.CreatedAt, c.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importGoals(goals []models.Goal) error {
	for _, g := range goals {
		_, err := s.db.Exec(`
			INSERT INTO goals (id, user_id, title, start_date, end_date, total_target_amount,
				target_unit, current_progress, is_completed, completed_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			g.ID, g.UserID, g.Title, g.StartDate, g.EndDate, g.TotalTargetAmount,
			g.TargetUnit, g.CurrentProgress, g.IsCompleted, g.CompletedAt, g.CreatedAt, g.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importStudySessions(table string, sessions []models.StudySession) error {
	for _, ss := range sessions {
		_, err := s.db.Exec(`
			INSERT INTO `+table+` (id, user_id, goal_id, started_at, ended_at,
				achieved_amount, duration_minutes, pomo_count, note, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ss.ID, ss.UserID, ss.GoalID, ss.StartedAt, ss.EndedAt,
			ss.AchievedAmount, ss.DurationMinutes, ss.PomoCount, ss.Note, ss.CreatedAt, ss.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importWordBookSessions(sessions []models.WordBookStudySession) error {
	for _, ws := range sessions {
		_, err := s.db.Exec(`
			INSERT INTO wordbook_study_sessions (id, user_id, wordbook_id, started_at, ended_at,
				start_hard_count, start_normal_count, start_easy_count,
				end_hard_count, end_normal_count, end_easy_count, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			ws.ID, ws.UserID, ws.WordBookID, ws.StartedAt, ws.EndedAt,
			ws.StartCounts.Hard, ws.StartCounts.Normal, ws.StartCounts.Easy,
			ws.EndCounts.Hard, ws.EndCounts.Normal, ws.EndCounts.Easy, ws.CreatedAt, ws.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importSchedules(schedules []models.Schedule) error {
	for _, sc := range schedules {
		_, err := s.db.Exec(`
			INSERT INTO schedules (id, user_id, title, description, start_time, end_time,
				is_completed, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			sc.ID, sc.UserID, sc.Title, sc.Description, sc.StartTime, sc.EndTime,
			sc.IsCompleted, sc.CreatedAt, sc.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importReminders(reminders []models.Reminder) error {
	for _, rm := range reminders {
		_, err := s.db.Exec(`
			INSERT INTO reminders (id, user_id, schedule_id, message, notification_time,
				sent_at, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			rm.ID, rm.UserID, rm.ScheduleID, rm.Message, rm.NotificationTime,
			rm.SentAt, rm.CreatedAt, rm.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importWeekly(backup *BackupData) error {
	for _, b := range backup.CardBaselines {
		_, err := s.db.Exec(`
			INSERT INTO weekly_card_baselines (id, user_id, year, month, week_number,
				total_count, hard_count, normal_count, easy_count, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, b.Year, b.Month, b.WeekNumber,
			b.TotalCount, b.Counts.Hard, b.Counts.Normal, b.Counts.Easy, b.CreatedAt)
		if err != nil {
			return err
		}
	}
	for _, b := range backup.GoalBaselines {
		_, err := s.db.Exec(`
			INSERT INTO weekly_goal_baselines (id, user_id, goal_id, year, month, week_number,
				start_amount, target_unit, title, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			b.ID, b.UserID, b.GoalID, b.Year, b.Month, b.WeekNumber,
			b.StartAmount, b.TargetUnit, b.Title, b.CreatedAt)
		if err != nil {
			return err
		}
	}
	for _, st := range backup.WeeklyStats {
		_, err := s.db.Exec(`
			INSERT INTO weekly_stats (id, user_id, year, month, week_number,
				achievement_rate, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			st.ID, st.UserID, st.Year, st.Month, st.WeekNumber,
			st.AchievementRate, st.CreatedAt, st.UpdatedAt)
		if err != nil {
			return err
		}
	}
	return nil
}

func (s *BackupService) importAppLaunches(launches []models.AppLaunch) error {
	for _, l := range launches {
		_, err := s.db.Exec(`INSERT INTO app_launches (id, user_id, launch_time) VALUES (?, ?, ?)`,
			l.ID, l.UserID, l.LaunchTime)
		if err != nil {
			return err
		}
	}
	return nil
}

func scanBackupWordBook(rows *sql.Rows) (*models.WordBook, error) {
	wb := &models.WordBook{}
	var description sql.NullString

	err := rows.Scan(&wb.ID, &wb.UserID, &wb.Title, &description,
		&wb.Hard, &wb.Normal, &wb.Easy, &wb.CreatedAt, &wb.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if description.Valid {
		wb.Description = &description.String
	}
	return wb, nil
}

func difficultyBackupValue(d *models.Difficulty) interface{} {
	if d == nil {
		return nil
	}
	return string(*d)
}
