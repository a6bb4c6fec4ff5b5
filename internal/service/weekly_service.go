package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/stats"
)

// CardImprovement compares this week's opening card distribution with
// the live one. With no baseline the week-start side is all zero.
type CardImprovement struct {
	WeekStartCounts models.DifficultyCount `json:"weekStartCounts"`
	CurrentCounts   models.DifficultyCount `json:"currentCounts"`
	Delta           models.DifficultyCount `json:"delta"`
}

// GoalProgress compares one goal's progress against its weekly baseline
type GoalProgress struct {
	GoalID      int64  `json:"goalId"`
	Title       string `json:"title"`
	TargetUnit  string `json:"targetUnit"`
	StartAmount int    `json:"startAmount"`
	Current     int    `json:"currentAmount"`
	Change      int    `json:"change"`
	IsCompleted bool   `json:"isCompleted"`
}

// WeeklyStatsReport is the composite live answer to "what changed this
// week".
type WeeklyStatsReport struct {
	Week             models.WeekKey  `json:"week"`
	StudyTimeMinutes int             `json:"studyTimeMinutes"`
	CardImprovement  CardImprovement `json:"cardImprovement"`
	GoalProgress     []GoalProgress  `json:"goalProgress"`
}

// WeeklySummary is the coarser legacy weekly roll-up over generic study
// sessions.
type WeeklySummary struct {
	Week            models.WeekKey `json:"week"`
	TotalMinutes    int            `json:"totalMinutes"`
	TotalPomoCount  int            `json:"totalPomoCount"`
	SessionCount    int            `json:"sessionCount"`
	TotalGoals      int            `json:"totalGoals"`
	CompletedGoals  int            `json:"completedGoals"`
	AchievementRate float64        `json:"achievementRate"`
}

// WeeklyStatsService implements the weekly baseline and stats engine
type WeeklyStatsService struct {
	db              *database.DB
	weeklyRepo      *repository.WeeklyRepository
	cardRepo        *repository.CardRepository
	goalRepo        *repository.GoalRepository
	userRepo        *repository.UserRepository
	goalSessionRepo *repository.StudySessionRepository
	studySessRepo   *repository.StudySessionRepository
	bookSessionRepo *repository.WordBookSessionRepository
}

// NewWeeklyStatsService creates the weekly stats engine
func NewWeeklyStatsService(
	db *database.DB,
	weeklyRepo *repository.WeeklyRepository,
	cardRepo *repository.CardRepository,
	goalRepo *repository.GoalRepository,
	userRepo *repository.UserRepository,
	goalSessionRepo *repository.StudySessionRepository,
	studySessRepo *repository.StudySessionRepository,
	bookSessionRepo *repository.WordBookSessionRepository,
) *WeeklyStatsService {
	return &WeeklyStatsService{
		db:              db,
		weeklyRepo:      weeklyRepo,
		cardRepo:        cardRepo,
		goalRepo:        goalRepo,
		userRepo:        userRepo,
		goalSessionRepo: goalSessionRepo,
		studySessRepo:   studySessRepo,
		bookSessionRepo: bookSessionRepo,
	}
}

func (s *WeeklyStatsService) requireUser(userID int64) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}
	return nil
}

// EnsureBaselines creates this week's snapshots if they do not exist
// yet. The card baseline's existence gates the whole week: when it is
// present the call is a no-op, so retries and double-calls are safe.
func (s *WeeklyStatsService) EnsureBaselines(userID int64, now time.Time) error {
	if err := s.requireUser(userID); err != nil {
		return err
	}

	week := stats.WeekOf(now)

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txWeekly := s.weeklyRepo.WithTx(tx)
	txCards := s.cardRepo.WithTx(tx)
	txGoals := s.goalRepo.WithTx(tx)

	// Existence check and insert share the transaction so concurrent
	// calls cannot both pass the check
	existing, err := txWeekly.GetCardBaseline(userID, week)
	if err != nil {
		return fmt.Errorf("failed to check baseline: %w", err)
	}
	if existing != nil {
		return nil
	}

	total, counts, err := txCards.CountByDifficultyForUser(userID)
	if err != nil {
		return fmt.Errorf("failed to snapshot cards: %w", err)
	}

	cardBaseline := &models.WeeklyCardBaseline{
		UserID:     userID,
		WeekKey:    week,
		TotalCount: total,
		Counts:     counts,
	}
	if err := txWeekly.CreateCardBaseline(cardBaseline); err != nil {
		// A concurrent caller may have won the insert through the
		// UNIQUE(user_id, year, month, week_number) key. The week is
		// baselined either way, so treat that as success.
		tx.Rollback()
		if winner, checkErr := s.weeklyRepo.GetCardBaseline(userID, week); checkErr == nil && winner != nil {
			return nil
		}
		return fmt.Errorf("failed to create card baseline: %w", err)
	}

	goals, err := txGoals.ListByUser(userID)
	if err != nil {
		return fmt.Errorf("failed to list goals: %w", err)
	}
	for _, goal := range goals {
		baseline := &models.WeeklyGoalBaseline{
			UserID:      userID,
			GoalID:      goal.ID,
			WeekKey:     week,
			StartAmount: goal.CurrentProgress,
			TargetUnit:  goal.TargetUnit,
			Title:       goal.Title,
		}
		if err := txWeekly.CreateGoalBaseline(baseline); err != nil {
			return fmt.Errorf("failed to create goal baseline: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// GetWeeklyStats computes the live composite report for the week
// containing now. Read-only: nothing is cached or written.
func (s *WeeklyStatsService) GetWeeklyStats(userID int64, now time.Time) (*WeeklyStatsReport, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	week := stats.WeekOf(now)
	weekStart, weekEnd := stats.Bounds(week, now.Location())

	report := &WeeklyStatsReport{Week: week}

	// Study time: goal sessions count pomodoro minutes, word-book
	// sessions count wall-clock minutes.
	goalSessions, err := s.goalSessionRepo.ListByUserInRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal sessions: %w", err)
	}
	for _, session := range goalSessions {
		report.StudyTimeMinutes += session.DurationMinutes
	}

	bookSessions, err := s.bookSessionRepo.ListByUserInRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list word-book sessions: %w", err)
	}
	for _, session := range bookSessions {
		report.StudyTimeMinutes += session.DurationMinutes()
	}

	// Card improvement against the weekly baseline. A missing baseline
	// reads as all-zero, which over-reports for brand-new users.
	_, currentCounts, err := s.cardRepo.CountByDifficultyForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	var startCounts models.DifficultyCount
	if baseline, err := s.weeklyRepo.GetCardBaseline(userID, week); err != nil {
		return nil, fmt.Errorf("failed to get card baseline: %w", err)
	} else if baseline != nil {
		startCounts = baseline.Counts
	}

	report.CardImprovement = CardImprovement{
		WeekStartCounts: startCounts,
		CurrentCounts:   currentCounts,
		Delta:           currentCounts.Sub(startCounts),
	}

	// Goal progress: baselines joined to still-existing goals. Goals
	// deleted since the snapshot are silently dropped.
	baselines, err := s.weeklyRepo.ListGoalBaselines(userID, week)
	if err != nil {
		return nil, fmt.Errorf("failed to list goal baselines: %w", err)
	}

	if len(baselines) > 0 {
		ids := make([]int64, len(baselines))
		for i, b := range baselines {
			ids[i] = b.GoalID
		}
		goals, err := s.goalRepo.ListByIDs(ids)
		if err != nil {
			return nil, fmt.Errorf("failed to list goals: %w", err)
		}
		byID := make(map[int64]models.Goal, len(goals))
		for _, g := range goals {
			byID[g.ID] = g
		}

		for _, b := range baselines {
			goal, ok := byID[b.GoalID]
			if !ok {
				continue
			}
			report.GoalProgress = append(report.GoalProgress, GoalProgress{
				GoalID:      goal.ID,
				Title:       goal.Title,
				TargetUnit:  goal.TargetUnit,
				StartAmount: b.StartAmount,
				Current:     goal.CurrentProgress,
				Change:      goal.CurrentProgress - b.StartAmount,
				IsCompleted: goal.IsCompleted,
			})
		}
	}

	return report, nil
}

// GetWeeklySummary computes the coarse roll-up over generic study
// sessions and, as a side effect of every read, overwrites the week's
// WeeklyStat row with the freshly computed achievement rate.
func (s *WeeklyStatsService) GetWeeklySummary(userID int64, now time.Time) (*WeeklySummary, error) {
	if err := s.requireUser(userID); err != nil {
		return nil, err
	}

	week := stats.WeekOf(now)
	weekStart, weekEnd := stats.Bounds(week, now.Location())

	summary := &WeeklySummary{Week: week}

	sessions, err := s.studySessRepo.ListByUserInRange(userID, weekStart, weekEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	for _, session := range sessions {
		summary.TotalMinutes += session.DurationMinutes
		summary.TotalPomoCount += session.PomoCount
		summary.SessionCount++
	}

	total, completed, err := s.goalRepo.CountByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count goals: %w", err)
	}
	summary.TotalGoals = total
	summary.CompletedGoals = completed
	if total > 0 {
		summary.AchievementRate = float64(completed) / float64(total)
	}

	if _, err := s.weeklyRepo.UpsertStat(userID, week, summary.AchievementRate); err != nil {
		return nil, fmt.Errorf("failed to upsert weekly stat: %w", err)
	}

	return summary, nil
}
