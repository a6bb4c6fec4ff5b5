package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
)

// StudySessionService handles the pomodoro session lifecycle. The same
// type serves the generic and the goal-linked flavors; each gets its own
// instance over its own table.
type StudySessionService struct {
	db          *database.DB
	sessionRepo *repository.StudySessionRepository
	goalRepo    *repository.GoalRepository
}

// NewStudySessionService creates a session service
func NewStudySessionService(db *database.DB, sessionRepo *repository.StudySessionRepository, goalRepo *repository.GoalRepository) *StudySessionService {
	return &StudySessionService{
		db:          db,
		sessionRepo: sessionRepo,
		goalRepo:    goalRepo,
	}
}

// Start opens a new session. A user can have at most one in-progress
// session per flavor; the check and the insert run in one transaction.
func (s *StudySessionService) Start(userID int64, goalID *int64) (*models.StudySession, error) {
	if goalID != nil {
		goal, err := s.goalRepo.GetByID(*goalID)
		if err != nil {
			return nil, fmt.Errorf("failed to get goal: %w", err)
		}
		if goal == nil {
			return nil, fmt.Errorf("%w: goal %d", ErrNotFound, *goalID)
		}
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.sessionRepo.WithTx(tx)

	active, err := txRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}
	if active != nil {
		return nil, ErrActiveSessionExists
	}

	session, err := txRepo.Create(userID, goalID, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return session, nil
}

// Get retrieves a session by ID
func (s *StudySessionService) Get(id int64) (*models.StudySession, error) {
	session, err := s.sessionRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, id)
	}
	return session, nil
}

// GetActive retrieves the user's in-progress session
func (s *StudySessionService) GetActive(userID int64) (*models.StudySession, error) {
	session, err := s.sessionRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get active session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: no active session", ErrNotFound)
	}
	return session, nil
}

// ListByUser retrieves a user's sessions, newest first
func (s *StudySessionService) ListByUser(userID int64) ([]models.StudySession, error) {
	sessions, err := s.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// SessionStats is the all-time roll-up of one session flavor
type SessionStats struct {
	TotalSessions  int `json:"totalSessions"`
	TotalMinutes   int `json:"totalMinutes"`
	TotalPomoCount int `json:"totalPomoCount"`
}

// Stats computes the all-time totals over a user's sessions
func (s *StudySessionService) Stats(userID int64) (*SessionStats, error) {
	sessions, err := s.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	stats := &SessionStats{}
	for _, session := range sessions {
		stats.TotalSessions++
		stats.TotalMinutes += session.DurationMinutes
		stats.TotalPomoCount += session.PomoCount
	}
	return stats, nil
}

// End closes a session. Duration is derived from the pomodoro count.
// When the session is linked to a goal and work was achieved, the goal's
// progress advances in the same transaction.
func (s *StudySessionService) End(id int64, achievedAmount, pomoCount int, note string) (*models.StudySession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txRepo := s.sessionRepo.WithTx(tx)

	session, err := txRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, id)
	}

	now := time.Now()
	durationMinutes := pomoCount * models.MinutesPerPomo
	if err := session.End(achievedAmount, durationMinutes, pomoCount, note, now); err != nil {
		return nil, err
	}

	if err := txRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if session.GoalID != nil && achievedAmount > 0 {
		txGoalRepo := s.goalRepo.WithTx(tx)
		goal, err := txGoalRepo.GetByID(*session.GoalID)
		if err != nil {
			return nil, fmt.Errorf("failed to get goal: %w", err)
		}
		// The goal may have been deleted mid-session; the session still ends
		if goal != nil {
			goal.AddProgress(achievedAmount, now)
			if err := txGoalRepo.Update(goal); err != nil {
				return nil, fmt.Errorf("failed to save goal progress: %w", err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return session, nil
}

// UpdatePomoCount records mid-session pomodoro progress
func (s *StudySessionService) UpdatePomoCount(id int64, pomoCount int) (*models.StudySession, error) {
	session, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := session.UpdatePomoCount(pomoCount); err != nil {
		return nil, err
	}

	if err := s.sessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	return session, nil
}

// Delete removes a session
func (s *StudySessionService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
