package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
)

// WordBookSessionService handles word-book review sessions. Starting a
// session snapshots the book's difficulty distribution and re-baselines
// every card's priority so ordering reflects the book's current state.
type WordBookSessionService struct {
	db           *database.DB
	sessionRepo  *repository.WordBookSessionRepository
	cardRepo     *repository.CardRepository
	wordBookRepo *repository.WordBookRepository
}

// NewWordBookSessionService creates a word-book session service
func NewWordBookSessionService(db *database.DB, sessionRepo *repository.WordBookSessionRepository, cardRepo *repository.CardRepository, wordBookRepo *repository.WordBookRepository) *WordBookSessionService {
	return &WordBookSessionService{
		db:           db,
		sessionRepo:  sessionRepo,
		cardRepo:     cardRepo,
		wordBookRepo: wordBookRepo,
	}
}

// Start opens a review session for a word book
func (s *WordBookSessionService) Start(userID, wordBookID int64) (*models.WordBookStudySession, error) {
	wb, err := s.wordBookRepo.GetByID(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, wordBookID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txSessionRepo := s.sessionRepo.WithTx(tx)
	txCardRepo := s.cardRepo.WithTx(tx)

	active, err := txSessionRepo.GetActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to check active session: %w", err)
	}
	if active != nil {
		return nil, ErrActiveSessionExists
	}

	counts, err := txCardRepo.CountByDifficultyForWordBook(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	if err := txCardRepo.ResetPriorities(wordBookID, 0); err != nil {
		return nil, fmt.Errorf("failed to reset priorities: %w", err)
	}

	session, err := txSessionRepo.Create(userID, wordBookID, time.Now(), counts)
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return session, nil
}

// Get retrieves a session by ID
func (s *WordBookSessionService) Get(id int64) (*models.WordBookStudySession, error) {
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
func (s *WordBookSessionService) GetActive(userID int64) (*models.WordBookStudySession, error) {
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
func (s *WordBookSessionService) ListByUser(userID int64) ([]models.WordBookStudySession, error) {
	sessions, err := s.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	return sessions, nil
}

// Stats computes the all-time totals over a user's review sessions
func (s *WordBookSessionService) Stats(userID int64) (*SessionStats, error) {
	sessions, err := s.sessionRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}

	stats := &SessionStats{}
	for _, session := range sessions {
		stats.TotalSessions++
		stats.TotalMinutes += session.DurationMinutes()
	}
	return stats, nil
}

// End closes a session with a fresh difficulty snapshot. The snapshot
// and the state transition commit together so the stored end counts
// match what was counted.
func (s *WordBookSessionService) End(id int64) (*models.WordBookStudySession, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	txSessionRepo := s.sessionRepo.WithTx(tx)
	txCardRepo := s.cardRepo.WithTx(tx)

	session, err := txSessionRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: session %d", ErrNotFound, id)
	}

	counts, err := txCardRepo.CountByDifficultyForWordBook(session.WordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	if err := session.End(counts, time.Now()); err != nil {
		return nil, err
	}

	if err := txSessionRepo.Update(session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit: %w", err)
	}
	return session, nil
}

// Delete removes a session
func (s *WordBookSessionService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.sessionRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}
