package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/validation"
)

// GoalService handles goal business logic
type GoalService struct {
	goalRepo *repository.GoalRepository
}

// NewGoalService creates a new goal service
func NewGoalService(goalRepo *repository.GoalRepository) *GoalService {
	return &GoalService{goalRepo: goalRepo}
}

// Create makes a new goal
func (s *GoalService) Create(goal *models.Goal) (*models.Goal, error) {
	if err := validation.ValidateTitle(goal.Title); err != nil {
		return nil, err
	}
	if goal.TotalTargetAmount <= 0 {
		return nil, validation.ValidationError{Field: "totalTargetAmount", Message: "target amount must be positive"}
	}

	created, err := s.goalRepo.Create(goal)
	if err != nil {
		return nil, fmt.Errorf("failed to create goal: %w", err)
	}
	return created, nil
}

// Get retrieves a goal by ID
func (s *GoalService) Get(id int64) (*models.Goal, error) {
	goal, err := s.goalRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get goal: %w", err)
	}
	if goal == nil {
		return nil, fmt.Errorf("%w: goal %d", ErrNotFound, id)
	}
	return goal, nil
}

// ListByUser retrieves a user's goals
func (s *GoalService) ListByUser(userID int64) ([]models.Goal, error) {
	goals, err := s.goalRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list goals: %w", err)
	}
	return goals, nil
}

// ListActiveByUser retrieves a user's not-yet-completed goals
func (s *GoalService) ListActiveByUser(userID int64) ([]models.Goal, error) {
	goals, err := s.goalRepo.ListActiveByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list active goals: %w", err)
	}
	return goals, nil
}

// Update applies a partial update
func (s *GoalService) Update(id int64, patch models.GoalUpdate) (*models.Goal, error) {
	goal, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validation.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	goal.ApplyUpdate(patch)

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to update goal: %w", err)
	}
	return s.Get(id)
}

// AddProgress adds to a goal's progress, latching completion
func (s *GoalService) AddProgress(id int64, amount int) (*models.Goal, error) {
	goal, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	goal.AddProgress(amount, time.Now())

	if err := s.goalRepo.Update(goal); err != nil {
		return nil, fmt.Errorf("failed to save progress: %w", err)
	}
	return s.Get(id)
}

// Delete removes a goal
func (s *GoalService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.goalRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete goal: %w", err)
	}
	return nil
}
