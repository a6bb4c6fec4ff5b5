package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/validation"
)

// ScheduleService handles calendar entry business logic
type ScheduleService struct {
	scheduleRepo *repository.ScheduleRepository
}

// NewScheduleService creates a new schedule service
func NewScheduleService(scheduleRepo *repository.ScheduleRepository) *ScheduleService {
	return &ScheduleService{scheduleRepo: scheduleRepo}
}

// Create makes a new schedule entry
func (s *ScheduleService) Create(schedule *models.Schedule) (*models.Schedule, error) {
	if err := validation.ValidateTitle(schedule.Title); err != nil {
		return nil, err
	}
	if !schedule.EndTime.After(schedule.StartTime) {
		return nil, validation.ValidationError{Field: "endTime", Message: "end time must be after start time"}
	}

	created, err := s.scheduleRepo.Create(schedule)
	if err != nil {
		return nil, fmt.Errorf("failed to create schedule: %w", err)
	}
	return created, nil
}

// Get retrieves a schedule by ID
func (s *ScheduleService) Get(id int64) (*models.Schedule, error) {
	schedule, err := s.scheduleRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get schedule: %w", err)
	}
	if schedule == nil {
		return nil, fmt.Errorf("%w: schedule %d", ErrNotFound, id)
	}
	return schedule, nil
}

// ListByUser retrieves a user's schedules in start-time order
func (s *ScheduleService) ListByUser(userID int64) ([]models.Schedule, error) {
	schedules, err := s.scheduleRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// ListByUserInRange retrieves schedules overlapping a time range
func (s *ScheduleService) ListByUserInRange(userID int64, start, end time.Time) ([]models.Schedule, error) {
	schedules, err := s.scheduleRepo.ListByUserInRange(userID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedules: %w", err)
	}
	return schedules, nil
}

// Update applies a partial update
func (s *ScheduleService) Update(id int64, patch models.ScheduleUpdate) (*models.Schedule, error) {
	schedule, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validation.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	schedule.ApplyUpdate(patch)

	if !schedule.EndTime.After(schedule.StartTime) {
		return nil, validation.ValidationError{Field: "endTime", Message: "end time must be after start time"}
	}

	if err := s.scheduleRepo.Update(schedule); err != nil {
		return nil, fmt.Errorf("failed to update schedule: %w", err)
	}
	return s.Get(id)
}

// Delete removes a schedule
func (s *ScheduleService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.scheduleRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete schedule: %w", err)
	}
	return nil
}
