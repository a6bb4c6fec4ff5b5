package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/validation"
)

// ReminderService handles reminder business logic and dispatching
type ReminderService struct {
	reminderRepo *repository.ReminderRepository
	scheduleRepo *repository.ScheduleRepository
	userRepo     *repository.UserRepository
	email        *EmailService
}

// NewReminderService creates a new reminder service
func NewReminderService(reminderRepo *repository.ReminderRepository, scheduleRepo *repository.ScheduleRepository, userRepo *repository.UserRepository, email *EmailService) *ReminderService {
	return &ReminderService{
		reminderRepo: reminderRepo,
		scheduleRepo: scheduleRepo,
		userRepo:     userRepo,
		email:        email,
	}
}

// Create makes a new reminder, optionally linked to a schedule
func (s *ReminderService) Create(reminder *models.Reminder) (*models.Reminder, error) {
	if reminder.Message == "" {
		return nil, validation.ValidationError{Field: "message", Message: "message is required"}
	}
	if reminder.ScheduleID != nil {
		schedule, err := s.scheduleRepo.GetByID(*reminder.ScheduleID)
		if err != nil {
			return nil, fmt.Errorf("failed to get schedule: %w", err)
		}
		if schedule == nil {
			return nil, fmt.Errorf("%w: schedule %d", ErrNotFound, *reminder.ScheduleID)
		}
	}

	created, err := s.reminderRepo.Create(reminder)
	if err != nil {
		return nil, fmt.Errorf("failed to create reminder: %w", err)
	}
	return created, nil
}

// Get retrieves a reminder by ID
func (s *ReminderService) Get(id int64) (*models.Reminder, error) {
	reminder, err := s.reminderRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get reminder: %w", err)
	}
	if reminder == nil {
		return nil, fmt.Errorf("%w: reminder %d", ErrNotFound, id)
	}
	return reminder, nil
}

// ListByUser retrieves a user's reminders in delivery order
func (s *ReminderService) ListByUser(userID int64) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reminders: %w", err)
	}
	return reminders, nil
}

// ListUpcoming retrieves a user's pending future reminders
func (s *ReminderService) ListUpcoming(userID int64, now time.Time) ([]models.Reminder, error) {
	reminders, err := s.reminderRepo.ListUpcomingByUser(userID, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list upcoming reminders: %w", err)
	}
	return reminders, nil
}

// Update applies a partial update
func (s *ReminderService) Update(id int64, patch models.ReminderUpdate) (*models.Reminder, error) {
	reminder, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	reminder.ApplyUpdate(patch)

	if err := s.reminderRepo.Update(reminder); err != nil {
		return nil, fmt.Errorf("failed to update reminder: %w", err)
	}
	return s.Get(id)
}

// Delete removes a reminder
func (s *ReminderService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.reminderRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete reminder: %w", err)
	}
	return nil
}

// DispatchDue delivers every reminder whose time has come and marks it
// sent. Called periodically by the dispatcher loop. Returns the number
// of reminders delivered.
func (s *ReminderService) DispatchDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.reminderRepo.ListDueUnsent(now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due reminders: %w", err)
	}

	sent := 0
	for _, reminder := range due {
		user, err := s.userRepo.GetByID(reminder.UserID)
		if err != nil {
			log.Printf("reminder %d: failed to load user %d: %v", reminder.ID, reminder.UserID, err)
			continue
		}
		if user == nil {
			// Owner deleted; retire the reminder so it stops matching
			_ = s.reminderRepo.MarkSent(reminder.ID, now)
			continue
		}

		if s.email != nil && s.email.IsEnabled() {
			if err := s.email.SendReminderEmail(ctx, user.Email, user.Nickname, reminder.Message); err != nil {
				// Leave unsent so the next tick retries
				log.Printf("reminder %d: failed to send to %s: %v", reminder.ID, user.Email, err)
				continue
			}
		} else {
			log.Printf("Reminder due for %s: %s", user.Email, reminder.Message)
		}

		if err := s.reminderRepo.MarkSent(reminder.ID, now); err != nil {
			log.Printf("reminder %d: failed to mark sent: %v", reminder.ID, err)
			continue
		}
		sent++
	}
	return sent, nil
}
