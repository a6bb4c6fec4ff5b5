package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
)

// HourCount is one hour-of-day bucket in the launch histogram
type HourCount struct {
	Hour  int `json:"hour"`
	Count int `json:"count"`
}

// Peak-hours analysis looks back this many days and falls back to 7pm
// when the window holds no launches.
const (
	peakHoursWindowDays = 30
	defaultPeakHour     = 19
)

// PeakHoursReport is the usage-pattern answer for one user: the busiest
// launch hour over the recent window and a reminder time one hour
// before it.
type PeakHoursReport struct {
	PeakHour              int         `json:"peakHour"`
	LaunchCount           int         `json:"launchCount"`
	SuggestedReminderTime time.Time   `json:"suggestedReminderTime"`
	Hours                 []HourCount `json:"hours"`
}

// AppLaunchService records client launches and derives usage patterns
type AppLaunchService struct {
	launchRepo *repository.AppLaunchRepository
	userRepo   *repository.UserRepository
}

// NewAppLaunchService creates a new app launch service
func NewAppLaunchService(launchRepo *repository.AppLaunchRepository, userRepo *repository.UserRepository) *AppLaunchService {
	return &AppLaunchService{
		launchRepo: launchRepo,
		userRepo:   userRepo,
	}
}

// Record logs one app launch for a user
func (s *AppLaunchService) Record(userID int64, launchTime time.Time) (*models.AppLaunch, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	launch, err := s.launchRepo.Create(userID, launchTime)
	if err != nil {
		return nil, fmt.Errorf("failed to record launch: %w", err)
	}
	return launch, nil
}

// PeakHours analyzes the user's launches over the last 30 days and
// picks the busiest hour of day. With no launches in the window the
// peak falls back to 7pm. The suggested reminder fires one hour before
// the peak, on today's date, wrapping midnight to 11pm.
func (s *AppLaunchService) PeakHours(userID int64, now time.Time) (*PeakHoursReport, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	since := now.AddDate(0, 0, -peakHoursWindowDays)
	launches, err := s.launchRepo.ListByUserInRange(userID, since, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list launches: %w", err)
	}

	var buckets [24]int
	for _, l := range launches {
		buckets[l.LaunchTime.Hour()]++
	}

	peakHour := defaultPeakHour
	if len(launches) > 0 {
		peakHour = 0
		for h := 1; h < 24; h++ {
			if buckets[h] > buckets[peakHour] {
				peakHour = h
			}
		}
	}

	suggestedHour := peakHour - 1
	if suggestedHour < 0 {
		suggestedHour = 23
	}

	hours := make([]HourCount, 24)
	for h := 0; h < 24; h++ {
		hours[h] = HourCount{Hour: h, Count: buckets[h]}
	}
	// Stable so equal-count hours stay in clock order
	sort.SliceStable(hours, func(i, j int) bool {
		return hours[i].Count > hours[j].Count
	})

	return &PeakHoursReport{
		PeakHour:              peakHour,
		LaunchCount:           buckets[peakHour],
		SuggestedReminderTime: time.Date(now.Year(), now.Month(), now.Day(), suggestedHour, 0, 0, 0, now.Location()),
		Hours:                 hours,
	}, nil
}
