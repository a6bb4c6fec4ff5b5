package service

import (
	"testing"
	"time"

	"github.com/QyongGin/learnkit/internal/repository"
)

func TestPeakHoursUsesRecentWindow(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	launchRepo := repository.NewAppLaunchRepository(db)
	svc := NewAppLaunchService(launchRepo, repository.NewUserRepository(db))

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)

	// Old launches pile up at 9am but fall outside the 30-day window
	for i := 0; i < 5; i++ {
		old := now.AddDate(0, 0, -40).Add(time.Duration(i) * time.Minute)
		if _, err := launchRepo.Create(user.ID, time.Date(old.Year(), old.Month(), old.Day(), 9, old.Minute(), 0, 0, time.UTC)); err != nil {
			t.Fatalf("Failed to record old launch: %v", err)
		}
	}

	// Recent launches: two at 8pm, one at 7am
	recent := []time.Time{
		now.AddDate(0, 0, -1).Add(8 * time.Hour),  // 20:00
		now.AddDate(0, 0, -2).Add(8 * time.Hour),  // 20:00
		now.AddDate(0, 0, -3).Add(-5 * time.Hour), // 07:00
	}
	for _, lt := range recent {
		if _, err := launchRepo.Create(user.ID, lt); err != nil {
			t.Fatalf("Failed to record launch: %v", err)
		}
	}

	report, err := svc.PeakHours(user.ID, now)
	if err != nil {
		t.Fatalf("PeakHours failed: %v", err)
	}

	if report.PeakHour != 20 {
		t.Errorf("Expected peak hour 20, got %d", report.PeakHour)
	}
	if report.LaunchCount != 2 {
		t.Errorf("Expected launch count 2 at peak, got %d", report.LaunchCount)
	}

	want := time.Date(2026, time.August, 29, 19, 0, 0, 0, time.UTC)
	if !report.SuggestedReminderTime.Equal(want) {
		t.Errorf("Expected suggested reminder at %v, got %v", want, report.SuggestedReminderTime)
	}

	// The out-of-window 9am launches must not leak into the histogram
	for _, hc := range report.Hours {
		if hc.Hour == 9 && hc.Count != 0 {
			t.Errorf("Expected 0 launches counted at hour 9, got %d", hc.Count)
		}
	}
}

func TestPeakHoursDefaultsWithoutData(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	svc := NewAppLaunchService(repository.NewAppLaunchRepository(db), repository.NewUserRepository(db))

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	report, err := svc.PeakHours(user.ID, now)
	if err != nil {
		t.Fatalf("PeakHours failed: %v", err)
	}

	if report.PeakHour != 19 {
		t.Errorf("Expected default peak hour 19, got %d", report.PeakHour)
	}
	if report.LaunchCount != 0 {
		t.Errorf("Expected launch count 0, got %d", report.LaunchCount)
	}

	want := time.Date(2026, time.August, 29, 18, 0, 0, 0, time.UTC)
	if !report.SuggestedReminderTime.Equal(want) {
		t.Errorf("Expected suggested reminder at %v, got %v", want, report.SuggestedReminderTime)
	}
}

func TestPeakHoursWrapsMidnightPeak(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	launchRepo := repository.NewAppLaunchRepository(db)
	svc := NewAppLaunchService(launchRepo, repository.NewUserRepository(db))

	now := time.Date(2026, time.August, 29, 12, 0, 0, 0, time.UTC)
	for i := 1; i <= 2; i++ {
		lt := time.Date(2026, time.August, 29-i, 0, 30, 0, 0, time.UTC)
		if _, err := launchRepo.Create(user.ID, lt); err != nil {
			t.Fatalf("Failed to record launch: %v", err)
		}
	}

	report, err := svc.PeakHours(user.ID, now)
	if err != nil {
		t.Fatalf("PeakHours failed: %v", err)
	}

	if report.PeakHour != 0 {
		t.Errorf("Expected peak hour 0, got %d", report.PeakHour)
	}
	if got := report.SuggestedReminderTime.Hour(); got != 23 {
		t.Errorf("Expected suggested reminder hour 23, got %d", got)
	}
}
