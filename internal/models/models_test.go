package models

import (
	"errors"
	"testing"
	"time"
)

func TestFrequencyRatiosValidate(t *testing.T) {
	tests := []struct {
		name    string
		ratios  FrequencyRatios
		wantErr bool
	}{
		{"defaults", DefaultRatios, false},
		{"minimum legal", FrequencyRatios{Hard: 3, Normal: 2, Easy: 1}, false},
		{"maximum legal", FrequencyRatios{Hard: 20, Normal: 19, Easy: 18}, false},
		{"hard below floor", FrequencyRatios{Hard: 2, Normal: 2, Easy: 1}, true},
		{"normal below floor", FrequencyRatios{Hard: 5, Normal: 1, Easy: 1}, true},
		{"easy below floor", FrequencyRatios{Hard: 5, Normal: 3, Easy: 0}, true},
		{"above ceiling", FrequencyRatios{Hard: 21, Normal: 3, Easy: 1}, true},
		{"hard equals normal", FrequencyRatios{Hard: 3, Normal: 3, Easy: 1}, true},
		{"normal equals easy", FrequencyRatios{Hard: 5, Normal: 2, Easy: 2}, true},
		{"inverted ordering", FrequencyRatios{Hard: 3, Normal: 5, Easy: 1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.ratios.Validate()
			if tt.wantErr && err == nil {
				t.Errorf("Validate(%+v) = nil, want error", tt.ratios)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Validate(%+v) = %v, want nil", tt.ratios, err)
			}
			if tt.wantErr && err != nil && !errors.Is(err, ErrInvalidFrequencyRatios) {
				t.Errorf("Validate(%+v) = %v, want ErrInvalidFrequencyRatios", tt.ratios, err)
			}
		})
	}
}

func TestWordBookApplyUpdate(t *testing.T) {
	intPtr := func(v int) *int { return &v }
	strPtr := func(v string) *string { return &v }

	t.Run("partial ratio triple is ignored", func(t *testing.T) {
		wb := WordBook{FrequencyRatios: DefaultRatios}
		if err := wb.ApplyUpdate(WordBookUpdate{HardRatio: intPtr(10)}); err != nil {
			t.Fatalf("ApplyUpdate() = %v, want nil", err)
		}
		if wb.FrequencyRatios != DefaultRatios {
			t.Errorf("ratios changed to %+v on partial update", wb.FrequencyRatios)
		}
	})

	t.Run("complete invalid triple rejected whole", func(t *testing.T) {
		wb := WordBook{Title: "irregular verbs", FrequencyRatios: DefaultRatios}
		err := wb.ApplyUpdate(WordBookUpdate{
			Title:       strPtr("phrasal verbs"),
			HardRatio:   intPtr(1),
			NormalRatio: intPtr(2),
			EasyRatio:   intPtr(3),
		})
		if !errors.Is(err, ErrInvalidFrequencyRatios) {
			t.Fatalf("ApplyUpdate() = %v, want ErrInvalidFrequencyRatios", err)
		}
		if wb.Title != "irregular verbs" {
			t.Errorf("title = %q, want unchanged on rejected update", wb.Title)
		}
		if wb.FrequencyRatios != DefaultRatios {
			t.Errorf("ratios = %+v, want unchanged on rejected update", wb.FrequencyRatios)
		}
	})

	t.Run("complete valid triple applied", func(t *testing.T) {
		wb := WordBook{FrequencyRatios: DefaultRatios}
		err := wb.ApplyUpdate(WordBookUpdate{
			HardRatio:   intPtr(10),
			NormalRatio: intPtr(5),
			EasyRatio:   intPtr(2),
		})
		if err != nil {
			t.Fatalf("ApplyUpdate() = %v, want nil", err)
		}
		want := FrequencyRatios{Hard: 10, Normal: 5, Easy: 2}
		if wb.FrequencyRatios != want {
			t.Errorf("ratios = %+v, want %+v", wb.FrequencyRatios, want)
		}
	})
}

func TestGoalAddProgress(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)

	g := Goal{TotalTargetAmount: 100}

	g.AddProgress(40, now)
	if g.CurrentProgress != 40 || g.IsCompleted {
		t.Fatalf("after +40: progress=%d completed=%v, want 40 false", g.CurrentProgress, g.IsCompleted)
	}

	g.AddProgress(70, now)
	if g.CurrentProgress != 110 || !g.IsCompleted {
		t.Fatalf("after +70: progress=%d completed=%v, want 110 true", g.CurrentProgress, g.IsCompleted)
	}
	if g.CompletedAt == nil || !g.CompletedAt.Equal(now) {
		t.Fatalf("completedAt = %v, want %v", g.CompletedAt, now)
	}

	later := now.Add(time.Hour)
	g.AddProgress(10, later)
	if g.CurrentProgress != 120 || !g.IsCompleted {
		t.Fatalf("after +10: progress=%d completed=%v, want 120 true", g.CurrentProgress, g.IsCompleted)
	}
	if !g.CompletedAt.Equal(now) {
		t.Errorf("completedAt moved to %v, want to stay latched at %v", g.CompletedAt, now)
	}
}

func TestStudySessionEnd(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)

	t.Run("end once", func(t *testing.T) {
		s := StudySession{StartedAt: start}
		if err := s.End(3, 50, 2, "grammar drills", end); err != nil {
			t.Fatalf("End() = %v, want nil", err)
		}
		if s.IsInProgress() {
			t.Error("session still in progress after End")
		}
		if s.AchievedAmount != 3 || s.DurationMinutes != 50 || s.PomoCount != 2 {
			t.Errorf("ended session = %+v", s)
		}
	})

	t.Run("end twice", func(t *testing.T) {
		s := StudySession{StartedAt: start}
		if err := s.End(1, 25, 1, "", end); err != nil {
			t.Fatalf("first End() = %v, want nil", err)
		}
		if err := s.End(2, 50, 2, "", end); !errors.Is(err, ErrSessionAlreadyEnded) {
			t.Errorf("second End() = %v, want ErrSessionAlreadyEnded", err)
		}
	})

	t.Run("pomo update after end", func(t *testing.T) {
		s := StudySession{StartedAt: start}
		if err := s.End(0, 25, 1, "", end); err != nil {
			t.Fatalf("End() = %v, want nil", err)
		}
		if err := s.UpdatePomoCount(4); !errors.Is(err, ErrSessionAlreadyEnded) {
			t.Errorf("UpdatePomoCount() = %v, want ErrSessionAlreadyEnded", err)
		}
	})

	t.Run("pomo update recomputes duration", func(t *testing.T) {
		s := StudySession{StartedAt: start}
		if err := s.UpdatePomoCount(4); err != nil {
			t.Fatalf("UpdatePomoCount() = %v, want nil", err)
		}
		if s.DurationMinutes != 4*MinutesPerPomo {
			t.Errorf("durationMinutes = %d, want %d", s.DurationMinutes, 4*MinutesPerPomo)
		}
	})
}

func TestWordBookStudySessionDuration(t *testing.T) {
	start := time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC)

	s := WordBookStudySession{
		StartedAt:   start,
		StartCounts: DifficultyCount{Hard: 8, Normal: 5, Easy: 2},
	}
	if got := s.DurationMinutes(); got != 0 {
		t.Errorf("in-progress DurationMinutes() = %d, want 0", got)
	}

	endCounts := DifficultyCount{Hard: 4, Normal: 7, Easy: 4}
	if err := s.End(endCounts, start.Add(42*time.Minute)); err != nil {
		t.Fatalf("End() = %v, want nil", err)
	}
	if got := s.DurationMinutes(); got != 42 {
		t.Errorf("DurationMinutes() = %d, want 42", got)
	}
	if err := s.End(endCounts, start.Add(time.Hour)); !errors.Is(err, ErrSessionAlreadyEnded) {
		t.Errorf("second End() = %v, want ErrSessionAlreadyEnded", err)
	}

	improved := s.StartCounts.Sub(s.EndCounts)
	if improved.Hard != 4 {
		t.Errorf("hard improvement = %d, want 4", improved.Hard)
	}
}
