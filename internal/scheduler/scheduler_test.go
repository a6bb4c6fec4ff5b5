package scheduler

import (
	"testing"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
)

func TestIntervals(t *testing.T) {
	s := New(models.FrequencyRatios{Hard: 6, Normal: 3, Easy: 1}, 10)

	if got := s.BaseScore(); got != 10000 {
		t.Fatalf("BaseScore() = %d, want 10000", got)
	}

	tests := []struct {
		difficulty models.Difficulty
		want       int64
	}{
		{models.DifficultyHard, 1666},
		{models.DifficultyNormal, 3333},
		{models.DifficultyEasy, 10000},
	}
	for _, tt := range tests {
		if got := s.Interval(tt.difficulty); got != tt.want {
			t.Errorf("Interval(%s) = %d, want %d", tt.difficulty, got, tt.want)
		}
	}
}

func TestIntervalOrdering(t *testing.T) {
	ratioSets := []models.FrequencyRatios{
		{Hard: 3, Normal: 2, Easy: 1},
		{Hard: 6, Normal: 3, Easy: 1},
		{Hard: 20, Normal: 19, Easy: 18},
		{Hard: 10, Normal: 5, Easy: 2},
	}
	for _, ratios := range ratioSets {
		for _, totalCards := range []int{1, 10, 500} {
			s := New(ratios, totalCards)
			hard := s.Interval(models.DifficultyHard)
			normal := s.Interval(models.DifficultyNormal)
			easy := s.Interval(models.DifficultyEasy)
			if !(hard < normal && normal < easy) {
				t.Errorf("ratios %+v, %d cards: intervals %d/%d/%d not strictly ordered",
					ratios, totalCards, hard, normal, easy)
			}
		}
	}
}

func TestReview(t *testing.T) {
	now := time.Date(2026, 3, 9, 10, 0, 0, 0, time.UTC)
	s := New(models.DefaultRatios, 10)

	hardCard := &models.Card{ID: 1}
	s.Review(hardCard, models.DifficultyHard, now)
	s.Review(hardCard, models.DifficultyHard, now.Add(time.Minute))

	easyCard := &models.Card{ID: 2}
	s.Review(easyCard, models.DifficultyEasy, now)

	if hardCard.ReviewPriority != 3332 {
		t.Errorf("hard card priority = %d, want 3332", hardCard.ReviewPriority)
	}
	if easyCard.ReviewPriority != 10000 {
		t.Errorf("easy card priority = %d, want 10000", easyCard.ReviewPriority)
	}
	if hardCard.ReviewPriority >= easyCard.ReviewPriority {
		t.Error("twice-hard card should stay ahead of once-easy card")
	}

	if hardCard.ViewCount != 2 {
		t.Errorf("viewCount = %d, want 2", hardCard.ViewCount)
	}
	if hardCard.Difficulty == nil || *hardCard.Difficulty != models.DifficultyHard {
		t.Errorf("difficulty = %v, want HARD", hardCard.Difficulty)
	}
	if hardCard.LastReviewedAt == nil || !hardCard.LastReviewedAt.Equal(now.Add(time.Minute)) {
		t.Errorf("lastReviewedAt = %v, want %v", hardCard.LastReviewedAt, now.Add(time.Minute))
	}
}

func TestNextDue(t *testing.T) {
	tests := []struct {
		name   string
		cards  []*models.Card
		wantID int64
	}{
		{
			"lowest priority wins",
			[]*models.Card{
				{ID: 1, ReviewPriority: 5000},
				{ID: 2, ReviewPriority: 1666},
				{ID: 3, ReviewPriority: 10000},
			},
			2,
		},
		{
			"tie broken by id ascending",
			[]*models.Card{
				{ID: 7, ReviewPriority: 0},
				{ID: 3, ReviewPriority: 0},
				{ID: 5, ReviewPriority: 0},
			},
			3,
		},
		{
			"single card",
			[]*models.Card{{ID: 9, ReviewPriority: 42}},
			9,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NextDue(tt.cards)
			if got == nil || got.ID != tt.wantID {
				t.Errorf("NextDue() = %+v, want id %d", got, tt.wantID)
			}
		})
	}

	t.Run("empty book", func(t *testing.T) {
		if got := NextDue(nil); got != nil {
			t.Errorf("NextDue(nil) = %+v, want nil", got)
		}
	})
}

func TestResetPriority(t *testing.T) {
	card := &models.Card{ID: 1, ReviewPriority: 7777, ViewCount: 3}
	ResetPriority(card, 0)
	if card.ReviewPriority != 0 {
		t.Errorf("priority = %d, want 0", card.ReviewPriority)
	}
	if card.ViewCount != 3 {
		t.Errorf("viewCount = %d, reset must not touch it", card.ViewCount)
	}
}
