package service

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
)

func openTestDB(t *testing.T) *database.DB {
	t.Helper()

	db, err := database.Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

func createTestUser(t *testing.T, db *database.DB) *models.User {
	t.Helper()

	user, err := repository.NewUserRepository(db).Create("test@example.com", "hashedpass", "Tester")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}
	return user
}

func TestStudySessionLifecycle(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	goalRepo := repository.NewGoalRepository(db)
	sessionService := NewStudySessionService(db, repository.NewGoalStudySessionRepository(db), goalRepo)

	goal, err := goalRepo.Create(&models.Goal{
		UserID:            user.ID,
		Title:             "Read a textbook",
		TotalTargetAmount: 100,
		TargetUnit:        "pages",
	})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	session, err := sessionService.Start(user.ID, &goal.ID)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if session.EndedAt != nil {
		t.Fatal("Expected new session to be active")
	}

	// A second start while one is active must conflict
	if _, err := sessionService.Start(user.ID, &goal.ID); !errors.Is(err, ErrActiveSessionExists) {
		t.Fatalf("Expected ErrActiveSessionExists, got %v", err)
	}

	active, err := sessionService.GetActive(user.ID)
	if err != nil {
		t.Fatalf("Failed to get active session: %v", err)
	}
	if active.ID != session.ID {
		t.Fatalf("Expected active session %d, got %d", session.ID, active.ID)
	}

	ended, err := sessionService.End(session.ID, 40, 3, "good focus")
	if err != nil {
		t.Fatalf("Failed to end session: %v", err)
	}
	if ended.EndedAt == nil {
		t.Fatal("Expected session to be ended")
	}
	if ended.DurationMinutes != 3*models.MinutesPerPomo {
		t.Errorf("Expected duration %d, got %d", 3*models.MinutesPerPomo, ended.DurationMinutes)
	}

	// Goal progress advanced in the same transaction
	updatedGoal, err := goalRepo.GetByID(goal.ID)
	if err != nil {
		t.Fatalf("Failed to reload goal: %v", err)
	}
	if updatedGoal.CurrentProgress != 40 {
		t.Errorf("Expected goal progress 40, got %d", updatedGoal.CurrentProgress)
	}
	if updatedGoal.IsCompleted {
		t.Error("Goal should not be completed at 40/100")
	}

	// Ending twice must conflict
	if _, err := sessionService.End(session.ID, 0, 0, ""); !errors.Is(err, models.ErrSessionAlreadyEnded) {
		t.Fatalf("Expected ErrSessionAlreadyEnded, got %v", err)
	}

	// A new session can start once the previous one ended
	if _, err := sessionService.Start(user.ID, &goal.ID); err != nil {
		t.Fatalf("Failed to start session after ending: %v", err)
	}
}

func TestWordBookSessionSnapshotsAndResets(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	wordBookRepo := repository.NewWordBookRepository(db)
	cardRepo := repository.NewCardRepository(db)
	sessionService := NewWordBookSessionService(db, repository.NewWordBookSessionRepository(db), cardRepo, wordBookRepo)
	cardService := NewCardService(cardRepo, wordBookRepo, repository.NewUserRepository(db))

	wb, err := wordBookRepo.Create(user.ID, "Spanish", nil, models.DefaultRatios)
	if err != nil {
		t.Fatalf("Failed to create word book: %v", err)
	}

	var cards []*models.Card
	for _, front := range []string{"perro", "gato", "pan"} {
		card, err := cardRepo.Create(wb.ID, front, "translation")
		if err != nil {
			t.Fatalf("Failed to create card: %v", err)
		}
		cards = append(cards, card)
	}

	// Grade one card hard so it has a non-zero priority and a difficulty
	if _, err := cardService.Review(cards[0].ID, "HARD"); err != nil {
		t.Fatalf("Failed to review card: %v", err)
	}

	session, err := sessionService.Start(user.ID, wb.ID)
	if err != nil {
		t.Fatalf("Failed to start session: %v", err)
	}
	if session.StartCounts.Hard != 1 {
		t.Errorf("Expected start snapshot with 1 hard card, got %d", session.StartCounts.Hard)
	}

	// Starting the session re-baselines every card's priority to zero
	for _, card := range cards {
		got, err := cardRepo.GetByID(card.ID)
		if err != nil {
			t.Fatalf("Failed to reload card: %v", err)
		}
		if got.ReviewPriority != 0 {
			t.Errorf("Card %d: expected priority 0 after session start, got %d", card.ID, got.ReviewPriority)
		}
	}

	// Improve the hard card to easy before ending
	if _, err := cardService.Review(cards[0].ID, "EASY"); err != nil {
		t.Fatalf("Failed to re-review card: %v", err)
	}

	ended, err := sessionService.End(session.ID)
	if err != nil {
		t.Fatalf("Failed to end session: %v", err)
	}
	if ended.EndCounts.Easy != 1 || ended.EndCounts.Hard != 0 {
		t.Errorf("Expected end snapshot with 1 easy and 0 hard cards, got %+v", ended.EndCounts)
	}

	// The close committed: the stored row carries the end time and the
	// same snapshot that was counted
	stored, err := repository.NewWordBookSessionRepository(db).GetByID(session.ID)
	if err != nil {
		t.Fatalf("Failed to reload session: %v", err)
	}
	if stored.EndedAt == nil {
		t.Fatal("Expected stored session to be ended")
	}
	if stored.EndCounts != ended.EndCounts {
		t.Errorf("Expected stored end counts %+v, got %+v", ended.EndCounts, stored.EndCounts)
	}

	if _, err := sessionService.End(session.ID); !errors.Is(err, models.ErrSessionAlreadyEnded) {
		t.Fatalf("Expected ErrSessionAlreadyEnded, got %v", err)
	}
}

func TestNextDuePrefersLowestPriority(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)
	user := createTestUser(t, db)

	wordBookRepo := repository.NewWordBookRepository(db)
	cardRepo := repository.NewCardRepository(db)
	cardService := NewCardService(cardRepo, wordBookRepo, repository.NewUserRepository(db))

	wb, err := wordBookRepo.Create(user.ID, "French", nil, models.DefaultRatios)
	if err != nil {
		t.Fatalf("Failed to create word book: %v", err)
	}

	first, err := cardRepo.Create(wb.ID, "chien", "dog")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}
	second, err := cardRepo.Create(wb.ID, "chat", "cat")
	if err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	// Both at priority zero: the lower ID wins the tie
	next, err := cardService.NextDue(wb.ID)
	if err != nil {
		t.Fatalf("Failed to get next card: %v", err)
	}
	if next.ID != first.ID {
		t.Errorf("Expected card %d on tie, got %d", first.ID, next.ID)
	}

	// Reviewing the first card pushes it behind the second
	if _, err := cardService.Review(first.ID, "EASY"); err != nil {
		t.Fatalf("Failed to review card: %v", err)
	}

	next, err = cardService.NextDue(wb.ID)
	if err != nil {
		t.Fatalf("Failed to get next card: %v", err)
	}
	if next.ID != second.ID {
		t.Errorf("Expected card %d after review, got %d", second.ID, next.ID)
	}
}
