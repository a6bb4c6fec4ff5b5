package service

import (
	"testing"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/stats"
)

func newWeeklyService(t *testing.T) (*WeeklyStatsService, *repository.GoalRepository, *repository.CardRepository, *repository.WordBookRepository, int64) {
	t.Helper()

	db := openTestDB(t)
	user := createTestUser(t, db)

	goalRepo := repository.NewGoalRepository(db)
	cardRepo := repository.NewCardRepository(db)
	wordBookRepo := repository.NewWordBookRepository(db)

	svc := NewWeeklyStatsService(db,
		repository.NewWeeklyRepository(db),
		cardRepo,
		goalRepo,
		repository.NewUserRepository(db),
		repository.NewGoalStudySessionRepository(db),
		repository.NewStudySessionRepository(db),
		repository.NewWordBookSessionRepository(db),
	)
	return svc, goalRepo, cardRepo, wordBookRepo, user.ID
}

func TestEnsureBaselinesIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, goalRepo, cardRepo, wordBookRepo, userID := newWeeklyService(t)
	now := time.Now()

	wb, err := wordBookRepo.Create(userID, "Kanji", nil, models.DefaultRatios)
	if err != nil {
		t.Fatalf("Failed to create word book: %v", err)
	}
	if _, err := cardRepo.Create(wb.ID, "water", "mizu"); err != nil {
		t.Fatalf("Failed to create card: %v", err)
	}

	goal, err := goalRepo.Create(&models.Goal{
		UserID:            userID,
		Title:             "Learn kanji",
		TotalTargetAmount: 50,
		TargetUnit:        "characters",
		CurrentProgress:   10,
	})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	if err := svc.EnsureBaselines(userID, now); err != nil {
		t.Fatalf("Failed to create baselines: %v", err)
	}

	// The goal advances after the snapshot; a second call must keep the
	// original baseline instead of re-snapshotting.
	goal.AddProgress(20, now)
	if err := goalRepo.Update(goal); err != nil {
		t.Fatalf("Failed to update goal: %v", err)
	}
	if err := svc.EnsureBaselines(userID, now); err != nil {
		t.Fatalf("Second EnsureBaselines call failed: %v", err)
	}

	report, err := svc.GetWeeklyStats(userID, now)
	if err != nil {
		t.Fatalf("Failed to get weekly stats: %v", err)
	}

	if report.Week != stats.WeekOf(now) {
		t.Errorf("Expected week %+v, got %+v", stats.WeekOf(now), report.Week)
	}
	if len(report.GoalProgress) != 1 {
		t.Fatalf("Expected 1 goal progress entry, got %d", len(report.GoalProgress))
	}
	gp := report.GoalProgress[0]
	if gp.StartAmount != 10 {
		t.Errorf("Expected start amount 10 from the first snapshot, got %d", gp.StartAmount)
	}
	if gp.Current != 30 || gp.Change != 20 {
		t.Errorf("Expected current 30 with change 20, got %d and %d", gp.Current, gp.Change)
	}
}

func TestEnsureBaselinesTreatsExistingRowAsDone(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, goalRepo, _, _, userID := newWeeklyService(t)
	weeklyRepo := repository.NewWeeklyRepository(svc.db)
	now := time.Now()
	week := stats.WeekOf(now)

	if _, err := goalRepo.Create(&models.Goal{
		UserID:            userID,
		Title:             "Write essays",
		TotalTargetAmount: 4,
		TargetUnit:        "essays",
	}); err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}

	// Another request already committed this week's card baseline
	committed := &models.WeeklyCardBaseline{
		UserID:     userID,
		WeekKey:    week,
		TotalCount: 7,
	}
	if err := weeklyRepo.CreateCardBaseline(committed); err != nil {
		t.Fatalf("Failed to seed card baseline: %v", err)
	}

	if err := svc.EnsureBaselines(userID, now); err != nil {
		t.Fatalf("Expected no-op for an already baselined week, got %v", err)
	}

	// The committed snapshot stands and no goal baselines were added
	baseline, err := weeklyRepo.GetCardBaseline(userID, week)
	if err != nil {
		t.Fatalf("Failed to load card baseline: %v", err)
	}
	if baseline == nil || baseline.ID != committed.ID || baseline.TotalCount != 7 {
		t.Errorf("Expected the committed baseline to survive, got %+v", baseline)
	}
	goalBaselines, err := weeklyRepo.ListGoalBaselines(userID, week)
	if err != nil {
		t.Fatalf("Failed to list goal baselines: %v", err)
	}
	if len(goalBaselines) != 0 {
		t.Errorf("Expected 0 goal baselines after the no-op, got %d", len(goalBaselines))
	}

	// The UNIQUE weekly key backstops any insert that slips past the
	// transactional check
	dup := &models.WeeklyCardBaseline{UserID: userID, WeekKey: week}
	if err := weeklyRepo.CreateCardBaseline(dup); err == nil {
		t.Error("Expected duplicate card baseline insert to fail")
	}
}

func TestGetWeeklyStatsCardImprovement(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, _, cardRepo, wordBookRepo, userID := newWeeklyService(t)
	now := time.Now()

	wb, err := wordBookRepo.Create(userID, "Idioms", nil, models.DefaultRatios)
	if err != nil {
		t.Fatalf("Failed to create word book: %v", err)
	}

	hard := models.DifficultyHard
	for _, front := range []string{"break the ice", "hit the books"} {
		card, err := cardRepo.Create(wb.ID, front, "meaning")
		if err != nil {
			t.Fatalf("Failed to create card: %v", err)
		}
		card.Difficulty = &hard
		if err := cardRepo.UpdateReview(card); err != nil {
			t.Fatalf("Failed to set difficulty: %v", err)
		}
	}

	if err := svc.EnsureBaselines(userID, now); err != nil {
		t.Fatalf("Failed to create baselines: %v", err)
	}

	// Promote one card to easy after the snapshot
	cards, err := cardRepo.ListByWordBook(wb.ID)
	if err != nil {
		t.Fatalf("Failed to list cards: %v", err)
	}
	easy := models.DifficultyEasy
	cards[0].Difficulty = &easy
	if err := cardRepo.UpdateReview(&cards[0]); err != nil {
		t.Fatalf("Failed to promote card: %v", err)
	}

	report, err := svc.GetWeeklyStats(userID, now)
	if err != nil {
		t.Fatalf("Failed to get weekly stats: %v", err)
	}

	improvement := report.CardImprovement
	if improvement.WeekStartCounts.Hard != 2 {
		t.Errorf("Expected 2 hard cards at week start, got %d", improvement.WeekStartCounts.Hard)
	}
	if improvement.CurrentCounts.Hard != 1 || improvement.CurrentCounts.Easy != 1 {
		t.Errorf("Expected 1 hard and 1 easy now, got %+v", improvement.CurrentCounts)
	}
	if improvement.Delta.Hard != -1 || improvement.Delta.Easy != 1 {
		t.Errorf("Expected delta hard -1 and easy +1, got %+v", improvement.Delta)
	}
}

func TestGetWeeklySummary(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	svc, goalRepo, _, _, userID := newWeeklyService(t)
	db := svc.db
	now := time.Now()

	// One completed goal out of two
	done, err := goalRepo.Create(&models.Goal{
		UserID:            userID,
		Title:             "Finish course",
		TotalTargetAmount: 10,
		TargetUnit:        "lessons",
	})
	if err != nil {
		t.Fatalf("Failed to create goal: %v", err)
	}
	done.AddProgress(10, now)
	if err := goalRepo.Update(done); err != nil {
		t.Fatalf("Failed to complete goal: %v", err)
	}
	if _, err := goalRepo.Create(&models.Goal{
		UserID:            userID,
		Title:             "Read papers",
		TotalTargetAmount: 5,
		TargetUnit:        "papers",
	}); err != nil {
		t.Fatalf("Failed to create second goal: %v", err)
	}

	// Two pomodoro sessions this week
	sessionService := NewStudySessionService(db, repository.NewStudySessionRepository(db), goalRepo)
	for _, pomos := range []int{2, 3} {
		session, err := sessionService.Start(userID, nil)
		if err != nil {
			t.Fatalf("Failed to start session: %v", err)
		}
		if _, err := sessionService.End(session.ID, 0, pomos, ""); err != nil {
			t.Fatalf("Failed to end session: %v", err)
		}
	}

	summary, err := svc.GetWeeklySummary(userID, now)
	if err != nil {
		t.Fatalf("Failed to get weekly summary: %v", err)
	}

	if summary.SessionCount != 2 {
		t.Errorf("Expected 2 sessions, got %d", summary.SessionCount)
	}
	if summary.TotalPomoCount != 5 {
		t.Errorf("Expected 5 pomodoros, got %d", summary.TotalPomoCount)
	}
	if summary.TotalMinutes != 5*models.MinutesPerPomo {
		t.Errorf("Expected %d minutes, got %d", 5*models.MinutesPerPomo, summary.TotalMinutes)
	}
	if summary.TotalGoals != 2 || summary.CompletedGoals != 1 {
		t.Errorf("Expected 1 of 2 goals completed, got %d of %d", summary.CompletedGoals, summary.TotalGoals)
	}
	if summary.AchievementRate != 0.5 {
		t.Errorf("Expected achievement rate 0.5, got %f", summary.AchievementRate)
	}

	// The read persists the rate
	stat, err := repository.NewWeeklyRepository(db).GetStat(userID, summary.Week)
	if err != nil {
		t.Fatalf("Failed to load weekly stat: %v", err)
	}
	if stat == nil || stat.AchievementRate != 0.5 {
		t.Errorf("Expected stored achievement rate 0.5, got %+v", stat)
	}
}
