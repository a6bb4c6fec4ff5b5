package main

import (
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/QyongGin/learnkit/internal/config"
	"github.com/QyongGin/learnkit/internal/database"
	"github.com/QyongGin/learnkit/internal/handlers"
	"github.com/QyongGin/learnkit/internal/notify"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/security"
	"github.com/QyongGin/learnkit/internal/service"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database with config (supports sqlite, postgres, mysql)
	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer db.Close()

	log.Printf("Database connection established (type: %s)", cfg.DatabaseType)

	// Run migrations
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Migrations completed successfully")

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	wordBookRepo := repository.NewWordBookRepository(db)
	cardRepo := repository.NewCardRepository(db)
	goalRepo := repository.NewGoalRepository(db)
	studySessionRepo := repository.NewStudySessionRepository(db)
	goalSessionRepo := repository.NewGoalStudySessionRepository(db)
	bookSessionRepo := repository.NewWordBookSessionRepository(db)
	scheduleRepo := repository.NewScheduleRepository(db)
	reminderRepo := repository.NewReminderRepository(db)
	weeklyRepo := repository.NewWeeklyRepository(db)
	appLaunchRepo := repository.NewAppLaunchRepository(db)

	// Initialize services
	tokens := security.NewTokenManager(cfg.JWTSecret, cfg.TokenExpiry)

	emailService, err := service.NewEmailService(cfg.AWSRegion, cfg.SESFromEmail, cfg.SESFromName)
	if err != nil {
		log.Printf("Warning: email delivery disabled: %v", err)
	}

	authService := service.NewAuthService(userRepo, tokens)
	userService := service.NewUserService(userRepo)
	wordBookService := service.NewWordBookService(wordBookRepo, cardRepo)
	cardService := service.NewCardService(cardRepo, wordBookRepo, userRepo)
	goalService := service.NewGoalService(goalRepo)
	studySessionService := service.NewStudySessionService(db, studySessionRepo, goalRepo)
	goalSessionService := service.NewStudySessionService(db, goalSessionRepo, goalRepo)
	bookSessionService := service.NewWordBookSessionService(db, bookSessionRepo, cardRepo, wordBookRepo)
	scheduleService := service.NewScheduleService(scheduleRepo)
	reminderService := service.NewReminderService(reminderRepo, scheduleRepo, userRepo, emailService)
	weeklyService := service.NewWeeklyStatsService(db, weeklyRepo, cardRepo, goalRepo, userRepo,
		goalSessionRepo, studySessionRepo, bookSessionRepo)
	appLaunchService := service.NewAppLaunchService(appLaunchRepo, userRepo)

	// Initialize handlers
	limiter := security.NewRateLimiter(30, time.Minute)
	middleware := handlers.NewMiddleware(tokens, limiter)
	authHandler := handlers.NewAuthHandler(authService, emailService)
	userHandler := handlers.NewUserHandler(userService)
	wordBookHandler := handlers.NewWordBookHandler(wordBookService)
	cardHandler := handlers.NewCardHandler(cardService, wordBookService)
	goalHandler := handlers.NewGoalHandler(goalService)
	studySessionHandler := handlers.NewStudySessionHandler(studySessionService)
	goalSessionHandler := handlers.NewGoalStudySessionHandler(goalSessionService)
	bookSessionHandler := handlers.NewWordBookSessionHandler(bookSessionService)
	scheduleHandler := handlers.NewScheduleHandler(scheduleService)
	reminderHandler := handlers.NewReminderHandler(reminderService)
	weeklyHandler := handlers.NewWeeklyHandler(weeklyService)
	appLaunchHandler := handlers.NewAppLaunchHandler(appLaunchService)

	// Setup routes
	mux := http.NewServeMux()

	// Auth routes
	mux.HandleFunc("POST /api/auth/register", middleware.RateLimit(authHandler.Register))
	mux.HandleFunc("POST /api/auth/login", middleware.RateLimit(authHandler.Login))

	// User routes
	mux.HandleFunc("GET /api/users/search", middleware.RequireAuth(userHandler.Search))
	mux.HandleFunc("GET /api/users/{userId}", middleware.RequireAuth(userHandler.Get))
	mux.HandleFunc("PATCH /api/users/{userId}/profile", middleware.RequireAuth(userHandler.UpdateProfile))
	mux.HandleFunc("PATCH /api/users/{userId}/password", middleware.RequireAuth(userHandler.ChangePassword))
	mux.HandleFunc("DELETE /api/users/{userId}", middleware.RequireAuth(userHandler.Delete))

	// Word book routes
	mux.HandleFunc("POST /api/users/{userId}/wordbooks", middleware.RequireAuth(wordBookHandler.Create))
	mux.HandleFunc("GET /api/users/{userId}/wordbooks", middleware.RequireAuth(wordBookHandler.ListByUser))
	mux.HandleFunc("GET /api/wordbooks/{wordBookId}", middleware.RequireAuth(wordBookHandler.Get))
	mux.HandleFunc("PATCH /api/wordbooks/{wordBookId}", middleware.RequireAuth(wordBookHandler.Update))
	mux.HandleFunc("DELETE /api/wordbooks/{wordBookId}", middleware.RequireAuth(wordBookHandler.Delete))

	// Card routes
	mux.HandleFunc("POST /api/wordbooks/{wordBookId}/cards", middleware.RequireAuth(cardHandler.Create))
	mux.HandleFunc("GET /api/wordbooks/{wordBookId}/cards", middleware.RequireAuth(cardHandler.ListByWordBook))
	mux.HandleFunc("GET /api/wordbooks/{wordBookId}/cards/next", middleware.RequireAuth(cardHandler.NextDue))
	mux.HandleFunc("GET /api/wordbooks/{wordBookId}/cards/statistics", middleware.RequireAuth(cardHandler.WordBookStatistics))
	mux.HandleFunc("POST /api/wordbooks/{wordBookId}/cards/import", middleware.RequireAuth(cardHandler.Import))
	mux.HandleFunc("GET /api/users/{userId}/cards/statistics", middleware.RequireAuth(cardHandler.UserStatistics))
	mux.HandleFunc("GET /api/cards/{cardId}", middleware.RequireAuth(cardHandler.Get))
	mux.HandleFunc("GET /api/cards/{cardId}/detail", middleware.RequireAuth(cardHandler.Detail))
	mux.HandleFunc("PATCH /api/cards/{cardId}", middleware.RequireAuth(cardHandler.Update))
	mux.HandleFunc("PATCH /api/cards/{cardId}/review", middleware.RequireAuth(cardHandler.Review))
	mux.HandleFunc("DELETE /api/cards/{cardId}", middleware.RequireAuth(cardHandler.Delete))

	// Goal routes
	mux.HandleFunc("POST /api/users/{userId}/goals", middleware.RequireAuth(goalHandler.Create))
	mux.HandleFunc("GET /api/users/{userId}/goals", middleware.RequireAuth(goalHandler.ListByUser))
	mux.HandleFunc("GET /api/users/{userId}/goals/active", middleware.RequireAuth(goalHandler.ListActive))
	mux.HandleFunc("GET /api/goals/{goalId}", middleware.RequireAuth(goalHandler.Get))
	mux.HandleFunc("PATCH /api/goals/{goalId}", middleware.RequireAuth(goalHandler.Update))
	mux.HandleFunc("PATCH /api/goals/{goalId}/progress", middleware.RequireAuth(goalHandler.AddProgress))
	mux.HandleFunc("DELETE /api/goals/{goalId}", middleware.RequireAuth(goalHandler.Delete))

	// Study session routes (generic pomodoro sessions)
	mux.HandleFunc("POST /api/users/{userId}/study-sessions", middleware.RequireAuth(studySessionHandler.Start))
	mux.HandleFunc("GET /api/users/{userId}/study-sessions", middleware.RequireAuth(studySessionHandler.ListByUser))
	mux.HandleFunc("GET /api/users/{userId}/study-sessions/active", middleware.RequireAuth(studySessionHandler.GetActive))
	mux.HandleFunc("GET /api/users/{userId}/study-sessions/statistics", middleware.RequireAuth(studySessionHandler.Statistics))
	mux.HandleFunc("GET /api/study-sessions/{sessionId}", middleware.RequireAuth(studySessionHandler.Get))
	mux.HandleFunc("PATCH /api/study-sessions/{sessionId}/end", middleware.RequireAuth(studySessionHandler.End))
	mux.HandleFunc("PATCH /api/study-sessions/{sessionId}/pomo-count", middleware.RequireAuth(studySessionHandler.UpdatePomoCount))
	mux.HandleFunc("DELETE /api/study-sessions/{sessionId}", middleware.RequireAuth(studySessionHandler.Delete))

	// Goal-linked study session routes
	mux.HandleFunc("POST /api/users/{userId}/goal-study-sessions", middleware.RequireAuth(goalSessionHandler.Start))
	mux.HandleFunc("GET /api/users/{userId}/goal-study-sessions", middleware.RequireAuth(goalSessionHandler.ListByUser))
	mux.HandleFunc("GET /api/users/{userId}/goal-study-sessions/active", middleware.RequireAuth(goalSessionHandler.GetActive))
	mux.HandleFunc("GET /api/users/{userId}/goal-study-sessions/statistics", middleware.RequireAuth(goalSessionHandler.Statistics))
	mux.HandleFunc("GET /api/goal-study-sessions/{sessionId}", middleware.RequireAuth(goalSessionHandler.Get))
	mux.HandleFunc("PATCH /api/goal-study-sessions/{sessionId}/end", middleware.RequireAuth(goalSessionHandler.End))
	mux.HandleFunc("PATCH /api/goal-study-sessions/{sessionId}/pomo-count", middleware.RequireAuth(goalSessionHandler.UpdatePomoCount))
	mux.HandleFunc("DELETE /api/goal-study-sessions/{sessionId}", middleware.RequireAuth(goalSessionHandler.Delete))

	// Word book review session routes
	mux.HandleFunc("POST /api/users/{userId}/wordbook-study-sessions", middleware.RequireAuth(bookSessionHandler.Start))
	mux.HandleFunc("GET /api/users/{userId}/wordbook-study-sessions", middleware.RequireAuth(bookSessionHandler.ListByUser))
	mux.HandleFunc("GET /api/users/{userId}/wordbook-study-sessions/active", middleware.RequireAuth(bookSessionHandler.GetActive))
	mux.HandleFunc("GET /api/users/{userId}/wordbook-study-sessions/statistics", middleware.RequireAuth(bookSessionHandler.Statistics))
	mux.HandleFunc("GET /api/wordbook-study-sessions/{sessionId}", middleware.RequireAuth(bookSessionHandler.Get))
	mux.HandleFunc("PATCH /api/wordbook-study-sessions/{sessionId}/end", middleware.RequireAuth(bookSessionHandler.End))
	mux.HandleFunc("DELETE /api/wordbook-study-sessions/{sessionId}", middleware.RequireAuth(bookSessionHandler.Delete))

	// Schedule routes
	mux.HandleFunc("POST /api/users/{userId}/schedules", middleware.RequireAuth(scheduleHandler.Create))
	mux.HandleFunc("GET /api/users/{userId}/schedules", middleware.RequireAuth(scheduleHandler.ListByUser))
	mux.HandleFunc("GET /api/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.Get))
	mux.HandleFunc("PATCH /api/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.Update))
	mux.HandleFunc("DELETE /api/schedules/{scheduleId}", middleware.RequireAuth(scheduleHandler.Delete))

	// Reminder routes
	mux.HandleFunc("POST /api/users/{userId}/reminders", middleware.RequireAuth(reminderHandler.Create))
	mux.HandleFunc("GET /api/users/{userId}/reminders", middleware.RequireAuth(reminderHandler.ListByUser))
	mux.HandleFunc("GET /api/users/{userId}/reminders/upcoming", middleware.RequireAuth(reminderHandler.ListUpcoming))
	mux.HandleFunc("PATCH /api/reminders/{reminderId}", middleware.RequireAuth(reminderHandler.Update))
	mux.HandleFunc("DELETE /api/reminders/{reminderId}", middleware.RequireAuth(reminderHandler.Delete))

	// Weekly stats routes
	mux.HandleFunc("GET /api/users/{userId}/weekly-stats", middleware.RequireAuth(weeklyHandler.GetStats))
	mux.HandleFunc("POST /api/users/{userId}/weekly-stats/baseline", middleware.RequireAuth(weeklyHandler.EnsureBaselines))
	mux.HandleFunc("GET /api/users/{userId}/weekly-summary", middleware.RequireAuth(weeklyHandler.GetSummary))

	// App launch routes
	mux.HandleFunc("POST /api/users/{userId}/app-launches", middleware.RequireAuth(appLaunchHandler.Record))
	mux.HandleFunc("GET /api/users/{userId}/peak-hours", middleware.RequireAuth(appLaunchHandler.PeakHours))

	// Wrap with logging middleware
	handler := handlers.Logging(mux)

	// Start the reminder dispatcher
	dispatcher := notify.NewDispatcher(reminderService, cfg.ReminderInterval)
	if err := dispatcher.Start(); err != nil {
		log.Fatalf("Failed to start reminder dispatcher: %v", err)
	}
	defer dispatcher.Stop()

	// Start server
	addr := ":" + cfg.ServerPort
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Printf("Server starting on http://localhost%s", addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Server shutting down...")
}
