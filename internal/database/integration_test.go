package database

import (
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := db.RunMigrations("../../migrations"); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}
	return db
}

// TestDatabaseIntegration tests the complete database lifecycle
func TestDatabaseIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	// Test that tables were created by migrations
	tables := []string{
		"users", "wordbooks", "cards", "goals",
		"study_sessions", "goal_study_sessions", "wordbook_study_sessions",
		"schedules", "reminders",
		"weekly_card_baselines", "weekly_goal_baselines", "weekly_stats",
		"app_launches",
	}

	for _, table := range tables {
		query := "SELECT name FROM sqlite_master WHERE type='table' AND name=?"
		var name string
		if err := db.QueryRow(query, table).Scan(&name); err != nil {
			t.Errorf("Table %s not found: %v", table, err)
		}
	}
}

// TestExecReturningID tests the insert-and-return-ID path
func TestExecReturningID(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	id, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, nickname) VALUES (?, ?, ?)",
		"first@example.com", "hashedpass", "First")
	if err != nil {
		t.Fatalf("Failed to insert user: %v", err)
	}
	if id <= 0 {
		t.Fatalf("Expected positive ID, got %d", id)
	}

	id2, err := db.ExecReturningID(
		"INSERT INTO users (email, password_hash, nickname) VALUES (?, ?, ?)",
		"second@example.com", "hashedpass", "Second")
	if err != nil {
		t.Fatalf("Failed to insert second user: %v", err)
	}
	if id2 <= id {
		t.Errorf("Expected ID to increase, got %d after %d", id2, id)
	}
}

// TestDatabaseTransactions tests transaction support
func TestDatabaseTransactions(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	// Test successful transaction
	tx, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin transaction: %v", err)
	}

	_, err = tx.Exec("INSERT INTO users (email, password_hash, nickname) VALUES (?, ?, ?)",
		"test@example.com", "hashedpass", "Tester")
	if err != nil {
		tx.Rollback()
		t.Fatalf("Failed to insert in transaction: %v", err)
	}

	if err := tx.Commit(); err != nil {
		t.Fatalf("Failed to commit transaction: %v", err)
	}

	var count int
	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "test@example.com").Scan(&count); err != nil {
		t.Fatalf("Failed to query after commit: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected 1 user, got %d", count)
	}

	// Test rollback
	tx2, err := db.Begin()
	if err != nil {
		t.Fatalf("Failed to begin second transaction: %v", err)
	}

	_, err = tx2.Exec("INSERT INTO users (email, password_hash, nickname) VALUES (?, ?, ?)",
		"rollback@example.com", "hashedpass", "Rollback")
	if err != nil {
		tx2.Rollback()
		t.Fatalf("Failed to insert in second transaction: %v", err)
	}

	if err := tx2.Rollback(); err != nil {
		t.Fatalf("Failed to rollback transaction: %v", err)
	}

	if err := db.QueryRow("SELECT COUNT(*) FROM users WHERE email = ?", "rollback@example.com").Scan(&count); err != nil {
		t.Fatalf("Failed to query after rollback: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected 0 users after rollback, got %d", count)
	}
}

// TestConcurrentAccess tests concurrent database access
func TestConcurrentAccess(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	db := openTestDB(t)

	_, err := db.Exec("INSERT INTO users (email, password_hash, nickname) VALUES (?, ?, ?)",
		"concurrent@example.com", "hashedpass", "Concurrent")
	if err != nil {
		t.Fatalf("Failed to create test user: %v", err)
	}

	done := make(chan error, 10)
	for i := 0; i < 10; i++ {
		go func() {
			var nickname string
			err := db.QueryRow("SELECT nickname FROM users WHERE email = ?", "concurrent@example.com").Scan(&nickname)
			done <- err
		}()
	}

	for i := 0; i < 10; i++ {
		if err := <-done; err != nil {
			t.Errorf("Concurrent read failed: %v", err)
		}
	}
}
