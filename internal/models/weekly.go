package models

import "time"

// WeekKey identifies one Monday-bounded week inside a calendar month.
// It is the natural key for all weekly baseline and stat rows.
type WeekKey struct {
	Year       int `json:"year"`
	Month      int `json:"month"`
	WeekNumber int `json:"weekNumber"`
}

// WeeklyCardBaseline snapshots a user's card difficulty distribution at
// the start of a week. Immutable once written.
type WeeklyCardBaseline struct {
	ID         int64 `json:"id"`
	UserID     int64 `json:"userId"`
	WeekKey
	TotalCount int             `json:"totalCount"`
	Counts     DifficultyCount `json:"counts"`
	CreatedAt  time.Time       `json:"createdAt"`
}

// WeeklyGoalBaseline snapshots one goal's progress at the start of a
// week. Immutable once written. Title and unit are copied so the
// baseline stays meaningful if the goal is later renamed.
type WeeklyGoalBaseline struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	GoalID int64 `json:"goalId"`
	WeekKey
	StartAmount int       `json:"startAmount"`
	TargetUnit  string    `json:"targetUnit"`
	Title       string    `json:"title"`
	CreatedAt   time.Time `json:"createdAt"`
}

// WeeklyStat is the coarse weekly summary row. AchievementRate is a
// cached derived value, recomputed and overwritten on every summary read.
type WeeklyStat struct {
	ID     int64 `json:"id"`
	UserID int64 `json:"userId"`
	WeekKey
	AchievementRate float64   `json:"achievementRate"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}
