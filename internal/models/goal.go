package models

import "time"

// Goal is a target amount of a user-defined unit to reach, optionally
// bounded by start and end dates.
type Goal struct {
	ID                int64      `json:"id"`
	UserID            int64      `json:"userId"`
	Title             string     `json:"title"`
	StartDate         *time.Time `json:"startDate,omitempty"`
	EndDate           *time.Time `json:"endDate,omitempty"`
	TotalTargetAmount int        `json:"totalTargetAmount"`
	TargetUnit        string     `json:"targetUnit"`
	CurrentProgress   int        `json:"currentProgress"`
	IsCompleted       bool       `json:"isCompleted"`
	CompletedAt       *time.Time `json:"completedAt,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

// AddProgress adds amount to the current progress. Completion latches:
// once the target is reached, IsCompleted stays true and CompletedAt
// keeps its original value.
func (g *Goal) AddProgress(amount int, now time.Time) {
	g.CurrentProgress += amount

	if g.CurrentProgress >= g.TotalTargetAmount && !g.IsCompleted {
		g.IsCompleted = true
		g.CompletedAt = &now
	}
}

// GoalUpdate carries the patchable fields; nil means "leave as is".
type GoalUpdate struct {
	Title             *string    `json:"title"`
	StartDate         *time.Time `json:"startDate"`
	EndDate           *time.Time `json:"endDate"`
	TotalTargetAmount *int       `json:"totalTargetAmount"`
	TargetUnit        *string    `json:"targetUnit"`
}

// ApplyUpdate overwrites only the fields present in the patch.
func (g *Goal) ApplyUpdate(patch GoalUpdate) {
	if patch.Title != nil {
		g.Title = *patch.Title
	}
	if patch.StartDate != nil {
		g.StartDate = patch.StartDate
	}
	if patch.EndDate != nil {
		g.EndDate = patch.EndDate
	}
	if patch.TotalTargetAmount != nil {
		g.TotalTargetAmount = *patch.TotalTargetAmount
	}
	if patch.TargetUnit != nil {
		g.TargetUnit = *patch.TargetUnit
	}
}
