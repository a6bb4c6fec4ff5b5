package models

import "time"

// Schedule is a calendar entry for planned study time.
type Schedule struct {
	ID          int64     `json:"id"`
	UserID      int64     `json:"userId"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	StartTime   time.Time `json:"startTime"`
	EndTime     time.Time `json:"endTime"`
	IsCompleted bool      `json:"isCompleted"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// ScheduleUpdate carries the patchable fields; nil means "leave as is".
type ScheduleUpdate struct {
	Title       *string    `json:"title"`
	Description *string    `json:"description"`
	StartTime   *time.Time `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	IsCompleted *bool      `json:"isCompleted"`
}

// ApplyUpdate overwrites only the fields present in the patch.
func (s *Schedule) ApplyUpdate(patch ScheduleUpdate) {
	if patch.Title != nil {
		s.Title = *patch.Title
	}
	if patch.Description != nil {
		s.Description = patch.Description
	}
	if patch.StartTime != nil {
		s.StartTime = *patch.StartTime
	}
	if patch.EndTime != nil {
		s.EndTime = *patch.EndTime
	}
	if patch.IsCompleted != nil {
		s.IsCompleted = *patch.IsCompleted
	}
}
