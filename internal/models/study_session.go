package models

import "time"

// MinutesPerPomo is the length of one pomodoro set.
const MinutesPerPomo = 25

// StudySession is one continuous block of study, optionally linked to a
// goal. EndedAt being nil is the "in progress" state; there is no
// separate flag. The same shape backs both the generic study-session and
// the goal-study-session flavors, which live in separate tables.
type StudySession struct {
	ID              int64      `json:"id"`
	UserID          int64      `json:"userId"`
	GoalID          *int64     `json:"goalId,omitempty"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt,omitempty"`
	AchievedAmount  int        `json:"achievedAmount"`
	DurationMinutes int        `json:"durationMinutes"`
	PomoCount       int        `json:"pomoCount"`
	Note            string     `json:"note,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
	UpdatedAt       time.Time  `json:"updatedAt"`
}

// IsInProgress reports whether the session has not been ended yet.
func (s *StudySession) IsInProgress() bool {
	return s.EndedAt == nil
}

// End transitions the session to its terminal state, stamping the end
// time and the final fields. Ending twice is an error, not a no-op.
func (s *StudySession) End(achievedAmount, durationMinutes, pomoCount int, note string, now time.Time) error {
	if !s.IsInProgress() {
		return ErrSessionAlreadyEnded
	}

	s.EndedAt = &now
	s.AchievedAmount = achievedAmount
	s.DurationMinutes = durationMinutes
	s.PomoCount = pomoCount
	s.Note = note
	return nil
}

// UpdatePomoCount records pomodoro progress mid-session so a force-closed
// client can recover. The elapsed time is derived from the set count.
func (s *StudySession) UpdatePomoCount(pomoCount int) error {
	if !s.IsInProgress() {
		return ErrSessionAlreadyEnded
	}

	s.PomoCount = pomoCount
	s.DurationMinutes = pomoCount * MinutesPerPomo
	return nil
}
