package models

import "time"

// WordBookStudySession tracks one word-book review session. Instead of
// achieved amounts it snapshots the difficulty distribution at start and
// end; duration is wall-clock elapsed time.
type WordBookStudySession struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"userId"`
	WordBookID  int64           `json:"wordBookId"`
	StartedAt   time.Time       `json:"startedAt"`
	EndedAt     *time.Time      `json:"endedAt,omitempty"`
	StartCounts DifficultyCount `json:"startCounts"`
	EndCounts   DifficultyCount `json:"endCounts"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// IsInProgress reports whether the session has not been ended yet.
func (s *WordBookStudySession) IsInProgress() bool {
	return s.EndedAt == nil
}

// End transitions the session to its terminal state with the closing
// difficulty snapshot. Ending twice is an error.
func (s *WordBookStudySession) End(counts DifficultyCount, now time.Time) error {
	if !s.IsInProgress() {
		return ErrSessionAlreadyEnded
	}

	s.EndedAt = &now
	s.EndCounts = counts
	return nil
}

// DurationMinutes is the wall-clock session length, zero while in progress.
func (s *WordBookStudySession) DurationMinutes() int {
	if s.EndedAt == nil {
		return 0
	}
	return int(s.EndedAt.Sub(s.StartedAt).Minutes())
}
