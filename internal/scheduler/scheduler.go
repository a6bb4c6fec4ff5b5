// Package scheduler implements the priority-score card scheduling model.
//
// Every card carries an accumulating reviewPriority; the lowest score in
// a word book is the most due. Grading a card pushes it back by an
// interval derived from the book's size and the ratio for the chosen
// difficulty, so hard cards come around sooner than easy ones.
package scheduler

import (
	"time"

	"github.com/QyongGin/learnkit/internal/models"
)

// scorePerCard scales the base score so integer division by ratios up to
// 20 keeps the interval ordering strict for any non-empty book.
const scorePerCard = 1000

// Scheduler holds the interval math for one word book at one moment in
// time. It is a value type; build a fresh one whenever the card count or
// ratios may have changed.
type Scheduler struct {
	ratios    models.FrequencyRatios
	baseScore int64
}

// New builds a scheduler for a book with the given ratios and card count.
func New(ratios models.FrequencyRatios, totalCards int) Scheduler {
	return Scheduler{
		ratios:    ratios,
		baseScore: int64(totalCards) * scorePerCard,
	}
}

// BaseScore is the book-size-derived score all intervals divide.
func (s Scheduler) BaseScore() int64 {
	return s.baseScore
}

// Interval is how far a card is pushed back when graded at d. A higher
// ratio divides the base score harder, so interval(HARD) < interval(EASY).
func (s Scheduler) Interval(d models.Difficulty) int64 {
	switch d {
	case models.DifficultyHard:
		return s.baseScore / int64(s.ratios.Hard)
	case models.DifficultyNormal:
		return s.baseScore / int64(s.ratios.Normal)
	default:
		return s.baseScore / int64(s.ratios.Easy)
	}
}

// Review applies one grading: the card's priority grows by the interval
// for d, its difficulty and review timestamp are recorded, and the view
// count increments by exactly one.
func (s Scheduler) Review(card *models.Card, d models.Difficulty, now time.Time) {
	card.ReviewPriority += s.Interval(d)
	card.Difficulty = &d
	card.LastReviewedAt = &now
	card.ViewCount++
}

// ResetPriority re-baselines a card to an explicit score. Sessions call
// this for every card in the book at start, so relative ordering reflects
// the current card count and ratios rather than a prior session's.
func ResetPriority(card *models.Card, priority int64) {
	card.ReviewPriority = priority
}

// NextDue returns the card with the minimum reviewPriority, ties broken
// by id ascending. Returns nil for an empty slice; callers translate that
// to their not-found error.
func NextDue(cards []*models.Card) *models.Card {
	var due *models.Card
	for _, c := range cards {
		if due == nil ||
			c.ReviewPriority < due.ReviewPriority ||
			(c.ReviewPriority == due.ReviewPriority && c.ID < due.ID) {
			due = c
		}
	}
	return due
}
