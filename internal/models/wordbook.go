package models

import (
	"fmt"
	"time"
)

// Frequency ratio bounds. A higher ratio means the card is shown more
// often; the ordering hard > normal > easy must hold strictly.
const (
	MinHardRatio   = 3
	MinNormalRatio = 2
	MinEasyRatio   = 1
	MaxRatio       = 20
)

// DefaultRatios is the 6:3:1 triple applied when a word book is created
// without explicit ratios.
var DefaultRatios = FrequencyRatios{Hard: 6, Normal: 3, Easy: 1}

// FrequencyRatios parametrizes the card scheduler for one word book.
type FrequencyRatios struct {
	Hard   int `json:"hardFrequencyRatio"`
	Normal int `json:"normalFrequencyRatio"`
	Easy   int `json:"easyFrequencyRatio"`
}

// Validate checks the ratio triple against the scheduler's constraints.
func (r FrequencyRatios) Validate() error {
	if r.Hard < MinHardRatio {
		return fmt.Errorf("%w: hard ratio must be at least %d", ErrInvalidFrequencyRatios, MinHardRatio)
	}
	if r.Normal < MinNormalRatio {
		return fmt.Errorf("%w: normal ratio must be at least %d", ErrInvalidFrequencyRatios, MinNormalRatio)
	}
	if r.Easy < MinEasyRatio {
		return fmt.Errorf("%w: easy ratio must be at least %d", ErrInvalidFrequencyRatios, MinEasyRatio)
	}
	if r.Hard > MaxRatio || r.Normal > MaxRatio || r.Easy > MaxRatio {
		return fmt.Errorf("%w: ratios may not exceed %d", ErrInvalidFrequencyRatios, MaxRatio)
	}
	if r.Hard <= r.Normal || r.Normal <= r.Easy {
		return fmt.Errorf("%w: must satisfy hard > normal > easy (got %d:%d:%d)",
			ErrInvalidFrequencyRatios, r.Hard, r.Normal, r.Easy)
	}
	return nil
}

// WordBook is a named collection of cards owned by one user.
type WordBook struct {
	ID          int64   `json:"id"`
	UserID      int64   `json:"userId"`
	Title       string  `json:"title"`
	Description *string `json:"description,omitempty"`
	FrequencyRatios
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// WordBookUpdate carries the patchable fields; nil means "leave as is".
// The three ratios must be supplied together, or not at all.
type WordBookUpdate struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	HardRatio   *int    `json:"hardFrequencyRatio"`
	NormalRatio *int    `json:"normalFrequencyRatio"`
	EasyRatio   *int    `json:"easyFrequencyRatio"`
}

// ApplyUpdate overwrites only the fields present in the patch. A ratio
// change only takes effect when all three ratios are supplied; the
// triple is validated as a whole and rejected entirely on violation,
// leaving the previous ratios in place.
func (w *WordBook) ApplyUpdate(patch WordBookUpdate) error {
	if patch.HardRatio != nil && patch.NormalRatio != nil && patch.EasyRatio != nil {
		ratios := FrequencyRatios{Hard: *patch.HardRatio, Normal: *patch.NormalRatio, Easy: *patch.EasyRatio}
		if err := ratios.Validate(); err != nil {
			return err
		}
		w.FrequencyRatios = ratios
	}

	if patch.Title != nil {
		w.Title = *patch.Title
	}
	if patch.Description != nil {
		w.Description = patch.Description
	}
	return nil
}
