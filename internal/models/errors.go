package models

import "errors"

var (
	// ErrSessionAlreadyEnded is returned when a terminal session is ended
	// or updated again.
	ErrSessionAlreadyEnded = errors.New("session already ended")

	// ErrInvalidFrequencyRatios is returned when a word book's frequency
	// ratio triple violates the hard > normal > easy ordering or the
	// per-level bounds.
	ErrInvalidFrequencyRatios = errors.New("invalid frequency ratios")

	// ErrInvalidDifficulty is returned for difficulty values outside
	// EASY/NORMAL/HARD.
	ErrInvalidDifficulty = errors.New("invalid difficulty")
)
