package models

import (
	"fmt"
	"strings"
)

// Difficulty is the grade a learner assigns to a card after reviewing it.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "EASY"
	DifficultyNormal Difficulty = "NORMAL"
	DifficultyHard   Difficulty = "HARD"
)

// ParseDifficulty converts a request string to a Difficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	switch Difficulty(strings.ToUpper(s)) {
	case DifficultyEasy:
		return DifficultyEasy, nil
	case DifficultyNormal:
		return DifficultyNormal, nil
	case DifficultyHard:
		return DifficultyHard, nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidDifficulty, s)
}

// DifficultyCount is a per-difficulty tally of cards.
type DifficultyCount struct {
	Hard   int `json:"hardCount"`
	Normal int `json:"normalCount"`
	Easy   int `json:"easyCount"`
}

// Sub returns the bucket-wise difference c - other.
func (c DifficultyCount) Sub(other DifficultyCount) DifficultyCount {
	return DifficultyCount{
		Hard:   c.Hard - other.Hard,
		Normal: c.Normal - other.Normal,
		Easy:   c.Easy - other.Easy,
	}
}
