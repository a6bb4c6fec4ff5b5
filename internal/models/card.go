package models

import "time"

// Card is one flashcard inside exactly one word book. ReviewPriority is
// an accumulating score: lower means more due. The scheduler package owns
// the rules for mutating it.
type Card struct {
	ID             int64       `json:"id"`
	WordBookID     int64       `json:"wordBookId"`
	FrontText      string      `json:"frontText"`
	BackText       string      `json:"backText"`
	Difficulty     *Difficulty `json:"difficulty,omitempty"`
	ReviewPriority int64       `json:"reviewPriority"`
	LastReviewedAt *time.Time  `json:"lastReviewedAt,omitempty"`
	ViewCount      int         `json:"viewCount"`
	CreatedAt      time.Time   `json:"createdAt"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// CardContent is the bare front/back pair used for bulk creation.
type CardContent struct {
	FrontText string `json:"frontText"`
	BackText  string `json:"backText"`
}

// CardUpdate carries the patchable content fields; nil means "leave as is".
type CardUpdate struct {
	FrontText  *string `json:"frontText"`
	BackText   *string `json:"backText"`
	Difficulty *string `json:"difficulty"`
}

// ApplyUpdate overwrites only the fields present in the patch.
func (c *Card) ApplyUpdate(patch CardUpdate) error {
	if patch.FrontText != nil {
		c.FrontText = *patch.FrontText
	}
	if patch.BackText != nil {
		c.BackText = *patch.BackText
	}
	if patch.Difficulty != nil {
		d, err := ParseDifficulty(*patch.Difficulty)
		if err != nil {
			return err
		}
		c.Difficulty = &d
	}
	return nil
}
