package service

import (
	"fmt"
	"time"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/scheduler"
)

// CardService handles flashcard business logic, including the review
// scheduling rules.
type CardService struct {
	cardRepo     *repository.CardRepository
	wordBookRepo *repository.WordBookRepository
	userRepo     *repository.UserRepository
}

// NewCardService creates a new card service
func NewCardService(cardRepo *repository.CardRepository, wordBookRepo *repository.WordBookRepository, userRepo *repository.UserRepository) *CardService {
	return &CardService{
		cardRepo:     cardRepo,
		wordBookRepo: wordBookRepo,
		userRepo:     userRepo,
	}
}

// Create adds a card to a word book
func (s *CardService) Create(wordBookID int64, frontText, backText string) (*models.Card, error) {
	wb, err := s.wordBookRepo.GetByID(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, wordBookID)
	}

	card, err := s.cardRepo.Create(wordBookID, frontText, backText)
	if err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}
	return card, nil
}

// Get retrieves a card by ID
func (s *CardService) Get(id int64) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: card %d", ErrNotFound, id)
	}
	return card, nil
}

// ListByWordBook retrieves the cards of a word book in creation order
func (s *CardService) ListByWordBook(wordBookID int64) ([]models.Card, error) {
	wb, err := s.wordBookRepo.GetByID(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, wordBookID)
	}

	cards, err := s.cardRepo.ListByWordBook(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// Update applies a partial content update
func (s *CardService) Update(id int64, patch models.CardUpdate) (*models.Card, error) {
	card, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if err := card.ApplyUpdate(patch); err != nil {
		return nil, err
	}

	if err := s.cardRepo.UpdateContent(card); err != nil {
		return nil, fmt.Errorf("failed to update card: %w", err)
	}
	return s.Get(id)
}

// Delete removes a card
func (s *CardService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.cardRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete card: %w", err)
	}
	return nil
}

// Review grades a card. The interval pushing the card back is derived
// from the book's current ratios and card count at the moment of review.
func (s *CardService) Review(cardID int64, difficulty string) (*models.Card, error) {
	d, err := models.ParseDifficulty(difficulty)
	if err != nil {
		return nil, err
	}

	card, err := s.Get(cardID)
	if err != nil {
		return nil, err
	}

	wb, err := s.wordBookRepo.GetByID(card.WordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, card.WordBookID)
	}

	totalCards, err := s.cardRepo.CountByWordBook(wb.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}

	scheduler.New(wb.FrequencyRatios, totalCards).Review(card, d, time.Now())

	if err := s.cardRepo.UpdateReview(card); err != nil {
		return nil, fmt.Errorf("failed to save review: %w", err)
	}
	return card, nil
}

// NextDue returns the most due card of a word book
func (s *CardService) NextDue(wordBookID int64) (*models.Card, error) {
	wb, err := s.wordBookRepo.GetByID(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, wordBookID)
	}

	card, err := s.cardRepo.NextDue(wordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get next card: %w", err)
	}
	if card == nil {
		return nil, fmt.Errorf("%w: word book %d has no cards", ErrNotFound, wordBookID)
	}
	return card, nil
}

// CardStatistics is the per-difficulty tally of a user's whole collection
type CardStatistics struct {
	TotalCount int                    `json:"totalCount"`
	Counts     models.DifficultyCount `json:"counts"`
}

// UserStatistics tallies all of a user's cards across their word books
func (s *CardService) UserStatistics(userID int64) (*CardStatistics, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("%w: user %d", ErrNotFound, userID)
	}

	total, counts, err := s.cardRepo.CountByDifficultyForUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	return &CardStatistics{TotalCount: total, Counts: counts}, nil
}

// CardDetail pairs a card with its word book for the detail endpoint
type CardDetail struct {
	Card          models.Card `json:"card"`
	WordBookTitle string      `json:"wordBookTitle"`
}

// Detail retrieves a card together with its word book's title
func (s *CardService) Detail(id int64) (*CardDetail, error) {
	card, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	wb, err := s.wordBookRepo.GetByID(card.WordBookID)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}

	detail := &CardDetail{Card: *card}
	if wb != nil {
		detail.WordBookTitle = wb.Title
	}
	return detail, nil
}

// CreateBatch bulk-inserts cards, used by the import endpoint
func (s *CardService) CreateBatch(wordBookID int64, cards []models.CardContent) (int, error) {
	wb, err := s.wordBookRepo.GetByID(wordBookID)
	if err != nil {
		return 0, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return 0, fmt.Errorf("%w: word book %d", ErrNotFound, wordBookID)
	}

	inserted, err := s.cardRepo.CreateBatch(wordBookID, cards)
	if err != nil {
		return inserted, err
	}
	return inserted, nil
}
