package service

import (
	"fmt"

	"github.com/QyongGin/learnkit/internal/models"
	"github.com/QyongGin/learnkit/internal/repository"
	"github.com/QyongGin/learnkit/internal/validation"
)

// WordBookService handles word book business logic
type WordBookService struct {
	wordBookRepo *repository.WordBookRepository
	cardRepo     *repository.CardRepository
}

// NewWordBookService creates a new word book service
func NewWordBookService(wordBookRepo *repository.WordBookRepository, cardRepo *repository.CardRepository) *WordBookService {
	return &WordBookService{
		wordBookRepo: wordBookRepo,
		cardRepo:     cardRepo,
	}
}

// Create makes a new word book. A nil ratios pointer selects the
// 6:3:1 defaults; explicit ratios are validated first.
func (s *WordBookService) Create(userID int64, title string, description *string, ratios *models.FrequencyRatios) (*models.WordBook, error) {
	if err := validation.ValidateTitle(title); err != nil {
		return nil, err
	}

	effective := models.DefaultRatios
	if ratios != nil {
		if err := ratios.Validate(); err != nil {
			return nil, err
		}
		effective = *ratios
	}

	wb, err := s.wordBookRepo.Create(userID, title, description, effective)
	if err != nil {
		return nil, fmt.Errorf("failed to create word book: %w", err)
	}
	return wb, nil
}

// Get retrieves a word book by ID
func (s *WordBookService) Get(id int64) (*models.WordBook, error) {
	wb, err := s.wordBookRepo.GetByID(id)
	if err != nil {
		return nil, fmt.Errorf("failed to get word book: %w", err)
	}
	if wb == nil {
		return nil, fmt.Errorf("%w: word book %d", ErrNotFound, id)
	}
	return wb, nil
}

// ListByUser retrieves a user's word books
func (s *WordBookService) ListByUser(userID int64) ([]models.WordBook, error) {
	books, err := s.wordBookRepo.ListByUser(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list word books: %w", err)
	}
	return books, nil
}

// Update applies a partial update. Ratio changes require the complete
// triple and are rejected whole when invalid.
func (s *WordBookService) Update(id int64, patch models.WordBookUpdate) (*models.WordBook, error) {
	wb, err := s.Get(id)
	if err != nil {
		return nil, err
	}

	if patch.Title != nil {
		if err := validation.ValidateTitle(*patch.Title); err != nil {
			return nil, err
		}
	}
	if err := wb.ApplyUpdate(patch); err != nil {
		return nil, err
	}

	if err := s.wordBookRepo.Update(wb); err != nil {
		return nil, fmt.Errorf("failed to update word book: %w", err)
	}
	return s.Get(id)
}

// Delete removes a word book and its cards
func (s *WordBookService) Delete(id int64) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	if err := s.wordBookRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete word book: %w", err)
	}
	return nil
}

// DifficultyCounts tallies a word book's cards per difficulty
func (s *WordBookService) DifficultyCounts(id int64) (models.DifficultyCount, error) {
	if _, err := s.Get(id); err != nil {
		return models.DifficultyCount{}, err
	}

	counts, err := s.cardRepo.CountByDifficultyForWordBook(id)
	if err != nil {
		return models.DifficultyCount{}, fmt.Errorf("failed to count cards: %w", err)
	}
	return counts, nil
}
