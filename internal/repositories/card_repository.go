package repositories

import (
	"errors"
	"fmt"

	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrCardNumberExists = errors.New("card number already exists")
)

// cardRepository implements CardRepositoryInterface
type cardRepository struct {
	db *gorm.DB
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB) CardRepositoryInterface {
	return &cardRepository{db: db}
}

// Create persists a new card
func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrCardNumberExists
		}
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// GetByID retrieves a card by ID
func (r *cardRepository) GetByID(id uuid.UUID) (*models.Card, error) {
	var card models.Card
	if err := r.db.Where("id = ?", id).First(&card).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// GetByAccountID retrieves all cards attached to an account
func (r *cardRepository) GetByAccountID(accountID uuid.UUID) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.
		Where("account_id = ?", accountID).
		Order("created_at ASC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// CountByAccountID counts the cards attached to an account
func (r *cardRepository) CountByAccountID(accountID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Card{}).
		Where("account_id = ?", accountID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count cards: %w", err)
	}
	return count, nil
}

// CheckCardNumberExists checks whether a card number is already issued
func (r *cardRepository) CheckCardNumberExists(cardNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Card{}).
		Where("card_number = ?", cardNumber).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check card number existence: %w", err)
	}
	return count > 0, nil
}

// Deactivate marks a card as inactive
func (r *cardRepository) Deactivate(id uuid.UUID) error {
	result := r.db.Model(&models.Card{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{"is_active": false})

	if result.Error != nil {
		return fmt.Errorf("failed to deactivate card: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrCardNotFound
	}
	return nil
}
