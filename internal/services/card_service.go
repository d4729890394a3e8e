package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrCardNotFound     = errors.New("card not found")
	ErrCardLimitReached = errors.New("card limit reached for account")
)

// cardNumberMaxAttempts bounds the retry loop on card number collisions
const cardNumberMaxAttempts = 10

// cardService implements CardServiceInterface
type cardService struct {
	cardRepo    repositories.CardRepositoryInterface
	accountRepo repositories.AccountRepositoryInterface
	logger      *slog.Logger
}

// NewCardService creates a card service
func NewCardService(
	cardRepo repositories.CardRepositoryInterface,
	accountRepo repositories.AccountRepositoryInterface,
	logger *slog.Logger,
) CardServiceInterface {
	return &cardService{
		cardRepo:    cardRepo,
		accountRepo: accountRepo,
		logger:      logger,
	}
}

// IssueCard issues a new card for an account the user owns. Each account
// holds at most MaxCardsPerAccount cards.
func (s *cardService) IssueCard(accountID, userID uuid.UUID) (*models.Card, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.UserID != userID {
		return nil, ErrUnauthorized
	}

	count, err := s.cardRepo.CountByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to count cards: %w", err)
	}
	if count >= models.MaxCardsPerAccount {
		return nil, ErrCardLimitReached
	}

	card, err := s.generateCard(accountID)
	if err != nil {
		return nil, err
	}

	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Info("card issued",
		slog.String("account_id", accountID.String()),
		slog.String("card_id", card.ID.String()),
		slog.String("card_number", card.MaskedNumber()),
	)

	return card, nil
}

// generateCard builds a card with a number not already issued
func (s *cardService) generateCard(accountID uuid.UUID) (*models.Card, error) {
	for attempt := 0; attempt < cardNumberMaxAttempts; attempt++ {
		number, expiry, cvv := models.GenerateCardDetails()

		exists, err := s.cardRepo.CheckCardNumberExists(number)
		if err != nil {
			return nil, fmt.Errorf("failed to check card number: %w", err)
		}
		if exists {
			continue
		}

		return &models.Card{
			AccountID:  accountID,
			CardNumber: number,
			ExpiryDate: expiry,
			CVV:        cvv,
			IsActive:   true,
		}, nil
	}
	return nil, fmt.Errorf("failed to generate unique card number after %d attempts", cardNumberMaxAttempts)
}

// GetAccountCards lists the cards attached to an account the user owns
func (s *cardService) GetAccountCards(accountID, userID uuid.UUID) ([]models.Card, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}
	if account.UserID != userID {
		return nil, ErrUnauthorized
	}

	cards, err := s.cardRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to list cards: %w", err)
	}
	return cards, nil
}

// DeactivateCard deactivates a card the user owns
func (s *cardService) DeactivateCard(cardID, userID uuid.UUID) error {
	card, err := s.cardRepo.GetByID(cardID)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to load card: %w", err)
	}

	account, err := s.accountRepo.GetByID(card.AccountID)
	if err != nil {
		return fmt.Errorf("failed to load card account: %w", err)
	}
	if account.UserID != userID {
		return ErrUnauthorized
	}

	if err := s.cardRepo.Deactivate(cardID); err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return ErrCardNotFound
		}
		return fmt.Errorf("failed to deactivate card: %w", err)
	}

	s.logger.Info("card deactivated",
		slog.String("card_id", cardID.String()),
		slog.String("account_id", card.AccountID.String()),
	)

	return nil
}
