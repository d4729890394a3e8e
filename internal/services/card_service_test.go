package services

import (
	"log/slog"
	"testing"

	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"
	"github.com/Ferhadbb/BankSite/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// CardServiceSuite defines the test suite for CardServiceInterface
type CardServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	cardRepo    *repository_mocks.MockCardRepositoryInterface
	accountRepo *repository_mocks.MockAccountRepositoryInterface
	service     *cardService

	testUserID    uuid.UUID
	otherUserID   uuid.UUID
	testAccountID uuid.UUID
	testAccount   *models.Account
}

// SetupTest runs before each test in the suite
func (s *CardServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.cardRepo = repository_mocks.NewMockCardRepositoryInterface(s.ctrl)
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.service = NewCardService(s.cardRepo, s.accountRepo, slog.Default()).(*cardService)

	// Setup common test data
	s.testUserID = uuid.New()
	s.otherUserID = uuid.New()
	s.testAccountID = uuid.New()
	s.testAccount = &models.Account{
		ID:            s.testAccountID,
		UserID:        s.testUserID,
		AccountNumber: "1012345678",
		AccountType:   models.AccountTypeChecking,
	}
}

// TearDownTest runs after each test in the suite
func (s *CardServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestCardServiceSuite runs the test suite
func TestCardServiceSuite(t *testing.T) {
	suite.Run(t, new(CardServiceSuite))
}

func (s *CardServiceSuite) TestIssueCard() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)
	s.cardRepo.EXPECT().CountByAccountID(s.testAccountID).Return(int64(0), nil)
	s.cardRepo.EXPECT().CheckCardNumberExists(gomock.Any()).Return(false, nil)
	s.cardRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(card *models.Card) error {
		card.ID = uuid.New()
		return nil
	})

	card, err := s.service.IssueCard(s.testAccountID, s.testUserID)
	s.NoError(err)
	s.Equal(s.testAccountID, card.AccountID)
	s.Len(card.CardNumber, models.CardNumberLength)
	s.Len(card.CVV, models.CVVLength)
	s.True(card.IsActive)
	s.False(card.IsExpired())
}

// A colliding card number is regenerated before creation.
func (s *CardServiceSuite) TestIssueCard_NumberCollision() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)
	s.cardRepo.EXPECT().CountByAccountID(s.testAccountID).Return(int64(1), nil)
	gomock.InOrder(
		s.cardRepo.EXPECT().CheckCardNumberExists(gomock.Any()).Return(true, nil),
		s.cardRepo.EXPECT().CheckCardNumberExists(gomock.Any()).Return(false, nil),
	)
	s.cardRepo.EXPECT().Create(gomock.Any()).Return(nil)

	_, err := s.service.IssueCard(s.testAccountID, s.testUserID)
	s.NoError(err)
}

// An account holds at most three cards.
func (s *CardServiceSuite) TestIssueCard_LimitReached() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)
	s.cardRepo.EXPECT().CountByAccountID(s.testAccountID).Return(int64(models.MaxCardsPerAccount), nil)

	_, err := s.service.IssueCard(s.testAccountID, s.testUserID)
	s.ErrorIs(err, ErrCardLimitReached)
}

func (s *CardServiceSuite) TestIssueCard_AccountNotFound() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.IssueCard(s.testAccountID, s.testUserID)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *CardServiceSuite) TestIssueCard_NotOwned() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)

	_, err := s.service.IssueCard(s.testAccountID, s.otherUserID)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *CardServiceSuite) TestGetAccountCards() {
	cards := []models.Card{
		{ID: uuid.New(), AccountID: s.testAccountID},
		{ID: uuid.New(), AccountID: s.testAccountID},
	}

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)
	s.cardRepo.EXPECT().GetByAccountID(s.testAccountID).Return(cards, nil)

	found, err := s.service.GetAccountCards(s.testAccountID, s.testUserID)
	s.NoError(err)
	s.Len(found, 2)
}

func (s *CardServiceSuite) TestGetAccountCards_NotOwned() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)

	_, err := s.service.GetAccountCards(s.testAccountID, s.otherUserID)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *CardServiceSuite) TestDeactivateCard() {
	cardID := uuid.New()
	card := &models.Card{ID: cardID, AccountID: s.testAccountID, IsActive: true}

	s.cardRepo.EXPECT().GetByID(cardID).Return(card, nil)
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)
	s.cardRepo.EXPECT().Deactivate(cardID).Return(nil)

	s.NoError(s.service.DeactivateCard(cardID, s.testUserID))
}

func (s *CardServiceSuite) TestDeactivateCard_NotFound() {
	cardID := uuid.New()

	s.cardRepo.EXPECT().GetByID(cardID).Return(nil, repositories.ErrCardNotFound)

	err := s.service.DeactivateCard(cardID, s.testUserID)
	s.ErrorIs(err, ErrCardNotFound)
}

// Deactivation is refused when the card hangs off someone else's account.
func (s *CardServiceSuite) TestDeactivateCard_NotOwned() {
	cardID := uuid.New()
	card := &models.Card{ID: cardID, AccountID: s.testAccountID, IsActive: true}

	s.cardRepo.EXPECT().GetByID(cardID).Return(card, nil)
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(s.testAccount, nil)

	err := s.service.DeactivateCard(cardID, s.otherUserID)
	s.ErrorIs(err, ErrUnauthorized)
}
