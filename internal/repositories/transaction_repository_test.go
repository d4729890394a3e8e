package repositories

import (
	"testing"
	"time"

	"github.com/Ferhadbb/BankSite/internal/database"
	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// TransactionRepositorySuite defines the test suite for TransactionRepository
type TransactionRepositorySuite struct {
	suite.Suite
	db          *database.DB
	repo        TransactionRepositoryInterface
	testUser    *models.User
	testAccount *models.Account
}

// SetupTest runs before each test in the suite
func (s *TransactionRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewTransactionRepository(s.db.DB)

	s.testUser = database.CreateTestUser(s.T(), s.db, "txtester")
	s.testAccount = database.CreateTestAccount(s.T(), s.db, s.testUser.ID, models.AccountTypeChecking, decimal.Zero)
}

// TearDownTest runs after each test in the suite
func (s *TransactionRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestTransactionRepositorySuite runs the test suite
func TestTransactionRepositorySuite(t *testing.T) {
	suite.Run(t, new(TransactionRepositorySuite))
}

// createDeposits writes n sequential deposit entries of 10 each, with
// strictly increasing timestamps so that ordering is deterministic.
func (s *TransactionRepositorySuite) createDeposits(n int) []models.Transaction {
	entries := make([]models.Transaction, 0, n)
	balance := decimal.Zero
	amount := decimal.NewFromInt(10)
	base := time.Now().Add(-time.Duration(n) * time.Second)

	for i := 0; i < n; i++ {
		entry := models.Transaction{
			AccountID:     s.testAccount.ID,
			Type:          models.TransactionTypeDeposit,
			Amount:        amount,
			BalanceBefore: balance,
			BalanceAfter:  balance.Add(amount),
			Description:   "User deposit",
			CreatedAt:     base.Add(time.Duration(i) * time.Second),
		}
		s.NoError(s.repo.Create(&entry))
		entries = append(entries, entry)
		balance = balance.Add(amount)
	}
	return entries
}

func (s *TransactionRepositorySuite) TestCreate() {
	entry := &models.Transaction{
		AccountID:     s.testAccount.ID,
		Type:          models.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(50),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  decimal.NewFromInt(50),
		Description:   "User deposit",
	}

	err := s.repo.Create(entry)
	s.NoError(err)
	s.NotEqual(uuid.Nil, entry.ID)
	s.NotEmpty(entry.Reference)
}

func (s *TransactionRepositorySuite) TestCreate_InvalidBalanceMath() {
	entry := &models.Transaction{
		AccountID:     s.testAccount.ID,
		Type:          models.TransactionTypeDeposit,
		Amount:        decimal.NewFromInt(50),
		BalanceBefore: decimal.Zero,
		BalanceAfter:  decimal.NewFromInt(40), // 0 + 50 != 40
		Description:   "User deposit",
	}

	err := s.repo.Create(entry)
	s.Error(err)
}

func (s *TransactionRepositorySuite) TestGetByID() {
	entries := s.createDeposits(1)

	found, err := s.repo.GetByID(entries[0].ID)
	s.NoError(err)
	s.Equal(entries[0].ID, found.ID)
	s.True(found.Amount.Equal(decimal.NewFromInt(10)))

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestGetByReference() {
	entries := s.createDeposits(1)

	found, err := s.repo.GetByReference(entries[0].Reference)
	s.NoError(err)
	s.Equal(entries[0].ID, found.ID)

	_, err = s.repo.GetByReference("TXN-missing")
	s.ErrorIs(err, ErrTransactionNotFound)
}

func (s *TransactionRepositorySuite) TestGetByAccountID_Pagination() {
	entries := s.createDeposits(5)

	page, total, err := s.repo.GetByAccountID(s.testAccount.ID, 0, 3)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page, 3)
	// Newest first
	s.Equal(entries[4].ID, page[0].ID)
	s.Equal(entries[3].ID, page[1].ID)

	page, total, err = s.repo.GetByAccountID(s.testAccount.ID, 3, 3)
	s.NoError(err)
	s.Equal(int64(5), total)
	s.Len(page, 2)
	s.Equal(entries[1].ID, page[0].ID)
	s.Equal(entries[0].ID, page[1].ID)
}

func (s *TransactionRepositorySuite) TestGetByAccountID_Empty() {
	page, total, err := s.repo.GetByAccountID(uuid.New(), 0, 10)
	s.NoError(err)
	s.Equal(int64(0), total)
	s.Empty(page)
}

func (s *TransactionRepositorySuite) TestGetRecentByAccountID() {
	entries := s.createDeposits(4)

	recent, err := s.repo.GetRecentByAccountID(s.testAccount.ID, 2)
	s.NoError(err)
	s.Len(recent, 2)
	s.Equal(entries[3].ID, recent[0].ID)
	s.Equal(entries[2].ID, recent[1].ID)
}

// Ledger entries are append-only; updates and deletes must be rejected by
// the model hooks.
func (s *TransactionRepositorySuite) TestLedgerEntriesAreImmutable() {
	entries := s.createDeposits(1)
	entry := entries[0]

	entry.Description = "tampered"
	err := s.db.Save(&entry).Error
	s.ErrorIs(err, models.ErrTransactionImmutable)

	err = s.db.Delete(&entry).Error
	s.ErrorIs(err, models.ErrTransactionImmutable)

	found, err := s.repo.GetByID(entry.ID)
	s.NoError(err)
	s.Equal("User deposit", found.Description)
}
