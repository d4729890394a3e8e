package services

import (
	"log/slog"
	"testing"

	"github.com/Ferhadbb/BankSite/internal/config"
	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"
	"github.com/Ferhadbb/BankSite/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LedgerServiceSuite defines the test suite for LedgerServiceInterface
type LedgerServiceSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	accountRepo *repository_mocks.MockAccountRepositoryInterface
	metrics     *recordingMetrics
	service     *ledgerService

	testUserID    uuid.UUID
	otherUserID   uuid.UUID
	testAccountID uuid.UUID
	destAccountID uuid.UUID
}

// SetupTest runs before each test in the suite
func (s *LedgerServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.metrics = newRecordingMetrics()

	interest := config.InterestConfig{
		AnnualRate:     decimal.NewFromFloat(0.01),
		PeriodsPerYear: 12,
	}
	s.service = NewLedgerService(s.accountRepo, interest, s.metrics, slog.Default()).(*ledgerService)

	// Setup common test data
	s.testUserID = uuid.New()
	s.otherUserID = uuid.New()
	s.testAccountID = uuid.New()
	s.destAccountID = uuid.New()
}

// TearDownTest runs after each test in the suite
func (s *LedgerServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestLedgerServiceSuite runs the test suite
func TestLedgerServiceSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceSuite))
}

func (s *LedgerServiceSuite) checkingAccount(id uuid.UUID, balance string) *models.Account {
	return &models.Account{
		ID:            id,
		UserID:        s.testUserID,
		AccountNumber: "1012345678",
		AccountType:   models.AccountTypeChecking,
		Balance:       decimal.RequireFromString(balance),
	}
}

func (s *LedgerServiceSuite) savingsAccount(id uuid.UUID, balance string) *models.Account {
	return &models.Account{
		ID:            id,
		UserID:        s.testUserID,
		AccountNumber: "2012345678",
		AccountType:   models.AccountTypeSavings,
		Balance:       decimal.RequireFromString(balance),
	}
}

func entryFor(account *models.Account, transactionType string, amount decimal.Decimal, description string) *models.Transaction {
	after := account.Balance.Add(amount)
	if transactionType == models.TransactionTypeWithdrawal || transactionType == models.TransactionTypeTransferOut {
		after = account.Balance.Sub(amount)
	}
	return &models.Transaction{
		ID:            uuid.New(),
		AccountID:     account.ID,
		Type:          transactionType,
		Amount:        amount,
		BalanceBefore: account.Balance,
		BalanceAfter:  after,
		Description:   description,
		Reference:     models.GenerateTransactionReference(),
	}
}

func (s *LedgerServiceSuite) TestDeposit() {
	account := s.checkingAccount(s.testAccountID, "100.00")
	amount := decimal.RequireFromString("25.50")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(s.testAccountID, amount, models.TransactionTypeDeposit, "User deposit").
		Return(entryFor(account, models.TransactionTypeDeposit, amount, "User deposit"), nil)

	entry, err := s.service.Deposit(s.testAccountID, amount, "", &s.testUserID)
	s.NoError(err)
	s.Equal(models.TransactionTypeDeposit, entry.Type)
	s.True(entry.Amount.Equal(amount))
	s.True(entry.BalanceAfter.Equal(decimal.RequireFromString("125.50")))
	s.Equal(1, s.metrics.counterValue("ledger.operation", map[string]string{"operation": "deposit", "status": "success"}))
}

func (s *LedgerServiceSuite) TestDeposit_CustomDescription() {
	account := s.checkingAccount(s.testAccountID, "0.00")
	amount := decimal.NewFromInt(10)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(s.testAccountID, amount, models.TransactionTypeDeposit, "Paycheck").
		Return(entryFor(account, models.TransactionTypeDeposit, amount, "Paycheck"), nil)

	_, err := s.service.Deposit(s.testAccountID, amount, "Paycheck", &s.testUserID)
	s.NoError(err)
}

func (s *LedgerServiceSuite) TestDeposit_InvalidAmount() {
	cases := []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(-5),
		decimal.RequireFromString("10.005"), // sub-cent precision
	}

	for _, amount := range cases {
		_, err := s.service.Deposit(s.testAccountID, amount, "", &s.testUserID)
		s.ErrorIs(err, ErrInvalidAmount, "amount %s", amount)
	}
}

func (s *LedgerServiceSuite) TestDeposit_AccountNotFound() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.Deposit(s.testAccountID, decimal.NewFromInt(10), "", &s.testUserID)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *LedgerServiceSuite) TestDeposit_Unauthorized() {
	account := s.checkingAccount(s.testAccountID, "100.00")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)

	_, err := s.service.Deposit(s.testAccountID, decimal.NewFromInt(10), "", &s.otherUserID)
	s.ErrorIs(err, ErrUnauthorized)
}

func (s *LedgerServiceSuite) TestWithdraw() {
	account := s.checkingAccount(s.testAccountID, "200.00")
	amount := decimal.NewFromInt(80)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(s.testAccountID, amount, models.TransactionTypeWithdrawal, "User withdrawal").
		Return(entryFor(account, models.TransactionTypeWithdrawal, amount, "User withdrawal"), nil)

	entry, err := s.service.Withdraw(s.testAccountID, amount, "", &s.testUserID)
	s.NoError(err)
	s.Equal(models.TransactionTypeWithdrawal, entry.Type)
	s.True(entry.BalanceAfter.Equal(decimal.NewFromInt(120)))
}

func (s *LedgerServiceSuite) TestWithdraw_InsufficientFunds() {
	account := s.checkingAccount(s.testAccountID, "100.00")
	amount := decimal.NewFromInt(500)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(s.testAccountID, amount, models.TransactionTypeWithdrawal, "User withdrawal").
		Return(nil, repositories.ErrInsufficientFunds)

	_, err := s.service.Withdraw(s.testAccountID, amount, "", &s.testUserID)
	s.ErrorIs(err, ErrInsufficientFunds)
	s.Equal(1, s.metrics.counterValue("ledger.operation", map[string]string{"operation": "withdrawal", "status": "failed"}))
}

func (s *LedgerServiceSuite) TestTransfer() {
	from := s.checkingAccount(s.testAccountID, "1000.00")
	to := s.savingsAccount(s.destAccountID, "50.00")
	amount := decimal.NewFromInt(300)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2012345678").Return(to, nil)
	s.accountRepo.EXPECT().
		ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount,
			"Transfer to 2012345678", "Transfer from 1012345678").
		Return(
			entryFor(from, models.TransactionTypeTransferOut, amount, "Transfer to 2012345678"),
			entryFor(to, models.TransactionTypeTransferIn, amount, "Transfer from 1012345678"),
			nil,
		)

	outTx, inTx, err := s.service.Transfer(s.testAccountID, "2012345678", amount, "", &s.testUserID)
	s.NoError(err)
	s.Equal(models.TransactionTypeTransferOut, outTx.Type)
	s.Equal(models.TransactionTypeTransferIn, inTx.Type)
	s.True(outTx.Amount.Equal(inTx.Amount))
	s.True(outTx.BalanceAfter.Equal(decimal.NewFromInt(700)))
	s.True(inTx.BalanceAfter.Equal(decimal.NewFromInt(350)))
}

// A caller-supplied description is appended to the generated one on both
// legs of the transfer.
func (s *LedgerServiceSuite) TestTransfer_DescriptionSuffix() {
	from := s.checkingAccount(s.testAccountID, "1000.00")
	to := s.savingsAccount(s.destAccountID, "50.00")
	amount := decimal.NewFromInt(10)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2012345678").Return(to, nil)
	s.accountRepo.EXPECT().
		ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount,
			"Transfer to 2012345678 - Rent", "Transfer from 1012345678 - Rent").
		Return(
			entryFor(from, models.TransactionTypeTransferOut, amount, "Transfer to 2012345678 - Rent"),
			entryFor(to, models.TransactionTypeTransferIn, amount, "Transfer from 1012345678 - Rent"),
			nil,
		)

	_, _, err := s.service.Transfer(s.testAccountID, "2012345678", amount, "Rent", &s.testUserID)
	s.NoError(err)
}

// The destination number may resolve to the source account itself, for
// example when a user pastes their own number. Identity is what matters,
// so the rejection fires even though the numbers differ from the id.
func (s *LedgerServiceSuite) TestTransfer_SameAccount() {
	from := s.checkingAccount(s.testAccountID, "1000.00")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("1012345678").Return(from, nil)

	_, _, err := s.service.Transfer(s.testAccountID, "1012345678", decimal.NewFromInt(10), "", &s.testUserID)
	s.ErrorIs(err, ErrSameAccountTransfer)
}

func (s *LedgerServiceSuite) TestTransfer_SourceNotFound() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(nil, repositories.ErrAccountNotFound)

	_, _, err := s.service.Transfer(s.testAccountID, "2012345678", decimal.NewFromInt(10), "", &s.testUserID)
	s.ErrorIs(err, ErrSourceAccountNotFound)
}

func (s *LedgerServiceSuite) TestTransfer_DestinationNotFound() {
	from := s.checkingAccount(s.testAccountID, "1000.00")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2099999999").Return(nil, repositories.ErrAccountNotFound)

	_, _, err := s.service.Transfer(s.testAccountID, "2099999999", decimal.NewFromInt(10), "", &s.testUserID)
	s.ErrorIs(err, ErrDestinationAccountNotFound)
}

func (s *LedgerServiceSuite) TestTransfer_InsufficientFunds() {
	from := s.checkingAccount(s.testAccountID, "100.00")
	to := s.savingsAccount(s.destAccountID, "50.00")
	amount := decimal.NewFromInt(500)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2012345678").Return(to, nil)
	s.accountRepo.EXPECT().
		ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount, gomock.Any(), gomock.Any()).
		Return(nil, nil, repositories.ErrInsufficientFunds)

	_, _, err := s.service.Transfer(s.testAccountID, "2012345678", amount, "", &s.testUserID)
	s.ErrorIs(err, ErrInsufficientFunds)
}

// A serialization conflict is retried; the second attempt succeeds.
func (s *LedgerServiceSuite) TestTransfer_ConflictRetried() {
	from := s.checkingAccount(s.testAccountID, "1000.00")
	to := s.savingsAccount(s.destAccountID, "50.00")
	amount := decimal.NewFromInt(10)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2012345678").Return(to, nil)
	gomock.InOrder(
		s.accountRepo.EXPECT().
			ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount, gomock.Any(), gomock.Any()).
			Return(nil, nil, repositories.ErrConflict),
		s.accountRepo.EXPECT().
			ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount, gomock.Any(), gomock.Any()).
			Return(
				entryFor(from, models.TransactionTypeTransferOut, amount, "Transfer to 2012345678"),
				entryFor(to, models.TransactionTypeTransferIn, amount, "Transfer from 1012345678"),
				nil,
			),
	)

	_, _, err := s.service.Transfer(s.testAccountID, "2012345678", amount, "", &s.testUserID)
	s.NoError(err)
	s.Equal(1, s.metrics.counterValue("ledger.conflict.retry", map[string]string{"operation": "transfer"}))
}

// After the attempt budget is spent the conflict surfaces to the caller.
func (s *LedgerServiceSuite) TestTransfer_ConflictExhausted() {
	from := s.checkingAccount(s.testAccountID, "1000.00")
	to := s.savingsAccount(s.destAccountID, "50.00")
	amount := decimal.NewFromInt(10)

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(from, nil)
	s.accountRepo.EXPECT().GetByAccountNumber("2012345678").Return(to, nil)
	s.accountRepo.EXPECT().
		ExecuteAtomicTransfer(s.testAccountID, s.destAccountID, amount, gomock.Any(), gomock.Any()).
		Return(nil, nil, repositories.ErrConflict).
		Times(transferMaxAttempts)

	_, _, err := s.service.Transfer(s.testAccountID, "2012345678", amount, "", &s.testUserID)
	s.ErrorIs(err, ErrConflict)
	s.Equal(transferMaxAttempts, s.metrics.counterValue("ledger.conflict.retry", map[string]string{"operation": "transfer"}))
}

// 1200.00 at a 1% annual rate over 12 periods credits exactly 1.00.
func (s *LedgerServiceSuite) TestAccrueInterest() {
	account := s.savingsAccount(s.testAccountID, "1200.00")
	expected := decimal.RequireFromString("1.00")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(s.testAccountID, gomock.Any(), models.TransactionTypeInterest, "Monthly interest accrued").
		DoAndReturn(func(accountID uuid.UUID, amount decimal.Decimal, transactionType, description string) (*models.Transaction, error) {
			s.True(amount.Equal(expected), "expected interest of %s but got %s", expected, amount)
			return entryFor(account, transactionType, amount, description), nil
		})

	entry, err := s.service.AccrueInterest(s.testAccountID)
	s.NoError(err)
	s.Equal(models.TransactionTypeInterest, entry.Type)
	s.True(entry.Amount.Equal(expected))
	s.Equal(1, s.metrics.counterValue("ledger.interest.accrued", nil))
}

func (s *LedgerServiceSuite) TestAccrueInterest_CheckingAccount() {
	account := s.checkingAccount(s.testAccountID, "1200.00")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)

	_, err := s.service.AccrueInterest(s.testAccountID)
	s.ErrorIs(err, ErrNotInterestBearing)
}

// Interest that rounds to zero produces no ledger entry.
func (s *LedgerServiceSuite) TestAccrueInterest_RoundsToZero() {
	account := s.savingsAccount(s.testAccountID, "0.10")

	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(account, nil)

	entry, err := s.service.AccrueInterest(s.testAccountID)
	s.NoError(err)
	s.Nil(entry)
}

func (s *LedgerServiceSuite) TestAccrueInterest_AccountNotFound() {
	s.accountRepo.EXPECT().GetByID(s.testAccountID).Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.AccrueInterest(s.testAccountID)
	s.ErrorIs(err, ErrAccountNotFound)
}

// The sweep credits accounts with positive interest, skips zero balances
// and keeps going past failures.
func (s *LedgerServiceSuite) TestAccrueInterestForAllSavings() {
	funded := s.savingsAccount(uuid.New(), "1200.00")
	empty := s.savingsAccount(uuid.New(), "0.00")
	missing := s.savingsAccount(uuid.New(), "500.00")

	s.accountRepo.EXPECT().ListByType(models.AccountTypeSavings).
		Return([]models.Account{*funded, *empty, *missing}, nil)

	s.accountRepo.EXPECT().GetByID(funded.ID).Return(funded, nil)
	s.accountRepo.EXPECT().
		ApplyBalanceChange(funded.ID, gomock.Any(), models.TransactionTypeInterest, "Monthly interest accrued").
		Return(entryFor(funded, models.TransactionTypeInterest, decimal.RequireFromString("1.00"), "Monthly interest accrued"), nil)

	s.accountRepo.EXPECT().GetByID(empty.ID).Return(empty, nil)
	s.accountRepo.EXPECT().GetByID(missing.ID).Return(nil, repositories.ErrAccountNotFound)

	credited, err := s.service.AccrueInterestForAllSavings()
	s.NoError(err)
	s.Equal(1, credited)
}
