package services

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrInvalidAccountType  = errors.New("invalid account type")
	ErrPolicyLimitExceeded = errors.New("account policy limit exceeded")
)

// Opening balances. New users get a seeded savings account; additional
// savings accounts start with a small bonus, checking accounts with zero.
var (
	newUserSeedBalance  = decimal.NewFromInt(1000)
	savingsOpeningBonus = decimal.NewFromInt(50)
)

const (
	seedDepositDescription  = "Initial deposit"
	openingBonusDescription = "Savings opening bonus"
)

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	userRepo        repositories.UserRepositoryInterface
	metrics         MetricsRecorderInterface
	logger          *slog.Logger
}

// NewAccountService creates an account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	userRepo repositories.UserRepositoryInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AccountServiceInterface {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		userRepo:        userRepo,
		metrics:         metrics,
		logger:          logger,
	}
}

// CreateAccountsForNewUser seeds a freshly registered user with a savings
// account holding the starting balance
func (s *accountService) CreateAccountsForNewUser(userID uuid.UUID) (*models.Account, error) {
	return s.openAccountWithBalance(userID, models.AccountTypeSavings, newUserSeedBalance, seedDepositDescription)
}

// OpenAccount opens an additional account for an existing user, enforcing
// the per-user and per-type account limits
func (s *accountService) OpenAccount(userID uuid.UUID, accountType string) (*models.Account, error) {
	opening := decimal.Zero
	description := ""
	if accountType == models.AccountTypeSavings {
		opening = savingsOpeningBonus
		description = openingBonusDescription
	}
	return s.openAccountWithBalance(userID, accountType, opening, description)
}

func (s *accountService) openAccountWithBalance(userID uuid.UUID, accountType string, opening decimal.Decimal, description string) (*models.Account, error) {
	if accountType != models.AccountTypeSavings && accountType != models.AccountTypeChecking {
		return nil, ErrInvalidAccountType
	}

	if _, err := s.userRepo.GetByID(userID); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to verify user: %w", err)
	}

	total, err := s.accountRepo.CountByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}
	if total >= models.MaxAccountsPerUser {
		return nil, ErrPolicyLimitExceeded
	}

	sameType, err := s.accountRepo.CountByUserIDAndType(userID, accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	if sameType >= models.MaxAccountsPerType {
		return nil, ErrPolicyLimitExceeded
	}

	accountNumber, err := s.accountRepo.GenerateUniqueAccountNumber(accountType)
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := &models.Account{
		UserID:        userID,
		AccountNumber: accountNumber,
		AccountType:   accountType,
		Balance:       decimal.Zero,
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	// The opening balance goes through the ledger so the deposit leaves an
	// entry like any other credit.
	if opening.IsPositive() {
		if _, err := s.accountRepo.ApplyBalanceChange(account.ID, opening, models.TransactionTypeDeposit, description); err != nil {
			return nil, fmt.Errorf("failed to apply opening balance: %w", err)
		}
		account.Balance = opening
	}

	s.logger.Info("account opened",
		slog.String("user_id", userID.String()),
		slog.String("account_id", account.ID.String()),
		slog.String("account_type", accountType),
		slog.String("opening_balance", opening.String()),
	)
	s.metrics.IncrementCounter("account.opened", map[string]string{"account_type": accountType})

	return account, nil
}

// GetAccountByID retrieves an account, verifying ownership when userID is
// non-nil
func (s *accountService) GetAccountByID(accountID uuid.UUID, userID *uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if userID != nil && account.UserID != *userID {
		return nil, ErrUnauthorized
	}

	return account, nil
}

// GetAccountByNumber retrieves an account by its account number
func (s *accountService) GetAccountByNumber(accountNumber string) (*models.Account, error) {
	if !models.ValidateAccountNumber(accountNumber) {
		return nil, ErrAccountNotFound
	}

	account, err := s.accountRepo.GetByAccountNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}

	return account, nil
}

// GetUserAccounts retrieves all accounts owned by a user
func (s *accountService) GetUserAccounts(userID uuid.UUID) ([]models.Account, error) {
	accounts, err := s.accountRepo.GetByUserID(userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts: %w", err)
	}
	return accounts, nil
}

// GetAccountTransactions retrieves a page of an account's ledger
func (s *accountService) GetAccountTransactions(accountID uuid.UUID, userID *uuid.UUID, offset, limit int) ([]models.Transaction, int64, error) {
	if _, err := s.GetAccountByID(accountID, userID); err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	transactions, total, err := s.transactionRepo.GetByAccountID(accountID, offset, limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list transactions: %w", err)
	}

	return transactions, total, nil
}

// GetRecentTransactions retrieves the most recent ledger entries for an
// account
func (s *accountService) GetRecentTransactions(accountID uuid.UUID, userID *uuid.UUID, limit int) ([]models.Transaction, error) {
	if _, err := s.GetAccountByID(accountID, userID); err != nil {
		return nil, err
	}

	if limit <= 0 || limit > 50 {
		limit = 10
	}

	transactions, err := s.transactionRepo.GetRecentByAccountID(accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent transactions: %w", err)
	}

	return transactions, nil
}
