package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ferhadbb/BankSite/internal/config"
	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrInvalidAmount              = errors.New("invalid amount")
	ErrInsufficientFunds          = errors.New("insufficient funds")
	ErrAccountNotFound            = errors.New("account not found")
	ErrSourceAccountNotFound      = errors.New("source account not found")
	ErrDestinationAccountNotFound = errors.New("destination account not found")
	ErrSameAccountTransfer        = errors.New("cannot transfer to same account")
	ErrConflict                   = errors.New("concurrent update conflict")
	ErrUnauthorized               = errors.New("unauthorized access to account")
	ErrNotInterestBearing         = errors.New("account does not accrue interest")
)

const (
	defaultDepositDescription    = "User deposit"
	defaultWithdrawalDescription = "User withdrawal"
	interestDescription          = "Monthly interest accrued"

	// transferMaxAttempts bounds the retry loop when two transfers touch the
	// same accounts and the database reports a serialization conflict.
	transferMaxAttempts = 3
)

// ledgerService implements LedgerServiceInterface. All balance mutations go
// through the account repository, which applies them under row locks inside a
// single database transaction.
type ledgerService struct {
	accountRepo repositories.AccountRepositoryInterface
	interest    config.InterestConfig
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewLedgerService creates a ledger service
func NewLedgerService(
	accountRepo repositories.AccountRepositoryInterface,
	interest config.InterestConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) LedgerServiceInterface {
	return &ledgerService{
		accountRepo: accountRepo,
		interest:    interest,
		metrics:     metrics,
		logger:      logger,
	}
}

// Deposit credits an account and appends the matching ledger entry.
// When userID is non-nil the account must belong to that user.
func (s *ledgerService) Deposit(accountID uuid.UUID, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, error) {
	start := time.Now()

	if err := validateAmount(amount); err != nil {
		s.recordOutcome("deposit", "rejected", start)
		return nil, err
	}

	if _, err := s.authorizeAccount(accountID, userID); err != nil {
		s.recordOutcome("deposit", "rejected", start)
		return nil, err
	}

	if description == "" {
		description = defaultDepositDescription
	}

	entry, err := s.accountRepo.ApplyBalanceChange(accountID, amount, models.TransactionTypeDeposit, description)
	if err != nil {
		s.recordOutcome("deposit", "failed", start)
		return nil, s.translateRepositoryError(err)
	}

	s.logger.Info("deposit completed",
		slog.String("account_id", accountID.String()),
		slog.String("amount", amount.String()),
		slog.String("reference", entry.Reference),
	)
	s.recordOutcome("deposit", "success", start)

	return entry, nil
}

// Withdraw debits an account and appends the matching ledger entry. The
// balance is never allowed to go negative.
func (s *ledgerService) Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, error) {
	start := time.Now()

	if err := validateAmount(amount); err != nil {
		s.recordOutcome("withdrawal", "rejected", start)
		return nil, err
	}

	if _, err := s.authorizeAccount(accountID, userID); err != nil {
		s.recordOutcome("withdrawal", "rejected", start)
		return nil, err
	}

	if description == "" {
		description = defaultWithdrawalDescription
	}

	entry, err := s.accountRepo.ApplyBalanceChange(accountID, amount, models.TransactionTypeWithdrawal, description)
	if err != nil {
		s.recordOutcome("withdrawal", "failed", start)
		return nil, s.translateRepositoryError(err)
	}

	s.logger.Info("withdrawal completed",
		slog.String("account_id", accountID.String()),
		slog.String("amount", amount.String()),
		slog.String("reference", entry.Reference),
	)
	s.recordOutcome("withdrawal", "success", start)

	return entry, nil
}

// Transfer moves funds from one account to the account addressed by its
// external number, atomically appending a transfer_out entry on the source
// and a transfer_in entry on the destination. Either both entries exist
// afterwards or neither does.
func (s *ledgerService) Transfer(fromAccountID uuid.UUID, toAccountNumber string, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, *models.Transaction, error) {
	start := time.Now()

	if err := validateAmount(amount); err != nil {
		s.recordOutcome("transfer", "rejected", start)
		return nil, nil, err
	}

	fromAccount, err := s.authorizeAccount(fromAccountID, userID)
	if err != nil {
		if errors.Is(err, ErrAccountNotFound) {
			err = ErrSourceAccountNotFound
		}
		s.recordOutcome("transfer", "rejected", start)
		return nil, nil, err
	}

	toAccount, err := s.accountRepo.GetByAccountNumber(toAccountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			err = ErrDestinationAccountNotFound
		} else {
			err = fmt.Errorf("failed to load destination account: %w", err)
		}
		s.recordOutcome("transfer", "rejected", start)
		return nil, nil, err
	}

	// Same-account is decided by identity, not by comparing number strings
	if fromAccount.ID == toAccount.ID {
		s.recordOutcome("transfer", "rejected", start)
		return nil, nil, ErrSameAccountTransfer
	}
	toAccountID := toAccount.ID

	fromDescription := fmt.Sprintf("Transfer to %s", toAccount.AccountNumber)
	toDescription := fmt.Sprintf("Transfer from %s", fromAccount.AccountNumber)
	if description != "" {
		fromDescription += " - " + description
		toDescription += " - " + description
	}

	var outTx, inTx *models.Transaction
	for attempt := 1; attempt <= transferMaxAttempts; attempt++ {
		outTx, inTx, err = s.accountRepo.ExecuteAtomicTransfer(fromAccountID, toAccountID, amount, fromDescription, toDescription)
		if err == nil || !errors.Is(err, repositories.ErrConflict) {
			break
		}
		s.metrics.IncrementCounter("ledger.conflict.retry", map[string]string{"operation": "transfer"})
		s.logger.Warn("transfer conflict, retrying",
			slog.String("from_account_id", fromAccountID.String()),
			slog.String("to_account_id", toAccountID.String()),
			slog.Int("attempt", attempt),
		)
	}
	if err != nil {
		s.recordOutcome("transfer", "failed", start)
		return nil, nil, s.translateRepositoryError(err)
	}

	s.logger.Info("transfer completed",
		slog.String("from_account_id", fromAccountID.String()),
		slog.String("to_account_id", toAccountID.String()),
		slog.String("amount", amount.String()),
		slog.String("out_reference", outTx.Reference),
		slog.String("in_reference", inTx.Reference),
	)
	s.recordOutcome("transfer", "success", start)
	s.metrics.RecordGauge("ledger.transfer.amount", amount.InexactFloat64(), nil)

	return outTx, inTx, nil
}

// AccrueInterest applies one interest period to a savings account. The
// credited amount is balance * annual rate / periods per year, rounded to
// cents. No entry is appended when the interest rounds to zero.
func (s *ledgerService) AccrueInterest(accountID uuid.UUID) (*models.Transaction, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if account.AccountType != models.AccountTypeSavings {
		return nil, ErrNotInterestBearing
	}

	interest := s.interestFor(account.Balance)
	if !interest.IsPositive() {
		return nil, nil
	}

	entry, err := s.accountRepo.ApplyBalanceChange(accountID, interest, models.TransactionTypeInterest, interestDescription)
	if err != nil {
		return nil, s.translateRepositoryError(err)
	}

	s.logger.Info("interest accrued",
		slog.String("account_id", accountID.String()),
		slog.String("amount", interest.String()),
	)
	s.metrics.IncrementCounter("ledger.interest.accrued", nil)

	return entry, nil
}

// AccrueInterestForAllSavings runs one interest period over every savings
// account and returns the number of accounts credited.
func (s *ledgerService) AccrueInterestForAllSavings() (int, error) {
	accounts, err := s.accountRepo.ListByType(models.AccountTypeSavings)
	if err != nil {
		return 0, fmt.Errorf("failed to list savings accounts: %w", err)
	}

	credited := 0
	for i := range accounts {
		entry, err := s.AccrueInterest(accounts[i].ID)
		if err != nil {
			s.logger.Error("interest accrual failed",
				slog.String("account_id", accounts[i].ID.String()),
				slog.String("error", err.Error()),
			)
			continue
		}
		if entry != nil {
			credited++
		}
	}

	s.logger.Info("interest sweep completed",
		slog.Int("accounts_total", len(accounts)),
		slog.Int("accounts_credited", credited),
	)

	return credited, nil
}

// interestFor computes one period of interest on a balance, rounded to cents
func (s *ledgerService) interestFor(balance decimal.Decimal) decimal.Decimal {
	periods := decimal.NewFromInt(int64(s.interest.PeriodsPerYear))
	return balance.Mul(s.interest.AnnualRate).Div(periods).Round(2)
}

// authorizeAccount loads an account and, when userID is non-nil, verifies
// ownership
func (s *ledgerService) authorizeAccount(accountID uuid.UUID, userID *uuid.UUID) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to load account: %w", err)
	}

	if userID != nil && account.UserID != *userID {
		return nil, ErrUnauthorized
	}

	return account, nil
}

// translateRepositoryError maps repository sentinels onto service sentinels
func (s *ledgerService) translateRepositoryError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, repositories.ErrConflict):
		return ErrConflict
	default:
		return fmt.Errorf("ledger operation failed: %w", err)
	}
}

// validateAmount rejects non-positive amounts and sub-cent precision
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return ErrInvalidAmount
	}
	return nil
}

func (s *ledgerService) recordOutcome(operation, status string, start time.Time) {
	s.metrics.IncrementCounter("ledger.operation", map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordProcessingTime("ledger.operation", time.Since(start))
}
