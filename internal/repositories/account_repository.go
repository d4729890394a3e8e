package repositories

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNumberExists = errors.New("account number already exists")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrConflict            = errors.New("concurrent update conflict")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db *gorm.DB
	mu sync.Mutex // For account number generation
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB) AccountRepositoryInterface {
	return &accountRepository{
		db: db,
	}
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountNumberExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uuid.UUID) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("id = ?", id).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByAccountNumber retrieves an account by account number
func (r *accountRepository) GetByAccountNumber(accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByUserID retrieves all accounts for a user
func (r *accountRepository) GetByUserID(userID uuid.UUID) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("user_id = ?", userID).Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to get accounts for user: %w", err)
	}
	return accounts, nil
}

// CountByUserID counts all accounts owned by a user
func (r *accountRepository) CountByUserID(userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts: %w", err)
	}
	return count, nil
}

// CountByUserIDAndType counts a user's accounts of one type
func (r *accountRepository) CountByUserIDAndType(userID uuid.UUID, accountType string) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("user_id = ? AND account_type = ?", userID, accountType).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count accounts by type: %w", err)
	}
	return count, nil
}

// ListByType retrieves all accounts of one type, oldest first. Used by the
// interest accrual sweep.
func (r *accountRepository) ListByType(accountType string) ([]models.Account, error) {
	var accounts []models.Account
	if err := r.db.Where("account_type = ?", accountType).
		Order("created_at ASC").Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to list accounts by type: %w", err)
	}
	return accounts, nil
}

// CheckAccountNumberExists checks if an account number already exists
func (r *accountRepository) CheckAccountNumberExists(accountNumber string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("account_number = ?", accountNumber).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check account number existence: %w", err)
	}
	return count > 0, nil
}

// GenerateUniqueAccountNumber generates a unique account number, retrying
// on collision
func (r *accountRepository) GenerateUniqueAccountNumber(accountType string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		accountNumber := models.GenerateAccountNumber(accountType)
		if accountNumber == "" {
			return "", fmt.Errorf("invalid account type for number generation")
		}

		exists, err := r.CheckAccountNumberExists(accountNumber)
		if err != nil {
			return "", err
		}

		if !exists {
			return accountNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique account number after %d attempts", maxAttempts)
}

// ApplyBalanceChange updates the account balance and appends the matching
// ledger entry in one database transaction, under a row lock.
func (r *accountRepository) ApplyBalanceChange(accountID uuid.UUID, amount decimal.Decimal, transactionType, description string) (*models.Transaction, error) {
	var entry *models.Transaction

	err := r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account
		if err := lockForUpdate(tx).Where("id = ?", accountID).First(&account).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		balanceBefore := account.Balance

		entry = &models.Transaction{
			AccountID:     account.ID,
			Type:          transactionType,
			Amount:        amount,
			BalanceBefore: balanceBefore,
			Description:   description,
		}

		if entry.IsCredit() {
			if err := account.Credit(amount); err != nil {
				return err
			}
		} else if entry.IsDebit() {
			if err := account.Debit(amount); err != nil {
				if errors.Is(err, models.ErrInsufficientFunds) {
					return ErrInsufficientFunds
				}
				return err
			}
		} else {
			return fmt.Errorf("invalid transaction type: %s", transactionType)
		}

		entry.BalanceAfter = account.Balance

		if err := tx.Save(&account).Error; err != nil {
			return fmt.Errorf("failed to update account balance: %w", err)
		}

		if err := tx.Create(entry).Error; err != nil {
			return fmt.Errorf("failed to create ledger entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, translateConflict(err)
	}

	return entry, nil
}

// ExecuteAtomicTransfer performs an atomic account-to-account transfer.
// Rows are locked in ascending account-id order so that a concurrent
// reverse transfer cannot deadlock against this one.
func (r *accountRepository) ExecuteAtomicTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, fromDescription, toDescription string) (outTx, inTx *models.Transaction, err error) {
	if fromAccountID == toAccountID {
		return nil, nil, fmt.Errorf("cannot transfer within a single account")
	}

	err = r.db.Transaction(func(tx *gorm.DB) error {
		first, second := fromAccountID, toAccountID
		if strings.Compare(second.String(), first.String()) < 0 {
			first, second = second, first
		}

		locked := make(map[uuid.UUID]*models.Account, 2)
		for _, id := range []uuid.UUID{first, second} {
			var account models.Account
			if err := lockForUpdate(tx).Where("id = ?", id).First(&account).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return ErrAccountNotFound
				}
				return fmt.Errorf("failed to lock account: %w", err)
			}
			locked[id] = &account
		}

		fromAccount := locked[fromAccountID]
		toAccount := locked[toAccountID]

		if fromAccount.Balance.LessThan(amount) {
			return ErrInsufficientFunds
		}

		outTx = &models.Transaction{
			AccountID:     fromAccount.ID,
			Type:          models.TransactionTypeTransferOut,
			Amount:        amount,
			BalanceBefore: fromAccount.Balance,
			Description:   fromDescription,
		}
		inTx = &models.Transaction{
			AccountID:     toAccount.ID,
			Type:          models.TransactionTypeTransferIn,
			Amount:        amount,
			BalanceBefore: toAccount.Balance,
			Description:   toDescription,
		}

		if err := fromAccount.Debit(amount); err != nil {
			return err
		}
		if err := toAccount.Credit(amount); err != nil {
			return err
		}

		outTx.BalanceAfter = fromAccount.Balance
		inTx.BalanceAfter = toAccount.Balance

		if err := tx.Save(fromAccount).Error; err != nil {
			return fmt.Errorf("failed to debit source account: %w", err)
		}
		if err := tx.Save(toAccount).Error; err != nil {
			return fmt.Errorf("failed to credit destination account: %w", err)
		}

		if err := tx.Create(outTx).Error; err != nil {
			return fmt.Errorf("failed to create transfer_out entry: %w", err)
		}
		if err := tx.Create(inTx).Error; err != nil {
			return fmt.Errorf("failed to create transfer_in entry: %w", err)
		}

		return nil
	})
	if err != nil {
		return nil, nil, translateConflict(err)
	}

	return outTx, inTx, nil
}

// lockForUpdate requests a row-level write lock on postgres. sqlite has no
// SELECT ... FOR UPDATE; it serializes writers itself.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	return tx
}

// translateConflict maps storage-level serialization failures onto
// ErrConflict so callers can retry or surface them distinctly.
func translateConflict(err error) error {
	if err == nil {
		return nil
	}

	msg := err.Error()
	if strings.Contains(msg, "deadlock detected") ||
		strings.Contains(msg, "could not serialize access") ||
		strings.Contains(msg, "database is locked") {
		return fmt.Errorf("%w: %s", ErrConflict, msg)
	}

	return err
}
