package repositories

import (
	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// UserRepositoryInterface defines the contract for user repository operations
type UserRepositoryInterface interface {
	Create(user *models.User) error
	GetByID(id uuid.UUID) (*models.User, error)
	GetByUsername(username string) (*models.User, error)
	ExistsByUsername(username string) (bool, error)
	Update(user *models.User) error
	UpdateFullName(userID uuid.UUID, fullName string) error
}

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uuid.UUID) (*models.Account, error)
	GetByAccountNumber(accountNumber string) (*models.Account, error)
	GetByUserID(userID uuid.UUID) ([]models.Account, error)
	CountByUserID(userID uuid.UUID) (int64, error)
	CountByUserIDAndType(userID uuid.UUID, accountType string) (int64, error)
	ListByType(accountType string) ([]models.Account, error)
	CheckAccountNumberExists(accountNumber string) (bool, error)
	GenerateUniqueAccountNumber(accountType string) (string, error)

	// ApplyBalanceChange atomically applies a single credit or debit under a
	// row lock and appends the matching ledger entry.
	ApplyBalanceChange(accountID uuid.UUID, amount decimal.Decimal, transactionType, description string) (*models.Transaction, error)

	// ExecuteAtomicTransfer moves funds between two accounts in one database
	// transaction, appending the transfer_out/transfer_in pair.
	ExecuteAtomicTransfer(fromAccountID, toAccountID uuid.UUID, amount decimal.Decimal, fromDescription, toDescription string) (outTx, inTx *models.Transaction, err error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uuid.UUID) (*models.Transaction, error)
	GetByReference(reference string) (*models.Transaction, error)
	GetByAccountID(accountID uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetRecentByAccountID(accountID uuid.UUID, limit int) ([]models.Transaction, error)
}

// BlacklistedTokenRepositoryInterface defines the contract for revoked token storage
type BlacklistedTokenRepositoryInterface interface {
	Create(token *models.BlacklistedToken) error
	GetByJTI(jti string) (*models.BlacklistedToken, error)
	DeleteExpired() (int64, error)
}

// CardRepositoryInterface defines the contract for card repository operations
type CardRepositoryInterface interface {
	Create(card *models.Card) error
	GetByID(id uuid.UUID) (*models.Card, error)
	GetByAccountID(accountID uuid.UUID) ([]models.Card, error)
	CountByAccountID(accountID uuid.UUID) (int64, error)
	CheckCardNumberExists(cardNumber string) (bool, error)
	Deactivate(id uuid.UUID) error
}
