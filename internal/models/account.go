package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeSavings  = "savings"
	AccountTypeChecking = "checking"

	// Account number prefixes by type
	SavingsPrefix  = "20"
	CheckingPrefix = "10"

	AccountNumberLength = 10

	// Policy caps enforced by the services before creation
	MaxAccountsPerUser = 5
	MaxAccountsPerType = 2
)

var (
	ErrInvalidAccountType = errors.New("invalid account type")
	ErrNegativeBalance    = errors.New("balance cannot be negative")
	ErrInsufficientFunds  = errors.New("insufficient funds")
)

// Account is a customer account. Its balance is never mutated directly:
// every change goes through the ledger so that each delta has a matching
// transaction record.
type Account struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountNumber string          `gorm:"type:varchar(10);uniqueIndex;not null" json:"account_number"`
	UserID        uuid.UUID       `gorm:"type:uuid;not null;index" json:"user_id"`
	AccountType   string          `gorm:"type:varchar(20);not null" json:"account_type"`
	Balance       decimal.Decimal `gorm:"type:decimal(15,2);not null;default:0" json:"balance"`
	CreatedAt     time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	User         User          `gorm:"foreignKey:UserID" json:"-"`
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
	Cards        []Card        `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.UserID == uuid.Nil {
		return errors.New("user ID is required")
	}

	if a.AccountNumber == "" {
		return errors.New("account number is required")
	}

	if len(a.AccountNumber) != AccountNumberLength {
		return fmt.Errorf("account number must be %d digits", AccountNumberLength)
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if a.Balance.LessThan(decimal.Zero) {
		return ErrNegativeBalance
	}

	// Business rule: account number prefix must match account type
	if a.AccountNumber[:2] != AccountPrefix(a.AccountType) {
		return fmt.Errorf("account number prefix does not match account type")
	}

	return nil
}

// IsSavings reports whether the account earns interest
func (a *Account) IsSavings() bool {
	return a.AccountType == AccountTypeSavings
}

// CanWithdraw checks if the amount can be withdrawn
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return amount.GreaterThan(decimal.Zero) && a.Balance.GreaterThanOrEqual(amount)
}

// Debit debits the account
func (a *Account) Debit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit credits the account
func (a *Account) Credit(amount decimal.Decimal) error {
	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("credit amount must be positive")
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// Helper functions

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeSavings, AccountTypeChecking:
		return true
	default:
		return false
	}
}

// AccountPrefix returns the number prefix for an account type
func AccountPrefix(accountType string) string {
	switch accountType {
	case AccountTypeSavings:
		return SavingsPrefix
	case AccountTypeChecking:
		return CheckingPrefix
	default:
		return ""
	}
}

// GenerateAccountNumber generates a candidate 10-digit account number.
// Uniqueness is the repository's concern; callers retry on collision.
func GenerateAccountNumber(accountType string) string {
	prefix := AccountPrefix(accountType)
	if prefix == "" {
		return ""
	}

	return prefix + fmt.Sprintf("%08d", rand.Intn(100000000))
}

// ValidateAccountNumber validates an account number format
func ValidateAccountNumber(accountNumber string) bool {
	if len(accountNumber) != AccountNumberLength {
		return false
	}

	for _, char := range accountNumber {
		if char < '0' || char > '9' {
			return false
		}
	}

	prefix := accountNumber[:2]
	return prefix == SavingsPrefix || prefix == CheckingPrefix
}
