package models

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeDeposit     = "deposit"
	TransactionTypeWithdrawal  = "withdrawal"
	TransactionTypeTransferOut = "transfer_out"
	TransactionTypeTransferIn  = "transfer_in"
	TransactionTypeInterest    = "interest"
)

var (
	ErrInvalidTransactionType = errors.New("invalid transaction type")
	ErrInvalidAmount          = errors.New("transaction amount must be positive")
	ErrTransactionImmutable   = errors.New("transactions are append-only and cannot be modified")
)

// Transaction is an append-only ledger entry. Every balance change on an
// account is mirrored by exactly one transaction whose amount matches the
// delta's magnitude; a transfer produces a transfer_out/transfer_in pair.
// Rows are never updated or deleted once written.
type Transaction struct {
	ID            uuid.UUID       `gorm:"type:uuid;primary_key" json:"id"`
	AccountID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"account_id"`
	Type          string          `gorm:"type:varchar(20);not null" json:"type"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"amount"`
	BalanceBefore decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_before"`
	BalanceAfter  decimal.Decimal `gorm:"type:decimal(15,2);not null" json:"balance_after"`
	Description   string          `gorm:"type:varchar(200)" json:"description"`
	Reference     string          `gorm:"type:varchar(100);index" json:"reference,omitempty"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}

	if t.Reference == "" {
		t.Reference = GenerateTransactionReference()
	}

	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now()
	}

	return t.Validate()
}

// BeforeUpdate rejects any mutation of a persisted ledger entry.
func (t *Transaction) BeforeUpdate(tx *gorm.DB) error {
	return ErrTransactionImmutable
}

// BeforeDelete rejects deletion of a persisted ledger entry.
func (t *Transaction) BeforeDelete(tx *gorm.DB) error {
	return ErrTransactionImmutable
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Description == "" {
		return errors.New("transaction description is required")
	}

	return t.ensureBalanceIsCorrect()
}

// IsCredit reports whether the entry increases the account balance.
func (t *Transaction) IsCredit() bool {
	switch t.Type {
	case TransactionTypeDeposit, TransactionTypeTransferIn, TransactionTypeInterest:
		return true
	default:
		return false
	}
}

// IsDebit reports whether the entry decreases the account balance.
func (t *Transaction) IsDebit() bool {
	switch t.Type {
	case TransactionTypeWithdrawal, TransactionTypeTransferOut:
		return true
	default:
		return false
	}
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// Helper functions

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeDeposit, TransactionTypeWithdrawal,
		TransactionTypeTransferOut, TransactionTypeTransferIn,
		TransactionTypeInterest:
		return true
	default:
		return false
	}
}

// GenerateTransactionReference generates a unique transaction reference
func GenerateTransactionReference() string {
	return "TXN-" + uuid.New().String()[:8] + "-" + time.Now().Format("20060102150405")
}

func (t *Transaction) ensureBalanceIsCorrect() error {
	expected := t.BalanceBefore
	if t.IsCredit() {
		expected = expected.Add(t.Amount)
	} else {
		expected = expected.Sub(t.Amount)
	}

	if !expected.Equal(t.BalanceAfter) {
		return errors.New("balance calculation mismatch")
	}
	return nil
}
