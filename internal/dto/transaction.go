package dto

import (
	"github.com/Ferhadbb/BankSite/internal/models"
)

// Ledger Request DTOs

// DepositRequest represents the request payload for a deposit. Description
// limits track the 200-char ledger column.
type DepositRequest struct {
	AccountID   string `json:"account_id" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required,positive_amount"`
	Description string `json:"description" validate:"max=200"`
}

// WithdrawRequest represents the request payload for a withdrawal
type WithdrawRequest struct {
	AccountID   string `json:"account_id" validate:"required,uuid"`
	Amount      string `json:"amount" validate:"required,positive_amount"`
	Description string `json:"description" validate:"max=200"`
}

// TransferRequest represents the request payload for a transfer. The
// destination is addressed by its external account number, not its id.
// The tighter description cap leaves room for the generated
// "Transfer from NNNNNNNNNN - " prefix on either leg.
type TransferRequest struct {
	FromAccountID   string `json:"from_account_id" validate:"required,uuid"`
	ToAccountNumber string `json:"to_account_number" validate:"required,account_number"`
	Amount          string `json:"amount" validate:"required,positive_amount"`
	Description     string `json:"description" validate:"max=170"`
}

// Ledger Response DTOs

// TransactionResponse represents a single ledger entry in API responses
type TransactionResponse struct {
	Transaction *models.Transaction `json:"transaction"`
	Message     string              `json:"message"`
}

// TransferResponse represents a completed transfer, both legs included
type TransferResponse struct {
	OutTransaction *models.Transaction `json:"out_transaction"`
	InTransaction  *models.Transaction `json:"in_transaction"`
	Message        string              `json:"message"`
}

// TransactionListResponse represents a paginated list of ledger entries
type TransactionListResponse struct {
	Transactions []models.Transaction `json:"transactions"`
	Total        int64                `json:"total"`
	Offset       int                  `json:"offset"`
	Limit        int                  `json:"limit"`
}
