package dto

import (
	"github.com/Ferhadbb/BankSite/internal/models"
)

// Account Request DTOs

// OpenAccountRequest represents the request payload for opening an account
type OpenAccountRequest struct {
	AccountType string `json:"account_type" validate:"required,account_type"`
}

// Account Response DTOs

// OpenAccountResponse represents the response after opening an account
type OpenAccountResponse struct {
	Account *models.Account `json:"account"`
	Message string          `json:"message"`
}

// AccountListResponse represents the accounts owned by a user
type AccountListResponse struct {
	Accounts []models.Account `json:"accounts"`
	Total    int              `json:"total"`
}
