package services

import (
	"time"

	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LedgerServiceInterface defines the balance mutation operations. Every
// successful mutation appends matching ledger entries; balances never go
// negative.
type LedgerServiceInterface interface {
	Deposit(accountID uuid.UUID, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, error)
	Withdraw(accountID uuid.UUID, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, error)
	Transfer(fromAccountID uuid.UUID, toAccountNumber string, amount decimal.Decimal, description string, userID *uuid.UUID) (*models.Transaction, *models.Transaction, error)
	AccrueInterest(accountID uuid.UUID) (*models.Transaction, error)
	AccrueInterestForAllSavings() (int, error)
}

// AccountServiceInterface defines account lifecycle and read operations
type AccountServiceInterface interface {
	CreateAccountsForNewUser(userID uuid.UUID) (*models.Account, error)
	OpenAccount(userID uuid.UUID, accountType string) (*models.Account, error)
	GetAccountByID(accountID uuid.UUID, userID *uuid.UUID) (*models.Account, error)
	GetAccountByNumber(accountNumber string) (*models.Account, error)
	GetUserAccounts(userID uuid.UUID) ([]models.Account, error)
	GetAccountTransactions(accountID uuid.UUID, userID *uuid.UUID, offset, limit int) ([]models.Transaction, int64, error)
	GetRecentTransactions(accountID uuid.UUID, userID *uuid.UUID, limit int) ([]models.Transaction, error)
}

// CardServiceInterface defines card issuance and management operations
type CardServiceInterface interface {
	IssueCard(accountID, userID uuid.UUID) (*models.Card, error)
	GetAccountCards(accountID, userID uuid.UUID) ([]models.Card, error)
	DeactivateCard(cardID, userID uuid.UUID) error
}

// AuthServiceInterface defines registration, login and profile operations
type AuthServiceInterface interface {
	Register(username, password, fullName string) (*models.User, error)
	Login(username, password string) (string, time.Time, *models.User, error)
	Logout(accessToken string) error
	GetProfile(userID uuid.UUID) (*models.User, error)
	UpdateProfile(userID uuid.UUID, fullName string) (*models.User, error)
	ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error
}

// TokenServiceInterface defines JWT issuance and validation
type TokenServiceInterface interface {
	GenerateToken(user *models.User) (string, time.Time, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	ExtractTokenFromHeader(authHeader string) (string, error)
}

// PasswordServiceInterface defines password hashing and verification
type PasswordServiceInterface interface {
	HashPassword(password string) (string, error)
	VerifyPassword(hashedPassword, password string) error
	ValidatePasswordStrength(password string) error
}

// MetricsRecorderInterface abstracts the metrics backend so services can be
// tested without a live Prometheus registry
type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
