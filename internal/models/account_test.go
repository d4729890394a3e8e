package models

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAccount_Validate(t *testing.T) {
	validUserID := uuid.New()

	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid checking account",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "1012345678",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromFloat(1000.50),
			},
			wantErr: false,
		},
		{
			name: "valid savings account",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "2012345678",
				AccountType:   AccountTypeSavings,
				Balance:       decimal.NewFromFloat(5000.00),
			},
			wantErr: false,
		},
		{
			name: "missing user ID",
			account: Account{
				AccountNumber: "1012345678",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromFloat(100.00),
			},
			wantErr: true,
			errMsg:  "user ID is required",
		},
		{
			name: "missing account number",
			account: Account{
				UserID:      validUserID,
				AccountType: AccountTypeChecking,
				Balance:     decimal.NewFromFloat(100.00),
			},
			wantErr: true,
			errMsg:  "account number is required",
		},
		{
			name: "wrong account number length",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "10123",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromFloat(100.00),
			},
			wantErr: true,
			errMsg:  "account number must be 10 digits",
		},
		{
			name: "unknown account type",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "1012345678",
				AccountType:   "money_market",
				Balance:       decimal.NewFromFloat(100.00),
			},
			wantErr: true,
		},
		{
			name: "negative balance",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "1012345678",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromFloat(-0.01),
			},
			wantErr: true,
		},
		{
			name: "prefix does not match type",
			account: Account{
				UserID:        validUserID,
				AccountNumber: "2012345678",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromFloat(100.00),
			},
			wantErr: true,
			errMsg:  "account number prefix does not match account type",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				require.Error(t, err)
				if tt.errMsg != "" {
					assert.Contains(t, err.Error(), tt.errMsg)
				}
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_Debit(t *testing.T) {
	account := Account{Balance: decimal.NewFromInt(100)}

	err := account.Debit(decimal.NewFromInt(40))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(60)))

	// A debit exceeding the balance fails and leaves the balance untouched
	err = account.Debit(decimal.NewFromInt(100))
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(60)))

	err = account.Debit(decimal.Zero)
	assert.Error(t, err)

	err = account.Debit(decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestAccount_Credit(t *testing.T) {
	account := Account{Balance: decimal.NewFromInt(100)}

	err := account.Credit(decimal.NewFromFloat(0.01))
	require.NoError(t, err)
	assert.True(t, account.Balance.Equal(decimal.NewFromFloat(100.01)))

	err = account.Credit(decimal.Zero)
	assert.Error(t, err)

	err = account.Credit(decimal.NewFromInt(-10))
	assert.Error(t, err)
}

func TestAccount_CanWithdraw(t *testing.T) {
	account := Account{Balance: decimal.NewFromInt(100)}

	assert.True(t, account.CanWithdraw(decimal.NewFromInt(100)))
	assert.True(t, account.CanWithdraw(decimal.NewFromInt(1)))
	assert.False(t, account.CanWithdraw(decimal.NewFromFloat(100.01)))
	assert.False(t, account.CanWithdraw(decimal.Zero))
	assert.False(t, account.CanWithdraw(decimal.NewFromInt(-5)))
}

func TestAccount_IsSavings(t *testing.T) {
	assert.True(t, (&Account{AccountType: AccountTypeSavings}).IsSavings())
	assert.False(t, (&Account{AccountType: AccountTypeChecking}).IsSavings())
}

func TestGenerateAccountNumber(t *testing.T) {
	savings := GenerateAccountNumber(AccountTypeSavings)
	require.Len(t, savings, AccountNumberLength)
	assert.Equal(t, SavingsPrefix, savings[:2])
	assert.True(t, ValidateAccountNumber(savings))

	checking := GenerateAccountNumber(AccountTypeChecking)
	require.Len(t, checking, AccountNumberLength)
	assert.Equal(t, CheckingPrefix, checking[:2])

	assert.Empty(t, GenerateAccountNumber("money_market"))
}

func TestValidateAccountNumber(t *testing.T) {
	tests := []struct {
		number string
		valid  bool
	}{
		{"1012345678", true},
		{"2012345678", true},
		{"3012345678", false}, // unknown prefix
		{"101234567", false},  // too short
		{"10123456789", false},
		{"10abc45678", false},
		{"", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.valid, ValidateAccountNumber(tt.number), "number %q", tt.number)
	}
}

func TestAccountPrefix(t *testing.T) {
	assert.Equal(t, SavingsPrefix, AccountPrefix(AccountTypeSavings))
	assert.Equal(t, CheckingPrefix, AccountPrefix(AccountTypeChecking))
	assert.Empty(t, AccountPrefix("money_market"))
}
