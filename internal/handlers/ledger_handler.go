package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/Ferhadbb/BankSite/internal/dto"
	"github.com/Ferhadbb/BankSite/internal/errors"
	"github.com/Ferhadbb/BankSite/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// LedgerHandler handles balance mutation endpoints
type LedgerHandler struct {
	ledgerService services.LedgerServiceInterface
}

// NewLedgerHandler creates a new ledger handler
func NewLedgerHandler(ledgerService services.LedgerServiceInterface) *LedgerHandler {
	return &LedgerHandler{
		ledgerService: ledgerService,
	}
}

// Deposit credits an account owned by the authenticated user
// @Summary Deposit funds
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body dto.DepositRequest true "Deposit details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 400 {object} errors.ErrorResponse "Invalid amount - LEDGER_001"
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /ledger/deposit [post]
func (h *LedgerHandler) Deposit(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	accountID, amount, err := parseMutation(req.AccountID, req.Amount)
	if err != nil {
		return SendError(c, errors.LedgerInvalidAmount)
	}

	entry, err := h.ledgerService.Deposit(accountID, amount, req.Description, &userID)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TransactionResponse{
		Transaction: entry,
		Message:     "Deposit completed",
	})
}

// Withdraw debits an account owned by the authenticated user
// @Summary Withdraw funds
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body dto.WithdrawRequest true "Withdrawal details"
// @Success 201 {object} dto.TransactionResponse
// @Failure 422 {object} errors.ErrorResponse "Insufficient funds - ACCOUNT_002"
// @Router /ledger/withdraw [post]
func (h *LedgerHandler) Withdraw(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	accountID, amount, err := parseMutation(req.AccountID, req.Amount)
	if err != nil {
		return SendError(c, errors.LedgerInvalidAmount)
	}

	entry, err := h.ledgerService.Withdraw(accountID, amount, req.Description, &userID)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TransactionResponse{
		Transaction: entry,
		Message:     "Withdrawal completed",
	})
}

// Transfer moves funds from one of the user's accounts to a recipient
// addressed by account number.
// @Summary Transfer funds
// @Tags Ledger
// @Accept json
// @Produce json
// @Param request body dto.TransferRequest true "Transfer details"
// @Success 201 {object} dto.TransferResponse
// @Failure 400 {object} errors.ErrorResponse "Same account - LEDGER_002"
// @Failure 404 {object} errors.ErrorResponse "Recipient not found - LEDGER_004"
// @Failure 422 {object} errors.ErrorResponse "Insufficient funds - ACCOUNT_002"
// @Router /ledger/transfer [post]
func (h *LedgerHandler) Transfer(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	fromAccountID, amount, err := parseMutation(req.FromAccountID, req.Amount)
	if err != nil {
		return SendError(c, errors.LedgerInvalidAmount)
	}

	outTx, inTx, err := h.ledgerService.Transfer(fromAccountID, req.ToAccountNumber, amount, req.Description, &userID)
	if err != nil {
		return h.sendLedgerError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.TransferResponse{
		OutTransaction: outTx,
		InTransaction:  inTx,
		Message:        "Transfer completed",
	})
}

// RunInterestSweep applies one interest period to every savings account.
// Operational endpoint, normally driven by the scheduler instead.
// @Summary Run the savings interest sweep
// @Tags Ledger
// @Produce json
// @Success 200 {object} SuccessResponse
// @Router /ledger/interest/sweep [post]
func (h *LedgerHandler) RunInterestSweep(c echo.Context) error {
	if _, err := getUserIDFromContext(c); err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	credited, err := h.ledgerService.AccrueInterestForAllSavings()
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{
		Data:    map[string]int{"accounts_credited": credited},
		Message: "Interest sweep completed",
	})
}

// parseMutation parses the common account ID and amount fields
func parseMutation(accountID, amount string) (uuid.UUID, decimal.Decimal, error) {
	id, err := uuid.Parse(accountID)
	if err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return uuid.Nil, decimal.Zero, err
	}
	return id, value, nil
}

// sendLedgerError maps ledger service sentinels onto API error codes
func (h *LedgerHandler) sendLedgerError(c echo.Context, err error) error {
	switch {
	case stderrors.Is(err, services.ErrInvalidAmount):
		return SendError(c, errors.LedgerInvalidAmount)
	case stderrors.Is(err, services.ErrInsufficientFunds):
		return SendError(c, errors.AccountInsufficientFunds)
	case stderrors.Is(err, services.ErrSameAccountTransfer):
		return SendError(c, errors.LedgerSameAccountTransfer)
	case stderrors.Is(err, services.ErrSourceAccountNotFound):
		return SendError(c, errors.LedgerSourceNotFound)
	case stderrors.Is(err, services.ErrDestinationAccountNotFound):
		return SendError(c, errors.LedgerDestinationNotFound)
	case stderrors.Is(err, services.ErrAccountNotFound):
		return SendError(c, errors.AccountNotFound)
	case stderrors.Is(err, services.ErrUnauthorized):
		return SendError(c, errors.AccountNotOwned)
	case stderrors.Is(err, services.ErrConflict):
		return SendError(c, errors.LedgerConflict)
	default:
		return SendSystemError(c, err)
	}
}
