package handlers

import (
	stderrors "errors"
	"net/http"

	"github.com/Ferhadbb/BankSite/internal/dto"
	"github.com/Ferhadbb/BankSite/internal/errors"
	"github.com/Ferhadbb/BankSite/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// AccountHandler handles account endpoints
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// OpenAccount opens an additional account for the authenticated user
// @Summary Open a new account
// @Description Open a savings or checking account, subject to per-user limits
// @Tags Accounts
// @Accept json
// @Produce json
// @Param request body dto.OpenAccountRequest true "Account type"
// @Success 201 {object} dto.OpenAccountResponse
// @Failure 422 {object} errors.ErrorResponse "Account limit reached - ACCOUNT_005"
// @Router /accounts [post]
func (h *AccountHandler) OpenAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.OpenAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	account, err := h.accountService.OpenAccount(userID, req.AccountType)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrPolicyLimitExceeded):
			return SendError(c, errors.AccountLimitExceeded)
		case stderrors.Is(err, services.ErrInvalidAccountType):
			return SendError(c, errors.AccountInvalidNumber, errors.WithDetails("Unknown account type"))
		case stderrors.Is(err, services.ErrUserNotFound):
			return SendError(c, errors.AccountNotFound, errors.WithMessage("User not found"))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.OpenAccountResponse{
		Account: account,
		Message: "Account opened successfully",
	})
}

// ListAccounts lists the authenticated user's accounts
// @Summary List accounts
// @Tags Accounts
// @Produce json
// @Success 200 {object} dto.AccountListResponse
// @Router /accounts [get]
func (h *AccountHandler) ListAccounts(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accounts, err := h.accountService.GetUserAccounts(userID)
	if err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.AccountListResponse{
		Accounts: accounts,
		Total:    len(accounts),
	})
}

// GetAccount retrieves one of the authenticated user's accounts
// @Summary Get account
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Account not found - ACCOUNT_001"
// @Router /accounts/{id} [get]
func (h *AccountHandler) GetAccount(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccountByID(accountID, &userID)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, services.ErrUnauthorized):
			return SendError(c, errors.AccountNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: account})
}

// GetTransactions lists a page of an account's ledger entries
// @Summary List account transactions
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param offset query int false "Page offset"
// @Param limit query int false "Page size"
// @Success 200 {object} dto.TransactionListResponse
// @Router /accounts/{id}/transactions [get]
func (h *AccountHandler) GetTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid account ID"))
	}

	offset := getIntParam(c, "offset", 0)
	limit := getIntParam(c, "limit", 20)

	transactions, total, err := h.accountService.GetAccountTransactions(accountID, &userID, offset, limit)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, services.ErrUnauthorized):
			return SendError(c, errors.AccountNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, dto.TransactionListResponse{
		Transactions: transactions,
		Total:        total,
		Offset:       offset,
		Limit:        limit,
	})
}

// GetRecentTransactions lists the newest ledger entries for an account
// @Summary List recent transactions
// @Tags Accounts
// @Produce json
// @Param id path string true "Account ID"
// @Param limit query int false "Number of entries"
// @Success 200 {object} SuccessResponse
// @Router /accounts/{id}/transactions/recent [get]
func (h *AccountHandler) GetRecentTransactions(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid account ID"))
	}

	limit := getIntParam(c, "limit", 10)

	transactions, err := h.accountService.GetRecentTransactions(accountID, &userID, limit)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, services.ErrUnauthorized):
			return SendError(c, errors.AccountNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Data: transactions})
}
