package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/Ferhadbb/BankSite/internal/dto"
	"github.com/Ferhadbb/BankSite/internal/errors"
	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// CardHandler handles card endpoints
type CardHandler struct {
	cardService services.CardServiceInterface
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService services.CardServiceInterface) *CardHandler {
	return &CardHandler{
		cardService: cardService,
	}
}

// IssueCard issues a card for one of the user's accounts. The full card
// number and CVV are only returned in this response.
// @Summary Issue a card
// @Tags Cards
// @Accept json
// @Produce json
// @Param request body dto.IssueCardRequest true "Account to attach the card to"
// @Success 201 {object} dto.IssueCardResponse
// @Failure 422 {object} errors.ErrorResponse "Card limit reached - CARD_002"
// @Router /cards [post]
func (h *CardHandler) IssueCard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.IssueCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	accountID, err := uuid.Parse(req.AccountID)
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid account ID"))
	}

	card, err := h.cardService.IssueCard(accountID, userID)
	if err != nil {
		switch {
		case stderrors.Is(err, services.ErrCardLimitReached):
			return SendError(c, errors.CardLimitExceeded)
		case stderrors.Is(err, services.ErrAccountNotFound):
			return SendError(c, errors.AccountNotFound)
		case stderrors.Is(err, services.ErrUnauthorized):
			return SendError(c, errors.AccountNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusCreated, dto.IssueCardResponse{
		ID:         card.ID.String(),
		AccountID:  card.AccountID.String(),
		CardNumber: card.CardNumber,
		ExpiryDate: card.ExpiryDate,
		CVV:        card.CVV,
		Message:    "Card issued successfully. Store the CVV safely, it will not be shown again",
	})
}

// ListCards lists the cards on one of the user's accounts, numbers masked
// @Summary List account cards
// @Tags Cards
// @Produce json
// @Param id path string true "Account ID"
// @Success 200 {object} dto.CardListResponse
// @Router /accounts/{id}/cards [get]
func (h *CardHandler) ListCards(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	accountID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid account ID"))
	}

	cards, err := h.cardService.GetAccountCards(accountID, userID)
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

	responses := make([]dto.CardResponse, 0, len(cards))
	for i := range cards {
		responses = append(responses, toCardResponse(&cards[i]))
	}

	return c.JSON(http.StatusOK, dto.CardListResponse{
		Cards: responses,
		Total: len(responses),
	})
}

// DeactivateCard deactivates one of the user's cards
// @Summary Deactivate card
// @Tags Cards
// @Produce json
// @Param id path string true "Card ID"
// @Success 200 {object} SuccessResponse
// @Failure 404 {object} errors.ErrorResponse "Card not found - CARD_001"
// @Router /cards/{id} [delete]
func (h *CardHandler) DeactivateCard(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	cardID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid card ID"))
	}

	if err := h.cardService.DeactivateCard(cardID, userID); err != nil {
		switch {
		case stderrors.Is(err, services.ErrCardNotFound):
			return SendError(c, errors.CardNotFound)
		case stderrors.Is(err, services.ErrUnauthorized):
			return SendError(c, errors.AccountNotOwned)
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Card deactivated"})
}

func toCardResponse(card *models.Card) dto.CardResponse {
	return dto.CardResponse{
		ID:         card.ID.String(),
		AccountID:  card.AccountID.String(),
		CardNumber: card.MaskedNumber(),
		ExpiryDate: card.ExpiryDate,
		IsActive:   card.IsActive,
		CreatedAt:  card.CreatedAt.UTC().Format(time.RFC3339),
	}
}
