package dto

// Card Request DTOs

// IssueCardRequest represents the request payload for issuing a card
type IssueCardRequest struct {
	AccountID string `json:"account_id" validate:"required,uuid"`
}

// Card Response DTOs

// CardResponse represents a card in API responses. The number is masked and
// the CVV is never returned after issuance.
type CardResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	IsActive   bool   `json:"is_active"`
	CreatedAt  string `json:"created_at"`
}

// IssueCardResponse returns the full card details exactly once, at issuance
type IssueCardResponse struct {
	ID         string `json:"id"`
	AccountID  string `json:"account_id"`
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	Message    string `json:"message"`
}

// CardListResponse represents the cards attached to an account
type CardListResponse struct {
	Cards []CardResponse `json:"cards"`
	Total int            `json:"total"`
}
