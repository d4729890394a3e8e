package models

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CardNumberLength = 16
	CVVLength        = 3

	// Policy cap enforced by the card service before issuance
	MaxCardsPerAccount = 3

	cardExpiryMinYears = 3
	cardExpiryMaxYears = 5
)

var ErrInvalidExpiry = errors.New("invalid card expiry")

// Card is a payment card issued against an account. The card number is
// globally unique; CVV is stored but never serialized.
type Card struct {
	ID         uuid.UUID      `gorm:"type:uuid;primary_key" json:"id"`
	AccountID  uuid.UUID      `gorm:"type:uuid;not null;index" json:"account_id"`
	CardNumber string         `gorm:"type:varchar(16);uniqueIndex;not null" json:"card_number"`
	ExpiryDate string         `gorm:"type:varchar(5);not null" json:"expiry_date"`
	CVV        string         `gorm:"type:varchar(3);not null" json:"-"`
	IsActive   bool           `gorm:"not null;default:true" json:"is_active"`
	CreatedAt  time.Time      `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time      `gorm:"not null" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	Account Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Card
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}

	now := time.Now()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Card
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// Validate validates the card fields
func (c *Card) Validate() error {
	if c.AccountID == uuid.Nil {
		return errors.New("account ID is required")
	}

	if len(c.CardNumber) != CardNumberLength {
		return fmt.Errorf("card number must be %d digits", CardNumberLength)
	}

	if len(c.CVV) != CVVLength {
		return fmt.Errorf("CVV must be %d digits", CVVLength)
	}

	if _, err := ParseExpiry(c.ExpiryDate); err != nil {
		return err
	}

	return nil
}

// MaskedNumber returns the card number with all but the last four digits hidden.
func (c *Card) MaskedNumber() string {
	if len(c.CardNumber) != CardNumberLength {
		return ""
	}
	return "**** **** **** " + c.CardNumber[12:]
}

// IsExpired reports whether the card's expiry month has passed.
func (c *Card) IsExpired() bool {
	expiry, err := ParseExpiry(c.ExpiryDate)
	if err != nil {
		return true
	}
	// A card is valid through the end of its expiry month
	return time.Now().After(expiry.AddDate(0, 1, 0))
}

// Deactivate marks the card inactive.
func (c *Card) Deactivate() {
	c.IsActive = false
}

// TableName returns the table name for Card
func (c *Card) TableName() string {
	return "cards"
}

// Helper functions

// ParseExpiry parses an MM/YY expiry string into the first day of that month.
func ParseExpiry(expiry string) (time.Time, error) {
	t, err := time.Parse("01/06", expiry)
	if err != nil {
		return time.Time{}, ErrInvalidExpiry
	}
	return t, nil
}

// GenerateCardDetails generates a candidate card number, a future MM/YY
// expiry and a CVV. Uniqueness of the number is the repository's concern;
// callers retry on collision.
func GenerateCardDetails() (cardNumber, expiryDate, cvv string) {
	digits := make([]byte, CardNumberLength)
	for i := range digits {
		digits[i] = byte('0' + rand.Intn(10))
	}
	cardNumber = string(digits)

	years := cardExpiryMinYears + rand.Intn(cardExpiryMaxYears-cardExpiryMinYears+1)
	expiry := time.Now().AddDate(years, rand.Intn(12), 0)
	expiryDate = expiry.Format("01/06")

	cvv = fmt.Sprintf("%03d", rand.Intn(1000))
	return cardNumber, expiryDate, cvv
}
