package handlers

import (
	"github.com/Ferhadbb/BankSite/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

// CustomValidator adapts the shared rule set to echo's Validator interface
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator returns an echo.Validator backed by the application's
// validation rules (account_number, positive_amount, account_type, username)
func NewValidator() echo.Validator {
	return &CustomValidator{validator: validation.GetValidator().GetValidate()}
}

// Validate runs struct validation and returns the raw validator error so the
// central error handler can format field details
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
