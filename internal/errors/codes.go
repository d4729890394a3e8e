package errors

// ErrorCode represents a standardized error code used throughout the API
type ErrorCode string

// Authentication error codes (AUTH_*)
const (
	AuthInvalidCredentials ErrorCode = "AUTH_001"
	AuthMissingToken       ErrorCode = "AUTH_002"
	AuthExpiredToken       ErrorCode = "AUTH_003"
	AuthInvalidTokenFormat ErrorCode = "AUTH_004"
	AuthUsernameTaken      ErrorCode = "AUTH_005"
)

// Validation error codes (VALIDATION_*)
const (
	ValidationGeneral       ErrorCode = "VALIDATION_001"
	ValidationRequiredField ErrorCode = "VALIDATION_002"
	ValidationInvalidFormat ErrorCode = "VALIDATION_003"
	ValidationOutOfRange    ErrorCode = "VALIDATION_004"
)

// Account error codes (ACCOUNT_*)
const (
	AccountNotFound          ErrorCode = "ACCOUNT_001"
	AccountInsufficientFunds ErrorCode = "ACCOUNT_002"
	AccountInvalidNumber     ErrorCode = "ACCOUNT_003"
	AccountNotOwned          ErrorCode = "ACCOUNT_004"
	AccountLimitExceeded     ErrorCode = "ACCOUNT_005"
)

// Ledger error codes (LEDGER_*)
const (
	LedgerInvalidAmount       ErrorCode = "LEDGER_001"
	LedgerSameAccountTransfer ErrorCode = "LEDGER_002"
	LedgerSourceNotFound      ErrorCode = "LEDGER_003"
	LedgerDestinationNotFound ErrorCode = "LEDGER_004"
	LedgerConflict            ErrorCode = "LEDGER_005"
)

// Card error codes (CARD_*)
const (
	CardNotFound      ErrorCode = "CARD_001"
	CardLimitExceeded ErrorCode = "CARD_002"
)

// System error codes (SYSTEM_*)
const (
	SystemInternalError     ErrorCode = "SYSTEM_001"
	SystemDatabaseError     ErrorCode = "SYSTEM_002"
	SystemRateLimitExceeded ErrorCode = "SYSTEM_003"
)

// errorMessages maps error codes to their default human-readable messages
var errorMessages = map[ErrorCode]string{
	// Authentication errors
	AuthInvalidCredentials: "Invalid username or password",
	AuthMissingToken:       "Authorization token is required",
	AuthExpiredToken:       "Authorization token has expired",
	AuthInvalidTokenFormat: "Invalid authorization token format",
	AuthUsernameTaken:      "Username already exists",

	// Validation errors
	ValidationGeneral:       "Validation failed",
	ValidationRequiredField: "Required field is missing",
	ValidationInvalidFormat: "Invalid field format",
	ValidationOutOfRange:    "Field value is out of allowed range",

	// Account errors
	AccountNotFound:          "Account not found",
	AccountInsufficientFunds: "Insufficient account balance",
	AccountInvalidNumber:     "Invalid account number or type",
	AccountNotOwned:          "Account belongs to another user",
	AccountLimitExceeded:     "Maximum number of accounts reached",

	// Ledger errors
	LedgerInvalidAmount:       "Amount must be positive",
	LedgerSameAccountTransfer: "Cannot transfer funds to the same account",
	LedgerSourceNotFound:      "Source account not found",
	LedgerDestinationNotFound: "Recipient account not found",
	LedgerConflict:            "Operation conflicted with a concurrent update. Please retry",

	// Card errors
	CardNotFound:      "Card not found",
	CardLimitExceeded: "Maximum number of cards reached for this account",

	// System errors
	SystemInternalError:     "An unexpected error occurred. Please contact support with trace ID",
	SystemDatabaseError:     "Database connection error",
	SystemRateLimitExceeded: "Rate limit exceeded. Please try again later",
}

// GetErrorMessage returns the default message for a given error code
// If the error code is not found, it returns a generic error message
func GetErrorMessage(code ErrorCode) string {
	if msg, ok := errorMessages[code]; ok {
		return msg
	}
	return "An error occurred"
}

// IsValidErrorCode checks if the provided error code is a valid registered code
func IsValidErrorCode(code ErrorCode) bool {
	_, ok := errorMessages[code]
	return ok
}
