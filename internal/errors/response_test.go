package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ResponseTestSuite defines the test suite for error responses
type ResponseTestSuite struct {
	suite.Suite
}

// TestResponseTestSuite runs the test suite
func TestResponseTestSuite(t *testing.T) {
	suite.Run(t, new(ResponseTestSuite))
}

func (s *ResponseTestSuite) TestNewErrorResponse() {
	response := NewErrorResponse(AccountNotFound, "trace-123")

	s.Equal(string(AccountNotFound), response.Error.Code)
	s.Equal("Account not found", response.Error.Message)
	s.Equal("trace-123", response.Error.TraceID)
	s.Empty(response.Error.Details)
}

func (s *ResponseTestSuite) TestNewErrorResponse_WithOptions() {
	response := NewErrorResponse(LedgerInvalidAmount, "trace-123",
		WithMessage("Amount must have at most two decimal places"),
		WithDetails("amount: 10.005"),
	)

	s.Equal("Amount must have at most two decimal places", response.Error.Message)
	s.Equal([]string{"amount: 10.005"}, response.Error.Details)
}

func (s *ResponseTestSuite) TestNewValidationError() {
	response := NewValidationError(map[string]string{
		"amount": "amount is required",
	}, "trace-123")

	s.Equal(string(ValidationGeneral), response.Error.Code)
	s.Len(response.Error.Details, 1)
	s.Contains(response.Error.Details[0], "amount is required")
}

// The wrapped response hides internals; the original error comes back for
// server-side logging.
func (s *ResponseTestSuite) TestWrapSystemError() {
	internal := errors.New("pq: connection refused")

	response, err := WrapSystemError(internal, "trace-123")

	s.Equal(string(SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "pq:")
	s.Equal(internal, err)
}

func (s *ResponseTestSuite) TestToJSON() {
	response := NewErrorResponse(CardNotFound, "trace-123")

	data, err := response.ToJSON()
	s.NoError(err)

	var decoded map[string]map[string]interface{}
	s.NoError(json.Unmarshal(data, &decoded))
	s.Equal(string(CardNotFound), decoded["error"]["code"])
	s.Equal("trace-123", decoded["error"]["trace_id"])
}

func (s *ResponseTestSuite) TestGetHTTPStatus() {
	testCases := []struct {
		code     ErrorCode
		expected int
	}{
		{ValidationGeneral, http.StatusBadRequest},
		{LedgerInvalidAmount, http.StatusBadRequest},
		{LedgerSameAccountTransfer, http.StatusBadRequest},
		{AuthInvalidCredentials, http.StatusUnauthorized},
		{AuthMissingToken, http.StatusUnauthorized},
		{AuthExpiredToken, http.StatusUnauthorized},
		{AccountNotOwned, http.StatusForbidden},
		{AccountNotFound, http.StatusNotFound},
		{LedgerSourceNotFound, http.StatusNotFound},
		{LedgerDestinationNotFound, http.StatusNotFound},
		{CardNotFound, http.StatusNotFound},
		{AuthUsernameTaken, http.StatusConflict},
		{LedgerConflict, http.StatusConflict},
		{AccountInsufficientFunds, http.StatusUnprocessableEntity},
		{AccountLimitExceeded, http.StatusUnprocessableEntity},
		{CardLimitExceeded, http.StatusUnprocessableEntity},
		{SystemRateLimitExceeded, http.StatusTooManyRequests},
		{SystemInternalError, http.StatusInternalServerError},
		{SystemDatabaseError, http.StatusInternalServerError},
		{"NOPE_999", http.StatusInternalServerError},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, GetHTTPStatus(tc.code), "code %s", tc.code)
	}
}

func (s *ResponseTestSuite) TestClientServerClassification() {
	client := NewErrorResponse(AccountNotFound, "trace-123")
	s.True(client.IsClientError())
	s.False(client.IsServerError())

	server := NewErrorResponse(SystemDatabaseError, "trace-123")
	s.True(server.IsServerError())
	s.False(server.IsClientError())
}

func (s *ResponseTestSuite) TestString() {
	response := NewErrorResponse(AccountNotFound, "trace-123")
	s.Equal("[ACCOUNT_001] Account not found (trace: trace-123)", response.String())
}
