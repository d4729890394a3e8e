package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	apierrors "github.com/Ferhadbb/BankSite/internal/errors"
	"github.com/Ferhadbb/BankSite/internal/validation"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/suite"
)

// ErrorHandlerTestSuite defines the test suite for the custom error handler
type ErrorHandlerTestSuite struct {
	suite.Suite
	echo *echo.Echo
}

// SetupTest runs before each test
func (s *ErrorHandlerTestSuite) SetupTest() {
	s.echo = echo.New()
}

// TestErrorHandlerTestSuite runs the test suite
func TestErrorHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ErrorHandlerTestSuite))
}

func (s *ErrorHandlerTestSuite) handle(err error) (*httptest.ResponseRecorder, apierrors.ErrorResponse) {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/accounts", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)
	c.Set(TraceIDContextKey, "test-trace-id")

	CustomHTTPErrorHandler(err, c)

	var response apierrors.ErrorResponse
	s.NoError(json.Unmarshal(rec.Body.Bytes(), &response))
	return rec, response
}

func (s *ErrorHandlerTestSuite) TestHandleEchoHTTPError() {
	rec, response := s.handle(echo.NewHTTPError(http.StatusNotFound, "route not found"))

	s.Equal(http.StatusNotFound, rec.Code)
	s.Equal(string(apierrors.AccountNotFound), response.Error.Code)
	s.Equal("route not found", response.Error.Message)
	s.Equal("test-trace-id", response.Error.TraceID)
}

func (s *ErrorHandlerTestSuite) TestHandleValidationErrors() {
	request := struct {
		Amount string `json:"amount" validate:"required"`
	}{}

	err := validation.GetValidator().GetValidate().Struct(request)
	s.Require().Error(err)

	rec, response := s.handle(err)

	s.Equal(http.StatusBadRequest, rec.Code)
	s.Equal(string(apierrors.ValidationGeneral), response.Error.Code)
	s.Require().Len(response.Error.Details, 1)
	s.Contains(response.Error.Details[0], "amount")
	s.Contains(response.Error.Details[0], "is required")
}

// Internal errors are wrapped so their details never reach the client.
func (s *ErrorHandlerTestSuite) TestHandleUnknownError() {
	rec, response := s.handle(errors.New("pq: connection refused"))

	s.Equal(http.StatusInternalServerError, rec.Code)
	s.Equal(string(apierrors.SystemInternalError), response.Error.Code)
	s.NotContains(response.Error.Message, "pq:")
}

func (s *ErrorHandlerTestSuite) TestStatusToCodeMapping() {
	testCases := []struct {
		status   int
		expected apierrors.ErrorCode
	}{
		{http.StatusBadRequest, apierrors.ValidationGeneral},
		{http.StatusUnauthorized, apierrors.AuthMissingToken},
		{http.StatusForbidden, apierrors.AccountNotOwned},
		{http.StatusNotFound, apierrors.AccountNotFound},
		{http.StatusTooManyRequests, apierrors.SystemRateLimitExceeded},
		{http.StatusServiceUnavailable, apierrors.SystemDatabaseError},
		{http.StatusTeapot, apierrors.SystemInternalError},
	}

	for _, tc := range testCases {
		s.Equal(tc.expected, mapHTTPStatusToErrorCode(tc.status), "status %d", tc.status)
	}
}

// The handler must not write a second response body.
func (s *ErrorHandlerTestSuite) TestCommittedResponseLeftAlone() {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := s.echo.NewContext(req, rec)

	s.NoError(c.String(http.StatusOK, "already sent"))
	CustomHTTPErrorHandler(errors.New("late failure"), c)

	s.Equal("already sent", rec.Body.String())
}
