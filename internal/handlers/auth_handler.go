package handlers

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/Ferhadbb/BankSite/internal/dto"
	"github.com/Ferhadbb/BankSite/internal/errors"
	"github.com/Ferhadbb/BankSite/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	authService services.AuthServiceInterface
}

// NewAuthHandler creates a new authentication handler
func NewAuthHandler(authService services.AuthServiceInterface) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Create a new user with a seeded savings account
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration details"
// @Success 201 {object} dto.RegisterResponse "User created successfully"
// @Failure 400 {object} errors.ErrorResponse "Validation error - VALIDATION_001"
// @Failure 409 {object} errors.ErrorResponse "Username taken - AUTH_005"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.Register(req.Username, req.Password, req.FullName)
	if err != nil {
		if stderrors.Is(err, services.ErrUsernameTaken) {
			return SendError(c, errors.AuthUsernameTaken)
		}
		if stderrors.Is(err, services.ErrPasswordTooShort) || stderrors.Is(err, services.ErrPasswordNoLetter) ||
			stderrors.Is(err, services.ErrPasswordNoNumber) || stderrors.Is(err, services.ErrPasswordEmpty) ||
			stderrors.Is(err, services.ErrPasswordTooLong) {
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:    user,
		Message: "User registered successfully",
	})
}

// Login handles user authentication
// @Summary Login user
// @Description Authenticate with username and password, receive a JWT bearer token
// @Tags Authentication
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login credentials"
// @Success 200 {object} dto.TokenResponse "Login successful"
// @Failure 401 {object} errors.ErrorResponse "Invalid credentials - AUTH_001"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest

	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return err
	}

	token, expiresAt, user, err := h.authService.Login(req.Username, req.Password)
	if err != nil {
		if stderrors.Is(err, services.ErrInvalidCredentials) {
			return SendError(c, errors.AuthInvalidCredentials)
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.TokenResponse{
		Token:     token,
		TokenType: "Bearer",
		ExpiresAt: expiresAt,
		User:      user,
	})
}

// Logout revokes the presented bearer token
// @Summary Logout user
// @Description Revoke the current token; it stops authenticating immediately
// @Tags Authentication
// @Produce json
// @Success 200 {object} SuccessResponse "Logout successful"
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	authHeader := c.Request().Header.Get("Authorization")
	if authHeader == "" {
		return SendError(c, errors.AuthMissingToken)
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return SendError(c, errors.AuthInvalidTokenFormat)
	}

	if err := h.authService.Logout(parts[1]); err != nil {
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Logout successful"})
}

// GetProfile returns the authenticated user's profile
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} dto.ProfileResponse
// @Failure 401 {object} errors.ErrorResponse "Missing token - AUTH_002"
// @Router /profile [get]
func (h *AuthHandler) GetProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	user, err := h.authService.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			return SendError(c, errors.AccountNotFound, errors.WithMessage("User not found"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ProfileResponse{User: user})
}

// UpdateProfile updates the authenticated user's display name
// @Summary Update profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} dto.ProfileResponse
// @Router /profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := h.authService.UpdateProfile(userID, req.FullName)
	if err != nil {
		if stderrors.Is(err, services.ErrUserNotFound) {
			return SendError(c, errors.AccountNotFound, errors.WithMessage("User not found"))
		}
		return SendSystemError(c, err)
	}

	return c.JSON(http.StatusOK, dto.ProfileResponse{User: user})
}

// ChangePassword replaces the authenticated user's password
// @Summary Change password
// @Tags Profile
// @Accept json
// @Produce json
// @Param request body dto.ChangePasswordRequest true "Current and new password"
// @Success 200 {object} SuccessResponse
// @Failure 401 {object} errors.ErrorResponse "Wrong current password - AUTH_001"
// @Router /profile/password [put]
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	var req dto.ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	if err := h.authService.ChangePassword(userID, req.CurrentPassword, req.NewPassword); err != nil {
		switch {
		case stderrors.Is(err, services.ErrInvalidCredentials):
			return SendError(c, errors.AuthInvalidCredentials)
		case stderrors.Is(err, services.ErrSamePassword):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		case stderrors.Is(err, services.ErrPasswordTooShort),
			stderrors.Is(err, services.ErrPasswordNoLetter),
			stderrors.Is(err, services.ErrPasswordNoNumber):
			return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
		default:
			return SendSystemError(c, err)
		}
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "Password updated successfully"})
}
