package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Ferhadbb/BankSite/internal/models"
	"github.com/Ferhadbb/BankSite/internal/repositories"

	"github.com/google/uuid"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUsernameTaken      = errors.New("username already taken")
)

// AuthService handles registration, login and profile management
type AuthService struct {
	userRepo             repositories.UserRepositoryInterface
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface
	passwordService      PasswordServiceInterface
	tokenService         TokenServiceInterface
	accountService       AccountServiceInterface
	metrics              MetricsRecorderInterface
	logger               *slog.Logger
}

// NewAuthService creates a new authentication service
func NewAuthService(
	userRepo repositories.UserRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	passwordService PasswordServiceInterface,
	tokenService TokenServiceInterface,
	accountService AccountServiceInterface,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) AuthServiceInterface {
	return &AuthService{
		userRepo:             userRepo,
		blacklistedTokenRepo: blacklistedTokenRepo,
		passwordService:      passwordService,
		tokenService:         tokenService,
		accountService:       accountService,
		metrics:              metrics,
		logger:               logger,
	}
}

// Register creates a new user and seeds their first savings account
func (s *AuthService) Register(username, password, fullName string) (*models.User, error) {
	exists, err := s.userRepo.ExistsByUsername(username)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing user: %w", err)
	}
	if exists {
		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "register_duplicate"})
		return nil, ErrUsernameTaken
	}

	hashedPassword, err := s.passwordService.HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username:     username,
		PasswordHash: hashedPassword,
		FullName:     fullName,
	}

	if err := s.userRepo.Create(user); err != nil {
		if errors.Is(err, repositories.ErrUsernameExists) {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if _, err := s.accountService.CreateAccountsForNewUser(user.ID); err != nil {
		// Registration stands even if seeding fails; support can retry.
		s.logger.Error("failed to seed account for new user",
			slog.String("user_id", user.ID.String()),
			slog.String("error", err.Error()),
		)
	}

	s.logger.Info("user registered",
		slog.String("user_id", user.ID.String()),
		slog.String("username", user.Username),
	)
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "register"})

	return user, nil
}

// Login authenticates a user and issues a token
func (s *AuthService) Login(username, password string) (string, time.Time, *models.User, error) {
	user, err := s.userRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login_failed"})
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.passwordService.VerifyPassword(user.PasswordHash, password); err != nil {
		s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login_failed"})
		return "", time.Time{}, nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokenService.GenerateToken(user)
	if err != nil {
		return "", time.Time{}, nil, fmt.Errorf("failed to issue token: %w", err)
	}

	s.logger.Info("user logged in", slog.String("user_id", user.ID.String()))
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "login"})

	return token, expiresAt, user, nil
}

// Logout revokes the presented token by blacklisting its JWT ID until the
// token's natural expiry. An expired or garbled token has nothing left to
// revoke, so logout still succeeds.
func (s *AuthService) Logout(accessToken string) error {
	claims, err := s.tokenService.ValidateToken(accessToken)
	if err != nil {
		return nil
	}

	userID, err := claims.UserID()
	if err != nil {
		return nil
	}

	token := &models.BlacklistedToken{
		JTI:       claims.ID,
		UserID:    userID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if err := s.blacklistedTokenRepo.Create(token); err != nil {
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	s.logger.Info("user logged out", slog.String("user_id", userID.String()))
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "logout"})

	return nil
}

// GetProfile retrieves a user's profile
func (s *AuthService) GetProfile(userID uuid.UUID) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

// UpdateProfile updates the user's display name
func (s *AuthService) UpdateProfile(userID uuid.UUID, fullName string) (*models.User, error) {
	if err := s.userRepo.UpdateFullName(userID, fullName); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	return s.GetProfile(userID)
}

// ChangePassword verifies the current password and replaces it
func (s *AuthService) ChangePassword(userID uuid.UUID, currentPassword, newPassword string) error {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to get user: %w", err)
	}

	if err := s.passwordService.VerifyPassword(user.PasswordHash, currentPassword); err != nil {
		return ErrInvalidCredentials
	}
	if currentPassword == newPassword {
		return ErrSamePassword
	}

	hashedPassword, err := s.passwordService.HashPassword(newPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hashedPassword
	if err := s.userRepo.Update(user); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	s.logger.Info("password changed", slog.String("user_id", userID.String()))
	s.metrics.IncrementCounter("auth.event", map[string]string{"event_type": "password_change"})

	return nil
}
