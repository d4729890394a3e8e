package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"
)

// PasswordServiceTestSuite defines the test suite for PasswordService
type PasswordServiceTestSuite struct {
	suite.Suite
	service PasswordServiceInterface
}

// SetupTest runs before each test
func (s *PasswordServiceTestSuite) SetupTest() {
	// MinCost keeps the bcrypt rounds cheap under test
	s.service = NewPasswordService(bcrypt.MinCost, MinPasswordLength)
}

// TestPasswordServiceSuite runs the test suite
func TestPasswordServiceSuite(t *testing.T) {
	suite.Run(t, new(PasswordServiceTestSuite))
}

// Test ValidatePasswordStrength
func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_ValidPassword() {
	err := s.service.ValidatePasswordStrength("SecurePass123")
	s.NoError(err)
}

func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_Empty() {
	err := s.service.ValidatePasswordStrength("")
	s.ErrorIs(err, ErrPasswordEmpty)
}

func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_TooShort() {
	err := s.service.ValidatePasswordStrength("Short1")
	s.ErrorIs(err, ErrPasswordTooShort)
}

func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_TooLong() {
	err := s.service.ValidatePasswordStrength(strings.Repeat("a", 72) + "1")
	s.ErrorIs(err, ErrPasswordTooLong)
}

func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_MissingLetter() {
	err := s.service.ValidatePasswordStrength("1234567890")
	s.ErrorIs(err, ErrPasswordNoLetter)
}

func (s *PasswordServiceTestSuite) TestValidatePasswordStrength_MissingNumber() {
	err := s.service.ValidatePasswordStrength("passwordonly")
	s.ErrorIs(err, ErrPasswordNoNumber)
}

// Test HashPassword
func (s *PasswordServiceTestSuite) TestHashPassword() {
	hash, err := s.service.HashPassword("Password1")
	s.NoError(err)
	s.NotEmpty(hash)
	s.NotEqual("Password1", hash)
	s.True(strings.HasPrefix(hash, "$2a$"))
}

func (s *PasswordServiceTestSuite) TestHashPassword_RejectsWeakPassword() {
	_, err := s.service.HashPassword("weak")
	s.ErrorIs(err, ErrPasswordTooShort)
}

// Two hashes of the same password differ because of the salt.
func (s *PasswordServiceTestSuite) TestHashPassword_UniqueSalts() {
	first, err := s.service.HashPassword("Password1")
	s.NoError(err)
	second, err := s.service.HashPassword("Password1")
	s.NoError(err)
	s.NotEqual(first, second)
}

// Test VerifyPassword
func (s *PasswordServiceTestSuite) TestVerifyPassword() {
	hash, err := s.service.HashPassword("Password1")
	s.NoError(err)

	s.NoError(s.service.VerifyPassword(hash, "Password1"))
}

func (s *PasswordServiceTestSuite) TestVerifyPassword_Mismatch() {
	hash, err := s.service.HashPassword("Password1")
	s.NoError(err)

	err = s.service.VerifyPassword(hash, "Password2")
	s.ErrorIs(err, ErrPasswordMismatch)
}

func (s *PasswordServiceTestSuite) TestVerifyPassword_MalformedHash() {
	err := s.service.VerifyPassword("not-a-bcrypt-hash", "Password1")
	s.ErrorIs(err, ErrPasswordMismatch)
}
