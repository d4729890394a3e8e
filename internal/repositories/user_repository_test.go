package repositories

import (
	"strings"
	"testing"

	"github.com/Ferhadbb/BankSite/internal/database"
	"github.com/Ferhadbb/BankSite/internal/models"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

// UserRepositorySuite defines the test suite for UserRepository
type UserRepositorySuite struct {
	suite.Suite
	db   *database.DB
	repo UserRepositoryInterface
}

// SetupTest runs before each test in the suite
func (s *UserRepositorySuite) SetupTest() {
	s.db = database.SetupTestDB(s.T())
	s.repo = NewUserRepository(s.db.DB)
}

// TearDownTest runs after each test in the suite
func (s *UserRepositorySuite) TearDownTest() {
	database.CleanupTestDB(s.T(), s.db)
}

// TestUserRepositorySuite runs the test suite
func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}

func (s *UserRepositorySuite) TestCreate() {
	user := &models.User{
		Username:     "alice",
		PasswordHash: "hashedpassword",
		FullName:     "Alice Example",
	}

	err := s.repo.Create(user)
	s.NoError(err)
	s.NotEqual(uuid.Nil, user.ID)
	s.NotZero(user.CreatedAt)
}

func (s *UserRepositorySuite) TestCreate_DuplicateUsername() {
	first := &models.User{Username: "alice", PasswordHash: "hash1"}
	s.NoError(s.repo.Create(first))

	second := &models.User{Username: "alice", PasswordHash: "hash2"}
	err := s.repo.Create(second)
	s.Error(err)
	s.True(err == ErrUsernameExists ||
		strings.Contains(err.Error(), "duplicate key value") ||
		strings.Contains(err.Error(), "UNIQUE constraint failed"),
		"Expected duplicate error but got: %s", err.Error())
}

func (s *UserRepositorySuite) TestGetByID() {
	user := database.CreateTestUser(s.T(), s.db, "bob")

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal(user.Username, found.Username)

	_, err = s.repo.GetByID(uuid.New())
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestGetByUsername() {
	user := database.CreateTestUser(s.T(), s.db, "carol")

	found, err := s.repo.GetByUsername("carol")
	s.NoError(err)
	s.Equal(user.ID, found.ID)

	_, err = s.repo.GetByUsername("nobody")
	s.ErrorIs(err, ErrUserNotFound)
}

func (s *UserRepositorySuite) TestExistsByUsername() {
	database.CreateTestUser(s.T(), s.db, "dave")

	exists, err := s.repo.ExistsByUsername("dave")
	s.NoError(err)
	s.True(exists)

	exists, err = s.repo.ExistsByUsername("nobody")
	s.NoError(err)
	s.False(exists)
}

func (s *UserRepositorySuite) TestUpdate() {
	user := database.CreateTestUser(s.T(), s.db, "erin")
	user.PasswordHash = "newhash"

	s.NoError(s.repo.Update(user))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("newhash", found.PasswordHash)
}

func (s *UserRepositorySuite) TestUpdateFullName() {
	user := database.CreateTestUser(s.T(), s.db, "frank")

	s.NoError(s.repo.UpdateFullName(user.ID, "Frank N. Furter"))

	found, err := s.repo.GetByID(user.ID)
	s.NoError(err)
	s.Equal("Frank N. Furter", found.FullName)

	err = s.repo.UpdateFullName(uuid.New(), "Ghost")
	s.ErrorIs(err, ErrUserNotFound)
}
