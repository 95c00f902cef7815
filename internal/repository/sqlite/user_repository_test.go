package sqlite_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/lucasmv/flashdeck/internal/repository"
	"github.com/lucasmv/flashdeck/internal/repository/sqlite"
	"github.com/lucasmv/flashdeck/internal/testutil"
	"github.com/stretchr/testify/suite"
)

type UserRepositorySuite struct {
	suite.Suite
	db   *sql.DB
	repo repository.UserRepository
}

func (s *UserRepositorySuite) SetupTest() {
	s.db = testutil.NewTestDB(s.T())
	s.repo = sqlite.NewUserRepository(s.db)
}

func (s *UserRepositorySuite) TearDownTest() {
	testutil.MustClose(s.T(), s.db)
}

func (s *UserRepositorySuite) TestInsertAndLookup() {
	ctx := context.Background()

	user, err := s.repo.Insert(ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(user)
	s.Assert().Equal("alice", user.Username)
	s.Assert().False(user.CreatedAt.IsZero())

	byName, err := s.repo.GetByUsername(ctx, "alice")
	s.Require().NoError(err)
	s.Require().NotNil(byName)
	s.Assert().Equal(user.ID, byName.ID)
}

func (s *UserRepositorySuite) TestInsertDuplicateUsername() {
	ctx := context.Background()

	_, err := s.repo.Insert(ctx, "alice")
	s.Require().NoError(err)

	_, err = s.repo.Insert(ctx, "alice")
	s.Assert().ErrorIs(err, repository.ErrUsernameTaken)
}

func (s *UserRepositorySuite) TestGetMissingUser() {
	user, err := s.repo.Get(context.Background(), 999)
	s.Require().NoError(err)
	s.Assert().Nil(user)
}

func TestUserRepositorySuite(t *testing.T) {
	suite.Run(t, new(UserRepositorySuite))
}
