package services

import (
	"context"
	"errors"
	"strings"

	apperrors "github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/logger"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
)

// UserService handles account creation and lookup
type UserService interface {
	Register(ctx context.Context, username string) (*models.User, error)
	Login(ctx context.Context, username string) (*models.User, error)
	GetUser(ctx context.Context, id int64) (*models.User, error)
}

type userService struct {
	users repository.UserRepository
}

// NewUserService creates a new UserService
func NewUserService(users repository.UserRepository) UserService {
	return &userService{users: users}
}

func (s *userService) Register(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	log.Debug("registering user: username=%s", username)

	if username == "" {
		return nil, apperrors.NewValidationError("username", "must not be empty")
	}

	user, err := s.users.Insert(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			return nil, apperrors.NewValidationError("username", "already taken")
		}
		log.Error("failed to register user: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	log.Info("user registered: id=%d, username=%s", user.ID, user.Username)
	return user, nil
}

func (s *userService) Login(ctx context.Context, username string) (*models.User, error) {
	log := logger.FromContext(ctx)
	username = strings.ToLower(strings.TrimSpace(username))
	log.Debug("logging in user: username=%s", username)

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		log.Error("failed to look up user: %v", err)
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user", username)
	}
	return user, nil
}

func (s *userService) GetUser(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.users.Get(ctx, id)
	if err != nil {
		return nil, apperrors.NewInternalError(err)
	}
	if user == nil {
		return nil, apperrors.NewNotFoundError("user", id)
	}
	return user, nil
}
