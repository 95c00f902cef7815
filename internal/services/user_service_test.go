package services

import (
	"context"
	"testing"

	apperrors "github.com/lucasmv/flashdeck/internal/errors"
	"github.com/lucasmv/flashdeck/internal/models"
	"github.com/lucasmv/flashdeck/internal/repository"
	"github.com/lucasmv/flashdeck/internal/testutil/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRegisterNormalizesUsername(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := NewUserService(users)

	users.On("Insert", mock.Anything, "alice").Return(&models.User{ID: 1, Username: "alice"}, nil)

	user, err := svc.Register(context.Background(), "  Alice ")
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
	users.AssertExpectations(t)
}

func TestRegisterEmptyUsername(t *testing.T) {
	svc := NewUserService(new(mocks.MockUserRepository))

	_, err := svc.Register(context.Background(), "   ")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestRegisterUsernameTaken(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := NewUserService(users)

	users.On("Insert", mock.Anything, "alice").Return(nil, repository.ErrUsernameTaken)

	_, err := svc.Register(context.Background(), "alice")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeValidation, appErr.Code)
}

func TestLoginUnknownUser(t *testing.T) {
	users := new(mocks.MockUserRepository)
	svc := NewUserService(users)

	users.On("GetByUsername", mock.Anything, "ghost").Return(nil, nil)

	_, err := svc.Login(context.Background(), "ghost")
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, apperrors.ErrCodeNotFound, appErr.Code)
}
