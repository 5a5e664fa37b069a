package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/codequest/streak-engine/internal/core/domain"
)

func newAuthFixture() (*AuthService, *MockPlayerRepository) {
	mockRepo := new(MockPlayerRepository)
	tokens := NewTokenService("test-secret", "streak-engine-test", time.Hour, mockRepo)
	return NewAuthService(mockRepo, tokens), mockRepo
}

func TestAuthService_Register(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("Success: Should register a valid player", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		mockRepo.On("Create", ctx, mock.AnythingOfType("*domain.Player")).Return(nil)

		player, err := service.Register(ctx, RegisterInput{Nickname: "Bug_Catcher", Password: "StrongPassword123!"})

		require.NoError(t, err)
		assert.Equal(t, "bug_catcher", player.Nickname)
		assert.NotEmpty(t, player.ID)
		assert.NotEmpty(t, player.PasswordHash)
		mockRepo.AssertExpectations(t)
	})

	t.Run("Fail: Should return error for invalid nickname", func(t *testing.T) {
		service, mockRepo := newAuthFixture()

		player, err := service.Register(ctx, RegisterInput{Nickname: "x", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrInvalidNickname)
		assert.Nil(t, player)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should return error for short password", func(t *testing.T) {
		service, mockRepo := newAuthFixture()

		player, err := service.Register(ctx, RegisterInput{Nickname: "coder", Password: "short"})

		assert.ErrorIs(t, err, domain.ErrPasswordTooShort)
		assert.Nil(t, player)
		mockRepo.AssertNotCalled(t, "Create")
	})

	t.Run("Fail: Should surface duplicate nickname", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		mockRepo.On("Create", ctx, mock.Anything).Return(domain.ErrNicknameTaken)

		player, err := service.Register(ctx, RegisterInput{Nickname: "coder", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, domain.ErrNicknameTaken)
		assert.Nil(t, player)
	})

	t.Run("Fail: Should wrap repository errors", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		dbErr := errors.New("db connection lost")
		mockRepo.On("Create", ctx, mock.Anything).Return(dbErr)

		_, err := service.Register(ctx, RegisterInput{Nickname: "coder", Password: "StrongPassword123!"})

		assert.ErrorIs(t, err, dbErr)
		assert.Contains(t, err.Error(), "auth service")
	})
}

func TestAuthService_Login(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	player, err := domain.NewPlayer("player-1", "coder")
	require.NoError(t, err)
	require.NoError(t, player.SetPassword("StrongPassword123!"))

	t.Run("Success: Should return a token that validates", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		mockRepo.On("GetByNickname", ctx, "coder").Return(player, nil)
		mockRepo.On("GetByID", mock.Anything, "player-1").Return(player, nil)

		token, got, err := service.Login(ctx, LoginInput{Nickname: "  CODER ", Password: "StrongPassword123!"})

		require.NoError(t, err)
		assert.Equal(t, "player-1", got.ID)

		id, err := service.tokens.ValidateToken(ctx, token)
		require.NoError(t, err)
		assert.Equal(t, "player-1", id)
	})

	t.Run("Fail: Wrong password", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		mockRepo.On("GetByNickname", ctx, "coder").Return(player, nil)

		token, _, err := service.Login(ctx, LoginInput{Nickname: "coder", Password: "nope-nope-nope"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		assert.Empty(t, token)
	})

	t.Run("Fail: Unknown nickname looks like wrong credentials", func(t *testing.T) {
		service, mockRepo := newAuthFixture()
		mockRepo.On("GetByNickname", ctx, "ghost").Return(nil, domain.ErrPlayerNotFound)

		_, _, err := service.Login(ctx, LoginInput{Nickname: "ghost", Password: "whatever123"})

		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}
