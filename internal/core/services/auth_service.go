package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/google/uuid"
)

type AuthService struct {
	repo   domain.PlayerRepository
	tokens *TokenService
}

func NewAuthService(repo domain.PlayerRepository, tokens *TokenService) *AuthService {
	return &AuthService{
		repo:   repo,
		tokens: tokens,
	}
}

type RegisterInput struct {
	Nickname string
	Password string
}

type LoginInput struct {
	Nickname string
	Password string
}

func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*domain.Player, error) {
	player, err := domain.NewPlayer(uuid.NewString(), input.Nickname)
	if err != nil {
		return nil, err
	}

	if err := player.SetPassword(input.Password); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, player); err != nil {
		if errors.Is(err, domain.ErrNicknameTaken) {
			return nil, err
		}
		return nil, fmt.Errorf("auth service: failed to create player: %w", err)
	}

	return player, nil
}

// Login returns a signed token. Unknown nicknames and wrong passwords both
// yield ErrInvalidCredentials.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (string, *domain.Player, error) {
	player, err := s.repo.GetByNickname(ctx, domain.NormalizeNickname(input.Nickname))
	if err != nil {
		if errors.Is(err, domain.ErrPlayerNotFound) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, fmt.Errorf("auth service: failed to load player: %w", err)
	}

	if err := player.CheckPassword(input.Password); err != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateToken(player.ID)
	if err != nil {
		return "", nil, err
	}

	return token, player, nil
}
