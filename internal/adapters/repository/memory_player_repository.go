package repository

import (
	"context"
	"sync"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.PlayerRepository = (*InMemoryPlayerRepository)(nil)

type InMemoryPlayerRepository struct {
	byID       map[string]*domain.Player
	byNickname map[string]string

	mu sync.RWMutex
}

func NewInMemoryPlayerRepository() *InMemoryPlayerRepository {
	return &InMemoryPlayerRepository{
		byID:       make(map[string]*domain.Player),
		byNickname: make(map[string]string),
	}
}

func (r *InMemoryPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, taken := r.byNickname[player.Nickname]; taken {
		return domain.ErrNicknameTaken
	}

	clone := *player
	r.byID[player.ID] = &clone
	r.byNickname[player.Nickname] = player.ID
	return nil
}

func (r *InMemoryPlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	player, ok := r.byID[id]
	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	clone := *player
	return &clone, nil
}

func (r *InMemoryPlayerRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	r.mu.RLock()
	id, ok := r.byNickname[nickname]
	r.mu.RUnlock()

	if !ok {
		return nil, domain.ErrPlayerNotFound
	}
	return r.GetByID(ctx, id)
}
