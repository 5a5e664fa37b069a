package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.PlayerRepository = (*CachedPlayerRepository)(nil)

const playerCacheTTL = 10 * time.Minute

// CachedPlayerRepository is a read-through Redis cache for player lookups by
// id, which every authenticated request performs.
type CachedPlayerRepository struct {
	next  domain.PlayerRepository
	cache *redis.Client
}

// cachedPlayer mirrors domain.Player including the hash, which the public
// JSON form omits.
type cachedPlayer struct {
	ID           string    `json:"id"`
	Nickname     string    `json:"nickname"`
	PasswordHash string    `json:"password_hash"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func NewCachedPlayerRepository(next domain.PlayerRepository, cache *redis.Client) *CachedPlayerRepository {
	return &CachedPlayerRepository{
		next:  next,
		cache: cache,
	}
}

func (r *CachedPlayerRepository) cacheKey(id string) string {
	return fmt.Sprintf("players:%s", id)
}

func (r *CachedPlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	key := r.cacheKey(id)

	val, err := r.cache.Get(ctx, key).Result()
	if err == nil {
		var cp cachedPlayer
		if err := json.Unmarshal([]byte(val), &cp); err == nil {
			return &domain.Player{
				ID:           cp.ID,
				Nickname:     cp.Nickname,
				PasswordHash: cp.PasswordHash,
				CreatedAt:    cp.CreatedAt,
				UpdatedAt:    cp.UpdatedAt,
			}, nil
		}

		log.Printf("[CACHE] Corrupted data for player %s, cleaning up key", id)
		r.cache.Del(ctx, key)
	} else if !errors.Is(err, redis.Nil) {
		log.Printf("[CACHE] Redis read error: %v", err)
	}

	player, err := r.next.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	r.store(ctx, player)
	return player, nil
}

func (r *CachedPlayerRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	return r.next.GetByNickname(ctx, nickname)
}

func (r *CachedPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	if err := r.next.Create(ctx, player); err != nil {
		return err
	}
	r.store(ctx, player)
	return nil
}

func (r *CachedPlayerRepository) store(ctx context.Context, player *domain.Player) {
	data, err := json.Marshal(cachedPlayer{
		ID:           player.ID,
		Nickname:     player.Nickname,
		PasswordHash: player.PasswordHash,
		CreatedAt:    player.CreatedAt,
		UpdatedAt:    player.UpdatedAt,
	})
	if err != nil {
		return
	}

	if err := r.cache.Set(ctx, r.cacheKey(player.ID), data, playerCacheTTL).Err(); err != nil {
		log.Printf("[CACHE] Redis set error: %v", err)
	}
}
