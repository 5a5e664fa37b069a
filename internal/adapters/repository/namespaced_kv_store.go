package repository

import (
	"context"

	"github.com/codequest/streak-engine/internal/core/domain"
)

var _ domain.KeyValueStore = (*NamespacedKeyValueStore)(nil)

// NamespacedKeyValueStore prefixes every key, so many trackers can share one
// backend while each still reads and writes its own plain keys.
type NamespacedKeyValueStore struct {
	next   domain.KeyValueStore
	prefix string
}

func NewNamespacedKeyValueStore(next domain.KeyValueStore, prefix string) *NamespacedKeyValueStore {
	return &NamespacedKeyValueStore{
		next:   next,
		prefix: prefix,
	}
}

// PlayerStreakPrefix is the namespace of one player's streak keys.
func PlayerStreakPrefix(playerID string) string {
	return "streak:" + playerID + ":"
}

func (s *NamespacedKeyValueStore) Get(ctx context.Context, key string) (string, error) {
	return s.next.Get(ctx, s.prefix+key)
}

func (s *NamespacedKeyValueStore) Set(ctx context.Context, key, value string) error {
	return s.next.Set(ctx, s.prefix+key, value)
}
