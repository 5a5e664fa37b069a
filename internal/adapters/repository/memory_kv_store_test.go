package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codequest/streak-engine/internal/core/domain"
)

func TestInMemoryKeyValueStore(t *testing.T) {
	testKeyValueStore(t, NewInMemoryKeyValueStore(), "")
}

func TestNamespacedKeyValueStore(t *testing.T) {
	ctx := context.Background()
	base := NewInMemoryKeyValueStore()

	alice := NewNamespacedKeyValueStore(base, PlayerStreakPrefix("alice"))
	bob := NewNamespacedKeyValueStore(base, PlayerStreakPrefix("bob"))

	testKeyValueStore(t, alice, "")

	t.Run("Keys are isolated per namespace", func(t *testing.T) {
		require.NoError(t, alice.Set(ctx, domain.StreakCountKey, "9"))

		_, err := bob.Get(ctx, domain.StreakCountKey)
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)

		raw, err := base.Get(ctx, "streak:alice:streakCount")
		require.NoError(t, err)
		assert.Equal(t, "9", raw)
	})
}
