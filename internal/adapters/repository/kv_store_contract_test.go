package repository

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codequest/streak-engine/internal/core/domain"
)

// testKeyValueStore runs the behaviour every domain.KeyValueStore backend
// must share. prefix keeps runs against shared backends apart.
func testKeyValueStore(t *testing.T, store domain.KeyValueStore, prefix string) {
	ctx := context.Background()

	t.Run("Missing key returns ErrKeyNotFound", func(t *testing.T) {
		_, err := store.Get(ctx, prefix+"missing")
		assert.ErrorIs(t, err, domain.ErrKeyNotFound)
	})

	t.Run("Set then Get", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+domain.StreakCountKey, "3"))

		val, err := store.Get(ctx, prefix+domain.StreakCountKey)
		require.NoError(t, err)
		assert.Equal(t, "3", val)
	})

	t.Run("Set overwrites", func(t *testing.T) {
		require.NoError(t, store.Set(ctx, prefix+domain.LastCompletedDateKey, "2024-01-10"))
		require.NoError(t, store.Set(ctx, prefix+domain.LastCompletedDateKey, "2024-01-11"))

		val, err := store.Get(ctx, prefix+domain.LastCompletedDateKey)
		require.NoError(t, err)
		assert.Equal(t, "2024-01-11", val)
	})

	t.Run("Concurrent writers on distinct keys", func(t *testing.T) {
		var wg sync.WaitGroup
		for i := 0; i < 20; i++ {
			wg.Add(1)
			go func(id int) {
				defer wg.Done()
				key := fmt.Sprintf("%sconcurrent_%d", prefix, id)
				assert.NoError(t, store.Set(ctx, key, "val"))

				_, err := store.Get(ctx, key)
				assert.NoError(t, err)
			}(i)
		}
		wg.Wait()
	})
}
