package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/codequest/streak-engine/internal/core/domain"
)

// StreakTracker owns one streak. All reads and writes of the state go
// through mu, so there is a single writer at any time.
type StreakTracker struct {
	store domain.KeyValueStore

	mu     sync.Mutex
	state  domain.StreakState
	loaded bool
}

func NewStreakTracker(store domain.KeyValueStore) *StreakTracker {
	return &StreakTracker{store: store}
}

// Load reads the state from the store the first time it is called and
// returns the cached state afterwards.
func (t *StreakTracker) Load(ctx context.Context) (domain.StreakState, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(ctx); err != nil {
		return domain.StreakState{}, err
	}
	return t.state, nil
}

// UpdateIfNeeded records a qualifying completion at now and persists both
// keys. On a persistence failure the in-memory state is left untouched.
func (t *StreakTracker) UpdateIfNeeded(ctx context.Context, now time.Time) (domain.StreakState, domain.StreakOutcome, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.ensureLoaded(ctx); err != nil {
		return domain.StreakState{}, "", err
	}

	next, outcome := t.state.Advance(now)
	if outcome == domain.StreakClockSkew {
		log.Printf("[STREAK] Clock moved backward (last=%s now=%s), keeping count %d",
			t.state.LastCompletedDate.Format(domain.DateLayout), now.Format(time.RFC3339), t.state.Count)
	}

	if err := t.persist(ctx, next); err != nil {
		return t.state, "", err
	}

	t.state = next
	return t.state, outcome, nil
}

func (t *StreakTracker) ensureLoaded(ctx context.Context) error {
	if t.loaded {
		return nil
	}

	state, err := loadStreakState(ctx, t.store)
	if err != nil {
		return err
	}

	t.state = state
	t.loaded = true
	return nil
}

func (t *StreakTracker) persist(ctx context.Context, state domain.StreakState) error {
	if err := t.store.Set(ctx, domain.StreakCountKey, strconv.Itoa(state.Count)); err != nil {
		return fmt.Errorf("streak tracker: failed to persist %s: %w", domain.StreakCountKey, err)
	}

	if err := t.store.Set(ctx, domain.LastCompletedDateKey, state.LastCompletedDate.Format(domain.DateLayout)); err != nil {
		return fmt.Errorf("streak tracker: failed to persist %s: %w", domain.LastCompletedDateKey, err)
	}

	return nil
}

func loadStreakState(ctx context.Context, store domain.KeyValueStore) (domain.StreakState, error) {
	var state domain.StreakState

	rawCount, err := store.Get(ctx, domain.StreakCountKey)
	switch {
	case err == nil:
		count, convErr := strconv.Atoi(strings.TrimSpace(rawCount))
		if convErr != nil {
			log.Printf("[STREAK] Corrupted %s value %q, using default", domain.StreakCountKey, rawCount)
		} else {
			state.Count = count
		}
	case !errors.Is(err, domain.ErrKeyNotFound):
		return domain.StreakState{}, fmt.Errorf("streak tracker: failed to read %s: %w", domain.StreakCountKey, err)
	}

	rawDate, err := store.Get(ctx, domain.LastCompletedDateKey)
	switch {
	case err == nil:
		if day, ok := parseStoredDate(rawDate); ok {
			state.LastCompletedDate = &day
		} else {
			log.Printf("[STREAK] Corrupted %s value %q, using default", domain.LastCompletedDateKey, rawDate)
		}
	case !errors.Is(err, domain.ErrKeyNotFound):
		return domain.StreakState{}, fmt.Errorf("streak tracker: failed to read %s: %w", domain.LastCompletedDateKey, err)
	}

	return state.Normalize(), nil
}

// parseStoredDate accepts domain.DateLayout or an RFC 3339 timestamp, whose
// own calendar date is kept.
func parseStoredDate(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	if day, err := time.Parse(domain.DateLayout, raw); err == nil {
		return day, true
	}

	if ts, err := time.Parse(time.RFC3339, raw); err == nil {
		return domain.StartOfDay(ts), true
	}

	return time.Time{}, false
}
