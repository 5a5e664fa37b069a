package services

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/codequest/streak-engine/internal/core/domain"
	"github.com/codequest/streak-engine/internal/observability"
)

// StreakStoreFactory returns the key-value store holding one player's streak.
type StreakStoreFactory func(playerID string) domain.KeyValueStore

type Clock func() time.Time

// StreakService holds one StreakTracker per player for the life of the
// process. Entries are never evicted, so the registry is bounded by the
// number of registered players.
type StreakService struct {
	storeFor  StreakStoreFactory
	publisher domain.StreakEventPublisher
	clock     Clock

	mu       sync.Mutex
	trackers map[string]*StreakTracker
}

// NewStreakService builds the per-player tracker registry. publisher may be
// nil; clock defaults to time.Now.
func NewStreakService(storeFor StreakStoreFactory, publisher domain.StreakEventPublisher, clock Clock) *StreakService {
	if clock == nil {
		clock = time.Now
	}

	return &StreakService{
		storeFor:  storeFor,
		publisher: publisher,
		clock:     clock,
		trackers:  make(map[string]*StreakTracker),
	}
}

func (s *StreakService) tracker(playerID string) *StreakTracker {
	s.mu.Lock()
	defer s.mu.Unlock()

	t, ok := s.trackers[playerID]
	if !ok {
		t = NewStreakTracker(s.storeFor(playerID))
		s.trackers[playerID] = t
	}
	return t
}

func (s *StreakService) GetStreak(ctx context.Context, playerID string, loc *time.Location) (*domain.StreakView, error) {
	if playerID == "" {
		return nil, domain.ErrUnauthorized
	}

	state, err := s.tracker(playerID).Load(ctx)
	if err != nil {
		return nil, err
	}

	return domain.NewStreakView(playerID, state, s.now(loc), ""), nil
}

// RecordCompletion applies one qualifying completion on the player's
// calendar (loc).
func (s *StreakService) RecordCompletion(ctx context.Context, playerID string, loc *time.Location) (*domain.StreakView, error) {
	if playerID == "" {
		return nil, domain.ErrUnauthorized
	}

	now := s.now(loc)

	state, outcome, err := s.tracker(playerID).UpdateIfNeeded(ctx, now)
	if err != nil {
		return nil, err
	}

	observability.RecordStreakOutcome(outcome)

	s.publish(ctx, domain.StreakEvent{
		PlayerID:          playerID,
		Outcome:           outcome,
		Count:             state.Count,
		LastCompletedDate: state.LastCompletedDate,
		OccurredAt:        now.UTC(),
	})

	if outcome != domain.StreakUnchanged {
		log.Printf("[STREAK] Player %s: %s, count=%d", playerID, outcome, state.Count)
	}

	return domain.NewStreakView(playerID, state, now, outcome), nil
}

func (s *StreakService) now(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return s.clock().In(loc)
}

func (s *StreakService) publish(ctx context.Context, event domain.StreakEvent) {
	if s.publisher == nil {
		return
	}

	if err := s.publisher.Publish(ctx, event); err != nil {
		log.Printf("[STREAK] Failed to publish event for player %s: %v", event.PlayerID, err)
	}
}
