package domain

import (
	"context"
	"time"
)

// StreakEvent is emitted after a streak mutation has been persisted.
type StreakEvent struct {
	PlayerID          string        `json:"player_id"`
	Outcome           StreakOutcome `json:"outcome"`
	Count             int           `json:"streak_count"`
	LastCompletedDate *time.Time    `json:"last_completed_date,omitempty"`
	OccurredAt        time.Time     `json:"occurred_at"`
}

type StreakEventPublisher interface {
	Publish(ctx context.Context, event StreakEvent) error
}
