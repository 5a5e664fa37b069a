package domain

import "context"

type PlayerRepository interface {
	// Create persists a new player. A duplicate nickname yields ErrNicknameTaken.
	Create(ctx context.Context, player *Player) error

	// GetByID retrieves a player by its unique identifier.
	GetByID(ctx context.Context, id string) (*Player, error)

	// GetByNickname retrieves a player by its normalized nickname.
	GetByNickname(ctx context.Context, nickname string) (*Player, error)
}
