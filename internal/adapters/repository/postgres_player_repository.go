package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/codequest/streak-engine/internal/core/domain"
)

const uniqueViolation = "23505"

var _ domain.PlayerRepository = (*PostgresPlayerRepository)(nil)

type PostgresPlayerRepository struct {
	db *sqlx.DB
}

func NewPostgresPlayerRepository(db *sqlx.DB) *PostgresPlayerRepository {
	return &PostgresPlayerRepository{
		db: db,
	}
}

func (r *PostgresPlayerRepository) Create(ctx context.Context, player *domain.Player) error {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := `
		INSERT INTO players (id, nickname, password_hash, created_at, updated_at)
		VALUES (:id, :nickname, :password_hash, :created_at, :updated_at)
	`

	if _, err := r.db.NamedExecContext(ctx, query, player); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrNicknameTaken
		}
		return fmt.Errorf("repository: create player failed: %w", err)
	}

	return nil
}

func (r *PostgresPlayerRepository) GetByID(ctx context.Context, id string) (*domain.Player, error) {
	return r.getOne(ctx, "id", id)
}

func (r *PostgresPlayerRepository) GetByNickname(ctx context.Context, nickname string) (*domain.Player, error) {
	return r.getOne(ctx, "nickname", nickname)
}

func (r *PostgresPlayerRepository) getOne(ctx context.Context, column, value string) (*domain.Player, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	query := r.db.Rebind(fmt.Sprintf(`
		SELECT id, nickname, password_hash, created_at, updated_at
		FROM players
		WHERE %s = ?
	`, column))

	var player domain.Player
	if err := r.db.GetContext(ctx, &player, query, value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrPlayerNotFound
		}
		return nil, fmt.Errorf("repository: get player by %s failed: %w", column, err)
	}

	return &player, nil
}

// isUniqueViolation understands both drivers the service can run on.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == uniqueViolation
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return string(pqErr.Code) == uniqueViolation
	}

	return false
}
