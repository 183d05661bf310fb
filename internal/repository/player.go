package repository

import (
	"context"
	"database/sql"
	"fmt"
	"valorant-notifier/internal/domain"

	"github.com/rs/zerolog"
)

type PlayerRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewPlayerRepository(sqlDB *sql.DB, logger zerolog.Logger) *PlayerRepository {
	return &PlayerRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// Upsert inserts a tracked player guarded by the fingerprint key. Returns
// true when the row is newly created, false when the same registration
// already exists. The duplicate case is not an error.
func (r *PlayerRepository) Upsert(ctx context.Context, player *domain.TrackedPlayer) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO tracked_players (fingerprint, name, tag, owner_id, region, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT (fingerprint) DO NOTHING`,
		player.Fingerprint, player.Name, player.Tag, player.OwnerID, player.Region, player.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to upsert player %s: %w", player.RiotID(), err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	created := rows > 0
	r.logger.Debug().
		Str("fingerprint", player.Fingerprint).
		Str("riot_id", player.RiotID()).
		Bool("created", created).
		Msg("player upsert")

	return created, nil
}

// Remove deletes the registration for (name, tag) owned by ownerID. Returns
// false when no such registration exists.
func (r *PlayerRepository) Remove(ctx context.Context, fingerprint string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM tracked_players WHERE fingerprint = ?`, fingerprint)
	if err != nil {
		return false, fmt.Errorf("failed to remove player: %w", err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return rows > 0, nil
}

func (r *PlayerRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.TrackedPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fingerprint, name, tag, owner_id, region, created_at
		FROM tracked_players
		WHERE owner_id = ?
		ORDER BY created_at`, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list players for owner %s: %w", ownerID, err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

// ListAll returns the full roster, used by the polling pass.
func (r *PlayerRepository) ListAll(ctx context.Context) ([]domain.TrackedPlayer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT fingerprint, name, tag, owner_id, region, created_at
		FROM tracked_players
		ORDER BY created_at`)
	if err != nil {
		return nil, fmt.Errorf("failed to list players: %w", err)
	}
	defer rows.Close()

	return scanPlayers(rows)
}

func scanPlayers(rows *sql.Rows) ([]domain.TrackedPlayer, error) {
	var players []domain.TrackedPlayer
	for rows.Next() {
		var p domain.TrackedPlayer
		if err := rows.Scan(&p.Fingerprint, &p.Name, &p.Tag, &p.OwnerID, &p.Region, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan player row: %w", err)
		}
		players = append(players, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate player rows: %w", err)
	}
	return players, nil
}
