package repository

import (
	"context"
	"database/sql"
	"fmt"
	"valorant-notifier/internal/domain"

	"github.com/rs/zerolog"
)

type MatchRepository struct {
	db     *sql.DB
	logger zerolog.Logger
}

func NewMatchRepository(sqlDB *sql.DB, logger zerolog.Logger) *MatchRepository {
	return &MatchRepository{
		db:     sqlDB,
		logger: logger,
	}
}

// TryInsert records a match. Returns true only when the match id was not
// already present. The uniqueness check and the insert are a single
// statement, so overlapping passes can never double-record a match; the
// boolean is the sole duplicate signal.
func (r *MatchRepository) TryInsert(ctx context.Context, m *domain.MatchRecord) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO match_records (
			match_id, name, tag, agent, score,
			kills, deaths, assists, kd_ratio, damage_delta,
			headshot_pct, adr, acs, team_placement, map_name,
			result, created_at
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (match_id) DO NOTHING`,
		m.MatchID, m.Name, m.Tag, m.Agent, m.Score,
		m.Kills, m.Deaths, m.Assists, m.KDRatio, m.DamageDelta,
		m.HeadshotPct, m.ADR, m.ACS, m.TeamPlacement, m.MapName,
		m.Result, m.CreatedAt,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert match %s: %w", m.MatchID, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}

	inserted := rows > 0
	r.logger.Debug().
		Str("match_id", m.MatchID).
		Str("player", m.Name+"#"+m.Tag).
		Bool("inserted", inserted).
		Msg("match insert attempt")

	return inserted, nil
}

// Get returns the stored record for a match id, or sql.ErrNoRows.
func (r *MatchRepository) Get(ctx context.Context, matchID string) (*domain.MatchRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT match_id, name, tag, agent, score,
		       kills, deaths, assists, kd_ratio, damage_delta,
		       headshot_pct, adr, acs, team_placement, map_name,
		       result, created_at
		FROM match_records
		WHERE match_id = ?`, matchID)

	var m domain.MatchRecord
	err := row.Scan(
		&m.MatchID, &m.Name, &m.Tag, &m.Agent, &m.Score,
		&m.Kills, &m.Deaths, &m.Assists, &m.KDRatio, &m.DamageDelta,
		&m.HeadshotPct, &m.ADR, &m.ACS, &m.TeamPlacement, &m.MapName,
		&m.Result, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Count reports the number of recorded matches, for the status surface.
func (r *MatchRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM match_records`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count matches: %w", err)
	}
	return count, nil
}
