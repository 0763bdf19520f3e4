package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const sessionColumns = `id, user_id, site_id, started_at, last_collected_at, accumulated_reward, is_active`

type MiningSessionRepo struct {
	db *pgxpool.Pool
}

func (r *MiningSessionRepo) GetByID(ctx context.Context, id int64) (*domain.MiningSession, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM mining_sessions WHERE id = $1`, id)
	return scanSession(row)
}

// GetActiveByUser returns (nil, nil) when the user has no running
// session.
func (r *MiningSessionRepo) GetActiveByUser(ctx context.Context, userID int64) (*domain.MiningSession, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+sessionColumns+` FROM mining_sessions
		 WHERE user_id = $1 AND is_active
		 ORDER BY started_at DESC
		 LIMIT 1`, userID)
	s, err := scanSession(row)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return s, err
}

func (r *MiningSessionRepo) Create(ctx context.Context, s *domain.MiningSession) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO mining_sessions (user_id, site_id, started_at, last_collected_at, accumulated_reward, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id`,
		s.UserID, s.SiteID, s.StartedAt, s.LastCollectedAt, s.AccumulatedReward, s.IsActive,
	).Scan(&s.ID)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *MiningSessionRepo) Update(ctx context.Context, id int64, upd repository.SessionUpdate) (*domain.MiningSession, error) {
	var set []string
	var args []any
	if upd.LastCollectedAt != nil {
		args = append(args, *upd.LastCollectedAt)
		set = append(set, fmt.Sprintf("last_collected_at = $%d", len(args)))
	}
	if upd.AccumulatedRewardDelta != 0 {
		args = append(args, upd.AccumulatedRewardDelta)
		set = append(set, fmt.Sprintf("accumulated_reward = accumulated_reward + $%d", len(args)))
	}
	if upd.IsActive != nil {
		args = append(args, *upd.IsActive)
		set = append(set, fmt.Sprintf("is_active = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE mining_sessions SET %s WHERE id = $%d RETURNING `+sessionColumns,
		strings.Join(set, ", "), len(args)), args...)
	return scanSession(row)
}

func scanSession(row pgx.Row) (*domain.MiningSession, error) {
	var s domain.MiningSession
	err := row.Scan(
		&s.ID, &s.UserID, &s.SiteID, &s.StartedAt,
		&s.LastCollectedAt, &s.AccumulatedReward, &s.IsActive,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}
