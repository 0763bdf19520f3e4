package postgres

import (
	"context"
	"fmt"
	"strings"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const siteColumns = `id, name, difficulty, COALESCE(image_url, ''), yield_rate, min_power,
	 active_miners, is_premium, seasonal_event, is_event_active, COALESCE(remaining_time, ''), created_at`

type MiningSiteRepo struct {
	db *pgxpool.Pool
}

func (r *MiningSiteRepo) GetByID(ctx context.Context, id int64) (*domain.MiningSite, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+siteColumns+` FROM mining_sites WHERE id = $1`, id)
	return scanSite(row)
}

func (r *MiningSiteRepo) List(ctx context.Context) ([]*domain.MiningSite, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+siteColumns+` FROM mining_sites ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MiningSite
	for rows.Next() {
		s, err := scanSite(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *MiningSiteRepo) Create(ctx context.Context, s *domain.MiningSite) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO mining_sites (name, difficulty, image_url, yield_rate, min_power,
		                           active_miners, is_premium, seasonal_event, is_event_active, remaining_time)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		 RETURNING id, created_at`,
		s.Name, s.Difficulty, s.ImageURL, s.YieldRate, s.MinPower,
		s.ActiveMiners, s.IsPremium, s.SeasonalEvent, s.IsEventActive, s.RemainingTime,
	).Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *MiningSiteRepo) Update(ctx context.Context, id int64, upd repository.SiteUpdate) (*domain.MiningSite, error) {
	var set []string
	var args []any
	if upd.ActiveMinersDelta != 0 {
		args = append(args, upd.ActiveMinersDelta)
		set = append(set, fmt.Sprintf("active_miners = GREATEST(0, active_miners + $%d)", len(args)))
	}
	if upd.RemainingTime != nil {
		args = append(args, *upd.RemainingTime)
		set = append(set, fmt.Sprintf("remaining_time = $%d", len(args)))
	}
	if upd.IsEventActive != nil {
		args = append(args, *upd.IsEventActive)
		set = append(set, fmt.Sprintf("is_event_active = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE mining_sites SET %s WHERE id = $%d RETURNING `+siteColumns,
		strings.Join(set, ", "), len(args)), args...)
	return scanSite(row)
}

func scanSite(row pgx.Row) (*domain.MiningSite, error) {
	var s domain.MiningSite
	err := row.Scan(
		&s.ID, &s.Name, &s.Difficulty, &s.ImageURL, &s.YieldRate, &s.MinPower,
		&s.ActiveMiners, &s.IsPremium, &s.SeasonalEvent, &s.IsEventActive,
		&s.RemainingTime, &s.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &s, nil
}
