package postgres

import (
	"context"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const marketColumns = `id, name, rarity, icon, ton_price, flame_price, stats, available, created_at`

type MarketItemRepo struct {
	db *pgxpool.Pool
}

func (r *MarketItemRepo) GetByID(ctx context.Context, id int64) (*domain.MarketItem, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+marketColumns+` FROM market_items WHERE id = $1`, id)
	return scanMarketItem(row)
}

func (r *MarketItemRepo) ListAvailable(ctx context.Context) ([]*domain.MarketItem, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+marketColumns+` FROM market_items WHERE available ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.MarketItem
	for rows.Next() {
		m, err := scanMarketItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	return out, rows.Err()
}

func (r *MarketItemRepo) Create(ctx context.Context, m *domain.MarketItem) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO market_items (name, rarity, icon, ton_price, flame_price, stats, available)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 RETURNING id, created_at`,
		m.Name, m.Rarity, m.Icon, m.TonPrice, m.FlamePrice, m.Stats, m.Available,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func scanMarketItem(row pgx.Row) (*domain.MarketItem, error) {
	var m domain.MarketItem
	err := row.Scan(
		&m.ID, &m.Name, &m.Rarity, &m.Icon, &m.TonPrice,
		&m.FlamePrice, &m.Stats, &m.Available, &m.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &m, nil
}
