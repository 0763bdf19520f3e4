package postgres

import (
	"context"

	"mining_webapp/internal/domain"
	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const offerColumns = `id, seller_id, seller_name, equipment_id, ton_price, flame_price, is_active, created_at`

type TradingOfferRepo struct {
	db *pgxpool.Pool
}

func (r *TradingOfferRepo) GetByID(ctx context.Context, id int64) (*domain.TradingOffer, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+offerColumns+` FROM trading_offers WHERE id = $1`, id)
	return scanOffer(row)
}

func (r *TradingOfferRepo) ListActive(ctx context.Context) ([]*domain.TradingOffer, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+offerColumns+` FROM trading_offers WHERE is_active ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.TradingOffer
	for rows.Next() {
		o, err := scanOffer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}

func (r *TradingOfferRepo) Create(ctx context.Context, o *domain.TradingOffer) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO trading_offers (seller_id, seller_name, equipment_id, ton_price, flame_price, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 RETURNING id, created_at`,
		o.SellerID, o.SellerName, o.EquipmentID, o.TonPrice, o.FlamePrice, o.IsActive,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *TradingOfferRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM trading_offers WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanOffer(row pgx.Row) (*domain.TradingOffer, error) {
	var o domain.TradingOffer
	err := row.Scan(
		&o.ID, &o.SellerID, &o.SellerName, &o.EquipmentID,
		&o.TonPrice, &o.FlamePrice, &o.IsActive, &o.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &o, nil
}
