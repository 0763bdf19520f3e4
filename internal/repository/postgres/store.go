// Package postgres is the pgx-backed store. The memory backend is the
// default; this one activates with STORE=postgres and a DATABASE_URL.
package postgres

import (
	"errors"

	"mining_webapp/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// New wires one repository per entity over a shared pool.
func New(db *pgxpool.Pool) *repository.Store {
	return &repository.Store{
		Users:        &UserRepo{db: db},
		Equipment:    &EquipmentRepo{db: db},
		MarketItems:  &MarketItemRepo{db: db},
		Sites:        &MiningSiteRepo{db: db},
		Sessions:     &MiningSessionRepo{db: db},
		Offers:       &TradingOfferRepo{db: db},
		Transactions: &TransactionRepo{db: db},
	}
}

// mapErr folds driver errors into the repository sentinels.
func mapErr(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return repository.ErrDuplicateUsername
	}
	return err
}
