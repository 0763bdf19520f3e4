package postgres

import (
	"context"

	"mining_webapp/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type TransactionRepo struct {
	db *pgxpool.Pool
}

func (r *TransactionRepo) Create(ctx context.Context, tx *domain.Transaction) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO transactions (user_id, type, amount, is_ton, description)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id, timestamp`,
		tx.UserID, tx.Type, tx.Amount, tx.IsTon, tx.Description,
	).Scan(&tx.ID, &tx.Timestamp)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *TransactionRepo) ListByUser(ctx context.Context, userID int64, limit int) ([]*domain.Transaction, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, type, amount, is_ton, COALESCE(description, ''), timestamp
		 FROM transactions
		 WHERE user_id = $1
		 ORDER BY timestamp DESC, id DESC
		 LIMIT $2`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.Transaction
	for rows.Next() {
		var tx domain.Transaction
		if err := rows.Scan(&tx.ID, &tx.UserID, &tx.Type, &tx.Amount, &tx.IsTon, &tx.Description, &tx.Timestamp); err != nil {
			return nil, err
		}
		out = append(out, &tx)
	}
	return out, rows.Err()
}
