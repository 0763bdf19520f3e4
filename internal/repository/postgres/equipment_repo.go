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

const equipmentColumns = `id, user_id, market_id, name, rarity, icon, durability,
	 repair_cost, is_equipped, stats, created_at`

type EquipmentRepo struct {
	db *pgxpool.Pool
}

func (r *EquipmentRepo) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE id = $1`, id)
	return scanEquipment(row)
}

func (r *EquipmentRepo) ListByUser(ctx context.Context, userID int64) ([]*domain.Equipment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE user_id = $1 ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEquipment(rows)
}

func (r *EquipmentRepo) ListEquippedByUser(ctx context.Context, userID int64) ([]*domain.Equipment, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+equipmentColumns+` FROM equipment WHERE user_id = $1 AND is_equipped ORDER BY id`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectEquipment(rows)
}

func (r *EquipmentRepo) Create(ctx context.Context, e *domain.Equipment) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO equipment (user_id, market_id, name, rarity, icon, durability, repair_cost, is_equipped, stats)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		 RETURNING id, created_at`,
		e.UserID, e.MarketID, e.Name, e.Rarity, e.Icon, e.Durability, e.RepairCost, e.IsEquipped, e.Stats,
	).Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *EquipmentRepo) Update(ctx context.Context, id int64, upd repository.EquipmentUpdate) (*domain.Equipment, error) {
	var set []string
	var args []any
	if upd.Durability != nil {
		args = append(args, *upd.Durability)
		set = append(set, fmt.Sprintf("durability = $%d", len(args)))
	}
	if upd.IsEquipped != nil {
		args = append(args, *upd.IsEquipped)
		set = append(set, fmt.Sprintf("is_equipped = $%d", len(args)))
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE equipment SET %s WHERE id = $%d RETURNING `+equipmentColumns,
		strings.Join(set, ", "), len(args)), args...)
	return scanEquipment(row)
}

func (r *EquipmentRepo) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM equipment WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanEquipment(row pgx.Row) (*domain.Equipment, error) {
	var e domain.Equipment
	err := row.Scan(
		&e.ID, &e.UserID, &e.MarketID, &e.Name, &e.Rarity, &e.Icon,
		&e.Durability, &e.RepairCost, &e.IsEquipped, &e.Stats, &e.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &e, nil
}

func collectEquipment(rows pgx.Rows) ([]*domain.Equipment, error) {
	var out []*domain.Equipment
	for rows.Next() {
		e, err := scanEquipment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}
