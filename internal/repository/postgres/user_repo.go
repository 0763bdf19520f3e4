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

const userColumns = `id, username, COALESCE(ton_address, ''), ton_balance_nano, flame_balance,
	 mining_power, daily_yield, equipment_count, equipment_max,
	 premium_tier, premium_expires_at, premium_days_left, created_at`

type UserRepo struct {
	db *pgxpool.Pool
}

func (r *UserRepo) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id)
	return scanUser(row)
}

func (r *UserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(username) = lower($1)`, username)
	return scanUser(row)
}

// GetByTonAddress returns (nil, nil) when no wallet matches.
func (r *UserRepo) GetByTonAddress(ctx context.Context, address string) (*domain.User, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE ton_address = $1`, address)
	u, err := scanUser(row)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, nil
	}
	return u, err
}

// ListWithPremium returns users holding any paid tier, expired or not.
func (r *UserRepo) ListWithPremium(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE premium_tier <> 'none' ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *UserRepo) Create(ctx context.Context, u *domain.User) error {
	err := r.db.QueryRow(ctx,
		`INSERT INTO users (username, ton_address, ton_balance_nano, flame_balance, mining_power,
		                    daily_yield, equipment_count, equipment_max, premium_tier,
		                    premium_expires_at, premium_days_left)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id, created_at`,
		u.Username, u.TonAddress, u.TonBalanceNano, u.FlameBalance, u.MiningPower,
		u.DailyYield, u.EquipmentCount, u.EquipmentMax, u.PremiumTier,
		u.PremiumExpiresAt, u.PremiumDaysLeft,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		return mapErr(err)
	}
	return nil
}

func (r *UserRepo) Update(ctx context.Context, id int64, upd repository.UserUpdate) (*domain.User, error) {
	var set []string
	var args []any
	add := func(col string, v any) {
		args = append(args, v)
		set = append(set, fmt.Sprintf("%s = $%d", col, len(args)))
	}

	if upd.TonAddress != nil {
		add("ton_address", *upd.TonAddress)
	}
	if upd.TonBalanceNano != nil {
		add("ton_balance_nano", *upd.TonBalanceNano)
	}
	if upd.FlameBalance != nil {
		add("flame_balance", *upd.FlameBalance)
	}
	if upd.MiningPower != nil {
		add("mining_power", *upd.MiningPower)
	}
	if upd.EquipmentCount != nil {
		add("equipment_count", *upd.EquipmentCount)
	}
	if upd.PremiumTier != nil {
		add("premium_tier", *upd.PremiumTier)
	}
	if upd.PremiumExpiresAt != nil {
		add("premium_expires_at", *upd.PremiumExpiresAt)
	} else if upd.ClearPremiumExpiry {
		set = append(set, "premium_expires_at = NULL")
	}
	if upd.PremiumDaysLeft != nil {
		add("premium_days_left", *upd.PremiumDaysLeft)
	}
	if len(set) == 0 {
		return r.GetByID(ctx, id)
	}

	args = append(args, id)
	row := r.db.QueryRow(ctx, fmt.Sprintf(
		`UPDATE users SET %s WHERE id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), len(args)), args...)
	return scanUser(row)
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Username, &u.TonAddress, &u.TonBalanceNano, &u.FlameBalance,
		&u.MiningPower, &u.DailyYield, &u.EquipmentCount, &u.EquipmentMax,
		&u.PremiumTier, &u.PremiumExpiresAt, &u.PremiumDaysLeft, &u.CreatedAt,
	)
	if err != nil {
		return nil, mapErr(err)
	}
	return &u, nil
}
