package domain

import "time"

// PremiumTier is the user's subscription level
type PremiumTier string

const (
	TierNone     PremiumTier = "none"
	TierStandard PremiumTier = "standard"
	TierVIP      PremiumTier = "vip"
)

// Valid reports whether the tier is a purchasable one.
func (t PremiumTier) Valid() bool {
	return t == TierStandard || t == TierVIP
}

// Active reports whether the tier grants premium benefits.
func (t PremiumTier) Active() bool {
	return t == TierStandard || t == TierVIP
}

// Multiplier applies the premium yield bonus to a base reward. The base
// is already a floored integer; the boosted value is floored again.
func (t PremiumTier) Multiplier(base int64) int64 {
	switch t {
	case TierStandard:
		return int64(float64(base) * 1.2) // 20% bonus
	case TierVIP:
		return int64(float64(base) * 1.5) // 50% bonus
	default:
		return base
	}
}

type User struct {
	ID               int64       `db:"id" json:"id"`
	Username         string      `db:"username" json:"username"`
	TonAddress       string      `db:"ton_address" json:"tonAddress,omitempty"`
	TonBalanceNano   int64       `db:"ton_balance_nano" json:"tonBalanceNano"`
	FlameBalance     int64       `db:"flame_balance" json:"flameBalance"`
	MiningPower      int64       `db:"mining_power" json:"miningPower"`
	DailyYield       int64       `db:"daily_yield" json:"dailyYield"`
	EquipmentCount   int         `db:"equipment_count" json:"equipmentCount"`
	EquipmentMax     int         `db:"equipment_max" json:"equipmentMax"`
	PremiumTier      PremiumTier `db:"premium_tier" json:"premiumTier"`
	PremiumExpiresAt *time.Time  `db:"premium_expires_at" json:"premiumExpiresAt,omitempty"`
	PremiumDaysLeft  int         `db:"premium_days_left" json:"premiumDaysLeft"`
	CreatedAt        time.Time   `db:"created_at" json:"createdAt"`
}
