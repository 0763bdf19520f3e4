package domain

import "time"

// Rarity is the closed equipment rarity enum
type Rarity string

const (
	RarityCommon    Rarity = "Common"
	RarityRare      Rarity = "Rare"
	RarityLegendary Rarity = "Legendary"
	RarityExclusive Rarity = "Exclusive"
)

// Power returns the mining power an item of this rarity contributes
// while equipped.
func (r Rarity) Power() int64 {
	switch r {
	case RarityLegendary:
		return 45
	case RarityExclusive:
		return 35
	case RarityRare:
		return 25
	default:
		return 10 // Common
	}
}

// Stat is a display-only equipment attribute
type Stat struct {
	Icon  string `json:"icon"`
	Value string `json:"value"`
}

type Equipment struct {
	ID         int64     `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"userId"`
	MarketID   int64     `db:"market_id" json:"marketId,omitempty"`
	Name       string    `db:"name" json:"name"`
	Rarity     Rarity    `db:"rarity" json:"rarity"`
	Icon       string    `db:"icon" json:"icon"`
	Durability int       `db:"durability" json:"durability"`
	RepairCost int64     `db:"repair_cost" json:"repairCost"`
	IsEquipped bool      `db:"is_equipped" json:"isEquipped"`
	Stats      []Stat    `db:"stats" json:"stats"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
