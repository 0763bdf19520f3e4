package domain

import "time"

// MarketItem is a purchasable equipment template. TonPrice stays a
// decimal string; FlamePrice is whole Flame Coins.
type MarketItem struct {
	ID         int64     `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	Rarity     Rarity    `db:"rarity" json:"rarity"`
	Icon       string    `db:"icon" json:"icon"`
	TonPrice   string    `db:"ton_price" json:"tonPrice"`
	FlamePrice int64     `db:"flame_price" json:"flamePrice"`
	Stats      []Stat    `db:"stats" json:"stats"`
	Available  bool      `db:"available" json:"available"`
	CreatedAt  time.Time `db:"created_at" json:"createdAt"`
}
