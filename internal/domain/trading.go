package domain

import "time"

// TradingOffer lists one equipment item for sale. API responses carry
// the referenced equipment resolved at read time.
type TradingOffer struct {
	ID          int64      `db:"id" json:"id"`
	SellerID    int64      `db:"seller_id" json:"sellerId"`
	SellerName  string     `db:"seller_name" json:"sellerName"`
	EquipmentID int64      `db:"equipment_id" json:"equipmentId"`
	TonPrice    string     `db:"ton_price" json:"tonPrice"`
	FlamePrice  int64      `db:"flame_price" json:"flamePrice"`
	IsActive    bool       `db:"is_active" json:"isActive"`
	CreatedAt   time.Time  `db:"created_at" json:"createdAt"`
	Equipment   *Equipment `db:"-" json:"equipment,omitempty"`
}
