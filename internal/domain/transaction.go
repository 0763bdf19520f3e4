package domain

import "time"

// TxType classifies balance-affecting actions
type TxType string

const (
	TxSend    TxType = "SEND"
	TxReceive TxType = "RECEIVE"
	TxBuy     TxType = "BUY"
	TxRepair  TxType = "REPAIR"
)

// Transaction is an immutable audit record. Amount is Flame Coins, or
// nanoTON when IsTon is set.
type Transaction struct {
	ID          int64     `db:"id" json:"id"`
	UserID      int64     `db:"user_id" json:"userId"`
	Type        TxType    `db:"type" json:"type"`
	Amount      int64     `db:"amount" json:"amount"`
	IsTon       bool      `db:"is_ton" json:"isTon"`
	Description string    `db:"description" json:"description,omitempty"`
	Timestamp   time.Time `db:"timestamp" json:"timestamp"`
}
