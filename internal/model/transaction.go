package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	TxIn  = "IN"
	TxOut = "OUT"
)

// Transaction is an immutable stock movement for one item.
// ItemName is copied at creation time and is not kept in sync with renames.
type Transaction struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ItemID    uuid.UUID `gorm:"type:uuid;not null;index"`
	ItemName  string    `gorm:"not null"`
	Type      string    `gorm:"size:3;not null"` // "IN" | "OUT"
	Warehouse string
	Quantity  int    `gorm:"not null"`               // always positive; Type carries the sign
	Date      string `gorm:"size:10;not null;index"` // YYYY-MM-DD
	Target    string
	Remarks   string
	CreatedAt time.Time
}

func (Transaction) TableName() string { return "stock_transactions" }

// Signed returns the quantity with the ledger sign applied.
func (t Transaction) Signed() int {
	if t.Type == TxOut {
		return -t.Quantity
	}
	return t.Quantity
}
