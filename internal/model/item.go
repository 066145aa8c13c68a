package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Item is a trackable inventory good. Quantity is a cached value kept in step
// with the Transaction ledger; admin edits may override it.
type Item struct {
	ID         uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name       string          `gorm:"index;not null"`
	Group      string          `gorm:"column:product_group;index"`
	Warehouse  string          `gorm:"index"`
	PartNumber string
	Quantity   int             `gorm:"not null;default:0"`
	Price      decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	Remarks    string
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// WarehouseOr returns the item's warehouse, or def when none was recorded.
func (i Item) WarehouseOr(def string) string {
	if i.Warehouse == "" {
		return def
	}
	return i.Warehouse
}
