package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ── Request DTOs ──────────────────────────────────────────────────────────────

type CreateItemRequest struct {
	Name       string          `json:"name"        validate:"required,min=1,max=200"`
	Group      string          `json:"group"`
	Warehouse  string          `json:"warehouse"`
	PartNumber string          `json:"part_number"`
	Quantity   int             `json:"quantity"    validate:"min=0"`
	Price      decimal.Decimal `json:"price"       validate:"min=0"`
	Remarks    string          `json:"remarks"`
}

// UpdateItemRequest is a partial update; nil fields are left untouched.
// Setting Quantity is an admin correction and bypasses the ledger.
type UpdateItemRequest struct {
	Name       *string          `json:"name"        validate:"omitempty,min=1,max=200"`
	Group      *string          `json:"group"`
	Warehouse  *string          `json:"warehouse"`
	PartNumber *string          `json:"part_number"`
	Quantity   *int             `json:"quantity"    validate:"omitempty,min=0"`
	Price      *decimal.Decimal `json:"price"`
	Remarks    *string          `json:"remarks"`
}

type ItemFilter struct {
	Warehouse string `form:"warehouse"`
	Group     string `form:"group"`
	Name      string `form:"name"`
}

// ── Response DTOs ─────────────────────────────────────────────────────────────

type ItemResponse struct {
	ID         uuid.UUID       `json:"id"`
	Name       string          `json:"name"`
	Group      string          `json:"group"`
	Warehouse  string          `json:"warehouse"`
	PartNumber string          `json:"part_number"`
	Quantity   int             `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Remarks    string          `json:"remarks"`
}

type StockRecomputeResponse struct {
	ItemID     uuid.UUID `json:"item_id"`
	Stored     int       `json:"stored"`
	Recomputed int       `json:"recomputed"`
	Drift      int       `json:"drift"`
}
