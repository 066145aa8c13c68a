package dto

import "github.com/google/uuid"

type RecordTransactionRequest struct {
	ItemID    string `json:"item_id"   validate:"required,uuid"`
	Type      string `json:"type"      validate:"required,oneof=IN OUT"`
	Quantity  int    `json:"quantity"  validate:"required,gt=0"`
	Date      string `json:"date"      validate:"required,datetime=2006-01-02"`
	Warehouse string `json:"warehouse"`
	Target    string `json:"target"`
	Remarks   string `json:"remarks"`
}

type TransactionFilter struct {
	ItemID string `form:"item_id"`
	Type   string `form:"type"`
	Page   int    `form:"page"`
	Limit  int    `form:"limit"`
}

type TransactionResponse struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"item_id"`
	ItemName  string    `json:"item_name"`
	Type      string    `json:"type"`
	Warehouse string    `json:"warehouse"`
	Quantity  int       `json:"quantity"`
	Date      string    `json:"date"`
	Target    string    `json:"target,omitempty"`
	Remarks   string    `json:"remarks"`
}

type TransactionListResponse struct {
	Data  []TransactionResponse `json:"data"`
	Total int64                 `json:"total"`
	Page  int                   `json:"page"`
	Limit int                   `json:"limit"`
}

// DriftEntry reports an item whose stored quantity differs from its ledger.
type DriftEntry struct {
	ItemID     uuid.UUID `json:"item_id"`
	ItemName   string    `json:"item_name"`
	Stored     int       `json:"stored"`
	Recomputed int       `json:"recomputed"`
}

type ReconcileResponse struct {
	Checked int          `json:"checked"`
	Drift   []DriftEntry `json:"drift"`
}
