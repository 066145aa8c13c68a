package dto

import "github.com/google/uuid"

type OutboundLine struct {
	ItemID   string `json:"item_id"  validate:"required,uuid"`
	Quantity int    `json:"quantity" validate:"required,gt=0"`
}

// OutboundRequest asks a warehouse manager to ship items to a customer.
// RequestKey, when set, makes a resubmission of the same form a no-op.
type OutboundRequest struct {
	Warehouse  string         `json:"warehouse"   validate:"required"`
	Items      []OutboundLine `json:"items"       validate:"required,min=1,dive"`
	CustomerID string         `json:"customer_id" validate:"required,uuid"`
	Remarks    string         `json:"remarks"`
	RequestKey string         `json:"request_key" validate:"omitempty,max=128"`
}

type OutboundResponse struct {
	Warehouse    string                `json:"warehouse"`
	Customer     string                `json:"customer"`
	NotifiedTo   string                `json:"notified_to"`
	Transactions []TransactionResponse `json:"transactions"`
}

// OutboundNoticeLine is one "name xN" entry of the notification.
type OutboundNoticeLine struct {
	ItemID   uuid.UUID
	Name     string
	Quantity int
}

// OutboundNotice is everything the mailer needs to notify a warehouse manager.
type OutboundNotice struct {
	WarehouseName   string
	ManagerEmail    string
	Items           []OutboundNoticeLine
	CustomerName    string
	CustomerAddress string
	CustomerContact string
	RequesterName   string
	Remarks         string
	RequestedOn     string
}
