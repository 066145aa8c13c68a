package dto

import (
	"github.com/google/uuid"

	"github.com/lyb5737-lyb77/inventory-management/internal/ipam"
)

type CreateRangeRequest struct {
	Title       string `json:"title"        validate:"required,min=1,max=100"`
	Device      string `json:"device"       validate:"required,min=1,max=50"`
	StartIP     string `json:"start_ip"     validate:"required,ipv4"`
	EndIP       string `json:"end_ip"       validate:"required,ipv4"`
	Gateway     string `json:"gateway"      validate:"omitempty,ipv4"`
	SubnetMask  string `json:"subnet_mask"  validate:"omitempty,ipv4"`
	Description string `json:"description"`
}

type RangeResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Device      string    `json:"device"`
	StartIP     string    `json:"start_ip"`
	EndIP       string    `json:"end_ip"`
	Gateway     string    `json:"gateway"`
	SubnetMask  string    `json:"subnet_mask"`
	Description string    `json:"description"`
	Size        int       `json:"size"`
}

// DeviceRanges groups ranges under their device, in device order.
type DeviceRanges struct {
	Device string          `json:"device"`
	Ranges []RangeResponse `json:"ranges"`
}

// SaveDetailRequest stores the assignment of one address. Status is never
// accepted from the client; it is derived from the other fields.
type SaveDetailRequest struct {
	RangeID    string `json:"range_id"    validate:"required,uuid"`
	IPAddress  string `json:"ip_address"  validate:"required,ipv4"`
	Department string `json:"department"`
	User       string `json:"user"`
	Usage      string `json:"usage"`
}

type DetailResponse struct {
	ID         uuid.UUID `json:"id"`
	RangeID    uuid.UUID `json:"range_id"`
	IPAddress  string    `json:"ip_address"`
	Department string    `json:"department"`
	User       string    `json:"user"`
	Usage      string    `json:"usage"`
	Status     string    `json:"status"`
}

type RangeRowsResponse struct {
	Range RangeResponse `json:"range"`
	Rows  []ipam.Row    `json:"rows"`
}

type IPSearchResult struct {
	DetailResponse
	RangeName string `json:"range_name"`
}

type IPImportResponse struct {
	TotalRows int `json:"total_rows"`
	Updated   int `json:"updated"`
	Skipped   int `json:"skipped"`
}
