package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type CreateRentalRequest struct {
	Type              string          `json:"type"`
	Ho                string          `json:"ho"                  validate:"required"`
	Area              string          `json:"area"`
	TenantName        string          `json:"tenant_name"`
	Contact           string          `json:"contact"`
	Email             string          `json:"email"               validate:"omitempty,email"`
	RentalType        string          `json:"rental_type"`
	Deposit           decimal.Decimal `json:"deposit"             validate:"min=0"`
	MonthlyRent       decimal.Decimal `json:"monthly_rent"        validate:"min=0"`
	MaintenanceFee    decimal.Decimal `json:"maintenance_fee"     validate:"min=0"`
	ParkingFee        decimal.Decimal `json:"parking_fee"         validate:"min=0"`
	PaymentDate       string          `json:"payment_date"`
	ContractStartDate string          `json:"contract_start_date"`
	ContractEndDate   string          `json:"contract_end_date"`
	Remarks           string          `json:"remarks"`
}

type UpdateRentalRequest struct {
	Type              *string          `json:"type"`
	Ho                *string          `json:"ho"                  validate:"omitempty,min=1"`
	Area              *string          `json:"area"`
	TenantName        *string          `json:"tenant_name"`
	Contact           *string          `json:"contact"`
	Email             *string          `json:"email"               validate:"omitempty,email"`
	RentalType        *string          `json:"rental_type"`
	Deposit           *decimal.Decimal `json:"deposit"`
	MonthlyRent       *decimal.Decimal `json:"monthly_rent"`
	MaintenanceFee    *decimal.Decimal `json:"maintenance_fee"`
	ParkingFee        *decimal.Decimal `json:"parking_fee"`
	PaymentDate       *string          `json:"payment_date"`
	ContractStartDate *string          `json:"contract_start_date"`
	ContractEndDate   *string          `json:"contract_end_date"`
	Remarks           *string          `json:"remarks"`
}

type RentalResponse struct {
	ID                uuid.UUID       `json:"id"`
	Type              string          `json:"type"`
	Ho                string          `json:"ho"`
	Area              string          `json:"area"`
	TenantName        string          `json:"tenant_name"`
	Contact           string          `json:"contact"`
	Email             string          `json:"email"`
	RentalType        string          `json:"rental_type"`
	Deposit           decimal.Decimal `json:"deposit"`
	MonthlyRent       decimal.Decimal `json:"monthly_rent"`
	MaintenanceFee    decimal.Decimal `json:"maintenance_fee"`
	ParkingFee        decimal.Decimal `json:"parking_fee"`
	PaymentDate       string          `json:"payment_date"`
	ContractStartDate string          `json:"contract_start_date"`
	ContractEndDate   string          `json:"contract_end_date"`
	Remarks           string          `json:"remarks"`
}

type RentalImportResponse struct {
	Imported int      `json:"imported"`
	Warnings []string `json:"warnings,omitempty"`
}
