package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Rental is a lease contract for one room (Ho) of the building.
type Rental struct {
	ID                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type              string    // 직원 | 일반인
	Ho                string    `gorm:"index"`
	Area              string
	TenantName        string
	Contact           string
	Email             string
	RentalType        string          // 월세 | 전세 | 반전세
	Deposit           decimal.Decimal `gorm:"type:decimal(14,0);not null;default:0"`
	MonthlyRent       decimal.Decimal `gorm:"type:decimal(14,0);not null;default:0"`
	MaintenanceFee    decimal.Decimal `gorm:"type:decimal(14,0);not null;default:0"`
	ParkingFee        decimal.Decimal `gorm:"type:decimal(14,0);not null;default:0"`
	PaymentDate       string
	ContractStartDate string
	ContractEndDate   string
	Remarks           string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
