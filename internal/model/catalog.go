package model

import (
	"time"

	"github.com/google/uuid"
)

type ProductGroup struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name        string    `gorm:"uniqueIndex;not null"`
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Warehouse carries the manager mailbox that receives outbound requests.
type Warehouse struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name      string    `gorm:"uniqueIndex;not null"`
	Location  string
	Manager   string
	Email     string
	Remarks   string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Customer is an outbound destination. DouzoneNumber is the ERP account code.
type Customer struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	DouzoneNumber string    `gorm:"index"`
	Name          string    `gorm:"index;not null"`
	Contact       string
	Email         string
	Address       string
	Remarks       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
