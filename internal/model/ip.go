package model

import (
	"time"

	"github.com/google/uuid"
)

// IPRange is a contiguous IPv4 block declared under one network device.
// Ranges may overlap; nothing enforces disjointness.
type IPRange struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Device      string    `gorm:"index;not null"`
	StartIP     string    `gorm:"column:start_ip;size:15;not null"`
	EndIP       string    `gorm:"column:end_ip;size:15;not null"`
	Gateway     string
	SubnetMask  string
	Description string
	CreatedAt   time.Time
}

func (IPRange) TableName() string { return "ip_ranges" }

// IPDetail is the assignment record of one address inside a range. Addresses
// without a row are implicitly available. Deleting a range leaves its details.
type IPDetail struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	IPAddress  string    `gorm:"column:ip_address;size:15;not null;uniqueIndex:idx_ip_detail_range_addr"`
	RangeID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_ip_detail_range_addr"`
	Department string
	User       string `gorm:"column:user_name"`
	Usage      string
	Status     string `gorm:"not null"`
	UpdatedAt  time.Time
}

func (IPDetail) TableName() string { return "ip_details" }
