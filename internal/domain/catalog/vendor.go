package catalog

import (
	"strings"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// Vendor sells products inside a market.
type Vendor struct {
	shared.BaseEntity
	Name     string    `gorm:"type:varchar(200);not null" json:"name"`
	MarketID uuid.UUID `gorm:"type:uuid;not null;index" json:"market_id"`
	IsActive bool      `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for GORM
func (Vendor) TableName() string {
	return "vendors"
}

// NewVendor creates a new vendor
func NewVendor(name string, marketID uuid.UUID) (*Vendor, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_VENDOR", "vendor name cannot be empty")
	}
	if marketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_VENDOR", "vendor requires a market")
	}
	return &Vendor{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		MarketID:   marketID,
		IsActive:   true,
	}, nil
}
