package catalog

import (
	"strings"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// Market is a marketplace storefront. One market fulfills one order group.
type Market struct {
	shared.BaseEntity
	Name     string `gorm:"type:varchar(200);not null" json:"name"`
	City     string `gorm:"type:varchar(100)" json:"city"`
	IsActive bool   `gorm:"not null;default:true" json:"is_active"`
}

// TableName specifies the table name for GORM
func (Market) TableName() string {
	return "markets"
}

// NewMarket creates a new market
func NewMarket(name, city string) (*Market, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_MARKET", "market name cannot be empty")
	}
	return &Market{
		BaseEntity: shared.NewBaseEntity(),
		Name:       name,
		City:       city,
		IsActive:   true,
	}, nil
}
