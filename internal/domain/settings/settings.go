package settings

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// Settings holds marketplace-wide defaults. The checkout request may
// override them; the pipeline does not enforce the global values.
type Settings struct {
	shared.BaseEntity
	DefaultDeliveryFee decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"default_delivery_fee"`
	DefaultTaxRate     decimal.Decimal `gorm:"type:decimal(10,6);not null" json:"default_tax_rate"`
}

// TableName specifies the table name for GORM
func (Settings) TableName() string {
	return "settings"
}

// GetDefaultDeliveryFeeMoney returns the default delivery fee as Money
func (s *Settings) GetDefaultDeliveryFeeMoney() valueobject.Money {
	return valueobject.NewMoneySAR(s.DefaultDeliveryFee)
}

// Reader provides read-only access to marketplace defaults.
type Reader interface {
	Get(ctx context.Context) (*Settings, error)
}
