package catalog

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// Product is a catalog read model. The checkout pipeline only consumes
// products; catalog management lives outside this service.
type Product struct {
	shared.BaseEntity
	Name        string            `gorm:"type:varchar(200);not null" json:"name"`
	Description string            `gorm:"type:text" json:"description"`
	Price       valueobject.Money `gorm:"type:decimal(20,4);not null" json:"price"`
	IsAvailable bool              `gorm:"not null;default:true" json:"is_available"`
	VendorID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"vendor_id"`
	MarketID    uuid.UUID         `gorm:"type:uuid;not null;index" json:"market_id"`
}

// TableName specifies the table name for GORM
func (Product) TableName() string {
	return "products"
}

// NewProduct creates a new product
func NewProduct(name string, price valueobject.Money, vendorID, marketID uuid.UUID) (*Product, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "product name cannot be empty")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "product price cannot be negative")
	}
	if vendorID == uuid.Nil || marketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "product requires a vendor and a market")
	}
	return &Product{
		BaseEntity:  shared.NewBaseEntity(),
		Name:        name,
		Price:       price,
		IsAvailable: true,
		VendorID:    vendorID,
		MarketID:    marketID,
	}, nil
}

// ProductReader is the read-only catalog contract consumed by checkout.
type ProductReader interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*Product, error)
	FindByMarket(ctx context.Context, marketID uuid.UUID, filter shared.Filter) (shared.Paginated[*Product], error)
}
