package cart

import (
	"context"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// CartLine is one product held in a customer's cart. Lines are ephemeral:
// checkout consumes them into orders and clears the cart atomically.
// At most one line exists per (customer, product).
type CartLine struct {
	shared.BaseEntity
	CustomerID uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_product" json:"customer_id"`
	ProductID  uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_cart_customer_product" json:"product_id"`
	Quantity   int       `gorm:"not null" json:"quantity"`
}

// TableName specifies the table name for GORM
func (CartLine) TableName() string {
	return "cart_lines"
}

// NewCartLine creates a new cart line
func NewCartLine(customerID, productID uuid.UUID, quantity int) (*CartLine, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CART_LINE", "cart line requires a customer")
	}
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CART_LINE", "cart line requires a product")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_CART_LINE", "quantity must be positive")
	}
	return &CartLine{
		BaseEntity: shared.NewBaseEntity(),
		CustomerID: customerID,
		ProductID:  productID,
		Quantity:   quantity,
	}, nil
}

// ChangeQuantity sets a new quantity on the line
func (l *CartLine) ChangeQuantity(quantity int) error {
	if quantity <= 0 {
		return shared.NewDomainError("INVALID_CART_LINE", "quantity must be positive")
	}
	l.Quantity = quantity
	return nil
}

// Repository provides cart line persistence. Clearing the cart during
// checkout happens inside the checkout transaction, not through this
// interface.
type Repository interface {
	FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*CartLine, error)
	FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*CartLine, error)
	Save(ctx context.Context, line *CartLine) error
	Delete(ctx context.Context, customerID, productID uuid.UUID) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}
