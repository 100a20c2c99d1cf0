package order

import (
	"context"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// Repository provides order persistence. Orders are never deleted.
type Repository interface {
	FindByID(ctx context.Context, id uuid.UUID) (*Order, error)
	FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*Order], error)
	Save(ctx context.Context, order *Order) error
}

// PaymentRepository provides payment persistence. Every payment belongs
// to exactly one order.
type PaymentRepository interface {
	FindByOrderID(ctx context.Context, orderID uuid.UUID) (*Payment, error)
	Save(ctx context.Context, payment *Payment) error
}

// CheckoutWriter commits the whole result of one checkout atomically:
// all orders with their items, all pending payments, the customer's new
// contact phone, and the full cart clear. Either everything is visible
// or nothing is.
type CheckoutWriter interface {
	CreateCheckout(ctx context.Context, customerID uuid.UUID, contactPhone string, orders []*Order, payments []*Payment) error
}
