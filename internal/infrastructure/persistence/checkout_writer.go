package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// GormCheckoutWriter implements order.CheckoutWriter using a single
// GORM transaction. A failure at any step rolls back the whole
// checkout: no partial order sets, no half-cleared carts.
type GormCheckoutWriter struct {
	db *gorm.DB
}

// NewGormCheckoutWriter creates a new GormCheckoutWriter
func NewGormCheckoutWriter(db *gorm.DB) *GormCheckoutWriter {
	return &GormCheckoutWriter{db: db}
}

// CreateCheckout persists all orders with their items, all pending
// payments, the customer's new contact phone, and clears the
// customer's entire cart, atomically. The cart clear doubles as the
// concurrency guard: the snapshot was read before the transaction, so
// the delete must remove exactly the lines the snapshot saw. Of two
// checkouts racing over the same cart, the second finds the lines
// gone and rolls back.
func (w *GormCheckoutWriter) CreateCheckout(ctx context.Context, customerID uuid.UUID, contactPhone string, orders []*order.Order, payments []*order.Payment) error {
	// One order item per snapshotted cart line.
	var lineCount int64
	for _, o := range orders {
		lineCount += int64(len(o.Items))
	}

	return w.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, o := range orders {
			if err := tx.Create(o).Error; err != nil {
				return err
			}
		}

		for _, p := range payments {
			if err := tx.Create(p).Error; err != nil {
				return err
			}
		}

		result := tx.Model(&customer.Customer{}).
			Where("id = ?", customerID).
			Update("phone", contactPhone)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}

		cleared := tx.Where("customer_id = ?", customerID).
			Delete(&cart.CartLine{})
		if cleared.Error != nil {
			return cleared.Error
		}
		if cleared.RowsAffected == 0 {
			return checkout.ErrEmptyCart
		}
		if cleared.RowsAffected != lineCount {
			return checkout.ErrCartChanged
		}

		return nil
	})
}

var _ order.CheckoutWriter = (*GormCheckoutWriter)(nil)
