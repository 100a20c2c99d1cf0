package checkout

import (
	"fmt"

	"github.com/souqmarket/backend/internal/domain/shared"
)

// Checkout failure modes. Each aborts the whole checkout before any
// order is persisted.
var (
	ErrEmptyCart            = shared.NewDomainError("EMPTY_CART", "Cart is empty")
	ErrCartChanged          = shared.NewDomainError("CONCURRENCY_CONFLICT", "Cart changed while checkout was in progress")
	ErrInvalidPaymentMethod = shared.NewDomainError("INVALID_PAYMENT_METHOD", "Unrecognized payment method")
)

// NewProductUnavailableError names the product that blocked the checkout
func NewProductUnavailableError(productName string) *shared.DomainError {
	return shared.NewDomainError("PRODUCT_UNAVAILABLE",
		fmt.Sprintf("Product %q is no longer available", productName))
}
