package payment

import (
	"context"

	"github.com/google/uuid"

	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// InitiateRequest carries everything the external payment network needs
// to authorize a charge for one order. Idempotency on the provider side
// is keyed by order id.
type InitiateRequest struct {
	OrderID       uuid.UUID
	OrderNumber   string
	Amount        valueobject.Money
	Method        checkout.PaymentMethod
	CustomerID    uuid.UUID
	CustomerEmail string
	CustomerPhone string
}

// InitiateResult is the provider's raw answer. Status carries whatever
// string the provider returned; normalization happens in the caller.
type InitiateResult struct {
	Status        string
	TransactionID string
	RedirectURL   string
	FailureReason string
	RawPayload    []byte
}

// Provider is the abstract payment network invoked once per order.
// Implementations must honor the context deadline; a call that cannot
// finish in time returns an error rather than blocking.
type Provider interface {
	Name() string
	Initiate(ctx context.Context, req InitiateRequest) (InitiateResult, error)
}
