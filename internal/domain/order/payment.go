package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// PaymentStatus represents the settlement state of a payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusSucceeded PaymentStatus = "SUCCEEDED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
)

// IsValid checks if the status is a valid PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusSucceeded, PaymentStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// IsTerminal reports whether the payment can no longer change. A failed
// payment is not retried in place; a fresh checkout is required.
func (s PaymentStatus) IsTerminal() bool {
	return s == PaymentStatusSucceeded || s == PaymentStatusFailed
}

// Payment records the settlement of exactly one order. It is created
// inside the checkout transaction together with its order, with status
// PENDING and an amount equal to the order total.
type Payment struct {
	shared.BaseAggregateRoot
	OrderID         uuid.UUID              `gorm:"type:uuid;not null;uniqueIndex" json:"order_id"`
	Method          checkout.PaymentMethod `gorm:"type:varchar(30);not null" json:"method"`
	Status          PaymentStatus          `gorm:"type:varchar(20);not null" json:"status"`
	Amount          decimal.Decimal        `gorm:"type:decimal(20,4);not null" json:"amount"`
	TransactionID   string                 `gorm:"type:varchar(100)" json:"transaction_id,omitempty"`
	FailureReason   string                 `gorm:"type:text" json:"failure_reason,omitempty"`
	ProviderPayload []byte                 `gorm:"type:jsonb" json:"-"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// NewPayment creates a pending payment for an order
func NewPayment(orderID uuid.UUID, method checkout.PaymentMethod, amount valueobject.Money) (*Payment, error) {
	if orderID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Order ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, checkout.ErrInvalidPaymentMethod
	}
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PAYMENT", "Amount cannot be negative")
	}

	return &Payment{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderID:           orderID,
		Method:            method,
		Status:            PaymentStatusPending,
		Amount:            amount.Amount(),
	}, nil
}

// MarkSucceeded settles the payment with the provider's transaction id
func (p *Payment) MarkSucceeded(transactionID string, providerPayload []byte) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Payment is already settled")
	}

	p.Status = PaymentStatusSucceeded
	p.TransactionID = transactionID
	p.FailureReason = ""
	p.ProviderPayload = providerPayload
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPaymentStatusChangedEvent(p))

	return nil
}

// MarkFailed records a terminal payment failure with a reason
func (p *Payment) MarkFailed(reason string, providerPayload []byte) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Payment is already settled")
	}
	if reason == "" {
		reason = "payment failed"
	}

	p.Status = PaymentStatusFailed
	p.FailureReason = reason
	p.ProviderPayload = providerPayload
	p.UpdatedAt = time.Now()

	p.AddDomainEvent(NewPaymentStatusChangedEvent(p))

	return nil
}

// RecordProviderReference stores the provider's reference on a payment
// that is still pending, without settling it.
func (p *Payment) RecordProviderReference(transactionID string, providerPayload []byte) error {
	if p.Status.IsTerminal() {
		return shared.NewDomainError("INVALID_TRANSITION", "Payment is already settled")
	}
	p.TransactionID = transactionID
	p.ProviderPayload = providerPayload
	p.UpdatedAt = time.Now()
	return nil
}

// GetAmountMoney returns the payment amount as Money value object
func (p *Payment) GetAmountMoney() valueobject.Money {
	return valueobject.NewMoneySAR(p.Amount)
}
