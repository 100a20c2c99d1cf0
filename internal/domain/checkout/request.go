package checkout

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// Request is the immutable input for one checkout attempt.
type Request struct {
	Method       PaymentMethod
	ContactPhone string
	DeliveryFee  valueobject.Money
	TaxRate      decimal.Decimal
	Notes        string
}

// NewRequest validates and builds a checkout request
func NewRequest(method PaymentMethod, contactPhone string, deliveryFee valueobject.Money, taxRate decimal.Decimal, notes string) (Request, error) {
	if !method.IsValid() {
		return Request{}, ErrInvalidPaymentMethod
	}
	contactPhone = strings.TrimSpace(contactPhone)
	if !customer.ValidPhone(contactPhone) {
		return Request{}, shared.NewDomainError("INVALID_PHONE", "contact phone must match 05 followed by 8 digits")
	}
	if deliveryFee.IsNegative() {
		return Request{}, shared.NewDomainError("INVALID_CHECKOUT", "delivery fee cannot be negative")
	}
	if taxRate.IsNegative() {
		return Request{}, shared.NewDomainError("INVALID_CHECKOUT", "tax rate cannot be negative")
	}
	return Request{
		Method:       method,
		ContactPhone: contactPhone,
		DeliveryFee:  deliveryFee,
		TaxRate:      taxRate,
		Notes:        strings.TrimSpace(notes),
	}, nil
}
