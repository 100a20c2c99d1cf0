package checkout

import "strings"

// PaymentMethod identifies how a checkout is paid
type PaymentMethod string

const (
	PaymentMethodMada           PaymentMethod = "MADA"
	PaymentMethodApplePay       PaymentMethod = "APPLE_PAY"
	PaymentMethodSTCPay         PaymentMethod = "STC_PAY"
	PaymentMethodCashOnDelivery PaymentMethod = "CASH_ON_DELIVERY"
)

// ParsePaymentMethod parses a payment method string, case-insensitively
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	m := PaymentMethod(strings.ToUpper(strings.TrimSpace(s)))
	if !m.IsValid() {
		return "", ErrInvalidPaymentMethod
	}
	return m, nil
}

// IsValid checks if the payment method is valid
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodMada, PaymentMethodApplePay, PaymentMethodSTCPay, PaymentMethodCashOnDelivery:
		return true
	}
	return false
}

// RequiresProvider reports whether the method needs a payment provider
// call. Cash on delivery settles offline and stays pending.
func (m PaymentMethod) RequiresProvider() bool {
	return m != PaymentMethodCashOnDelivery
}

// String returns the string representation
func (m PaymentMethod) String() string {
	return string(m)
}
