package payment

import (
	"strings"

	"github.com/souqmarket/backend/internal/domain/order"
)

// NormalizeStatus maps a provider status string, in any casing or
// spelling the provider happens to use, onto the payment state machine.
// Unrecognized values normalize to PENDING and are never treated as
// success.
func NormalizeStatus(raw string) order.PaymentStatus {
	switch strings.ToUpper(strings.TrimSpace(raw)) {
	case "SUCCEEDED", "SUCCESS", "SUCCESSFUL", "PAID", "CAPTURED", "COMPLETED", "APPROVED":
		return order.PaymentStatusSucceeded
	case "FAILED", "FAILURE", "DECLINED", "REJECTED", "ERROR", "CANCELLED", "CANCELED", "EXPIRED":
		return order.PaymentStatusFailed
	default:
		return order.PaymentStatusPending
	}
}
