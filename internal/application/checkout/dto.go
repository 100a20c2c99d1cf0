package checkout

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/order"
)

// CheckoutInput represents a checkout request body
type CheckoutInput struct {
	PaymentMethod string          `json:"payment_method" binding:"required"`
	ContactPhone  string          `json:"contact_phone" binding:"required,saphone"`
	DeliveryFee   decimal.Decimal `json:"delivery_fee"`
	TaxRate       decimal.Decimal `json:"tax_rate"`
	Notes         string          `json:"notes"`
}

// OrderItemResponse represents one order line in API responses
type OrderItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	VendorID    uuid.UUID       `json:"vendor_id"`
	Quantity    int             `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

// OrderResponse represents an order in API responses
type OrderResponse struct {
	ID          uuid.UUID           `json:"id"`
	OrderNumber string              `json:"order_number"`
	CustomerID  uuid.UUID           `json:"customer_id"`
	MarketID    uuid.UUID           `json:"market_id"`
	Subtotal    decimal.Decimal     `json:"subtotal"`
	DeliveryFee decimal.Decimal     `json:"delivery_fee"`
	TaxAmount   decimal.Decimal     `json:"tax_amount"`
	TotalAmount decimal.Decimal     `json:"total_amount"`
	Status      string              `json:"status"`
	Notes       string              `json:"notes,omitempty"`
	Items       []OrderItemResponse `json:"items"`
	CreatedAt   time.Time           `json:"created_at"`
}

// PaymentResultResponse represents one order's payment outcome
type PaymentResultResponse struct {
	Status        string `json:"status"`
	TransactionID string `json:"transaction_id,omitempty"`
	RedirectURL   string `json:"redirect_url,omitempty"`
	FailureReason string `json:"failure_reason,omitempty"`
}

// CheckoutOrderResult pairs a created order with its payment outcome
type CheckoutOrderResult struct {
	Order   OrderResponse         `json:"order"`
	Payment PaymentResultResponse `json:"payment"`
}

// CheckoutResponse is the full result of a checkout
type CheckoutResponse struct {
	Orders []CheckoutOrderResult `json:"orders"`
}

// ToOrderResponse converts an order aggregate to its API representation
func ToOrderResponse(o *order.Order) OrderResponse {
	items := make([]OrderItemResponse, len(o.Items))
	for i, item := range o.Items {
		items[i] = OrderItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			VendorID:    item.VendorID,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			LineTotal:   item.LineTotal,
		}
	}
	return OrderResponse{
		ID:          o.ID,
		OrderNumber: o.OrderNumber,
		CustomerID:  o.CustomerID,
		MarketID:    o.MarketID,
		Subtotal:    o.Subtotal,
		DeliveryFee: o.DeliveryFee,
		TaxAmount:   o.TaxAmount,
		TotalAmount: o.TotalAmount,
		Status:      o.Status.String(),
		Notes:       o.Notes,
		Items:       items,
		CreatedAt:   o.CreatedAt,
	}
}
