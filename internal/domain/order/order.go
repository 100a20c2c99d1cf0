package order

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// OrderItem is a line of an order. UnitPrice is the price snapshot taken
// at checkout; it does not follow later catalog price changes. LineTotal
// is always recomputed server-side from quantity and unit price.
type OrderItem struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	OrderID     uuid.UUID       `gorm:"type:uuid;not null;index" json:"order_id"`
	ProductID   uuid.UUID       `gorm:"type:uuid;not null" json:"product_id"`
	ProductName string          `gorm:"type:varchar(200);not null" json:"product_name"`
	VendorID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"vendor_id"`
	Quantity    int             `gorm:"not null" json:"quantity"`
	UnitPrice   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"unit_price"`
	LineTotal   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"line_total"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (OrderItem) TableName() string {
	return "order_items"
}

// NewOrderItem creates a new order item with a recomputed line total
func NewOrderItem(orderID, productID, vendorID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product ID cannot be empty")
	}
	if vendorID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ITEM", "Vendor ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_ITEM", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_ITEM", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_ITEM", "Unit price cannot be negative")
	}

	now := time.Now()
	return &OrderItem{
		ID:          uuid.New(),
		OrderID:     orderID,
		ProductID:   productID,
		ProductName: productName,
		VendorID:    vendorID,
		Quantity:    quantity,
		UnitPrice:   unitPrice.Amount(),
		LineTotal:   unitPrice.Amount().Mul(decimal.NewFromInt(int64(quantity))),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// GetUnitPriceMoney returns the unit price as Money value object
func (i *OrderItem) GetUnitPriceMoney() valueobject.Money {
	return valueobject.NewMoneySAR(i.UnitPrice)
}

// GetLineTotalMoney returns the line total as Money value object
func (i *OrderItem) GetLineTotalMoney() valueobject.Money {
	return valueobject.NewMoneySAR(i.LineTotal)
}

// Order is the aggregate root for one market's share of a checkout.
// Orders are append-only: they are never hard-deleted, cancellation is a
// status transition.
type Order struct {
	shared.BaseAggregateRoot
	OrderNumber string          `gorm:"type:varchar(50);not null;index" json:"order_number"`
	CustomerID  uuid.UUID       `gorm:"type:uuid;not null;index" json:"customer_id"`
	MarketID    uuid.UUID       `gorm:"type:uuid;not null;index" json:"market_id"`
	Subtotal    decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"subtotal"`
	DeliveryFee decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"delivery_fee"`
	TaxAmount   decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"tax_amount"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(20,4);not null" json:"total_amount"`
	Status      Status          `gorm:"type:varchar(30);not null" json:"status"`
	Notes       string          `gorm:"type:text" json:"notes"`
	Items       []OrderItem     `gorm:"foreignKey:OrderID" json:"items"`
	CancelledAt *time.Time      `json:"cancelled_at,omitempty"`
}

// TableName specifies the table name for GORM
func (Order) TableName() string {
	return "orders"
}

// NewOrder creates a new order in status NEW with a generated order number
func NewOrder(customerID, marketID uuid.UUID, notes string) (*Order, error) {
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Customer ID cannot be empty")
	}
	if marketID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_ORDER", "Market ID cannot be empty")
	}

	order := &Order{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		OrderNumber:       GenerateOrderNumber(time.Now()),
		CustomerID:        customerID,
		MarketID:          marketID,
		Subtotal:          decimal.Zero,
		DeliveryFee:       decimal.Zero,
		TaxAmount:         decimal.Zero,
		TotalAmount:       decimal.Zero,
		Status:            StatusNew,
		Notes:             notes,
		Items:             make([]OrderItem, 0),
	}

	order.AddDomainEvent(NewOrderCreatedEvent(order))

	return order, nil
}

// AddItem appends a line to the order and recalculates totals.
// Only allowed while the order is still NEW.
func (o *Order) AddItem(productID, vendorID uuid.UUID, productName string, quantity int, unitPrice valueobject.Money) (*OrderItem, error) {
	if o.Status != StatusNew {
		return nil, shared.NewDomainError("INVALID_STATE", "Cannot add items to an order past creation")
	}

	item, err := NewOrderItem(o.ID, productID, vendorID, productName, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	o.Items = append(o.Items, *item)
	o.recalculateSubtotal()
	o.UpdatedAt = time.Now()

	return item, nil
}

// ApplyCharges sets the delivery fee and computes the tax amount and the
// grand total: total = subtotal + deliveryFee + subtotal * taxRate.
func (o *Order) ApplyCharges(deliveryFee valueobject.Money, taxRate decimal.Decimal) error {
	if deliveryFee.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER", "Delivery fee cannot be negative")
	}
	if taxRate.IsNegative() {
		return shared.NewDomainError("INVALID_ORDER", "Tax rate cannot be negative")
	}

	o.DeliveryFee = deliveryFee.Amount()
	o.TaxAmount = o.Subtotal.Mul(taxRate)
	o.TotalAmount = o.Subtotal.Add(o.DeliveryFee).Add(o.TaxAmount)
	o.UpdatedAt = time.Now()

	return nil
}

func (o *Order) recalculateSubtotal() {
	subtotal := decimal.Zero
	for _, item := range o.Items {
		subtotal = subtotal.Add(item.LineTotal)
	}
	o.Subtotal = subtotal
}

// TransitionTo moves the order to the target status after validating the
// state machine. Re-asserting the current status is rejected.
func (o *Order) TransitionTo(target Status) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_TRANSITION", "Unknown order status: "+target.String())
	}
	if !o.Status.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_TRANSITION",
			"Cannot transition order from "+o.Status.String()+" to "+target.String())
	}

	from := o.Status
	o.Status = target
	now := time.Now()
	o.UpdatedAt = now
	if target == StatusCancelled {
		o.CancelledAt = &now
	}

	o.AddDomainEvent(NewOrderStatusChangedEvent(o, from, target))

	return nil
}

// ContainsVendor reports whether at least one item belongs to the vendor
func (o *Order) ContainsVendor(vendorID uuid.UUID) bool {
	for _, item := range o.Items {
		if item.VendorID == vendorID {
			return true
		}
	}
	return false
}

// GetTotalMoney returns the grand total as Money value object
func (o *Order) GetTotalMoney() valueobject.Money {
	return valueobject.NewMoneySAR(o.TotalAmount)
}

// GetSubtotalMoney returns the subtotal as Money value object
func (o *Order) GetSubtotalMoney() valueobject.Money {
	return valueobject.NewMoneySAR(o.Subtotal)
}
