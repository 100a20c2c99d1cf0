package checkout

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	domaincheckout "github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/settings"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// PaymentProcessor settles the payments of a committed checkout batch.
type PaymentProcessor interface {
	ProcessBatch(ctx context.Context, orders []*order.Order, payments []*order.Payment, method domaincheckout.PaymentMethod, cust *customer.Customer) []paymentapp.OrderResult
}

// Service runs the checkout pipeline for one customer request: snapshot
// the cart, build one order per market, commit everything atomically,
// then drive the payment provider per order.
type Service struct {
	reader         *SnapshotReader
	customers      customer.Repository
	writer         order.CheckoutWriter
	payments       PaymentProcessor
	defaults       settings.Reader
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new checkout Service
func NewService(reader *SnapshotReader, customers customer.Repository, writer order.CheckoutWriter, payments PaymentProcessor, logger *zap.Logger) *Service {
	return &Service{
		reader:    reader,
		customers: customers,
		writer:    writer,
		payments:  payments,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for status fan-out
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// SetDefaultsReader sets the source of marketplace-wide defaults. When
// configured, requests that carry neither a delivery fee nor a tax rate
// get the stored defaults instead of zeros.
func (s *Service) SetDefaultsReader(reader settings.Reader) {
	s.defaults = reader
}

// Checkout converts the customer's cart into orders. Either the full
// order set is created and the cart cleared, or a single error comes
// back and nothing was persisted.
func (s *Service) Checkout(ctx context.Context, customerID uuid.UUID, input CheckoutInput) (*CheckoutResponse, error) {
	method, err := domaincheckout.ParsePaymentMethod(input.PaymentMethod)
	if err != nil {
		return nil, err
	}
	s.applyDefaults(ctx, &input)
	req, err := domaincheckout.NewRequest(method, input.ContactPhone,
		valueobject.NewMoneySAR(input.DeliveryFee), input.TaxRate, input.Notes)
	if err != nil {
		return nil, err
	}

	cust, err := s.customers.FindByID(ctx, customerID)
	if err != nil {
		return nil, err
	}

	snapshot, err := s.reader.Read(ctx, customerID)
	if err != nil {
		return nil, err
	}

	orders, payments, err := s.buildOrders(customerID, snapshot, req)
	if err != nil {
		return nil, err
	}

	// One transaction: N orders, N payments, cart clear, phone update.
	if err := s.writer.CreateCheckout(ctx, customerID, req.ContactPhone, orders, payments); err != nil {
		s.logger.Error("checkout transaction failed",
			zap.String("customer_id", customerID.String()), zap.Error(err))
		return nil, shared.ErrPersistence
	}

	for _, ord := range orders {
		s.publishEvents(ctx, ord)
	}

	results := s.payments.ProcessBatch(ctx, orders, payments, method, cust)

	return s.buildResponse(orders, results), nil
}

// applyDefaults fills the delivery fee and tax rate from marketplace
// settings when the request carries neither. A missing settings row is
// not an error; the request proceeds with zeros.
func (s *Service) applyDefaults(ctx context.Context, input *CheckoutInput) {
	if s.defaults == nil || !input.DeliveryFee.IsZero() || !input.TaxRate.IsZero() {
		return
	}
	st, err := s.defaults.Get(ctx)
	if err != nil {
		s.logger.Warn("failed to load marketplace defaults", zap.Error(err))
		return
	}
	input.DeliveryFee = st.DefaultDeliveryFee
	input.TaxRate = st.DefaultTaxRate
}

// buildOrders turns the grouped snapshot into one order and one pending
// payment per market.
func (s *Service) buildOrders(customerID uuid.UUID, snapshot domaincheckout.Snapshot, req domaincheckout.Request) ([]*order.Order, []*order.Payment, error) {
	groups := snapshot.GroupByMarket()
	orders := make([]*order.Order, 0, len(groups))
	payments := make([]*order.Payment, 0, len(groups))

	for _, group := range groups {
		ord, err := order.NewOrder(customerID, group.MarketID, req.Notes)
		if err != nil {
			return nil, nil, err
		}
		for _, line := range group.Lines {
			if _, err := ord.AddItem(line.ProductID, line.VendorID, line.ProductName, line.Quantity, line.UnitPrice); err != nil {
				return nil, nil, err
			}
		}
		if err := ord.ApplyCharges(req.DeliveryFee, req.TaxRate); err != nil {
			return nil, nil, err
		}

		pay, err := order.NewPayment(ord.ID, req.Method, ord.GetTotalMoney())
		if err != nil {
			return nil, nil, err
		}

		orders = append(orders, ord)
		payments = append(payments, pay)
	}

	return orders, payments, nil
}

func (s *Service) buildResponse(orders []*order.Order, results []paymentapp.OrderResult) *CheckoutResponse {
	byOrder := make(map[uuid.UUID]paymentapp.OrderResult, len(results))
	for _, r := range results {
		byOrder[r.OrderID] = r
	}

	resp := &CheckoutResponse{Orders: make([]CheckoutOrderResult, 0, len(orders))}
	for _, ord := range orders {
		r := byOrder[ord.ID]
		resp.Orders = append(resp.Orders, CheckoutOrderResult{
			Order: ToOrderResponse(ord),
			Payment: PaymentResultResponse{
				Status:        r.Status.String(),
				TransactionID: r.TransactionID,
				RedirectURL:   r.RedirectURL,
				FailureReason: r.FailureReason,
			},
		})
	}
	return resp
}

func (s *Service) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if s.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := s.eventPublisher.Publish(ctx, event); err != nil {
			s.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}
