package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/payment"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// OrderResult is one order's payment outcome inside a checkout batch.
// Outcomes are independent: one order failing never aborts its siblings.
type OrderResult struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderNumber   string              `json:"order_number"`
	Status        order.PaymentStatus `json:"status"`
	TransactionID string              `json:"transaction_id,omitempty"`
	RedirectURL   string              `json:"redirect_url,omitempty"`
	FailureReason string              `json:"failure_reason,omitempty"`
	// NeedsReview is set when the payment settled but the order row
	// could not be advanced to match, so the two disagree until an
	// operator reconciles them.
	NeedsReview bool `json:"needs_review,omitempty"`
}

// Orchestrator drives the external payment provider for the orders a
// checkout created. Orders are processed sequentially to keep
// provider-side idempotency simple and avoid rate-limit bursts. The
// checkout transaction is already committed before any provider call.
type Orchestrator struct {
	provider       payment.Provider
	orderRepo      order.Repository
	paymentRepo    order.PaymentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
	timeout        time.Duration
}

// NewOrchestrator creates a new payment Orchestrator
func NewOrchestrator(provider payment.Provider, orderRepo order.Repository, paymentRepo order.PaymentRepository, logger *zap.Logger, timeout time.Duration) *Orchestrator {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Orchestrator{
		provider:    provider,
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
		timeout:     timeout,
	}
}

// SetEventPublisher sets the event publisher for status fan-out
func (o *Orchestrator) SetEventPublisher(publisher shared.EventPublisher) {
	o.eventPublisher = publisher
}

// ProcessBatch settles the payments of one checkout. Cash on delivery
// skips the provider entirely: payments stay PENDING, orders stay NEW.
func (o *Orchestrator) ProcessBatch(ctx context.Context, orders []*order.Order, payments []*order.Payment, method checkout.PaymentMethod, cust *customer.Customer) []OrderResult {
	byOrder := make(map[uuid.UUID]*order.Payment, len(payments))
	for _, p := range payments {
		byOrder[p.OrderID] = p
	}

	results := make([]OrderResult, 0, len(orders))
	for _, ord := range orders {
		pay := byOrder[ord.ID]
		if pay == nil {
			o.logger.Error("no payment record for order",
				zap.String("order_id", ord.ID.String()))
			results = append(results, OrderResult{
				OrderID:       ord.ID,
				OrderNumber:   ord.OrderNumber,
				Status:        order.PaymentStatusFailed,
				FailureReason: "payment record missing",
			})
			continue
		}
		if !method.RequiresProvider() {
			results = append(results, OrderResult{
				OrderID:     ord.ID,
				OrderNumber: ord.OrderNumber,
				Status:      pay.Status,
			})
			continue
		}
		results = append(results, o.processOne(ctx, ord, pay, method, cust))
	}
	return results
}

func (o *Orchestrator) processOne(ctx context.Context, ord *order.Order, pay *order.Payment, method checkout.PaymentMethod, cust *customer.Customer) OrderResult {
	req := payment.InitiateRequest{
		OrderID:     ord.ID,
		OrderNumber: ord.OrderNumber,
		Amount:      ord.GetTotalMoney(),
		Method:      method,
	}
	if cust != nil {
		req.CustomerID = cust.ID
		req.CustomerEmail = cust.Email
		req.CustomerPhone = cust.Phone
	}

	callCtx, cancel := context.WithTimeout(ctx, o.timeout)
	res, err := o.provider.Initiate(callCtx, req)
	cancel()

	result := OrderResult{
		OrderID:     ord.ID,
		OrderNumber: ord.OrderNumber,
	}

	if err != nil {
		// Timeout or transport failure is never left ambiguous.
		reason := "payment provider unreachable: " + err.Error()
		o.logger.Warn("payment provider call failed",
			zap.String("order_id", ord.ID.String()),
			zap.String("provider", o.provider.Name()),
			zap.Error(err))
		if markErr := pay.MarkFailed(reason, nil); markErr != nil {
			o.logger.Error("failed to mark payment failed", zap.Error(markErr))
		}
		o.savePayment(ctx, pay)
		result.Status = order.PaymentStatusFailed
		result.FailureReason = reason
		return result
	}

	status := payment.NormalizeStatus(res.Status)
	result.TransactionID = res.TransactionID
	result.RedirectURL = res.RedirectURL

	switch status {
	case order.PaymentStatusSucceeded:
		if err := pay.MarkSucceeded(res.TransactionID, res.RawPayload); err != nil {
			o.logger.Error("failed to mark payment succeeded", zap.Error(err))
		}
		o.savePayment(ctx, pay)
		if err := o.advancePaidOrder(ctx, ord); err != nil {
			o.logger.Error("paid order left behind its payment",
				zap.String("order_id", ord.ID.String()), zap.Error(err))
			result.NeedsReview = true
		}
		o.publishEvents(ctx, ord)
		result.Status = order.PaymentStatusSucceeded
	case order.PaymentStatusFailed:
		reason := res.FailureReason
		if reason == "" {
			reason = "payment declined by provider"
		}
		if err := pay.MarkFailed(reason, res.RawPayload); err != nil {
			o.logger.Error("failed to mark payment failed", zap.Error(err))
		}
		o.savePayment(ctx, pay)
		result.Status = order.PaymentStatusFailed
		result.FailureReason = reason
	default:
		if err := pay.RecordProviderReference(res.TransactionID, res.RawPayload); err != nil {
			o.logger.Error("failed to record provider reference", zap.Error(err))
		}
		o.savePayment(ctx, pay)
		result.Status = order.PaymentStatusPending
	}

	return result
}

// advancePaidOrder moves a settled order to PROCESSING. The save gets
// one retry before the mismatch is surfaced to the caller.
func (o *Orchestrator) advancePaidOrder(ctx context.Context, ord *order.Order) error {
	if err := ord.TransitionTo(order.StatusProcessing); err != nil {
		return err
	}
	if err := o.orderRepo.Save(ctx, ord); err != nil {
		o.logger.Warn("retrying save of paid order",
			zap.String("order_id", ord.ID.String()), zap.Error(err))
		return o.orderRepo.Save(ctx, ord)
	}
	return nil
}

func (o *Orchestrator) savePayment(ctx context.Context, pay *order.Payment) {
	if err := o.paymentRepo.Save(ctx, pay); err != nil {
		o.logger.Error("failed to save payment",
			zap.String("payment_id", pay.ID.String()), zap.Error(err))
		return
	}
	o.publishEvents(ctx, pay)
}

func (o *Orchestrator) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
	if o.eventPublisher == nil {
		return
	}
	for _, event := range aggregate.GetDomainEvents() {
		if err := o.eventPublisher.Publish(ctx, event); err != nil {
			o.logger.Warn("failed to publish domain event",
				zap.String("event_type", event.EventType()), zap.Error(err))
		}
	}
	aggregate.ClearDomainEvents()
}
