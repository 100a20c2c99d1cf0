package payment

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// ProcessPaymentInput is the webhook-style reconciliation body: a
// provider callback or an operator reporting one order's payment result.
type ProcessPaymentInput struct {
	OrderID       uuid.UUID `json:"order_id" binding:"required"`
	Method        string    `json:"method"`
	Success       bool      `json:"success"`
	TransactionID string    `json:"transaction_id"`
	FailureReason string    `json:"failure_reason"`
}

// ProcessPaymentResult reports the reconciled payment and order state
type ProcessPaymentResult struct {
	OrderID       uuid.UUID           `json:"order_id"`
	OrderStatus   order.Status        `json:"order_status"`
	PaymentStatus order.PaymentStatus `json:"payment_status"`
	TransactionID string              `json:"transaction_id,omitempty"`
}

// ReconcileService applies externally reported payment results. On
// success, the order advances NEW to PROCESSING.
type ReconcileService struct {
	orderRepo      order.Repository
	paymentRepo    order.PaymentRepository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewReconcileService creates a new ReconcileService
func NewReconcileService(orderRepo order.Repository, paymentRepo order.PaymentRepository, logger *zap.Logger) *ReconcileService {
	return &ReconcileService{
		orderRepo:   orderRepo,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// SetEventPublisher sets the event publisher for status fan-out
func (s *ReconcileService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Process reconciles one order's payment result
func (s *ReconcileService) Process(ctx context.Context, input ProcessPaymentInput) (*ProcessPaymentResult, error) {
	ord, err := s.orderRepo.FindByID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}
	pay, err := s.paymentRepo.FindByOrderID(ctx, input.OrderID)
	if err != nil {
		return nil, err
	}

	// The reported method, when present, must match the payment record.
	if input.Method != "" {
		method, err := checkout.ParsePaymentMethod(input.Method)
		if err != nil {
			return nil, err
		}
		if method != pay.Method {
			return nil, shared.NewDomainError("INVALID_PAYMENT",
				"Reported payment method does not match the order's payment")
		}
	}

	if input.Success {
		if err := pay.MarkSucceeded(input.TransactionID, nil); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, pay); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, pay)

		if err := ord.TransitionTo(order.StatusProcessing); err != nil {
			return nil, err
		}
		if err := s.orderRepo.Save(ctx, ord); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, ord)
	} else {
		if err := pay.MarkFailed(input.FailureReason, nil); err != nil {
			return nil, err
		}
		if err := s.paymentRepo.Save(ctx, pay); err != nil {
			return nil, err
		}
		s.publishEvents(ctx, pay)
	}

	return &ProcessPaymentResult{
		OrderID:       ord.ID,
		OrderStatus:   ord.Status,
		PaymentStatus: pay.Status,
		TransactionID: pay.TransactionID,
	}, nil
}

func (s *ReconcileService) publishEvents(ctx context.Context, aggregate shared.AggregateRoot) {
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
