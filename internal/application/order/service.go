package order

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// Actor is the authenticated caller of an order operation, resolved
// from the auth context.
type Actor struct {
	UserID   uuid.UUID
	Role     shared.Role
	VendorID uuid.UUID
}

// TransitionInput represents a status transition request body
type TransitionInput struct {
	Status string `json:"status" binding:"required"`
}

// Service exposes order reads and the validated status transitions.
type Service struct {
	orderRepo      order.Repository
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewService creates a new order Service
func NewService(orderRepo order.Repository, logger *zap.Logger) *Service {
	return &Service{
		orderRepo: orderRepo,
		logger:    logger,
	}
}

// SetEventPublisher sets the event publisher for status fan-out
func (s *Service) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// GetByID retrieves one order, enforcing visibility: customers see
// their own orders, vendors see orders containing their items,
// admin and owner see everything.
func (s *Service) GetByID(ctx context.Context, actor Actor, orderID uuid.UUID) (*order.Order, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !s.canView(actor, ord) {
		return nil, shared.ErrForbidden
	}
	return ord, nil
}

// ListByCustomer retrieves a customer's orders with pagination
func (s *Service) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}
	return s.orderRepo.FindByCustomer(ctx, customerID, filter)
}

// Transition moves an order to the target status. Vendors may only act
// on orders containing at least one of their own items; admin and owner
// may act on any order. The state machine rejects invalid targets,
// including re-asserting the current status.
func (s *Service) Transition(ctx context.Context, actor Actor, orderID uuid.UUID, target order.Status) (*order.Order, error) {
	ord, err := s.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if !actor.Role.CanManageAnyOrder() {
		if actor.Role != shared.RoleVendor || !ord.ContainsVendor(actor.VendorID) {
			return nil, shared.ErrForbidden
		}
	}

	if err := ord.TransitionTo(target); err != nil {
		return nil, err
	}

	if err := s.orderRepo.Save(ctx, ord); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, ord)

	return ord, nil
}

func (s *Service) canView(actor Actor, ord *order.Order) bool {
	if actor.Role.CanManageAnyOrder() {
		return true
	}
	if actor.Role == shared.RoleVendor {
		return ord.ContainsVendor(actor.VendorID)
	}
	return ord.CustomerID == actor.UserID
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
