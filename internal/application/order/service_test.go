package order

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
)

// MockOrderRepository is a mock implementation of order.Repository
type MockOrderRepository struct {
	mock.Mock
}

func (m *MockOrderRepository) FindByID(ctx context.Context, id uuid.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	args := m.Called(ctx, customerID, filter)
	return args.Get(0).(shared.Paginated[*order.Order]), args.Error(1)
}

func (m *MockOrderRepository) Save(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func newOrderWithVendor(t *testing.T, vendorID uuid.UUID) *order.Order {
	t.Helper()
	ord, err := order.NewOrder(uuid.New(), uuid.New(), "")
	require.NoError(t, err)
	_, err = ord.AddItem(uuid.New(), vendorID, "Dates 1kg", 1, valueobject.NewMoneySARFromFloat(24.50))
	require.NoError(t, err)
	ord.ClearDomainEvents()
	return ord
}

func TestServiceTransition(t *testing.T) {
	ctx := context.Background()

	t.Run("vendor may transition orders containing their items", func(t *testing.T) {
		repo := new(MockOrderRepository)
		vendorID := uuid.New()
		ord := newOrderWithVendor(t, vendorID)

		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)
		repo.On("Save", ctx, ord).Return(nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: uuid.New(), Role: shared.RoleVendor, VendorID: vendorID}
		updated, err := svc.Transition(ctx, actor, ord.ID, order.StatusProcessing)
		require.NoError(t, err)

		assert.Equal(t, order.StatusProcessing, updated.Status)
	})

	t.Run("vendor without items on the order is forbidden", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())

		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: uuid.New(), Role: shared.RoleVendor, VendorID: uuid.New()}
		_, err := svc.Transition(ctx, actor, ord.ID, order.StatusProcessing)

		assert.ErrorIs(t, err, shared.ErrForbidden)
		assert.Equal(t, order.StatusNew, ord.Status)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("customer role is forbidden", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: ord.CustomerID, Role: shared.RoleCustomer}
		_, err := svc.Transition(ctx, actor, ord.ID, order.StatusCancelled)

		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("admin may transition any order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)
		repo.On("Save", ctx, ord).Return(nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: uuid.New(), Role: shared.RoleAdmin}
		updated, err := svc.Transition(ctx, actor, ord.ID, order.StatusCancelled)
		require.NoError(t, err)

		assert.Equal(t, order.StatusCancelled, updated.Status)
	})

	t.Run("invalid transition is rejected and not saved", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: uuid.New(), Role: shared.RoleOwner}
		_, err := svc.Transition(ctx, actor, ord.ID, order.StatusDelivered)

		require.Error(t, err)
		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeating the current status is rejected", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		require.NoError(t, ord.TransitionTo(order.StatusProcessing))
		ord.ClearDomainEvents()
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		actor := Actor{UserID: uuid.New(), Role: shared.RoleAdmin}
		_, err := svc.Transition(ctx, actor, ord.ID, order.StatusProcessing)

		var domainErr *shared.DomainError
		require.ErrorAs(t, err, &domainErr)
		assert.Equal(t, "INVALID_TRANSITION", domainErr.Code)
	})
}

func TestServiceGetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("customer sees own order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		got, err := svc.GetByID(ctx, Actor{UserID: ord.CustomerID, Role: shared.RoleCustomer}, ord.ID)
		require.NoError(t, err)
		assert.Equal(t, ord.ID, got.ID)
	})

	t.Run("customer cannot see another customer's order", func(t *testing.T) {
		repo := new(MockOrderRepository)
		ord := newOrderWithVendor(t, uuid.New())
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		_, err := svc.GetByID(ctx, Actor{UserID: uuid.New(), Role: shared.RoleCustomer}, ord.ID)
		assert.ErrorIs(t, err, shared.ErrForbidden)
	})

	t.Run("vendor sees orders containing their items", func(t *testing.T) {
		repo := new(MockOrderRepository)
		vendorID := uuid.New()
		ord := newOrderWithVendor(t, vendorID)
		repo.On("FindByID", ctx, ord.ID).Return(ord, nil)

		svc := NewService(repo, zap.NewNop())
		_, err := svc.GetByID(ctx, Actor{UserID: uuid.New(), Role: shared.RoleVendor, VendorID: vendorID}, ord.ID)
		assert.NoError(t, err)
	})
}

func TestServiceListByCustomer(t *testing.T) {
	ctx := context.Background()
	repo := new(MockOrderRepository)
	customerID := uuid.New()

	expected := shared.NewPaginated([]*order.Order{}, 0, 1, 20)
	repo.On("FindByCustomer", ctx, customerID, mock.MatchedBy(func(f shared.Filter) bool {
		return f.Page == 1 && f.PageSize == 20
	})).Return(expected, nil)

	svc := NewService(repo, zap.NewNop())
	_, err := svc.ListByCustomer(ctx, customerID, shared.Filter{})
	assert.NoError(t, err)
	repo.AssertExpectations(t)
}
