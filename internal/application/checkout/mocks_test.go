package checkout

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/catalog"
	domaincheckout "github.com/souqmarket/backend/internal/domain/checkout"
	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
)

// MockCartRepository is a mock implementation of cart.Repository
type MockCartRepository struct {
	mock.Mock
}

func (m *MockCartRepository) FindByCustomer(ctx context.Context, customerID uuid.UUID) ([]*cart.CartLine, error) {
	args := m.Called(ctx, customerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) FindByCustomerAndProduct(ctx context.Context, customerID, productID uuid.UUID) (*cart.CartLine, error) {
	args := m.Called(ctx, customerID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*cart.CartLine), args.Error(1)
}

func (m *MockCartRepository) Save(ctx context.Context, line *cart.CartLine) error {
	args := m.Called(ctx, line)
	return args.Error(0)
}

func (m *MockCartRepository) Delete(ctx context.Context, customerID, productID uuid.UUID) error {
	args := m.Called(ctx, customerID, productID)
	return args.Error(0)
}

func (m *MockCartRepository) Clear(ctx context.Context, customerID uuid.UUID) error {
	args := m.Called(ctx, customerID)
	return args.Error(0)
}

// MockProductReader is a mock implementation of catalog.ProductReader
type MockProductReader struct {
	mock.Mock
}

func (m *MockProductReader) FindByID(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*catalog.Product, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*catalog.Product), args.Error(1)
}

func (m *MockProductReader) FindByMarket(ctx context.Context, marketID uuid.UUID, filter shared.Filter) (shared.Paginated[*catalog.Product], error) {
	args := m.Called(ctx, marketID, filter)
	return args.Get(0).(shared.Paginated[*catalog.Product]), args.Error(1)
}

// MockCustomerRepository is a mock implementation of customer.Repository
type MockCustomerRepository struct {
	mock.Mock
}

func (m *MockCustomerRepository) FindByID(ctx context.Context, id uuid.UUID) (*customer.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*customer.Customer), args.Error(1)
}

func (m *MockCustomerRepository) Save(ctx context.Context, c *customer.Customer) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

// MockCheckoutWriter is a mock implementation of order.CheckoutWriter
type MockCheckoutWriter struct {
	mock.Mock
}

func (m *MockCheckoutWriter) CreateCheckout(ctx context.Context, customerID uuid.UUID, contactPhone string, orders []*order.Order, payments []*order.Payment) error {
	args := m.Called(ctx, customerID, contactPhone, orders, payments)
	return args.Error(0)
}

// MockPaymentProcessor is a mock implementation of PaymentProcessor
type MockPaymentProcessor struct {
	mock.Mock
}

func (m *MockPaymentProcessor) ProcessBatch(ctx context.Context, orders []*order.Order, payments []*order.Payment, method domaincheckout.PaymentMethod, cust *customer.Customer) []paymentapp.OrderResult {
	args := m.Called(ctx, orders, payments, method, cust)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]paymentapp.OrderResult)
}
