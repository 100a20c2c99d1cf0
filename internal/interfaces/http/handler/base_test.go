package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	cartapp "github.com/souqmarket/backend/internal/application/cart"
	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
	orderapp "github.com/souqmarket/backend/internal/application/order"
	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/infrastructure/auth"
	"github.com/souqmarket/backend/internal/infrastructure/config"
	"github.com/souqmarket/backend/internal/interfaces/http/middleware"
)

// testJWT is shared by all handler tests
var testJWT = auth.NewJWTService(config.JWTConfig{
	Secret:                "handler-test-secret-key-souqmarket",
	AccessTokenExpiration: 15 * time.Minute,
	Issuer:                "souqmarket-backend",
})

type testIdentity struct {
	UserID   uuid.UUID
	Role     shared.Role
	VendorID uuid.UUID
	Token    string
}

func newIdentity(t *testing.T, role shared.Role, vendorID uuid.UUID) testIdentity {
	t.Helper()
	userID := uuid.New()
	token, err := testJWT.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   userID,
		Name:     "Test User",
		Role:     role,
		VendorID: vendorID,
	})
	require.NoError(t, err)
	return testIdentity{UserID: userID, Role: role, VendorID: vendorID, Token: token}
}

// newAPIEngine builds a gin engine with the full middleware chain and
// registers the given handlers under /api/v1
func newAPIEngine(registrars ...interface {
	RegisterRoutes(rg *gin.RouterGroup)
}) *gin.Engine {
	gin.SetMode(gin.TestMode)
	middleware.SetupValidator()

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(middleware.JWTAuthMiddleware(testJWT))

	api := r.Group("/api/v1")
	for _, reg := range registrars {
		reg.RegisterRoutes(api)
	}
	return r
}

func doRequest(r *gin.Engine, method, path, token, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// Service stubs with per-test function fields.

type stubCheckoutService struct {
	checkoutFn func(ctx context.Context, customerID uuid.UUID, input checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error)
}

func (s *stubCheckoutService) Checkout(ctx context.Context, customerID uuid.UUID, input checkoutapp.CheckoutInput) (*checkoutapp.CheckoutResponse, error) {
	return s.checkoutFn(ctx, customerID, input)
}

type stubCartService struct {
	getFn    func(ctx context.Context, customerID uuid.UUID) (*cartapp.Response, error)
	upsertFn func(ctx context.Context, customerID uuid.UUID, input cartapp.UpsertItemInput) error
	removeFn func(ctx context.Context, customerID, productID uuid.UUID) error
	clearFn  func(ctx context.Context, customerID uuid.UUID) error
}

func (s *stubCartService) Get(ctx context.Context, customerID uuid.UUID) (*cartapp.Response, error) {
	return s.getFn(ctx, customerID)
}

func (s *stubCartService) UpsertItem(ctx context.Context, customerID uuid.UUID, input cartapp.UpsertItemInput) error {
	return s.upsertFn(ctx, customerID, input)
}

func (s *stubCartService) RemoveItem(ctx context.Context, customerID, productID uuid.UUID) error {
	return s.removeFn(ctx, customerID, productID)
}

func (s *stubCartService) Clear(ctx context.Context, customerID uuid.UUID) error {
	return s.clearFn(ctx, customerID)
}

type stubOrderService struct {
	getFn        func(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID) (*order.Order, error)
	listFn       func(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error)
	transitionFn func(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error)
}

func (s *stubOrderService) GetByID(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID) (*order.Order, error) {
	return s.getFn(ctx, actor, orderID)
}

func (s *stubOrderService) ListByCustomer(ctx context.Context, customerID uuid.UUID, filter shared.Filter) (shared.Paginated[*order.Order], error) {
	return s.listFn(ctx, customerID, filter)
}

func (s *stubOrderService) Transition(ctx context.Context, actor orderapp.Actor, orderID uuid.UUID, target order.Status) (*order.Order, error) {
	return s.transitionFn(ctx, actor, orderID, target)
}

type stubReconciler struct {
	processFn func(ctx context.Context, input paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error)
}

func (s *stubReconciler) Process(ctx context.Context, input paymentapp.ProcessPaymentInput) (*paymentapp.ProcessPaymentResult, error) {
	return s.processFn(ctx, input)
}
