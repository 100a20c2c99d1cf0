package integration

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	cartapp "github.com/souqmarket/backend/internal/application/cart"
	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
	"github.com/souqmarket/backend/internal/application/notification"
	orderapp "github.com/souqmarket/backend/internal/application/order"
	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	"github.com/souqmarket/backend/internal/domain/cart"
	"github.com/souqmarket/backend/internal/domain/catalog"
	"github.com/souqmarket/backend/internal/domain/customer"
	"github.com/souqmarket/backend/internal/domain/order"
	"github.com/souqmarket/backend/internal/domain/payment"
	"github.com/souqmarket/backend/internal/domain/settings"
	"github.com/souqmarket/backend/internal/domain/shared"
	"github.com/souqmarket/backend/internal/domain/shared/valueobject"
	"github.com/souqmarket/backend/internal/infrastructure/auth"
	"github.com/souqmarket/backend/internal/infrastructure/config"
	"github.com/souqmarket/backend/internal/infrastructure/event"
	"github.com/souqmarket/backend/internal/infrastructure/persistence"
	"github.com/souqmarket/backend/internal/infrastructure/realtime"
	"github.com/souqmarket/backend/internal/interfaces/http/handler"
	"github.com/souqmarket/backend/internal/interfaces/http/middleware"
	"github.com/souqmarket/backend/internal/interfaces/http/router"
)

// suite wires the real application stack over an in-memory database
// and a caller-supplied payment provider.
type suite struct {
	db     *gorm.DB
	engine *gin.Engine
	hub    *realtime.Hub
	jwt    *auth.JWTService
}

func newSuite(t *testing.T, provider payment.Provider) *suite {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&catalog.Market{},
		&catalog.Vendor{},
		&catalog.Product{},
		&customer.Customer{},
		&cart.CartLine{},
		&order.Order{},
		&order.OrderItem{},
		&order.Payment{},
		&settings.Settings{},
	))

	log := zap.NewNop()

	customerRepo := persistence.NewGormCustomerRepository(db)
	productRepo := persistence.NewGormProductRepository(db)
	cartRepo := persistence.NewGormCartRepository(db)
	orderRepo := persistence.NewGormOrderRepository(db)
	paymentRepo := persistence.NewGormPaymentRepository(db)
	checkoutWriter := persistence.NewGormCheckoutWriter(db)
	settingsRepo := persistence.NewGormSettingsRepository(db)

	hub := realtime.NewHub()

	ctx, cancel := context.WithCancel(context.Background())
	bus := event.NewInMemoryEventBus(log)
	fanout := notification.NewStatusFanout(hub, log)
	bus.Subscribe(fanout, fanout.EventTypes()...)
	require.NoError(t, bus.Start(ctx))
	t.Cleanup(func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), time.Second)
		defer stopCancel()
		_ = bus.Stop(stopCtx)
		cancel()
	})

	orchestrator := paymentapp.NewOrchestrator(provider, orderRepo, paymentRepo, log, 5*time.Second)
	orchestrator.SetEventPublisher(bus)

	reader := checkoutapp.NewSnapshotReader(cartRepo, productRepo)
	checkoutService := checkoutapp.NewService(reader, customerRepo, checkoutWriter, orchestrator, log)
	checkoutService.SetEventPublisher(bus)
	checkoutService.SetDefaultsReader(settingsRepo)

	cartService := cartapp.NewService(cartRepo, productRepo)

	orderService := orderapp.NewService(orderRepo, log)
	orderService.SetEventPublisher(bus)

	reconcileService := paymentapp.NewReconcileService(orderRepo, paymentRepo, log)
	reconcileService.SetEventPublisher(bus)

	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                "integration-test-secret-key-0001",
		AccessTokenExpiration: 15 * time.Minute,
		Issuer:                "souqmarket-backend",
	})

	middleware.SetupValidator()
	engine := gin.New()
	engine.Use(middleware.RequestID())
	engine.Use(middleware.JWTAuthMiddleware(jwtService))

	r := router.NewRouter(engine, "v1")
	r.Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewPaymentHandler(reconcileService)).
		Register(handler.NewOrderEventsHandler(orderService, hub, log))
	r.Setup()

	return &suite{db: db, engine: engine, hub: hub, jwt: jwtService}
}

func (s *suite) token(t *testing.T, userID uuid.UUID, role shared.Role, vendorID uuid.UUID) string {
	t.Helper()
	token, err := s.jwt.GenerateAccessToken(auth.GenerateTokenInput{
		UserID:   userID,
		Name:     "tester",
		Role:     role,
		VendorID: vendorID,
	})
	require.NoError(t, err)
	return token
}

func (s *suite) do(t *testing.T, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
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
	s.engine.ServeHTTP(w, req)
	return w
}

func (s *suite) seedCustomer(t *testing.T, name, email string) *customer.Customer {
	t.Helper()
	c, err := customer.NewCustomer(name, email)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(c).Error)
	return c
}

func (s *suite) seedMarket(t *testing.T, name string) *catalog.Market {
	t.Helper()
	m, err := catalog.NewMarket(name, "Riyadh")
	require.NoError(t, err)
	require.NoError(t, s.db.Create(m).Error)
	return m
}

func (s *suite) seedVendor(t *testing.T, market *catalog.Market, name string) *catalog.Vendor {
	t.Helper()
	v, err := catalog.NewVendor(name, market.ID)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(v).Error)
	return v
}

func (s *suite) seedProduct(t *testing.T, vendor *catalog.Vendor, market *catalog.Market, name, price string) *catalog.Product {
	t.Helper()
	p, err := catalog.NewProduct(name,
		valueobject.NewMoneySAR(decimal.RequireFromString(price)),
		vendor.ID, market.ID)
	require.NoError(t, err)
	require.NoError(t, s.db.Create(p).Error)
	return p
}
