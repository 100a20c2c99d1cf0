package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	cartapp "github.com/souqmarket/backend/internal/application/cart"
	checkoutapp "github.com/souqmarket/backend/internal/application/checkout"
	"github.com/souqmarket/backend/internal/application/notification"
	orderapp "github.com/souqmarket/backend/internal/application/order"
	paymentapp "github.com/souqmarket/backend/internal/application/payment"
	"github.com/souqmarket/backend/internal/infrastructure/auth"
	"github.com/souqmarket/backend/internal/infrastructure/config"
	"github.com/souqmarket/backend/internal/infrastructure/event"
	"github.com/souqmarket/backend/internal/infrastructure/logger"
	paymentgw "github.com/souqmarket/backend/internal/infrastructure/payment"
	"github.com/souqmarket/backend/internal/infrastructure/persistence"
	"github.com/souqmarket/backend/internal/infrastructure/realtime"
	"github.com/souqmarket/backend/internal/interfaces/http/handler"
	"github.com/souqmarket/backend/internal/interfaces/http/middleware"
	"github.com/souqmarket/backend/internal/interfaces/http/router"
)

const version = "1.0.0"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "server exited: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	started := time.Now()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log, err := logger.New(&logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() { _ = log.Sync() }()

	log.Info("Starting server",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("version", version))

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Failed to close database", zap.Error(err))
		}
	}()

	// Repositories
	customerRepo := persistence.NewGormCustomerRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	cartRepo := persistence.NewGormCartRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	paymentRepo := persistence.NewGormPaymentRepository(db.DB)
	checkoutWriter := persistence.NewGormCheckoutWriter(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)

	// Realtime fan-out. The in-process hub always feeds the SSE
	// endpoint; redis pub/sub is added when enabled so other
	// instances see the same stream.
	hub := realtime.NewHub()
	var publisher notification.Publisher = hub
	if cfg.Realtime.Enabled {
		redisPub, err := realtime.NewRedisPublisher(&cfg.Redis)
		if err != nil {
			return fmt.Errorf("failed to connect to redis: %w", err)
		}
		defer func() {
			if err := redisPub.Close(); err != nil {
				log.Error("Failed to close redis publisher", zap.Error(err))
			}
		}()
		publisher = realtime.NewMultiPublisher(log, hub, redisPub)
	}

	// Event bus and status fan-out
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	eventBus := event.NewInMemoryEventBus(log)
	fanout := notification.NewStatusFanout(publisher, log)
	eventBus.Subscribe(fanout, fanout.EventTypes()...)
	if err := eventBus.Start(ctx); err != nil {
		return fmt.Errorf("failed to start event bus: %w", err)
	}
	defer func() {
		stopCtx, stopCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer stopCancel()
		if err := eventBus.Stop(stopCtx); err != nil {
			log.Error("Failed to stop event bus", zap.Error(err))
		}
	}()

	// Application services
	gateway := paymentgw.NewHTTPGateway(&cfg.Payment)
	orchestrator := paymentapp.NewOrchestrator(gateway, orderRepo, paymentRepo, log, cfg.Payment.Timeout)
	orchestrator.SetEventPublisher(eventBus)

	snapshotReader := checkoutapp.NewSnapshotReader(cartRepo, productRepo)
	checkoutService := checkoutapp.NewService(snapshotReader, customerRepo, checkoutWriter, orchestrator, log)
	checkoutService.SetEventPublisher(eventBus)
	checkoutService.SetDefaultsReader(settingsRepo)

	cartService := cartapp.NewService(cartRepo, productRepo)

	orderService := orderapp.NewService(orderRepo, log)
	orderService.SetEventPublisher(eventBus)

	reconcileService := paymentapp.NewReconcileService(orderRepo, paymentRepo, log)
	reconcileService.SetEventPublisher(eventBus)

	jwtService := auth.NewJWTService(cfg.JWT)

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
		return fmt.Errorf("failed to set trusted proxies: %w", err)
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.Secure())
	engine.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.HTTP.CORSAllowOrigins,
		AllowMethods:     cfg.HTTP.CORSAllowMethods,
		AllowHeaders:     cfg.HTTP.CORSAllowHeaders,
		ExposeHeaders:    []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	// Liveness and readiness probes, outside the versioned API and JWT
	systemHandler := handler.NewSystemHandler(db, version)
	systemHandler.RegisterRoutes(engine)

	engine.Use(middleware.JWTAuthMiddleware(jwtService))

	eventsHandler := handler.NewOrderEventsHandler(orderService, hub, log)

	r := router.NewRouter(engine, "v1")
	r.Register(handler.NewCheckoutHandler(checkoutService)).
		Register(handler.NewCartHandler(cartService)).
		Register(handler.NewOrderHandler(orderService)).
		Register(handler.NewPaymentHandler(reconcileService)).
		Register(eventsHandler)
	r.Setup()

	// WriteTimeout stays zero so the SSE stream endpoint is not cut
	// off; slow-client protection comes from ReadTimeout and the body
	// size limit instead.
	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("HTTP server listening",
			zap.String("addr", srv.Addr),
			zap.Duration("startup", time.Since(started)))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("Shutting down server", zap.String("signal", sig.String()))

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
