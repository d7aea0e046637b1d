package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/finledger/ledger-api/internal/api/handler"
	"github.com/finledger/ledger-api/internal/api/middleware"
	"github.com/finledger/ledger-api/internal/core/ports"
	"github.com/finledger/ledger-api/internal/core/service"
)

// Deps bundles everything the router needs. Mongo, Redis and SnapshotDir
// are optional and only drive the readiness probe; Throttle may be nil to
// disable login throttling.
type Deps struct {
	Store       ports.SnapshotStore
	Throttle    ports.LoginThrottle
	SnapshotDir string
	Mongo       *mongo.Database
	Redis       *redis.Client
	Logger      zerolog.Logger
	// Metrics overrides the Prometheus registry backing the request
	// middleware and the /metrics endpoint; tests pass an isolated
	// registry. Defaults to the global registerer and gatherer.
	Metrics *prometheus.Registry
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())

	// The middleware and /metrics must share one registry, otherwise the
	// request metrics recorded here would never be served.
	var registerer prometheus.Registerer = prometheus.DefaultRegisterer
	var gatherer prometheus.Gatherer = prometheus.DefaultGatherer
	if deps.Metrics != nil {
		registerer, gatherer = deps.Metrics, deps.Metrics
	}
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:  "ledger",
		Registerer: registerer,
	}))

	// --- Dependencies ---
	authService := service.NewAuthService(deps.Store, deps.Throttle, deps.Logger)
	ledgerService := service.NewLedgerService(deps.Store, deps.Logger)
	authHandler := handler.NewAuthHandler(authService)
	accountHandler := handler.NewAccountHandler(ledgerService)

	// --- Public routes ---
	g := e.Group("/api")
	g.POST("/register", authHandler.Register)
	g.POST("/login", authHandler.Login)

	// --- Protected routes ---
	protected := g.Group("", middleware.Auth(authService))
	protected.GET("/account", accountHandler.Account)
	protected.POST("/deposit", accountHandler.Deposit)
	protected.POST("/withdraw", accountHandler.Withdraw)
	protected.GET("/transactions", accountHandler.Transactions)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.SnapshotDir, deps.Mongo, deps.Redis)

	e.GET("/health", healthHandler.Liveness)           // liveness  – is the process alive?
	e.GET("/health/ready", readinessHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{
		Gatherer: gatherer,
	}))

	return e
}
