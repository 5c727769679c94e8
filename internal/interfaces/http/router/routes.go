package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/tekstil/ledger/internal/domain/shared"
	"github.com/tekstil/ledger/internal/infrastructure/auth"
	"github.com/tekstil/ledger/internal/infrastructure/config"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
	"github.com/tekstil/ledger/internal/interfaces/http/handler"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
)

// Handlers groups the HTTP handlers mounted under the API prefix
type Handlers struct {
	Transactions *handler.TransactionHandler
	Installments *handler.InstallmentHandler
	Items        *handler.ItemHandler
	Customers    *handler.PartyHandler
	Suppliers    *handler.PartyHandler
	Expenses     *handler.ExpenseHandler
	CashBalance  *handler.CashBalanceHandler
	Receipts     *handler.ReceiptHandler
	System       *handler.SystemHandler
}

// Dependencies holds everything the engine needs besides handlers
type Dependencies struct {
	Config      *config.Config
	Logger      *zap.Logger
	JWTService  *auth.JWTService
	Idempotency shared.IdempotencyStore
	Meters      *telemetry.MeterProvider
}

// NewEngine builds the gin engine with the middleware stack and all routes.
//
// Middleware order:
//  1. RequestID, so every later layer can read it
//  2. Recovery and request logging
//  3. Tracing, then attribute injection and error marking inside the span
//  4. HTTP metrics and profiling labels
//  5. Security headers, CORS and the body size limit
func NewEngine(deps Dependencies, h Handlers) *gin.Engine {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	engine := gin.New()
	if len(cfg.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(cfg.HTTP.TrustedProxies); err != nil {
			log.Warn("Failed to set trusted proxies", zap.Error(err))
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(log))
	engine.Use(logger.GinMiddleware(log))
	engine.Use(middleware.TracingWithConfig(middleware.TracingConfig{
		ServiceName: cfg.Telemetry.ServiceName,
		Enabled:     cfg.Telemetry.Enabled,
	}))
	engine.Use(middleware.TracingAttributeInjector())
	engine.Use(middleware.SpanErrorMarker())
	engine.Use(middleware.HTTPMetrics(middleware.HTTPMetricsConfig{
		MeterProvider: deps.Meters,
		Enabled:       cfg.Telemetry.MetricsEnabled,
		Logger:        log,
	}))
	if cfg.Profiling.Enabled {
		engine.Use(middleware.Profiling())
	}
	engine.Use(middleware.Secure())

	corsConfig := middleware.DefaultCORSConfig()
	corsConfig.AllowOrigins = cfg.HTTP.CORSAllowOrigins
	engine.Use(middleware.CORSWithConfig(corsConfig))
	engine.Use(middleware.BodyLimit(cfg.HTTP.MaxBodySize))

	engine.GET("/health", h.System.Health)
	engine.GET("/ready", h.System.Ready)
	engine.NoRoute(h.System.NotFound)

	if cfg.Swagger.Enabled {
		var docsAuth gin.HandlerFunc
		if cfg.Swagger.RequireAuth && deps.JWTService != nil {
			docsAuth = middleware.JWTAuthMiddlewareWithConfig(middleware.JWTMiddlewareConfig{
				JWTService: deps.JWTService,
				Required:   true,
				Logger:     log,
			})
		}
		engine.GET("/swagger/*any",
			middleware.SwaggerProtection(cfg.Swagger, docsAuth),
			ginSwagger.WrapHandler(swaggerFiles.Handler),
		)
	}

	r := NewRouter(engine, WithAPIVersion("v1"))
	if deps.JWTService != nil {
		jwtConfig := middleware.DefaultJWTConfig(deps.JWTService)
		jwtConfig.Required = cfg.JWT.Required
		jwtConfig.Logger = log
		r.Use(middleware.JWTAuthMiddlewareWithConfig(jwtConfig))
	}

	idempotent := middleware.Idempotency(deps.Idempotency, cfg.Ledger.IdempotencyTTL)
	for _, group := range LedgerRoutes(h, idempotent) {
		r.Register(group)
	}
	r.Setup()

	return engine
}

// LedgerRoutes returns the domain route groups of the API. The idempotent
// middleware guards the endpoints that move stock or cash on POST.
func LedgerRoutes(h Handlers, idempotent gin.HandlerFunc) []*DomainGroup {
	transactions := NewDomainGroup("transaction", "/transaction")
	transactions.POST("/:direction", idempotent, h.Transactions.Create)
	transactions.GET("/:direction", h.Transactions.List)
	transactions.GET("/:direction/:id", h.Transactions.Get)
	transactions.PUT("/:direction/:id", h.Transactions.Update)
	transactions.DELETE("/:direction/:id", h.Transactions.Delete)
	transactions.POST("/:direction/:id/return", idempotent, h.Transactions.CreateReturn)
	transactions.GET("/:direction/:id/movements", h.Transactions.Movements)
	transactions.GET("/:direction/:id/receipt", h.Receipts.Get)

	installments := NewDomainGroup("installment", "/installments")
	installments.GET("/:direction/:transactionId", h.Installments.List)
	installments.PUT("/:direction/:transactionId", h.Installments.Pay)

	items := NewDomainGroup("catalog", "/items")
	items.POST("", h.Items.Create)
	items.GET("", h.Items.List)
	items.GET("/:id", h.Items.GetByID)
	items.PUT("/:id", h.Items.Update)
	items.DELETE("/:id", h.Items.Delete)
	items.PUT("/:id/stock", h.Items.CorrectStock)
	items.GET("/:id/history/:direction", h.Items.History)

	customers := partyRoutes("customer", "/customers", h.Customers)
	suppliers := partyRoutes("supplier", "/suppliers", h.Suppliers)

	expenses := NewDomainGroup("finance", "/expenses")
	expenses.POST("", idempotent, h.Expenses.Create)
	expenses.GET("", h.Expenses.List)
	expenses.GET("/:id", h.Expenses.GetByID)
	expenses.PUT("/:id", h.Expenses.Update)
	expenses.DELETE("/:id", h.Expenses.Delete)

	cash := NewDomainGroup("cash", "/cash-balance")
	cash.GET("", h.CashBalance.Get)
	cash.PUT("", h.CashBalance.Set)

	system := NewDomainGroup("system", "")
	system.GET("/health", h.System.Health)
	system.GET("/system/info", h.System.GetSystemInfo)

	return []*DomainGroup{transactions, installments, items, customers, suppliers, expenses, cash, system}
}

func partyRoutes(name, prefix string, h *handler.PartyHandler) *DomainGroup {
	g := NewDomainGroup(name, prefix)
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.GetByID)
	g.PUT("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
	return g
}
