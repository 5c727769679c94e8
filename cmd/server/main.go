package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	appcatalog "github.com/tekstil/ledger/internal/application/catalog"
	appfinance "github.com/tekstil/ledger/internal/application/finance"
	appledger "github.com/tekstil/ledger/internal/application/ledger"
	apppartner "github.com/tekstil/ledger/internal/application/partner"
	"github.com/tekstil/ledger/internal/application/receipt"
	"github.com/tekstil/ledger/internal/infrastructure/auth"
	"github.com/tekstil/ledger/internal/infrastructure/cache"
	"github.com/tekstil/ledger/internal/infrastructure/config"
	"github.com/tekstil/ledger/internal/infrastructure/logger"
	"github.com/tekstil/ledger/internal/infrastructure/persistence"
	"github.com/tekstil/ledger/internal/infrastructure/persistence/models"
	"github.com/tekstil/ledger/internal/infrastructure/printing"
	"github.com/tekstil/ledger/internal/infrastructure/storage"
	"github.com/tekstil/ledger/internal/infrastructure/telemetry"
	"github.com/tekstil/ledger/internal/interfaces/http/handler"
	"github.com/tekstil/ledger/internal/interfaces/http/middleware"
	"github.com/tekstil/ledger/internal/interfaces/http/router"

	_ "github.com/tekstil/ledger/docs"
)

const version = "1.0.0"

//	@title			Textile Ledger API
//	@version		1.0
//	@description	Inventory and cash ledger for a textile shop: sales, purchases, returns, installments, expenses and receipts.

//	@host		localhost:8080
//	@BasePath	/api/v1

//	@securityDefinitions.apikey	BearerAuth
//	@in							header
//	@name						Authorization
//	@description				Bearer token authentication. Format: "Bearer {token}"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	logConfig := &logger.Config{
		Level:      cfg.Log.Level,
		Format:     cfg.Log.Format,
		Output:     cfg.Log.Output,
		TimeFormat: "2006-01-02T15:04:05.000Z07:00",
	}
	log, err := logger.New(logConfig)
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	providers, err := telemetry.Setup(ctx, cfg.Telemetry, cfg.Profiling, log)
	if err != nil {
		log.Fatal("Failed to initialize telemetry", zap.Error(err))
	}
	if providers.Logs.IsEnabled() {
		otelCore := telemetry.NewZapOTELCore(providers.Logs, logger.ParseLevel(cfg.Log.Level))
		log = log.WithOptions(zap.WrapCore(func(core zapcore.Core) zapcore.Core {
			return zapcore.NewTee(core, otelCore)
		}))
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting textile ledger",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("database", cfg.Database.Driver),
	)

	dbOptions := []persistence.Option{
		persistence.WithLogger(logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level), 200*time.Millisecond)),
	}
	if cfg.Telemetry.Enabled && cfg.Telemetry.DBTraceEnabled {
		dbSystem := "postgresql"
		if cfg.Database.Driver == "sqlite" {
			dbSystem = "sqlite"
		}
		dbOptions = append(dbOptions, persistence.WithPlugins(telemetry.NewDBTracing(telemetry.DBTracingConfig{
			Enabled:    true,
			LogFullSQL: cfg.Telemetry.DBLogFullSQL,
			DBSystem:   dbSystem,
		}, log)))
	}

	database, err := persistence.NewDatabase(&cfg.Database, dbOptions...)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := database.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	if database.Driver == "sqlite" {
		if err := database.DB.AutoMigrate(models.All()...); err != nil {
			log.Fatal("Failed to create sqlite schema", zap.Error(err))
		}
	}
	sqlDB, err := database.DB.DB()
	if err != nil {
		log.Fatal("Failed to get sql.DB", zap.Error(err))
	}
	log.Info("Database connected successfully")

	db := database.DB
	itemRepo := persistence.NewGormItemRepository(db)
	partyRepo := persistence.NewGormPartyRepository(db)
	transactionRepo := persistence.NewGormTradeTransactionRepository(db)
	movementRepo := persistence.NewGormMovementRepository(db)
	expenseRepo := persistence.NewGormExpenseRepository(db)
	cashRepo := persistence.NewGormCashBalanceRepository(db)
	ledgerScope := persistence.NewGormLedgerScope(db)
	financeScope := persistence.NewGormFinanceScope(db)

	postingService := appledger.NewPostingService(ledgerScope)
	returnService := appledger.NewReturnService(ledgerScope)
	installmentService := appledger.NewInstallmentService(ledgerScope, transactionRepo)
	queryService := appledger.NewQueryService(transactionRepo, movementRepo, itemRepo, partyRepo)
	postingService.SetLedgerMetrics(providers.Ledger)
	returnService.SetLedgerMetrics(providers.Ledger)
	installmentService.SetLedgerMetrics(providers.Ledger)

	itemService := appcatalog.NewItemService(itemRepo, transactionRepo, persistence.NewGormCatalogScope(db))
	partyService := apppartner.NewPartyService(partyRepo, transactionRepo)
	expenseService := appfinance.NewExpenseService(expenseRepo, financeScope)
	cashService := appfinance.NewCashBalanceService(cashRepo, financeScope)

	if cfg.Telemetry.MetricsEnabled {
		providers.Ledger.StartCashBalanceCollection(ctx, cashService, cfg.Telemetry.MetricsInterval)
	}

	receiptService, closeReceipts := newReceiptService(ctx, cfg, queryService, log)
	defer closeReceipts()

	idempotencyStore, err := cache.NewIdempotencyStoreFactory(cfg.Redis, cache.WithLogger(log)).CreateStore()
	if err != nil {
		log.Fatal("Failed to create idempotency store", zap.Error(err))
	}
	defer func() {
		if err := idempotencyStore.Close(); err != nil {
			log.Error("Error closing idempotency store", zap.Error(err))
		}
	}()

	if cfg.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	middleware.SetupValidator()

	engine := router.NewEngine(router.Dependencies{
		Config:      cfg,
		Logger:      log,
		JWTService:  auth.NewJWTService(cfg.JWT),
		Idempotency: idempotencyStore,
		Meters:      providers.Meter,
	}, router.Handlers{
		Transactions: handler.NewTransactionHandler(postingService, returnService, queryService),
		Installments: handler.NewInstallmentHandler(installmentService),
		Items:        handler.NewItemHandler(itemService, queryService),
		Customers:    handler.NewCustomerHandler(partyService),
		Suppliers:    handler.NewSupplierHandler(partyService),
		Expenses:     handler.NewExpenseHandler(expenseService),
		CashBalance:  handler.NewCashBalanceHandler(cashService),
		Receipts:     handler.NewReceiptHandler(receiptService),
		System:       handler.NewSystemHandler(cfg.App.Name, version, sqlDB),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	go func() {
		log.Info("Server starting", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	if err := providers.Shutdown(shutdownCtx); err != nil {
		log.Warn("Telemetry shutdown incomplete", zap.Error(err))
	}

	log.Info("Server exited gracefully")
}

// newReceiptService builds the receipt service with the optional PDF renderer
// and archive. The returned func releases the browser.
func newReceiptService(
	ctx context.Context,
	cfg *config.Config,
	transactions receipt.TransactionReader,
	log *zap.Logger,
) (*receipt.Service, func()) {
	templates, err := printing.NewTemplateEngine(cfg.Receipt.Locale)
	if err != nil {
		log.Fatal("Failed to load receipt templates", zap.Error(err))
	}

	opts := []receipt.Option{receipt.WithStoreName(cfg.Receipt.StoreName)}
	closer := func() {}

	if cfg.Receipt.Enabled {
		renderer, err := printing.NewChromedpRenderer(&printing.ChromedpConfig{
			DefaultTimeout: cfg.Receipt.ChromeTimeout,
			ExecPath:       cfg.Receipt.ChromePath,
			NoSandbox:      true,
			Logger:         log,
		})
		if err != nil {
			log.Fatal("Failed to create PDF renderer", zap.Error(err))
		}
		opts = append(opts, receipt.WithPDFRenderer(renderer))
		closer = func() {
			if err := renderer.Close(); err != nil {
				log.Warn("Error closing PDF renderer", zap.Error(err))
			}
		}
		log.Info("PDF receipts enabled", zap.Duration("timeout", cfg.Receipt.ChromeTimeout))
	}

	if cfg.Receipt.Archive {
		archive, err := storage.NewS3ObjectStorage(&cfg.Storage,
			storage.WithLogger(log),
			storage.WithPresignExpiration(cfg.Storage.PresignExpiration),
		)
		if err != nil {
			log.Fatal("Failed to create receipt archive", zap.Error(err))
		}
		if err := archive.EnsureBucket(ctx); err != nil {
			log.Fatal("Failed to prepare receipt bucket", zap.Error(err), zap.String("bucket", cfg.Storage.Bucket))
		}
		opts = append(opts, receipt.WithArchive(archive))
		log.Info("Receipt archive enabled", zap.String("bucket", archive.GetBucket()))
	}

	return receipt.NewService(transactions, templates, opts...), closer
}
