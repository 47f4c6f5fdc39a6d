package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	invhttp "github.com/retailcore/backoffice/internal/domains/inventory/adapters/http"
	invmemory "github.com/retailcore/backoffice/internal/domains/inventory/adapters/memory"
	invobs "github.com/retailcore/backoffice/internal/domains/inventory/adapters/observability"
	invpostgres "github.com/retailcore/backoffice/internal/domains/inventory/adapters/persistence/postgres"
	invapp "github.com/retailcore/backoffice/internal/domains/inventory/application"

	orderhttp "github.com/retailcore/backoffice/internal/domains/orders/adapters/http"
	ordersmemory "github.com/retailcore/backoffice/internal/domains/orders/adapters/memory"
	ordersnotify "github.com/retailcore/backoffice/internal/domains/orders/adapters/notify"
	ordersobs "github.com/retailcore/backoffice/internal/domains/orders/adapters/observability"
	orderspostgres "github.com/retailcore/backoffice/internal/domains/orders/adapters/persistence/postgres"
	ordersworkflows "github.com/retailcore/backoffice/internal/domains/orders/adapters/workflows"
	ordersapp "github.com/retailcore/backoffice/internal/domains/orders/application"
	ordersports "github.com/retailcore/backoffice/internal/domains/orders/ports"

	saleshttp "github.com/retailcore/backoffice/internal/domains/sales/adapters/http"
	salesmemory "github.com/retailcore/backoffice/internal/domains/sales/adapters/memory"
	salespostgres "github.com/retailcore/backoffice/internal/domains/sales/adapters/persistence/postgres"
	salesapp "github.com/retailcore/backoffice/internal/domains/sales/application"
	salesports "github.com/retailcore/backoffice/internal/domains/sales/ports"

	invports "github.com/retailcore/backoffice/internal/domains/inventory/ports"
	"github.com/retailcore/backoffice/internal/platform/migrations"
	platformobservability "github.com/retailcore/backoffice/internal/platform/observability"
	platformpostgres "github.com/retailcore/backoffice/internal/platform/postgres"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

// Run boots the back-office HTTP API with observability, repositories, and
// workflows wired.
func Run(ctx context.Context) error {
	const serviceName = "backoffice-api"
	cfg := LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	ids := identity.UUIDGenerator{}

	salesService := salesapp.NewService(repos.Sales, ids)

	notifier := ordersnotify.NewSlogNotifier(logger)
	coreOrderService := ordersapp.NewService(repos.Orders, salesService, notifier, ids)
	orderService := ordersobs.New(
		coreOrderService,
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)

	var orderWorkflows ordersports.WorkflowOrchestrator = ordersworkflows.NewInlineOrderWorkflows(orderService)
	if temporalClient, err := connectTemporalClient(cfg, instruments); err != nil {
		logger.Warn("Temporal workflows unavailable, running inline fulfillment", slog.String("error", err.Error()))
	} else {
		defer temporalClient.Close()
		orderWorkflows = ordersworkflows.NewTemporalOrderWorkflows(temporalClient)
		logger.Info("Temporal workflows enabled", slog.String("namespace", cfg.TemporalNamespace))
	}

	coreInventoryService := invapp.NewService(repos.Products, repos.Receipts, ids)
	inventoryService := invobs.New(
		coreInventoryService,
		invobs.WithLogger(logger),
		invobs.WithTracer(instruments.Tracer("internal.inventory.application")),
		invobs.WithMeter(instruments.Meter("internal.inventory.application")),
	)

	router := gin.Default()
	router.Use(otelgin.Middleware(serviceName))
	orderhttp.NewHandler(orderService, orderWorkflows).Register(router)
	saleshttp.NewHandler(salesService).Register(router)
	invhttp.NewHandler(inventoryService).Register(router)

	addr := ":" + cfg.Port
	logger.Info("back-office API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("back-office API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// Repositories bundles the persistence ports shared by the API and worker
// processes.
type Repositories struct {
	Orders   ordersports.Repository
	Sales    salesports.Repository
	Products invports.ProductRepository
	Receipts invports.ReceiptRepository
}

// BuildRepositories connects to Postgres when configured and runs the schema
// migration; otherwise every bounded context falls back to memory.
func BuildRepositories(ctx context.Context, cfg Config, logger *slog.Logger) (Repositories, func()) {
	memory := Repositories{
		Orders:   ordersmemory.NewRepository(),
		Sales:    salesmemory.NewRepository(),
		Products: invmemory.NewProductRepository(),
		Receipts: invmemory.NewReceiptRepository(),
	}
	if cfg.PostgresDSN == "" {
		logger.Warn("POSTGRES_DSN not set, falling back to in-memory repositories")
		return memory, func() {}
	}
	db, err := platformpostgres.Connect(ctx, cfg.PostgresDSN)
	if err != nil {
		logger.Warn("failed to connect to postgres, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("failed to unwrap postgres connection, falling back to memory", slog.String("error", err.Error()))
		return memory, func() {}
	}
	if err := migrations.Run(db); err != nil {
		logger.Warn("failed to migrate schema, falling back to memory", slog.String("error", err.Error()))
		_ = sqlDB.Close()
		return memory, func() {}
	}
	logger.Info("repositories configured with postgres")
	return Repositories{
		Orders:   orderspostgres.NewRepository(db),
		Sales:    salespostgres.NewRepository(db),
		Products: invpostgres.NewProductRepository(db),
		Receipts: invpostgres.NewReceiptRepository(db),
	}, func() { _ = sqlDB.Close() }
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(effectiveLogger(instruments)),
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
