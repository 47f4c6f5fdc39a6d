package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/retailcore/backoffice/internal/app/api"
	ordersnotify "github.com/retailcore/backoffice/internal/domains/orders/adapters/notify"
	ordersobs "github.com/retailcore/backoffice/internal/domains/orders/adapters/observability"
	ordersapp "github.com/retailcore/backoffice/internal/domains/orders/application"
	salesapp "github.com/retailcore/backoffice/internal/domains/sales/application"
	platformobservability "github.com/retailcore/backoffice/internal/platform/observability"
	orderactivities "github.com/retailcore/backoffice/internal/platform/temporal/activities/orders"
	orderworkflows "github.com/retailcore/backoffice/internal/platform/temporal/workflows/orders"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

func main() {
	ctx := context.Background()
	const serviceName = "backoffice-worker"
	cfg := api.LoadConfig()

	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	repos, cleanupRepos := api.BuildRepositories(ctx, cfg, logger)
	defer cleanupRepos()
	ids := identity.UUIDGenerator{}

	salesService := salesapp.NewService(repos.Sales, ids)
	notifier := ordersnotify.NewSlogNotifier(logger)
	orderService := ordersobs.New(
		ordersapp.NewService(repos.Orders, salesService, notifier, ids),
		ordersobs.WithLogger(logger),
		ordersobs.WithTracer(instruments.Tracer("internal.orders.application")),
		ordersobs.WithMeter(instruments.Meter("internal.orders.application")),
	)
	activities := orderactivities.NewActivities(orderService)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderFulfillmentTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderFulfillmentWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderFulfillmentWorkflowName})
	w.RegisterActivityWithOptions(activities.FulfillOrder, activity.RegisterOptions{Name: orderactivities.FulfillOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderFulfillmentTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}
