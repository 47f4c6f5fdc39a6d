package orders

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	orderactivities "github.com/retailcore/backoffice/internal/platform/temporal/activities/orders"

	ordersports "github.com/retailcore/backoffice/internal/domains/orders/ports"
)

const (
	// OrderFulfillmentWorkflowName is the public identifier for registering the workflow.
	OrderFulfillmentWorkflowName = "orders.workflows.Fulfillment"
	// OrderFulfillmentTaskQueue is the queue consumed by the worker processing order workflows.
	OrderFulfillmentTaskQueue = "ORDER_FULFILLMENT"
)

// OrderFulfillmentWorkflowInput captures the payload required to fulfill an order.
type OrderFulfillmentWorkflowInput struct {
	OrderID string
	TraceID string
}

// OrderFulfillmentWorkflow durably executes the fulfillment transition. The
// activity retries on transient failure; illegal transitions and missing
// orders are non-retryable.
func OrderFulfillmentWorkflow(ctx workflow.Context, input OrderFulfillmentWorkflowInput) (*ordersports.TransitionResult, error) {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderFulfillmentWorkflow started", withTraceID(input.TraceID, "orderId", input.OrderID)...)

	options := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, options)

	var result ordersports.TransitionResult
	err := workflow.ExecuteActivity(ctx, orderactivities.FulfillOrderActivityName,
		orderactivities.FulfillOrderInput{OrderID: input.OrderID}).Get(ctx, &result)
	if err != nil {
		logger.Error("OrderFulfillmentWorkflow failed", withTraceID(input.TraceID, "orderId", input.OrderID, "error", err)...)
		return nil, err
	}
	logger.Info("OrderFulfillmentWorkflow completed", withTraceID(input.TraceID, "orderId", input.OrderID, "saleCreated", result.SaleCreated)...)
	return &result, nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
