package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"

	ordersdomain "github.com/retailcore/backoffice/internal/domains/orders/domain"
	ordersports "github.com/retailcore/backoffice/internal/domains/orders/ports"
)

const (
	// FulfillOrderActivityName runs the pending→fulfilled transition through
	// the centralized transition service.
	FulfillOrderActivityName = "orders.activities.FulfillOrder"
)

// FulfillOrderInput names the order to fulfill.
type FulfillOrderInput struct {
	OrderID string
}

// Activities groups activities that operate on the orders bounded context.
type Activities struct {
	service ordersports.Service
}

// NewActivities wires the order service into the Temporal activities bundle.
func NewActivities(service ordersports.Service) *Activities {
	return &Activities{service: service}
}

// FulfillOrder applies the fulfillment transition, creating the backing sale.
// The transition service is idempotent with respect to the sale, so a retry
// after a partial failure never produces a second sale.
func (a *Activities) FulfillOrder(ctx context.Context, input FulfillOrderInput) (*ordersports.TransitionResult, error) {
	logger := activity.GetLogger(ctx)
	if a == nil || a.service == nil {
		logger.Error("order fulfillment activity not initialized", "orderId", input.OrderID)
		return nil, errors.New("order fulfillment activity not initialized")
	}
	logger.Info("FulfillOrder activity started", "orderId", input.OrderID)
	result, err := a.service.Transition(ctx, ordersports.TransitionInput{
		OrderID: input.OrderID,
		Target:  ordersdomain.StatusFulfilled,
	})
	if err != nil {
		logger.Error("FulfillOrder activity failed", "orderId", input.OrderID, "error", err)
		return nil, err
	}
	logger.Info("FulfillOrder activity completed", "orderId", input.OrderID, "saleCreated", result.SaleCreated)
	return result, nil
}
