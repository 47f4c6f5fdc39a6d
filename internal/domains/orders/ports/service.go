package ports

import (
	"context"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
)

// PlaceOrderInput carries a checkout request.
type PlaceOrderInput struct {
	CustomerID string
	Lines      []domain.LineItem
}

// TransitionInput names the order and the target status. ContinueOnError
// keeps a fulfilled status even when sale synchronization fails; by default
// the status mutation is rolled back.
type TransitionInput struct {
	OrderID         string
	Target          domain.Status
	ContinueOnError bool
}

// TransitionResult is the outcome of a successful transition.
type TransitionResult struct {
	Order       *domain.Order
	SaleCreated bool
}

// Service exposes the order lifecycle use cases. Transition is the only
// sanctioned way to change an order's status.
type Service interface {
	PlaceOrder(ctx context.Context, input PlaceOrderInput) (*domain.Order, error)
	Transition(ctx context.Context, input TransitionInput) (*TransitionResult, error)
	GetOrder(ctx context.Context, id string) (*domain.Order, error)
	ListOrders(ctx context.Context) ([]*domain.Order, error)
}
