package ports

import (
	"context"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
)

// SaleSynchronizer creates the sale record backing a fulfilled order. It is
// invoked by the transition service immediately after a pending→fulfilled
// transition and must guarantee at most one sale per order.
type SaleSynchronizer interface {
	Synchronize(ctx context.Context, order *domain.Order) (saleCreated bool, err error)
}
