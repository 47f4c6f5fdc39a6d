package ports

import (
	"context"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
)

// Service exposes the sales ledger use cases to adapters.
type Service interface {
	GetSale(ctx context.Context, id string) (*domain.Sale, error)
	ListSales(ctx context.Context) ([]*domain.Sale, error)
	VoidSale(ctx context.Context, id string) (*domain.Sale, error)
}
