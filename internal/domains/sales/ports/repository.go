package ports

import (
	"context"
	"errors"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
)

var ErrNotFound = errors.New("sale not found")

// Repository persists sales. FindByOrderID backs the at-most-one-sale-per-
// order invariant.
type Repository interface {
	Save(ctx context.Context, sale *domain.Sale) (*domain.Sale, error)
	GetByID(ctx context.Context, id string) (*domain.Sale, error)
	FindByOrderID(ctx context.Context, orderID string) (*domain.Sale, error)
	List(ctx context.Context) ([]*domain.Sale, error)
}
