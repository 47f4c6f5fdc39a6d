package ports

import (
	"context"
	"errors"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
)

var ErrNotFound = errors.New("order not found")

// Repository persists customer orders. There is no Delete: cancelled orders
// remain on record.
type Repository interface {
	Save(ctx context.Context, order *domain.Order) (*domain.Order, error)
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	List(ctx context.Context) ([]*domain.Order, error)
}
