package ports

import (
	"context"
	"errors"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrReceiptNotFound = errors.New("receipt not found")
)

// ProductRepository persists the stock ledger. GetByNameKey resolves product
// identity by normalized name.
type ProductRepository interface {
	Save(ctx context.Context, product *domain.Product) (*domain.Product, error)
	GetByID(ctx context.Context, id string) (*domain.Product, error)
	GetByNameKey(ctx context.Context, key string) (*domain.Product, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context) ([]*domain.Product, error)
}

// ReceiptRepository persists purchase receipts. Receipts are never deleted;
// voiding flips their status.
type ReceiptRepository interface {
	Save(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error)
	GetByID(ctx context.Context, id string) (*domain.Receipt, error)
	List(ctx context.Context) ([]*domain.Receipt, error)
}
