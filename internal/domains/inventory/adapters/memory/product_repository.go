package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository is an in-memory stock ledger adapter.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[string]*domain.Product
}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{products: map[string]*domain.Product{}}
}

func (r *ProductRepository) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	clone := product.Clone()
	now := time.Now()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.products[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *ProductRepository) GetByID(_ context.Context, id string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return product.Clone(), nil
}

func (r *ProductRepository) GetByNameKey(_ context.Context, key string) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, product := range r.products {
		if product.NameKey == key {
			return product.Clone(), nil
		}
	}
	return nil, ports.ErrProductNotFound
}

func (r *ProductRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *ProductRepository) List(_ context.Context) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		list = append(list, product.Clone())
	}
	return list, nil
}
