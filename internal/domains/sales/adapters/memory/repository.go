package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory sales ledger adapter.
type Repository struct {
	mu    sync.RWMutex
	sales map[string]*domain.Sale
}

func NewRepository() *Repository {
	return &Repository{sales: map[string]*domain.Sale{}}
}

func (r *Repository) Save(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if sale == nil {
		return nil, errors.New("sale is nil")
	}
	clone := sale.Clone()
	now := time.Now()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sales[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *Repository) GetByID(_ context.Context, id string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	sale, ok := r.sales[id]
	if !ok {
		return nil, ports.ErrNotFound
	}
	return sale.Clone(), nil
}

func (r *Repository) FindByOrderID(_ context.Context, orderID string) (*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, sale := range r.sales {
		if sale.OrderID == orderID {
			return sale.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) List(_ context.Context) ([]*domain.Sale, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Sale, 0, len(r.sales))
	for _, sale := range r.sales {
		list = append(list, sale.Clone())
	}
	return list, nil
}
