package memory

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

var _ ports.ReceiptRepository = (*ReceiptRepository)(nil)

// ReceiptRepository is an in-memory purchase receipt adapter.
type ReceiptRepository struct {
	mu       sync.RWMutex
	receipts map[string]*domain.Receipt
}

func NewReceiptRepository() *ReceiptRepository {
	return &ReceiptRepository{receipts: map[string]*domain.Receipt{}}
}

func (r *ReceiptRepository) Save(_ context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	if receipt == nil {
		return nil, errors.New("receipt is nil")
	}
	clone := receipt.Clone()
	now := time.Now()
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = now
	}
	clone.UpdatedAt = now
	r.mu.Lock()
	defer r.mu.Unlock()
	r.receipts[clone.ID] = clone
	return clone.Clone(), nil
}

func (r *ReceiptRepository) GetByID(_ context.Context, id string) (*domain.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	receipt, ok := r.receipts[id]
	if !ok {
		return nil, ports.ErrReceiptNotFound
	}
	return receipt.Clone(), nil
}

func (r *ReceiptRepository) List(_ context.Context) ([]*domain.Receipt, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	list := make([]*domain.Receipt, 0, len(r.receipts))
	for _, receipt := range r.receipts {
		list = append(list, receipt.Clone())
	}
	return list, nil
}
