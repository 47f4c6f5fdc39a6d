package application

import (
	"context"
	"errors"

	ordersdomain "github.com/retailcore/backoffice/internal/domains/orders/domain"
	ordersports "github.com/retailcore/backoffice/internal/domains/orders/ports"
	"github.com/retailcore/backoffice/internal/domains/sales/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

// Service maintains the sales ledger. It implements the orders
// SaleSynchronizer port: every pending→fulfilled transition flows through
// Synchronize.
type Service struct {
	repo ports.Repository
	ids  identity.Generator
}

// NewService wires the sales service with its dependencies.
func NewService(repo ports.Repository, ids identity.Generator) *Service {
	return &Service{repo: repo, ids: ids}
}

// Synchronize creates the sale backing a fulfilled order. If a sale already
// references the order it reports saleCreated=false without error, keeping
// the at-most-one invariant under repeated delivery.
func (s *Service) Synchronize(ctx context.Context, order *ordersdomain.Order) (bool, error) {
	if order == nil {
		return false, errors.New("order is nil")
	}
	existing, err := s.repo.FindByOrderID(ctx, order.ID)
	if err != nil && !errors.Is(err, ports.ErrNotFound) {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	sale, err := domain.NewSale(s.ids.NewID(), order.ID, order.CustomerID, saleLines(order))
	if err != nil {
		return false, mapError(err)
	}
	if _, err := s.repo.Save(ctx, sale); err != nil {
		return false, err
	}
	return true, nil
}

// GetSale loads a single sale.
func (s *Service) GetSale(ctx context.Context, id string) (*domain.Sale, error) {
	return s.repo.GetByID(ctx, id)
}

// ListSales exposes the sales ledger.
func (s *Service) ListSales(ctx context.Context) ([]*domain.Sale, error) {
	return s.repo.List(ctx)
}

// VoidSale flips a completed sale to voided, the only mutation allowed on a
// persisted sale.
func (s *Service) VoidSale(ctx context.Context, id string) (*domain.Sale, error) {
	sale, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := sale.Void(); err != nil {
		return nil, mapError(err)
	}
	saved, err := s.repo.Save(ctx, sale)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func saleLines(order *ordersdomain.Order) []domain.LineItem {
	lines := make([]domain.LineItem, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, domain.LineItem{
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Size:        l.Size,
			Color:       l.Color,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
		})
	}
	return lines
}

var _ ports.Service = (*Service)(nil)
var _ ordersports.SaleSynchronizer = (*Service)(nil)
