package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	ordersdomain "github.com/retailcore/backoffice/internal/domains/orders/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

type fakeSaleRepo struct {
	sales map[string]*domain.Sale
}

func newFakeSaleRepo() *fakeSaleRepo {
	return &fakeSaleRepo{sales: map[string]*domain.Sale{}}
}

func (f *fakeSaleRepo) Save(_ context.Context, sale *domain.Sale) (*domain.Sale, error) {
	clone := sale.Clone()
	f.sales[sale.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeSaleRepo) GetByID(_ context.Context, id string) (*domain.Sale, error) {
	if s, ok := f.sales[id]; ok {
		return s.Clone(), nil
	}
	return nil, ports.ErrNotFound
}

func (f *fakeSaleRepo) FindByOrderID(_ context.Context, orderID string) (*domain.Sale, error) {
	for _, s := range f.sales {
		if s.OrderID == orderID {
			return s.Clone(), nil
		}
	}
	return nil, ports.ErrNotFound
}

func (f *fakeSaleRepo) List(_ context.Context) ([]*domain.Sale, error) {
	var list []*domain.Sale
	for _, s := range f.sales {
		list = append(list, s.Clone())
	}
	return list, nil
}

func fulfilledOrder(t *testing.T) *ordersdomain.Order {
	t.Helper()
	order, err := ordersdomain.NewOrder("o-1", "c-1", []ordersdomain.LineItem{
		{ProductName: "vestido rojo", Size: "M", Color: "rojo", Quantity: 2, UnitPrice: decimal.NewFromInt(45)},
	})
	require.NoError(t, err)
	require.NoError(t, order.TransitionTo(ordersdomain.StatusFulfilled))
	return order
}

func TestSynchronize_CreatesSaleFromOrder(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewService(repo, identity.NewSequenceGenerator("sale"))

	created, err := svc.Synchronize(context.Background(), fulfilledOrder(t))
	require.NoError(t, err)
	require.True(t, created)

	sale, err := repo.FindByOrderID(context.Background(), "o-1")
	require.NoError(t, err)
	require.Equal(t, "c-1", sale.CustomerID)
	require.Equal(t, domain.StatusCompleted, sale.Status)
	require.True(t, sale.Total.Equal(decimal.NewFromInt(90)))
}

func TestSynchronize_AtMostOneSalePerOrder(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewService(repo, identity.NewSequenceGenerator("sale"))
	order := fulfilledOrder(t)

	created, err := svc.Synchronize(context.Background(), order)
	require.NoError(t, err)
	require.True(t, created)

	created, err = svc.Synchronize(context.Background(), order)
	require.NoError(t, err)
	require.False(t, created)

	sales, err := repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, sales, 1)
}

func TestVoidSale_FlipsStatusOnce(t *testing.T) {
	repo := newFakeSaleRepo()
	svc := NewService(repo, identity.NewSequenceGenerator("sale"))
	_, err := svc.Synchronize(context.Background(), fulfilledOrder(t))
	require.NoError(t, err)

	sale, err := svc.VoidSale(context.Background(), "sale-1")
	require.NoError(t, err)
	require.Equal(t, domain.StatusVoided, sale.Status)

	_, err = svc.VoidSale(context.Background(), "sale-1")
	require.ErrorIs(t, err, ErrSaleVoided)
}

func TestGetSale_NotFound(t *testing.T) {
	svc := NewService(newFakeSaleRepo(), identity.NewSequenceGenerator("sale"))

	_, err := svc.GetSale(context.Background(), "missing")
	require.ErrorIs(t, err, ports.ErrNotFound)
}
