package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: map[string]*domain.Product{}}
}

func (f *fakeProductRepo) Save(_ context.Context, product *domain.Product) (*domain.Product, error) {
	clone := product.Clone()
	f.products[product.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*domain.Product, error) {
	if p, ok := f.products[id]; ok {
		return p.Clone(), nil
	}
	return nil, ports.ErrProductNotFound
}

func (f *fakeProductRepo) GetByNameKey(_ context.Context, key string) (*domain.Product, error) {
	for _, p := range f.products {
		if p.NameKey == key {
			return p.Clone(), nil
		}
	}
	return nil, ports.ErrProductNotFound
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	if _, ok := f.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) List(_ context.Context) ([]*domain.Product, error) {
	var list []*domain.Product
	for _, p := range f.products {
		list = append(list, p.Clone())
	}
	return list, nil
}

type fakeReceiptRepo struct {
	receipts map[string]*domain.Receipt
}

func newFakeReceiptRepo() *fakeReceiptRepo {
	return &fakeReceiptRepo{receipts: map[string]*domain.Receipt{}}
}

func (f *fakeReceiptRepo) Save(_ context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	clone := receipt.Clone()
	f.receipts[receipt.ID] = clone
	return clone.Clone(), nil
}

func (f *fakeReceiptRepo) GetByID(_ context.Context, id string) (*domain.Receipt, error) {
	if r, ok := f.receipts[id]; ok {
		return r.Clone(), nil
	}
	return nil, ports.ErrReceiptNotFound
}

func (f *fakeReceiptRepo) List(_ context.Context) ([]*domain.Receipt, error) {
	var list []*domain.Receipt
	for _, r := range f.receipts {
		list = append(list, r.Clone())
	}
	return list, nil
}

func newTestService() (*Service, *fakeProductRepo, *fakeReceiptRepo) {
	products := newFakeProductRepo()
	receipts := newFakeReceiptRepo()
	return NewService(products, receipts, identity.NewSequenceGenerator("inv")), products, receipts
}

func redDressLine(qty int64) domain.ReceiptLine {
	return domain.ReceiptLine{
		ProductName: "Vestido Rojo",
		CategoryID:  "cat-dresses",
		Size:        "M",
		Color:       "rojo",
		Quantity:    qty,
		UnitCost:    decimal.NewFromInt(20),
		SalePrice:   decimal.NewFromInt(45),
	}
}

func TestApplyLine_CreatesProductWithStock(t *testing.T) {
	svc, products, _ := newTestService()

	product, err := svc.ApplyLine(context.Background(), redDressLine(10))
	require.NoError(t, err)
	require.Equal(t, "Vestido Rojo", product.Name)
	require.Equal(t, "vestido rojo", product.NameKey)
	require.Equal(t, int64(10), product.StockAt("M", "rojo"))
	require.Equal(t, domain.StatusActive, product.Status)
	require.True(t, product.Price.Equal(decimal.NewFromInt(45)))

	stored, err := products.GetByNameKey(context.Background(), "vestido rojo")
	require.NoError(t, err)
	require.Equal(t, int64(10), stored.TotalStock())
}

func TestApplyLine_ResolvesExistingProductByNormalizedName(t *testing.T) {
	svc, products, _ := newTestService()

	first, err := svc.ApplyLine(context.Background(), redDressLine(10))
	require.NoError(t, err)

	line := redDressLine(5)
	line.ProductName = "  VESTIDO ROJO "
	line.CategoryID = ""
	second, err := svc.ApplyLine(context.Background(), line)
	require.NoError(t, err)
	require.Equal(t, first.ID, second.ID)
	require.Equal(t, int64(15), second.StockAt("M", "rojo"))

	list, err := products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)
}

func TestApplyLine_MissingCategoryPersistsNothing(t *testing.T) {
	svc, products, _ := newTestService()

	line := redDressLine(10)
	line.CategoryID = ""
	_, err := svc.ApplyLine(context.Background(), line)
	require.ErrorIs(t, err, ErrMissingCategory)

	list, err := products.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestCreateReceipt_LinesAreIndependent(t *testing.T) {
	svc, products, receipts := newTestService()

	bad := domain.ReceiptLine{ProductName: "Falda Azul", Quantity: 3}
	report, err := svc.CreateReceipt(context.Background(), ports.CreateReceiptInput{
		SupplierID: "sup-1",
		Lines:      []domain.ReceiptLine{redDressLine(10), bad, redDressLine(5)},
	})
	require.NoError(t, err)
	require.Equal(t, 2, report.Applied)
	require.Len(t, report.Issues, 1)
	require.Equal(t, 1, report.Issues[0].Line)
	require.Contains(t, report.Issues[0].Reason, "category")

	product, err := products.GetByNameKey(context.Background(), "vestido rojo")
	require.NoError(t, err)
	require.Equal(t, int64(15), product.StockAt("M", "rojo"))

	stored, err := receipts.GetByID(context.Background(), report.Receipt.ID)
	require.NoError(t, err)
	require.Equal(t, domain.ReceiptStatusReceived, stored.Status)
	require.Len(t, stored.Lines, 3)
}

func TestVoidReceipt_ReversesExactly(t *testing.T) {
	svc, products, _ := newTestService()

	report, err := svc.CreateReceipt(context.Background(), ports.CreateReceiptInput{
		SupplierID: "sup-1",
		Lines:      []domain.ReceiptLine{redDressLine(10)},
	})
	require.NoError(t, err)

	// Stock arriving outside this receipt must survive the reversal.
	_, err = svc.ApplyLine(context.Background(), redDressLine(5))
	require.NoError(t, err)

	voided, err := svc.VoidReceipt(context.Background(), report.Receipt.ID)
	require.NoError(t, err)
	require.Equal(t, 1, voided.Applied)
	require.Zero(t, voided.Clamped)
	require.Equal(t, domain.ReceiptStatusVoided, voided.Receipt.Status)

	product, err := products.GetByNameKey(context.Background(), "vestido rojo")
	require.NoError(t, err)
	require.Equal(t, int64(5), product.StockAt("M", "rojo"))
	require.Equal(t, domain.StatusActive, product.Status)
}

func TestVoidReceipt_ClampsAtZeroAndDeactivates(t *testing.T) {
	svc, products, _ := newTestService()

	report, err := svc.CreateReceipt(context.Background(), ports.CreateReceiptInput{
		SupplierID: "sup-1",
		Lines:      []domain.ReceiptLine{redDressLine(10)},
	})
	require.NoError(t, err)

	// Drain part of the received stock so the reversal overshoots.
	product, err := products.GetByNameKey(context.Background(), "vestido rojo")
	require.NoError(t, err)
	_, err = product.RemoveStock("M", "rojo", 6)
	require.NoError(t, err)
	_, err = products.Save(context.Background(), product)
	require.NoError(t, err)

	voided, err := svc.VoidReceipt(context.Background(), report.Receipt.ID)
	require.NoError(t, err)
	require.Equal(t, 1, voided.Applied)
	require.Equal(t, 1, voided.Clamped)

	product, err = products.GetByNameKey(context.Background(), "vestido rojo")
	require.NoError(t, err)
	require.Equal(t, int64(0), product.TotalStock())
	require.Equal(t, domain.StatusInactive, product.Status)
}

func TestVoidReceipt_AlreadyVoided(t *testing.T) {
	svc, _, _ := newTestService()

	report, err := svc.CreateReceipt(context.Background(), ports.CreateReceiptInput{
		SupplierID: "sup-1",
		Lines:      []domain.ReceiptLine{redDressLine(10)},
	})
	require.NoError(t, err)

	_, err = svc.VoidReceipt(context.Background(), report.Receipt.ID)
	require.NoError(t, err)

	_, err = svc.VoidReceipt(context.Background(), report.Receipt.ID)
	require.ErrorIs(t, err, ErrReceiptVoided)
}

func TestVoidReceipt_MissingProductReported(t *testing.T) {
	svc, products, _ := newTestService()

	report, err := svc.CreateReceipt(context.Background(), ports.CreateReceiptInput{
		SupplierID: "sup-1",
		Lines:      []domain.ReceiptLine{redDressLine(10)},
	})
	require.NoError(t, err)

	list, err := products.List(context.Background())
	require.NoError(t, err)
	require.NoError(t, products.Delete(context.Background(), list[0].ID))

	voided, err := svc.VoidReceipt(context.Background(), report.Receipt.ID)
	require.NoError(t, err)
	require.Zero(t, voided.Applied)
	require.Len(t, voided.Issues, 1)
	require.Equal(t, domain.ReceiptStatusVoided, voided.Receipt.Status)
}

func TestMergeCatalog_CollapsesDuplicates(t *testing.T) {
	svc, products, _ := newTestService()

	a, err := domain.NewProduct("p-1", "Vestido Rojo", "cat-dresses")
	require.NoError(t, err)
	require.NoError(t, a.AddStock("M", "rojo", 10))
	_, err = products.Save(context.Background(), a)
	require.NoError(t, err)

	b, err := domain.NewProduct("p-2", "vestido rojo", "cat-dresses")
	require.NoError(t, err)
	require.NoError(t, b.AddStock("M", "rojo", 5))
	_, err = products.Save(context.Background(), b)
	require.NoError(t, err)

	merged, err := svc.MergeCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, merged, 1)
	require.Equal(t, int64(15), merged[0].StockAt("M", "rojo"))

	list, err := products.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 1)

	again, err := svc.MergeCatalog(context.Background())
	require.NoError(t, err)
	require.Len(t, again, 1)
	require.Equal(t, int64(15), again[0].StockAt("M", "rojo"))
}
