package application

import (
	"context"
	"errors"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
	"github.com/retailcore/backoffice/internal/shared/identity"
)

// Service is the inventory reconciliation engine: it applies purchase
// receipts to the stock ledger, reverses them when a receipt is voided, and
// keeps product status derived from aggregate stock.
type Service struct {
	products ports.ProductRepository
	receipts ports.ReceiptRepository
	ids      identity.Generator
}

// NewService wires the reconciliation engine with its dependencies.
func NewService(products ports.ProductRepository, receipts ports.ReceiptRepository, ids identity.Generator) *Service {
	return &Service{products: products, receipts: receipts, ids: ids}
}

// ApplyLine increases the stock path named by a single receipt line,
// creating the product, variant, or color entry on demand. Creating a new
// product requires the line to carry a category; without one nothing is
// persisted.
func (s *Service) ApplyLine(ctx context.Context, line domain.ReceiptLine) (*domain.Product, error) {
	key := domain.NormalizeName(line.ProductName)
	product, err := s.products.GetByNameKey(ctx, key)
	switch {
	case errors.Is(err, ports.ErrProductNotFound):
		product, err = domain.NewProduct(s.ids.NewID(), line.ProductName, line.CategoryID)
		if err != nil {
			return nil, mapError(err)
		}
	case err != nil:
		return nil, err
	}
	if err := product.AddStock(line.Size, line.Color, line.Quantity); err != nil {
		return nil, mapError(err)
	}
	mergeLineFields(product, line)
	product.RecomputeStatus()
	saved, err := s.products.Save(ctx, product)
	if err != nil {
		return nil, err
	}
	return saved, nil
}

// CreateReceipt persists a supplier receipt and applies each of its lines to
// the stock ledger. Lines are independent units of work: a failing line is
// reported in the result and does not roll back lines already applied.
func (s *Service) CreateReceipt(ctx context.Context, input ports.CreateReceiptInput) (*ports.ReceiptReport, error) {
	receipt, err := domain.NewReceipt(s.ids.NewID(), input.SupplierID, input.Lines)
	if err != nil {
		return nil, mapError(err)
	}
	saved, err := s.receipts.Save(ctx, receipt)
	if err != nil {
		return nil, err
	}
	report := &ports.ReceiptReport{Receipt: saved}
	for i, line := range saved.Lines {
		if _, err := s.ApplyLine(ctx, line); err != nil {
			report.Issues = append(report.Issues, ports.LineIssue{Line: i, Reason: err.Error()})
			continue
		}
		report.Applied++
	}
	return report, nil
}

// VoidReceipt reverses a receipt's effect on the stock ledger. Each line's
// (product, size, color) path is re-derived from the original line data and
// decreased by the original quantity, clamping at zero. Missing paths are
// reported and skipped; the rest of the reversal proceeds. Status of every
// touched product is recomputed afterwards.
func (s *Service) VoidReceipt(ctx context.Context, id string) (*ports.ReceiptReport, error) {
	receipt, err := s.receipts.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := receipt.Void(); err != nil {
		return nil, mapError(err)
	}
	report := &ports.ReceiptReport{}
	touched := map[string]*domain.Product{}
	for i, line := range receipt.Lines {
		key := domain.NormalizeName(line.ProductName)
		product, ok := touched[key]
		if !ok {
			product, err = s.products.GetByNameKey(ctx, key)
			if errors.Is(err, ports.ErrProductNotFound) {
				report.Issues = append(report.Issues, ports.LineIssue{Line: i, Reason: "product no longer exists"})
				continue
			}
			if err != nil {
				return nil, err
			}
			touched[key] = product
		}
		clamped, err := product.RemoveStock(line.Size, line.Color, line.Quantity)
		if errors.Is(err, domain.ErrStockPathMissing) {
			report.Issues = append(report.Issues, ports.LineIssue{Line: i, Reason: "stock path no longer exists"})
			continue
		}
		if err != nil {
			return nil, mapError(err)
		}
		if clamped {
			report.Clamped++
		}
		report.Applied++
	}
	for _, product := range touched {
		product.RecomputeStatus()
		if _, err := s.products.Save(ctx, product); err != nil {
			return nil, err
		}
	}
	saved, err := s.receipts.Save(ctx, receipt)
	if err != nil {
		return nil, err
	}
	report.Receipt = saved
	return report, nil
}

// MergeCatalog collapses duplicate products that share a normalized name,
// persisting the merged survivors and deleting absorbed records. Running it
// on an already-merged catalog changes nothing.
func (s *Service) MergeCatalog(ctx context.Context) ([]*domain.Product, error) {
	products, err := s.products.List(ctx)
	if err != nil {
		return nil, err
	}
	merged := domain.Merge(products)
	surviving := make(map[string]bool, len(merged))
	for _, p := range merged {
		surviving[p.ID] = true
		if _, err := s.products.Save(ctx, p); err != nil {
			return nil, err
		}
	}
	for _, p := range products {
		if surviving[p.ID] {
			continue
		}
		if err := s.products.Delete(ctx, p.ID); err != nil && !errors.Is(err, ports.ErrProductNotFound) {
			return nil, err
		}
	}
	return merged, nil
}

// GetProduct loads a single product.
func (s *Service) GetProduct(ctx context.Context, id string) (*domain.Product, error) {
	return s.products.GetByID(ctx, id)
}

// ListProducts exposes the whole stock ledger.
func (s *Service) ListProducts(ctx context.Context) ([]*domain.Product, error) {
	return s.products.List(ctx)
}

// GetReceipt loads a single receipt.
func (s *Service) GetReceipt(ctx context.Context, id string) (*domain.Receipt, error) {
	return s.receipts.GetByID(ctx, id)
}

// ListReceipts exposes all receipts.
func (s *Service) ListReceipts(ctx context.Context) ([]*domain.Receipt, error) {
	return s.receipts.List(ctx)
}

// Non-stock fields follow merge-by-presence: an incoming blank never
// overwrites an existing value.
func mergeLineFields(product *domain.Product, line domain.ReceiptLine) {
	if !line.SalePrice.IsZero() {
		product.Price = line.SalePrice
	}
}

var _ ports.Service = (*Service)(nil)
