package ports

import (
	"context"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
)

// CreateReceiptInput carries a supplier delivery as entered by the operator.
type CreateReceiptInput struct {
	SupplierID string
	Lines      []domain.ReceiptLine
}

// LineIssue reports a non-fatal anomaly while applying or reverting one
// receipt line.
type LineIssue struct {
	Line   int
	Reason string
}

// ReceiptReport summarizes the stock-ledger effect of applying or voiding a
// receipt. Clamped counts reversals floored at zero; Issues lists lines that
// were skipped or partially honored.
type ReceiptReport struct {
	Receipt *domain.Receipt
	Applied int
	Clamped int
	Issues  []LineIssue
}

// Service exposes the inventory reconciliation use cases to adapters.
type Service interface {
	ApplyLine(ctx context.Context, line domain.ReceiptLine) (*domain.Product, error)
	CreateReceipt(ctx context.Context, input CreateReceiptInput) (*ReceiptReport, error)
	VoidReceipt(ctx context.Context, id string) (*ReceiptReport, error)
	MergeCatalog(ctx context.Context) ([]*domain.Product, error)
	GetProduct(ctx context.Context, id string) (*domain.Product, error)
	ListProducts(ctx context.Context) ([]*domain.Product, error)
	GetReceipt(ctx context.Context, id string) (*domain.Receipt, error)
	ListReceipts(ctx context.Context) ([]*domain.Receipt, error)
}
