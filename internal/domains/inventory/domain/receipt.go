package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// ReceiptStatus tracks whether a purchase receipt's stock effect is live.
type ReceiptStatus string

const (
	ReceiptStatusReceived ReceiptStatus = "received"
	ReceiptStatusVoided   ReceiptStatus = "voided"
)

var (
	ErrEmptyReceipt         = errors.New("receipt must contain at least one line")
	ErrEmptyLineProductName = errors.New("receipt line product name is required")
	ErrReceiptAlreadyVoided = errors.New("receipt is already voided")
)

// ReceiptLine is the atomic unit of stock increase: one (product name, size,
// color) path as entered by the operator. ProductName is free text; identity
// resolution happens at apply time via NormalizeName.
type ReceiptLine struct {
	ProductName string
	CategoryID  string
	Size        string
	Color       string
	Quantity    int64
	UnitCost    decimal.Decimal
	SalePrice   decimal.Decimal
}

// Receipt records a supplier delivery. Voiding a receipt must undo exactly
// the stock its lines applied.
type Receipt struct {
	ID         string
	SupplierID string
	Status     ReceiptStatus
	Lines      []ReceiptLine
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewReceipt validates and constructs a received receipt.
func NewReceipt(id, supplierID string, lines []ReceiptLine) (*Receipt, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyReceipt
	}
	for _, line := range lines {
		if strings.TrimSpace(line.ProductName) == "" {
			return nil, ErrEmptyLineProductName
		}
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	return &Receipt{
		ID:         id,
		SupplierID: supplierID,
		Status:     ReceiptStatusReceived,
		Lines:      append([]ReceiptLine{}, lines...),
	}, nil
}

// Clone returns a deep copy so callers can mutate freely.
func (r *Receipt) Clone() *Receipt {
	clone := *r
	clone.Lines = append([]ReceiptLine{}, r.Lines...)
	return &clone
}

// Void marks the receipt's stock effect as reversed. A receipt can only be
// voided once.
func (r *Receipt) Void() error {
	if r.Status == ReceiptStatusVoided {
		return ErrReceiptAlreadyVoided
	}
	r.Status = ReceiptStatusVoided
	return nil
}
