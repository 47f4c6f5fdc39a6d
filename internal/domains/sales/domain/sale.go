package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the sale lifecycle. Completed sales are only ever
// mutated to voided.
type Status string

const (
	StatusCompleted Status = "completed"
	StatusVoided    Status = "voided"
)

var (
	ErrEmptyCustomer     = errors.New("sale customer is required")
	ErrEmptyLines        = errors.New("sale must contain at least one line item")
	ErrSaleAlreadyVoided = errors.New("sale is already voided")
)

// LineItem is one sold product variant.
type LineItem struct {
	ProductID   string
	ProductName string
	Size        string
	Color       string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Sale is the ledger record derived from a fulfilled order. OrderID is the
// originating order when there is one; at most one sale may reference a
// given order.
type Sale struct {
	ID         string
	OrderID    string
	CustomerID string
	Lines      []LineItem
	Total      decimal.Decimal
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewSale validates, totals, and constructs a completed sale.
func NewSale(id, orderID, customerID string, lines []LineItem) (*Sale, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrEmptyCustomer
	}
	if len(lines) == 0 {
		return nil, ErrEmptyLines
	}
	total := decimal.Zero
	for _, line := range lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return &Sale{
		ID:         id,
		OrderID:    orderID,
		CustomerID: customerID,
		Lines:      append([]LineItem{}, lines...),
		Total:      total,
		Status:     StatusCompleted,
	}, nil
}

// Void flips the sale to voided. A sale can only be voided once.
func (s *Sale) Void() error {
	if s.Status == StatusVoided {
		return ErrSaleAlreadyVoided
	}
	s.Status = StatusVoided
	return nil
}

// Clone returns a deep copy so callers can mutate freely.
func (s *Sale) Clone() *Sale {
	clone := *s
	clone.Lines = append([]LineItem{}, s.Lines...)
	return &clone
}
