package domain

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status enumerates the order lifecycle.
type Status string

const (
	StatusPending   Status = "pending"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

var (
	ErrEmptyCustomer     = errors.New("order customer is required")
	ErrEmptyLines        = errors.New("order must contain at least one line item")
	ErrInvalidQuantity   = errors.New("line quantity must be greater than zero")
	ErrUnknownStatus     = errors.New("order status is unknown")
	ErrIllegalTransition = errors.New("illegal order status transition")
)

// LineItem is one ordered product variant.
type LineItem struct {
	ProductID   string
	ProductName string
	Size        string
	Color       string
	Quantity    int64
	UnitPrice   decimal.Decimal
}

// Order is the customer order aggregate. Status is only ever written through
// TransitionTo; orders are never deleted, cancelled records persist.
type Order struct {
	ID         string
	CustomerID string
	Lines      []LineItem
	Status     Status
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewOrder validates and constructs a pending order.
func NewOrder(id, customerID string, lines []LineItem) (*Order, error) {
	if strings.TrimSpace(customerID) == "" {
		return nil, ErrEmptyCustomer
	}
	if len(lines) == 0 {
		return nil, ErrEmptyLines
	}
	for _, line := range lines {
		if line.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
	}
	return &Order{
		ID:         id,
		CustomerID: customerID,
		Lines:      append([]LineItem{}, lines...),
		Status:     StatusPending,
	}, nil
}

// TransitionTo mutates the status when the transition table allows it.
func (o *Order) TransitionTo(target Status) error {
	allowed, reason := CanTransition(o.Status, target)
	if !allowed {
		return fmt.Errorf("%w: %s", ErrIllegalTransition, reason)
	}
	o.Status = target
	o.UpdatedAt = time.Now()
	return nil
}

// Total sums quantity times unit price across all lines.
func (o *Order) Total() decimal.Decimal {
	total := decimal.Zero
	for _, line := range o.Lines {
		total = total.Add(line.UnitPrice.Mul(decimal.NewFromInt(line.Quantity)))
	}
	return total
}

// Clone returns a deep copy so callers can mutate freely.
func (o *Order) Clone() *Order {
	clone := *o
	clone.Lines = append([]LineItem{}, o.Lines...)
	return &clone
}
