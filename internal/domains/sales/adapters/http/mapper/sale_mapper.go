package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
)

// LineItem is the HTTP representation of one sold variant.
type LineItem struct {
	ProductID   string          `json:"productId,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Sale is the HTTP representation of a sales ledger entry.
type Sale struct {
	ID         string          `json:"id"`
	OrderID    string          `json:"orderId,omitempty"`
	CustomerID string          `json:"customerId"`
	Lines      []LineItem      `json:"lines"`
	Total      decimal.Decimal `json:"total"`
	Status     string          `json:"status"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt,omitempty"`
}

// FromDomainSale maps a domain aggregate into a transport Sale.
func FromDomainSale(s *domain.Sale) Sale {
	lines := make([]LineItem, 0, len(s.Lines))
	for _, line := range s.Lines {
		lines = append(lines, LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return Sale{
		ID:         s.ID,
		OrderID:    s.OrderID,
		CustomerID: s.CustomerID,
		Lines:      lines,
		Total:      s.Total,
		Status:     string(s.Status),
		CreatedAt:  s.CreatedAt,
		UpdatedAt:  s.UpdatedAt,
	}
}

// FromDomainSaleList maps a slice of domain aggregates to transport Sales.
func FromDomainSaleList(list []*domain.Sale) []Sale {
	resp := make([]Sale, 0, len(list))
	for _, s := range list {
		resp = append(resp, FromDomainSale(s))
	}
	return resp
}
