package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/domains/orders/domain"
	"github.com/retailcore/backoffice/internal/domains/orders/ports"
)

// LineItem is the HTTP representation of one ordered variant.
type LineItem struct {
	ProductID   string          `json:"productId,omitempty"`
	ProductName string          `json:"productName,omitempty"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unitPrice"`
}

// Order is the HTTP representation of an order aggregate.
type Order struct {
	ID         string          `json:"id"`
	CustomerID string          `json:"customerId"`
	Lines      []LineItem      `json:"lines"`
	Status     string          `json:"status"`
	Total      decimal.Decimal `json:"total"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt,omitempty"`
}

// PlaceOrderRequest captures an inbound checkout payload.
type PlaceOrderRequest struct {
	CustomerID string     `json:"customerId"`
	Lines      []LineItem `json:"lines"`
}

// TransitionRequest names the target status for a lifecycle change.
type TransitionRequest struct {
	Target          string `json:"target"`
	ContinueOnError bool   `json:"continueOnError,omitempty"`
}

// TransitionResponse reports the transition outcome.
type TransitionResponse struct {
	Order       Order `json:"order"`
	SaleCreated bool  `json:"saleCreated"`
}

// ToPlaceOrderInput converts the transport payload into the application input.
func ToPlaceOrderInput(req PlaceOrderRequest) ports.PlaceOrderInput {
	lines := make([]domain.LineItem, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, domain.LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return ports.PlaceOrderInput{CustomerID: req.CustomerID, Lines: lines}
}

// ToTransitionInput converts the transport payload into the application input.
func ToTransitionInput(orderID string, req TransitionRequest) ports.TransitionInput {
	return ports.TransitionInput{
		OrderID:         orderID,
		Target:          domain.Status(req.Target),
		ContinueOnError: req.ContinueOnError,
	}
}

// FromDomainOrder maps a domain aggregate into a transport Order.
func FromDomainOrder(o *domain.Order) Order {
	lines := make([]LineItem, 0, len(o.Lines))
	for _, line := range o.Lines {
		lines = append(lines, LineItem{
			ProductID:   line.ProductID,
			ProductName: line.ProductName,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitPrice:   line.UnitPrice,
		})
	}
	return Order{
		ID:         o.ID,
		CustomerID: o.CustomerID,
		Lines:      lines,
		Status:     string(o.Status),
		Total:      o.Total(),
		CreatedAt:  o.CreatedAt,
		UpdatedAt:  o.UpdatedAt,
	}
}

// FromDomainOrderList maps a slice of domain aggregates to transport Orders.
func FromDomainOrderList(list []*domain.Order) []Order {
	resp := make([]Order, 0, len(list))
	for _, o := range list {
		resp = append(resp, FromDomainOrder(o))
	}
	return resp
}

// FromTransitionResult maps the application outcome to the transport response.
func FromTransitionResult(result *ports.TransitionResult) TransitionResponse {
	return TransitionResponse{
		Order:       FromDomainOrder(result.Order),
		SaleCreated: result.SaleCreated,
	}
}
