package mapper

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

// ColorStock is the HTTP representation of one color's quantity.
type ColorStock struct {
	Color    string `json:"color"`
	Quantity int64  `json:"quantity"`
}

// Variant is the HTTP representation of one size and its colors.
type Variant struct {
	Size   string       `json:"size"`
	Colors []ColorStock `json:"colors"`
}

// Product is the HTTP representation of a catalog entry with stock.
type Product struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	CategoryID string          `json:"categoryId"`
	Price      decimal.Decimal `json:"price"`
	ImageURL   string          `json:"imageUrl,omitempty"`
	Status     string          `json:"status"`
	TotalStock int64           `json:"totalStock"`
	Variants   []Variant       `json:"variants"`
	CreatedAt  time.Time       `json:"createdAt,omitempty"`
	UpdatedAt  time.Time       `json:"updatedAt,omitempty"`
}

// ReceiptLine is the HTTP representation of one received stock path.
type ReceiptLine struct {
	ProductName string          `json:"productName"`
	CategoryID  string          `json:"categoryId,omitempty"`
	Size        string          `json:"size,omitempty"`
	Color       string          `json:"color,omitempty"`
	Quantity    int64           `json:"quantity"`
	UnitCost    decimal.Decimal `json:"unitCost,omitempty"`
	SalePrice   decimal.Decimal `json:"salePrice,omitempty"`
}

// Receipt is the HTTP representation of a supplier delivery.
type Receipt struct {
	ID         string        `json:"id"`
	SupplierID string        `json:"supplierId,omitempty"`
	Status     string        `json:"status"`
	Lines      []ReceiptLine `json:"lines"`
	CreatedAt  time.Time     `json:"createdAt,omitempty"`
	UpdatedAt  time.Time     `json:"updatedAt,omitempty"`
}

// CreateReceiptRequest captures an inbound delivery payload.
type CreateReceiptRequest struct {
	SupplierID string        `json:"supplierId,omitempty"`
	Lines      []ReceiptLine `json:"lines"`
}

// LineIssue reports a line that was skipped or only partially honored.
type LineIssue struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

// ReceiptReport summarizes the stock effect of applying or voiding a receipt.
type ReceiptReport struct {
	Receipt Receipt     `json:"receipt"`
	Applied int         `json:"applied"`
	Clamped int         `json:"clamped"`
	Issues  []LineIssue `json:"issues,omitempty"`
}

// ToCreateReceiptInput converts the transport payload into the application input.
func ToCreateReceiptInput(req CreateReceiptRequest) ports.CreateReceiptInput {
	lines := make([]domain.ReceiptLine, 0, len(req.Lines))
	for _, line := range req.Lines {
		lines = append(lines, domain.ReceiptLine{
			ProductName: line.ProductName,
			CategoryID:  line.CategoryID,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			SalePrice:   line.SalePrice,
		})
	}
	return ports.CreateReceiptInput{SupplierID: req.SupplierID, Lines: lines}
}

// FromDomainProduct maps a domain aggregate into a transport Product.
func FromDomainProduct(p *domain.Product) Product {
	variants := make([]Variant, 0, len(p.Variants))
	for _, v := range p.Variants {
		colors := make([]ColorStock, 0, len(v.Colors))
		for _, cs := range v.Colors {
			colors = append(colors, ColorStock{Color: cs.Color, Quantity: cs.Quantity})
		}
		variants = append(variants, Variant{Size: v.Size, Colors: colors})
	}
	return Product{
		ID:         p.ID,
		Name:       p.Name,
		CategoryID: p.CategoryID,
		Price:      p.Price,
		ImageURL:   p.ImageURL,
		Status:     string(p.Status),
		TotalStock: p.TotalStock(),
		Variants:   variants,
		CreatedAt:  p.CreatedAt,
		UpdatedAt:  p.UpdatedAt,
	}
}

// FromDomainProductList maps a slice of domain aggregates to transport Products.
func FromDomainProductList(list []*domain.Product) []Product {
	resp := make([]Product, 0, len(list))
	for _, p := range list {
		resp = append(resp, FromDomainProduct(p))
	}
	return resp
}

// FromDomainReceipt maps a domain aggregate into a transport Receipt.
func FromDomainReceipt(r *domain.Receipt) Receipt {
	lines := make([]ReceiptLine, 0, len(r.Lines))
	for _, line := range r.Lines {
		lines = append(lines, ReceiptLine{
			ProductName: line.ProductName,
			CategoryID:  line.CategoryID,
			Size:        line.Size,
			Color:       line.Color,
			Quantity:    line.Quantity,
			UnitCost:    line.UnitCost,
			SalePrice:   line.SalePrice,
		})
	}
	return Receipt{
		ID:         r.ID,
		SupplierID: r.SupplierID,
		Status:     string(r.Status),
		Lines:      lines,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}

// FromDomainReceiptList maps a slice of domain aggregates to transport Receipts.
func FromDomainReceiptList(list []*domain.Receipt) []Receipt {
	resp := make([]Receipt, 0, len(list))
	for _, r := range list {
		resp = append(resp, FromDomainReceipt(r))
	}
	return resp
}

// FromReceiptReport maps the application report to the transport response.
func FromReceiptReport(report *ports.ReceiptReport) ReceiptReport {
	issues := make([]LineIssue, 0, len(report.Issues))
	for _, issue := range report.Issues {
		issues = append(issues, LineIssue{Line: issue.Line, Reason: issue.Reason})
	}
	return ReceiptReport{
		Receipt: FromDomainReceipt(report.Receipt),
		Applied: report.Applied,
		Clamped: report.Clamped,
		Issues:  issues,
	}
}
