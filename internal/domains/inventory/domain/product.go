package domain

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status derives a product's visibility from its aggregate stock.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

var (
	ErrEmptyName        = errors.New("product name is required")
	ErrMissingCategory  = errors.New("product category is required")
	ErrInvalidQuantity  = errors.New("stock quantity must be greater than zero")
	ErrStockPathMissing = errors.New("no stock entry for the requested size and color")
)

// ColorStock is the leaf of the stock ledger: one color of one size.
// Quantity never goes below zero.
type ColorStock struct {
	Color    string
	Quantity int64
}

// Variant groups the color stocks of a single size label.
type Variant struct {
	Size   string
	Colors []ColorStock
}

// Product is the stock ledger aggregate: one catalog entry with its
// per-size, per-color quantities. NameKey caches the normalized identity
// key derived from Name.
type Product struct {
	ID         string
	Name       string
	NameKey    string
	CategoryID string
	Price      decimal.Decimal
	ImageURL   string
	Status     Status
	Variants   []Variant
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// NewProduct validates the invariants and builds an empty-stock product.
// Category is mandatory: a product may never exist without one.
func NewProduct(id, name, categoryID string) (*Product, error) {
	if strings.TrimSpace(name) == "" {
		return nil, ErrEmptyName
	}
	if strings.TrimSpace(categoryID) == "" {
		return nil, ErrMissingCategory
	}
	return &Product{
		ID:         id,
		Name:       strings.TrimSpace(name),
		NameKey:    NormalizeName(name),
		CategoryID: categoryID,
		Status:     StatusInactive,
	}, nil
}

// AddStock increases the (size, color) path by qty, creating the variant
// and color entry when absent.
func (p *Product) AddStock(size, color string, qty int64) error {
	if qty <= 0 {
		return ErrInvalidQuantity
	}
	variant := p.ensureVariant(size)
	for i := range variant.Colors {
		if variant.Colors[i].Color == color {
			variant.Colors[i].Quantity += qty
			return nil
		}
	}
	variant.Colors = append(variant.Colors, ColorStock{Color: color, Quantity: qty})
	return nil
}

// RemoveStock decreases the (size, color) path by qty, clamping the result
// at zero. It reports whether clamping occurred. A missing path returns
// ErrStockPathMissing and leaves the ledger untouched.
func (p *Product) RemoveStock(size, color string, qty int64) (clamped bool, err error) {
	if qty <= 0 {
		return false, ErrInvalidQuantity
	}
	variant := p.findVariant(size)
	if variant == nil {
		return false, ErrStockPathMissing
	}
	for i := range variant.Colors {
		if variant.Colors[i].Color != color {
			continue
		}
		remaining := variant.Colors[i].Quantity - qty
		if remaining < 0 {
			variant.Colors[i].Quantity = 0
			return true, nil
		}
		variant.Colors[i].Quantity = remaining
		return false, nil
	}
	return false, ErrStockPathMissing
}

// StockAt returns the quantity held at the (size, color) path, zero when
// the path does not exist.
func (p *Product) StockAt(size, color string) int64 {
	variant := p.findVariant(size)
	if variant == nil {
		return 0
	}
	for _, cs := range variant.Colors {
		if cs.Color == color {
			return cs.Quantity
		}
	}
	return 0
}

// TotalStock sums every color quantity across all variants.
func (p *Product) TotalStock() int64 {
	var total int64
	for _, v := range p.Variants {
		for _, cs := range v.Colors {
			total += cs.Quantity
		}
	}
	return total
}

// RecomputeStatus derives active/inactive from aggregate stock. Status is
// never set independently of stock, so the two cannot disagree.
func (p *Product) RecomputeStatus() {
	if p.TotalStock() > 0 {
		p.Status = StatusActive
		return
	}
	p.Status = StatusInactive
}

// SizeLabels lists the variant sizes currently carried.
func (p *Product) SizeLabels() []string {
	labels := make([]string, 0, len(p.Variants))
	for _, v := range p.Variants {
		labels = append(labels, v.Size)
	}
	return labels
}

// Clone returns a deep copy so callers can mutate freely.
func (p *Product) Clone() *Product {
	clone := *p
	clone.Variants = make([]Variant, len(p.Variants))
	for i, v := range p.Variants {
		clone.Variants[i] = Variant{Size: v.Size, Colors: append([]ColorStock{}, v.Colors...)}
	}
	return &clone
}

func (p *Product) ensureVariant(size string) *Variant {
	if v := p.findVariant(size); v != nil {
		return v
	}
	p.Variants = append(p.Variants, Variant{Size: size})
	return &p.Variants[len(p.Variants)-1]
}

func (p *Product) findVariant(size string) *Variant {
	for i := range p.Variants {
		if p.Variants[i].Size == size {
			return &p.Variants[i]
		}
	}
	return nil
}
