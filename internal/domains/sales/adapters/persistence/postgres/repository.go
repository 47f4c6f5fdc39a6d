package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository persists sales in PostgreSQL using GORM.
type Repository struct {
	db *gorm.DB
}

// NewRepository wires a PostgreSQL-backed repository. Caller manages DB lifecycle.
func NewRepository(db *gorm.DB) *Repository {
	repo := &Repository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&saleRecord{})
	}
	return repo
}

// saleRecord maps the sale to a relational table. The unique index on
// order_id backs the at-most-one-sale-per-order invariant at the storage
// layer as well.
type saleRecord struct {
	ID         string            `gorm:"primaryKey;column:id;size:64"`
	OrderID    *string           `gorm:"column:order_id;uniqueIndex"`
	CustomerID string            `gorm:"column:customer_id;index"`
	Lines      []domain.LineItem `gorm:"column:lines;serializer:json"`
	Total      decimal.Decimal   `gorm:"column:total;type:numeric(14,2)"`
	Status     string            `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time         `gorm:"column:created_at;index"`
	UpdatedAt  time.Time         `gorm:"column:updated_at"`
}

func (saleRecord) TableName() string { return "sales" }

// Save inserts or updates a sale.
func (r *Repository) Save(ctx context.Context, sale *domain.Sale) (*domain.Sale, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, errors.New("sale is nil")
	}
	record := toRecord(sale)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_id", "customer_id", "lines", "total", "status", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a sale by identifier.
func (r *Repository) GetByID(ctx context.Context, id string) (*domain.Sale, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record saleRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// FindByOrderID fetches the sale created for an order, if any.
func (r *Repository) FindByOrderID(ctx context.Context, orderID string) (*domain.Sale, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record saleRecord
	if err := r.db.WithContext(ctx).First(&record, "order_id = ?", orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all sales.
func (r *Repository) List(ctx context.Context) ([]*domain.Sale, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []saleRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	sales := make([]*domain.Sale, 0, len(records))
	for i := range records {
		sales = append(sales, records[i].toDomain())
	}
	return sales, nil
}

func (r *Repository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres sale repository not configured")
	}
	return nil
}

func toRecord(sale *domain.Sale) saleRecord {
	record := saleRecord{
		ID:         sale.ID,
		CustomerID: sale.CustomerID,
		Lines:      append([]domain.LineItem{}, sale.Lines...),
		Total:      sale.Total,
		Status:     string(sale.Status),
	}
	if sale.OrderID != "" {
		orderID := sale.OrderID
		record.OrderID = &orderID
	}
	return record
}

func (r saleRecord) toDomain() *domain.Sale {
	sale := &domain.Sale{
		ID:         r.ID,
		CustomerID: r.CustomerID,
		Lines:      append([]domain.LineItem{}, r.Lines...),
		Total:      r.Total,
		Status:     domain.Status(r.Status),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	if r.OrderID != nil {
		sale.OrderID = *r.OrderID
	}
	return sale
}
