package postgres

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

var _ ports.ReceiptRepository = (*ReceiptRepository)(nil)

// ReceiptRepository persists purchase receipts in PostgreSQL using GORM.
type ReceiptRepository struct {
	db *gorm.DB
}

// NewReceiptRepository wires a PostgreSQL-backed receipt store. Caller manages DB lifecycle.
func NewReceiptRepository(db *gorm.DB) *ReceiptRepository {
	repo := &ReceiptRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&receiptRecord{})
	}
	return repo
}

type receiptRecord struct {
	ID         string               `gorm:"primaryKey;column:id;size:64"`
	SupplierID string               `gorm:"column:supplier_id;index"`
	Status     string               `gorm:"column:status;type:varchar(16);index"`
	Lines      []domain.ReceiptLine `gorm:"column:lines;serializer:json"`
	CreatedAt  time.Time            `gorm:"column:created_at;index"`
	UpdatedAt  time.Time            `gorm:"column:updated_at"`
}

func (receiptRecord) TableName() string { return "purchase_receipts" }

// Save inserts or updates a receipt.
func (r *ReceiptRepository) Save(ctx context.Context, receipt *domain.Receipt) (*domain.Receipt, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if receipt == nil {
		return nil, errors.New("receipt is nil")
	}
	record := toReceiptRecord(receipt)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{"supplier_id", "status", "lines", "updated_at"}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a receipt by identifier.
func (r *ReceiptRepository) GetByID(ctx context.Context, id string) (*domain.Receipt, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record receiptRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrReceiptNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// List returns all receipts.
func (r *ReceiptRepository) List(ctx context.Context) ([]*domain.Receipt, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []receiptRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	receipts := make([]*domain.Receipt, 0, len(records))
	for i := range records {
		receipts = append(receipts, records[i].toDomain())
	}
	return receipts, nil
}

func (r *ReceiptRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres receipt repository not configured")
	}
	return nil
}

func toReceiptRecord(receipt *domain.Receipt) receiptRecord {
	return receiptRecord{
		ID:         receipt.ID,
		SupplierID: receipt.SupplierID,
		Status:     string(receipt.Status),
		Lines:      append([]domain.ReceiptLine{}, receipt.Lines...),
	}
}

func (r receiptRecord) toDomain() *domain.Receipt {
	return &domain.Receipt{
		ID:         r.ID,
		SupplierID: r.SupplierID,
		Status:     domain.ReceiptStatus(r.Status),
		Lines:      append([]domain.ReceiptLine{}, r.Lines...),
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
}
