package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
)

var _ ports.ProductRepository = (*ProductRepository)(nil)

// ProductRepository persists the stock ledger in PostgreSQL using GORM.
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository wires a PostgreSQL-backed ledger. Caller manages DB lifecycle.
func NewProductRepository(db *gorm.DB) *ProductRepository {
	repo := &ProductRepository{db: db}
	if db != nil {
		_ = db.AutoMigrate(&productRecord{})
	}
	return repo
}

// productRecord maps the product aggregate to a relational table. Variants
// are embedded as JSON since the ledger is always read as a whole; the
// denormalized size_labels array keeps size filtering queryable.
type productRecord struct {
	ID         string           `gorm:"primaryKey;column:id;size:64"`
	Name       string           `gorm:"column:name"`
	NameKey    string           `gorm:"column:name_key;uniqueIndex"`
	CategoryID string           `gorm:"column:category_id;index"`
	Price      decimal.Decimal  `gorm:"column:price;type:numeric(14,2)"`
	ImageURL   string           `gorm:"column:image_url"`
	Status     string           `gorm:"column:status;type:varchar(16);index"`
	Variants   []domain.Variant `gorm:"column:variants;serializer:json"`
	SizeLabels pq.StringArray   `gorm:"column:size_labels;type:text[]"`
	CreatedAt  time.Time        `gorm:"column:created_at"`
	UpdatedAt  time.Time        `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// Save inserts or updates a product.
func (r *ProductRepository) Save(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errors.New("product is nil")
	}
	record := toProductRecord(product)
	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"name", "name_key", "category_id", "price", "image_url",
				"status", "variants", "size_labels", "updated_at",
			}),
		}).Create(&record).Error; err != nil {
		return nil, err
	}
	return r.GetByID(ctx, record.ID)
}

// GetByID fetches a product by identifier.
func (r *ProductRepository) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// GetByNameKey resolves product identity by normalized name.
func (r *ProductRepository) GetByNameKey(ctx context.Context, key string) (*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var record productRecord
	if err := r.db.WithContext(ctx).First(&record, "name_key = ?", key).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ports.ErrProductNotFound
		}
		return nil, err
	}
	return record.toDomain(), nil
}

// Delete removes a product, used only when a merge absorbs duplicates.
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	if err := r.ensureDB(); err != nil {
		return err
	}
	result := r.db.WithContext(ctx).Delete(&productRecord{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ports.ErrProductNotFound
	}
	return nil
}

// List returns the whole ledger.
func (r *ProductRepository) List(ctx context.Context) ([]*domain.Product, error) {
	if err := r.ensureDB(); err != nil {
		return nil, err
	}
	var records []productRecord
	if err := r.db.WithContext(ctx).Find(&records).Error; err != nil {
		return nil, err
	}
	products := make([]*domain.Product, 0, len(records))
	for i := range records {
		products = append(products, records[i].toDomain())
	}
	return products, nil
}

func (r *ProductRepository) ensureDB() error {
	if r == nil || r.db == nil {
		return errors.New("postgres product repository not configured")
	}
	return nil
}

func toProductRecord(product *domain.Product) productRecord {
	clone := product.Clone()
	return productRecord{
		ID:         clone.ID,
		Name:       clone.Name,
		NameKey:    clone.NameKey,
		CategoryID: clone.CategoryID,
		Price:      clone.Price,
		ImageURL:   clone.ImageURL,
		Status:     string(clone.Status),
		Variants:   clone.Variants,
		SizeLabels: pq.StringArray(clone.SizeLabels()),
	}
}

func (r productRecord) toDomain() *domain.Product {
	product := &domain.Product{
		ID:         r.ID,
		Name:       r.Name,
		NameKey:    r.NameKey,
		CategoryID: r.CategoryID,
		Price:      r.Price,
		ImageURL:   r.ImageURL,
		Status:     domain.Status(r.Status),
		Variants:   r.Variants,
		CreatedAt:  r.CreatedAt,
		UpdatedAt:  r.UpdatedAt,
	}
	return product.Clone()
}
