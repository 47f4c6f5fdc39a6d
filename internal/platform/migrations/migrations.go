package migrations

import (
	"time"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Run applies the schema for the bounded contexts. Intended to replace adapter-level automigrate.
func Run(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	return db.AutoMigrate(
		&orderRecord{},
		&saleRecord{},
		&productRecord{},
		&receiptRecord{},
	)
}

// Order schema mirrors the orders Postgres adapter.
type orderRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	CustomerID string    `gorm:"column:customer_id;index"`
	Lines      []byte    `gorm:"column:lines;type:jsonb"`
	Status     string    `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at;index"`
}

func (orderRecord) TableName() string { return "orders" }

// Sale schema mirrors the sales Postgres adapter. order_id is nullable and
// unique: at most one sale may reference a given order.
type saleRecord struct {
	ID         string          `gorm:"primaryKey;column:id;size:64"`
	OrderID    *string         `gorm:"column:order_id;uniqueIndex"`
	CustomerID string          `gorm:"column:customer_id;index"`
	Lines      []byte          `gorm:"column:lines;type:jsonb"`
	Total      decimal.Decimal `gorm:"column:total;type:numeric(14,2)"`
	Status     string          `gorm:"column:status;type:varchar(32);index"`
	CreatedAt  time.Time       `gorm:"column:created_at;index"`
	UpdatedAt  time.Time       `gorm:"column:updated_at"`
}

func (saleRecord) TableName() string { return "sales" }

// Product schema mirrors the inventory Postgres adapter. name_key is the
// normalized identity key and must stay unique.
type productRecord struct {
	ID         string          `gorm:"primaryKey;column:id;size:64"`
	Name       string          `gorm:"column:name"`
	NameKey    string          `gorm:"column:name_key;uniqueIndex"`
	CategoryID string          `gorm:"column:category_id;index"`
	Price      decimal.Decimal `gorm:"column:price;type:numeric(14,2)"`
	ImageURL   string          `gorm:"column:image_url"`
	Status     string          `gorm:"column:status;type:varchar(16);index"`
	Variants   []byte          `gorm:"column:variants;type:jsonb"`
	SizeLabels pq.StringArray  `gorm:"column:size_labels;type:text[]"`
	CreatedAt  time.Time       `gorm:"column:created_at"`
	UpdatedAt  time.Time       `gorm:"column:updated_at;index"`
}

func (productRecord) TableName() string { return "products" }

// Receipt schema mirrors the inventory Postgres adapter.
type receiptRecord struct {
	ID         string    `gorm:"primaryKey;column:id;size:64"`
	SupplierID string    `gorm:"column:supplier_id;index"`
	Status     string    `gorm:"column:status;type:varchar(16);index"`
	Lines      []byte    `gorm:"column:lines;type:jsonb"`
	CreatedAt  time.Time `gorm:"column:created_at;index"`
	UpdatedAt  time.Time `gorm:"column:updated_at"`
}

func (receiptRecord) TableName() string { return "purchase_receipts" }
