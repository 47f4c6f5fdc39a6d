//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/retailcore/backoffice/internal/domains/inventory/domain"
	"github.com/retailcore/backoffice/internal/domains/inventory/ports"
	"github.com/retailcore/backoffice/internal/platform/migrations"
)

func setupInventoryPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("backoffice_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func testProduct(t *testing.T, id, name string) *domain.Product {
	t.Helper()
	product, err := domain.NewProduct(id, name, "cat-dresses")
	require.NoError(t, err)
	require.NoError(t, product.AddStock("M", "rojo", 10))
	require.NoError(t, product.AddStock("L", "negro", 3))
	product.Price = decimal.NewFromInt(45)
	product.RecomputeStatus()
	return product
}

func TestProductRepository_SaveAndGetByNameKey(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewProductRepository(db)
	ctx := context.Background()

	product := testProduct(t, "p-1", "Vestido Rojo")
	saved, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, "vestido rojo", saved.NameKey)
	assert.Equal(t, domain.StatusActive, saved.Status)

	fetched, err := repo.GetByNameKey(ctx, "vestido rojo")
	require.NoError(t, err)
	assert.Equal(t, "p-1", fetched.ID)
	assert.Equal(t, int64(10), fetched.StockAt("M", "rojo"))
	assert.Equal(t, int64(3), fetched.StockAt("L", "negro"))
	assert.True(t, fetched.Price.Equal(decimal.NewFromInt(45)))

	_, err = repo.GetByNameKey(ctx, "falda azul")
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestProductRepository_SavePersistsStockChanges(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewProductRepository(db)
	ctx := context.Background()

	product := testProduct(t, "p-1", "Vestido Rojo")
	_, err := repo.Save(ctx, product)
	require.NoError(t, err)

	clamped, err := product.RemoveStock("M", "rojo", 10)
	require.NoError(t, err)
	require.False(t, clamped)
	_, err = product.RemoveStock("L", "negro", 3)
	require.NoError(t, err)
	product.RecomputeStatus()

	updated, err := repo.Save(ctx, product)
	require.NoError(t, err)
	assert.Equal(t, int64(0), updated.TotalStock())
	assert.Equal(t, domain.StatusInactive, updated.Status)
}

func TestProductRepository_Delete(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewProductRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, testProduct(t, "p-1", "Vestido Rojo"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, "p-1"))
	_, err = repo.GetByID(ctx, "p-1")
	assert.ErrorIs(t, err, ports.ErrProductNotFound)

	err = repo.Delete(ctx, "p-1")
	assert.ErrorIs(t, err, ports.ErrProductNotFound)
}

func TestReceiptRepository_SaveAndVoid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupInventoryPostgresContainer(t)
	defer cleanup()

	repo := NewReceiptRepository(db)
	ctx := context.Background()

	receipt, err := domain.NewReceipt("r-1", "sup-1", []domain.ReceiptLine{
		{ProductName: "Vestido Rojo", CategoryID: "cat-dresses", Size: "M", Color: "rojo", Quantity: 10, UnitCost: decimal.NewFromInt(20), SalePrice: decimal.NewFromInt(45)},
	})
	require.NoError(t, err)

	saved, err := repo.Save(ctx, receipt)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusReceived, saved.Status)

	require.NoError(t, receipt.Void())
	updated, err := repo.Save(ctx, receipt)
	require.NoError(t, err)
	assert.Equal(t, domain.ReceiptStatusVoided, updated.Status)
	require.Len(t, updated.Lines, 1)
	assert.Equal(t, int64(10), updated.Lines[0].Quantity)
}
