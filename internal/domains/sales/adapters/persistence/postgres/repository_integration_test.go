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

	"github.com/retailcore/backoffice/internal/domains/sales/domain"
	"github.com/retailcore/backoffice/internal/domains/sales/ports"
	"github.com/retailcore/backoffice/internal/platform/migrations"
)

func setupSalesPostgresContainer(t *testing.T) (*gorm.DB, func()) {
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

func testSale(t *testing.T, id, orderID string) *domain.Sale {
	t.Helper()
	sale, err := domain.NewSale(id, orderID, "c-1", []domain.LineItem{
		{ProductName: "vestido rojo", Size: "M", Color: "rojo", Quantity: 2, UnitPrice: decimal.NewFromInt(45)},
	})
	require.NoError(t, err)
	return sale
}

func TestRepository_SaveAndFindByOrderID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	sale := testSale(t, "s-1", "o-1")
	saved, err := repo.Save(ctx, sale)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, saved.Status)
	assert.True(t, saved.Total.Equal(decimal.NewFromInt(90)))

	fetched, err := repo.FindByOrderID(ctx, "o-1")
	require.NoError(t, err)
	assert.Equal(t, "s-1", fetched.ID)

	_, err = repo.FindByOrderID(ctx, "o-2")
	assert.ErrorIs(t, err, ports.ErrNotFound)
}

func TestRepository_UniqueOrderIDEnforced(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Save(ctx, testSale(t, "s-1", "o-1"))
	require.NoError(t, err)

	_, err = repo.Save(ctx, testSale(t, "s-2", "o-1"))
	assert.Error(t, err)
}

func TestRepository_SavePersistsVoid(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupSalesPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	sale := testSale(t, "s-1", "o-1")
	_, err := repo.Save(ctx, sale)
	require.NoError(t, err)

	require.NoError(t, sale.Void())
	updated, err := repo.Save(ctx, sale)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusVoided, updated.Status)
}
