package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNewProduct_RequiresCategory(t *testing.T) {
	_, err := NewProduct("p-1", "Vestido Rojo", "")
	require.ErrorIs(t, err, ErrMissingCategory)

	_, err = NewProduct("p-1", "   ", "cat-1")
	require.ErrorIs(t, err, ErrEmptyName)

	p, err := NewProduct("p-1", " Vestido Rojo ", "cat-1")
	require.NoError(t, err)
	require.Equal(t, "Vestido Rojo", p.Name)
	require.Equal(t, "vestido rojo", p.NameKey)
	require.Equal(t, StatusInactive, p.Status)
}

func TestRemoveStock_ClampsAtZero(t *testing.T) {
	p := mustProduct(t, "p-1", "Vestido Rojo")
	require.NoError(t, p.AddStock("M", "rojo", 4))

	clamped, err := p.RemoveStock("M", "rojo", 10)
	require.NoError(t, err)
	require.True(t, clamped)
	require.Equal(t, int64(0), p.StockAt("M", "rojo"))

	clamped, err = p.RemoveStock("M", "rojo", 1)
	require.NoError(t, err)
	require.True(t, clamped)
}

func TestRemoveStock_MissingPath(t *testing.T) {
	p := mustProduct(t, "p-1", "Vestido Rojo")
	require.NoError(t, p.AddStock("M", "rojo", 4))

	_, err := p.RemoveStock("L", "rojo", 1)
	require.ErrorIs(t, err, ErrStockPathMissing)
	_, err = p.RemoveStock("M", "negro", 1)
	require.ErrorIs(t, err, ErrStockPathMissing)
	require.Equal(t, int64(4), p.TotalStock())
}

func TestRecomputeStatus_DerivedFromStock(t *testing.T) {
	p := mustProduct(t, "p-1", "Vestido Rojo")
	p.RecomputeStatus()
	require.Equal(t, StatusInactive, p.Status)

	require.NoError(t, p.AddStock("M", "rojo", 2))
	p.RecomputeStatus()
	require.Equal(t, StatusActive, p.Status)

	_, err := p.RemoveStock("M", "rojo", 2)
	require.NoError(t, err)
	p.RecomputeStatus()
	require.Equal(t, StatusInactive, p.Status)
}
