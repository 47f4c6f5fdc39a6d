package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeName(t *testing.T) {
	require.Equal(t, "vestido rojo", NormalizeName("  Vestido Rojo "))
	require.Equal(t, "vestido rojo", NormalizeName("VESTIDO ROJO"))
	require.NotEqual(t, NormalizeName("vestido  rojo"), NormalizeName("vestido rojo"))
}

func mustProduct(t *testing.T, id, name string) *Product {
	t.Helper()
	p, err := NewProduct(id, name, "cat-1")
	require.NoError(t, err)
	return p
}

func TestMerge_FirstSeenSurvivesWithSummedStock(t *testing.T) {
	a := mustProduct(t, "p-1", "Vestido Rojo")
	require.NoError(t, a.AddStock("M", "rojo", 10))
	b := mustProduct(t, "p-2", "  vestido rojo ")
	require.NoError(t, b.AddStock("M", "rojo", 5))
	require.NoError(t, b.AddStock("L", "negro", 3))
	c := mustProduct(t, "p-3", "Falda Azul")
	require.NoError(t, c.AddStock("S", "azul", 2))

	merged := Merge([]*Product{a, b, c})
	require.Len(t, merged, 2)

	survivor := merged[0]
	require.Equal(t, "p-1", survivor.ID)
	require.Equal(t, int64(15), survivor.StockAt("M", "rojo"))
	require.Equal(t, int64(3), survivor.StockAt("L", "negro"))
	require.Equal(t, StatusActive, survivor.Status)

	require.Equal(t, "p-3", merged[1].ID)
	require.Equal(t, int64(2), merged[1].StockAt("S", "azul"))
}

func TestMerge_Idempotent(t *testing.T) {
	a := mustProduct(t, "p-1", "Vestido Rojo")
	require.NoError(t, a.AddStock("M", "rojo", 10))
	b := mustProduct(t, "p-2", "vestido rojo")
	require.NoError(t, b.AddStock("M", "rojo", 5))

	once := Merge([]*Product{a, b})
	twice := Merge(once)
	require.Len(t, twice, 1)
	require.Equal(t, int64(15), twice[0].StockAt("M", "rojo"))
	require.Equal(t, int64(15), twice[0].TotalStock())
}

func TestMerge_DoesNotMutateInputs(t *testing.T) {
	a := mustProduct(t, "p-1", "Vestido Rojo")
	require.NoError(t, a.AddStock("M", "rojo", 10))
	b := mustProduct(t, "p-2", "vestido rojo")
	require.NoError(t, b.AddStock("M", "rojo", 5))

	_ = Merge([]*Product{a, b})
	require.Equal(t, int64(10), a.StockAt("M", "rojo"))
	require.Equal(t, int64(5), b.StockAt("M", "rojo"))
}
