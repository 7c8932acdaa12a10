package sqlite

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openVectorDB(t *testing.T) *sql.DB {
	t.Helper()

	require.NoError(t, registerVectorFunctions())
	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestDotProduct_InSQL(t *testing.T) {
	db := openVectorDB(t)

	a := float32SliceToBytes([]float32{1, 2, 3})
	b := float32SliceToBytes([]float32{4, 5, 6})

	var dot float64
	err := db.QueryRow(`SELECT dot_product(?, ?)`, a, b).Scan(&dot)
	require.NoError(t, err)
	assert.InDelta(t, 32.0, dot, 1e-9)
}

func TestDotProduct_Orthogonal(t *testing.T) {
	db := openVectorDB(t)

	a := float32SliceToBytes([]float32{1, 0})
	b := float32SliceToBytes([]float32{0, 1})

	var dot float64
	err := db.QueryRow(`SELECT dot_product(?, ?)`, a, b).Scan(&dot)
	require.NoError(t, err)
	assert.Zero(t, dot)
}

func TestDotProduct_DimensionMismatch(t *testing.T) {
	db := openVectorDB(t)

	a := float32SliceToBytes([]float32{1, 0})
	b := float32SliceToBytes([]float32{1, 0, 0})

	var dot float64
	err := db.QueryRow(`SELECT dot_product(?, ?)`, a, b).Scan(&dot)
	assert.Error(t, err)
}

func TestDotProduct_InvalidBlob(t *testing.T) {
	db := openVectorDB(t)

	a := float32SliceToBytes([]float32{1, 0})

	var dot float64
	err := db.QueryRow(`SELECT dot_product(?, ?)`, a, []byte{1, 2, 3}).Scan(&dot)
	assert.Error(t, err)
}

func TestEmbeddingBlobRoundTrip(t *testing.T) {
	in := []float32{0.25, -1.5, 3.75, 0}
	out := bytesToFloat32Slice(float32SliceToBytes(in))
	assert.Equal(t, in, out)

	assert.Nil(t, float32SliceToBytes(nil))
	assert.Nil(t, bytesToFloat32Slice(nil))
}
