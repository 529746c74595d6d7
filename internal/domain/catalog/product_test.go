package catalog

import (
	"testing"

	"github.com/salonops/backend/internal/domain/shared/valueobject"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProduct(t *testing.T, quantity int) *Product {
	t.Helper()
	p, err := NewProduct("SKU-001", "Argan Oil Shampoo", valueobject.NewMoneyVNDFromInt(200000), quantity)
	require.NoError(t, err)
	return p
}

func TestNewProduct(t *testing.T) {
	t.Run("creates product with initial stock", func(t *testing.T) {
		p := newTestProduct(t, 10)

		assert.Equal(t, 10, p.Quantity)
		assert.Equal(t, 0, p.Reserved)
		assert.Equal(t, ItemableStatusActive, p.Status)
		assert.Equal(t, 1, p.Version)
	})

	t.Run("fails with empty code", func(t *testing.T) {
		_, err := NewProduct("", "X", valueobject.ZeroVND(), 0)
		require.Error(t, err)
	})

	t.Run("fails with negative initial quantity", func(t *testing.T) {
		_, err := NewProduct("SKU-002", "X", valueobject.ZeroVND(), -1)
		require.Error(t, err)
	})
}

func TestProduct_Reserve(t *testing.T) {
	t.Run("moves units from on-hand to reserved", func(t *testing.T) {
		p := newTestProduct(t, 10)

		require.NoError(t, p.Reserve(5))

		assert.Equal(t, 5, p.Quantity)
		assert.Equal(t, 5, p.Reserved)
		assert.Equal(t, 2, p.Version)
	})

	t.Run("fails when on-hand insufficient", func(t *testing.T) {
		p := newTestProduct(t, 3)

		err := p.Reserve(5)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "Insufficient stock")
		assert.Equal(t, 3, p.Quantity)
		assert.Equal(t, 0, p.Reserved)
	})

	t.Run("rejects non-positive quantity", func(t *testing.T) {
		p := newTestProduct(t, 3)
		require.Error(t, p.Reserve(0))
		require.Error(t, p.Reserve(-2))
	})
}

func TestProduct_ReleaseReservation(t *testing.T) {
	t.Run("returns units to on-hand", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.Reserve(6))

		require.NoError(t, p.ReleaseReservation(4))

		assert.Equal(t, 8, p.Quantity)
		assert.Equal(t, 2, p.Reserved)
	})

	t.Run("fails when release exceeds reserved", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.Reserve(2))

		require.Error(t, p.ReleaseReservation(3))
	})
}

func TestProduct_CommitExport(t *testing.T) {
	t.Run("consumes reserved units only", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.Reserve(5))

		require.NoError(t, p.CommitExport(3))

		assert.Equal(t, 5, p.Quantity)
		assert.Equal(t, 2, p.Reserved)
	})

	t.Run("fails when reserved does not cover export", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.Reserve(2))

		err := p.CommitExport(3)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not cover export")
	})
}

func TestProduct_Import(t *testing.T) {
	p := newTestProduct(t, 1)

	require.NoError(t, p.Import(9))

	assert.Equal(t, 10, p.Quantity)
	assert.Equal(t, 0, p.Reserved)
}

func TestProduct_Adjust(t *testing.T) {
	t.Run("applies positive and negative deltas to on-hand", func(t *testing.T) {
		p := newTestProduct(t, 10)

		require.NoError(t, p.Adjust(5))
		assert.Equal(t, 15, p.Quantity)

		require.NoError(t, p.Adjust(-7))
		assert.Equal(t, 8, p.Quantity)
	})

	t.Run("never touches reserved", func(t *testing.T) {
		p := newTestProduct(t, 10)
		require.NoError(t, p.Reserve(4))

		require.NoError(t, p.Adjust(-6))

		assert.Equal(t, 0, p.Quantity)
		assert.Equal(t, 4, p.Reserved)
	})

	t.Run("fails when delta would go negative", func(t *testing.T) {
		p := newTestProduct(t, 2)
		require.Error(t, p.Adjust(-3))
	})

	t.Run("rejects zero delta", func(t *testing.T) {
		p := newTestProduct(t, 2)
		require.Error(t, p.Adjust(0))
	})
}

// Stock conservation across a reservation round trip: units only ever sit in
// on-hand, reserved, or leave through an export commit.
func TestProduct_Conservation(t *testing.T) {
	p := newTestProduct(t, 10)
	exported := 0

	require.NoError(t, p.Reserve(5))
	require.NoError(t, p.CommitExport(3))
	exported += 3
	require.NoError(t, p.ReleaseReservation(2))

	assert.Equal(t, 10, p.Quantity+p.Reserved+exported)
	assert.Equal(t, 7, p.Quantity)
	assert.Equal(t, 0, p.Reserved)
}
