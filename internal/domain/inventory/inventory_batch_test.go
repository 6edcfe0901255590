package inventory

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestBatch(t *testing.T, qty, price string) *InventoryBatch {
	t.Helper()
	b, err := NewInventoryBatch(
		uuid.New(),
		decimal.RequireFromString(qty),
		decimal.RequireFromString(price),
		decimal.NewFromInt(19),
		nil, nil,
	)
	require.NoError(t, err)
	return b
}

func TestNewInventoryBatch(t *testing.T) {
	t.Run("remaining equals received", func(t *testing.T) {
		b := newTestBatch(t, "50", "2")
		assert.True(t, b.Quantity.Equal(b.InitialQuantity))
	})

	t.Run("zero quantity rejected", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), decimal.Zero, decimal.NewFromInt(1), decimal.Zero, nil, nil)
		assert.Error(t, err)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		_, err := NewInventoryBatch(uuid.New(), decimal.NewFromInt(1), decimal.NewFromInt(-1), decimal.Zero, nil, nil)
		assert.Error(t, err)
	})
}

func TestBatchCorrect(t *testing.T) {
	t.Run("quantity shifts by initial delta", func(t *testing.T) {
		b := newTestBatch(t, "50", "2")
		// consume 30, then correct received quantity down to 45
		require.NoError(t, b.Apply(decimal.NewFromInt(-30)))

		err := b.Correct(decimal.NewFromInt(45), decimal.RequireFromString("2.1"))
		require.NoError(t, err)

		assert.True(t, b.InitialQuantity.Equal(decimal.NewFromInt(45)))
		assert.True(t, b.Quantity.Equal(decimal.NewFromInt(15)), "got %s", b.Quantity)
		assert.True(t, b.PurchasePrice.Equal(decimal.RequireFromString("2.1")))
	})

	t.Run("vat percent untouched", func(t *testing.T) {
		b := newTestBatch(t, "10", "1")
		before := b.VATPercent
		require.NoError(t, b.Correct(decimal.NewFromInt(12), decimal.NewFromInt(1)))
		assert.True(t, b.VATPercent.Equal(before))
	})

	t.Run("negative inputs rejected before mutation", func(t *testing.T) {
		b := newTestBatch(t, "10", "1")
		err := b.Correct(decimal.NewFromInt(-1), decimal.NewFromInt(1))
		assert.Error(t, err)
		assert.True(t, b.InitialQuantity.Equal(decimal.NewFromInt(10)))

		err = b.Correct(decimal.NewFromInt(5), decimal.NewFromInt(-1))
		assert.Error(t, err)
		assert.True(t, b.PurchasePrice.Equal(decimal.NewFromInt(1)))
	})
}

func TestBatchApply(t *testing.T) {
	t.Run("may go negative under override", func(t *testing.T) {
		b := newTestBatch(t, "10", "1")
		require.NoError(t, b.Apply(decimal.NewFromInt(-12)))
		assert.True(t, b.Quantity.Equal(decimal.NewFromInt(-2)))
		assert.False(t, b.HasStock())
	})

	t.Run("cannot exceed initial quantity", func(t *testing.T) {
		b := newTestBatch(t, "10", "1")
		require.NoError(t, b.Apply(decimal.NewFromInt(-4)))
		err := b.Apply(decimal.NewFromInt(5))
		assert.Error(t, err)
	})
}

func TestBatchExpiry(t *testing.T) {
	past := time.Now().Add(-24 * time.Hour)
	future := time.Now().Add(48 * time.Hour)

	b := newTestBatch(t, "5", "1")
	assert.False(t, b.IsExpired())

	b.ExpirationDate = &past
	assert.True(t, b.IsExpired())

	b.ExpirationDate = &future
	assert.False(t, b.IsExpired())
	assert.True(t, b.WillExpireWithin(72*time.Hour))
	assert.False(t, b.WillExpireWithin(24*time.Hour))
}

func TestBatchGrossPrice(t *testing.T) {
	b := newTestBatch(t, "50", "2")
	assert.True(t, b.GrossPrice().Equal(decimal.RequireFromString("2.38")), "got %s", b.GrossPrice())
}

func TestItemAvailability(t *testing.T) {
	item, err := NewInventoryItem("varza", "kg", decimal.NewFromInt(9))
	require.NoError(t, err)

	mk := func(qty string) InventoryBatch {
		b, err := NewInventoryBatch(item.ID, decimal.NewFromInt(1), decimal.NewFromInt(1), decimal.Zero, nil, nil)
		require.NoError(t, err)
		b.InitialQuantity = decimal.RequireFromString(qty)
		b.Quantity = decimal.RequireFromString(qty)
		return *b
	}

	item.Batches = []InventoryBatch{mk("4"), mk("6"), mk("-2")}

	assert.True(t, item.AvailableQuantity().Equal(decimal.NewFromInt(10)), "negative batches excluded from available")
	assert.True(t, item.NetQuantity().Equal(decimal.NewFromInt(8)), "negative batches included in net")
}

func TestItemRepresentativePrice(t *testing.T) {
	item, err := NewInventoryItem("varza", "kg", decimal.NewFromInt(9))
	require.NoError(t, err)
	assert.True(t, item.RepresentativePrice().IsZero())

	older, err := NewInventoryBatch(item.ID, decimal.NewFromInt(5), decimal.NewFromInt(2), decimal.Zero, nil, nil)
	require.NoError(t, err)
	older.CreatedAt = time.Now().Add(-time.Hour)

	newer, err := NewInventoryBatch(item.ID, decimal.NewFromInt(5), decimal.NewFromInt(3), decimal.Zero, nil, nil)
	require.NoError(t, err)

	item.Batches = []InventoryBatch{*newer, *older}
	assert.True(t, item.RepresentativePrice().Equal(decimal.NewFromInt(3)))
}
