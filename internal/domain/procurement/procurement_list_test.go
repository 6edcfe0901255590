package procurement

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/restaurant/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newOpenList(t *testing.T) *ProcurementList {
	t.Helper()
	l, err := NewProcurementList("saptamana 22", "Ionel")
	require.NoError(t, err)
	return l
}

func addLine(t *testing.T, l *ProcurementList, name string, qty string, vat int64) *ProcurementItem {
	t.Helper()
	item, err := l.AddItem(ItemInput{
		ItemName:          name,
		Unit:              "kg",
		QuantityRequested: decimal.RequireFromString(qty),
		VATPercent:        decimal.NewFromInt(vat),
	})
	require.NoError(t, err)
	return item
}

func TestProcurementItemPriceRules(t *testing.T) {
	l := newOpenList(t)
	item := addLine(t, l, "varza", "12", 19)

	t.Run("gross derives net", func(t *testing.T) {
		err := l.UpdateItem(item.ID, func(i *ProcurementItem) error {
			return i.SetGrossPrice(decimal.RequireFromString("2.38"))
		})
		require.NoError(t, err)
		got, err := l.Item(item.ID)
		require.NoError(t, err)
		assert.True(t, got.PriceNet.Equal(decimal.NewFromInt(2)), "got %s", got.PriceNet)
	})

	t.Run("net derives gross", func(t *testing.T) {
		err := l.UpdateItem(item.ID, func(i *ProcurementItem) error {
			return i.SetNetPrice(decimal.NewFromInt(3))
		})
		require.NoError(t, err)
		got, err := l.Item(item.ID)
		require.NoError(t, err)
		assert.True(t, got.PriceGross.Equal(decimal.RequireFromString("3.57")), "got %s", got.PriceGross)
	})

	t.Run("vat change keeps net durable", func(t *testing.T) {
		err := l.UpdateItem(item.ID, func(i *ProcurementItem) error {
			return i.SetVATPercent(decimal.NewFromInt(9))
		})
		require.NoError(t, err)
		got, err := l.Item(item.ID)
		require.NoError(t, err)
		assert.True(t, got.PriceNet.Equal(decimal.NewFromInt(3)), "net unchanged")
		assert.True(t, got.PriceGross.Equal(decimal.RequireFromString("3.27")), "got %s", got.PriceGross)
	})

	t.Run("negative price rejected", func(t *testing.T) {
		err := l.UpdateItem(item.ID, func(i *ProcurementItem) error {
			return i.SetGrossPrice(decimal.NewFromInt(-1))
		})
		assert.Error(t, err)
	})
}

func TestProcurementListFinalize(t *testing.T) {
	l := newOpenList(t)

	bought := addLine(t, l, "varza", "10", 19)
	require.NoError(t, l.UpdateItem(bought.ID, func(i *ProcurementItem) error {
		if err := i.SetNetPrice(decimal.NewFromInt(2)); err != nil {
			return err
		}
		return i.SetBought(true, decimal.NewFromInt(10))
	}))

	// requested but never bought - must not count toward totals
	skipped := addLine(t, l, "morcovi", "5", 9)
	require.NoError(t, l.UpdateItem(skipped.ID, func(i *ProcurementItem) error {
		return i.SetNetPrice(decimal.NewFromInt(100))
	}))

	require.NoError(t, l.Finalize())

	assert.True(t, l.IsClosed())
	assert.True(t, l.TotalNet.Equal(decimal.NewFromInt(20)), "got %s", l.TotalNet)
	assert.True(t, l.TotalGross.Equal(decimal.RequireFromString("23.8")), "got %s", l.TotalGross)
	assert.NotNil(t, l.ClosedAt)
}

func TestClosedListIsImmutable(t *testing.T) {
	l := newOpenList(t)
	item := addLine(t, l, "varza", "1", 19)
	require.NoError(t, l.Finalize())

	_, err := l.AddItem(ItemInput{ItemName: "x", QuantityRequested: decimal.NewFromInt(1)})
	assert.True(t, errors.Is(err, shared.ErrListClosed) || err == shared.ErrListClosed)

	err = l.UpdateItem(item.ID, func(i *ProcurementItem) error { return i.SetNetPrice(decimal.NewFromInt(1)) })
	assert.Equal(t, shared.ErrListClosed, err)

	err = l.RemoveItem(item.ID)
	assert.Equal(t, shared.ErrListClosed, err)

	err = l.Finalize()
	assert.Equal(t, shared.ErrListClosed, err)
}

func TestRemoveItem(t *testing.T) {
	l := newOpenList(t)
	item := addLine(t, l, "varza", "1", 19)

	require.NoError(t, l.RemoveItem(item.ID))
	assert.Empty(t, l.Items)

	err := l.RemoveItem(uuid.New())
	assert.Equal(t, shared.ErrNotFound, err)
}
