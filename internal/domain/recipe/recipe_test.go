package recipe

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRecipe(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		r, err := NewRecipe(uuid.New(), "roll tightly")
		require.NoError(t, err)
		assert.True(t, r.IsEmpty())
		assert.Equal(t, 1, r.Version)
	})

	t.Run("nil product rejected", func(t *testing.T) {
		_, err := NewRecipe(uuid.Nil, "")
		assert.Error(t, err)
	})
}

func TestRecipeSetLines(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "")
	require.NoError(t, err)

	cabbage := uuid.New()
	pork := uuid.New()

	t.Run("replaces lines wholesale", func(t *testing.T) {
		err := r.SetLines([]LineInput{
			{ItemID: cabbage, QuantityPerPortion: decimal.RequireFromString("0.3")},
			{ItemID: pork, QuantityPerPortion: decimal.RequireFromString("0.15")},
		})
		require.NoError(t, err)
		assert.Len(t, r.Lines, 2)

		err = r.SetLines([]LineInput{
			{ItemID: cabbage, QuantityPerPortion: decimal.RequireFromString("0.25")},
		})
		require.NoError(t, err)
		assert.Len(t, r.Lines, 1)
	})

	t.Run("negative quantity rejected", func(t *testing.T) {
		err := r.SetLines([]LineInput{
			{ItemID: cabbage, QuantityPerPortion: decimal.RequireFromString("-1")},
		})
		assert.Error(t, err)
	})

	t.Run("duplicate item rejected", func(t *testing.T) {
		err := r.SetLines([]LineInput{
			{ItemID: cabbage, QuantityPerPortion: decimal.NewFromInt(1)},
			{ItemID: cabbage, QuantityPerPortion: decimal.NewFromInt(2)},
		})
		assert.Error(t, err)
	})
}

func TestRecipeRequiredFor(t *testing.T) {
	r, err := NewRecipe(uuid.New(), "")
	require.NoError(t, err)

	cabbage := uuid.New()
	require.NoError(t, r.SetLines([]LineInput{
		{ItemID: cabbage, QuantityPerPortion: decimal.RequireFromString("0.3")},
	}))

	t.Run("scales linearly with portions", func(t *testing.T) {
		required := r.RequiredFor(decimal.NewFromInt(40))
		assert.True(t, required[cabbage].Equal(decimal.NewFromInt(12)), "got %s", required[cabbage])
	})

	t.Run("zero portions contribute nothing", func(t *testing.T) {
		required := r.RequiredFor(decimal.Zero)
		assert.Empty(t, required)
	})

	t.Run("empty recipe draws nothing", func(t *testing.T) {
		empty, err := NewRecipe(uuid.New(), "")
		require.NoError(t, err)
		assert.Empty(t, empty.RequiredFor(decimal.NewFromInt(10)))
	})
}
