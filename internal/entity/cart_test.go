package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	espresso = Product{ID: "p-espresso", Name: "Espresso", Price: 18000}
	latte    = Product{
		ID: "p-latte", Name: "Latte", Price: 24000,
		Variants: []Variant{
			{ID: "v-s", Name: "Small", AdditionalPrice: 0},
			{ID: "v-l", Name: "Large", AdditionalPrice: 6000},
		},
	}
)

func TestCartAddItemMergesOnFullKey(t *testing.T) {
	var c Cart
	large := latte.FindVariant("v-l")

	require.NoError(t, c.AddItem(latte, 1, large, ""))
	require.NoError(t, c.AddItem(latte, 2, large, ""))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Lines()[0].Quantity)

	// a different note is a different line
	require.NoError(t, c.AddItem(latte, 1, large, "less sugar"))
	assert.Equal(t, 2, c.Len())

	// no variant is yet another line
	require.NoError(t, c.AddItem(latte, 1, nil, ""))
	assert.Equal(t, 3, c.Len())
}

func TestCartAddItemRejectsBadQuantity(t *testing.T) {
	var c Cart
	assert.ErrorIs(t, c.AddItem(espresso, 0, nil, ""), ErrQuantityInvalid)
	assert.ErrorIs(t, c.AddItem(espresso, -3, nil, ""), ErrQuantityInvalid)
	assert.True(t, c.Empty())
}

func TestCartQuantityMutationsIgnoreNote(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(espresso, 1, nil, "extra hot"))

	// note is not part of the mutation key
	require.NoError(t, c.IncreaseQuantity(espresso.ID, ""))
	assert.Equal(t, 2, c.Lines()[0].Quantity)

	require.NoError(t, c.DecreaseQuantity(espresso.ID, ""))
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestCartDecreaseAtOneRemovesLine(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(espresso, 1, nil, ""))
	require.NoError(t, c.DecreaseQuantity(espresso.ID, ""))
	assert.True(t, c.Empty())

	assert.ErrorIs(t, c.DecreaseQuantity(espresso.ID, ""), ErrLineNotFound)
}

func TestCartEmptyVariantMatchesOnlyNoVariantLine(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(latte, 1, latte.FindVariant("v-l"), ""))

	assert.ErrorIs(t, c.IncreaseQuantity(latte.ID, ""), ErrLineNotFound)
	assert.ErrorIs(t, c.RemoveItem(latte.ID, ""), ErrLineNotFound)

	require.NoError(t, c.RemoveItem(latte.ID, "v-l"))
	assert.True(t, c.Empty())
}

func TestCartRemoveItemKeepsOtherVariants(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(latte, 1, latte.FindVariant("v-s"), ""))
	require.NoError(t, c.AddItem(latte, 1, latte.FindVariant("v-l"), ""))

	require.NoError(t, c.RemoveItem(latte.ID, "v-s"))
	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, "v-l", lines[0].Variant.ID)
}

func TestCartLinesAreDeepCopies(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(latte, 1, latte.FindVariant("v-l"), ""))

	lines := c.Lines()
	lines[0].Quantity = 99
	lines[0].Variant.AdditionalPrice = 1

	fresh := c.Lines()
	assert.Equal(t, 1, fresh[0].Quantity)
	assert.Equal(t, int64(6000), fresh[0].Variant.AdditionalPrice)
}

func TestCartClear(t *testing.T) {
	var c Cart
	require.NoError(t, c.AddItem(espresso, 2, nil, ""))
	require.NoError(t, c.AddItem(latte, 1, nil, ""))
	c.Clear()
	assert.True(t, c.Empty())
	assert.Equal(t, 0, c.Len())
}
