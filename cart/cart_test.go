package cart_test

import (
	"encoding/json"
	"math"
	"testing"

	"storefront-service/cart"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(id, price int64, classification string) cart.Item {
	return cart.Item{ProductID: id, Name: "Produit", Price: price, Classification: classification}
}

func TestAdd_SameClassificationAccumulates(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 2))
	require.NoError(t, c.Add(item(1, 2500, ""), 3))

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 5, lines[0].Quantity)
}

func TestAdd_DifferentClassificationsAreDistinctLines(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 1))
	require.NoError(t, c.Add(item(7, 7500, "50ml Decant"), 1))

	assert.Equal(t, 2, c.Len())
}

func TestAdd_RejectsNonPositiveQuantity(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.Add(item(1, 2500, ""), 0), cart.ErrInvalidQuantity)
	assert.ErrorIs(t, c.Add(item(1, 2500, ""), -2), cart.ErrInvalidQuantity)
	assert.True(t, c.IsEmpty())
}

func TestTotal(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 2))
	require.NoError(t, c.Add(item(5, 1800, ""), 1))

	assert.Equal(t, int64(6800), c.Total())
	assert.Equal(t, 3, c.Count())
}

func TestUpdateQuantity_ZeroRemoves(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 2))
	require.NoError(t, c.Add(item(5, 1800, ""), 1))

	assert.True(t, c.UpdateQuantity(1, "", 0))
	assert.Equal(t, int64(1800), c.Total())
	assert.Equal(t, 1, c.Len())
}

func TestUpdateQuantity_OnlyTouchesMatchingClassification(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 1))
	require.NoError(t, c.Add(item(7, 7500, "50ml Decant"), 1))

	assert.True(t, c.UpdateQuantity(7, "50ml Decant", 4))
	lines := c.Lines()
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, 4, lines[1].Quantity)

	assert.False(t, c.UpdateQuantity(7, "100ml Decant", 2))
}

func TestRemove_KeyedOnPair(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 1))
	require.NoError(t, c.Add(item(7, 7500, "50ml Decant"), 1))

	assert.True(t, c.Remove(7, "30ml Decant"))
	require.Equal(t, 1, c.Len())
	assert.Equal(t, "50ml Decant", c.Lines()[0].Classification)
	assert.False(t, c.Remove(7, "30ml Decant"))
}

func TestRemoveAll_DropsEveryVariant(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 1))
	require.NoError(t, c.Add(item(7, 7500, "50ml Decant"), 1))
	require.NoError(t, c.Add(item(2, 2000, ""), 1))

	assert.Equal(t, 2, c.RemoveAll(7))
	assert.Equal(t, 1, c.Len())
}

func TestUpdateAllQuantities(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 1))
	require.NoError(t, c.Add(item(7, 7500, "50ml Decant"), 2))

	assert.Equal(t, 2, c.UpdateAllQuantities(7, 3))
	for _, l := range c.Lines() {
		assert.Equal(t, 3, l.Quantity)
	}
	assert.Equal(t, 2, c.UpdateAllQuantities(7, 0))
	assert.True(t, c.IsEmpty())
}

func TestClear(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 1))
	c.Clear()
	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
}

func TestLines_ReturnsCopy(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 1))

	lines := c.Lines()
	lines[0].Quantity = 99
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestScenario_AddMergeThenZero(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 1))
	require.NoError(t, c.Add(item(1, 2500, ""), 2))

	require.Equal(t, 1, c.Len())
	assert.Equal(t, 3, c.Lines()[0].Quantity)
	assert.Equal(t, int64(7500), c.Total())

	c.UpdateQuantity(1, "", 0)
	assert.True(t, c.IsEmpty())
}

func TestJSONRoundTrip(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(7, 4500, "30ml Decant"), 2))

	data, err := json.Marshal(c)
	require.NoError(t, err)

	var decoded cart.Cart
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, c.Lines(), decoded.Lines())
}

func TestAdd_QuantityLimit(t *testing.T) {
	c := cart.New()
	assert.ErrorIs(t, c.Add(item(1, 2500, ""), math.MaxInt), cart.ErrQuantityLimit)
	assert.True(t, c.IsEmpty())

	require.NoError(t, c.Add(item(1, 2500, ""), 98))
	assert.ErrorIs(t, c.Add(item(1, 2500, ""), 5), cart.ErrQuantityLimit)
	assert.ErrorIs(t, c.Add(item(1, 2500, ""), math.MaxInt), cart.ErrQuantityLimit)
	require.NoError(t, c.Add(item(1, 2500, ""), 1))

	assert.Equal(t, cart.MaxQuantity, c.Count())
	assert.Equal(t, int64(2500*cart.MaxQuantity), c.Total())
}

func TestUpdateQuantity_CapsAtLimit(t *testing.T) {
	c := cart.New()
	require.NoError(t, c.Add(item(1, 2500, ""), 1))
	require.NoError(t, c.Add(item(1, 900, "10ml Decant"), 1))

	assert.True(t, c.UpdateQuantity(1, "", math.MaxInt))
	assert.Equal(t, 2, c.UpdateAllQuantities(1, math.MaxInt))
	for _, l := range c.Lines() {
		assert.Equal(t, cart.MaxQuantity, l.Quantity)
	}
	assert.Positive(t, c.Total())
}
