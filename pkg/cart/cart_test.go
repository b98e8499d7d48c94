package cart

import (
	"testing"

	"github.com/blogbox-store/go-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func laptop() domain.Product {
	return domain.Product{ID: 1, Name: "Laptop", Price: 150000}
}

func mouse() domain.Product {
	return domain.Product{ID: 2, Name: "Mouse", Price: 1500, SalePrice: 1000, IsOnSale: true}
}

func TestCart_AddAccumulatesQuantity(t *testing.T) {
	c := New()

	c.Add(laptop(), 1)
	c.Add(laptop(), 2)

	items := c.Items()
	require.Len(t, items, 1)
	assert.Equal(t, int32(3), items[0].Quantity)
	assert.Equal(t, int32(3), c.ItemCount())
}

func TestCart_AddKeepsInsertionOrder(t *testing.T) {
	c := New()

	c.Add(mouse(), 1)
	c.Add(laptop(), 1)
	c.Add(mouse(), 1)

	items := c.Items()
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].Product.ID)
	assert.Equal(t, int64(1), items[1].Product.ID)
}

func TestCart_RemoveRestoresPreviousState(t *testing.T) {
	c := New()
	c.Add(laptop(), 2)

	before := c.Items()
	c.Add(mouse(), 1)
	c.Remove(mouse().ID)

	assert.Equal(t, before, c.Items())
}

func TestCart_RemoveAbsentIsNoop(t *testing.T) {
	c := New()
	c.Add(laptop(), 1)

	c.Remove(42)

	require.Len(t, c.Items(), 1)
}

func TestCart_UpdateQuantity(t *testing.T) {
	c := New()
	c.Add(laptop(), 1)

	c.UpdateQuantity(laptop().ID, 5)
	assert.Equal(t, int32(5), c.Items()[0].Quantity)

	// Значения меньше 1 игнорируются
	c.UpdateQuantity(laptop().ID, 0)
	assert.Equal(t, int32(5), c.Items()[0].Quantity)

	c.UpdateQuantity(laptop().ID, -1)
	assert.Equal(t, int32(5), c.Items()[0].Quantity)
}

func TestCart_TotalUsesSalePrice(t *testing.T) {
	c := New()

	// 1 * 15.00 + 2 * 10.00 (цена распродажи) = 35.00
	c.Add(domain.Product{ID: 3, Name: "Keyboard", Price: 1500}, 1)
	c.Add(mouse(), 2)

	assert.Equal(t, int64(3500), c.Total())
}

func TestCart_Clear(t *testing.T) {
	c := New()
	c.Add(laptop(), 3)

	c.Clear()

	assert.True(t, c.IsEmpty())
	assert.Equal(t, int64(0), c.Total())
	assert.Empty(t, c.Items())
}

func TestCart_ItemsReturnsCopy(t *testing.T) {
	c := New()
	c.Add(laptop(), 1)

	items := c.Items()
	items[0].Quantity = 99

	assert.Equal(t, int32(1), c.Items()[0].Quantity)
}
