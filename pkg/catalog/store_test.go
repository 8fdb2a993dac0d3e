package catalog

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddItemAssignsLowestFreeSlot(t *testing.T) {
	store := NewStore(3, 10)

	first, err := store.AddItem("cola", 105, 140, 10)
	require.NoError(t, err)
	assert.Equal(t, 0, first)

	second, err := store.AddItem("chips", 75, 220, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, second)

	slot, err := store.Slot(first)
	require.NoError(t, err)
	require.True(t, slot.Occupied())
	assert.Equal(t, "cola", slot.Item.Name)
	assert.Equal(t, 10, slot.Stock)
	assert.Equal(t, 105, slot.Price)
	assert.Equal(t, 10, slot.Item.InitialQuantity)
}

func TestAddItemValidation(t *testing.T) {
	store := NewStore(3, 10)

	cases := []struct {
		name     string
		itemName string
		price    int
		calories int
		quantity int
	}{
		{name: "blank name", itemName: "  ", price: 10, calories: 0, quantity: 1},
		{name: "zero price", itemName: "cola", price: 0, calories: 0, quantity: 1},
		{name: "negative price", itemName: "cola", price: -5, calories: 0, quantity: 1},
		{name: "negative calories", itemName: "cola", price: 10, calories: -1, quantity: 1},
		{name: "negative quantity", itemName: "cola", price: 10, calories: 0, quantity: -1},
		{name: "quantity above slot cap", itemName: "cola", price: 10, calories: 0, quantity: 11},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.AddItem(tc.itemName, tc.price, tc.calories, tc.quantity)
			assert.True(t, IsInvalidArgument(err), "expected invalid argument, got %v", err)
		})
	}
}

func TestAddItemRejectsDuplicateName(t *testing.T) {
	store := NewStore(3, 10)
	_, err := store.AddItem("cola", 105, 140, 10)
	require.NoError(t, err)

	_, err = store.AddItem("cola", 80, 140, 5)
	assert.True(t, IsInvalidArgument(err))
}

func TestAddItemWhenFull(t *testing.T) {
	store := NewStore(2, 10)
	for i := 0; i < 2; i++ {
		_, err := store.AddItem(fmt.Sprintf("item-%d", i), 10, 0, 1)
		require.NoError(t, err)
	}

	_, err := store.AddItem("overflow", 10, 0, 1)
	assert.ErrorIs(t, err, ErrFull)
}

func TestFindByName(t *testing.T) {
	store := NewStore(3, 10)
	_, err := store.AddItem("cola", 105, 140, 10)
	require.NoError(t, err)

	id, err := store.FindByName("cola")
	require.NoError(t, err)
	assert.Equal(t, 0, id)

	_, err = store.FindByName("water")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSetPrice(t *testing.T) {
	store := NewStore(3, 10)
	id, err := store.AddItem("cola", 105, 140, 10)
	require.NoError(t, err)

	require.NoError(t, store.SetPrice(id, 90))
	slot, err := store.Slot(id)
	require.NoError(t, err)
	assert.Equal(t, 90, slot.Price)

	assert.True(t, IsInvalidArgument(store.SetPrice(id, 0)))
	assert.ErrorIs(t, store.SetPrice(1, 90), ErrSlotEmpty)
	assert.ErrorIs(t, store.SetPrice(99, 90), ErrNotFound)
}

func TestDecrementStockNeverGoesNegative(t *testing.T) {
	store := NewStore(3, 10)
	id, err := store.AddItem("cola", 105, 140, 2)
	require.NoError(t, err)

	require.NoError(t, store.DecrementStock(id))
	require.NoError(t, store.DecrementStock(id))

	err = store.DecrementStock(id)
	assert.ErrorIs(t, err, ErrOutOfStock)

	slot, err := store.Slot(id)
	require.NoError(t, err)
	assert.Equal(t, 0, slot.Stock)
}

func TestRestockEnforcesSlotCap(t *testing.T) {
	store := NewStore(3, 10)
	id, err := store.AddItem("cola", 105, 140, 8)
	require.NoError(t, err)

	require.NoError(t, store.Restock(id, 2))
	slot, err := store.Slot(id)
	require.NoError(t, err)
	assert.Equal(t, 10, slot.Stock)

	assert.True(t, IsInvalidArgument(store.Restock(id, 1)))
	assert.True(t, IsInvalidArgument(store.Restock(id, -1)))
	assert.ErrorIs(t, store.Restock(1, 1), ErrSlotEmpty)
}

func TestRestockAllFillsHalfStockedSlots(t *testing.T) {
	store := NewStore(10, 10)
	for i := 0; i < 10; i++ {
		_, err := store.AddItem(fmt.Sprintf("item-%d", i), 10, 0, 5)
		require.NoError(t, err)
	}

	placed, err := store.RestockAll(100, 10)
	require.NoError(t, err)
	// Ten slots each have room for five, so half the budget is placed.
	assert.Equal(t, 50, placed)
	for _, listing := range store.List() {
		assert.Equal(t, 10, listing.Stock)
	}
}

func TestRestockAllStopsWhenBudgetRunsOut(t *testing.T) {
	store := NewStore(4, 10)
	for i := 0; i < 4; i++ {
		_, err := store.AddItem(fmt.Sprintf("item-%d", i), 10, 0, 0)
		require.NoError(t, err)
	}

	placed, err := store.RestockAll(25, 10)
	require.NoError(t, err)
	assert.Equal(t, 25, placed)

	listings := store.List()
	assert.Equal(t, 10, listings[0].Stock)
	assert.Equal(t, 10, listings[1].Stock)
	assert.Equal(t, 5, listings[2].Stock)
	assert.Equal(t, 0, listings[3].Stock)
}

func TestRestockAllSkipsEmptySlots(t *testing.T) {
	store := NewStore(4, 10)
	_, err := store.AddItem("cola", 10, 0, 0)
	require.NoError(t, err)

	placed, err := store.RestockAll(100, 10)
	require.NoError(t, err)
	assert.Equal(t, 10, placed)
}

func TestRestockAllRejectsNegativeBudget(t *testing.T) {
	store := NewStore(4, 10)
	_, err := store.RestockAll(-1, 10)
	assert.True(t, IsInvalidArgument(err))
}

func TestListProjectsOccupiedSlotsInOrder(t *testing.T) {
	store := NewStore(5, 10)
	_, err := store.AddItem("cola", 105, 140, 10)
	require.NoError(t, err)
	_, err = store.AddItem("chips", 75, 220, 5)
	require.NoError(t, err)

	listings := store.List()
	require.Len(t, listings, 2)
	assert.Equal(t, Listing{Slot: 0, Name: "cola", Stock: 10, Price: 105}, listings[0])
	assert.Equal(t, Listing{Slot: 1, Name: "chips", Stock: 5, Price: 75}, listings[1])
}
