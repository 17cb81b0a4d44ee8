package testutil

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInventoryBuilder(t *testing.T) {
	items := NewInventory().
		WithOneOfEach().
		WithItem("Broken Sword", 0, 3).
		Build()

	require.Len(t, items, 6)
	assert.Equal(t, Elixir, items[0].Name)
	assert.Equal(t, "Broken Sword", items[5].Name)

	assert.Len(t, NewInventory().WithStandardStock().Build(), 9)
}

func TestInventoryBuilder_BuildCopies(t *testing.T) {
	builder := NewInventory().WithItem(AgedBrie, 2, 0)

	first := builder.Build()
	first[0].Quality = 40

	assert.Equal(t, 0, builder.Build()[0].Quality)
}

func TestSetupTestDB(t *testing.T) {
	db := SetupTestDB(t, NewInventory().WithOneOfEach().Build()...)

	items, err := db.Storage.GetItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 5)

	brie := db.MustFindItem(AgedBrie)
	assert.Positive(t, brie.ID)
	assert.Equal(t, 2, brie.SellIn)
}

func TestAdvanceDays(t *testing.T) {
	ctx := context.Background()
	db := SetupTestDB(t, NewInventory().WithOneOfEach().Build()...)

	day := db.AdvanceDays(3)
	assert.Equal(t, 3, day)

	stored, err := db.Storage.GetItem(ctx, db.MustFindItem(AgedBrie).ID)
	require.NoError(t, err)
	assert.Equal(t, -1, stored.SellIn)
	assert.Equal(t, 4, stored.Quality)

	stored, err = db.Storage.GetItem(ctx, db.MustFindItem(Sulfuras).ID)
	require.NoError(t, err)
	assert.Equal(t, 0, stored.SellIn)
	assert.Equal(t, LegendaryValue, stored.Quality)

	history, err := db.Storage.GetHistory(ctx, db.MustFindItem(ConjuredCake).ID)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 1, history[0].Day)
	assert.Equal(t, 4, history[0].Quality)
	assert.Equal(t, 0, history[2].SellIn)
	assert.Equal(t, 0, history[2].Quality)
}
