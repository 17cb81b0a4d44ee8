package testutil

import (
	"github.com/Veraticus/gilded-rose/internal/fixture"
	"github.com/Veraticus/gilded-rose/internal/model"
)

// Item names used across tests.
const (
	DexterityVest  = "+5 Dexterity Vest"
	AgedBrie       = "Aged Brie"
	Elixir         = "Elixir of the Mongoose"
	Sulfuras       = "Sulfuras, Hand of Ragnaros"
	BackstagePass  = "Backstage passes to a TAFKAL80ETC concert"
	ConjuredCake   = "Conjured Mana Cake"
	LegendaryValue = model.LegendaryQuality
)

// InventoryBuilder provides a fluent interface for constructing test
// inventories.
type InventoryBuilder struct {
	items []model.Item
}

// NewInventory creates an empty inventory builder.
func NewInventory() *InventoryBuilder {
	return &InventoryBuilder{}
}

// WithItem adds a single item.
func (b *InventoryBuilder) WithItem(name string, sellIn, quality int) *InventoryBuilder {
	b.items = append(b.items, model.NewItem(name, sellIn, quality))
	return b
}

// WithStandardStock adds the shop's standard nine items.
func (b *InventoryBuilder) WithStandardStock() *InventoryBuilder {
	b.items = append(b.items, fixture.Default()...)
	return b
}

// WithOneOfEach adds one item of every category, none of them past their
// sell-by date.
func (b *InventoryBuilder) WithOneOfEach() *InventoryBuilder {
	return b.
		WithItem(Elixir, 5, 7).
		WithItem(AgedBrie, 2, 0).
		WithItem(BackstagePass, 15, 20).
		WithItem(Sulfuras, 0, LegendaryValue).
		WithItem(ConjuredCake, 3, 6)
}

// Build returns a copy of the collected items.
func (b *InventoryBuilder) Build() []model.Item {
	items := make([]model.Item, len(b.items))
	copy(items, b.items)
	return items
}
