// Package model defines the core data structures for the gilded-rose inventory.
package model

import (
	"fmt"
	"time"
)

// State is the mutable part of an item that evolves once per day.
type State struct {
	SellIn  int
	Quality int
}

// Item is a single piece of stock. Name is fixed for the item's lifetime and
// determines its category. SellIn has no floor: it keeps going negative after
// the sell-by date.
type Item struct {
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"-"`
	Name      string    `json:"name" yaml:"name"`
	ID        int64     `json:"id,omitempty" yaml:"-"`
	SellIn    int       `json:"sell_in" yaml:"sell_in"`
	Quality   int       `json:"quality" yaml:"quality"`
}

// NewItem creates an item with the given name and starting state.
func NewItem(name string, sellIn, quality int) Item {
	return Item{
		Name:    name,
		SellIn:  sellIn,
		Quality: quality,
	}
}

// State returns the item's current state.
func (i Item) State() State {
	return State{SellIn: i.SellIn, Quality: i.Quality}
}

// SetState overwrites the item's state.
func (i *Item) SetState(s State) {
	i.SellIn = s.SellIn
	i.Quality = s.Quality
}

// String renders the item as "name, sell_in, quality".
func (i Item) String() string {
	return fmt.Sprintf("%s, %d, %d", i.Name, i.SellIn, i.Quality)
}

// Validate checks the item against the bounds of its category.
func (i Item) Validate(category Category) error {
	if i.Name == "" {
		return fmt.Errorf("item name is required")
	}

	if category.Bounded() && (i.Quality < MinQuality || i.Quality > MaxQuality) {
		return fmt.Errorf("quality must be between %d and %d, got %d", MinQuality, MaxQuality, i.Quality)
	}

	return nil
}

// HistoryEntry records an item's state at the end of a simulated day.
type HistoryEntry struct {
	RecordedAt time.Time
	ItemID     int64
	Day        int
	SellIn     int
	Quality    int
}
