package model

// Category is the behavioral class an item falls into. It is derived from the
// item's name on every update and never stored alongside the item.
type Category int

// Item categories.
const (
	// CategoryRegular loses quality over time, twice as fast once expired.
	CategoryRegular Category = iota
	// CategoryAgedBrie gains quality over time, twice as fast once expired.
	CategoryAgedBrie
	// CategoryBackstagePass gains quality as the event nears, then drops to zero.
	CategoryBackstagePass
	// CategoryLegendary never changes.
	CategoryLegendary
	// CategoryConjured loses quality at double the regular rate.
	CategoryConjured
)

// Quality bounds.
const (
	MinQuality = 0
	MaxQuality = 50
	// LegendaryQuality is the conventional quality of a legendary item.
	LegendaryQuality = 80
)

// Categories returns every category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryRegular,
		CategoryAgedBrie,
		CategoryBackstagePass,
		CategoryLegendary,
		CategoryConjured,
	}
}

func (c Category) String() string {
	switch c {
	case CategoryRegular:
		return "regular"
	case CategoryAgedBrie:
		return "aged_brie"
	case CategoryBackstagePass:
		return "backstage_pass"
	case CategoryLegendary:
		return "legendary"
	case CategoryConjured:
		return "conjured"
	default:
		return "unknown"
	}
}

// Bounded reports whether the category's quality is held within
// [MinQuality, MaxQuality].
func (c Category) Bounded() bool {
	return c != CategoryLegendary
}
