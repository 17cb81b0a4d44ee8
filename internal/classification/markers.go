package classification

import "github.com/Veraticus/gilded-rose/internal/model"

// Name prefixes that mark the special item categories.
const (
	AgedBrieMarker      = "Aged Brie"
	BackstagePassMarker = "Backstage passes"
	LegendaryMarker     = "Sulfuras"
	ConjuredMarker      = "Conjured"
)

// DefaultMarkers returns the shop's category markers in match order.
func DefaultMarkers() []Marker {
	return []Marker{
		{Prefix: AgedBrieMarker, Category: model.CategoryAgedBrie},
		{Prefix: BackstagePassMarker, Category: model.CategoryBackstagePass},
		{Prefix: LegendaryMarker, Category: model.CategoryLegendary},
		{Prefix: ConjuredMarker, Category: model.CategoryConjured},
	}
}
