// Package classification maps item names to their behavioral category.
package classification

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Veraticus/gilded-rose/internal/model"
)

// ErrInvalidMarker is returned when a marker cannot be used for matching.
var ErrInvalidMarker = errors.New("invalid marker")

// Marker assigns a category to every name that begins with Prefix.
type Marker struct {
	Prefix   string
	Category model.Category
}

// Classifier resolves names to categories by case-sensitive prefix. Markers
// are checked in order and the first match wins; names matching no marker
// are regular items.
type Classifier struct {
	markers []Marker
}

// NewClassifier creates a classifier over the given markers.
func NewClassifier(markers []Marker) (*Classifier, error) {
	ordered := make([]Marker, 0, len(markers))

	for i, m := range markers {
		if m.Prefix == "" {
			return nil, fmt.Errorf("%w: marker at index %d has an empty prefix", ErrInvalidMarker, i)
		}
		if m.Category == model.CategoryRegular {
			return nil, fmt.Errorf("%w: marker %q maps to the fallback category", ErrInvalidMarker, m.Prefix)
		}
		ordered = append(ordered, m)
	}

	return &Classifier{markers: ordered}, nil
}

// Default returns a classifier over DefaultMarkers.
func Default() *Classifier {
	c, err := NewClassifier(DefaultMarkers())
	if err != nil {
		panic(err) // default markers are static
	}
	return c
}

// Classify returns the category for name. It never fails.
func (c *Classifier) Classify(name string) model.Category {
	for _, m := range c.markers {
		if strings.HasPrefix(name, m.Prefix) {
			return m.Category
		}
	}
	return model.CategoryRegular
}

// Markers returns a copy of the classifier's markers in match order.
func (c *Classifier) Markers() []Marker {
	out := make([]Marker, len(c.markers))
	copy(out, c.markers)
	return out
}
