// Package fixture builds inventories from YAML documents.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/Veraticus/gilded-rose/internal/classification"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/model"
	"gopkg.in/yaml.v3"
)

// Document is the on-disk shape of an inventory fixture:
//
//	items:
//	  - name: Aged Brie
//	    sell_in: 2
//	    quality: 0
type Document struct {
	Items []model.Item `yaml:"items"`
}

// Load reads and validates the fixture at path.
func Load(path string) ([]model.Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}

	items, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("fixture %s: %w", path, err)
	}

	return items, nil
}

// Parse decodes a fixture document. Unknown fields are rejected and every
// item is validated against the bounds of its category.
func Parse(data []byte) ([]model.Item, error) {
	var doc Document

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", common.ErrInvalidFixture)
		}
		return nil, fmt.Errorf("%w: %v", common.ErrInvalidFixture, err)
	}

	classifier := classification.Default()
	for i, item := range doc.Items {
		if err := item.Validate(classifier.Classify(item.Name)); err != nil {
			return nil, fmt.Errorf("%w: item at index %d: %v", common.ErrInvalidFixture, i, err)
		}
	}

	if doc.Items == nil {
		doc.Items = []model.Item{}
	}

	return doc.Items, nil
}

// Marshal encodes items as a fixture document.
func Marshal(items []model.Item) ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Document{Items: items}); err != nil {
		return nil, fmt.Errorf("failed to encode fixture: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("failed to encode fixture: %w", err)
	}

	return buf.Bytes(), nil
}

// Default returns the shop's standard starting inventory.
func Default() []model.Item {
	return []model.Item{
		model.NewItem("+5 Dexterity Vest", 10, 20),
		model.NewItem("Aged Brie", 2, 0),
		model.NewItem("Elixir of the Mongoose", 5, 7),
		model.NewItem("Sulfuras, Hand of Ragnaros", 0, model.LegendaryQuality),
		model.NewItem("Sulfuras, Hand of Ragnaros", -1, model.LegendaryQuality),
		model.NewItem("Backstage passes to a TAFKAL80ETC concert", 15, 20),
		model.NewItem("Backstage passes to a TAFKAL80ETC concert", 10, 49),
		model.NewItem("Backstage passes to a TAFKAL80ETC concert", 5, 49),
		model.NewItem("Conjured Mana Cake", 3, 6),
	}
}
