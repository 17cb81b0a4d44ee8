package engine

import "github.com/Veraticus/gilded-rose/internal/model"

// Classifier defines the contract for resolving an item's category.
type Classifier interface {
	Classify(name string) model.Category
}

// Observer receives the inventory at the end of each simulated day. Day 0 is
// the starting inventory. Returning an error stops the simulation.
type Observer func(Snapshot) error
