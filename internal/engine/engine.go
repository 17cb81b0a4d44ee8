// Package engine applies the daily update rules to an inventory.
package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/Veraticus/gilded-rose/internal/classification"
	"github.com/Veraticus/gilded-rose/internal/common"
	"github.com/Veraticus/gilded-rose/internal/model"
)

// ErrNegativeDays is returned when a simulation is asked to run backwards.
var ErrNegativeDays = errors.New("days must not be negative")

// Snapshot is the inventory as it stood at the end of a day.
type Snapshot struct {
	Items []model.Item
	Day   int
}

// Engine advances inventories one day at a time.
type Engine struct {
	classifier Classifier
}

// New creates an engine that categorizes items with the given classifier.
func New(classifier Classifier) *Engine {
	return &Engine{classifier: classifier}
}

// Default creates an engine with the shop's standard classifier.
func Default() *Engine {
	return New(classification.Default())
}

// AdvanceOneDay updates every item in place, in stored order. The category is
// re-derived from the name each time; the engine keeps no reference to items.
func (e *Engine) AdvanceOneDay(items []model.Item) {
	for i := range items {
		category := e.classifier.Classify(items[i].Name)
		items[i].SetState(Transition(category, items[i].State()))
	}
}

// Simulate reports day 0 to observe and then advances items the given number
// of days, reporting after each. Cancellation is honored between days.
func (e *Engine) Simulate(ctx context.Context, items []model.Item, days int, observe Observer) error {
	if days < 0 {
		return fmt.Errorf("%w: got %d", ErrNegativeDays, days)
	}

	if err := notify(observe, 0, items); err != nil {
		return err
	}

	for day := 1; day <= days; day++ {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		e.AdvanceOneDay(items)
		common.LogDebug("Advanced inventory", common.Fields{"day": day, "items": len(items)})

		if err := notify(observe, day, items); err != nil {
			return err
		}
	}

	return nil
}

func notify(observe Observer, day int, items []model.Item) error {
	if observe == nil {
		return nil
	}

	snapshot := Snapshot{
		Day:   day,
		Items: make([]model.Item, len(items)),
	}
	copy(snapshot.Items, items)

	if err := observe(snapshot); err != nil {
		return fmt.Errorf("observer failed on day %d: %w", day, err)
	}
	return nil
}
