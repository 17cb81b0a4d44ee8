package engine

import "github.com/Veraticus/gilded-rose/internal/model"

// Backstage pass tiers, compared against sell_in at the start of the day.
const (
	backstageDoubleBelow = 11
	backstageTripleBelow = 6
)

// Transition returns the state an item of the given category reaches after
// one day. Rates are chosen from the sell_in the day started with, and the
// quality bounds are applied once to the day's total change.
func Transition(category model.Category, s model.State) model.State {
	switch category {
	case model.CategoryRegular:
		return updateRegular(s)
	case model.CategoryConjured:
		return updateConjured(s)
	case model.CategoryAgedBrie:
		return updateAgedBrie(s)
	case model.CategoryBackstagePass:
		return updateBackstagePass(s)
	case model.CategoryLegendary:
		return s
	default:
		return updateRegular(s)
	}
}

func updateRegular(s model.State) model.State {
	delta := -1
	if s.SellIn <= 0 {
		delta = -2
	}

	return model.State{
		SellIn:  s.SellIn - 1,
		Quality: clampQuality(s.Quality + delta),
	}
}

func updateConjured(s model.State) model.State {
	return model.State{
		SellIn:  s.SellIn - 1,
		Quality: clampQuality(s.Quality - 2),
	}
}

func updateAgedBrie(s model.State) model.State {
	delta := 1
	if s.SellIn <= 0 {
		delta = 2
	}

	return model.State{
		SellIn:  s.SellIn - 1,
		Quality: clampQuality(s.Quality + delta),
	}
}

func updateBackstagePass(s model.State) model.State {
	// The event has passed: worthless from here on.
	if s.SellIn <= 0 {
		return model.State{SellIn: s.SellIn - 1, Quality: 0}
	}

	var delta int
	switch {
	case s.SellIn < backstageTripleBelow:
		delta = 3
	case s.SellIn < backstageDoubleBelow:
		delta = 2
	default:
		delta = 1
	}

	return model.State{
		SellIn:  s.SellIn - 1,
		Quality: clampQuality(s.Quality + delta),
	}
}

func clampQuality(q int) int {
	return min(max(q, model.MinQuality), model.MaxQuality)
}
