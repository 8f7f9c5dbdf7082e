// Package ranking reduces an event's surviving pair list to exactly one
// pair via a deterministic multi-criterion tie-break cascade.
package ranking

import (
	"math"
	"sort"
)

// Direction states whether larger or smaller criterion values win.
type Direction int

// Criterion directions.
const (
	Descending Direction = iota
	Ascending
)

// Criterion is one stage of the tie-break cascade: a value extractor, a
// preference direction, and an equality tolerance. Epsilon zero means exact
// numeric equality; a positive epsilon absorbs the known off-tolerance of
// raw tagger scores.
type Criterion[T any] struct {
	Name      string
	Value     func(T) float64
	Direction Direction
	Epsilon   float64
}

func (c Criterion[T]) better(a, b float64) bool {
	if c.Direction == Ascending {
		return a < b
	}
	return a > b
}

func (c Criterion[T]) equal(a, b float64) bool {
	if c.Epsilon > 0 {
		return math.Abs(a-b) <= c.Epsilon
	}
	return a == b
}

// Cascade ranks items by the ordered criteria list: stage i performs a full
// stable sort of the current order on criterion i; if fewer than two items
// remain or the top two differ on criterion i, the cascade terminates,
// otherwise the winning order propagates into stage i+1. The returned slice
// is a new ranked order; the input is left untouched.
func Cascade[T any](items []T, criteria []Criterion[T]) []T {
	ranked := make([]T, len(items))
	copy(ranked, items)
	if len(ranked) < 2 {
		return ranked
	}

	for _, crit := range criteria {
		sort.SliceStable(ranked, func(a, b int) bool {
			return crit.better(crit.Value(ranked[a]), crit.Value(ranked[b]))
		})
		// Only the top two decide whether the next criterion is consulted.
		if !crit.equal(crit.Value(ranked[0]), crit.Value(ranked[1])) {
			break
		}
	}
	return ranked
}

// SelectOne returns the single best item per the cascade, with ok=false when
// the input is empty. A single-item input short-circuits: the sole item is
// kept verbatim.
func SelectOne[T any](items []T, criteria []Criterion[T]) (T, bool) {
	var zero T
	switch len(items) {
	case 0:
		return zero, false
	case 1:
		return items[0], true
	}
	return Cascade(items, criteria)[0], true
}
