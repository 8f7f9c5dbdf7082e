// Package pairing builds candidate pairs per event and applies the
// preselection cut flow over them.
package pairing

import (
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// Combinations returns, per event, every unordered 2-combination of one
// collection: each object is paired only with partners at a strictly larger
// index, so there are no self-pairs and no duplicate unordered pairs.
// Cardinality per event is C(n, 2); zero when fewer than two objects remain.
func Combinations(events [][]model.Candidate) [][]model.Pair {
	out := make([][]model.Pair, len(events))
	for i, objs := range events {
		n := len(objs)
		if n < 2 {
			out[i] = []model.Pair{}
			continue
		}
		pairs := make([]model.Pair, 0, n*(n-1)/2)
		for a := 0; a < n; a++ {
			for b := a + 1; b < n; b++ {
				pairs = append(pairs, model.Pair{Leg1: objs[a], Leg2: objs[b]})
			}
		}
		out[i] = pairs
	}
	return out
}

// CrossProduct returns, per event, the full cross product of two distinct
// collections, leg1 drawn from the first and leg2 from the second.
// Cardinality per event is n1*n2; zero when either collection is empty.
func CrossProduct(first, second [][]model.Candidate) [][]model.Pair {
	out := make([][]model.Pair, len(first))
	for i := range first {
		a := first[i]
		b := second[i]
		pairs := make([]model.Pair, 0, len(a)*len(b))
		for _, l1 := range a {
			for _, l2 := range b {
				pairs = append(pairs, model.Pair{Leg1: l1, Leg2: l2})
			}
		}
		out[i] = pairs
	}
	return out
}
