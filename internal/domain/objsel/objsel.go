// Package objsel applies per-object quality predicates before pairing.
package objsel

import (
	"sort"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// Correction substitutes the nominal pt and mass of a hadronic tau with an
// externally computed energy-corrected variant. It is consumed here, never
// computed: the energy-scale machinery lives outside this core.
type Correction func(model.Candidate) (pt, mass float64)

// Filter shrinks per-event candidate collections to the objects passing the
// configured discrete identification thresholds.
type Filter struct {
	thresholds model.IDLevels
	correct    Correction
	isMC       bool
}

// Option applies a configuration option to the Filter.
type Option func(*Filter)

// WithCorrection sets the tau energy correction applied before the ID cut on
// Monte-Carlo events. The canonical object is never mutated; a corrected
// copy is cut and propagated.
func WithCorrection(c Correction) Option {
	return func(f *Filter) {
		if c != nil {
			f.correct = c
		}
	}
}

// WithMonteCarlo gates the energy-correction substitution.
func WithMonteCarlo(isMC bool) Option {
	return func(f *Filter) {
		f.isMC = isMC
	}
}

// New creates a Filter cutting at the given discrete ID thresholds.
func New(thresholds model.IDLevels, opts ...Option) *Filter {
	f := &Filter{thresholds: thresholds}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Apply returns, per event, the sub-collection of candidates whose ID level
// on every axis is at or above the configured minimum. An event may end with
// zero surviving objects; that propagates as an empty collection, never as a
// failure. Inputs are treated as read-only snapshots.
func (f *Filter) Apply(events [][]model.Candidate) [][]model.Candidate {
	out := make([][]model.Candidate, len(events))
	for i, objs := range events {
		kept := make([]model.Candidate, 0, len(objs))
		for _, obj := range objs {
			if !obj.Valid() {
				continue
			}
			if f.isMC && f.correct != nil {
				obj.Pt, obj.Mass = f.correct(obj)
			}
			if obj.ID.AtLeast(f.thresholds) {
				kept = append(kept, obj)
			}
		}
		out[i] = kept
	}
	return out
}

// SortByIsolation orders each event's candidates ascending by isolation
// score, most isolated first. The pairing tie-break logic relies on the
// first entries of a collection being its best candidates.
func SortByIsolation(events [][]model.Candidate) {
	for _, objs := range events {
		sort.SliceStable(objs, func(a, b int) bool {
			return objs[a].Iso < objs[b].Iso
		})
	}
}

// SortByTagger orders each event's candidates descending by raw tagger
// score, most signal-like first.
func SortByTagger(events [][]model.Candidate) {
	for _, objs := range events {
		sort.SliceStable(objs, func(a, b int) bool {
			return objs[a].RawTagger > objs[b].RawTagger
		})
	}
}
