package ranking

import (
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// DualTauCriteria is the tie-break chain of the dual-hadronic-tau channel,
// all descending: leg1 tagger score, leg2 tagger score, leg1 pt, leg2 pt.
// Tagger comparisons carry the tolerance of the raw scores.
func DualTauCriteria(taggerEpsilon float64) []Criterion[model.Pair] {
	return []Criterion[model.Pair]{
		{
			Name:      "leg1_tagger",
			Value:     func(p model.Pair) float64 { return p.Leg1.RawTagger },
			Direction: Descending,
			Epsilon:   taggerEpsilon,
		},
		{
			Name:      "leg2_tagger",
			Value:     func(p model.Pair) float64 { return p.Leg2.RawTagger },
			Direction: Descending,
			Epsilon:   taggerEpsilon,
		},
		{
			Name:      "leg1_pt",
			Value:     func(p model.Pair) float64 { return p.Leg1.Pt },
			Direction: Descending,
		},
		{
			Name:      "leg2_pt",
			Value:     func(p model.Pair) float64 { return p.Leg2.Pt },
			Direction: Descending,
		},
	}
}

// LepTauCriteria is the tie-break chain of the mixed channels: leg1
// isolation ascending (most isolated wins), leg1 pt descending, leg2 tagger
// score descending, leg2 pt descending.
func LepTauCriteria(taggerEpsilon float64) []Criterion[model.Pair] {
	return []Criterion[model.Pair]{
		{
			Name:      "leg1_iso",
			Value:     func(p model.Pair) float64 { return p.Leg1.Iso },
			Direction: Ascending,
		},
		{
			Name:      "leg1_pt",
			Value:     func(p model.Pair) float64 { return p.Leg1.Pt },
			Direction: Descending,
		},
		{
			Name:      "leg2_tagger",
			Value:     func(p model.Pair) float64 { return p.Leg2.RawTagger },
			Direction: Descending,
			Epsilon:   taggerEpsilon,
		},
		{
			Name:      "leg2_pt",
			Value:     func(p model.Pair) float64 { return p.Leg2.Pt },
			Direction: Descending,
		},
	}
}
