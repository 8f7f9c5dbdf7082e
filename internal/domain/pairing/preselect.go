package pairing

import (
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// Cut is one named boolean predicate over a pair.
type Cut struct {
	Name string
	Pass func(model.Pair) bool
}

// Preselector applies an ordered list of named cuts to per-event pair
// collections, recording each step in the audit trail.
type Preselector struct {
	cuts []Cut
}

// NewPreselector creates a Preselector over the given ordered cuts.
func NewPreselector(cuts []Cut) *Preselector {
	return &Preselector{cuts: cuts}
}

// Apply evaluates every cut on every pair, whether or not earlier cuts
// already eliminated it, records each cumulative mask under the cut's name,
// and finally drops the pairs failing the last cumulative mask. The input
// collections are not modified.
func (p *Preselector) Apply(events [][]model.Pair, steps *model.StepMasks) ([][]model.Pair, error) {
	for _, cut := range p.cuts {
		predicate := make([][]bool, len(events))
		for i, pairs := range events {
			row := make([]bool, len(pairs))
			for j, pair := range pairs {
				row[j] = cut.Pass(pair)
			}
			predicate[i] = row
		}
		if err := steps.Add(cut.Name, predicate); err != nil {
			return nil, err
		}
	}

	final := steps.Final()
	out := make([][]model.Pair, len(events))
	for i, pairs := range events {
		kept := make([]model.Pair, 0, len(pairs))
		for j, pair := range pairs {
			if final == nil || final[i][j] {
				kept = append(kept, pair)
			}
		}
		out[i] = kept
	}
	return out, nil
}

// ValidLegs is the initial validity cut: both raw indices must be
// non-negative for a pair to survive anything at all.
func ValidLegs() Cut {
	return Cut{
		Name: "valid_legs",
		Pass: func(p model.Pair) bool { return p.Valid() },
	}
}

// MinDeltaR cuts on the angular separation between the two legs.
func MinDeltaR(min float64) Cut {
	return Cut{
		Name: "dr_separation",
		Pass: func(p model.Pair) bool { return model.DeltaR(p.Leg1, p.Leg2) > min },
	}
}

// MinPairMass cuts on the invariant mass of the pair.
func MinPairMass(min float64) Cut {
	return Cut{
		Name: "pair_mass",
		Pass: func(p model.Pair) bool { return model.InvariantMass(p.Leg1, p.Leg2) > min },
	}
}

// MinLegPt cuts on the transverse momenta of the two legs.
func MinLegPt(leg1Min, leg2Min float64) Cut {
	return Cut{
		Name: "leg_pt",
		Pass: func(p model.Pair) bool { return p.Leg1.Pt > leg1Min && p.Leg2.Pt > leg2Min },
	}
}
