package model

// Pair is an ordered 2-tuple of candidates. For the dual-tau channel the two
// legs are interchangeable and get re-ordered by descending pt after ranking;
// for mixed channels leg1 is always the light lepton and leg2 the tau.
type Pair struct {
	Leg1 Candidate
	Leg2 Candidate
}

// EmptyPair returns the "no selection" sentinel: both legs carry a negative
// raw index so Valid reports false.
func EmptyPair() Pair {
	return Pair{
		Leg1: Candidate{RawIdx: invalidRawIdx},
		Leg2: Candidate{RawIdx: invalidRawIdx},
	}
}

// Valid reports whether both legs refer to real reconstructed objects.
func (p Pair) Valid() bool {
	return p.Leg1.Valid() && p.Leg2.Valid()
}

// ChargeProduct returns the product of the two leg charges. Negative means
// opposite sign.
func (p Pair) ChargeProduct() int {
	return p.Leg1.Charge * p.Leg2.Charge
}

// SortLegsByPt returns the pair with leg1 being whichever leg has the higher
// pt. Used for the dual-tau channel only, where leg roles are symmetric.
func (p Pair) SortLegsByPt() Pair {
	if p.Leg2.Pt > p.Leg1.Pt {
		return Pair{Leg1: p.Leg2, Leg2: p.Leg1}
	}
	return p
}
