package model

import "math"

// DeltaPhi returns the azimuthal separation wrapped into [-pi, pi].
func DeltaPhi(a, b float64) float64 {
	d := math.Mod(a-b, 2*math.Pi)
	switch {
	case d > math.Pi:
		d -= 2 * math.Pi
	case d < -math.Pi:
		d += 2 * math.Pi
	}
	return d
}

// DeltaR returns the angular separation between two candidates in the
// eta-phi plane.
func DeltaR(a, b Candidate) float64 {
	dEta := a.Eta - b.Eta
	dPhi := DeltaPhi(a.Phi, b.Phi)
	return math.Sqrt(dEta*dEta + dPhi*dPhi)
}

// InvariantMass returns the invariant mass of the two-candidate system.
func InvariantMass(a, b Candidate) float64 {
	pxa, pya, pza, ea := fourVector(a)
	pxb, pyb, pzb, eb := fourVector(b)
	e := ea + eb
	px := pxa + pxb
	py := pya + pyb
	pz := pza + pzb
	m2 := e*e - px*px - py*py - pz*pz
	if m2 <= 0 {
		return 0
	}
	return math.Sqrt(m2)
}

// TransverseMass returns the transverse mass of a candidate against a
// missing-transverse-energy object.
func TransverseMass(c Candidate, met MET) float64 {
	mt2 := 2 * c.Pt * met.Pt * (1 - math.Cos(DeltaPhi(c.Phi, met.Phi)))
	if mt2 <= 0 {
		return 0
	}
	return math.Sqrt(mt2)
}

func fourVector(c Candidate) (px, py, pz, e float64) {
	px = c.Pt * math.Cos(c.Phi)
	py = c.Pt * math.Sin(c.Phi)
	pz = c.Pt * math.Sinh(c.Eta)
	p2 := px*px + py*py + pz*pz
	e = math.Sqrt(p2 + c.Mass*c.Mass)
	return px, py, pz, e
}
