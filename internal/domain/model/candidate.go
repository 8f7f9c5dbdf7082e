// Package model contains domain models passed between selection stages.
package model

// Sentinel index used for padding legs of the empty pair.
const invalidRawIdx = -1

// IDLevels holds the discrete identification level of a candidate against
// each background-rejection axis. Light leptons only populate the axes that
// apply to them; unused axes stay zero and are cut with zero thresholds.
type IDLevels struct {
	VsElectron int
	VsMuon     int
	VsJet      int
}

// AtLeast reports whether every axis is at or above the given thresholds.
func (l IDLevels) AtLeast(min IDLevels) bool {
	return l.VsElectron >= min.VsElectron &&
		l.VsMuon >= min.VsMuon &&
		l.VsJet >= min.VsJet
}

// Candidate is a read-only view of one reconstructed particle.
//
// Iso carries the continuous relative isolation of a light lepton (lower is
// more isolated). RawTagger carries the raw vs-jet tagger score of a hadronic
// tau (higher is more signal-like). Only one of the two is meaningful per
// object type; the other stays zero.
type Candidate struct {
	Pt        float64
	Eta       float64
	Phi       float64
	Mass      float64
	Charge    int
	Iso       float64
	RawTagger float64
	ID        IDLevels

	// RawIdx is the stable index into the source collection. Negative means
	// padding/placeholder, non-negative means a real reconstructed object.
	RawIdx int
}

// Valid reports whether the candidate refers to a real reconstructed object.
func (c Candidate) Valid() bool {
	return c.RawIdx >= 0
}

// MET is a missing-transverse-energy object chosen upstream (type 1 or
// PUPPI-corrected, depending on the data-taking year).
type MET struct {
	Pt  float64
	Phi float64
}
