// Package region computes the per-event analysis-region flags from the
// selected pair: charge relation, isolation categories, kinematic sidebands.
package region

import (
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// Flag names shared by all channels.
const (
	FlagOS = "os"
	FlagSS = "ss"
)

// Dual-tau grid flags. The six combined regions are overlapping informative
// flags, not a mutually exclusive partition: regions sharing a sign feed the
// background estimation by extrapolation.
const (
	FlagTau1Iso    = "tau1_iso"
	FlagTau1NonIso = "tau1_noniso"
	FlagTau2Iso    = "tau2_iso"
	FlagTau2NonIso = "tau2_noniso"

	FlagOSIsoIso       = "os_iso_iso"
	FlagOSIsoNonIso    = "os_iso_noniso"
	FlagOSNonIsoNonIso = "os_noniso_noniso"
	FlagSSIsoIso       = "ss_iso_iso"
	FlagSSIsoNonIso    = "ss_iso_noniso"
	FlagSSNonIsoNonIso = "ss_noniso_noniso"
)

// Mixed-channel flags.
const (
	FlagLepIso    = "lep_iso"
	FlagLepNonIso = "lep_noniso"
	FlagTauIso    = "tau_iso"
	FlagTauNonIso = "tau_noniso"
	FlagMTLow     = "mt_low"
	FlagMTHigh    = "mt_high"

	FlagOSIsoLowMT     = "os_iso_lowmt"
	FlagSSIsoLowMT     = "ss_iso_lowmt"
	FlagOSNonIsoLowMT  = "os_noniso_lowmt"
	FlagSSNonIsoLowMT  = "ss_noniso_lowmt"
	FlagOSIsoHighMT    = "os_iso_highmt"
	FlagSSIsoHighMT    = "ss_iso_highmt"
)

// Classifier reduces pair-level predicates to event-level category flags.
type Classifier struct {
	dual bool

	// Discrete vs-jet levels bounding the tau isolation states.
	tauTightWP int
	tauLooseWP int

	// Continuous relative-isolation boundaries for the light lepton.
	lepIsoTight float64
	lepIsoLoose float64

	// Low/high transverse-mass boundary for the mixed channels.
	mtMax float64
}

// NewDualTau creates the classifier of the dual-hadronic-tau channel.
func NewDualTau(tauTightWP, tauLooseWP int) *Classifier {
	return &Classifier{
		dual:       true,
		tauTightWP: tauTightWP,
		tauLooseWP: tauLooseWP,
	}
}

// NewLepTau creates the classifier of the mixed lepton+tau channels.
func NewLepTau(tauTightWP, tauLooseWP int, lepIsoTight, lepIsoLoose, mtMax float64) *Classifier {
	return &Classifier{
		tauTightWP:  tauTightWP,
		tauLooseWP:  tauLooseWP,
		lepIsoTight: lepIsoTight,
		lepIsoLoose: lepIsoLoose,
		mtMax:       mtMax,
	}
}

// Classify computes every category flag for every event, reducing pair-level
// booleans with an "any surviving pair satisfies" reduction that defaults to
// false. Events with zero surviving pairs carry false everywhere; no
// undefined state escapes. met may be nil for the dual-tau channel.
func (c *Classifier) Classify(events [][]model.Pair, met []model.MET) (*model.Flags, error) {
	flags := model.NewFlags(len(events))

	os := c.reduce(events, func(p model.Pair, _ int) bool { return p.ChargeProduct() < 0 })
	ss := c.reduce(events, func(p model.Pair, _ int) bool { return p.ChargeProduct() >= 0 })
	if err := flags.Set(FlagOS, os); err != nil {
		return nil, err
	}
	if err := flags.Set(FlagSS, ss); err != nil {
		return nil, err
	}

	if c.dual {
		return flags, c.classifyDual(events, flags)
	}
	return flags, c.classifyMixed(events, met, flags)
}

func (c *Classifier) classifyDual(events [][]model.Pair, flags *model.Flags) error {
	iso1 := func(p model.Pair, _ int) bool { return c.tauIso(p.Leg1) }
	non1 := func(p model.Pair, _ int) bool { return c.tauNonIso(p.Leg1) }
	iso2 := func(p model.Pair, _ int) bool { return c.tauIso(p.Leg2) }
	non2 := func(p model.Pair, _ int) bool { return c.tauNonIso(p.Leg2) }
	osPair := func(p model.Pair, _ int) bool { return p.ChargeProduct() < 0 }
	ssPair := func(p model.Pair, _ int) bool { return p.ChargeProduct() >= 0 }

	set := map[string]func(model.Pair, int) bool{
		FlagTau1Iso:    iso1,
		FlagTau1NonIso: non1,
		FlagTau2Iso:    iso2,
		FlagTau2NonIso: non2,

		FlagOSIsoIso:       all(osPair, iso1, iso2),
		FlagOSIsoNonIso:    all(osPair, iso1, non2),
		FlagOSNonIsoNonIso: all(osPair, non1, non2),
		FlagSSIsoIso:       all(ssPair, iso1, iso2),
		FlagSSIsoNonIso:    all(ssPair, iso1, non2),
		FlagSSNonIsoNonIso: all(ssPair, non1, non2),
	}
	for _, name := range []string{
		FlagTau1Iso, FlagTau1NonIso, FlagTau2Iso, FlagTau2NonIso,
		FlagOSIsoIso, FlagOSIsoNonIso, FlagOSNonIsoNonIso,
		FlagSSIsoIso, FlagSSIsoNonIso, FlagSSNonIsoNonIso,
	} {
		if err := flags.Set(name, c.reduce(events, set[name])); err != nil {
			return err
		}
	}
	return nil
}

func (c *Classifier) classifyMixed(events [][]model.Pair, met []model.MET, flags *model.Flags) error {
	lepIso := func(p model.Pair, _ int) bool { return p.Leg1.Iso < c.lepIsoTight }
	lepNon := func(p model.Pair, _ int) bool {
		return p.Leg1.Iso >= c.lepIsoTight && p.Leg1.Iso < c.lepIsoLoose
	}
	tauIso := func(p model.Pair, _ int) bool { return c.tauIso(p.Leg2) }
	tauNon := func(p model.Pair, _ int) bool { return c.tauNonIso(p.Leg2) }
	mtLow := func(p model.Pair, i int) bool {
		return model.TransverseMass(p.Leg1, c.metAt(met, i)) < c.mtMax
	}
	mtHigh := func(p model.Pair, i int) bool {
		return model.TransverseMass(p.Leg1, c.metAt(met, i)) >= c.mtMax
	}
	osPair := func(p model.Pair, _ int) bool { return p.ChargeProduct() < 0 }
	ssPair := func(p model.Pair, _ int) bool { return p.ChargeProduct() >= 0 }

	set := map[string]func(model.Pair, int) bool{
		FlagLepIso:    lepIso,
		FlagLepNonIso: lepNon,
		FlagTauIso:    tauIso,
		FlagTauNonIso: tauNon,
		FlagMTLow:     mtLow,
		FlagMTHigh:    mtHigh,

		FlagOSIsoLowMT:    all(osPair, tauIso, mtLow),
		FlagSSIsoLowMT:    all(ssPair, tauIso, mtLow),
		FlagOSNonIsoLowMT: all(osPair, tauNon, mtLow),
		FlagSSNonIsoLowMT: all(ssPair, tauNon, mtLow),
		FlagOSIsoHighMT:   all(osPair, tauIso, mtHigh),
		FlagSSIsoHighMT:   all(ssPair, tauIso, mtHigh),
	}
	for _, name := range []string{
		FlagLepIso, FlagLepNonIso, FlagTauIso, FlagTauNonIso, FlagMTLow, FlagMTHigh,
		FlagOSIsoLowMT, FlagSSIsoLowMT, FlagOSNonIsoLowMT, FlagSSNonIsoLowMT,
		FlagOSIsoHighMT, FlagSSIsoHighMT,
	} {
		if err := flags.Set(name, c.reduce(events, set[name])); err != nil {
			return err
		}
	}
	return nil
}

// reduce maps a pair predicate to event level: true if any valid surviving
// pair satisfies it, false otherwise (including events with no pairs).
func (c *Classifier) reduce(events [][]model.Pair, pred func(model.Pair, int) bool) []bool {
	out := make([]bool, len(events))
	for i, pairs := range events {
		for _, p := range pairs {
			if p.Valid() && pred(p, i) {
				out[i] = true
				break
			}
		}
	}
	return out
}

func (c *Classifier) tauIso(t model.Candidate) bool {
	return t.ID.VsJet >= c.tauTightWP
}

func (c *Classifier) tauNonIso(t model.Candidate) bool {
	return t.ID.VsJet < c.tauTightWP && t.ID.VsJet >= c.tauLooseWP
}

func (c *Classifier) metAt(met []model.MET, i int) model.MET {
	if i < len(met) {
		return met[i]
	}
	return model.MET{}
}

func all(preds ...func(model.Pair, int) bool) func(model.Pair, int) bool {
	return func(p model.Pair, i int) bool {
		for _, pred := range preds {
			if !pred(p, i) {
				return false
			}
		}
		return true
	}
}
