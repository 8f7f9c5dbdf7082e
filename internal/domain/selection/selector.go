// Package selection wires the per-channel pipeline: object filter, pair
// generator, preselection, ranking, region classification. Three channels
// share this one skeleton and differ only in their parameters.
package selection

import (
	"context"
	"fmt"

	"github.com/gsaha009/CPinHToTauTau/internal/config"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/objsel"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/pairing"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/ranking"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/region"
)

// Input is one event batch: per-event candidate collections already
// index-selected upstream, plus the MET collection chosen for the campaign
// (type-1 or PUPPI, decided by the caller). Leptons stays empty for the
// dual-tau channel. All collections are read-only snapshots for the
// duration of one Select call.
type Input struct {
	Leptons [][]model.Candidate
	Taus    [][]model.Candidate
	MET     []model.MET
}

// Events returns the number of events in the batch.
func (in Input) Events() int {
	return len(in.Taus)
}

// Slice returns the sub-batch covering events [lo, hi). Collections are
// shared, not copied; selection never mutates them.
func (in Input) Slice(lo, hi int) Input {
	out := Input{Taus: in.Taus[lo:hi]}
	if in.Leptons != nil {
		out.Leptons = in.Leptons[lo:hi]
	}
	if in.MET != nil {
		out.MET = in.MET[lo:hi]
	}
	return out
}

// Selector selects, per event, the single best candidate pair of a channel
// and classifies it into analysis regions.
type Selector struct {
	channel    string
	dual       bool
	lepFilter  *objsel.Filter
	tauFilter  *objsel.Filter
	presel     *pairing.Preselector
	criteria   []ranking.Criterion[model.Pair]
	classifier *region.Classifier
}

// Option applies a configuration option to the Selector.
type Option func(*selectorParams)

type selectorParams struct {
	correction objsel.Correction
}

// WithTauCorrection sets the externally supplied tau energy correction,
// applied before the ID cut on Monte-Carlo events.
func WithTauCorrection(c objsel.Correction) Option {
	return func(p *selectorParams) {
		if c != nil {
			p.correction = c
		}
	}
}

// New creates the Selector of one channel from the analysis configuration.
// Malformed configuration (unknown channel, missing working-point key) is a
// hard failure surfaced immediately.
func New(ctx context.Context, channel string, cfg *config.Config, opts ...Option) (*Selector, error) {
	params := &selectorParams{}
	for _, opt := range opts {
		opt(params)
	}

	cuts, err := cfg.Cuts(channel)
	if err != nil {
		return nil, err
	}
	thresholds, err := cfg.IDThresholds(channel)
	if err != nil {
		return nil, err
	}
	tauTight, tauLoose, err := cfg.TauIsoBounds()
	if err != nil {
		return nil, err
	}

	s := &Selector{
		channel: channel,
		dual:    channel == config.ChannelTauTau,
		tauFilter: objsel.New(
			model.IDLevels{
				VsElectron: thresholds.VsElectron,
				VsMuon:     thresholds.VsMuon,
				VsJet:      thresholds.VsJet,
			},
			objsel.WithCorrection(params.correction),
			objsel.WithMonteCarlo(cfg.IsMC),
		),
		presel: pairing.NewPreselector([]pairing.Cut{
			pairing.ValidLegs(),
			pairing.MinDeltaR(cuts.DeltaRMin),
			pairing.MinPairMass(cuts.PairMassMin),
			pairing.MinLegPt(cuts.Leg1PtMin, cuts.Leg2PtMin),
		}),
	}

	if s.dual {
		s.criteria = ranking.DualTauCriteria(cfg.TaggerTieEpsilon)
		s.classifier = region.NewDualTau(tauTight, tauLoose)
	} else {
		// Lepton ID selection already happened upstream; the lepton filter
		// only drops padding entries.
		s.lepFilter = objsel.New(model.IDLevels{})
		s.criteria = ranking.LepTauCriteria(cfg.TaggerTieEpsilon)
		s.classifier = region.NewLepTau(
			tauTight, tauLoose,
			cfg.LeptonIsoTight, cfg.LeptonIsoLoose,
			cfg.MTMax,
		)
	}
	return s, nil
}

// Channel returns the channel name this selector was built for.
func (s *Selector) Channel() string {
	return s.channel
}

// Select runs the full pipeline over one batch. It is a pure function: the
// input is never mutated, events carry no cross-event dependency, and the
// returned Selection holds exactly one pair slot per event.
func (s *Selector) Select(ctx context.Context, in Input) (*model.Selection, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := s.validate(in); err != nil {
		return nil, err
	}

	taus := s.tauFilter.Apply(in.Taus)
	objsel.SortByTagger(taus)

	var pairs [][]model.Pair
	if s.dual {
		pairs = pairing.Combinations(taus)
	} else {
		leptons := s.lepFilter.Apply(in.Leptons)
		objsel.SortByIsolation(leptons)
		pairs = pairing.CrossProduct(leptons, taus)
	}

	steps := model.NewStepMasks()
	pairs, err := s.presel.Apply(pairs, steps)
	if err != nil {
		return nil, err
	}

	// Intermediate pair lists are released per event right after ranking;
	// pair counts can explode combinatorially before preselection.
	selected := make([]model.Pair, in.Events())
	survivors := make([][]model.Pair, in.Events())
	for i, evPairs := range pairs {
		best, ok := ranking.SelectOne(evPairs, s.criteria)
		if !ok {
			selected[i] = model.EmptyPair()
			survivors[i] = nil
			continue
		}
		if s.dual {
			best = best.SortLegsByPt()
		}
		selected[i] = best
		survivors[i] = []model.Pair{best}
		pairs[i] = nil
	}

	flags, err := s.classifier.Classify(survivors, in.MET)
	if err != nil {
		return nil, err
	}

	return &model.Selection{Pairs: selected, Steps: steps, Flags: flags}, nil
}

func (s *Selector) validate(in Input) error {
	if !s.dual {
		if len(in.Leptons) != len(in.Taus) {
			return fmt.Errorf("%w: %d lepton events vs %d tau events",
				ErrBatchMismatch, len(in.Leptons), len(in.Taus))
		}
		if len(in.MET) != len(in.Taus) {
			return fmt.Errorf("%w: %d met entries vs %d tau events",
				ErrBatchMismatch, len(in.MET), len(in.Taus))
		}
	}
	return nil
}
