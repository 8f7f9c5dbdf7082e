// Package testevents generates synthetic candidate batches for exercising
// the selection service end to end. The distributions are crude but shaped
// enough that every preselection step and region flag sees traffic.
package testevents

import (
	"context"
	"math"
	"math/rand"

	"github.com/google/uuid"

	"github.com/gsaha009/CPinHToTauTau/internal/config"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/selection"
	"github.com/gsaha009/CPinHToTauTau/pkg/logger"
)

// Generation ranges.
const (
	tauMass    = 1.777
	muonMass   = 0.106
	ptMin      = 15.0
	ptRange    = 120.0
	etaMax     = 2.3
	isoMax     = 0.6
	metRange   = 150.0
	maxIDLevel = 8
)

// Generator produces reproducible batches for one channel.
type Generator struct {
	channel   string
	events    int
	maxMult   int
	padChance float64
	rng       *rand.Rand
}

// Option applies a configuration option to the Generator.
type Option func(*Generator)

// WithEventCount sets the number of events per batch.
func WithEventCount(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.events = n
		}
	}
}

// WithMaxMultiplicity sets the maximum candidates per event and collection.
func WithMaxMultiplicity(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.maxMult = n
		}
	}
}

// WithSeed makes the generator deterministic.
func WithSeed(seed int64) Option {
	return func(g *Generator) {
		g.rng = rand.New(rand.NewSource(seed))
	}
}

// WithPadChance sets the probability of an upstream padding entry.
func WithPadChance(p float64) Option {
	return func(g *Generator) {
		if p >= 0 && p < 1 {
			g.padChance = p
		}
	}
}

// New constructs a Generator for the given channel.
func New(channel string, opts ...Option) *Generator {
	g := &Generator{
		channel:   channel,
		events:    1000,
		maxMult:   4,
		padChance: 0.1,
		rng:       rand.New(rand.NewSource(rand.Int63())),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Batch is one generated event batch with its idempotency ID.
type Batch struct {
	ID      string
	Channel string
	Input   selection.Input
}

// Generate produces one batch.
func (g *Generator) Generate(ctx context.Context) Batch {
	in := selection.Input{
		Taus: make([][]model.Candidate, g.events),
		MET:  make([]model.MET, g.events),
	}
	dual := g.channel == config.ChannelTauTau
	if !dual {
		in.Leptons = make([][]model.Candidate, g.events)
	}

	for i := 0; i < g.events; i++ {
		in.Taus[i] = g.collection(true)
		in.MET[i] = model.MET{
			Pt:  g.rng.Float64() * metRange,
			Phi: g.phi(),
		}
		if !dual {
			in.Leptons[i] = g.collection(false)
		}
	}

	batch := Batch{
		ID:      uuid.New().String(),
		Channel: g.channel,
		Input:   in,
	}
	logger.Get().Debug(ctx, "generated batch",
		logger.String("batchID", batch.ID),
		logger.String("channel", g.channel),
		logger.Int("events", g.events),
	)
	return batch
}

func (g *Generator) collection(tau bool) []model.Candidate {
	n := 1 + g.rng.Intn(g.maxMult)
	out := make([]model.Candidate, 0, n)
	for j := 0; j < n; j++ {
		if g.rng.Float64() < g.padChance {
			out = append(out, model.Candidate{RawIdx: -1})
			continue
		}
		c := model.Candidate{
			Pt:     ptMin + g.rng.Float64()*ptRange,
			Eta:    (g.rng.Float64()*2 - 1) * etaMax,
			Phi:    g.phi(),
			Charge: g.sign(),
			Iso:    g.rng.Float64() * isoMax,
			RawIdx: j,
		}
		if tau {
			c.Mass = tauMass
			c.RawTagger = g.rng.Float64()
			c.ID = model.IDLevels{
				VsElectron: 1 + g.rng.Intn(maxIDLevel),
				VsMuon:     1 + g.rng.Intn(4),
				VsJet:      1 + g.rng.Intn(maxIDLevel),
			}
		} else {
			c.Mass = muonMass
		}
		out = append(out, c)
	}
	return out
}

func (g *Generator) phi() float64 {
	return (g.rng.Float64()*2 - 1) * math.Pi
}

func (g *Generator) sign() int {
	if g.rng.Intn(2) == 0 {
		return 1
	}
	return -1
}
