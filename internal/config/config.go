// Package config defines the analysis configuration and loading hooks.
//
// Conventions:
// - Provide New(...) to build a Config with defaults, Load(ctx) to layer
//   file and environment on top.
// - Working-point lookups fail hard with sentinel errors; a missing key is
//   a caller bug, never recovered here.
package config

import (
	"context"
	"fmt"
	"runtime"
)

// Channel names understood by the selection core.
const (
	ChannelETau   = "etau"
	ChannelMuTau  = "mutau"
	ChannelTauTau = "tautau"
)

// ChannelCuts holds the per-channel working-point names and kinematic cut
// thresholds.
type ChannelCuts struct {
	// Tagger working-point names, resolved against the WP tables.
	VsE   string `koanf:"vs_e"`
	VsMu  string `koanf:"vs_mu"`
	VsJet string `koanf:"vs_jet"`

	// Pair preselection thresholds.
	DeltaRMin   float64 `koanf:"delta_r_min"`
	PairMassMin float64 `koanf:"pair_mass_min"`
	Leg1PtMin   float64 `koanf:"leg1_pt_min"`
	Leg2PtMin   float64 `koanf:"leg2_pt_min"`
}

// IDThresholds is the resolved discrete minimum per background axis.
type IDThresholds struct {
	VsElectron int
	VsMuon     int
	VsJet      int
}

// Config contains process and analysis configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address for metrics and health.
	Addr string `koanf:"addr"`

	// Year of the data-taking campaign.
	Year int `koanf:"year"`

	// PuppiMETMinYear: campaigns at or after this year use the
	// PUPPI-corrected MET, earlier ones the type-1 MET.
	PuppiMETMinYear int `koanf:"puppi_met_min_year"`

	// IsMC gates the tau energy-correction substitution.
	IsMC bool `koanf:"is_mc"`

	// WorkerCount sets the parallelism of the batch runner.
	WorkerCount int `koanf:"worker_count"`

	// BatchDedupeSize bounds the seen-batch idempotency cache.
	BatchDedupeSize int `koanf:"batch_dedupe_size"`

	// TaggerName labels the tau tagger the WP tables describe.
	TaggerName string `koanf:"tagger_name"`

	// TaggerTieEpsilon is the equality tolerance on raw tagger scores in
	// the ranking cascade.
	TaggerTieEpsilon float64 `koanf:"tagger_tie_epsilon"`

	// TauIsoTightWP and TauIsoLooseWP bound the tau isolation states of
	// the region grid, as vs-jet working-point names.
	TauIsoTightWP string `koanf:"tau_iso_tight_wp"`
	TauIsoLooseWP string `koanf:"tau_iso_loose_wp"`

	// LeptonIsoTight and LeptonIsoLoose bound the light-lepton isolation
	// states (continuous relative isolation).
	LeptonIsoTight float64 `koanf:"lepton_iso_tight"`
	LeptonIsoLoose float64 `koanf:"lepton_iso_loose"`

	// MTMax splits the low/high transverse-mass sidebands.
	MTMax float64 `koanf:"mt_max"`

	// Tagger working-point tables: name -> discrete level, one per axis.
	WPVsE   map[string]int `koanf:"wp_vs_e"`
	WPVsMu  map[string]int `koanf:"wp_vs_mu"`
	WPVsJet map[string]int `koanf:"wp_vs_jet"`

	// Channels maps channel name to its working points and cuts.
	Channels map[string]ChannelCuts `koanf:"channels"`
}

// New creates a Config with the nominal Run 3 defaults. Context is accepted
// first to satisfy the project-wide convention; it is reserved for future
// use and currently unused.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		Addr:             ":9080",
		Year:             2022,
		PuppiMETMinYear:  2022,
		WorkerCount:      runtime.NumCPU(),
		BatchDedupeSize:  10_000,
		TaggerName:       "DeepTau2018v2p5",
		TaggerTieEpsilon: 1e-5,
		TauIsoTightWP:    "Medium",
		TauIsoLooseWP:    "VVVLoose",
		LeptonIsoTight:   0.15,
		LeptonIsoLoose:   0.30,
		MTMax:            50,
		WPVsE: map[string]int{
			"VVVLoose": 1, "VVLoose": 2, "VLoose": 3, "Loose": 4,
			"Medium": 5, "Tight": 6, "VTight": 7, "VVTight": 8,
		},
		WPVsMu: map[string]int{
			"VVVLoose": 1, "VVLoose": 1, "VLoose": 1, "Loose": 2,
			"Medium": 3, "Tight": 4, "VTight": 4, "VVTight": 4,
		},
		WPVsJet: map[string]int{
			"VVVLoose": 1, "VVLoose": 2, "VLoose": 3, "Loose": 4,
			"Medium": 5, "Tight": 6, "VTight": 7, "VVTight": 8,
		},
		Channels: map[string]ChannelCuts{
			ChannelETau: {
				VsE: "Tight", VsMu: "Loose", VsJet: "Tight",
				DeltaRMin: 0.5, PairMassMin: 20, Leg1PtMin: 25, Leg2PtMin: 30,
			},
			ChannelMuTau: {
				VsE: "VVLoose", VsMu: "Tight", VsJet: "Medium",
				DeltaRMin: 0.5, PairMassMin: 20, Leg1PtMin: 21, Leg2PtMin: 30,
			},
			ChannelTauTau: {
				VsE: "VVLoose", VsMu: "VLoose", VsJet: "Medium",
				DeltaRMin: 0.5, PairMassMin: 20, Leg1PtMin: 40, Leg2PtMin: 40,
			},
		},
	}
}

// Cuts returns the working points and kinematic cuts of a channel.
func (c *Config) Cuts(channel string) (ChannelCuts, error) {
	cuts, ok := c.Channels[channel]
	if !ok {
		return ChannelCuts{}, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
	return cuts, nil
}

// IDThresholds resolves a channel's working-point names against the WP
// tables and returns the discrete minimum per axis.
func (c *Config) IDThresholds(channel string) (IDThresholds, error) {
	cuts, err := c.Cuts(channel)
	if err != nil {
		return IDThresholds{}, err
	}
	vsE, ok := c.WPVsE[cuts.VsE]
	if !ok {
		return IDThresholds{}, fmt.Errorf("%w: vs_e %q", ErrUnknownWorkingPoint, cuts.VsE)
	}
	vsMu, ok := c.WPVsMu[cuts.VsMu]
	if !ok {
		return IDThresholds{}, fmt.Errorf("%w: vs_mu %q", ErrUnknownWorkingPoint, cuts.VsMu)
	}
	vsJet, ok := c.WPVsJet[cuts.VsJet]
	if !ok {
		return IDThresholds{}, fmt.Errorf("%w: vs_jet %q", ErrUnknownWorkingPoint, cuts.VsJet)
	}
	return IDThresholds{VsElectron: vsE, VsMuon: vsMu, VsJet: vsJet}, nil
}

// TauIsoBounds resolves the tight and loose vs-jet levels bounding the tau
// isolation states of the region grid.
func (c *Config) TauIsoBounds() (tight, loose int, err error) {
	tight, ok := c.WPVsJet[c.TauIsoTightWP]
	if !ok {
		return 0, 0, fmt.Errorf("%w: vs_jet %q", ErrUnknownWorkingPoint, c.TauIsoTightWP)
	}
	loose, ok = c.WPVsJet[c.TauIsoLooseWP]
	if !ok {
		return 0, 0, fmt.Errorf("%w: vs_jet %q", ErrUnknownWorkingPoint, c.TauIsoLooseWP)
	}
	return tight, loose, nil
}

// UsePuppiMET reports whether the configured year uses the PUPPI-corrected
// MET rather than the type-1 MET.
func (c *Config) UsePuppiMET() bool {
	return c.Year >= c.PuppiMETMinYear
}
