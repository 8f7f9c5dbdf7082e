package config

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering defaults, optional file, and env vars.
// Order of precedence (low -> high):.
//  1. defaults (New(ctx))
//  2. file (YAML) if HCAND_CONFIG is set
//  3. env (prefix HCAND_)
func Load(ctx context.Context) (*Config, error) {
	base := New(ctx)

	k := koanf.New(".")

	if path := os.Getenv("HCAND_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
		}
	}

	// Environment variables: HCAND_YEAR, HCAND_WORKER_COUNT, ...
	// Underscores are preserved to match the koanf tags on the struct.
	envProvider := env.Provider("HCAND_", ".", func(s string) string {
		s = strings.ToLower(s)
		s = strings.TrimPrefix(s, "hcand_")
		return s
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrLoadConfig, err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	if c.WorkerCount < 1 {
		return fmt.Errorf("%w: worker_count must be positive", ErrInvalidConfig)
	}
	if c.TaggerTieEpsilon < 0 {
		return fmt.Errorf("%w: tagger_tie_epsilon must not be negative", ErrInvalidConfig)
	}
	if c.LeptonIsoTight >= c.LeptonIsoLoose {
		return fmt.Errorf("%w: lepton_iso_tight must be below lepton_iso_loose", ErrInvalidConfig)
	}
	// Resolve every configured working point once so a typo fails at load
	// time, not in the middle of a batch.
	for name := range c.Channels {
		if _, err := c.IDThresholds(name); err != nil {
			return fmt.Errorf("%w: channel %s: %w", ErrInvalidConfig, name, err)
		}
	}
	if _, _, err := c.TauIsoBounds(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}
