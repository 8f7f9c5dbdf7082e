// Package repository defines the cut-flow store interface and errors.
package repository

import (
	"context"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

// StepCount is one cumulative preselection step with its running pass count.
type StepCount struct {
	Name   string
	Passed int64
}

// FlagCount is one region flag with its running true count.
type FlagCount struct {
	Name string
	True int64
}

// Store accumulates selection bookkeeping across batches.
type Store interface {
	// Record folds one batch result into the per-channel totals.
	Record(ctx context.Context, channel string, sel *model.Selection) error

	// Cutflow returns the cumulative step counts of a channel, in the
	// order the steps were applied. Returns ErrUnknownChannel before the
	// first Record for that channel.
	Cutflow(ctx context.Context, channel string) ([]StepCount, error)

	// Regions returns the region-flag true counts of a channel.
	Regions(ctx context.Context, channel string) ([]FlagCount, error)

	// Events returns the number of events recorded for a channel.
	Events(ctx context.Context, channel string) int64

	// Channels returns the channels seen so far, sorted.
	Channels(ctx context.Context) []string
}
