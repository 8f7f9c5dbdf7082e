// Package service provides the core business service that ties the
// per-channel selectors, the batch runner, and the cut-flow store together.
package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gsaha009/CPinHToTauTau/internal/adapters/repository"
	"github.com/gsaha009/CPinHToTauTau/internal/adapters/runner"
	"github.com/gsaha009/CPinHToTauTau/internal/config"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/objsel"
	"github.com/gsaha009/CPinHToTauTau/internal/domain/selection"
	"github.com/gsaha009/CPinHToTauTau/pkg/logger"
	"github.com/gsaha009/CPinHToTauTau/pkg/metrics"
)

// Service implements batch intake for the candidate selection system.
type Service struct {
	mu sync.RWMutex

	// Core components
	cfg        *config.Config
	selectors  map[string]*selection.Selector
	store      repository.Store
	runner     *runner.Runner
	seen       *seenSet
	correction objsel.Correction

	// Configuration
	workerCount int
	dedupeSize  int

	// State
	started bool

	// Logging
	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithConfig sets the analysis configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Service) {
		if cfg != nil {
			s.cfg = cfg
		}
	}
}

// WithWorkerCount sets the parallelism of the batch runner.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithDedupeSize sets the size of the batch deduplication cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithStore sets a custom cut-flow store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithTauCorrection sets the tau energy correction applied on Monte-Carlo
// events before the ID cut.
func WithTauCorrection(c objsel.Correction) Option {
	return func(s *Service) {
		if c != nil {
			s.correction = c
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		selectors:  make(map[string]*selection.Selector),
		dedupeSize: 10_000,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start initializes the service components. One selector is built per
// configured channel; a bad configuration fails here, not per batch.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	if s.logger == nil {
		s.logger = logger.Get()
	}
	if s.cfg == nil {
		s.cfg = config.New(ctx)
	}
	if s.workerCount == 0 {
		s.workerCount = s.cfg.WorkerCount
	}

	s.logger.Info(ctx, "starting selection service...")

	for name := range s.cfg.Channels {
		sel, err := selection.New(ctx, name, s.cfg,
			selection.WithTauCorrection(s.correction),
		)
		if err != nil {
			return fmt.Errorf("build selector for %s: %w", name, err)
		}
		s.selectors[name] = sel
	}

	if s.store == nil {
		s.store = repository.NewMemStore()
	}
	s.runner = runner.New(runner.WithWorkers(s.workerCount))
	s.seen = newSeenSet(s.dedupeSize)

	metrics.UpdateWorkerCount(s.workerCount)

	s.started = true
	s.logger.Info(ctx, "selection service started",
		logger.Int("channels", len(s.selectors)),
		logger.Int("workers", s.workerCount),
		logger.Int("dedupeSize", s.dedupeSize),
	)

	return nil
}

// Stop shuts the service down. The components hold no background goroutines;
// this only flips the intake gate.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	s.started = false
	s.logger.Info(context.Background(), "selection service stopped")
}

// SelectBatch runs selection for one channel over one batch, identified by
// batchID for idempotency. A batch ID seen before is skipped with
// ErrDuplicateBatch; a failed batch is unrecorded so it can be retried.
func (s *Service) SelectBatch(ctx context.Context, channel, batchID string, in selection.Input) (*model.Selection, error) {
	s.mu.RLock()
	started := s.started
	sel, ok := s.selectors[channel]
	s.mu.RUnlock()

	if !started {
		return nil, ErrNotStarted
	}
	if !ok {
		metrics.RecordBatchError()
		return nil, fmt.Errorf("%w: %s", ErrUnknownChannel, channel)
	}
	if batchID != "" && s.seen.seenAndRecord(batchID) {
		metrics.RecordBatchDuplicate()
		s.logger.Debug(ctx, "duplicate batch skipped",
			logger.String("channel", channel),
			logger.String("batchID", batchID),
		)
		return nil, fmt.Errorf("%w: %s", ErrDuplicateBatch, batchID)
	}

	start := time.Now()
	result, err := s.runner.Run(ctx, sel, in)
	if err != nil {
		if batchID != "" {
			s.seen.unrecord(batchID)
		}
		metrics.RecordBatchError()
		s.logger.Error(ctx, "batch selection failed",
			logger.String("channel", channel),
			logger.String("batchID", batchID),
			logger.Error(err),
		)
		return nil, err
	}

	s.observe(ctx, channel, result, time.Since(start))

	if err := s.store.Record(ctx, channel, result); err != nil {
		return nil, err
	}

	return result, nil
}

// observe folds one batch result into the Prometheus metrics.
func (s *Service) observe(ctx context.Context, channel string, result *model.Selection, elapsed time.Duration) {
	events := result.Events()
	selected := result.SelectedCount()

	metrics.RecordBatch(channel)
	metrics.UpdateBatchSize(events)
	metrics.RecordEventsProcessed(events)
	metrics.RecordEventsSelected(selected)
	metrics.RecordEventsNoCandidates(int64(events) - selected)
	metrics.RecordSelectionLatency(float64(elapsed.Milliseconds()))

	steps := result.Steps.Names()
	for _, name := range steps {
		metrics.RecordCutflowStep(channel, name, result.Steps.PassCount(name))
	}
	if len(steps) > 0 {
		if first, ok := result.Steps.Mask(steps[0]); ok {
			var built int64
			for _, row := range first {
				built += int64(len(row))
			}
			metrics.RecordPairsBuilt(built)
		}
		metrics.RecordPairsPreselected(result.Steps.PassCount(steps[len(steps)-1]))
	}
	for _, name := range result.Flags.Names() {
		metrics.RecordRegionEvents(channel, name, result.Flags.TrueCount(name))
	}

	s.logger.Debug(ctx, "batch selected",
		logger.String("channel", channel),
		logger.Int("events", events),
		logger.Int64("selected", selected),
	)
}

// Cutflow returns the accumulated step counts of a channel.
func (s *Service) Cutflow(ctx context.Context, channel string) ([]repository.StepCount, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.Cutflow(ctx, channel)
}

// Regions returns the accumulated region-flag counts of a channel.
func (s *Service) Regions(ctx context.Context, channel string) ([]repository.FlagCount, error) {
	if !s.isStarted() {
		return nil, ErrNotStarted
	}
	return s.store.Regions(ctx, channel)
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := map[string]interface{}{
		"started":     s.started,
		"workerCount": s.workerCount,
		"dedupeSize":  s.dedupeSize,
	}

	if s.started {
		ctx := context.Background()
		channels := s.store.Channels(ctx)
		stats["channels"] = channels
		stats["seenBatches"] = s.seen.size()
		for _, name := range channels {
			stats["events_"+name] = s.store.Events(ctx, name)
		}
	}

	return stats
}

func (s *Service) isStarted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.started
}
