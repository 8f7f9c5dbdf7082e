// Package repository defines the cut-flow store interface and errors.
package repository

import (
	"context"
	"hash/fnv"
	"sort"
	"sync"

	"github.com/gsaha009/CPinHToTauTau/internal/domain/model"
)

const defaultShardCount = 8

// MemStore is a sharded, in-memory Store implementation. Channels are hashed
// onto lock shards so concurrent batches for different channels never
// contend on the same mutex.
type MemStore struct {
	shardCount int
	shards     []*shard
}

type shard struct {
	mu       sync.RWMutex
	channels map[string]*channelTotals
}

// channelTotals keeps insertion order alongside the counters so cut-flow
// reads come back in application order, not map order.
type channelTotals struct {
	events    int64
	stepOrder []string
	steps     map[string]int64
	flagOrder []string
	flags     map[string]int64
}

// NewMemStore creates an empty MemStore.
func NewMemStore(opts ...Option) *MemStore {
	s := &MemStore{shardCount: defaultShardCount}
	for _, opt := range opts {
		opt(s)
	}
	s.shards = make([]*shard, s.shardCount)
	for i := range s.shards {
		s.shards[i] = &shard{channels: make(map[string]*channelTotals)}
	}
	return s
}

func (s *MemStore) shardFor(channel string) *shard {
	h := fnv.New32a()
	h.Write([]byte(channel))
	return s.shards[h.Sum32()%uint32(s.shardCount)]
}

// Record folds one batch result into the per-channel totals.
func (s *MemStore) Record(ctx context.Context, channel string, sel *model.Selection) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	sh := s.shardFor(channel)
	sh.mu.Lock()
	defer sh.mu.Unlock()

	totals, ok := sh.channels[channel]
	if !ok {
		totals = &channelTotals{
			steps: make(map[string]int64),
			flags: make(map[string]int64),
		}
		sh.channels[channel] = totals
	}

	totals.events += int64(sel.Events())
	for _, name := range sel.Steps.Names() {
		if _, seen := totals.steps[name]; !seen {
			totals.stepOrder = append(totals.stepOrder, name)
		}
		totals.steps[name] += sel.Steps.PassCount(name)
	}
	for _, name := range sel.Flags.Names() {
		if _, seen := totals.flags[name]; !seen {
			totals.flagOrder = append(totals.flagOrder, name)
		}
		totals.flags[name] += sel.Flags.TrueCount(name)
	}
	return nil
}

// Cutflow returns the cumulative step counts of a channel.
func (s *MemStore) Cutflow(ctx context.Context, channel string) ([]StepCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sh := s.shardFor(channel)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	totals, ok := sh.channels[channel]
	if !ok {
		return nil, ErrUnknownChannel
	}
	out := make([]StepCount, 0, len(totals.stepOrder))
	for _, name := range totals.stepOrder {
		out = append(out, StepCount{Name: name, Passed: totals.steps[name]})
	}
	return out, nil
}

// Regions returns the region-flag true counts of a channel.
func (s *MemStore) Regions(ctx context.Context, channel string) ([]FlagCount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	sh := s.shardFor(channel)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	totals, ok := sh.channels[channel]
	if !ok {
		return nil, ErrUnknownChannel
	}
	out := make([]FlagCount, 0, len(totals.flagOrder))
	for _, name := range totals.flagOrder {
		out = append(out, FlagCount{Name: name, True: totals.flags[name]})
	}
	return out, nil
}

// Events returns the number of events recorded for a channel, zero when the
// channel is unknown.
func (s *MemStore) Events(ctx context.Context, channel string) int64 {
	sh := s.shardFor(channel)
	sh.mu.RLock()
	defer sh.mu.RUnlock()

	totals, ok := sh.channels[channel]
	if !ok {
		return 0
	}
	return totals.events
}

// Channels returns the channels seen so far, sorted.
func (s *MemStore) Channels(ctx context.Context) []string {
	var out []string
	for _, sh := range s.shards {
		sh.mu.RLock()
		for name := range sh.channels {
			out = append(out, name)
		}
		sh.mu.RUnlock()
	}
	sort.Strings(out)
	return out
}
