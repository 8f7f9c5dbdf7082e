// Package metrics provides Prometheus metrics for the candidate selection service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Default metrics configuration constants.
const (
	defaultRefreshInterval = 10 * time.Second
)

// Manager manages all Prometheus metrics for the selection service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	enabled          bool
	refreshInterval  time.Duration
	registry         prometheus.Registerer

	// Core selection metrics
	eventsProcessed    prometheus.Counter
	eventsSelected     prometheus.Counter
	eventsNoCandidates prometheus.Counter
	pairsBuilt         prometheus.Counter
	pairsPreselected   prometheus.Counter
	selectionLatency   prometheus.Histogram

	// Per-channel breakdowns
	stepEvents   *prometheus.CounterVec
	regionEvents *prometheus.CounterVec
	batchesTotal *prometheus.CounterVec

	// Batch intake
	batchDuplicates prometheus.Counter
	batchErrors     prometheus.Counter

	// Operational health
	workerCount prometheus.Gauge
	batchSize   prometheus.Gauge
}

// Global metrics manager instance.
var globalManager *Manager //nolint:gochecknoglobals // intentional global for singleton metrics manager

// Custom registry to avoid default Go metrics.
var customRegistry = prometheus.NewRegistry() //nolint:gochecknoglobals // intentional global for metrics registry

// Initialize global metrics.
func init() { //nolint:gochecknoinits // intentional init for global metrics setup
	globalManager = NewManager(WithPrometheusRegistry(customRegistry))
}

// NewManager creates a new metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "httcp",
		subsystem:        "hcand",
		histogramBuckets: prometheus.DefBuckets,
		enabled:          true,
		refreshInterval:  defaultRefreshInterval,
		registry:         prometheus.DefaultRegisterer,
	}

	for _, opt := range opts {
		opt(m)
	}

	m.initializeMetrics()

	return m
}

// initializeMetrics creates all the Prometheus metrics.
func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.eventsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_processed_total",
		Help:      "Total number of events run through selection",
	})

	m.eventsSelected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_selected_total",
		Help:      "Total number of events with a surviving candidate pair",
	})

	m.eventsNoCandidates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "events_no_candidates_total",
		Help:      "Total number of events where no pair survived preselection",
	})

	m.pairsBuilt = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairs_built_total",
		Help:      "Total number of candidate pairs formed before preselection",
	})

	m.pairsPreselected = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "pairs_preselected_total",
		Help:      "Total number of candidate pairs surviving preselection",
	})

	m.selectionLatency = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "selection_latency_milliseconds",
		Help:      "Histogram of per-batch selection latency in milliseconds",
		Buckets:   m.histogramBuckets,
	})

	m.stepEvents = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "cutflow_pairs_total",
			Help:      "Cumulative pair counts per preselection step and channel",
		},
		[]string{"channel", "step"},
	)

	m.regionEvents = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "region_events_total",
			Help:      "Event counts per analysis region flag and channel",
		},
		[]string{"channel", "region"},
	)

	m.batchesTotal = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "batches_total",
			Help:      "Total number of batches processed per channel",
		},
		[]string{"channel"},
	)

	m.batchDuplicates = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duplicates_total",
		Help:      "Total number of duplicate batch submissions skipped",
	})

	m.batchErrors = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_errors_total",
		Help:      "Total number of batches rejected with an error",
	})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Configured parallelism of the batch runner",
	})

	m.batchSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "last_batch_size",
		Help:      "Number of events in the most recent batch",
	})
}

// RecordEventsProcessed adds to the processed events counter.
func RecordEventsProcessed(n int) {
	globalManager.eventsProcessed.Add(float64(n))
}

// RecordEventsSelected adds to the selected events counter.
func RecordEventsSelected(n int64) {
	globalManager.eventsSelected.Add(float64(n))
}

// RecordEventsNoCandidates adds to the empty-selection events counter.
func RecordEventsNoCandidates(n int64) {
	globalManager.eventsNoCandidates.Add(float64(n))
}

// RecordPairsBuilt adds to the formed-pairs counter.
func RecordPairsBuilt(n int64) {
	globalManager.pairsBuilt.Add(float64(n))
}

// RecordPairsPreselected adds to the surviving-pairs counter.
func RecordPairsPreselected(n int64) {
	globalManager.pairsPreselected.Add(float64(n))
}

// RecordSelectionLatency records per-batch selection latency in milliseconds.
func RecordSelectionLatency(latencyMs float64) {
	globalManager.selectionLatency.Observe(latencyMs)
}

// RecordCutflowStep adds to the cumulative pair count of one step.
func RecordCutflowStep(channel, step string, n int64) {
	globalManager.stepEvents.WithLabelValues(channel, step).Add(float64(n))
}

// RecordRegionEvents adds to the event count of one region flag.
func RecordRegionEvents(channel, region string, n int64) {
	globalManager.regionEvents.WithLabelValues(channel, region).Add(float64(n))
}

// RecordBatch increments the per-channel batch counter.
func RecordBatch(channel string) {
	globalManager.batchesTotal.WithLabelValues(channel).Inc()
}

// RecordBatchDuplicate increments the duplicate batch counter.
func RecordBatchDuplicate() {
	globalManager.batchDuplicates.Inc()
}

// RecordBatchError increments the rejected batch counter.
func RecordBatchError() {
	globalManager.batchErrors.Inc()
}

// UpdateWorkerCount sets the configured worker count.
func UpdateWorkerCount(count int) {
	globalManager.workerCount.Set(float64(count))
}

// UpdateBatchSize sets the size of the most recent batch.
func UpdateBatchSize(size int) {
	globalManager.batchSize.Set(float64(size))
}

// GetRegistry returns the custom Prometheus registry used by our metrics.
func GetRegistry() *prometheus.Registry {
	return customRegistry
}
