// Package metrics provides Prometheus metrics for the score sync service.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns all Prometheus metrics for the service.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// Batch outcomes
	batchesSynced  prometheus.Counter
	batchesAborted *prometheus.CounterVec

	// Per-play outcomes
	playsProcessed prometheus.Counter
	playsSkipped   *prometheus.CounterVec
	playsDuplicate prometheus.Counter
	newRecords     prometheus.Counter

	// Store health
	historyAppendFailures prometheus.Counter
	storeLatency          *prometheus.HistogramVec

	// Queue and worker health
	queueSize          prometheus.Gauge
	queueCapacity      prometheus.Gauge
	queueEnqueueErrors *prometheus.CounterVec
	workerCount        prometheus.Gauge
	batchDuration      prometheus.Histogram
}

// Global manager on a custom registry, so the default Go collectors do
// not pollute the scrape.
var globalManager *Manager //nolint:gochecknoglobals // singleton metrics manager

func init() { //nolint:gochecknoinits // global metrics setup
	globalManager = NewManager()
}

// NewManager creates a metrics manager with default configuration.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "scoresync",
		subsystem:        "sync",
		histogramBuckets: prometheus.DefBuckets,
		registry:         prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.batchesSynced = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_synced_total",
		Help:      "Total number of upload batches synced to completion",
	})

	m.batchesAborted = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batches_aborted_total",
		Help:      "Total number of batches aborted at the identity gate",
	}, []string{"reason"})

	m.playsProcessed = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_processed_total",
		Help:      "Total number of play submissions merged and written",
	})

	m.playsSkipped = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_skipped_total",
		Help:      "Total number of play submissions skipped",
	}, []string{"reason"})

	m.playsDuplicate = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "plays_duplicate_total",
		Help:      "Total number of plays dropped as already-synced duplicates",
	})

	m.newRecords = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "new_records_total",
		Help:      "Total number of plays that raised a personal best",
	})

	m.historyAppendFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "history_append_failures_total",
		Help:      "Total number of best-effort history appends that failed",
	})

	m.storeLatency = auto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "store_latency_milliseconds",
		Help:      "Histogram of score store round-trip latency by operation",
		Buckets:   m.histogramBuckets,
	}, []string{"op"})

	m.queueSize = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_size",
		Help:      "Current number of batches waiting in the queue",
	})

	m.queueCapacity = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_capacity",
		Help:      "Configured capacity of the batch queue",
	})

	m.queueEnqueueErrors = auto.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "queue_enqueue_errors_total",
		Help:      "Total number of failed batch enqueues",
	}, []string{"reason"})

	m.workerCount = auto.NewGauge(prometheus.GaugeOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "worker_count",
		Help:      "Number of sync workers draining the batch queue",
	})

	m.batchDuration = auto.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "batch_duration_milliseconds",
		Help:      "Histogram of end-to-end batch sync duration",
		Buckets:   m.histogramBuckets,
	})
}

// Handler returns the scrape handler for this manager's registry.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Package-level helpers against the global manager.

func RecordBatchSynced()               { globalManager.batchesSynced.Inc() }
func RecordBatchAborted(reason string) { globalManager.batchesAborted.WithLabelValues(reason).Inc() }
func RecordPlayProcessed()             { globalManager.playsProcessed.Inc() }
func RecordPlaySkipped(reason string)  { globalManager.playsSkipped.WithLabelValues(reason).Inc() }
func RecordPlayDuplicate()             { globalManager.playsDuplicate.Inc() }
func RecordNewRecord()                 { globalManager.newRecords.Inc() }
func RecordHistoryAppendFailure()      { globalManager.historyAppendFailures.Inc() }

func RecordStoreLatency(op string, ms float64) {
	globalManager.storeLatency.WithLabelValues(op).Observe(ms)
}

func RecordBatchDuration(ms float64) { globalManager.batchDuration.Observe(ms) }

func UpdateQueueSize(n int)     { globalManager.queueSize.Set(float64(n)) }
func UpdateQueueCapacity(n int) { globalManager.queueCapacity.Set(float64(n)) }
func UpdateWorkerCount(n int)   { globalManager.workerCount.Set(float64(n)) }

func RecordQueueEnqueueError(reason string) {
	globalManager.queueEnqueueErrors.WithLabelValues(reason).Inc()
}

// Handler returns the scrape handler for the global manager.
func Handler() http.Handler { return globalManager.Handler() }
