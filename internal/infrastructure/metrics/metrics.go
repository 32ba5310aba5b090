package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/shopsetu/shopledger/internal/domain"
)

// Metrics holds all Prometheus metrics and implements
// usecase.MetricsRecorder.
type Metrics struct {
	// Entry metrics
	EntriesCreated *prometheus.CounterVec
	EntriesDeleted *prometheus.CounterVec

	// Balance engine metrics
	RecomputeDuration prometheus.Histogram
	RecomputeEntries  prometheus.Histogram
	CacheHits         prometheus.Counter
	CacheMisses       prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		EntriesCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_entries_created_total",
				Help: "Total number of ledger entries created",
			},
			[]string{"kind"},
		),
		EntriesDeleted: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "shopledger_entries_deleted_total",
				Help: "Total number of ledger entries deleted",
			},
			[]string{"kind"},
		),
		RecomputeDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shopledger_recompute_duration_seconds",
			Help:    "Duration of full balance recomputes",
			Buckets: prometheus.DefBuckets,
		}),
		RecomputeEntries: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "shopledger_recompute_entries",
			Help:    "Number of entries folded per recompute",
			Buckets: []float64{10, 100, 1000, 10000, 100000},
		}),
		CacheHits: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_balance_cache_hits_total",
			Help: "Balance map reads served from cache",
		}),
		CacheMisses: promauto.NewCounter(prometheus.CounterOpts{
			Name: "shopledger_balance_cache_misses_total",
			Help: "Balance map reads that required a recompute",
		}),
	}
}

// EntryCreated records one created entry.
func (m *Metrics) EntryCreated(kind domain.Kind) {
	m.EntriesCreated.WithLabelValues(string(kind)).Inc()
}

// EntryDeleted records one deleted entry.
func (m *Metrics) EntryDeleted(kind domain.Kind) {
	m.EntriesDeleted.WithLabelValues(string(kind)).Inc()
}

// RecomputeObserved records one full history fold.
func (m *Metrics) RecomputeObserved(duration time.Duration, entries int) {
	m.RecomputeDuration.Observe(duration.Seconds())
	m.RecomputeEntries.Observe(float64(entries))
}

// BalanceCacheHit records a cache hit on the balance map.
func (m *Metrics) BalanceCacheHit() {
	m.CacheHits.Inc()
}

// BalanceCacheMiss records a cache miss on the balance map.
func (m *Metrics) BalanceCacheMiss() {
	m.CacheMisses.Inc()
}
