package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus metrics for table views and chip rows.
// All methods are safe to call on a nil *Metrics.
type Metrics struct {
	// Table metrics
	RecomputeTotal    *prometheus.CounterVec
	RecomputeDuration prometheus.Histogram
	FilteredRows      prometheus.Histogram
	RecomputeErrors   prometheus.Counter

	// Chip layout metrics
	LayoutPassesTotal    prometheus.Counter
	LayoutCoalescedTotal prometheus.Counter
	HiddenChips          prometheus.Histogram

	// Classification metrics
	ClassifiedTotal *prometheus.CounterVec
}

// New creates the metrics and registers them with reg. A nil reg uses a
// private registry.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.NewRegistry()
	}
	factory := promauto.With(reg)

	return &Metrics{
		RecomputeTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "table",
			Name:      "recompute_total",
			Help:      "Total number of table recomputations by page mode",
		}, []string{"table", "mode"}),
		RecomputeDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "table",
			Name:      "recompute_duration_seconds",
			Help:      "Time spent searching, sorting and paginating",
			Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
		}),
		FilteredRows: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "table",
			Name:      "filtered_rows",
			Help:      "Rows left after search",
			Buckets:   prometheus.ExponentialBuckets(1, 4, 8),
		}),
		RecomputeErrors: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "table",
			Name:      "recompute_errors_total",
			Help:      "Recomputations rejected because of invalid query state",
		}),
		LayoutPassesTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "chips",
			Name:      "layout_passes_total",
			Help:      "Chip row layout passes computed",
		}),
		LayoutCoalescedTotal: factory.NewCounter(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "chips",
			Name:      "layout_coalesced_total",
			Help:      "Layout triggers dropped as superseded or duplicate",
		}),
		HiddenChips: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: "backoffice",
			Subsystem: "chips",
			Name:      "hidden_chips",
			Help:      "Chips hidden behind the overflow chip per pass",
			Buckets:   prometheus.LinearBuckets(0, 1, 8),
		}),
		ClassifiedTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: "backoffice",
			Subsystem: "shelf_life",
			Name:      "classified_total",
			Help:      "Rows classified by shelf-life status",
		}, []string{"status"}),
	}
}

// ObserveRecompute records one successful recomputation
func (m *Metrics) ObserveRecompute(table, mode string, filtered int, seconds float64) {
	if m == nil {
		return
	}
	m.RecomputeTotal.WithLabelValues(table, mode).Inc()
	m.FilteredRows.Observe(float64(filtered))
	m.RecomputeDuration.Observe(seconds)
}

// RecomputeFailed records a rejected recomputation
func (m *Metrics) RecomputeFailed() {
	if m == nil {
		return
	}
	m.RecomputeErrors.Inc()
}

// ObserveLayout records one computed layout pass
func (m *Metrics) ObserveLayout(hidden int) {
	if m == nil {
		return
	}
	m.LayoutPassesTotal.Inc()
	m.HiddenChips.Observe(float64(hidden))
}

// LayoutCoalesced records a dropped layout trigger
func (m *Metrics) LayoutCoalesced() {
	if m == nil {
		return
	}
	m.LayoutCoalescedTotal.Inc()
}

// ObserveStatus records one classified row
func (m *Metrics) ObserveStatus(status string) {
	if m == nil {
		return
	}
	m.ClassifiedTotal.WithLabelValues(status).Inc()
}
