// Package stats provides a unified interface for collecting metrics.
package stats

// Metric names used throughout the library.
const (
	// Cache metrics.
	MetricGets      = "shelf_gets_total"
	MetricHits      = "shelf_hits_total"
	MetricMisses    = "shelf_misses_total"
	MetricEvictions = "shelf_evictions_total"
	MetricResidents = "shelf_resident_documents"

	// Backing-store metrics.
	MetricReadSeconds = "shelf_read_seconds"
)

// Collector defines the interface for collecting metrics.
type Collector interface {
	// IncCounter increments a counter metric by delta.
	IncCounter(name string, delta int64)

	// SetGauge sets a gauge metric to value.
	SetGauge(name string, value int64)

	// ObserveHistogram records a value in a histogram metric.
	ObserveHistogram(name string, value float64)
}
