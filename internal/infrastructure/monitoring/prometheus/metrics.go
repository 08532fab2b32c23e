package prometheus

import (
	"time"

	"github.com/turtacn/ChemVault/pkg/types/chemistry"
)

// DefaultSourceDurationBuckets spans the expected latency range of external
// source calls, from sub-millisecond local sources to timeout-bound HTTP
// lookups.
var DefaultSourceDurationBuckets = []float64{.001, .01, .05, .1, .25, .5, 1, 2.5, 5, 10, 15}

// ResolutionMetrics implements the Resolver's Recorder contract.
type ResolutionMetrics struct {
	ResolutionsTotal      CounterVec
	ResolutionDuration    HistogramVec
	SourceAttemptsTotal   CounterVec
	SourceAttemptDuration HistogramVec
}

// NewResolutionMetrics registers the resolution metrics.
func NewResolutionMetrics(collector MetricsCollector) *ResolutionMetrics {
	return &ResolutionMetrics{
		ResolutionsTotal: collector.RegisterCounter(
			"resolutions_total",
			"Completed identity resolutions by winning source and confidence",
			"source", "confidence"),
		ResolutionDuration: collector.RegisterHistogram(
			"resolution_duration_seconds",
			"End-to-end resolution chain duration",
			DefaultSourceDurationBuckets,
			"source"),
		SourceAttemptsTotal: collector.RegisterCounter(
			"source_attempts_total",
			"Individual source attempts by outcome",
			"source", "status"),
		SourceAttemptDuration: collector.RegisterHistogram(
			"source_attempt_duration_seconds",
			"Single source attempt duration",
			DefaultSourceDurationBuckets,
			"source"),
	}
}

// ObserveSourceAttempt records one source attempt.
func (m *ResolutionMetrics) ObserveSourceAttempt(source string, status chemistry.SourceStatus, elapsed time.Duration) {
	m.SourceAttemptsTotal.WithLabelValues(source, string(status)).Inc()
	m.SourceAttemptDuration.WithLabelValues(source).Observe(elapsed.Seconds())
}

// ObserveResolution records one completed resolution.
func (m *ResolutionMetrics) ObserveResolution(source chemistry.IdentitySource, confidence chemistry.Confidence, elapsed time.Duration) {
	m.ResolutionsTotal.WithLabelValues(string(source), string(confidence)).Inc()
	m.ResolutionDuration.WithLabelValues(string(source)).Observe(elapsed.Seconds())
}
