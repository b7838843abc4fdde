package linkeval

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like
// Prometheus (see observability/prometheus).
type MetricsCollector interface {
	// RecordEmbed is called after each edge list is embedded.
	RecordEmbed(partition string, edges int, duration time.Duration, err error)

	// RecordFit is called after the classifier is trained.
	RecordFit(classifier string, rows int, duration time.Duration, err error)

	// RecordPredict is called after a partition is predicted.
	RecordPredict(partition string, rows int, duration time.Duration, err error)

	// RecordRun is called once per Run.
	RecordRun(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordEmbed(string, int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordFit(string, int, time.Duration, error)     {}
func (NoopMetricsCollector) RecordPredict(string, int, time.Duration, error) {}
func (NoopMetricsCollector) RecordRun(time.Duration, error)                  {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	EmbedCount    atomic.Int64
	EmbedEdges    atomic.Int64
	EmbedErrors   atomic.Int64
	FitCount      atomic.Int64
	FitErrors     atomic.Int64
	FitTotalNanos atomic.Int64
	PredictCount  atomic.Int64
	PredictRows   atomic.Int64
	PredictErrors atomic.Int64
	RunCount      atomic.Int64
	RunErrors     atomic.Int64
	RunTotalNanos atomic.Int64
}

// RecordEmbed implements MetricsCollector.
func (b *BasicMetricsCollector) RecordEmbed(_ string, edges int, _ time.Duration, err error) {
	b.EmbedCount.Add(1)
	b.EmbedEdges.Add(int64(edges))
	if err != nil {
		b.EmbedErrors.Add(1)
	}
}

// RecordFit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordFit(_ string, _ int, duration time.Duration, err error) {
	b.FitCount.Add(1)
	b.FitTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.FitErrors.Add(1)
	}
}

// RecordPredict implements MetricsCollector.
func (b *BasicMetricsCollector) RecordPredict(_ string, rows int, _ time.Duration, err error) {
	b.PredictCount.Add(1)
	b.PredictRows.Add(int64(rows))
	if err != nil {
		b.PredictErrors.Add(1)
	}
}

// RecordRun implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRun(duration time.Duration, err error) {
	b.RunCount.Add(1)
	b.RunTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RunErrors.Add(1)
	}
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		EmbedCount:    b.EmbedCount.Load(),
		EmbedEdges:    b.EmbedEdges.Load(),
		EmbedErrors:   b.EmbedErrors.Load(),
		FitCount:      b.FitCount.Load(),
		FitErrors:     b.FitErrors.Load(),
		FitAvgNanos:   avg(b.FitTotalNanos.Load(), b.FitCount.Load()),
		PredictCount:  b.PredictCount.Load(),
		PredictRows:   b.PredictRows.Load(),
		PredictErrors: b.PredictErrors.Load(),
		RunCount:      b.RunCount.Load(),
		RunErrors:     b.RunErrors.Load(),
		RunAvgNanos:   avg(b.RunTotalNanos.Load(), b.RunCount.Load()),
	}
}

func avg(total, count int64) int64 {
	if count == 0 {
		return 0
	}
	return total / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	EmbedCount    int64
	EmbedEdges    int64
	EmbedErrors   int64
	FitCount      int64
	FitErrors     int64
	FitAvgNanos   int64
	PredictCount  int64
	PredictRows   int64
	PredictErrors int64
	RunCount      int64
	RunErrors     int64
	RunAvgNanos   int64
}
