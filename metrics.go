package geonarrative

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational
// metrics. Implement it to integrate with monitoring systems.
type MetricsCollector interface {
	// RecordInsert is called after each insert operation.
	RecordInsert(duration time.Duration, err error)

	// RecordQuery is called after each joint or single-dimension query.
	// results is the number of items returned.
	RecordQuery(results int, duration time.Duration, err error)

	// RecordNearest is called after each k-nearest search.
	RecordNearest(k int, duration time.Duration, err error)

	// RecordHeatmap is called after each heatmap computation.
	RecordHeatmap(duration time.Duration, err error)
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordInsert(time.Duration, error)       {}
func (NoopMetricsCollector) RecordQuery(int, time.Duration, error)   {}
func (NoopMetricsCollector) RecordNearest(int, time.Duration, error) {}
func (NoopMetricsCollector) RecordHeatmap(time.Duration, error)      {}

// BasicMetricsCollector provides simple in-memory metrics collection
// without external dependencies.
type BasicMetricsCollector struct {
	InsertCount       atomic.Int64
	InsertErrors      atomic.Int64
	InsertTotalNanos  atomic.Int64
	QueryCount        atomic.Int64
	QueryErrors       atomic.Int64
	QueryTotalNanos   atomic.Int64
	QueryResults      atomic.Int64
	NearestCount      atomic.Int64
	NearestErrors     atomic.Int64
	HeatmapCount      atomic.Int64
	HeatmapErrors     atomic.Int64
	HeatmapTotalNanos atomic.Int64
}

// RecordInsert implements MetricsCollector.
func (b *BasicMetricsCollector) RecordInsert(duration time.Duration, err error) {
	b.InsertCount.Add(1)
	b.InsertTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.InsertErrors.Add(1)
	}
}

// RecordQuery implements MetricsCollector.
func (b *BasicMetricsCollector) RecordQuery(results int, duration time.Duration, err error) {
	b.QueryCount.Add(1)
	b.QueryResults.Add(int64(results))
	b.QueryTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.QueryErrors.Add(1)
	}
}

// RecordNearest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordNearest(k int, duration time.Duration, err error) {
	b.NearestCount.Add(1)
	if err != nil {
		b.NearestErrors.Add(1)
	}
}

// RecordHeatmap implements MetricsCollector.
func (b *BasicMetricsCollector) RecordHeatmap(duration time.Duration, err error) {
	b.HeatmapCount.Add(1)
	b.HeatmapTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.HeatmapErrors.Add(1)
	}
}

// Stats is a snapshot of BasicMetricsCollector state.
type Stats struct {
	InsertCount   int64
	InsertErrors  int64
	QueryCount    int64
	QueryErrors   int64
	QueryResults  int64
	NearestCount  int64
	NearestErrors int64
	HeatmapCount  int64
	HeatmapErrors int64
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() Stats {
	return Stats{
		InsertCount:   b.InsertCount.Load(),
		InsertErrors:  b.InsertErrors.Load(),
		QueryCount:    b.QueryCount.Load(),
		QueryErrors:   b.QueryErrors.Load(),
		QueryResults:  b.QueryResults.Load(),
		NearestCount:  b.NearestCount.Load(),
		NearestErrors: b.NearestErrors.Load(),
		HeatmapCount:  b.HeatmapCount.Load(),
		HeatmapErrors: b.HeatmapErrors.Load(),
	}
}
