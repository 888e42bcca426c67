package geonarrative

import (
	"context"
	"time"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
	"github.com/hupe1980/geonarrative/index/spatial"
	"github.com/hupe1980/geonarrative/index/temporal"
)

// Index answers "what happened near here, around then" without a full
// linear scan, and summarizes spatial density as a grid.
//
// It owns a spatial and a temporal index over the same arena of items.
// Joint queries run each sub-index independently and intersect the
// results on item identity with roaring bitmaps; no bespoke combined
// tree structure is needed.
type Index[T any] struct {
	spatial   *spatial.Index[uint32]
	temporal  *temporal.Index[uint32]
	items     []T
	locations []geo.Location
	stamps    []event.Timestamp

	metrics MetricsCollector
	logger  *Logger
}

// New creates an empty spatiotemporal index.
func New[T any](optFns ...Option) *Index[T] {
	opts := applyOptions(optFns)
	return &Index[T]{
		spatial:  spatial.New[uint32](),
		temporal: temporal.New[uint32](),
		metrics:  opts.metricsCollector,
		logger:   opts.logger,
	}
}

// FromSlice bulk-builds an index over items, using locFn and tsFn to
// extract each item's location and timestamp. Both sub-indexes are built
// balanced in one pass; this is the preferred path for static datasets.
//
// Items with an invalid location or a zero timestamp are rejected as a
// whole: the first offender fails the construction and nothing is built.
func FromSlice[T any](items []T, locFn func(T) geo.Location, tsFn func(T) event.Timestamp, optFns ...Option) (*Index[T], error) {
	opts := applyOptions(optFns)

	idx := &Index[T]{
		items:     make([]T, len(items)),
		locations: make([]geo.Location, len(items)),
		stamps:    make([]event.Timestamp, len(items)),
		metrics:   opts.metricsCollector,
		logger:    opts.logger,
	}
	copy(idx.items, items)

	ids := make([]uint32, len(items))
	for i, item := range items {
		loc, ts := locFn(item), tsFn(item)
		if err := loc.Validate(); err != nil {
			return nil, translateError(err)
		}
		if ts.IsZero() {
			return nil, ErrZeroTimestamp
		}
		idx.locations[i] = loc
		idx.stamps[i] = ts
		ids[i] = uint32(i)
	}

	idx.spatial = spatial.FromSlice(ids, func(id uint32) geo.Location {
		return idx.locations[id]
	})
	idx.temporal = temporal.FromSlice(ids, func(id uint32) event.Timestamp {
		return idx.stamps[id]
	})
	return idx, nil
}

// Insert adds one item with its location and timestamp. Both payloads
// are validated before either sub-index is touched, so a failed insert
// leaves the index exactly as it was; an item can never end up indexed
// in only one dimension.
func (idx *Index[T]) Insert(ctx context.Context, item T, loc geo.Location, ts event.Timestamp) error {
	start := time.Now()
	id := uint32(len(idx.items))
	err := idx.insert(item, loc, ts)
	idx.metrics.RecordInsert(time.Since(start), err)
	idx.logger.LogInsert(ctx, id, err)
	return err
}

func (idx *Index[T]) insert(item T, loc geo.Location, ts event.Timestamp) error {
	if err := loc.Validate(); err != nil {
		return translateError(err)
	}
	if ts.IsZero() {
		return ErrZeroTimestamp
	}

	id := uint32(len(idx.items))
	idx.items = append(idx.items, item)
	idx.locations = append(idx.locations, loc)
	idx.stamps = append(idx.stamps, ts)

	idx.spatial.Insert(id, loc)
	idx.temporal.Insert(id, ts)
	return nil
}

// Len returns the number of indexed items.
func (idx *Index[T]) Len() int { return len(idx.items) }

// IsEmpty reports whether the index holds no items.
func (idx *Index[T]) IsEmpty() bool { return len(idx.items) == 0 }

// Items returns the item arena in insertion order. The returned slice is
// shared with the index and must not be mutated.
func (idx *Index[T]) Items() []T { return idx.items }

// Query returns the items within both the spatial bounds and the time
// range: the intersection, on item identity, of the two sub-index
// results. Results come back in insertion order.
func (idx *Index[T]) Query(ctx context.Context, bounds geo.Bounds, r event.TimeRange) ([]T, error) {
	start := time.Now()
	out, err := idx.query(bounds, r)
	idx.metrics.RecordQuery(len(out), time.Since(start), err)
	idx.logger.LogQuery(ctx, len(out), err)
	return out, err
}

func (idx *Index[T]) query(bounds geo.Bounds, r event.TimeRange) ([]T, error) {
	spatialIDs, err := idx.spatial.QueryBBoxIDs(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon)
	if err != nil {
		return nil, translateError(err)
	}
	temporalIDs, err := idx.temporal.QueryRangeIDs(r)
	if err != nil {
		return nil, translateError(err)
	}

	both := roaring.BitmapOf(spatialIDs...)
	both.And(roaring.BitmapOf(temporalIDs...))

	out := make([]T, 0, both.GetCardinality())
	it := both.Iterator()
	for it.HasNext() {
		out = append(out, idx.items[it.Next()])
	}
	return out, nil
}

// QuerySpatial returns the items within the bounds, any time.
func (idx *Index[T]) QuerySpatial(ctx context.Context, bounds geo.Bounds) ([]T, error) {
	start := time.Now()
	ids, err := idx.spatial.QueryBBoxIDs(bounds.MinLat, bounds.MinLon, bounds.MaxLat, bounds.MaxLon)
	err = translateError(err)
	out := idx.collect(ids)
	idx.metrics.RecordQuery(len(out), time.Since(start), err)
	idx.logger.LogQuery(ctx, len(out), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryTemporal returns the items within the time range, anywhere,
// in chronological order.
func (idx *Index[T]) QueryTemporal(ctx context.Context, r event.TimeRange) ([]T, error) {
	start := time.Now()
	ids, err := idx.temporal.QueryRangeIDs(r)
	err = translateError(err)
	out := idx.collect(ids)
	idx.metrics.RecordQuery(len(out), time.Since(start), err)
	idx.logger.LogQuery(ctx, len(out), err)
	if err != nil {
		return nil, err
	}
	return out, nil
}

// QueryFunc returns the joint query result additionally filtered by a
// caller-supplied predicate. The predicate runs over already-retrieved
// candidates; it is never stored inside the index.
func (idx *Index[T]) QueryFunc(ctx context.Context, bounds geo.Bounds, r event.TimeRange, keep func(T) bool) ([]T, error) {
	candidates, err := idx.Query(ctx, bounds, r)
	if err != nil {
		return nil, err
	}
	out := candidates[:0:0]
	for _, item := range candidates {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

// Nearest returns the k items closest to the query point in degree
// space, ascending by distance. See the package index/spatial notes on
// the degree-space metric.
func (idx *Index[T]) Nearest(ctx context.Context, lat, lon float64, k int) []T {
	start := time.Now()
	out := idx.collect(idx.spatial.NearestIDs(lat, lon, k))
	idx.metrics.RecordNearest(k, time.Since(start), nil)
	idx.logger.LogNearest(ctx, k, len(out), nil)
	return out
}

// NearestInRange returns the k items closest to loc whose timestamp
// falls within the range. The search over-fetches nearest neighbors and
// filters by time, doubling the fetch size until k eligible items are
// found or the candidates are exhausted, so it never returns fewer than
// k results while k eligible items exist.
func (idx *Index[T]) NearestInRange(ctx context.Context, loc geo.Location, k int, r event.TimeRange) ([]T, error) {
	start := time.Now()
	out, err := idx.nearestInRange(loc, k, r)
	idx.metrics.RecordNearest(k, time.Since(start), err)
	idx.logger.LogNearest(ctx, k, len(out), err)
	return out, err
}

func (idx *Index[T]) nearestInRange(loc geo.Location, k int, r event.TimeRange) ([]T, error) {
	if k <= 0 {
		return nil, nil
	}
	inRange, err := idx.temporal.QueryRangeIDs(r)
	if err != nil {
		return nil, translateError(err)
	}
	if len(inRange) == 0 {
		return nil, nil
	}
	eligible := roaring.BitmapOf(inRange...)

	fetch := k
	for {
		ids := idx.spatial.NearestIDs(loc.Lat, loc.Lon, fetch)
		kept := make([]uint32, 0, k)
		for _, id := range ids {
			if eligible.Contains(id) {
				kept = append(kept, id)
				if len(kept) == k {
					return idx.collect(kept), nil
				}
			}
		}
		if fetch >= idx.Len() {
			// Every candidate inspected; fewer than k eligible exist.
			return idx.collect(kept), nil
		}
		fetch *= 2
	}
}

// Bounds returns the smallest bounds containing every indexed location.
// ok is false on an empty index.
func (idx *Index[T]) Bounds() (geo.Bounds, bool) {
	return geo.BoundsFromLocations(idx.locations)
}

// TimeRange returns the span from the earliest to the latest indexed
// timestamp. ok is false on an empty index.
func (idx *Index[T]) TimeRange() (event.TimeRange, bool) {
	return idx.temporal.TimeRange()
}

// Chronological returns the items in ascending timestamp order.
func (idx *Index[T]) Chronological() []T {
	out := make([]T, 0, len(idx.items))
	for id := range idx.temporal.Chronological() {
		out = append(out, idx.items[id])
	}
	return out
}

func (idx *Index[T]) collect(ids []uint32) []T {
	out := make([]T, len(ids))
	for i, id := range ids {
		out[i] = idx.items[id]
	}
	return out
}
