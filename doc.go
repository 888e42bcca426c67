// Package geonarrative indexes and relates events anchored to a
// geographic point and a point in time, so that large collections can be
// queried by location, by time, and by both together, and so that
// relationships between events can be modeled as a graph and traversed.
//
// Two subsystems share the same geometric and temporal primitives:
//
//   - Index: a spatiotemporal index combining a k-d tree (package
//     index/spatial) and an ordered multimap (package index/temporal)
//     over the same items, answering joint space-time queries and
//     deriving density grids ("heatmaps").
//   - NarrativeGraph (package graph): a directed, edge-typed graph over
//     events with automatic connection strategies, Dijkstra shortest
//     paths and bounds-based subgraph extraction.
//
// # Quick start
//
//	idx := geonarrative.New[event.Event]()
//	for _, ev := range events {
//	    _ = idx.Insert(ctx, ev, ev.Location, ev.Timestamp)
//	}
//
//	bounds, _ := geo.NewBounds(39, -75, 42, -73)
//	window := event.MonthRange(2024, time.March)
//	hits, _ := idx.Query(ctx, bounds, window)
//
// For static datasets prefer the bulk constructor, which builds balanced
// structures in one pass:
//
//	idx, err := geonarrative.FromSlice(events,
//	    event.Event.EventLocation,
//	    event.Event.EventTimestamp,
//	)
//
// # Concurrency
//
// Construction and querying are synchronous and single-threaded:
// build once (or append incrementally) from a single owner, then
// query freely. A fully built Index or NarrativeGraph is an immutable
// snapshot that is safe to share across goroutines for reads; serialize
// any further mutation behind a single-writer discipline.
package geonarrative
