// Package graph builds directed, typed, weighted graphs over events and
// answers connectivity questions about them.
//
// A NarrativeGraph holds events in an arena addressed by dense NodeID
// handles. Edges carry a type (temporal, spatial, causal, thematic,
// reference, or custom) and a non-negative weight. Connection strategies
// wire whole graphs at once: ConnectTemporal chains events in
// chronological order, ConnectSpatial links events within a distance
// threshold, ConnectThematic links events sharing tags.
//
//	g := graph.FromEvents(events)
//	g.ConnectTemporal()
//	if err := g.ConnectSpatial(10); err != nil {
//		log.Fatal(err)
//	}
//	path, err := g.ShortestPath(0, 5)
//
// Traversal runs Dijkstra with a deterministic tie-break, so equal-cost
// graphs always yield the same path. Construction is single-threaded; a
// fully built graph is safe for concurrent readers.
package graph
