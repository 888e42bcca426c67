package graph

import (
	"sort"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geonarrative/geo"
)

// ConnectTemporal chains the nodes in chronological order: each node
// gets one Temporal edge of weight 1 to its successor in time, n-1 edges
// total. Equal timestamps keep insertion order. Re-invoking the strategy
// adds a second chain; connect once per graph.
func (g *NarrativeGraph) ConnectTemporal() {
	if len(g.events) < 2 {
		return
	}
	order := make([]NodeID, len(g.events))
	for i := range order {
		order[i] = NodeID(i)
	}
	sort.SliceStable(order, func(i, j int) bool {
		return g.events[order[i]].Timestamp.Before(g.events[order[j]].Timestamp)
	})
	for i := 0; i < len(order)-1; i++ {
		// Endpoints are arena handles, cannot fail.
		_ = g.Connect(order[i], order[i+1], Temporal)
	}
}

// ConnectSpatial links every unordered pair of nodes within maxKm of
// each other with a bidirectional pair of Spatial edges, weighted by the
// haversine distance in km. Shortest paths then prefer hops through
// nearby events. The scan is O(n²); extract a spatial subgraph first
// when n is large.
func (g *NarrativeGraph) ConnectSpatial(maxKm float64) error {
	if maxKm < 0 {
		return &ErrNegativeDistance{Distance: maxKm}
	}
	for i := 0; i < len(g.events); i++ {
		for j := i + 1; j < len(g.events); j++ {
			km := geo.Haversine(g.events[i].Location, g.events[j].Location)
			if km > maxKm {
				continue
			}
			w := EdgeWeight{Type: Spatial, Weight: km}
			_ = g.ConnectWeighted(NodeID(i), NodeID(j), w)
			_ = g.ConnectWeighted(NodeID(j), NodeID(i), w)
		}
	}
	return nil
}

// ConnectThematic links every pair of nodes sharing at least one tag
// with a bidirectional pair of Thematic edges, weighted 1/shared so more
// overlap means a cheaper hop. Candidate pairs come from the tag index;
// nodes with disjoint tags are never compared.
func (g *NarrativeGraph) ConnectThematic() {
	for i := 0; i < len(g.events); i++ {
		candidates := roaring.New()
		for _, tag := range g.events[i].Tags {
			if bm, ok := g.byTag[tag]; ok {
				candidates.Or(bm)
			}
		}
		it := candidates.Iterator()
		it.AdvanceIfNeeded(uint32(i) + 1)
		for it.HasNext() {
			j := NodeID(it.Next())
			shared := g.sharedTags(NodeID(i), j)
			if shared == 0 {
				continue
			}
			w := EdgeWeight{Type: Thematic, Weight: 1 / float64(shared)}
			_ = g.ConnectWeighted(NodeID(i), j, w)
			_ = g.ConnectWeighted(j, NodeID(i), w)
		}
	}
}

func (g *NarrativeGraph) sharedTags(a, b NodeID) int {
	shared := 0
	for _, tag := range g.events[a].Tags {
		if g.events[b].HasTag(tag) {
			shared++
		}
	}
	return shared
}
