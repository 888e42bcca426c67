package graph

import (
	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

// Subgraph is an extracted copy of part of a graph. Graph is a fully
// independent NarrativeGraph; Mapping translates original handles to
// handles in the copy for nodes that survived the filter.
type Subgraph struct {
	Graph   *NarrativeGraph
	Mapping map[NodeID]NodeID
}

// SubgraphTemporal extracts the nodes whose timestamp falls within the
// range, with every edge whose endpoints both survive. Edges to or from
// a dropped node are dropped with it.
func (g *NarrativeGraph) SubgraphTemporal(r event.TimeRange) (*Subgraph, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return g.subgraph(func(ev event.Event) bool {
		return r.Contains(ev.Timestamp)
	}), nil
}

// SubgraphSpatial extracts the nodes whose location falls within the
// bounds, with every edge whose endpoints both survive.
func (g *NarrativeGraph) SubgraphSpatial(bounds geo.Bounds) (*Subgraph, error) {
	if err := bounds.Validate(); err != nil {
		return nil, err
	}
	return g.subgraph(func(ev event.Event) bool {
		return bounds.Contains(ev.Location)
	}), nil
}

// SubgraphFunc extracts the nodes matching an arbitrary predicate.
func (g *NarrativeGraph) SubgraphFunc(keep func(event.Event) bool) *Subgraph {
	return g.subgraph(keep)
}

func (g *NarrativeGraph) subgraph(keep func(event.Event) bool) *Subgraph {
	sub := &Subgraph{
		Graph:   New(),
		Mapping: make(map[NodeID]NodeID),
	}
	for id, ev := range g.events {
		if keep(ev) {
			sub.Mapping[NodeID(id)] = sub.Graph.AddEvent(ev)
		}
	}
	for _, e := range g.edges {
		from, okFrom := sub.Mapping[e.From]
		to, okTo := sub.Mapping[e.To]
		if !okFrom || !okTo {
			continue
		}
		// Weights were validated when the edge was first created.
		_ = sub.Graph.ConnectWeighted(from, to, e.Weight)
	}
	return sub
}
