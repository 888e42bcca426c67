package graph

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/hupe1980/geonarrative/event"
)

// NodeID is a dense handle into the graph's node arena. IDs are assigned
// in insertion order starting at 0 and never recycled.
type NodeID uint32

// EdgeType classifies the relation an edge expresses.
type EdgeType uint8

const (
	// Temporal links chronologically adjacent events.
	Temporal EdgeType = iota
	// Spatial links events within a distance threshold.
	Spatial
	// Causal links an event to one it caused.
	Causal
	// Thematic links events sharing tags.
	Thematic
	// Reference links an event to one it mentions.
	Reference
	// Custom carries a caller-defined label.
	Custom
)

// String returns the lowercase name of the edge type.
func (t EdgeType) String() string {
	switch t {
	case Temporal:
		return "temporal"
	case Spatial:
		return "spatial"
	case Causal:
		return "causal"
	case Thematic:
		return "thematic"
	case Reference:
		return "reference"
	case Custom:
		return "custom"
	default:
		return "unknown"
	}
}

// EdgeWeight is the typed, weighted payload of an edge. Label is only
// meaningful for Custom edges.
type EdgeWeight struct {
	Type   EdgeType
	Weight float64
	Label  string
}

// DefaultWeight returns an EdgeWeight of the given type with weight 1.
func DefaultWeight(t EdgeType) EdgeWeight {
	return EdgeWeight{Type: t, Weight: 1}
}

// Edge is a directed connection between two nodes.
type Edge struct {
	From   NodeID
	To     NodeID
	Weight EdgeWeight
}

// NarrativeGraph is a directed graph over events. Nodes live in an
// append-only arena; edges keep their insertion order, with per-node
// adjacency lists for traversal. Zero value is not usable; call New or
// FromEvents.
type NarrativeGraph struct {
	events []event.Event
	edges  []Edge

	// Adjacency holds indexes into edges, in insertion order.
	out [][]int32
	in  [][]int32

	byEventID map[event.ID]NodeID

	// Inverted tag index: tag -> nodes carrying it. Drives
	// ConnectThematic and NodesWithTag without pair scans over
	// unrelated nodes.
	byTag map[string]*roaring.Bitmap
}

// New creates an empty narrative graph.
func New() *NarrativeGraph {
	return &NarrativeGraph{
		byEventID: make(map[event.ID]NodeID),
		byTag:     make(map[string]*roaring.Bitmap),
	}
}

// FromEvents creates a graph with one node per event and no edges.
func FromEvents(events []event.Event) *NarrativeGraph {
	g := New()
	g.events = make([]event.Event, 0, len(events))
	g.out = make([][]int32, 0, len(events))
	g.in = make([][]int32, 0, len(events))
	for _, ev := range events {
		g.AddEvent(ev)
	}
	return g
}

// AddEvent appends an event as a new node and returns its handle.
func (g *NarrativeGraph) AddEvent(ev event.Event) NodeID {
	id := NodeID(len(g.events))
	g.events = append(g.events, ev)
	g.out = append(g.out, nil)
	g.in = append(g.in, nil)
	g.byEventID[ev.ID] = id
	for _, tag := range ev.Tags {
		bm, ok := g.byTag[tag]
		if !ok {
			bm = roaring.New()
			g.byTag[tag] = bm
		}
		bm.Add(uint32(id))
	}
	return id
}

// NumNodes returns the node count.
func (g *NarrativeGraph) NumNodes() int { return len(g.events) }

// NumEdges returns the edge count.
func (g *NarrativeGraph) NumEdges() int { return len(g.edges) }

// Node returns the event at the given handle.
func (g *NarrativeGraph) Node(id NodeID) (event.Event, bool) {
	if !g.valid(id) {
		return event.Event{}, false
	}
	return g.events[id], true
}

// NodeByEventID resolves an event's uuid to its node handle.
func (g *NarrativeGraph) NodeByEventID(evID event.ID) (NodeID, bool) {
	id, ok := g.byEventID[evID]
	return id, ok
}

// Connect adds a directed edge from a to b with the default weight 1.
func (g *NarrativeGraph) Connect(a, b NodeID, t EdgeType) error {
	return g.ConnectWeighted(a, b, DefaultWeight(t))
}

// ConnectWeighted adds a directed edge from a to b. Unknown endpoints
// and negative weights are rejected; parallel edges and self-loops are
// allowed.
func (g *NarrativeGraph) ConnectWeighted(a, b NodeID, w EdgeWeight) error {
	if !g.valid(a) {
		return &ErrUnknownNode{ID: a}
	}
	if !g.valid(b) {
		return &ErrUnknownNode{ID: b}
	}
	if w.Weight < 0 {
		return &ErrNegativeWeight{Weight: w.Weight}
	}
	pos := int32(len(g.edges))
	g.edges = append(g.edges, Edge{From: a, To: b, Weight: w})
	g.out[a] = append(g.out[a], pos)
	g.in[b] = append(g.in[b], pos)
	return nil
}

// Successors returns the targets of a node's outgoing edges, in edge
// insertion order. Parallel edges yield repeated entries.
func (g *NarrativeGraph) Successors(id NodeID) ([]NodeID, error) {
	if !g.valid(id) {
		return nil, &ErrUnknownNode{ID: id}
	}
	out := make([]NodeID, len(g.out[id]))
	for i, pos := range g.out[id] {
		out[i] = g.edges[pos].To
	}
	return out, nil
}

// Predecessors returns the sources of a node's incoming edges, in edge
// insertion order.
func (g *NarrativeGraph) Predecessors(id NodeID) ([]NodeID, error) {
	if !g.valid(id) {
		return nil, &ErrUnknownNode{ID: id}
	}
	out := make([]NodeID, len(g.in[id]))
	for i, pos := range g.in[id] {
		out[i] = g.edges[pos].From
	}
	return out, nil
}

// OutDegree returns the number of outgoing edges, or 0 for an unknown
// node.
func (g *NarrativeGraph) OutDegree(id NodeID) int {
	if !g.valid(id) {
		return 0
	}
	return len(g.out[id])
}

// InDegree returns the number of incoming edges, or 0 for an unknown
// node.
func (g *NarrativeGraph) InDegree(id NodeID) int {
	if !g.valid(id) {
		return 0
	}
	return len(g.in[id])
}

// Roots returns the nodes with no incoming edges, ascending.
func (g *NarrativeGraph) Roots() []NodeID {
	var out []NodeID
	for id := range g.events {
		if len(g.in[id]) == 0 {
			out = append(out, NodeID(id))
		}
	}
	return out
}

// Leaves returns the nodes with no outgoing edges, ascending.
func (g *NarrativeGraph) Leaves() []NodeID {
	var out []NodeID
	for id := range g.events {
		if len(g.out[id]) == 0 {
			out = append(out, NodeID(id))
		}
	}
	return out
}

// EdgesOfType returns the edges of the given type, in insertion order.
func (g *NarrativeGraph) EdgesOfType(t EdgeType) []Edge {
	var out []Edge
	for _, e := range g.edges {
		if e.Weight.Type == t {
			out = append(out, e)
		}
	}
	return out
}

// Nodes iterates over (handle, event) pairs in insertion order. The
// sequence is restartable.
func (g *NarrativeGraph) Nodes() iter.Seq2[NodeID, event.Event] {
	return func(yield func(NodeID, event.Event) bool) {
		for id, ev := range g.events {
			if !yield(NodeID(id), ev) {
				return
			}
		}
	}
}

// Edges iterates over edges in insertion order.
func (g *NarrativeGraph) Edges() iter.Seq[Edge] {
	return func(yield func(Edge) bool) {
		for _, e := range g.edges {
			if !yield(e) {
				return
			}
		}
	}
}

// NodesWithTag returns the nodes whose event carries the tag, ascending.
func (g *NarrativeGraph) NodesWithTag(tag string) []NodeID {
	bm, ok := g.byTag[tag]
	if !ok {
		return nil
	}
	out := make([]NodeID, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, NodeID(it.Next()))
	}
	return out
}

func (g *NarrativeGraph) valid(id NodeID) bool {
	return int(id) < len(g.events)
}
