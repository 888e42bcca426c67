package graph

import (
	"math"

	"github.com/hupe1980/geonarrative/internal/queue"
)

// Path is the result of a shortest-path search: the node sequence from
// source to destination inclusive, and the sum of traversed edge
// weights.
type Path struct {
	Nodes       []NodeID
	TotalWeight float64
}

// Len returns the number of nodes on the path.
func (p *Path) Len() int { return len(p.Nodes) }

// ShortestPath returns the minimum-weight path from a to b, or nil when
// b is unreachable from a. Edge weights are non-negative by
// construction, so this runs plain Dijkstra; ties between equal-cost
// frontiers break deterministically by visit order.
func (g *NarrativeGraph) ShortestPath(a, b NodeID) (*Path, error) {
	if !g.valid(a) {
		return nil, &ErrUnknownNode{ID: a}
	}
	if !g.valid(b) {
		return nil, &ErrUnknownNode{ID: b}
	}
	if a == b {
		return &Path{Nodes: []NodeID{a}}, nil
	}

	const unreached = -1
	dist := make([]float64, len(g.events))
	prev := make([]int32, len(g.events))
	done := make([]bool, len(g.events))
	for i := range dist {
		dist[i] = math.Inf(1)
		prev[i] = unreached
	}
	dist[a] = 0

	pq := queue.NewMin(len(g.events))
	seq := uint32(0)
	pq.Push(queue.Item{Node: uint32(a), Priority: 0, Seq: seq})

	for pq.Len() > 0 {
		item, _ := pq.Pop()
		u := NodeID(item.Node)
		if done[u] {
			continue
		}
		done[u] = true
		if u == b {
			break
		}
		for _, pos := range g.out[u] {
			e := g.edges[pos]
			if done[e.To] {
				continue
			}
			d := dist[u] + e.Weight.Weight
			if d < dist[e.To] {
				dist[e.To] = d
				prev[e.To] = int32(u)
				seq++
				pq.Push(queue.Item{Node: uint32(e.To), Priority: d, Seq: seq})
			}
		}
	}

	if math.IsInf(dist[b], 1) {
		return nil, nil
	}

	var nodes []NodeID
	for at := int32(b); at != unreached; at = prev[at] {
		nodes = append(nodes, NodeID(at))
	}
	for i, j := 0, len(nodes)-1; i < j; i, j = i+1, j-1 {
		nodes[i], nodes[j] = nodes[j], nodes[i]
	}
	return &Path{Nodes: nodes, TotalWeight: dist[b]}, nil
}

// HasPath reports whether b is reachable from a along directed edges.
// Cheaper than ShortestPath when only reachability matters.
func (g *NarrativeGraph) HasPath(a, b NodeID) (bool, error) {
	if !g.valid(a) {
		return false, &ErrUnknownNode{ID: a}
	}
	if !g.valid(b) {
		return false, &ErrUnknownNode{ID: b}
	}
	if a == b {
		return true, nil
	}
	seen := make([]bool, len(g.events))
	seen[a] = true
	frontier := []NodeID{a}
	for len(frontier) > 0 {
		u := frontier[0]
		frontier = frontier[1:]
		for _, pos := range g.out[u] {
			to := g.edges[pos].To
			if to == b {
				return true, nil
			}
			if !seen[to] {
				seen[to] = true
				frontier = append(frontier, to)
			}
		}
	}
	return false, nil
}
