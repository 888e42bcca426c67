package graph

import "fmt"

// ErrUnknownNode indicates a NodeID outside the graph's arena. This is
// distinct from two valid nodes being disconnected, which is not an
// error.
type ErrUnknownNode struct {
	ID NodeID
}

func (e *ErrUnknownNode) Error() string {
	return fmt.Sprintf("unknown node %d", e.ID)
}

// ErrNegativeWeight indicates an edge weight below zero. Negative
// weights are rejected when the edge is created so shortest-path
// traversal never has to detect them mid-run.
type ErrNegativeWeight struct {
	Weight float64
}

func (e *ErrNegativeWeight) Error() string {
	return fmt.Sprintf("negative edge weight %g", e.Weight)
}

// ErrNegativeDistance indicates a negative distance threshold passed to
// a spatial connection strategy.
type ErrNegativeDistance struct {
	Distance float64
}

func (e *ErrNegativeDistance) Error() string {
	return fmt.Sprintf("negative distance threshold %g km", e.Distance)
}
