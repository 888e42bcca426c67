package geonarrative

import (
	"context"
	"time"

	"github.com/hupe1980/geonarrative/geo"
)

// Heatmap is a density summary of indexed locations over a regular grid.
// Counts is row-major: cell (row, col) lives at row*Grid.LonCells+col.
type Heatmap struct {
	Grid     geo.GridSpec `json:"grid"`
	Counts   []int        `json:"counts"`
	MaxCount int          `json:"max_count"`
	// Counted is the number of locations that fell inside the grid
	// bounds; locations outside are skipped, not clamped in.
	Counted int `json:"counted"`
}

// Get returns the count at (row, col), or 0 when out of grid.
func (h *Heatmap) Get(row, col int) int {
	if row < 0 || row >= h.Grid.LatCells || col < 0 || col >= h.Grid.LonCells {
		return 0
	}
	return h.Counts[row*h.Grid.LonCells+col]
}

// GetNormalized returns the count at (row, col) scaled into [0, 1]
// against the densest cell. A heatmap with no counted locations
// normalizes to 0 everywhere.
func (h *Heatmap) GetNormalized(row, col int) float64 {
	if h.MaxCount == 0 {
		return 0
	}
	return float64(h.Get(row, col)) / float64(h.MaxCount)
}

// ToGrid returns the counts as a [LatCells][LonCells] matrix. Row 0 is
// the southernmost band.
func (h *Heatmap) ToGrid() [][]int {
	grid := make([][]int, h.Grid.LatCells)
	for row := range grid {
		grid[row] = make([]int, h.Grid.LonCells)
		copy(grid[row], h.Counts[row*h.Grid.LonCells:(row+1)*h.Grid.LonCells])
	}
	return grid
}

// Sum returns the total of all cell counts, which equals Counted.
func (h *Heatmap) Sum() int {
	total := 0
	for _, c := range h.Counts {
		total += c
	}
	return total
}

// Heatmap bins every indexed location into the given grid and returns
// per-cell counts. Locations outside the grid bounds are skipped; points
// on the north or east edge of the bounds land in the last cell of
// their band rather than falling out.
func (idx *Index[T]) Heatmap(ctx context.Context, spec geo.GridSpec) (*Heatmap, error) {
	start := time.Now()
	h, err := idx.heatmap(spec)
	counted := 0
	if h != nil {
		counted = h.Counted
	}
	idx.metrics.RecordHeatmap(time.Since(start), err)
	idx.logger.LogHeatmap(ctx, spec.LatCells*spec.LonCells, counted, err)
	return h, err
}

func (idx *Index[T]) heatmap(spec geo.GridSpec) (*Heatmap, error) {
	if err := spec.Validate(); err != nil {
		return nil, translateError(err)
	}

	h := &Heatmap{
		Grid:   spec,
		Counts: make([]int, spec.LatCells*spec.LonCells),
	}
	for _, loc := range idx.locations {
		row, col, ok := spec.CellIndexFor(loc)
		if !ok {
			continue
		}
		pos := row*spec.LonCells + col
		h.Counts[pos]++
		if h.Counts[pos] > h.MaxCount {
			h.MaxCount = h.Counts[pos]
		}
		h.Counted++
	}
	return h, nil
}
