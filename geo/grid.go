package geo

import "math"

// GridSpec subdivides a bounding box into LatCells x LonCells equal cells.
// Rows run south to north, columns west to east.
type GridSpec struct {
	Bounds   Bounds
	LatCells int
	LonCells int
}

// NewGridSpec creates a grid specification over the given bounds.
func NewGridSpec(bounds Bounds, latCells, lonCells int) (GridSpec, error) {
	if err := bounds.Validate(); err != nil {
		return GridSpec{}, err
	}
	if latCells <= 0 || lonCells <= 0 {
		return GridSpec{}, &ErrInvalidGrid{LatCells: latCells, LonCells: lonCells}
	}
	return GridSpec{Bounds: bounds, LatCells: latCells, LonCells: lonCells}, nil
}

// SquareCells creates a grid of roughly square cells whose total count
// approximates targetCells.
func SquareCells(bounds Bounds, targetCells int) (GridSpec, error) {
	if err := bounds.Validate(); err != nil {
		return GridSpec{}, err
	}
	if targetCells <= 0 {
		return GridSpec{}, &ErrInvalidGrid{LatCells: targetCells, LonCells: targetCells}
	}
	aspect := 1.0
	if h := bounds.Height(); h > 0 {
		aspect = bounds.Width() / h
	}
	latCells := int(math.Sqrt(float64(targetCells) / aspect))
	lonCells := int(math.Sqrt(float64(targetCells) * aspect))
	return GridSpec{
		Bounds:   bounds,
		LatCells: max(latCells, 1),
		LonCells: max(lonCells, 1),
	}, nil
}

// Validate checks the bounds and both cell counts.
func (g GridSpec) Validate() error {
	if err := g.Bounds.Validate(); err != nil {
		return err
	}
	if g.LatCells <= 0 || g.LonCells <= 0 {
		return &ErrInvalidGrid{LatCells: g.LatCells, LonCells: g.LonCells}
	}
	return nil
}

// CellSize returns the (latitude, longitude) extent of one cell in degrees.
func (g GridSpec) CellSize() (latSize, lonSize float64) {
	return g.Bounds.Height() / float64(g.LatCells), g.Bounds.Width() / float64(g.LonCells)
}

// Cells returns the total number of cells.
func (g GridSpec) Cells() int { return g.LatCells * g.LonCells }

// CellIndexFor maps a location to its (row, col) cell. ok is false for
// locations outside the grid bounds. Locations on the northern or eastern
// edge fall into the last row/column.
func (g GridSpec) CellIndexFor(loc Location) (row, col int, ok bool) {
	if !g.Bounds.Contains(loc) {
		return 0, 0, false
	}
	latSize, lonSize := g.CellSize()
	if latSize > 0 {
		row = int((loc.Lat - g.Bounds.MinLat) / latSize)
	}
	if lonSize > 0 {
		col = int((loc.Lon - g.Bounds.MinLon) / lonSize)
	}
	row = min(row, g.LatCells-1)
	col = min(col, g.LonCells-1)
	return row, col, true
}

// CellBounds returns the bounds of the cell at (row, col).
func (g GridSpec) CellBounds(row, col int) Bounds {
	latSize, lonSize := g.CellSize()
	return Bounds{
		MinLat: g.Bounds.MinLat + float64(row)*latSize,
		MinLon: g.Bounds.MinLon + float64(col)*lonSize,
		MaxLat: g.Bounds.MinLat + float64(row+1)*latSize,
		MaxLon: g.Bounds.MinLon + float64(col+1)*lonSize,
	}
}
