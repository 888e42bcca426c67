package geo

import "fmt"

// ErrInvalidLatitude indicates a latitude outside [-90, 90].
type ErrInvalidLatitude struct {
	Lat float64
}

func (e *ErrInvalidLatitude) Error() string {
	return fmt.Sprintf("invalid latitude: %g (must be in [-90, 90])", e.Lat)
}

// ErrInvalidLongitude indicates a longitude outside [-180, 180].
type ErrInvalidLongitude struct {
	Lon float64
}

func (e *ErrInvalidLongitude) Error() string {
	return fmt.Sprintf("invalid longitude: %g (must be in [-180, 180])", e.Lon)
}

// ErrInvalidBounds indicates a bounding box with an inverted axis
// (min greater than max). Bounds are rejected, never clamped.
type ErrInvalidBounds struct {
	MinLat, MinLon, MaxLat, MaxLon float64
}

func (e *ErrInvalidBounds) Error() string {
	return fmt.Sprintf("invalid bounds: min (%g, %g) must not exceed max (%g, %g)",
		e.MinLat, e.MinLon, e.MaxLat, e.MaxLon)
}

// ErrInvalidGrid indicates a grid specification with non-positive cell counts.
type ErrInvalidGrid struct {
	LatCells, LonCells int
}

func (e *ErrInvalidGrid) Error() string {
	return fmt.Sprintf("invalid grid: %dx%d cells (both must be positive)", e.LatCells, e.LonCells)
}
