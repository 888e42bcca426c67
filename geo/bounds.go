package geo

// Bounds is an axis-aligned bounding box in latitude/longitude space.
//
// Containment is closed on both axes: points on an edge are inside.
type Bounds struct {
	MinLat float64
	MinLon float64
	MaxLat float64
	MaxLon float64
}

// World covers the full WGS84 coordinate space.
var World = Bounds{MinLat: -90, MinLon: -180, MaxLat: 90, MaxLon: 180}

// NewBounds creates a bounding box. It fails if min exceeds max on either
// axis; inverted bounds are never silently reordered or clamped.
func NewBounds(minLat, minLon, maxLat, maxLon float64) (Bounds, error) {
	if minLat > maxLat || minLon > maxLon {
		return Bounds{}, &ErrInvalidBounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}
	}
	return Bounds{MinLat: minLat, MinLon: minLon, MaxLat: maxLat, MaxLon: maxLon}, nil
}

// BoundsFromCorners creates bounds from the southwest and northeast corners.
func BoundsFromCorners(sw, ne Location) (Bounds, error) {
	return NewBounds(sw.Lat, sw.Lon, ne.Lat, ne.Lon)
}

// BoundsFromLocations returns the smallest bounds containing all locations.
// ok is false when the input is empty.
func BoundsFromLocations(locations []Location) (b Bounds, ok bool) {
	if len(locations) == 0 {
		return Bounds{}, false
	}
	first := locations[0]
	b = Bounds{MinLat: first.Lat, MinLon: first.Lon, MaxLat: first.Lat, MaxLon: first.Lon}
	for _, loc := range locations[1:] {
		b = b.ExpandToInclude(loc)
	}
	return b, true
}

// Validate checks the min/max invariant on both axes.
func (b Bounds) Validate() error {
	if b.MinLat > b.MaxLat || b.MinLon > b.MaxLon {
		return &ErrInvalidBounds{MinLat: b.MinLat, MinLon: b.MinLon, MaxLat: b.MaxLat, MaxLon: b.MaxLon}
	}
	return nil
}

// Contains reports whether the location lies within the bounds, edges included.
func (b Bounds) Contains(loc Location) bool {
	return loc.Lat >= b.MinLat && loc.Lat <= b.MaxLat &&
		loc.Lon >= b.MinLon && loc.Lon <= b.MaxLon
}

// Intersects reports whether two bounds share any area (or edge).
func (b Bounds) Intersects(other Bounds) bool {
	return b.MinLat <= other.MaxLat && b.MaxLat >= other.MinLat &&
		b.MinLon <= other.MaxLon && b.MaxLon >= other.MinLon
}

// Intersection returns the overlapping region of two bounds.
// ok is false when they do not intersect.
func (b Bounds) Intersection(other Bounds) (Bounds, bool) {
	if !b.Intersects(other) {
		return Bounds{}, false
	}
	return Bounds{
		MinLat: max(b.MinLat, other.MinLat),
		MinLon: max(b.MinLon, other.MinLon),
		MaxLat: min(b.MaxLat, other.MaxLat),
		MaxLon: min(b.MaxLon, other.MaxLon),
	}, true
}

// Union returns the smallest bounds containing both.
func (b Bounds) Union(other Bounds) Bounds {
	return Bounds{
		MinLat: min(b.MinLat, other.MinLat),
		MinLon: min(b.MinLon, other.MinLon),
		MaxLat: max(b.MaxLat, other.MaxLat),
		MaxLon: max(b.MaxLon, other.MaxLon),
	}
}

// ExpandToInclude returns bounds grown to contain the location.
func (b Bounds) ExpandToInclude(loc Location) Bounds {
	return Bounds{
		MinLat: min(b.MinLat, loc.Lat),
		MinLon: min(b.MinLon, loc.Lon),
		MaxLat: max(b.MaxLat, loc.Lat),
		MaxLon: max(b.MaxLon, loc.Lon),
	}
}

// Center returns the midpoint of the bounds.
func (b Bounds) Center() Location {
	return Location{Lat: (b.MinLat + b.MaxLat) / 2, Lon: (b.MinLon + b.MaxLon) / 2}
}

// Width returns the longitude span in degrees.
func (b Bounds) Width() float64 { return b.MaxLon - b.MinLon }

// Height returns the latitude span in degrees.
func (b Bounds) Height() float64 { return b.MaxLat - b.MinLat }

// Southwest returns the southwest corner.
func (b Bounds) Southwest() Location { return Location{Lat: b.MinLat, Lon: b.MinLon} }

// Northeast returns the northeast corner.
func (b Bounds) Northeast() Location { return Location{Lat: b.MaxLat, Lon: b.MaxLon} }

// Northwest returns the northwest corner.
func (b Bounds) Northwest() Location { return Location{Lat: b.MaxLat, Lon: b.MinLon} }

// Southeast returns the southeast corner.
func (b Bounds) Southeast() Location { return Location{Lat: b.MinLat, Lon: b.MaxLon} }
