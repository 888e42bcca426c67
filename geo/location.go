package geo

import "fmt"

// Location is a point in WGS84 (EPSG:4326) decimal degrees.
//
// Elevation and UncertaintyMeters are optional; nil means unknown.
type Location struct {
	// Lat is the latitude in decimal degrees, -90 (south) to 90 (north).
	Lat float64 `json:"lat"`

	// Lon is the longitude in decimal degrees, -180 (west) to 180 (east).
	Lon float64 `json:"lon"`

	// Elevation is meters above sea level, if known.
	Elevation *float64 `json:"elevation,omitempty"`

	// UncertaintyMeters is the radius of positional uncertainty, if known.
	UncertaintyMeters *float64 `json:"uncertainty_meters,omitempty"`

	// Name is an optional human-readable place name.
	Name string `json:"name,omitempty"`
}

// NewLocation creates a location from latitude and longitude.
func NewLocation(lat, lon float64) Location {
	return Location{Lat: lat, Lon: lon}
}

// NewLocationWithElevation creates a location with an elevation in meters.
func NewLocationWithElevation(lat, lon, elevation float64) Location {
	return Location{Lat: lat, Lon: lon, Elevation: &elevation}
}

// Validate checks that the coordinates are valid WGS84 values.
func (l Location) Validate() error {
	if l.Lat < -90 || l.Lat > 90 {
		return &ErrInvalidLatitude{Lat: l.Lat}
	}
	if l.Lon < -180 || l.Lon > 180 {
		return &ErrInvalidLongitude{Lon: l.Lon}
	}
	return nil
}

// IsValid reports whether the coordinates are valid WGS84 values.
func (l Location) IsValid() bool {
	return l.Validate() == nil
}

func (l Location) String() string {
	if l.Name != "" {
		return fmt.Sprintf("%s (%.4f, %.4f)", l.Name, l.Lat, l.Lon)
	}
	return fmt.Sprintf("(%.4f, %.4f)", l.Lat, l.Lon)
}
