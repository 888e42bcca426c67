// Package geo provides the geographic value types shared by the index and
// graph layers: WGS84 locations, axis-aligned bounding boxes, regular grids
// and distance math.
//
// All types are plain values with no behavior beyond containment,
// intersection and measurement. Validation happens at construction; a
// Bounds or GridSpec obtained from a constructor in this package is always
// well formed.
package geo
