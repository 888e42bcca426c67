package format

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

type geoJSONGeometry struct {
	Type        string    `json:"type"`
	Coordinates []float64 `json:"coordinates"`
}

type geoJSONProperties struct {
	ID        string   `json:"id,omitempty"`
	Timestamp string   `json:"timestamp"`
	Precision string   `json:"precision,omitempty"`
	Text      string   `json:"text,omitempty"`
	Tags      []string `json:"tags,omitempty"`
	Name      string   `json:"name,omitempty"`
}

type geoJSONFeature struct {
	Type       string            `json:"type"`
	Geometry   geoJSONGeometry   `json:"geometry"`
	Properties geoJSONProperties `json:"properties"`
}

type geoJSONCollection struct {
	Type     string           `json:"type"`
	Features []geoJSONFeature `json:"features"`
}

// GeoJSON reads and writes events as an RFC 7946 FeatureCollection of
// Point features. Coordinates are [lon, lat] or [lon, lat, elevation];
// timestamp, precision, text, tags, and the place name travel in the
// feature properties. Narrative title and metadata have no GeoJSON
// expression and do not round-trip.
type GeoJSON struct{}

// Import implements Format.
func (f *GeoJSON) Import(r io.Reader) (*event.Narrative, error) {
	var doc geoJSONCollection
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, &ErrDecode{Format: "geojson", Err: err}
	}
	if doc.Type != "FeatureCollection" {
		return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("unexpected type %q", doc.Type)}
	}

	n := &event.Narrative{}
	for i, feat := range doc.Features {
		if feat.Geometry.Type != "Point" {
			return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("feature %d: unsupported geometry %q", i, feat.Geometry.Type)}
		}
		if len(feat.Geometry.Coordinates) < 2 {
			return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("feature %d: point needs 2 coordinates", i)}
		}

		loc := geo.NewLocation(feat.Geometry.Coordinates[1], feat.Geometry.Coordinates[0])
		if len(feat.Geometry.Coordinates) >= 3 {
			elevation := feat.Geometry.Coordinates[2]
			loc.Elevation = &elevation
		}
		loc.Name = feat.Properties.Name

		ts, err := event.ParseTimestamp(feat.Properties.Timestamp)
		if err != nil {
			return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("feature %d: %w", i, err)}
		}
		if feat.Properties.Precision != "" {
			p, err := event.ParsePrecision(feat.Properties.Precision)
			if err != nil {
				return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("feature %d: %w", i, err)}
			}
			ts.Precision = p
		}

		ev := event.Event{
			ID:        event.NewID(),
			Location:  loc,
			Timestamp: ts,
			Text:      feat.Properties.Text,
			Tags:      feat.Properties.Tags,
		}
		if feat.Properties.ID != "" {
			id, err := event.ParseID(feat.Properties.ID)
			if err != nil {
				return nil, &ErrDecode{Format: "geojson", Err: fmt.Errorf("feature %d: %w", i, err)}
			}
			ev.ID = id
		}
		n.Add(ev)
	}
	return n, nil
}

// Export implements Format.
func (f *GeoJSON) Export(w io.Writer, n *event.Narrative) error {
	doc := geoJSONCollection{
		Type:     "FeatureCollection",
		Features: make([]geoJSONFeature, 0, len(n.Events)),
	}
	for _, ev := range n.Events {
		coords := []float64{ev.Location.Lon, ev.Location.Lat}
		if ev.Location.Elevation != nil {
			coords = append(coords, *ev.Location.Elevation)
		}
		doc.Features = append(doc.Features, geoJSONFeature{
			Type:     "Feature",
			Geometry: geoJSONGeometry{Type: "Point", Coordinates: coords},
			Properties: geoJSONProperties{
				ID:        ev.ID.String(),
				Timestamp: ev.Timestamp.Time.Format(timestampLayout),
				Precision: ev.Timestamp.Precision.String(),
				Text:      ev.Text,
				Tags:      ev.Tags,
				Name:      ev.Location.Name,
			},
		})
	}
	return json.NewEncoder(w).Encode(doc)
}
