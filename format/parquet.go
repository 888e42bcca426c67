package format

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/parquet-go/parquet-go"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

// parquetEvent is the flat row schema. Tags are ";" joined; optional
// location fields are nullable columns.
type parquetEvent struct {
	ID          string    `parquet:"id"`
	Lat         float64   `parquet:"latitude"`
	Lon         float64   `parquet:"longitude"`
	Elevation   *float64  `parquet:"elevation"`
	Uncertainty *float64  `parquet:"uncertainty_meters"`
	PlaceName   string    `parquet:"place_name"`
	Timestamp   time.Time `parquet:"timestamp,timestamp(millisecond)"`
	Precision   string    `parquet:"precision"`
	Text        string    `parquet:"text"`
	Tags        string    `parquet:"tags"`
}

// Parquet reads and writes events as a columnar file with one row per
// event. Import buffers the whole input, as the parquet footer lives at
// the end of the file.
type Parquet struct{}

// Import implements Format.
func (f *Parquet) Import(r io.Reader) (*event.Narrative, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, &ErrDecode{Format: "parquet", Err: err}
	}
	rows, err := parquet.Read[parquetEvent](bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, &ErrDecode{Format: "parquet", Err: err}
	}

	n := &event.Narrative{}
	for i, row := range rows {
		id, err := event.ParseID(row.ID)
		if err != nil {
			return nil, &ErrDecode{Format: "parquet", Err: fmt.Errorf("row %d: %w", i, err)}
		}
		p, err := event.ParsePrecision(row.Precision)
		if err != nil {
			return nil, &ErrDecode{Format: "parquet", Err: fmt.Errorf("row %d: %w", i, err)}
		}

		loc := geo.NewLocation(row.Lat, row.Lon)
		loc.Elevation = row.Elevation
		loc.UncertaintyMeters = row.Uncertainty
		loc.Name = row.PlaceName

		ev := event.Event{
			ID:        id,
			Location:  loc,
			Timestamp: event.NewTimestampWithPrecision(row.Timestamp, p),
			Text:      row.Text,
		}
		if row.Tags != "" {
			ev.Tags = strings.Split(row.Tags, ";")
		}
		n.Add(ev)
	}
	return n, nil
}

// Export implements Format.
func (f *Parquet) Export(w io.Writer, n *event.Narrative) error {
	rows := make([]parquetEvent, len(n.Events))
	for i, ev := range n.Events {
		rows[i] = parquetEvent{
			ID:          ev.ID.String(),
			Lat:         ev.Location.Lat,
			Lon:         ev.Location.Lon,
			Elevation:   ev.Location.Elevation,
			Uncertainty: ev.Location.UncertaintyMeters,
			PlaceName:   ev.Location.Name,
			Timestamp:   ev.Timestamp.Time,
			Precision:   ev.Timestamp.Precision.String(),
			Text:        ev.Text,
			Tags:        strings.Join(ev.Tags, ";"),
		}
	}
	return parquet.Write(w, rows)
}
