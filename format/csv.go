package format

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

// CSVColumns names the columns a CSV converter reads and writes.
// Zero-value fields fall back to the defaults below.
type CSVColumns struct {
	ID        string
	Lat       string
	Lon       string
	Timestamp string
	Precision string
	Text      string
	Tags      string
}

// DefaultCSVColumns returns the default header names.
func DefaultCSVColumns() CSVColumns {
	return CSVColumns{
		ID:        "id",
		Lat:       "latitude",
		Lon:       "longitude",
		Timestamp: "timestamp",
		Precision: "precision",
		Text:      "text",
		Tags:      "tags",
	}
}

func (c CSVColumns) withDefaults() CSVColumns {
	d := DefaultCSVColumns()
	if c.ID == "" {
		c.ID = d.ID
	}
	if c.Lat == "" {
		c.Lat = d.Lat
	}
	if c.Lon == "" {
		c.Lon = d.Lon
	}
	if c.Timestamp == "" {
		c.Timestamp = d.Timestamp
	}
	if c.Precision == "" {
		c.Precision = d.Precision
	}
	if c.Text == "" {
		c.Text = d.Text
	}
	if c.Tags == "" {
		c.Tags = d.Tags
	}
	return c
}

// CSV reads and writes events as delimited rows with a header line.
// Tags are joined with ";". Latitude, longitude, and timestamp columns
// are required on import; id, precision, text, and tags are optional,
// with a fresh id generated when the column is absent.
type CSV struct {
	// Columns overrides the header names; zero-value fields use
	// DefaultCSVColumns.
	Columns CSVColumns

	// Comma is the field delimiter; 0 means ','.
	Comma rune
}

// Import implements Format.
func (f *CSV) Import(r io.Reader) (*event.Narrative, error) {
	cols := f.Columns.withDefaults()

	cr := csv.NewReader(r)
	if f.Comma != 0 {
		cr.Comma = f.Comma
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return &event.Narrative{}, nil
	}
	if err != nil {
		return nil, &ErrDecode{Format: "csv", Err: err}
	}

	pos := make(map[string]int, len(header))
	for i, name := range header {
		pos[strings.TrimSpace(name)] = i
	}
	for _, required := range []string{cols.Lat, cols.Lon, cols.Timestamp} {
		if _, ok := pos[required]; !ok {
			return nil, &ErrDecode{Format: "csv", Err: &ErrMissingColumn{Column: required}}
		}
	}
	field := func(record []string, name string) (string, bool) {
		i, ok := pos[name]
		if !ok || i >= len(record) {
			return "", false
		}
		return record[i], true
	}

	n := &event.Narrative{}
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ErrDecode{Format: "csv", Err: err}
		}

		latStr, _ := field(record, cols.Lat)
		lat, err := strconv.ParseFloat(latStr, 64)
		if err != nil {
			return nil, &ErrDecode{Format: "csv", Err: fmt.Errorf("line %d: latitude %q: %w", line, latStr, err)}
		}
		lonStr, _ := field(record, cols.Lon)
		lon, err := strconv.ParseFloat(lonStr, 64)
		if err != nil {
			return nil, &ErrDecode{Format: "csv", Err: fmt.Errorf("line %d: longitude %q: %w", line, lonStr, err)}
		}
		tsStr, _ := field(record, cols.Timestamp)
		ts, err := event.ParseTimestamp(tsStr)
		if err != nil {
			return nil, &ErrDecode{Format: "csv", Err: fmt.Errorf("line %d: %w", line, err)}
		}
		if precStr, ok := field(record, cols.Precision); ok && precStr != "" {
			p, err := event.ParsePrecision(precStr)
			if err != nil {
				return nil, &ErrDecode{Format: "csv", Err: fmt.Errorf("line %d: %w", line, err)}
			}
			ts.Precision = p
		}

		ev := event.Event{
			ID:        event.NewID(),
			Location:  geo.NewLocation(lat, lon),
			Timestamp: ts,
		}
		if idStr, ok := field(record, cols.ID); ok && idStr != "" {
			id, err := event.ParseID(idStr)
			if err != nil {
				return nil, &ErrDecode{Format: "csv", Err: fmt.Errorf("line %d: %w", line, err)}
			}
			ev.ID = id
		}
		if text, ok := field(record, cols.Text); ok {
			ev.Text = text
		}
		if tags, ok := field(record, cols.Tags); ok && tags != "" {
			ev.Tags = strings.Split(tags, ";")
		}
		n.Add(ev)
	}
	return n, nil
}

// Export implements Format.
func (f *CSV) Export(w io.Writer, n *event.Narrative) error {
	cols := f.Columns.withDefaults()

	cw := csv.NewWriter(w)
	if f.Comma != 0 {
		cw.Comma = f.Comma
	}

	header := []string{cols.ID, cols.Lat, cols.Lon, cols.Timestamp, cols.Precision, cols.Text, cols.Tags}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, ev := range n.Events {
		record := []string{
			ev.ID.String(),
			strconv.FormatFloat(ev.Location.Lat, 'f', -1, 64),
			strconv.FormatFloat(ev.Location.Lon, 'f', -1, 64),
			ev.Timestamp.Time.Format(timestampLayout),
			ev.Timestamp.Precision.String(),
			ev.Text,
			strings.Join(ev.Tags, ";"),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
