package format

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

func testNarrative(t *testing.T) *event.Narrative {
	t.Helper()

	n := event.NewNarrative("unrest 2024")
	n.Description = "field reports"
	n.Metadata = map[string]string{"source": "osint"}

	first, err := event.NewBuilder().
		Coordinates(52.52, 13.405).
		ParseTimestamp("2024-03-15T14:30:00Z").
		Text("crowd gathers at the gate").
		Tag("protest").
		Tag("politics").
		Build()
	require.NoError(t, err)
	n.Add(first)

	loc := geo.NewLocationWithElevation(48.8566, 2.3522, 35)
	loc.Name = "Paris"
	second, err := event.NewBuilder().
		Location(loc).
		ParseTimestamp("2024-03").
		Text("ministry statement").
		Build()
	require.NoError(t, err)
	n.Add(second)

	return n
}

func assertRoundTrip(t *testing.T, want, got *event.Narrative) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for i, w := range want.Events {
		g := got.Events[i]
		assert.Equal(t, w.ID, g.ID)
		assert.InDelta(t, w.Location.Lat, g.Location.Lat, 1e-9)
		assert.InDelta(t, w.Location.Lon, g.Location.Lon, 1e-9)
		assert.True(t, w.Timestamp.Equal(g.Timestamp), "event %d timestamp", i)
		assert.Equal(t, w.Timestamp.Precision, g.Timestamp.Precision, "event %d precision", i)
		assert.Equal(t, w.Text, g.Text)
		assert.Equal(t, w.Tags, g.Tags)
	}
}

func TestJSONRoundTrip(t *testing.T) {
	want := testNarrative(t)

	s, err := ExportString(&JSON{Indent: "  "}, want)
	require.NoError(t, err)

	got, err := ImportString(&JSON{}, s)
	require.NoError(t, err)
	assertRoundTrip(t, want, got)
	assert.Equal(t, "unrest 2024", got.Title)
	assert.Equal(t, "osint", got.Metadata["source"])
}

func TestJSONMalformed(t *testing.T) {
	_, err := ImportString(&JSON{}, "{not json")
	var ed *ErrDecode
	require.ErrorAs(t, err, &ed)
	assert.Equal(t, "json", ed.Format)
}

func TestCSVRoundTrip(t *testing.T) {
	want := testNarrative(t)

	s, err := ExportString(&CSV{}, want)
	require.NoError(t, err)

	got, err := ImportString(&CSV{}, s)
	require.NoError(t, err)
	assertRoundTrip(t, want, got)
}

func TestCSVCustomColumns(t *testing.T) {
	f := &CSV{
		Columns: CSVColumns{Lat: "breitengrad", Lon: "laengengrad"},
		Comma:   ';',
	}
	want := testNarrative(t)

	s, err := ExportString(f, want)
	require.NoError(t, err)
	assert.Contains(t, s, "breitengrad")

	got, err := ImportString(f, s)
	require.NoError(t, err)
	assertRoundTrip(t, want, got)
}

func TestCSVImportErrors(t *testing.T) {
	t.Run("missing required column", func(t *testing.T) {
		_, err := ImportString(&CSV{}, "id,latitude,text\nx,1,hello\n")
		var ed *ErrDecode
		require.ErrorAs(t, err, &ed)
		var em *ErrMissingColumn
		require.ErrorAs(t, err, &em)
		assert.Equal(t, "longitude", em.Column)
	})

	t.Run("bad coordinate", func(t *testing.T) {
		_, err := ImportString(&CSV{}, "latitude,longitude,timestamp\nnope,2,2024-03-15\n")
		var ed *ErrDecode
		require.ErrorAs(t, err, &ed)
	})

	t.Run("bad timestamp", func(t *testing.T) {
		_, err := ImportString(&CSV{}, "latitude,longitude,timestamp\n1,2,whenever\n")
		var ep *event.ErrParseTimestamp
		require.ErrorAs(t, err, &ep)
	})

	t.Run("generated id when column absent", func(t *testing.T) {
		got, err := ImportString(&CSV{}, "latitude,longitude,timestamp\n1,2,2024-03-15\n")
		require.NoError(t, err)
		require.Equal(t, 1, got.Len())
		assert.False(t, got.Events[0].ID.IsZero())
	})

	t.Run("empty input", func(t *testing.T) {
		got, err := ImportString(&CSV{}, "")
		require.NoError(t, err)
		assert.Zero(t, got.Len())
	})
}

func TestGeoJSONRoundTrip(t *testing.T) {
	want := testNarrative(t)

	s, err := ExportString(&GeoJSON{}, want)
	require.NoError(t, err)
	assert.Contains(t, s, `"FeatureCollection"`)

	got, err := ImportString(&GeoJSON{}, s)
	require.NoError(t, err)
	assertRoundTrip(t, want, got)

	// Elevation and place name travel through geometry and properties.
	require.NotNil(t, got.Events[1].Location.Elevation)
	assert.Equal(t, 35.0, *got.Events[1].Location.Elevation)
	assert.Equal(t, "Paris", got.Events[1].Location.Name)
}

func TestGeoJSONMalformed(t *testing.T) {
	t.Run("wrong root type", func(t *testing.T) {
		_, err := ImportString(&GeoJSON{}, `{"type":"Feature"}`)
		var ed *ErrDecode
		require.ErrorAs(t, err, &ed)
	})

	t.Run("non point geometry", func(t *testing.T) {
		doc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"LineString","coordinates":[]},"properties":{"timestamp":"2024"}}]}`
		_, err := ImportString(&GeoJSON{}, doc)
		var ed *ErrDecode
		require.ErrorAs(t, err, &ed)
	})

	t.Run("too few coordinates", func(t *testing.T) {
		doc := `{"type":"FeatureCollection","features":[{"type":"Feature","geometry":{"type":"Point","coordinates":[1]},"properties":{"timestamp":"2024"}}]}`
		_, err := ImportString(&GeoJSON{}, doc)
		var ed *ErrDecode
		require.ErrorAs(t, err, &ed)
	})
}

func TestParquetRoundTrip(t *testing.T) {
	want := testNarrative(t)

	var buf bytes.Buffer
	require.NoError(t, (&Parquet{}).Export(&buf, want))

	got, err := (&Parquet{}).Import(&buf)
	require.NoError(t, err)
	assertRoundTrip(t, want, got)

	require.NotNil(t, got.Events[1].Location.Elevation)
	assert.Equal(t, 35.0, *got.Events[1].Location.Elevation)
}

func TestParquetMalformed(t *testing.T) {
	_, err := ImportString(&Parquet{}, "this is not a parquet file")
	var ed *ErrDecode
	require.ErrorAs(t, err, &ed)
	assert.Equal(t, "parquet", ed.Format)
}

func TestFormatsAgree(t *testing.T) {
	// The same narrative exported through any flat format and imported
	// back yields the same events.
	want := testNarrative(t)

	formats := map[string]Format{
		"json":    &JSON{},
		"csv":     &CSV{},
		"geojson": &GeoJSON{},
	}
	for name, f := range formats {
		t.Run(name, func(t *testing.T) {
			s, err := ExportString(f, want)
			require.NoError(t, err)
			got, err := ImportString(f, s)
			require.NoError(t, err)
			assertRoundTrip(t, want, got)
		})
	}
}

func TestTimestampPrecisionSurvives(t *testing.T) {
	// A month-precision timestamp exported with full instant plus
	// precision column must come back as month precision.
	ts, err := event.ParseTimestamp("2024-03")
	require.NoError(t, err)
	require.Equal(t, event.PrecisionMonth, ts.Precision)
	require.Equal(t, time.March, ts.Time.Month())

	n := &event.Narrative{}
	ev, err := event.NewBuilder().Coordinates(1, 2).Timestamp(ts).Text("x").Build()
	require.NoError(t, err)
	n.Add(ev)

	for name, f := range map[string]Format{"csv": &CSV{}, "geojson": &GeoJSON{}} {
		t.Run(name, func(t *testing.T) {
			s, err := ExportString(f, n)
			require.NoError(t, err)
			got, err := ImportString(f, s)
			require.NoError(t, err)
			assert.Equal(t, event.PrecisionMonth, got.Events[0].Timestamp.Precision)
		})
	}
}
