package event

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geonarrative/geo"
)

func TestParseTimestamp(t *testing.T) {
	t.Run("full instant", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03-15T14:30:00Z")
		require.NoError(t, err)
		assert.Equal(t, PrecisionSecond, ts.Precision)
		assert.Equal(t, int64(1710513000000), ts.UnixMilli())
	})

	t.Run("date only", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03-15")
		require.NoError(t, err)
		assert.Equal(t, PrecisionDay, ts.Precision)
	})

	t.Run("month only", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03")
		require.NoError(t, err)
		assert.Equal(t, PrecisionMonth, ts.Precision)
	})

	t.Run("year only", func(t *testing.T) {
		ts, err := ParseTimestamp("2024")
		require.NoError(t, err)
		assert.Equal(t, PrecisionYear, ts.Precision)
		assert.Equal(t, 2024, ts.Time.Year())
	})

	t.Run("garbage", func(t *testing.T) {
		_, err := ParseTimestamp("not a date")
		var ep *ErrParseTimestamp
		require.ErrorAs(t, err, &ep)
		assert.Equal(t, "not a date", ep.Input)
	})
}

func TestTimestampJSON(t *testing.T) {
	t.Run("object round trip", func(t *testing.T) {
		ts, err := ParseTimestamp("2024-03")
		require.NoError(t, err)

		data, err := json.Marshal(ts)
		require.NoError(t, err)

		var got Timestamp
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, ts.Equal(got))
		assert.Equal(t, PrecisionMonth, got.Precision)
	})

	t.Run("bare string accepted", func(t *testing.T) {
		var got Timestamp
		require.NoError(t, json.Unmarshal([]byte(`"2024-03-15T14:30:00Z"`), &got))
		assert.Equal(t, PrecisionSecond, got.Precision)
	})
}

func TestTimeRange(t *testing.T) {
	jan := NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC))
	jun := NewTimestamp(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC))
	dec := NewTimestamp(time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC))

	t.Run("inverted rejected", func(t *testing.T) {
		_, err := NewTimeRange(dec, jan)
		var er *ErrInvalidTimeRange
		require.ErrorAs(t, err, &er)
	})

	t.Run("contains is inclusive", func(t *testing.T) {
		r, err := NewTimeRange(jan, dec)
		require.NoError(t, err)

		assert.True(t, r.Contains(jan))
		assert.True(t, r.Contains(dec))
		assert.True(t, r.Contains(jun))
		assert.False(t, r.Contains(NewTimestamp(dec.Time.Add(time.Millisecond))))
	})

	t.Run("degenerate instant range", func(t *testing.T) {
		r, err := NewTimeRange(jun, jun)
		require.NoError(t, err)
		assert.True(t, r.Contains(jun))
		assert.False(t, r.Contains(jan))
	})

	t.Run("year helper", func(t *testing.T) {
		r := YearRange(2024)
		assert.True(t, r.Contains(jan))
		assert.True(t, r.Contains(dec))
		assert.False(t, r.Contains(NewTimestamp(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))))
	})

	t.Run("overlap and intersection", func(t *testing.T) {
		a, _ := NewTimeRange(jan, jun)
		b, _ := NewTimeRange(jun, dec)
		assert.True(t, a.Overlaps(b))

		got, ok := a.Intersection(b)
		require.True(t, ok)
		assert.True(t, got.Start.Equal(jun))
		assert.True(t, got.End.Equal(jun))
	})
}

func TestEventBuilder(t *testing.T) {
	t.Run("complete event", func(t *testing.T) {
		ev, err := NewBuilder().
			Coordinates(52.52, 13.405).
			ParseTimestamp("2024-03-15").
			Text("demonstration at the gate").
			Tag("protest").
			Tag("politics").
			Metadata("confidence", "high").
			Source(ArticleSource("https://example.org/a")).
			Build()
		require.NoError(t, err)

		assert.False(t, ev.ID.IsZero())
		assert.True(t, ev.HasTag("protest"))
		assert.False(t, ev.HasTag("sports"))
		v, ok := ev.GetMetadata("confidence")
		require.True(t, ok)
		assert.Equal(t, "high", v)
	})

	t.Run("missing timestamp", func(t *testing.T) {
		_, err := NewBuilder().Coordinates(1, 2).Text("x").Build()
		var ei *ErrIncompleteEvent
		require.ErrorAs(t, err, &ei)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		_, err := NewBuilder().
			Coordinates(99, 0).
			ParseTimestamp("2024-03-15").
			Build()
		require.Error(t, err)
	})
}

func TestEventTags(t *testing.T) {
	ev := New(geo.NewLocation(1, 2), NewTimestamp(time.Now()), "x")

	ev.AddTag("a")
	ev.AddTag("a")
	assert.Equal(t, []string{"a"}, ev.Tags)

	ev.AddTag("b")
	ev.RemoveTag("a")
	assert.Equal(t, []string{"b"}, ev.Tags)
}

func TestNarrative(t *testing.T) {
	n := NewNarrative("test")
	e1 := New(geo.NewLocation(10, 20), NewTimestamp(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)), "first")
	e2 := New(geo.NewLocation(-5, 40), NewTimestamp(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)), "second")
	n.Add(e1)
	n.Add(e2)

	t.Run("find by id", func(t *testing.T) {
		got, ok := n.FindByID(e2.ID)
		require.True(t, ok)
		assert.Equal(t, "second", got.Text)

		_, ok = n.FindByID(NewID())
		assert.False(t, ok)
	})

	t.Run("bounds", func(t *testing.T) {
		b, ok := n.Bounds()
		require.True(t, ok)
		assert.Equal(t, geo.Bounds{MinLat: -5, MinLon: 20, MaxLat: 10, MaxLon: 40}, b)
	})

	t.Run("time range", func(t *testing.T) {
		r, ok := n.TimeRange()
		require.True(t, ok)
		assert.True(t, r.Start.Equal(e2.Timestamp))
		assert.True(t, r.End.Equal(e1.Timestamp))
	})
}
