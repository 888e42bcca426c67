package graph

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
)

func eventAt(lat, lon float64, day int, text string, tags ...string) event.Event {
	ev := event.New(
		geo.NewLocation(lat, lon),
		event.NewTimestamp(time.Date(2024, 6, day, 0, 0, 0, 0, time.UTC)),
		text,
	)
	ev.Tags = tags
	return ev
}

// Three events: the first two about 5 km apart in Berlin, the third in
// Paris. Chronological order matches insertion order.
func threeEvents() []event.Event {
	return []event.Event{
		eventAt(52.52, 13.405, 1, "first", "protest"),
		eventAt(52.56, 13.44, 5, "second", "protest", "police"),
		eventAt(48.8566, 2.3522, 10, "third", "politics"),
	}
}

func TestAddAndLookup(t *testing.T) {
	events := threeEvents()
	g := FromEvents(events)
	require.Equal(t, 3, g.NumNodes())
	require.Zero(t, g.NumEdges())

	t.Run("node by handle", func(t *testing.T) {
		ev, ok := g.Node(1)
		require.True(t, ok)
		assert.Equal(t, "second", ev.Text)

		_, ok = g.Node(99)
		assert.False(t, ok)
	})

	t.Run("node by event id", func(t *testing.T) {
		id, ok := g.NodeByEventID(events[2].ID)
		require.True(t, ok)
		assert.Equal(t, NodeID(2), id)

		_, ok = g.NodeByEventID(event.NewID())
		assert.False(t, ok)
	})
}

func TestConnect(t *testing.T) {
	g := FromEvents(threeEvents())

	t.Run("unknown endpoint", func(t *testing.T) {
		err := g.Connect(0, 99, Causal)
		var eu *ErrUnknownNode
		require.ErrorAs(t, err, &eu)
		assert.Equal(t, NodeID(99), eu.ID)

		err = g.Connect(99, 0, Causal)
		require.ErrorAs(t, err, &eu)
	})

	t.Run("negative weight rejected at creation", func(t *testing.T) {
		err := g.ConnectWeighted(0, 1, EdgeWeight{Type: Causal, Weight: -2})
		var en *ErrNegativeWeight
		require.ErrorAs(t, err, &en)
		assert.Equal(t, -2.0, en.Weight)
		assert.Zero(t, g.NumEdges())
	})

	t.Run("directed", func(t *testing.T) {
		require.NoError(t, g.Connect(0, 1, Causal))

		succ, err := g.Successors(0)
		require.NoError(t, err)
		assert.Equal(t, []NodeID{1}, succ)

		succ, err = g.Successors(1)
		require.NoError(t, err)
		assert.Empty(t, succ)

		pred, err := g.Predecessors(1)
		require.NoError(t, err)
		assert.Equal(t, []NodeID{0}, pred)
	})
}

func TestConnectTemporal(t *testing.T) {
	t.Run("chain in chronological order", func(t *testing.T) {
		g := FromEvents(threeEvents())
		g.ConnectTemporal()

		edges := g.EdgesOfType(Temporal)
		require.Len(t, edges, 2)
		assert.Equal(t, NodeID(0), edges[0].From)
		assert.Equal(t, NodeID(1), edges[0].To)
		assert.Equal(t, NodeID(1), edges[1].From)
		assert.Equal(t, NodeID(2), edges[1].To)
		assert.Equal(t, 1.0, edges[0].Weight.Weight)
	})

	t.Run("unsorted input", func(t *testing.T) {
		events := threeEvents()
		g := FromEvents([]event.Event{events[2], events[0], events[1]})
		g.ConnectTemporal()

		edges := g.EdgesOfType(Temporal)
		require.Len(t, edges, 2)
		// Node 1 holds the earliest event, node 0 the latest.
		assert.Equal(t, NodeID(1), edges[0].From)
		assert.Equal(t, NodeID(2), edges[0].To)
		assert.Equal(t, NodeID(2), edges[1].From)
		assert.Equal(t, NodeID(0), edges[1].To)
	})

	t.Run("ties keep insertion order", func(t *testing.T) {
		same := []event.Event{
			eventAt(1, 1, 3, "x"),
			eventAt(2, 2, 3, "y"),
		}
		g := FromEvents(same)
		g.ConnectTemporal()

		edges := g.EdgesOfType(Temporal)
		require.Len(t, edges, 1)
		assert.Equal(t, NodeID(0), edges[0].From)
		assert.Equal(t, NodeID(1), edges[0].To)
	})

	t.Run("fewer than two nodes", func(t *testing.T) {
		g := FromEvents(threeEvents()[:1])
		g.ConnectTemporal()
		assert.Zero(t, g.NumEdges())
	})
}

func TestConnectSpatial(t *testing.T) {
	t.Run("negative threshold", func(t *testing.T) {
		g := FromEvents(threeEvents())
		err := g.ConnectSpatial(-1)
		var ed *ErrNegativeDistance
		require.ErrorAs(t, err, &ed)
	})

	t.Run("links only pairs within threshold", func(t *testing.T) {
		g := FromEvents(threeEvents())
		require.NoError(t, g.ConnectSpatial(10))

		// Only the Berlin pair is within 10 km, linked both ways.
		edges := g.EdgesOfType(Spatial)
		require.Len(t, edges, 2)
		assert.Equal(t, NodeID(0), edges[0].From)
		assert.Equal(t, NodeID(1), edges[0].To)
		assert.Equal(t, NodeID(1), edges[1].From)
		assert.Equal(t, NodeID(0), edges[1].To)

		want := geo.Haversine(geo.NewLocation(52.52, 13.405), geo.NewLocation(52.56, 13.44))
		assert.InDelta(t, want, edges[0].Weight.Weight, 1e-9)
		assert.Less(t, want, 10.0)
	})

	t.Run("zero threshold links co-located only", func(t *testing.T) {
		g := FromEvents([]event.Event{
			eventAt(1, 1, 1, "a"),
			eventAt(1, 1, 2, "b"),
			eventAt(2, 2, 3, "c"),
		})
		require.NoError(t, g.ConnectSpatial(0))
		assert.Len(t, g.EdgesOfType(Spatial), 2)
	})
}

func TestConnectThematic(t *testing.T) {
	t.Run("shared tags link bidirectionally", func(t *testing.T) {
		g := FromEvents(threeEvents())
		g.ConnectThematic()

		// Only events 0 and 1 share a tag ("protest").
		edges := g.EdgesOfType(Thematic)
		require.Len(t, edges, 2)
		assert.Equal(t, NodeID(0), edges[0].From)
		assert.Equal(t, NodeID(1), edges[0].To)
		assert.Equal(t, 1.0, edges[0].Weight.Weight)
	})

	t.Run("more shared tags means cheaper edge", func(t *testing.T) {
		g := FromEvents([]event.Event{
			eventAt(1, 1, 1, "a", "x", "y"),
			eventAt(2, 2, 2, "b", "x", "y"),
			eventAt(3, 3, 3, "c", "x"),
		})
		g.ConnectThematic()

		edges := g.EdgesOfType(Thematic)
		require.Len(t, edges, 6)

		weightOf := func(from, to NodeID) float64 {
			for _, e := range edges {
				if e.From == from && e.To == to {
					return e.Weight.Weight
				}
			}
			t.Fatalf("no edge %d->%d", from, to)
			return 0
		}
		assert.Equal(t, 0.5, weightOf(0, 1))
		assert.Equal(t, 1.0, weightOf(0, 2))
		assert.Equal(t, 1.0, weightOf(1, 2))
	})

	t.Run("no tags no edges", func(t *testing.T) {
		g := FromEvents([]event.Event{
			eventAt(1, 1, 1, "a"),
			eventAt(2, 2, 2, "b"),
		})
		g.ConnectThematic()
		assert.Zero(t, g.NumEdges())
	})
}

func TestDegreesRootsLeaves(t *testing.T) {
	g := FromEvents(threeEvents())
	g.ConnectTemporal()

	assert.Equal(t, 1, g.OutDegree(0))
	assert.Zero(t, g.InDegree(0))
	assert.Equal(t, 1, g.InDegree(1))
	assert.Equal(t, []NodeID{0}, g.Roots())
	assert.Equal(t, []NodeID{2}, g.Leaves())
}

func TestEnumeration(t *testing.T) {
	g := FromEvents(threeEvents())
	require.NoError(t, g.Connect(2, 0, Reference))
	require.NoError(t, g.Connect(0, 1, Causal))

	t.Run("nodes in insertion order", func(t *testing.T) {
		var ids []NodeID
		var texts []string
		for id, ev := range g.Nodes() {
			ids = append(ids, id)
			texts = append(texts, ev.Text)
		}
		assert.Equal(t, []NodeID{0, 1, 2}, ids)
		assert.Equal(t, []string{"first", "second", "third"}, texts)
	})

	t.Run("edges in insertion order", func(t *testing.T) {
		var froms []NodeID
		for e := range g.Edges() {
			froms = append(froms, e.From)
		}
		assert.Equal(t, []NodeID{2, 0}, froms)
	})

	t.Run("early break", func(t *testing.T) {
		count := 0
		for range g.Nodes() {
			count++
			break
		}
		assert.Equal(t, 1, count)
	})
}

func TestNodesWithTag(t *testing.T) {
	g := FromEvents(threeEvents())

	assert.Equal(t, []NodeID{0, 1}, g.NodesWithTag("protest"))
	assert.Equal(t, []NodeID{1}, g.NodesWithTag("police"))
	assert.Empty(t, g.NodesWithTag("missing"))

	id := g.AddEvent(eventAt(0, 0, 20, "later", "protest"))
	assert.Equal(t, []NodeID{0, 1, id}, g.NodesWithTag("protest"))
}
