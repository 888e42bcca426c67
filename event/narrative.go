package event

import "github.com/hupe1980/geonarrative/geo"

// Narrative is a plain, ordered collection of events with descriptive
// metadata. It is the unit the format converters read and write; the
// index and graph layers consume its events directly.
type Narrative struct {
	Title       string            `json:"title,omitempty"`
	Description string            `json:"description,omitempty"`
	Events      []Event           `json:"events"`
	Metadata    map[string]string `json:"metadata,omitempty"`
}

// NewNarrative creates an empty narrative with a title.
func NewNarrative(title string) *Narrative {
	return &Narrative{Title: title}
}

// Add appends an event.
func (n *Narrative) Add(ev Event) {
	n.Events = append(n.Events, ev)
}

// Len returns the number of events.
func (n *Narrative) Len() int {
	return len(n.Events)
}

// FindByID returns the event with the given id, if present.
func (n *Narrative) FindByID(id ID) (Event, bool) {
	for _, ev := range n.Events {
		if ev.ID == id {
			return ev, true
		}
	}
	return Event{}, false
}

// Bounds returns the smallest bounds containing every event location.
// ok is false for an empty narrative.
func (n *Narrative) Bounds() (geo.Bounds, bool) {
	locs := make([]geo.Location, len(n.Events))
	for i, ev := range n.Events {
		locs[i] = ev.Location
	}
	return geo.BoundsFromLocations(locs)
}

// TimeRange returns the span from the earliest to the latest event.
// ok is false for an empty narrative.
func (n *Narrative) TimeRange() (TimeRange, bool) {
	if len(n.Events) == 0 {
		return TimeRange{}, false
	}
	start, end := n.Events[0].Timestamp, n.Events[0].Timestamp
	for _, ev := range n.Events[1:] {
		if ev.Timestamp.Before(start) {
			start = ev.Timestamp
		}
		if ev.Timestamp.After(end) {
			end = ev.Timestamp
		}
	}
	return TimeRange{Start: start, End: end}, true
}
