package event

import (
	"slices"

	"github.com/hupe1980/geonarrative/geo"
)

// Located is the capability contract for anything with a geographic
// position. The spatial index accepts any payload satisfying it.
type Located interface {
	EventLocation() geo.Location
}

// Timestamped is the capability contract for anything anchored to a point
// in time. The temporal index accepts any payload satisfying it.
type Timestamped interface {
	EventTimestamp() Timestamp
}

// SourceType classifies where an event record came from.
type SourceType string

const (
	SourceArticle   SourceType = "article"
	SourceBook      SourceType = "book"
	SourceInterview SourceType = "interview"
	SourceArchive   SourceType = "archive"
	SourceOther     SourceType = "other"
)

// SourceRef points at the material an event was derived from.
type SourceRef struct {
	Type SourceType `json:"type"`
	Name string     `json:"name,omitempty"`
	URL  string     `json:"url,omitempty"`
}

// ArticleSource returns a SourceRef for an online article.
func ArticleSource(url string) SourceRef {
	return SourceRef{Type: SourceArticle, URL: url}
}

// Event is an occurrence anchored to a geographic point and an instant.
type Event struct {
	ID        ID                `json:"id"`
	Location  geo.Location      `json:"location"`
	Timestamp Timestamp         `json:"timestamp"`
	Text      string            `json:"text"`
	Tags      []string          `json:"tags,omitempty"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	Sources   []SourceRef       `json:"sources,omitempty"`
}

// New creates an event with a fresh ID and the required fields.
func New(loc geo.Location, ts Timestamp, text string) Event {
	return Event{ID: NewID(), Location: loc, Timestamp: ts, Text: text}
}

// EventLocation implements Located.
func (e Event) EventLocation() geo.Location { return e.Location }

// EventTimestamp implements Timestamped.
func (e Event) EventTimestamp() Timestamp { return e.Timestamp }

// HasTag reports whether the event carries the tag.
func (e Event) HasTag(tag string) bool {
	return slices.Contains(e.Tags, tag)
}

// AddTag adds a tag unless already present.
func (e *Event) AddTag(tag string) {
	if !e.HasTag(tag) {
		e.Tags = append(e.Tags, tag)
	}
}

// RemoveTag removes a tag if present.
func (e *Event) RemoveTag(tag string) {
	e.Tags = slices.DeleteFunc(e.Tags, func(t string) bool { return t == tag })
}

// GetMetadata returns a metadata value and whether it was set.
func (e Event) GetMetadata(key string) (string, bool) {
	v, ok := e.Metadata[key]
	return v, ok
}

// SetMetadata sets a metadata key/value pair.
func (e *Event) SetMetadata(key, value string) {
	if e.Metadata == nil {
		e.Metadata = make(map[string]string)
	}
	e.Metadata[key] = value
}

// Builder assembles an event step by step, validating on Build.
type Builder struct {
	ev  Event
	err error
}

// NewBuilder returns an empty event builder.
func NewBuilder() *Builder {
	return &Builder{ev: Event{ID: NewID()}}
}

// ID overrides the generated id.
func (b *Builder) ID(id ID) *Builder {
	b.ev.ID = id
	return b
}

// Location sets the event location.
func (b *Builder) Location(loc geo.Location) *Builder {
	b.ev.Location = loc
	return b
}

// Coordinates sets the event location from latitude and longitude.
func (b *Builder) Coordinates(lat, lon float64) *Builder {
	b.ev.Location = geo.NewLocation(lat, lon)
	return b
}

// Timestamp sets the event timestamp.
func (b *Builder) Timestamp(ts Timestamp) *Builder {
	b.ev.Timestamp = ts
	return b
}

// ParseTimestamp sets the timestamp from an ISO 8601 string.
func (b *Builder) ParseTimestamp(s string) *Builder {
	ts, err := ParseTimestamp(s)
	if err != nil && b.err == nil {
		b.err = err
	}
	b.ev.Timestamp = ts
	return b
}

// Text sets the event description.
func (b *Builder) Text(text string) *Builder {
	b.ev.Text = text
	return b
}

// Tag appends a tag.
func (b *Builder) Tag(tag string) *Builder {
	b.ev.AddTag(tag)
	return b
}

// Metadata sets a metadata key/value pair.
func (b *Builder) Metadata(key, value string) *Builder {
	b.ev.SetMetadata(key, value)
	return b
}

// Source appends a source reference.
func (b *Builder) Source(src SourceRef) *Builder {
	b.ev.Sources = append(b.ev.Sources, src)
	return b
}

// Build validates and returns the event. An event needs a valid location
// and a non-zero timestamp.
func (b *Builder) Build() (Event, error) {
	if b.err != nil {
		return Event{}, b.err
	}
	if err := b.ev.Location.Validate(); err != nil {
		return Event{}, err
	}
	if b.ev.Timestamp.IsZero() {
		return Event{}, &ErrIncompleteEvent{Missing: "timestamp"}
	}
	return b.ev, nil
}
