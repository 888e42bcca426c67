package format

import (
	"encoding/json"
	"io"

	"github.com/hupe1980/geonarrative/event"
)

// JSON reads and writes the native narrative document: title,
// description, metadata, and the full event records including sources.
// It is the only format that loses nothing on a round trip.
type JSON struct {
	// Indent pretty-prints the output with the given prefix when
	// non-empty.
	Indent string
}

// Import implements Format.
func (f *JSON) Import(r io.Reader) (*event.Narrative, error) {
	var n event.Narrative
	dec := json.NewDecoder(r)
	if err := dec.Decode(&n); err != nil {
		return nil, &ErrDecode{Format: "json", Err: err}
	}
	return &n, nil
}

// Export implements Format.
func (f *JSON) Export(w io.Writer, n *event.Narrative) error {
	enc := json.NewEncoder(w)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(n)
}
