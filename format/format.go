// Package format converts event narratives to and from interchange
// formats: a JSON document, CSV rows, GeoJSON FeatureCollections, and
// Parquet files.
//
// All converters implement the Format interface and round-trip the
// fields shared across formats: id, coordinates, timestamp with
// precision, text, and tags. Format-specific extras (narrative metadata
// in JSON, elevation in GeoJSON geometry) survive where the format can
// express them.
package format

import (
	"io"
	"strings"
	"time"

	"github.com/hupe1980/geonarrative/event"
)

// timestampLayout is the wire rendering shared by the flat formats.
// RFC 3339 with nanoseconds survives an export/import cycle losslessly;
// the precision column restores the original Precision.
const timestampLayout = time.RFC3339Nano

// Format reads and writes a narrative in one interchange format.
type Format interface {
	// Import decodes a narrative. Malformed input yields an *ErrDecode.
	Import(r io.Reader) (*event.Narrative, error)

	// Export encodes a narrative.
	Export(w io.Writer, n *event.Narrative) error
}

// ImportString decodes a narrative from a string.
func ImportString(f Format, s string) (*event.Narrative, error) {
	return f.Import(strings.NewReader(s))
}

// ExportString encodes a narrative to a string.
func ExportString(f Format, n *event.Narrative) (string, error) {
	var sb strings.Builder
	if err := f.Export(&sb, n); err != nil {
		return "", err
	}
	return sb.String(), nil
}
