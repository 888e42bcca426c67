package event

import "fmt"

// ErrParseTimestamp indicates a timestamp string no supported ISO 8601
// form could parse.
type ErrParseTimestamp struct {
	Input string
}

func (e *ErrParseTimestamp) Error() string {
	return fmt.Sprintf("cannot parse timestamp %q", e.Input)
}

// ErrInvalidTimeRange indicates a range whose start is after its end.
type ErrInvalidTimeRange struct {
	Start Timestamp
	End   Timestamp
}

func (e *ErrInvalidTimeRange) Error() string {
	return fmt.Sprintf("invalid time range: start %s after end %s", e.Start, e.End)
}

// ErrIncompleteEvent indicates a builder missing a required field.
type ErrIncompleteEvent struct {
	Missing string
}

func (e *ErrIncompleteEvent) Error() string {
	return fmt.Sprintf("incomplete event: missing %s", e.Missing)
}
