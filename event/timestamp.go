package event

import (
	"fmt"
	"strconv"
	"time"
)

// Precision describes how precise a timestamp is. Real-world data often
// carries "March 2024" rather than an exact instant; Precision preserves
// that without affecting ordering.
type Precision int

const (
	PrecisionYear Precision = iota
	PrecisionMonth
	PrecisionDay
	PrecisionHour
	PrecisionMinute
	PrecisionSecond
	PrecisionMillisecond
)

func (p Precision) String() string {
	switch p {
	case PrecisionYear:
		return "year"
	case PrecisionMonth:
		return "month"
	case PrecisionDay:
		return "day"
	case PrecisionHour:
		return "hour"
	case PrecisionMinute:
		return "minute"
	case PrecisionSecond:
		return "second"
	case PrecisionMillisecond:
		return "millisecond"
	default:
		return "unknown"
	}
}

// ParsePrecision parses the string form produced by Precision.String.
func ParsePrecision(s string) (Precision, error) {
	switch s {
	case "year":
		return PrecisionYear, nil
	case "month":
		return PrecisionMonth, nil
	case "day":
		return PrecisionDay, nil
	case "hour":
		return PrecisionHour, nil
	case "minute":
		return PrecisionMinute, nil
	case "second", "":
		return PrecisionSecond, nil
	case "millisecond":
		return PrecisionMillisecond, nil
	default:
		return PrecisionSecond, fmt.Errorf("unknown precision %q", s)
	}
}

// Timestamp is a UTC instant with a declared precision.
//
// Ordering is defined purely on the instant; precision is metadata and
// never participates in comparisons.
type Timestamp struct {
	Time      time.Time
	Precision Precision
}

// NewTimestamp creates a second-precision timestamp from an instant.
// The instant is normalized to UTC.
func NewTimestamp(t time.Time) Timestamp {
	return Timestamp{Time: t.UTC(), Precision: PrecisionSecond}
}

// NewTimestampWithPrecision creates a timestamp with an explicit precision.
func NewTimestampWithPrecision(t time.Time, p Precision) Timestamp {
	return Timestamp{Time: t.UTC(), Precision: p}
}

// Now returns a timestamp for the current moment.
func Now() Timestamp {
	return NewTimestamp(time.Now())
}

// ParseTimestamp parses an ISO 8601 timestamp, inferring precision from
// the shortest matching form:
//
//	2024-03-15T14:30:00Z  second precision (RFC 3339, any offset)
//	2024-03-15            day precision
//	2024-03               month precision
//	2024                  year precision
func ParseTimestamp(s string) (Timestamp, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		p := PrecisionSecond
		if t.Nanosecond() != 0 {
			p = PrecisionMillisecond
		}
		return NewTimestampWithPrecision(t, p), nil
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return NewTimestampWithPrecision(t, PrecisionDay), nil
	}
	if t, err := time.Parse("2006-01", s); err == nil {
		return NewTimestampWithPrecision(t, PrecisionMonth), nil
	}
	if len(s) == 4 {
		if year, err := strconv.Atoi(s); err == nil {
			t := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
			return NewTimestampWithPrecision(t, PrecisionYear), nil
		}
	}
	return Timestamp{}, &ErrParseTimestamp{Input: s}
}

// FromUnixMilli creates a timestamp from unix milliseconds.
func FromUnixMilli(ms int64) Timestamp {
	return NewTimestamp(time.UnixMilli(ms))
}

// UnixMilli returns the instant as unix milliseconds, the key the
// temporal index orders by.
func (t Timestamp) UnixMilli() int64 {
	return t.Time.UnixMilli()
}

// Before reports whether t is strictly before other.
func (t Timestamp) Before(other Timestamp) bool {
	return t.Time.Before(other.Time)
}

// After reports whether t is strictly after other.
func (t Timestamp) After(other Timestamp) bool {
	return t.Time.After(other.Time)
}

// Equal reports whether the instants coincide, ignoring precision.
func (t Timestamp) Equal(other Timestamp) bool {
	return t.Time.Equal(other.Time)
}

// Compare returns -1, 0 or 1 ordering by instant.
func (t Timestamp) Compare(other Timestamp) int {
	return t.Time.Compare(other.Time)
}

// IsZero reports whether the timestamp is the zero value.
func (t Timestamp) IsZero() bool {
	return t.Time.IsZero()
}

// Format returns the RFC 3339 rendering of the instant.
func (t Timestamp) Format() string {
	return t.Time.Format(time.RFC3339)
}

func (t Timestamp) String() string {
	return t.Format()
}
