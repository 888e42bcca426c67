package event

import "time"

// TimeRange is a span of time, inclusive on both ends.
type TimeRange struct {
	Start Timestamp
	End   Timestamp
}

// NewTimeRange creates a time range. It fails if start is after end;
// inverted ranges are rejected, never reordered.
func NewTimeRange(start, end Timestamp) (TimeRange, error) {
	if start.After(end) {
		return TimeRange{}, &ErrInvalidTimeRange{Start: start, End: end}
	}
	return TimeRange{Start: start, End: end}, nil
}

// YearRange covers an entire calendar year.
func YearRange(year int) TimeRange {
	return TimeRange{
		Start: NewTimestampWithPrecision(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC), PrecisionYear),
		End:   NewTimestamp(time.Date(year, time.December, 31, 23, 59, 59, 0, time.UTC)),
	}
}

// MonthRange covers an entire calendar month.
func MonthRange(year int, month time.Month) TimeRange {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	end := start.AddDate(0, 1, 0).Add(-time.Second)
	return TimeRange{
		Start: NewTimestampWithPrecision(start, PrecisionMonth),
		End:   NewTimestamp(end),
	}
}

// DayRange covers a single calendar day.
func DayRange(year int, month time.Month, day int) TimeRange {
	start := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return TimeRange{
		Start: NewTimestampWithPrecision(start, PrecisionDay),
		End:   NewTimestamp(start.Add(24*time.Hour - time.Second)),
	}
}

// LastRange covers the given duration ending now.
func LastRange(d time.Duration) TimeRange {
	end := Now()
	return TimeRange{Start: NewTimestamp(end.Time.Add(-d)), End: end}
}

// Validate checks the start <= end invariant.
func (r TimeRange) Validate() error {
	if r.Start.After(r.End) {
		return &ErrInvalidTimeRange{Start: r.Start, End: r.End}
	}
	return nil
}

// Contains reports whether the timestamp falls within the range,
// endpoints included.
func (r TimeRange) Contains(t Timestamp) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Overlaps reports whether two ranges share any instant.
func (r TimeRange) Overlaps(other TimeRange) bool {
	return !r.Start.After(other.End) && !r.End.Before(other.Start)
}

// Intersection returns the overlapping span of two ranges.
// ok is false when they do not overlap.
func (r TimeRange) Intersection(other TimeRange) (TimeRange, bool) {
	if !r.Overlaps(other) {
		return TimeRange{}, false
	}
	start := r.Start
	if other.Start.After(start) {
		start = other.Start
	}
	end := r.End
	if other.End.Before(end) {
		end = other.End
	}
	return TimeRange{Start: start, End: end}, true
}

// Duration returns the length of the range.
func (r TimeRange) Duration() time.Duration {
	return r.End.Time.Sub(r.Start.Time)
}
