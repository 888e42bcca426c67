package format

import "fmt"

// ErrDecode indicates input a converter could not parse. Format names
// the converter; Err carries the underlying parse failure.
type ErrDecode struct {
	Format string
	Err    error
}

func (e *ErrDecode) Error() string {
	return fmt.Sprintf("decode %s: %s", e.Format, e.Err)
}

func (e *ErrDecode) Unwrap() error {
	return e.Err
}

// ErrMissingColumn indicates a CSV header without a required column.
type ErrMissingColumn struct {
	Column string
}

func (e *ErrMissingColumn) Error() string {
	return fmt.Sprintf("missing column %q", e.Column)
}
