package geonarrative

import (
	"errors"
	"fmt"

	"github.com/hupe1980/geonarrative/event"
	"github.com/hupe1980/geonarrative/geo"
	"github.com/hupe1980/geonarrative/index/spatial"
)

var (
	// ErrInvalidInput is the umbrella error for rejected geometry or time
	// arguments: inverted bounds, inverted time ranges, negative radii.
	// Inspect the wrapped error for the offending values.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroTimestamp is returned when an item is inserted with the zero
	// timestamp. The index refuses it up front so an item can never end
	// up spatially indexed but temporally unreachable.
	ErrZeroTimestamp = errors.New("zero timestamp")
)

// translateError normalizes subpackage validation errors to the public
// taxonomy. Unknown errors pass through unchanged.
func translateError(err error) error {
	if err == nil {
		return nil
	}

	var eb *geo.ErrInvalidBounds
	if errors.As(err, &eb) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var elat *geo.ErrInvalidLatitude
	if errors.As(err, &elat) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var elon *geo.ErrInvalidLongitude
	if errors.As(err, &elon) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var eg *geo.ErrInvalidGrid
	if errors.As(err, &eg) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var er *event.ErrInvalidTimeRange
	if errors.As(err, &er) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	var enr *spatial.ErrNegativeRadius
	if errors.As(err, &enr) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return err
}
