package spatial

import "fmt"

// ErrNegativeRadius indicates a radius query with a negative radius.
type ErrNegativeRadius struct {
	Radius float64
}

func (e *ErrNegativeRadius) Error() string {
	return fmt.Sprintf("negative radius: %g", e.Radius)
}
