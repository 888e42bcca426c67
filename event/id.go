package event

import (
	"fmt"

	"github.com/google/uuid"
)

// ID is the opaque, stable identifier of an event.
//
// IDs are comparable and usable as map keys. The zero value is not a
// valid ID; use NewID.
type ID struct {
	uuid uuid.UUID
}

// NewID returns a new random ID.
func NewID() ID {
	return ID{uuid: uuid.New()}
}

// ParseID parses an ID from its string form.
func ParseID(s string) (ID, error) {
	u, err := uuid.Parse(s)
	if err != nil {
		return ID{}, fmt.Errorf("invalid event id %q: %w", s, err)
	}
	return ID{uuid: u}, nil
}

// IsZero reports whether the ID is the zero value.
func (id ID) IsZero() bool {
	return id.uuid == uuid.Nil
}

func (id ID) String() string {
	return id.uuid.String()
}

// MarshalText implements encoding.TextMarshaler.
func (id ID) MarshalText() ([]byte, error) {
	return []byte(id.uuid.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *ID) UnmarshalText(text []byte) error {
	u, err := uuid.ParseBytes(text)
	if err != nil {
		return fmt.Errorf("invalid event id %q: %w", text, err)
	}
	id.uuid = u
	return nil
}
