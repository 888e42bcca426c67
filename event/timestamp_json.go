package event

import (
	"encoding/json"
	"time"
)

type timestampJSON struct {
	Datetime  string `json:"datetime"`
	Precision string `json:"precision,omitempty"`
}

// MarshalJSON renders the timestamp as {"datetime": ..., "precision": ...}.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(timestampJSON{
		Datetime:  t.Time.Format(time.RFC3339Nano),
		Precision: t.Precision.String(),
	})
}

// UnmarshalJSON accepts both the object form produced by MarshalJSON and a
// bare ISO 8601 string.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		parsed, err := ParseTimestamp(s)
		if err != nil {
			return err
		}
		*t = parsed
		return nil
	}

	var obj timestampJSON
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	parsed, err := ParseTimestamp(obj.Datetime)
	if err != nil {
		return err
	}
	if obj.Precision != "" {
		p, err := ParsePrecision(obj.Precision)
		if err != nil {
			return err
		}
		parsed.Precision = p
	}
	*t = parsed
	return nil
}
