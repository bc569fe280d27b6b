package core

import "time"

// Timestamp is the canonical wall-clock type for artifacts
type Timestamp time.Time

// Now returns the current time as a Timestamp
func Now() Timestamp {
	return Timestamp(time.Now().UTC())
}

// Time converts back to the standard library type
func (t Timestamp) Time() time.Time {
	return time.Time(t)
}

// Format renders the timestamp with the given layout
func (t Timestamp) Format(layout string) string {
	return time.Time(t).Format(layout)
}

// MarshalJSON renders the timestamp in RFC 3339 form. Defined types do not
// inherit time.Time's marshaling, so it is restored here.
func (t Timestamp) MarshalJSON() ([]byte, error) {
	return time.Time(t).MarshalJSON()
}

// UnmarshalJSON parses an RFC 3339 timestamp.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	var tt time.Time
	if err := tt.UnmarshalJSON(data); err != nil {
		return err
	}
	*t = Timestamp(tt)
	return nil
}
