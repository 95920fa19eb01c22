package cobot

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/araddon/dateparse"
)

// Time handles the mix of timestamp formats the provider emits: RFC 3339
// on bookings, "2012/04/03 12:00:00 +0000" on memberships and plain dates
// on invoices. Null and empty strings decode to the zero time.
type Time struct {
	time.Time
}

func (t *Time) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	if raw == "" {
		t.Time = time.Time{}
		return nil
	}

	parsed, err := dateparse.ParseAny(raw)
	if err != nil {
		return fmt.Errorf("failed to parse time %q: %w", raw, err)
	}
	t.Time = parsed

	return nil
}

func (t Time) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(t.Format(time.RFC3339))
}
