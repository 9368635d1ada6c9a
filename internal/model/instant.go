package model

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Instant is a request-side timestamp that accepts the formats clients
// actually send: RFC3339 strings (with or without zone or seconds) and
// epoch numbers in seconds or milliseconds. It marshals back as RFC3339.
type Instant struct {
	time.Time
}

var instantLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func (i *Instant) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	if s == "null" || s == `""` {
		i.Time = time.Time{}
		return nil
	}

	if s[0] == '"' {
		var raw string
		if err := json.Unmarshal(data, &raw); err != nil {
			return err
		}
		for _, layout := range instantLayouts {
			if t, err := time.Parse(layout, raw); err == nil {
				i.Time = t
				return nil
			}
		}
		// Epoch numbers sometimes arrive quoted.
		if n, err := strconv.ParseInt(raw, 10, 64); err == nil {
			i.Time = fromEpoch(n)
			return nil
		}
		return fmt.Errorf("invalid timestamp %q", raw)
	}

	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid timestamp %s", s)
	}
	i.Time = fromEpoch(n)
	return nil
}

func (i Instant) MarshalJSON() ([]byte, error) {
	if i.Time.IsZero() {
		return []byte("null"), nil
	}
	return json.Marshal(i.Time.Format(time.RFC3339Nano))
}

// ParseInstant parses a query-string timestamp with the same leniency as
// the JSON form.
func ParseInstant(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	for _, layout := range instantLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return fromEpoch(n), nil
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", s)
}

// fromEpoch guesses the unit: anything past the year 33658 in seconds is
// treated as milliseconds.
func fromEpoch(n int64) time.Time {
	if n > 1_000_000_000_000 {
		return time.UnixMilli(n)
	}
	return time.Unix(n, 0)
}
