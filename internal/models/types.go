package models

import (
	"database/sql/driver"
	"fmt"
	"time"
)

const (
	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// DateOnly is a DATE column rendered as YYYY-MM-DD in JSON. The zero value
// maps to SQL NULL and JSON null so optional date columns can use it
// directly.
type DateOnly struct {
	time.Time
}

// NewDate builds a DateOnly at midnight UTC.
func NewDate(year int, month time.Month, day int) DateOnly {
	return DateOnly{Time: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func (d *DateOnly) Scan(value interface{}) error {
	if value == nil {
		d.Time = time.Time{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		d.Time = v
		return nil
	case []byte:
		return d.parse(string(v))
	case string:
		return d.parse(v)
	default:
		return fmt.Errorf("unsupported date source %T", value)
	}
}

func (d DateOnly) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.Time, nil
}

func (d DateOnly) MarshalJSON() ([]byte, error) {
	if d.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Format(dateLayout) + `"`), nil
}

func (d *DateOnly) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` {
		d.Time = time.Time{}
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid date %s", raw)
	}
	return d.parse(raw[1 : len(raw)-1])
}

func (d *DateOnly) parse(raw string) error {
	parsed, err := time.Parse(dateLayout, raw)
	if err != nil {
		// Timestamps sneak in from drivers that widen DATE columns.
		parsed, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			return fmt.Errorf("parse date %q: %w", raw, err)
		}
	}
	d.Time = parsed
	return nil
}

// TimeOnly is a TIME column rendered as HH:MM in JSON, with the same
// zero-equals-null convention as DateOnly.
type TimeOnly struct {
	time.Time
}

func (t *TimeOnly) Scan(value interface{}) error {
	if value == nil {
		t.Time = time.Time{}
		return nil
	}
	switch v := value.(type) {
	case time.Time:
		t.Time = v
		return nil
	case []byte:
		return t.parse(string(v))
	case string:
		return t.parse(v)
	default:
		return fmt.Errorf("unsupported time source %T", value)
	}
}

func (t TimeOnly) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return t.Format("15:04:05"), nil
}

func (t TimeOnly) MarshalJSON() ([]byte, error) {
	if t.IsZero() {
		return []byte("null"), nil
	}
	return []byte(`"` + t.Format(timeLayout) + `"`), nil
}

func (t *TimeOnly) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" || raw == `""` {
		t.Time = time.Time{}
		return nil
	}
	if len(raw) < 2 || raw[0] != '"' || raw[len(raw)-1] != '"' {
		return fmt.Errorf("invalid time %s", raw)
	}
	return t.parse(raw[1 : len(raw)-1])
}

func (t *TimeOnly) parse(raw string) error {
	for _, layout := range []string{timeLayout, "15:04:05"} {
		if parsed, err := time.Parse(layout, raw); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return fmt.Errorf("parse time %q", raw)
}

// ListFilter narrows content listings. All bypasses the active-only default
// and is reserved for the admin console; Limit caps public reads when
// positive.
type ListFilter struct {
	All   bool
	Limit int
}
