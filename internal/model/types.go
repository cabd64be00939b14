package model

// Package model contains domain models/data structures.
// Keep it minimal; no business logic here.

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// Wire layouts used by the public API. Dates and times travel as Brazilian
// civil literals, not RFC 3339.
const (
	DateLayout      = "02/01/2006"
	TimeLayout      = "15:04"
	TimestampLayout = "02/01/2006 15:04:05"
)

// Date is a calendar date (no time-of-day) that marshals as dd/mm/yyyy.
type Date struct {
	time.Time
}

// ParseDate parses a dd/mm/yyyy literal.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: expected %s", s, "dd/mm/aaaa")
	}
	return Date{t}, nil
}

func (d Date) String() string { return d.Format(DateLayout) }

func (d Date) MarshalJSON() ([]byte, error) {
	return json.Marshal(d.Format(DateLayout))
}

func (d *Date) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value implements driver.Valuer so repositories can bind Date directly.
func (d Date) Value() (driver.Value, error) { return d.Time, nil }

// Scan implements sql.Scanner.
func (d *Date) Scan(src any) error {
	t, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Date", src)
	}
	d.Time = t
	return nil
}

// TimeOfDay is a wall-clock time that marshals as HH:MM (24h).
// The date part is the zero date; only hour and minute are meaningful.
type TimeOfDay struct {
	time.Time
}

// ParseTimeOfDay parses an HH:MM literal.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	t, err := time.Parse(TimeLayout, s)
	if err != nil {
		return TimeOfDay{}, fmt.Errorf("invalid time %q: expected %s", s, "HH:MM")
	}
	return TimeOfDay{t}, nil
}

func (t TimeOfDay) String() string { return t.Format(TimeLayout) }

// Minutes returns the time as minutes since midnight, which is what the
// scheduler compares.
func (t TimeOfDay) Minutes() int { return t.Hour()*60 + t.Minute() }

func (t TimeOfDay) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimeLayout))
}

func (t *TimeOfDay) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == "" {
		*t = TimeOfDay{}
		return nil
	}
	parsed, err := ParseTimeOfDay(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

func (t TimeOfDay) Value() (driver.Value, error) { return t.Format("15:04:05"), nil }

func (t *TimeOfDay) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		t.Time = time.Date(0, 1, 1, v.Hour(), v.Minute(), 0, 0, time.UTC)
		return nil
	case string:
		parsed, err := time.Parse("15:04:05", v)
		if err != nil {
			return fmt.Errorf("cannot scan %q into TimeOfDay: %w", v, err)
		}
		t.Time = parsed
		return nil
	case []byte:
		return t.Scan(string(v))
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}
}

// Timestamp marshals as dd/mm/yyyy HH:MM:SS, matching the registration
// timestamp format of the public API.
type Timestamp struct {
	time.Time
}

func (t Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(t.Format(TimestampLayout))
}

func (t *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := time.Parse(TimestampLayout, s)
	if err != nil {
		return fmt.Errorf("invalid timestamp %q", s)
	}
	t.Time = parsed
	return nil
}

func (t Timestamp) Value() (driver.Value, error) { return t.Time, nil }

func (t *Timestamp) Scan(src any) error {
	v, ok := src.(time.Time)
	if !ok {
		return fmt.Errorf("cannot scan %T into Timestamp", src)
	}
	t.Time = v
	return nil
}
