// Package clock supplies the current time in the office's civil timezone.
// Registration timestamps and "today" queries must agree on one zone even
// when the process runs in UTC.
package clock

import (
	"fmt"
	"time"
)

// Clock provides the current local time.
type Clock interface {
	Now() time.Time
	Location() *time.Location
}

type zoneClock struct {
	loc *time.Location
}

// New loads the given IANA zone name and returns a Clock pinned to it.
func New(zone string) (Clock, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", zone, err)
	}
	return &zoneClock{loc: loc}, nil
}

func (c *zoneClock) Now() time.Time           { return time.Now().In(c.loc) }
func (c *zoneClock) Location() *time.Location { return c.loc }

// Fixed returns a Clock frozen at t, for tests.
func Fixed(t time.Time) Clock { return fixedClock{t} }

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time           { return c.t }
func (c fixedClock) Location() *time.Location { return c.t.Location() }
