package domain

import (
	"fmt"
	"time"
)

// DateLayout is the calendar-date wire format used for bets, results and scores
const DateLayout = "2006-01-02"

// Date is a calendar day with no time component, formatted YYYY-MM-DD
type Date string

// ParseDate validates and normalises a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: malformed date %q, expected YYYY-MM-DD", ErrInvalidInput, s)
	}
	return Date(t.Format(DateLayout)), nil
}

// DateOf returns the calendar day of t in loc
func DateOf(t time.Time, loc *time.Location) Date {
	if loc == nil {
		loc = time.UTC
	}
	return Date(t.In(loc).Format(DateLayout))
}

// Time returns midnight UTC of the date. Invalid dates yield the zero time.
func (d Date) Time() time.Time {
	t, err := time.Parse(DateLayout, string(d))
	if err != nil {
		return time.Time{}
	}
	return t
}

// AddDays returns the date shifted by n days
func (d Date) AddDays(n int) Date {
	return Date(d.Time().AddDate(0, 0, n).Format(DateLayout))
}

// IsZero reports whether the date is unset
func (d Date) IsZero() bool {
	return d == ""
}

func (d Date) String() string {
	return string(d)
}

// Clock resolves "today" and "tomorrow" in the game's time zone
type Clock struct {
	Now      func() time.Time
	Location *time.Location
}

// NewClock returns a wall clock for the given zone
func NewClock(loc *time.Location) Clock {
	return Clock{Now: time.Now, Location: loc}
}

// Today is the day results are announced for
func (c Clock) Today() Date {
	return DateOf(c.now(), c.Location)
}

// Tomorrow is the day new bets are placed for
func (c Clock) Tomorrow() Date {
	return c.Today().AddDays(1)
}

func (c Clock) now() time.Time {
	if c.Now == nil {
		return time.Now()
	}
	return c.Now()
}
