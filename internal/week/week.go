// Package week provides the calendar arithmetic for the Sunday-start weeks
// that scheduling, hours confirmation, and earnings reporting are organized
// around. All values are calendar dates, not instants: a week start parsed
// from "2025-03-09" names the same calendar week in every timezone.
package week

import (
	"fmt"
	"time"
)

// dayFormat is the wire format for calendar dates throughout the client.
const dayFormat = "2006-01-02"

// Start is the Sunday calendar date beginning a 7-day week. The zero value
// is not a valid week start; obtain one from StartOf, Current, or Parse.
type Start struct {
	t time.Time // midnight UTC, always a Sunday
}

// StartOf returns the week containing t, anchored on the Sunday at or
// before t's calendar day. The day is taken in t's own location, so
// "today" follows the caller's wall clock.
func StartOf(t time.Time) Start {
	d := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return Start{t: d.AddDate(0, 0, -int(d.Weekday()))}
}

// Current returns the week containing today.
func Current() Start {
	return StartOf(time.Now())
}

// Parse reads a week start from its YYYY-MM-DD form. It fails if the string
// is not a valid date or the date is not a Sunday; a malformed week start is
// a bug in the caller, not user input to be corrected.
func Parse(s string) (Start, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return Start{}, fmt.Errorf("parsing week start %q: %w", s, err)
	}
	if t.Weekday() != time.Sunday {
		return Start{}, fmt.Errorf("week start %q is a %s, not a Sunday", s, t.Weekday())
	}
	return Start{t: t}, nil
}

// Next returns the following week.
func (s Start) Next() Start {
	return Start{t: s.t.AddDate(0, 0, 7)}
}

// Prev returns the preceding week.
func (s Start) Prev() Start {
	return Start{t: s.t.AddDate(0, 0, -7)}
}

// AddWeeks returns the week n weeks after s (n may be negative).
func (s Start) AddWeeks(n int) Start {
	return Start{t: s.t.AddDate(0, 0, 7*n)}
}

// End returns the Saturday closing the week, six days after the start.
func (s Start) End() time.Time {
	return s.t.AddDate(0, 0, 6)
}

// Time returns the week's first day as midnight UTC.
func (s Start) Time() time.Time {
	return s.t
}

// Day returns the i-th day of the week, 0 (Sunday) through 6 (Saturday).
func (s Start) Day(i int) time.Time {
	return s.t.AddDate(0, 0, i)
}

// DayIndex returns the position (0-6) of the given calendar day within the
// week, or -1 when the day falls outside it.
func (s Start) DayIndex(day time.Time) int {
	d := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	n := int(d.Sub(s.t).Hours() / 24)
	if n < 0 || n > 6 {
		return -1
	}
	return n
}

// String formats the week start as YYYY-MM-DD.
func (s Start) String() string {
	return s.t.Format(dayFormat)
}

// After reports whether s begins after o.
func (s Start) After(o Start) bool { return s.t.After(o.t) }

// Before reports whether s begins before o.
func (s Start) Before(o Start) bool { return s.t.Before(o.t) }

// Equal reports whether s and o name the same week.
func (s Start) Equal(o Start) bool { return s.t.Equal(o.t) }

// IsZero reports whether s is the uninitialized zero value.
func (s Start) IsZero() bool { return s.t.IsZero() }

// IsFuture reports whether s begins after the current week. Navigation
// controls use it to stop forward paging at "now".
func (s Start) IsFuture() bool { return s.After(Current()) }

// FormatRange renders the week's span for display, e.g. "Jan 27 – Feb 2, 2025".
// Weeks crossing a year boundary carry the year on both sides.
func (s Start) FormatRange() string {
	end := s.End()
	if s.t.Year() != end.Year() {
		return fmt.Sprintf("%s – %s",
			s.t.Format("Jan 2, 2006"), end.Format("Jan 2, 2006"))
	}
	return fmt.Sprintf("%s – %s, %d",
		s.t.Format("Jan 2"), end.Format("Jan 2"), s.t.Year())
}

// Window bounds which weeks an edit operation accepts, counted in whole
// weeks around the current week. Bounds come from configuration; the zero
// window admits only the current week.
type Window struct {
	// Back is how many weeks before the current week remain editable.
	Back int

	// Forward is how many weeks past the current week remain editable.
	Forward int
}

// Contains reports whether wk falls inside the window around current.
func (w Window) Contains(current, wk Start) bool {
	earliest := current.AddWeeks(-w.Back)
	latest := current.AddWeeks(w.Forward)
	return !wk.Before(earliest) && !wk.After(latest)
}

// ParseDay reads a YYYY-MM-DD calendar date into its canonical midnight-UTC
// representation. Like Parse, a malformed date fails immediately.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return t, nil
}

// DayString formats a calendar day as YYYY-MM-DD using its own location's
// year, month, and day.
func DayString(t time.Time) string {
	return t.Format(dayFormat)
}
