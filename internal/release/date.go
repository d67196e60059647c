package release

import (
	"fmt"
	"strings"
	"time"
)

// Date layouts accepted by ParseDate.
const (
	LayoutDisplay = "02/01/2006"
	LayoutISO     = "2006-01-02"

	// layoutLoose accepts one or two digit day and month values.
	layoutLoose = "2/1/2006"
)

// Date is a calendar date without time of day or location.
// The zero value means "no date".
type Date struct {
	year  int
	month time.Month
	day   int
}

// NewDate returns the date for the given year, month and day.
// Out of range values are normalized the same way time.Date does.
func NewDate(year int, month time.Month, day int) Date {
	return DateOf(time.Date(year, month, day, 0, 0, 0, 0, time.UTC))
}

// DateOf returns the calendar date of t in t's location.
func DateOf(t time.Time) Date {
	y, m, d := t.Date()
	return Date{year: y, month: m, day: d}
}

// ParseDate parses dd/mm/yyyy (one or two digit day and month) or ISO
// yyyy-mm-dd. Surrounding whitespace is ignored.
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, fmt.Errorf("parse date: empty value")
	}
	for _, layout := range []string{layoutLoose, LayoutISO} {
		if t, err := time.Parse(layout, s); err == nil {
			return DateOf(t), nil
		}
	}
	return Date{}, fmt.Errorf("parse date %q: expected dd/mm/yyyy or yyyy-mm-dd", s)
}

// IsZero reports whether d is the zero date.
func (d Date) IsZero() bool {
	return d.year == 0 && d.month == 0 && d.day == 0
}

// Year returns the year of d.
func (d Date) Year() int { return d.year }

// Month returns the month of d.
func (d Date) Month() time.Month { return d.month }

// Day returns the day of the month of d.
func (d Date) Day() int { return d.day }

// Compare returns -1 if d is before other, +1 if after and 0 if equal.
func (d Date) Compare(other Date) int {
	a, b := d.key(), other.key()
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// Before reports whether d is strictly before other.
func (d Date) Before(other Date) bool { return d.Compare(other) < 0 }

// After reports whether d is strictly after other.
func (d Date) After(other Date) bool { return d.Compare(other) > 0 }

// Equal reports whether d and other are the same calendar day.
func (d Date) Equal(other Date) bool { return d.Compare(other) == 0 }

// Time returns midnight UTC on d.
func (d Date) Time() time.Time {
	return time.Date(d.year, d.month, d.day, 0, 0, 0, 0, time.UTC)
}

// Format formats d with a time layout. The zero date formats as "".
func (d Date) Format(layout string) string {
	if d.IsZero() {
		return ""
	}
	return d.Time().Format(layout)
}

// String returns d in ISO form, or "" for the zero date.
func (d Date) String() string {
	return d.Format(LayoutISO)
}

func (d Date) key() int {
	return d.year*10000 + int(d.month)*100 + d.day
}

// Clock provides the current time.
type Clock interface {
	Now() time.Time
}

// SystemClock returns the wall clock time.
type SystemClock struct{}

// Now returns time.Now().
func (SystemClock) Now() time.Time { return time.Now() }

// Today returns the current calendar date according to c.
func Today(c Clock) Date {
	return DateOf(c.Now())
}
