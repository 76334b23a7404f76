package domain

import (
	"errors"
	"fmt"
)

// ErrInvalidTimeFormat is returned when a value is not a zero-padded HH:MM clock time.
var ErrInvalidTimeFormat = errors.New("time must be a zero-padded HH:MM clock time")

const (
	// MinutesPerDay is the number of minutes in a calendar day.
	MinutesPerDay = 24 * 60

	// EndOfDay is the 24:00 boundary. It is only valid as the end of a working window.
	EndOfDay ClockTime = MinutesPerDay
)

// ClockTime is a time of day at minute resolution, stored as minutes since midnight.
type ClockTime int

// ParseClockTime parses a zero-padded 24-hour "HH:MM" value in the range 00:00-23:59.
func ParseClockTime(s string) (ClockTime, error) {
	if len(s) != 5 || s[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if s[i] < '0' || s[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
		}
	}

	hour := int(s[0]-'0')*10 + int(s[1]-'0')
	minute := int(s[3]-'0')*10 + int(s[4]-'0')
	if hour > 23 || minute > 59 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	return ClockTime(hour*60 + minute), nil
}

// ParseBoundary parses a working-hours bound. Unlike ParseClockTime it accepts "24:00".
func ParseBoundary(s string) (ClockTime, error) {
	if s == "24:00" {
		return EndOfDay, nil
	}
	return ParseClockTime(s)
}

// MustParseClockTime is like ParseClockTime but panics on error.
func MustParseClockTime(s string) ClockTime {
	c, err := ParseClockTime(s)
	if err != nil {
		panic(err)
	}
	return c
}

// NewClockTime builds a clock time from an hour and minute.
func NewClockTime(hour, minute int) (ClockTime, error) {
	if hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("%w: %02d:%02d", ErrInvalidTimeFormat, hour, minute)
	}
	return ClockTime(hour*60 + minute), nil
}

// Valid reports whether c lies within a single day, 24:00 included.
func (c ClockTime) Valid() bool {
	return c >= 0 && c <= EndOfDay
}

// Hour returns the hour component.
func (c ClockTime) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c ClockTime) Minute() int { return int(c) % 60 }

// Add returns c shifted by the given number of minutes.
func (c ClockTime) Add(minutes int) ClockTime {
	return c + ClockTime(minutes)
}

// Sub returns the number of minutes between other and c.
func (c ClockTime) Sub(other ClockTime) int {
	return int(c - other)
}

// String formats c as zero-padded HH:MM.
func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}
