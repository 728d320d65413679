package domain

import "time"

const (
	DateLayout  = "2006-01-02"
	ClockLayout = "15:04"
)

// ParseDate parses a "YYYY-MM-DD" value.
func ParseDate(s string) (time.Time, error) {
	return time.Parse(DateLayout, s)
}

// ParseClock parses an "HH:MM" value.
func ParseClock(s string) (time.Time, error) {
	return time.Parse(ClockLayout, s)
}

// ISOWeekday returns the weekday of t with 1=Monday..7=Sunday, the
// numbering used by tb_reserva_dia.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// ClockBefore reports whether clock a is strictly before clock b. Both
// values must be zero-padded "HH:MM" strings, which order lexically.
func ClockBefore(a, b string) bool { return a < b }

// DateBefore reports whether date a is strictly before date b. Both
// values must be "YYYY-MM-DD" strings, which order lexically.
func DateBefore(a, b string) bool { return a < b }
