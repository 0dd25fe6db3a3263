package utils

import (
	"fmt"
	"regexp"
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
)

var (
	clockTimeRe = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
	isoDateRe   = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseTime converts a strict HH:MM clock time into minutes after midnight.
// ok is false for anything that is not two-digit hours 00-23 and minutes 00-59.
func ParseTime(s string) (minutes int, ok bool) {
	m := clockTimeRe.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	h := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
	mm := int(m[2][0]-'0')*10 + int(m[2][1]-'0')
	return h*60 + mm, true
}

// IsValidTime reports whether s is a well-formed HH:MM clock time.
func IsValidTime(s string) bool {
	return clockTimeRe.MatchString(s)
}

// ParseTimeToMinutes is ParseTime with an error for callers that propagate failures.
func ParseTimeToMinutes(timeStr string) (int, error) {
	m, ok := ParseTime(timeStr)
	if !ok {
		return 0, fmt.Errorf("invalid time %q, expected HH:MM", timeStr)
	}
	return m, nil
}

// FormatMinutes renders minutes after midnight as HH:MM, wrapping past 24h.
func FormatMinutes(m int) string {
	m %= constants.MinutesPerDay
	if m < 0 {
		m += constants.MinutesPerDay
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// FormatDisplay renders a clock time in 12-hour form ("6:05 AM").
// Invalid input yields an empty string.
func FormatDisplay(s string) string {
	m, ok := ParseTime(s)
	if !ok {
		return ""
	}
	return time.Date(0, 1, 1, m/60, m%60, 0, 0, time.UTC).Format(constants.DisplayTimeFormat)
}

// IsOvernight reports whether the span start-end crosses midnight.
// Only end strictly before start wraps; equal times are a zero-length span.
func IsOvernight(start, end string) bool {
	s, ok := ParseTime(start)
	if !ok {
		return false
	}
	e, ok := ParseTime(end)
	if !ok {
		return false
	}
	return e < s
}

// IsSleepInNormalRange reports whether a sleep time falls inside the
// recommended 20:00-02:00 window. Invalid times are never in range.
func IsSleepInNormalRange(s string) bool {
	m, ok := ParseTime(s)
	if !ok {
		return false
	}
	from, _ := ParseTime(constants.SleepWindowStart)
	to, _ := ParseTime(constants.SleepWindowEnd)
	return m >= from || m <= to
}

// IsISODate checks the YYYY-MM-DD shape only. Calendar validity is not checked,
// matching the shape stored day keys are required to have.
func IsISODate(s string) bool {
	return isoDateRe.MatchString(s)
}

// ParseDate parses a YYYY-MM-DD date and rejects impossible calendar dates.
func ParseDate(s string) (time.Time, error) {
	if !IsISODate(s) {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	t, err := time.Parse(constants.DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return t, nil
}

// ShiftDate moves an ISO date by the given number of days.
func ShiftDate(date string, days int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, days).Format(constants.DateFormat), nil
}

// FormatLongDate renders an ISO date as "Friday, October 16 2026" for headings.
// The input is returned unchanged when it cannot be parsed.
func FormatLongDate(date string) string {
	t, err := ParseDate(date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2 2006")
}

// CombineDateAndTime joins a date and a clock time into a local wall-clock instant.
func CombineDateAndTime(dateStr, timeStr string, loc *time.Location) (time.Time, error) {
	date, err := ParseDate(dateStr)
	if err != nil {
		return time.Time{}, err
	}
	m, err := ParseTimeToMinutes(timeStr)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(date.Year(), date.Month(), date.Day(), m/60, m%60, 0, 0, loc), nil
}
