// Package clock supplies the current local date and minute of day.
package clock

import (
	"time"

	"github.com/julianstephens/dayplan/internal/constants"
)

// Clock reports "today" and "now" in local wall-clock terms.
type Clock interface {
	// Today returns the local date as YYYY-MM-DD.
	Today() string
	// NowMinutes returns minutes since local midnight.
	NowMinutes() int
}

// System reads time.Now in the process's local zone.
type System struct{}

func (System) Today() string {
	return time.Now().Format(constants.DateFormat)
}

func (System) NowMinutes() int {
	now := time.Now()
	return now.Hour()*60 + now.Minute()
}

// Fixed always reports the same instant.
type Fixed struct {
	At time.Time
}

// NewFixed builds a Fixed clock from a date and minute of day.
func NewFixed(date string, minutes int) (Fixed, error) {
	t, err := time.ParseInLocation(constants.DateFormat, date, time.Local)
	if err != nil {
		return Fixed{}, err
	}
	return Fixed{At: t.Add(time.Duration(minutes) * time.Minute)}, nil
}

func (f Fixed) Today() string {
	return f.At.Format(constants.DateFormat)
}

func (f Fixed) NowMinutes() int {
	return f.At.Hour()*60 + f.At.Minute()
}
