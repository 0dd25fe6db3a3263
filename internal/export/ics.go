// Package export renders days as an iCalendar document.
package export

import (
	"fmt"
	"io"
	"time"

	ical "github.com/arran4/golang-ical"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/utils"
)

// Options controls how wall-clock times are anchored.
type Options struct {
	// Location interprets HH:MM times. Defaults to time.Local.
	Location *time.Location
	// Stamp is written as DTSTAMP on every event. Defaults to time.Now.
	Stamp time.Time
}

func (o Options) withDefaults() Options {
	if o.Location == nil {
		o.Location = time.Local
	}
	if o.Stamp.IsZero() {
		o.Stamp = time.Now()
	}
	return o
}

// Calendar builds one VEVENT per displayable item and one all-day VEVENT
// per major event. Unset anchors are skipped, as are days whose key is not
// a real calendar date.
func Calendar(days []models.Day, opts Options) (*ical.Calendar, error) {
	opts = opts.withDefaults()

	cal := ical.NewCalendar()
	cal.SetMethod(ical.MethodPublish)
	cal.SetProductId(fmt.Sprintf("-//%s//%s//EN", constants.AppName, constants.Version))
	cal.SetXWRCalName(constants.AppName)

	for _, day := range days {
		if _, err := utils.ParseDate(day.Date); err != nil {
			logger.WarnOnce("export:"+day.Date, "skipping day with impossible date", "date", day.Date, "error", err)
			continue
		}
		for _, item := range schedule.Items(day) {
			if err := addItem(cal, day.Date, item, opts); err != nil {
				return nil, err
			}
		}
		if err := addMajorEvents(cal, day, opts); err != nil {
			return nil, err
		}
	}
	return cal, nil
}

// Write serializes the calendar for days to w.
func Write(w io.Writer, days []models.Day, opts Options) error {
	cal, err := Calendar(days, opts)
	if err != nil {
		return err
	}
	return cal.SerializeTo(w)
}

func uid(date string, item schedule.Item) string {
	if item.Kind == schedule.KindEntry {
		return fmt.Sprintf("%s@%s", item.ID, constants.AppName)
	}
	return fmt.Sprintf("%s-%s@%s", date, item.Kind, constants.AppName)
}

func addItem(cal *ical.Calendar, date string, item schedule.Item, opts Options) error {
	start, err := utils.CombineDateAndTime(date, item.Start, opts.Location)
	if err != nil {
		return fmt.Errorf("exporting %s on %s: %w", item.Title, date, err)
	}

	end := start
	if !item.IsPoint() {
		end, err = utils.CombineDateAndTime(date, item.End, opts.Location)
		if err != nil {
			return fmt.Errorf("exporting %s on %s: %w", item.Title, date, err)
		}
		if schedule.IsOvernight(item) {
			end = end.AddDate(0, 0, 1)
		}
	}

	ev := cal.AddEvent(uid(date, item))
	ev.SetDtStampTime(opts.Stamp)
	ev.SetStartAt(start)
	ev.SetEndAt(end)
	ev.SetSummary(item.Title)
	if item.Notes != "" {
		ev.SetDescription(item.Notes)
	}
	if item.Kind != schedule.KindEntry {
		ev.AddCategory(string(item.Kind))
	}
	return nil
}

func addMajorEvents(cal *ical.Calendar, day models.Day, opts Options) error {
	if len(day.MajorEvents) == 0 {
		return nil
	}
	date, err := time.ParseInLocation(constants.DateFormat, day.Date, opts.Location)
	if err != nil {
		return fmt.Errorf("exporting major events on %s: %w", day.Date, err)
	}
	for i, text := range day.MajorEvents {
		ev := cal.AddEvent(fmt.Sprintf("%s-event-%d@%s", day.Date, i, constants.AppName))
		ev.SetDtStampTime(opts.Stamp)
		ev.SetAllDayStartAt(date)
		ev.SetAllDayEndAt(date.AddDate(0, 0, 1))
		ev.SetSummary(text)
	}
	return nil
}
