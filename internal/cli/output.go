package cli

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/utils"
)

var (
	headingColor = color.New(color.Bold, color.Underline)
	activeColor  = color.New(color.FgGreen, color.Bold)
	nextColor    = color.New(color.FgCyan)
	anchorColor  = color.New(color.FgHiYellow, color.Faint)
	faintColor   = color.New(color.Faint, color.Italic)
	warnColor    = color.New(color.FgYellow)
	okColor      = color.New(color.FgGreen)
)

func (c *Context) Success(msg string) {
	_, _ = okColor.Fprintf(c.Writer(), "✓ %s\n", msg)
}

func (c *Context) NotApplied(reason string) {
	_, _ = warnColor.Fprintf(c.Writer(), "Not applied: %s\n", reason)
}

func (c *Context) Warn(msg string) {
	_, _ = warnColor.Fprintf(c.Writer(), "⚠ %s\n", msg)
}

// Heading prints the long form of date, marking today.
func Heading(date string, isToday bool) string {
	h := utils.FormatLongDate(date)
	if isToday {
		h += " (today)"
	}
	return headingColor.Sprint(h)
}

func marker(s schedule.Summary, item schedule.Item) string {
	switch {
	case s.Now != nil && *s.Now == item:
		return activeColor.Sprint("▶")
	case s.Next != nil && *s.Next == item:
		return nextColor.Sprint("›")
	default:
		return " "
	}
}

// TimeRange formats an item's times in the configured clock style.
func (c *Context) TimeRange(item schedule.Item) string {
	if c.Config != nil && c.Config.TwelveHour {
		return schedule.DisplayRange(item)
	}
	return schedule.TimeRange(item)
}

// ItemTable renders the day's items with the active and next items marked.
func ItemTable(s schedule.Summary, showIDs bool, timeRange func(schedule.Item) string) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true

	if showIDs {
		tbl.AddRow("", "TIME", "TITLE", "ID", "NOTES")
	} else {
		tbl.AddRow("", "TIME", "TITLE", "NOTES")
	}
	for _, item := range s.Items {
		title := item.Title
		if item.Kind != schedule.KindEntry {
			title = anchorColor.Sprint(title)
		} else if s.Now != nil && *s.Now == item {
			title = activeColor.Sprint(title)
		}
		if showIDs {
			tbl.AddRow(marker(s, item), timeRange(item), title, item.ID, item.Notes)
		} else {
			tbl.AddRow(marker(s, item), timeRange(item), title, item.Notes)
		}
	}
	return tbl
}

// NowNext is the one-line now/next strip.
func NowNext(s schedule.Summary) string {
	now := faintColor.Sprint("nothing scheduled")
	if s.Now != nil {
		now = activeColor.Sprint(schedule.Label(*s.Now))
	}
	next := faintColor.Sprint("nothing later today")
	if s.Next != nil {
		next = nextColor.Sprint(schedule.Label(*s.Next))
	}
	return fmt.Sprintf("Now: %s   Next: %s", now, next)
}

// PrintDay writes the full day view used by `day` and `watch`.
func (c *Context) PrintDay(day models.Day, s schedule.Summary, showIDs bool) {
	c.Println(Heading(day.Date, s.IsToday))
	if day.NightOwl {
		c.Println(faintColor.Sprint("night owl"))
	}
	if len(day.MajorEvents) > 0 {
		c.Printf("Major events: %s\n", strings.Join(day.MajorEvents, "; "))
	}
	c.Println()

	if len(s.Items) == 0 {
		c.Println(faintColor.Sprint("  Nothing planned yet. Add an entry with 'dayplan entry add'."))
	} else {
		c.Println(ItemTable(s, showIDs, c.TimeRange))
	}

	if s.IsToday {
		c.Println()
		c.Println(NowNext(s))
	}
	if schedule.SleepWarning(day) {
		c.Warn(fmt.Sprintf("Sleep at %s is outside %s-%s. Turn on night owl if that is intended.",
			day.Sleep.Time, constants.SleepWindowStart, constants.SleepWindowEnd))
	}
}

// EntryTable lists entries with their IDs, for editing by ID.
func EntryTable(entries []models.Entry, timeRange func(schedule.Item) string) *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	tbl.Wrap = true
	tbl.AddRow("ID", "TIME", "TITLE", "NOTES")
	for _, e := range entries {
		item := schedule.Item{Kind: schedule.KindEntry, ID: e.ID, Start: e.Start, End: e.End, Title: e.Title}
		tbl.AddRow(e.ID, timeRange(item), e.Title, e.Notes)
	}
	return tbl
}
