// Package schedule derives what to display for a day: the merged,
// time-ordered items and which of them is happening now or comes next.
// Everything here is a pure function of a Day and the current minute.
package schedule

import (
	"fmt"
	"sort"

	"github.com/julianstephens/dayplan/internal/clock"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/utils"
)

type Kind string

const (
	KindEntry Kind = "entry"
	KindWake  Kind = "wake"
	KindSleep Kind = "sleep"
)

// Item is one displayable row. Point markers have an empty End.
type Item struct {
	Kind  Kind
	ID    string // entry id; empty for anchors
	Start string
	End   string
	Title string
	Notes string
}

func (i Item) IsPoint() bool {
	return i.End == ""
}

func (i Item) startMinutes() int {
	m, _ := utils.ParseTime(i.Start)
	return m
}

// Items merges entries with set anchors, ordered by start minute. Ties keep
// entries first, then wake, then sleep.
func Items(day models.Day) []Item {
	items := make([]Item, 0, len(day.Entries)+2)
	for _, e := range day.Entries {
		items = append(items, Item{
			Kind:  KindEntry,
			ID:    e.ID,
			Start: e.Start,
			End:   e.End,
			Title: e.Title,
			Notes: e.Notes,
		})
	}
	if day.Wake.Set && utils.IsValidTime(day.Wake.Time) {
		items = append(items, Item{Kind: KindWake, Start: day.Wake.Time, Title: "Wake", Notes: day.Wake.Notes})
	}
	if day.Sleep.Set && utils.IsValidTime(day.Sleep.Time) {
		it := Item{Kind: KindSleep, Start: day.Sleep.Time, Title: "Sleep", Notes: day.Sleep.Notes}
		if utils.IsValidTime(day.Sleep.End) {
			it.End = day.Sleep.End
		}
		items = append(items, it)
	}

	sort.SliceStable(items, func(a, b int) bool {
		return items[a].startMinutes() < items[b].startMinutes()
	})
	return items
}

// IsActive reports whether now (minutes after midnight) falls inside the
// item. Point markers and zero-length spans are never active.
func IsActive(item Item, now int) bool {
	if item.IsPoint() {
		return false
	}
	start, ok := utils.ParseTime(item.Start)
	if !ok {
		return false
	}
	end, ok := utils.ParseTime(item.End)
	if !ok {
		return false
	}
	if end < start {
		return now >= start || now < end
	}
	return now >= start && now < end
}

// Active returns the first item in order that is active at now.
func Active(items []Item, now int) (Item, bool) {
	for _, it := range items {
		if IsActive(it, now) {
			return it, true
		}
	}
	return Item{}, false
}

// Next returns the item with the earliest start strictly after now. Spans
// that already started, overnight or not, are never next.
func Next(items []Item, now int) (Item, bool) {
	best := -1
	bestStart := constants.MinutesPerDay
	for i, it := range items {
		s, ok := utils.ParseTime(it.Start)
		if !ok || s <= now {
			continue
		}
		if s < bestStart {
			best, bestStart = i, s
		}
	}
	if best < 0 {
		return Item{}, false
	}
	return items[best], true
}

// IsOvernight reports whether the item's span crosses midnight.
func IsOvernight(item Item) bool {
	return !item.IsPoint() && utils.IsOvernight(item.Start, item.End)
}

// TimeRange renders "09:00-10:00", "23:00-01:00 (+1 day)" or "04:30".
func TimeRange(item Item) string {
	if item.IsPoint() {
		return item.Start
	}
	r := item.Start + "-" + item.End
	if IsOvernight(item) {
		r += constants.OvernightSuffix
	}
	return r
}

// DisplayRange is TimeRange in 12-hour form.
func DisplayRange(item Item) string {
	if item.IsPoint() {
		return utils.FormatDisplay(item.Start)
	}
	r := utils.FormatDisplay(item.Start) + " - " + utils.FormatDisplay(item.End)
	if IsOvernight(item) {
		r += constants.OvernightSuffix
	}
	return r
}

// Label is the one-line text for an item, e.g. "23:00-01:00 (+1 day) Reading"
// or "Wake 04:30".
func Label(item Item) string {
	switch item.Kind {
	case KindWake, KindSleep:
		return fmt.Sprintf("%s %s", item.Title, TimeRange(item))
	default:
		return fmt.Sprintf("%s %s", TimeRange(item), item.Title)
	}
}

// Summary is the now/next view of a day. Now and Next are only computed
// when the day is today.
type Summary struct {
	Date       string
	IsToday    bool
	NowMinutes int
	Items      []Item
	Now        *Item
	Next       *Item
}

func Summarize(day models.Day, c clock.Clock) Summary {
	sum := Summary{
		Date:  day.Date,
		Items: Items(day),
	}
	if c == nil || day.Date != c.Today() {
		return sum
	}

	sum.IsToday = true
	sum.NowMinutes = c.NowMinutes()
	if it, ok := Active(sum.Items, sum.NowMinutes); ok {
		sum.Now = &it
	}
	if it, ok := Next(sum.Items, sum.NowMinutes); ok {
		sum.Next = &it
	}
	return sum
}

// SleepWarning is true when a set sleep anchor falls outside 20:00-02:00
// and the day is not marked night owl.
func SleepWarning(day models.Day) bool {
	if day.NightOwl || !day.Sleep.Set {
		return false
	}
	return !utils.IsSleepInNormalRange(day.Sleep.Time)
}

// IsUnplanned reports whether nothing has been added to the day.
func IsUnplanned(day models.Day) bool {
	return day.IsUnplanned()
}
