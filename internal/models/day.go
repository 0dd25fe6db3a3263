package models

import (
	"slices"
	"sort"

	"github.com/julianstephens/dayplan/internal/utils"
)

// Entry is a time-bounded activity block. End before Start means the
// block runs past midnight.
type Entry struct {
	ID    string `json:"id"`
	Start string `json:"start"` // HH:MM format
	End   string `json:"end"`   // HH:MM format
	Title string `json:"title"`
	Notes string `json:"notes"`
}

type AnchorKind string

const (
	AnchorWake  AnchorKind = "wake"
	AnchorSleep AnchorKind = "sleep"
)

// Valid reports whether k names one of the two anchors.
func (k AnchorKind) Valid() bool {
	return k == AnchorWake || k == AnchorSleep
}

// Anchor is a wake or sleep marker. An unset anchor still carries a time
// for editing but is never displayed. Only sleep uses End.
type Anchor struct {
	Time  string `json:"time"` // HH:MM format
	Notes string `json:"notes"`
	Set   bool   `json:"set"`
	End   string `json:"end,omitempty"` // HH:MM format
}

// Day is the plan for one calendar date.
type Day struct {
	Date        string   `json:"date"` // YYYY-MM-DD format
	NightOwl    bool     `json:"nightOwl"`
	Wake        Anchor   `json:"wake"`
	Sleep       Anchor   `json:"sleep"`
	MajorEvents []string `json:"majorEvents"`
	Entries     []Entry  `json:"entries"`
}

// NewDay seeds an empty day from the global defaults. Both anchors start unset.
func NewDay(date string, d Defaults) Day {
	return Day{
		Date:        date,
		NightOwl:    d.NightOwlEnabledByDefault,
		Wake:        Anchor{Time: d.WakeTime},
		Sleep:       Anchor{Time: d.SleepTime},
		MajorEvents: []string{},
		Entries:     []Entry{},
	}
}

// Anchor returns a pointer to the anchor of the given kind, or nil.
func (d *Day) Anchor(kind AnchorKind) *Anchor {
	switch kind {
	case AnchorWake:
		return &d.Wake
	case AnchorSleep:
		return &d.Sleep
	}
	return nil
}

// IsUnplanned is true when nothing has been added to the day.
func (d Day) IsUnplanned() bool {
	return len(d.Entries) == 0 && len(d.MajorEvents) == 0 && !d.Wake.Set && !d.Sleep.Set
}

// FindEntry returns the index of the entry with id, or -1.
func (d Day) FindEntry(id string) int {
	return slices.IndexFunc(d.Entries, func(e Entry) bool { return e.ID == id })
}

// Clone returns a deep copy.
func (d Day) Clone() Day {
	c := d
	c.MajorEvents = append([]string{}, d.MajorEvents...)
	c.Entries = append([]Entry{}, d.Entries...)
	return c
}

// SortEntries orders entries by start minute, keeping insertion order for ties.
// Unparseable starts sort as midnight.
func SortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		a, _ := utils.ParseTime(entries[i].Start)
		b, _ := utils.ParseTime(entries[j].Start)
		return a < b
	})
}
