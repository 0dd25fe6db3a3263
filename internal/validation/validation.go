package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/schedule"
	"github.com/julianstephens/dayplan/internal/utils"
)

// ConflictType represents the type of validation conflict
type ConflictType string

const (
	ConflictOverlappingEntries  ConflictType = "overlapping_entries"
	ConflictExceedsWakingWindow ConflictType = "exceeds_waking_window"
	ConflictDuplicateEntryID    ConflictType = "duplicate_entry_id"
	ConflictZeroLengthEntry     ConflictType = "zero_length_entry"
	ConflictLateSleep           ConflictType = "late_sleep"
)

// Conflict represents a detected conflict in a day
type Conflict struct {
	Type        ConflictType
	Description string
	Date        string
	Items       []string // titles of the entries involved
	TimeRange   string
	EntryIDs    []string
}

// ValidationResult contains all detected conflicts
type ValidationResult struct {
	Conflicts []Conflict
}

// HasConflicts returns true if there are any conflicts
func (vr *ValidationResult) HasConflicts() bool {
	return len(vr.Conflicts) > 0
}

// Merge appends the conflicts of other.
func (vr *ValidationResult) Merge(other ValidationResult) {
	vr.Conflicts = append(vr.Conflicts, other.Conflicts...)
}

// FormatReport returns a human-readable report of all conflicts
func (vr *ValidationResult) FormatReport() string {
	if !vr.HasConflicts() {
		return "No conflicts detected."
	}

	var b strings.Builder
	b.WriteString("Conflicts detected:\n")
	for _, conflict := range vr.Conflicts {
		fmt.Fprintf(&b, "- %s: %s\n", conflict.Date, conflict.Description)
	}
	return b.String()
}

// Validator checks days for scheduling conflicts. Conflicts are advisory:
// nothing here blocks a mutation.
type Validator struct{}

// New creates a new Validator
func New() *Validator {
	return &Validator{}
}

// span is an entry laid out on a 48h axis so overnight entries can be compared.
type span struct {
	entry models.Entry
	start int
	end   int
}

func toSpan(e models.Entry) (span, bool) {
	start, ok := utils.ParseTime(e.Start)
	if !ok {
		return span{}, false
	}
	end, ok := utils.ParseTime(e.End)
	if !ok {
		return span{}, false
	}
	if end < start {
		end += constants.MinutesPerDay
	}
	return span{entry: e, start: start, end: end}, true
}

// ValidateDay checks one day's entries and anchors.
func (v *Validator) ValidateDay(day models.Day) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}

	seen := make(map[string][]string)
	for _, e := range day.Entries {
		seen[e.ID] = append(seen[e.ID], e.Title)
	}
	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		if titles := seen[id]; len(titles) > 1 {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictDuplicateEntryID,
				Description: fmt.Sprintf("Entry ID %s is used by %d entries", id, len(titles)),
				Date:        day.Date,
				Items:       titles,
				EntryIDs:    []string{id},
			})
		}
	}

	var spans []span
	for _, e := range day.Entries {
		s, ok := toSpan(e)
		if !ok {
			continue
		}
		if s.start == s.end {
			result.Conflicts = append(result.Conflicts, Conflict{
				Type:        ConflictZeroLengthEntry,
				Description: fmt.Sprintf("Entry \"%s\" starts and ends at %s and is never active", e.Title, e.Start),
				Date:        day.Date,
				Items:       []string{e.Title},
				TimeRange:   e.Start,
				EntryIDs:    []string{e.ID},
			})
			continue
		}
		spans = append(spans, s)
	}

	// O(n²) over one day's entries.
	for i := 0; i < len(spans); i++ {
		for j := i + 1; j < len(spans); j++ {
			a, b := spans[i], spans[j]
			if a.start < b.end && b.start < a.end {
				result.Conflicts = append(result.Conflicts, Conflict{
					Type: ConflictOverlappingEntries,
					Description: fmt.Sprintf("\"%s\" (%s-%s) overlaps \"%s\" (%s-%s)",
						a.entry.Title, a.entry.Start, a.entry.End, b.entry.Title, b.entry.Start, b.entry.End),
					Date:      day.Date,
					Items:     []string{a.entry.Title, b.entry.Title},
					TimeRange: fmt.Sprintf("%s-%s", b.entry.Start, a.entry.End),
					EntryIDs:  []string{a.entry.ID, b.entry.ID},
				})
			}
		}
	}

	result.Merge(v.validateWakingWindow(day, spans))

	if schedule.SleepWarning(day) {
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictLateSleep,
			Description: fmt.Sprintf("Sleep at %s is outside %s-%s and night owl is off",
				day.Sleep.Time, constants.SleepWindowStart, constants.SleepWindowEnd),
			Date:      day.Date,
			TimeRange: day.Sleep.Time,
		})
	}

	return result
}

// validateWakingWindow flags entries that start before wake or end after
// sleep. It only applies when both anchors are set and night owl is off.
func (v *Validator) validateWakingWindow(day models.Day, spans []span) ValidationResult {
	result := ValidationResult{}
	if day.NightOwl || !day.Wake.Set || !day.Sleep.Set {
		return result
	}
	wake, ok1 := utils.ParseTime(day.Wake.Time)
	sleep, ok2 := utils.ParseTime(day.Sleep.Time)
	if !ok1 || !ok2 {
		return result
	}
	if sleep <= wake {
		sleep += constants.MinutesPerDay
	}

	for _, s := range spans {
		if s.start >= wake && s.end <= sleep {
			continue
		}
		result.Conflicts = append(result.Conflicts, Conflict{
			Type: ConflictExceedsWakingWindow,
			Description: fmt.Sprintf("\"%s\" (%s-%s) falls outside the waking window %s-%s",
				s.entry.Title, s.entry.Start, s.entry.End, day.Wake.Time, day.Sleep.Time),
			Date:      day.Date,
			Items:     []string{s.entry.Title},
			TimeRange: fmt.Sprintf("%s-%s", s.entry.Start, s.entry.End),
			EntryIDs:  []string{s.entry.ID},
		})
	}
	return result
}

// ValidateDays checks every day in order.
func (v *Validator) ValidateDays(days []models.Day) ValidationResult {
	result := ValidationResult{Conflicts: []Conflict{}}
	for _, d := range days {
		result.Merge(v.ValidateDay(d))
	}
	return result
}
