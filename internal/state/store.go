// Package state owns the in-memory plan document and writes it back to a
// storage.Provider after every applied change.
//
// A Store is not safe for concurrent writers. The CLI runs one command per
// process and the TUI mutates from bubbletea's single update loop.
package state

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/julianstephens/dayplan/internal/clock"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/normalize"
	"github.com/julianstephens/dayplan/internal/storage"
	"github.com/julianstephens/dayplan/internal/utils"
)

// ErrInvalidDate is returned for dates that are not real YYYY-MM-DD dates.
var ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")

type Store struct {
	provider storage.Provider
	clock    clock.Clock
	key      string
	state    models.State
	validate *validator.Validate
}

func New(provider storage.Provider, c clock.Clock) *Store {
	if c == nil {
		c = clock.System{}
	}
	return &Store{
		provider: provider,
		clock:    c,
		key:      constants.StorageKey,
		state:    models.NewState(),
		validate: newValidator(),
	}
}

// Load reads and normalizes the stored document. A missing or unreadable
// value starts an empty plan.
func (s *Store) Load() error {
	raw, found, err := s.provider.Get(s.key)
	if err != nil {
		return fmt.Errorf("failed to read plan: %w", err)
	}
	if !found {
		s.state = models.NewState()
		return nil
	}
	s.state = normalize.Parse(raw)
	return nil
}

func (s *Store) persist() error {
	data, err := json.Marshal(s.state)
	if err != nil {
		return fmt.Errorf("failed to serialize plan: %w", err)
	}
	if err := s.provider.Set(s.key, string(data)); err != nil {
		return fmt.Errorf("failed to save plan: %w", err)
	}
	return nil
}

// Clock returns the clock the store was built with.
func (s *Store) Clock() clock.Clock {
	return s.clock
}

// Today is the clock's current date.
func (s *Store) Today() string {
	return s.clock.Today()
}

func (s *Store) Defaults() models.Defaults {
	return s.state.Defaults
}

// SetDefaults replaces the defaults used for days created from now on.
// Invalid times leave everything unchanged and report applied=false.
func (s *Store) SetDefaults(d models.Defaults) (bool, error) {
	in := defaultsInput{WakeTime: strings.TrimSpace(d.WakeTime), SleepTime: strings.TrimSpace(d.SleepTime)}
	if err := s.validate.Struct(in); err != nil {
		logger.Debug("defaults rejected", "error", err)
		return false, nil
	}

	prev := s.state.Defaults
	s.state.Defaults = models.Defaults{
		WakeTime:                 in.WakeTime,
		SleepTime:                in.SleepTime,
		NightOwlEnabledByDefault: d.NightOwlEnabledByDefault,
	}
	if err := s.persist(); err != nil {
		s.state.Defaults = prev
		return false, err
	}
	return true, nil
}

func checkDate(date string) error {
	if _, err := utils.ParseDate(date); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDate, date)
	}
	return nil
}

// EnsureDay creates the day from the current defaults if it does not
// exist yet and persists the document straight away.
func (s *Store) EnsureDay(date string) error {
	if err := checkDate(date); err != nil {
		return err
	}
	if _, ok := s.state.Days[date]; ok {
		return nil
	}

	s.state.Days[date] = models.NewDay(date, s.state.Defaults)
	if err := s.persist(); err != nil {
		delete(s.state.Days, date)
		return err
	}
	logger.Debug("created day", "date", date)
	return nil
}

// GetDay returns a copy of the day, creating it first when needed.
func (s *Store) GetDay(date string) (models.Day, error) {
	if err := s.EnsureDay(date); err != nil {
		return models.Day{}, err
	}
	return s.state.Days[date].Clone(), nil
}

// Lookup returns a copy of an existing day without creating it.
func (s *Store) Lookup(date string) (models.Day, bool) {
	d, ok := s.state.Days[date]
	if !ok {
		return models.Day{}, false
	}
	return d.Clone(), true
}

// Mutate applies fn to a copy of the day. When fn reports a change the
// entries are re-sorted and the whole document is persisted.
func (s *Store) Mutate(date string, fn func(*models.Day) bool) (bool, error) {
	if err := s.EnsureDay(date); err != nil {
		return false, err
	}

	prev := s.state.Days[date]
	next := prev.Clone()
	if !fn(&next) {
		return false, nil
	}
	models.SortEntries(next.Entries)

	s.state.Days[date] = next
	if err := s.persist(); err != nil {
		s.state.Days[date] = prev
		return false, err
	}
	return true, nil
}

// SaveEntry adds or replaces an entry. An existing ID is replaced in
// place; any other ID (or none) appends. Missing start, end or title
// leaves the day untouched.
func (s *Store) SaveEntry(date string, in EntryInput) (models.Entry, bool, error) {
	in = in.trimmed()
	if err := s.validate.Struct(in); err != nil {
		logger.Debug("entry rejected", "date", date, "error", err)
		return models.Entry{}, false, checkDate(date)
	}

	entry := models.Entry{
		ID:    in.ID,
		Start: in.Start,
		End:   in.End,
		Title: in.Title,
		Notes: in.Notes,
	}
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	applied, err := s.Mutate(date, func(d *models.Day) bool {
		if i := d.FindEntry(entry.ID); i >= 0 {
			d.Entries[i] = entry
		} else {
			d.Entries = append(d.Entries, entry)
		}
		return true
	})
	if err != nil || !applied {
		return models.Entry{}, false, err
	}
	return entry, true, nil
}

// DeleteEntry removes the entry with id. Unknown ids are not applied.
func (s *Store) DeleteEntry(date, id string) (bool, error) {
	return s.Mutate(date, func(d *models.Day) bool {
		i := d.FindEntry(id)
		if i < 0 {
			return false
		}
		d.Entries = append(d.Entries[:i], d.Entries[i+1:]...)
		return true
	})
}

// SetAnchor marks the anchor as set with the given time and notes.
func (s *Store) SetAnchor(date string, kind models.AnchorKind, in AnchorInput) (bool, error) {
	in = in.trimmed()
	if !kind.Valid() || s.validate.Struct(in) != nil {
		return false, checkDate(date)
	}
	if kind == models.AnchorWake && in.End != "" {
		return false, checkDate(date)
	}

	return s.Mutate(date, func(d *models.Day) bool {
		a := d.Anchor(kind)
		if in.Time != "" {
			a.Time = in.Time
		}
		a.Notes = in.Notes
		a.End = in.End
		a.Set = true
		return true
	})
}

// ClearAnchor hides the anchor but keeps its time and notes for editing.
func (s *Store) ClearAnchor(date string, kind models.AnchorKind) (bool, error) {
	if !kind.Valid() {
		return false, checkDate(date)
	}
	return s.Mutate(date, func(d *models.Day) bool {
		a := d.Anchor(kind)
		if !a.Set && a.End == "" {
			return false
		}
		a.Set = false
		a.End = ""
		return true
	})
}

// ResetAnchors puts both anchors back to the current defaults, unset and without notes.
func (s *Store) ResetAnchors(date string) (bool, error) {
	defaults := s.state.Defaults
	return s.Mutate(date, func(d *models.Day) bool {
		d.Wake = models.Anchor{Time: defaults.WakeTime}
		d.Sleep = models.Anchor{Time: defaults.SleepTime}
		return true
	})
}

// SetNightOwl toggles the day's night-owl flag.
func (s *Store) SetNightOwl(date string, on bool) (bool, error) {
	return s.Mutate(date, func(d *models.Day) bool {
		d.NightOwl = on
		return true
	})
}

// AddMajorEvent appends a trimmed, non-empty event.
func (s *Store) AddMajorEvent(date, text string) (bool, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return false, checkDate(date)
	}
	return s.Mutate(date, func(d *models.Day) bool {
		d.MajorEvents = append(d.MajorEvents, text)
		return true
	})
}

// RemoveMajorEvent removes the event at index. Out-of-range indexes are not applied.
func (s *Store) RemoveMajorEvent(date string, index int) (bool, error) {
	return s.Mutate(date, func(d *models.Day) bool {
		if index < 0 || index >= len(d.MajorEvents) {
			return false
		}
		d.MajorEvents = append(d.MajorEvents[:index], d.MajorEvents[index+1:]...)
		return true
	})
}

// Dates lists every stored day in ascending order.
func (s *Store) Dates() []string {
	return s.state.Dates()
}

// Snapshot returns a deep copy of the whole document.
func (s *Store) Snapshot() models.State {
	return s.state.Clone()
}

// Replace swaps in a whole document, as when restoring a backup, and persists it.
func (s *Store) Replace(st models.State) error {
	prev := s.state
	s.state = st.Clone()
	if s.state.Days == nil {
		s.state.Days = map[string]models.Day{}
	}
	if err := s.persist(); err != nil {
		s.state = prev
		return err
	}
	return nil
}
