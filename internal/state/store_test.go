package state

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/julianstephens/dayplan/internal/clock"
	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/storage"
)

const testDate = "2026-10-16"

func setupTestStore(t *testing.T) (*Store, *storage.MemoryStore) {
	t.Helper()
	mem := storage.NewMemoryStore()
	if err := mem.Load(); err != nil {
		t.Fatal(err)
	}
	c, err := clock.NewFixed(testDate, 8*60)
	if err != nil {
		t.Fatal(err)
	}
	s := New(mem, c)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s, mem
}

func reload(t *testing.T, mem *storage.MemoryStore) *Store {
	t.Helper()
	s := New(mem, clock.System{})
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

// failingProvider accepts reads but refuses writes.
type failingProvider struct {
	storage.MemoryStore
}

func (f *failingProvider) Set(string, string) error {
	return errors.New("disk full")
}

func TestLoadMissingAndInvalid(t *testing.T) {
	s, _ := setupTestStore(t)
	if got := s.Defaults(); got != models.HardcodedDefaults() {
		t.Errorf("Defaults() = %+v, want hardcoded", got)
	}
	if len(s.Dates()) != 0 {
		t.Errorf("Dates() = %v, want none", s.Dates())
	}

	mem := storage.NewMemoryStoreFrom(map[string]string{constants.StorageKey: "{broken"})
	s = New(mem, nil)
	if err := s.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(s.Dates()) != 0 {
		t.Error("invalid stored data should load as an empty plan")
	}
}

func TestEnsureDayPersistsImmediately(t *testing.T) {
	s, mem := setupTestStore(t)

	if err := s.EnsureDay(testDate); err != nil {
		t.Fatalf("EnsureDay() error = %v", err)
	}
	if _, found, _ := mem.Get(constants.StorageKey); !found {
		t.Fatal("EnsureDay() did not persist")
	}

	day, ok := reload(t, mem).Lookup(testDate)
	if !ok {
		t.Fatal("created day missing after reload")
	}
	if day.Wake.Time != constants.DefaultWakeTime || day.Wake.Set {
		t.Errorf("Wake = %+v, want unset default", day.Wake)
	}
}

func TestEnsureDayInvalidDate(t *testing.T) {
	s, _ := setupTestStore(t)
	for _, date := range []string{"", "today", "2026-02-30", "2026-1-1"} {
		if err := s.EnsureDay(date); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("EnsureDay(%q) error = %v, want ErrInvalidDate", date, err)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	s, mem := setupTestStore(t)

	entry, applied, err := s.SaveEntry(testDate, EntryInput{Start: "09:00", End: "10:00", Title: "Write", Notes: "draft"})
	if err != nil || !applied {
		t.Fatalf("SaveEntry() = (%v, %v)", applied, err)
	}
	if entry.ID == "" {
		t.Fatal("SaveEntry() should assign an id")
	}

	day, err := reload(t, mem).GetDay(testDate)
	if err != nil {
		t.Fatal(err)
	}
	if len(day.Entries) != 1 {
		t.Fatalf("len(Entries) = %d, want 1", len(day.Entries))
	}
	if day.Entries[0] != entry {
		t.Errorf("reloaded entry = %+v, want %+v", day.Entries[0], entry)
	}
}

func TestSaveEntrySoftValidation(t *testing.T) {
	tests := []struct {
		name string
		in   EntryInput
	}{
		{name: "empty title", in: EntryInput{Start: "09:00", End: "10:00", Title: ""}},
		{name: "blank title", in: EntryInput{Start: "09:00", End: "10:00", Title: "   "}},
		{name: "missing start", in: EntryInput{End: "10:00", Title: "x"}},
		{name: "missing end", in: EntryInput{Start: "09:00", Title: "x"}},
		{name: "invalid start", in: EntryInput{Start: "9am", End: "10:00", Title: "x"}},
		{name: "invalid end", in: EntryInput{Start: "09:00", End: "24:00", Title: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, _ := setupTestStore(t)
			_, applied, err := s.SaveEntry(testDate, tt.in)
			if err != nil {
				t.Fatalf("SaveEntry() error = %v, want soft rejection", err)
			}
			if applied {
				t.Error("SaveEntry() applied invalid input")
			}
			if day, ok := s.Lookup(testDate); ok && len(day.Entries) != 0 {
				t.Errorf("entries = %+v, want none", day.Entries)
			}
		})
	}
}

func TestSaveEntryInvalidDate(t *testing.T) {
	s, _ := setupTestStore(t)
	_, applied, err := s.SaveEntry("someday", EntryInput{Start: "09:00", End: "10:00", Title: "x"})
	if applied || !errors.Is(err, ErrInvalidDate) {
		t.Errorf("SaveEntry() = (%v, %v), want ErrInvalidDate", applied, err)
	}
}

func TestSaveEntryKeepsSorted(t *testing.T) {
	s, _ := setupTestStore(t)
	for _, in := range []EntryInput{
		{Start: "12:00", End: "13:00", Title: "Lunch"},
		{Start: "07:00", End: "08:00", Title: "Run"},
		{Start: "23:00", End: "01:00", Title: "Late"},
		{Start: "09:00", End: "10:00", Title: "Standup"},
	} {
		if _, applied, err := s.SaveEntry(testDate, in); err != nil || !applied {
			t.Fatalf("SaveEntry(%+v) = (%v, %v)", in, applied, err)
		}
	}

	day, _ := s.GetDay(testDate)
	want := []string{"Run", "Standup", "Lunch", "Late"}
	for i, title := range want {
		if day.Entries[i].Title != title {
			t.Errorf("entries[%d] = %q, want %q", i, day.Entries[i].Title, title)
		}
	}
}

func TestSaveEntryReplaceAndAppend(t *testing.T) {
	s, _ := setupTestStore(t)

	first, _, _ := s.SaveEntry(testDate, EntryInput{Start: "09:00", End: "10:00", Title: "A"})
	second, _, _ := s.SaveEntry(testDate, EntryInput{Start: "11:00", End: "12:00", Title: "B"})

	edited, applied, err := s.SaveEntry(testDate, EntryInput{ID: first.ID, Start: "13:00", End: "14:00", Title: "A2"})
	if err != nil || !applied {
		t.Fatalf("edit SaveEntry() = (%v, %v)", applied, err)
	}
	if edited.ID != first.ID {
		t.Errorf("edited id = %q, want %q", edited.ID, first.ID)
	}

	day, _ := s.GetDay(testDate)
	if len(day.Entries) != 2 {
		t.Fatalf("len(Entries) = %d, want 2", len(day.Entries))
	}
	if day.Entries[0].ID != second.ID || day.Entries[1].Title != "A2" {
		t.Errorf("entries after edit = %+v", day.Entries)
	}

	// An id that does not exist yet is kept on the appended entry.
	added, applied, err := s.SaveEntry(testDate, EntryInput{ID: "custom-id", Start: "06:00", End: "07:00", Title: "C"})
	if err != nil || !applied || added.ID != "custom-id" {
		t.Fatalf("SaveEntry(unknown id) = (%+v, %v, %v)", added, applied, err)
	}
	day, _ = s.GetDay(testDate)
	if len(day.Entries) != 3 || day.Entries[0].ID != "custom-id" {
		t.Errorf("entries = %+v", day.Entries)
	}
}

func TestDeleteEntry(t *testing.T) {
	s, _ := setupTestStore(t)
	e, _, _ := s.SaveEntry(testDate, EntryInput{Start: "09:00", End: "10:00", Title: "A"})

	if applied, err := s.DeleteEntry(testDate, "nope"); err != nil || applied {
		t.Errorf("DeleteEntry(unknown) = (%v, %v), want (false, nil)", applied, err)
	}
	if applied, err := s.DeleteEntry(testDate, e.ID); err != nil || !applied {
		t.Errorf("DeleteEntry() = (%v, %v), want (true, nil)", applied, err)
	}
	day, _ := s.GetDay(testDate)
	if len(day.Entries) != 0 {
		t.Errorf("entries = %+v, want none", day.Entries)
	}
}

func TestAnchors(t *testing.T) {
	s, _ := setupTestStore(t)

	if applied, _ := s.SetAnchor(testDate, models.AnchorWake, AnchorInput{Time: "06:15", Notes: " alarm "}); !applied {
		t.Fatal("SetAnchor(wake) not applied")
	}
	if applied, _ := s.SetAnchor(testDate, models.AnchorSleep, AnchorInput{Time: "23:00", End: "06:00"}); !applied {
		t.Fatal("SetAnchor(sleep) not applied")
	}

	day, _ := s.GetDay(testDate)
	if day.Wake != (models.Anchor{Time: "06:15", Notes: "alarm", Set: true}) {
		t.Errorf("Wake = %+v", day.Wake)
	}
	if day.Sleep != (models.Anchor{Time: "23:00", Set: true, End: "06:00"}) {
		t.Errorf("Sleep = %+v", day.Sleep)
	}

	// Empty time keeps the current one.
	if applied, _ := s.SetAnchor(testDate, models.AnchorWake, AnchorInput{Notes: "later"}); !applied {
		t.Fatal("SetAnchor(keep time) not applied")
	}
	day, _ = s.GetDay(testDate)
	if day.Wake.Time != "06:15" || day.Wake.Notes != "later" {
		t.Errorf("Wake = %+v", day.Wake)
	}

	rejected := []struct {
		kind models.AnchorKind
		in   AnchorInput
	}{
		{models.AnchorWake, AnchorInput{Time: "6:15"}},
		{models.AnchorSleep, AnchorInput{Time: "23:00", End: "noon"}},
		{models.AnchorWake, AnchorInput{Time: "06:00", End: "07:00"}},
		{models.AnchorKind("nap"), AnchorInput{Time: "13:00"}},
	}
	for _, r := range rejected {
		if applied, err := s.SetAnchor(testDate, r.kind, r.in); applied || err != nil {
			t.Errorf("SetAnchor(%s, %+v) = (%v, %v), want soft rejection", r.kind, r.in, applied, err)
		}
	}

	if applied, _ := s.ClearAnchor(testDate, models.AnchorSleep); !applied {
		t.Error("ClearAnchor(sleep) not applied")
	}
	day, _ = s.GetDay(testDate)
	if day.Sleep.Set || day.Sleep.End != "" || day.Sleep.Time != "23:00" {
		t.Errorf("Sleep after clear = %+v", day.Sleep)
	}
	if applied, _ := s.ClearAnchor(testDate, models.AnchorSleep); applied {
		t.Error("clearing an unset anchor should not apply")
	}

	if applied, _ := s.ResetAnchors(testDate); !applied {
		t.Error("ResetAnchors() not applied")
	}
	day, _ = s.GetDay(testDate)
	if day.Wake != (models.Anchor{Time: constants.DefaultWakeTime}) || day.Sleep != (models.Anchor{Time: constants.DefaultSleepTime}) {
		t.Errorf("anchors after reset = %+v / %+v", day.Wake, day.Sleep)
	}
}

func TestMajorEvents(t *testing.T) {
	s, _ := setupTestStore(t)

	for _, ev := range []string{" Trip ", "Dentist", "Trip"} {
		if applied, err := s.AddMajorEvent(testDate, ev); err != nil || !applied {
			t.Fatalf("AddMajorEvent(%q) = (%v, %v)", ev, applied, err)
		}
	}
	if applied, _ := s.AddMajorEvent(testDate, "  "); applied {
		t.Error("blank major event should not apply")
	}

	day, _ := s.GetDay(testDate)
	if len(day.MajorEvents) != 3 || day.MajorEvents[0] != "Trip" || day.MajorEvents[2] != "Trip" {
		t.Errorf("MajorEvents = %v", day.MajorEvents)
	}

	if applied, _ := s.RemoveMajorEvent(testDate, 5); applied {
		t.Error("out-of-range removal should not apply")
	}
	if applied, _ := s.RemoveMajorEvent(testDate, 0); !applied {
		t.Error("RemoveMajorEvent(0) not applied")
	}
	day, _ = s.GetDay(testDate)
	if len(day.MajorEvents) != 2 || day.MajorEvents[0] != "Dentist" {
		t.Errorf("MajorEvents = %v", day.MajorEvents)
	}
}

func TestDefaultsAreNotRetroactive(t *testing.T) {
	s, _ := setupTestStore(t)
	if err := s.EnsureDay(testDate); err != nil {
		t.Fatal(err)
	}

	applied, err := s.SetDefaults(models.Defaults{WakeTime: "06:00", SleepTime: "23:00", NightOwlEnabledByDefault: true})
	if err != nil || !applied {
		t.Fatalf("SetDefaults() = (%v, %v)", applied, err)
	}

	old, _ := s.GetDay(testDate)
	if old.Wake.Time != constants.DefaultWakeTime || old.NightOwl {
		t.Errorf("existing day changed: %+v", old)
	}

	fresh, _ := s.GetDay("2026-10-17")
	if fresh.Wake.Time != "06:00" || fresh.Sleep.Time != "23:00" || !fresh.NightOwl {
		t.Errorf("new day not seeded from defaults: %+v", fresh)
	}

	if applied, _ := s.SetDefaults(models.Defaults{WakeTime: "6", SleepTime: "23:00"}); applied {
		t.Error("invalid defaults should not apply")
	}
	if s.Defaults().WakeTime != "06:00" {
		t.Errorf("Defaults() = %+v", s.Defaults())
	}
}

func TestSetNightOwl(t *testing.T) {
	s, _ := setupTestStore(t)
	if applied, err := s.SetNightOwl(testDate, true); err != nil || !applied {
		t.Fatalf("SetNightOwl() = (%v, %v)", applied, err)
	}
	day, _ := s.GetDay(testDate)
	if !day.NightOwl {
		t.Error("NightOwl not set")
	}
}

func TestPersistFailureRollsBack(t *testing.T) {
	fp := &failingProvider{}
	if err := fp.Load(); err != nil {
		t.Fatal(err)
	}
	s := New(fp, nil)
	if err := s.Load(); err != nil {
		t.Fatal(err)
	}

	if err := s.EnsureDay(testDate); err == nil {
		t.Fatal("EnsureDay() should surface the write error")
	}
	if _, ok := s.Lookup(testDate); ok {
		t.Error("day kept in memory after a failed write")
	}
}

func TestReplaceAndSnapshot(t *testing.T) {
	s, mem := setupTestStore(t)
	if _, err := s.AddMajorEvent(testDate, "Trip"); err != nil {
		t.Fatal(err)
	}

	snap := s.Snapshot()
	day := snap.Days[testDate]
	day.MajorEvents[0] = "mutated"
	if got, _ := s.Lookup(testDate); got.MajorEvents[0] != "Trip" {
		t.Error("Snapshot() shares memory with the store")
	}

	replacement := models.NewState()
	replacement.Days["2026-01-01"] = models.NewDay("2026-01-01", replacement.Defaults)
	if err := s.Replace(replacement); err != nil {
		t.Fatalf("Replace() error = %v", err)
	}

	raw, _, _ := mem.Get(constants.StorageKey)
	var decoded models.State
	if err := json.Unmarshal([]byte(raw), &decoded); err != nil {
		t.Fatal(err)
	}
	if _, ok := decoded.Days["2026-01-01"]; !ok || len(decoded.Days) != 1 {
		t.Errorf("persisted days = %v", decoded.Dates())
	}
}

func TestPersistedShape(t *testing.T) {
	s, mem := setupTestStore(t)
	if _, err := s.SetAnchor(testDate, models.AnchorWake, AnchorInput{Time: "05:00"}); err != nil {
		t.Fatal(err)
	}

	raw, _, _ := mem.Get(constants.StorageKey)
	var doc map[string]any
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		t.Fatal(err)
	}
	day := doc["days"].(map[string]any)[testDate].(map[string]any)
	for _, key := range []string{"date", "nightOwl", "wake", "sleep", "majorEvents", "entries"} {
		if _, ok := day[key]; !ok {
			t.Errorf("persisted day missing %q", key)
		}
	}
	wake := day["wake"].(map[string]any)
	if wake["set"] != true || wake["time"] != "05:00" {
		t.Errorf("persisted wake = %v", wake)
	}
	defaults := doc["defaults"].(map[string]any)
	if defaults["wakeTime"] != constants.DefaultWakeTime {
		t.Errorf("persisted defaults = %v", defaults)
	}
}
