package scheduler

import (
	"reflect"
	"testing"

	"github.com/julianstephens/dayplan/internal/models"
)

func day(wake, sleep string, entries ...models.Entry) models.Day {
	d := models.NewDay("2024-03-10", models.Defaults{WakeTime: wake, SleepTime: sleep})
	d.Entries = entries
	return d
}

func entry(start, end string) models.Entry {
	return models.Entry{ID: start, Start: start, End: end, Title: "busy"}
}

func TestFreeBlocks(t *testing.T) {
	tests := []struct {
		name string
		day  models.Day
		want []string
	}{
		{
			name: "empty day is one block",
			day:  day("07:00", "22:00"),
			want: []string{"07:00-22:00"},
		},
		{
			name: "gaps between entries",
			day:  day("07:00", "22:00", entry("09:00", "10:00"), entry("12:00", "13:00")),
			want: []string{"07:00-09:00", "10:00-12:00", "13:00-22:00"},
		},
		{
			name: "overlapping entries merge",
			day:  day("07:00", "22:00", entry("09:00", "11:00"), entry("10:00", "10:30")),
			want: []string{"07:00-09:00", "11:00-22:00"},
		},
		{
			name: "entries outside the window are ignored",
			day:  day("07:00", "22:00", entry("05:00", "06:00"), entry("22:30", "23:00")),
			want: []string{"07:00-22:00"},
		},
		{
			name: "entry straddling wake trims the first block",
			day:  day("07:00", "22:00", entry("06:30", "08:00")),
			want: []string{"08:00-22:00"},
		},
		{
			name: "short gaps are dropped",
			day:  day("07:00", "22:00", entry("07:03", "21:58")),
			want: nil,
		},
		{
			name: "window past midnight",
			day:  day("10:00", "02:00", entry("23:00", "01:00")),
			want: []string{"10:00-23:00", "01:00-02:00 (+1 day)"},
		},
		{
			name: "zero-length entries take no time",
			day:  day("07:00", "22:00", entry("09:00", "09:00")),
			want: []string{"07:00-22:00"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks, err := New().FreeBlocks(tt.day)
			if err != nil {
				t.Fatal(err)
			}
			var got []string
			for _, b := range blocks {
				got = append(got, b.String())
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("FreeBlocks() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFreeBlocks_InvalidWindow(t *testing.T) {
	d := day("07:00", "22:00")
	d.Wake.Time = "late"
	if _, err := New().FreeBlocks(d); err == nil {
		t.Error("expected an error for an unparsable wake time")
	}
}

func TestPlace(t *testing.T) {
	busyDay := day("07:00", "22:00", entry("07:00", "09:00"), entry("09:30", "12:00"))

	tests := []struct {
		name     string
		duration int
		earliest string
		latest   string
		want     string
		ok       bool
	}{
		{"first fit", 30, "", "", "09:00-09:30", true},
		{"too long for the first gap", 45, "", "", "12:00-12:45", true},
		{"earliest pushes the start", 30, "14:15", "", "14:15-14:45", true},
		{"latest rules out later gaps", 45, "", "12:30", "", false},
		{"longer than any gap", 11 * 60, "", "", "", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok, err := New().Place(busyDay, tt.duration, tt.earliest, tt.latest)
			if err != nil {
				t.Fatal(err)
			}
			if ok != tt.ok {
				t.Fatalf("Place() ok = %v, want %v", ok, tt.ok)
			}
			if ok && got.String() != tt.want {
				t.Errorf("Place() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestPlace_Errors(t *testing.T) {
	d := day("07:00", "22:00")
	if _, _, err := New().Place(d, 0, "", ""); err == nil {
		t.Error("expected an error for a zero duration")
	}
	if _, _, err := New().Place(d, 30, "9am", ""); err == nil {
		t.Error("expected an error for a bad earliest time")
	}
}

func TestPlace_PastMidnight(t *testing.T) {
	d := day("10:00", "02:00", entry("10:00", "23:30"))
	got, ok, err := New().Place(d, 60, "00:30", "")
	if err != nil || !ok {
		t.Fatalf("Place() = %v, %v, %v", got, ok, err)
	}
	if got.StartTime() != "00:30" || got.EndTime() != "01:30" || got.Start != 24*60+30 {
		t.Errorf("Place() = %+v", got)
	}
}

func TestFreeBlocks_EarlyMorningEntryInLateWindow(t *testing.T) {
	d := day("10:00", "03:00", entry("00:30", "01:00"))
	blocks, err := New().FreeBlocks(d)
	if err != nil {
		t.Fatal(err)
	}
	var got []string
	for _, b := range blocks {
		got = append(got, b.String())
	}
	want := []string{"10:00-00:30 (+1 day)", "01:00-03:00 (+1 day)"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FreeBlocks() = %q, want %q", got, want)
	}
}
