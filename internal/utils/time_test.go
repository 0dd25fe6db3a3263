package utils

import (
	"testing"
	"time"
)

func TestParseTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    int
		wantOK  bool
	}{
		{name: "midnight", input: "00:00", want: 0, wantOK: true},
		{name: "morning", input: "06:30", want: 390, wantOK: true},
		{name: "last minute", input: "23:59", want: 1439, wantOK: true},
		{name: "hour out of range", input: "24:00", wantOK: false},
		{name: "minute out of range", input: "12:60", wantOK: false},
		{name: "single digit hour", input: "7:00", wantOK: false},
		{name: "seconds", input: "07:00:00", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "ab:cd", wantOK: false},
		{name: "surrounding space", input: " 07:00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseTime(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseTime(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseTime(%q) = %d, want %d", tt.input, got, tt.want)
			}
			if IsValidTime(tt.input) != tt.wantOK {
				t.Errorf("IsValidTime(%q) disagrees with ParseTime", tt.input)
			}
		})
	}
}

func TestFormatDisplay(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"00:00", "12:00 AM"},
		{"06:05", "6:05 AM"},
		{"12:00", "12:00 PM"},
		{"23:59", "11:59 PM"},
		{"25:00", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := FormatDisplay(tt.input); got != tt.want {
				t.Errorf("FormatDisplay(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatMinutes(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{0, "00:00"},
		{390, "06:30"},
		{1439, "23:59"},
		{1440 + 60, "01:00"},
		{-60, "23:00"},
	}
	for _, tt := range tests {
		if got := FormatMinutes(tt.input); got != tt.want {
			t.Errorf("FormatMinutes(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsOvernight(t *testing.T) {
	tests := []struct {
		start, end string
		want       bool
	}{
		{"23:00", "01:00", true},
		{"09:00", "10:00", false},
		{"10:00", "10:00", false},
		{"bad", "01:00", false},
	}
	for _, tt := range tests {
		if got := IsOvernight(tt.start, tt.end); got != tt.want {
			t.Errorf("IsOvernight(%q, %q) = %v, want %v", tt.start, tt.end, got, tt.want)
		}
	}
}

func TestIsSleepInNormalRange(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"20:00", true},
		{"23:30", true},
		{"00:15", true},
		{"02:00", true},
		{"02:01", false},
		{"19:59", false},
		{"12:00", false},
		{"nope", false},
	}
	for _, tt := range tests {
		if got := IsSleepInNormalRange(tt.input); got != tt.want {
			t.Errorf("IsSleepInNormalRange(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestIsISODate(t *testing.T) {
	valid := []string{"2026-10-16", "1999-01-01", "2026-13-40"}
	invalid := []string{"2026-1-16", "16-10-2026", "today", "", "2026-10-16T00:00"}

	for _, s := range valid {
		if !IsISODate(s) {
			t.Errorf("IsISODate(%q) = false, want true", s)
		}
	}
	for _, s := range invalid {
		if IsISODate(s) {
			t.Errorf("IsISODate(%q) = true, want false", s)
		}
	}
}

func TestShiftDate(t *testing.T) {
	tests := []struct {
		name    string
		date    string
		days    int
		want    string
		wantErr bool
	}{
		{name: "next day", date: "2026-10-16", days: 1, want: "2026-10-17"},
		{name: "previous day", date: "2026-10-16", days: -1, want: "2026-10-15"},
		{name: "month rollover", date: "2026-10-31", days: 1, want: "2026-11-01"},
		{name: "year rollover", date: "2026-12-31", days: 1, want: "2027-01-01"},
		{name: "leap day", date: "2028-02-28", days: 1, want: "2028-02-29"},
		{name: "impossible date", date: "2026-13-40", days: 1, wantErr: true},
		{name: "bad shape", date: "tomorrow", days: 1, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ShiftDate(tt.date, tt.days)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ShiftDate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ShiftDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCombineDateAndTime(t *testing.T) {
	got, err := CombineDateAndTime("2026-10-16", "23:15", time.UTC)
	if err != nil {
		t.Fatalf("CombineDateAndTime() error = %v", err)
	}
	want := time.Date(2026, 10, 16, 23, 15, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("CombineDateAndTime() = %v, want %v", got, want)
	}

	if _, err := CombineDateAndTime("2026-10-16", "7pm", time.UTC); err == nil {
		t.Error("CombineDateAndTime() should reject an invalid time")
	}
}
