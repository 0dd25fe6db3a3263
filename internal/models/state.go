package models

import (
	"sort"

	"github.com/julianstephens/dayplan/internal/constants"
)

// Defaults seed newly created days. Changing them never touches existing days.
type Defaults struct {
	WakeTime                 string `json:"wakeTime"`
	SleepTime                string `json:"sleepTime"`
	NightOwlEnabledByDefault bool   `json:"nightOwlEnabledByDefault"`
}

// HardcodedDefaults is used when no valid defaults are stored.
func HardcodedDefaults() Defaults {
	return Defaults{
		WakeTime:                 constants.DefaultWakeTime,
		SleepTime:                constants.DefaultSleepTime,
		NightOwlEnabledByDefault: constants.DefaultNightOwlEnabledByDefault,
	}
}

// State is the whole persisted document.
type State struct {
	Defaults Defaults       `json:"defaults"`
	Days     map[string]Day `json:"days"`
}

// NewState returns an empty document with hardcoded defaults.
func NewState() State {
	return State{
		Defaults: HardcodedDefaults(),
		Days:     map[string]Day{},
	}
}

// Dates returns the known day keys in ascending order.
func (s State) Dates() []string {
	dates := make([]string, 0, len(s.Days))
	for d := range s.Days {
		dates = append(dates, d)
	}
	sort.Strings(dates)
	return dates
}

// Clone returns a deep copy.
func (s State) Clone() State {
	c := State{Defaults: s.Defaults, Days: make(map[string]Day, len(s.Days))}
	for k, d := range s.Days {
		c.Days[k] = d.Clone()
	}
	return c
}
