// Package normalize turns untrusted decoded JSON into a fully valid
// models.State. Every function here is total: bad input is coerced or
// dropped, never returned as an error.
package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/julianstephens/dayplan/internal/constants"
	"github.com/julianstephens/dayplan/internal/logger"
	"github.com/julianstephens/dayplan/internal/models"
	"github.com/julianstephens/dayplan/internal/utils"
)

// Parse decodes a stored document. Empty or undecodable input yields a
// fresh state with hardcoded defaults.
func Parse(raw string) models.State {
	if strings.TrimSpace(raw) == "" {
		return models.NewState()
	}
	var v any
	if err := json.Unmarshal([]byte(raw), &v); err != nil {
		logger.WarnOnce("parse", "stored document is not valid JSON, starting fresh", "error", err)
		return models.NewState()
	}
	return State(v)
}

// State normalizes a decoded root document.
func State(input any) models.State {
	root, ok := input.(map[string]any)
	if !ok {
		if input != nil {
			logger.WarnOnce("root", "stored document is not an object, starting fresh")
		}
		return models.NewState()
	}

	out := models.NewState()
	out.Defaults = Defaults(root["defaults"])

	days, ok := root["days"].(map[string]any)
	if !ok {
		return out
	}

	keys := make([]string, 0, len(days))
	for k := range days {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if !utils.IsISODate(key) {
			logger.WarnOnce("day:"+key, "skipping day with invalid date key", "date", key)
			continue
		}
		rec, ok := days[key].(map[string]any)
		if !ok {
			logger.WarnOnce("day:"+key, "skipping malformed day record", "date", key)
			continue
		}
		out.Days[key] = Day(key, rec, out.Defaults)
	}
	return out
}

// Defaults normalizes the defaults object.
func Defaults(input any) models.Defaults {
	d := models.HardcodedDefaults()
	obj, ok := input.(map[string]any)
	if !ok {
		return d
	}
	if t, ok := validTime(obj["wakeTime"]); ok {
		d.WakeTime = t
	}
	if t, ok := validTime(obj["sleepTime"]); ok {
		d.SleepTime = t
	}
	d.NightOwlEnabledByDefault = truthy(obj["nightOwlEnabledByDefault"])
	return d
}

// Day normalizes a single day record stored under date.
func Day(date string, rec map[string]any, defaults models.Defaults) models.Day {
	return models.Day{
		Date:        date,
		NightOwl:    truthy(rec["nightOwl"]),
		Wake:        resolveAnchor(rec, models.AnchorWake, defaults.WakeTime),
		Sleep:       resolveAnchor(rec, models.AnchorSleep, defaults.SleepTime),
		MajorEvents: MajorEvents(rec["majorEvents"]),
		Entries:     Entries(rec["entries"]),
	}
}

// Entries normalizes an entries list. Non-lists yield an empty slice.
// Titleless entries are dropped and the rest sorted by start.
func Entries(input any) []models.Entry {
	list, ok := input.([]any)
	if !ok {
		return []models.Entry{}
	}

	out := make([]models.Entry, 0, len(list))
	for _, raw := range list {
		obj, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		title, _ := obj["title"].(string)
		title = strings.TrimSpace(title)
		if title == "" {
			continue
		}

		id, _ := obj["id"].(string)
		if id == "" {
			id = uuid.NewString()
		}
		notes, _ := obj["notes"].(string)

		out = append(out, models.Entry{
			ID:    id,
			Start: timeOrFallback(obj["start"]),
			End:   timeOrFallback(obj["end"]),
			Title: title,
			Notes: notes,
		})
	}

	models.SortEntries(out)
	return out
}

// MajorEvents keeps trimmed non-empty strings in order.
func MajorEvents(input any) []string {
	out := []string{}
	list, ok := input.([]any)
	if !ok {
		return out
	}
	for _, raw := range list {
		s, ok := raw.(string)
		if !ok {
			continue
		}
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func validTime(v any) (string, bool) {
	s, ok := v.(string)
	if !ok || !utils.IsValidTime(s) {
		return "", false
	}
	return s, true
}

func timeOrFallback(v any) string {
	if s, ok := validTime(v); ok {
		return s
	}
	return constants.FallbackTime
}

// truthy coerces a decoded JSON value to bool the way loosely typed stores
// wrote it: non-zero numbers, non-empty strings and any container are true.
func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0 && !math.IsNaN(t)
	case json.Number:
		f, err := t.Float64()
		return err == nil && f != 0
	case string:
		return t != ""
	default:
		return true
	}
}
