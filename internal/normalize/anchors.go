package normalize

import (
	"github.com/julianstephens/dayplan/internal/models"
)

// anchorCandidate is what one extraction strategy found for an anchor.
type anchorCandidate struct {
	time  string
	notes string
	set   bool
	end   string
}

// anchorStrategy pulls an anchor out of one historical day-record shape.
// ok is false when the shape is absent or its time is invalid.
type anchorStrategy struct {
	name    string
	extract func(rec map[string]any, kind models.AnchorKind) (anchorCandidate, bool)
}

// anchorStrategies are tried in order; the first hit wins. New record
// shapes are supported by prepending a strategy.
var anchorStrategies = []anchorStrategy{
	{name: "current", extract: extractCurrent},
	{name: "enabled-flag", extract: extractEnabledFlag},
	{name: "legacy-anchors", extract: extractLegacy},
}

func resolveAnchor(rec map[string]any, kind models.AnchorKind, defaultTime string) models.Anchor {
	for _, s := range anchorStrategies {
		c, ok := s.extract(rec, kind)
		if !ok {
			continue
		}
		a := models.Anchor{Time: c.time, Notes: c.notes, Set: c.set}
		if kind == models.AnchorSleep {
			a.End = c.end
		}
		return a
	}
	return models.Anchor{Time: defaultTime}
}

// extractCurrent reads {time, notes, set, end} objects at day.wake / day.sleep.
// Objects carrying neither flag are treated as current and unset.
func extractCurrent(rec map[string]any, kind models.AnchorKind) (anchorCandidate, bool) {
	obj, ok := rec[string(kind)].(map[string]any)
	if !ok {
		return anchorCandidate{}, false
	}
	_, hasSet := obj["set"]
	_, hasEnabled := obj["enabled"]
	if !hasSet && hasEnabled {
		return anchorCandidate{}, false
	}
	t, ok := validTime(obj["time"])
	if !ok {
		return anchorCandidate{}, false
	}
	c := anchorCandidate{time: t, notes: stringField(obj, "notes"), set: flag(obj, "set")}
	if end, ok := validTime(obj["end"]); ok {
		c.end = end
	}
	return c, true
}

// extractEnabledFlag reads the same objects from when the flag was named "enabled".
func extractEnabledFlag(rec map[string]any, kind models.AnchorKind) (anchorCandidate, bool) {
	obj, ok := rec[string(kind)].(map[string]any)
	if !ok {
		return anchorCandidate{}, false
	}
	if _, hasEnabled := obj["enabled"]; !hasEnabled {
		return anchorCandidate{}, false
	}
	t, ok := validTime(obj["time"])
	if !ok {
		return anchorCandidate{}, false
	}
	return anchorCandidate{time: t, notes: stringField(obj, "notes"), set: flag(obj, "enabled")}, true
}

// extractLegacy reads day.anchors.wake / day.anchors.sleep. Those records
// had no flag; an anchor was always shown.
func extractLegacy(rec map[string]any, kind models.AnchorKind) (anchorCandidate, bool) {
	anchors, ok := rec["anchors"].(map[string]any)
	if !ok {
		return anchorCandidate{}, false
	}
	obj, ok := anchors[string(kind)].(map[string]any)
	if !ok {
		return anchorCandidate{}, false
	}
	t, ok := validTime(obj["time"])
	if !ok {
		return anchorCandidate{}, false
	}
	return anchorCandidate{time: t, notes: stringField(obj, "notes"), set: true}, true
}

func stringField(obj map[string]any, key string) string {
	s, _ := obj[key].(string)
	return s
}

func flag(obj map[string]any, key string) bool {
	b, _ := obj[key].(bool)
	return b
}
