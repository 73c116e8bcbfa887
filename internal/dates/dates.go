// Package dates normalizes the heterogeneous timestamp strings found in
// feed items. Timestamps are compared as naive local values: any timezone
// or offset present in the input is parsed and then discarded.
package dates

import (
	"strings"
	"time"
)

// DisplayLayout is the canonical rendering of a published date.
const DisplayLayout = "02 January 2006, 15:04"

// layouts are tried in order; the first successful parse wins.
var layouts = []string{
	"Mon, 2 Jan 2006 15:04:05 MST",
	"Mon, 2 Jan 2006 15:04:05 -0700",
	"2006-01-02T15:04:05Z07:00",
	"2006-01-02T15:04:05Z0700",
	"2006-01-02 15:04:05",
	"2 Jan 2006 15:04:05",
	"Mon, 2 Jan 2006 15:04:05",
	"2 Jan 2006, 15:04",
	"2 Jan 2006",
}

// Parse attempts each known layout against raw and returns the parsed time
// with zone information stripped. ok is false when raw is empty or matches
// no layout; malformed input is an expected case, never an error.
func Parse(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, false
	}

	for _, layout := range layouts {
		parsed, err := time.Parse(layout, raw)
		if err != nil {
			continue
		}
		return naive(parsed), true
	}

	return time.Time{}, false
}

// OnOrAfter reports whether raw names a moment at or past cutoff. Absent or
// unparseable input passes: recency filtering fails open so items with
// missing dates are not silently dropped.
func OnOrAfter(raw string, cutoff time.Time) bool {
	parsed, ok := Parse(raw)
	if !ok {
		return true
	}
	return !parsed.Before(cutoff)
}

// Display renders raw in DisplayLayout when parseable, otherwise returns raw
// unchanged. Empty input stays empty.
func Display(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	if parsed, ok := Parse(raw); ok {
		return parsed.Format(DisplayLayout)
	}
	return raw
}

// naive rebuilds the wall-clock reading of t without its location.
func naive(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), 0, time.UTC)
}
