// Package dateutil holds the shared date conventions: the civil time zone
// used for write stamps, the lenient upload parser, and the strict API
// parser. All milestone values are calendar dates; any time-of-day component
// is dropped at parse time.
package dateutil

import (
	"strings"
	"time"
)

// Brasilia is the fixed UTC-3 civil zone used for last_updated stamps and
// audit timestamps. The original deployment does not observe DST.
var Brasilia = time.FixedZone("America/Sao_Paulo", -3*60*60)

// Now returns the current time in the Brasília zone.
func Now() time.Time {
	return time.Now().In(Brasilia)
}

// uploadLayouts are tried in order; the first successful parse wins.
var uploadLayouts = []string{
	"02/01/2006",
	"2006-01-02",
	"02-01-2006",
	"2006/01/02",
}

// blankMask is the literal date-input mask some spreadsheets emit for an
// untouched date cell.
const blankMask = "  /  /    "

// IsBlank reports whether a raw cell value stands for "no date": empty,
// a single space, or the untouched input mask.
func IsBlank(raw string) bool {
	return raw == "" || raw == " " || raw == blankMask || strings.TrimSpace(raw) == ""
}

// ParseLenient parses an upload cell in any of the accepted formats
// (DD/MM/YYYY, YYYY-MM-DD, DD-MM-YYYY, YYYY/MM/DD). Blank and placeholder
// values yield (nil, true); an unparseable non-blank value yields (nil, false).
func ParseLenient(raw string) (*time.Time, bool) {
	if IsBlank(raw) {
		return nil, true
	}
	trimmed := strings.TrimSpace(raw)
	for _, layout := range uploadLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			d := DateOnly(t)
			return &d, true
		}
	}
	return nil, false
}

// ParseISO parses a strict YYYY-MM-DD value, as required by the direct-edit
// API. An empty string clears the date (nil, nil error).
func ParseISO(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return nil, err
	}
	d := DateOnly(t)
	return &d, nil
}

// DateOnly truncates a timestamp to its calendar date at UTC midnight.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// FormatISO renders a date as YYYY-MM-DD, the canonical comparison form.
// Nil renders as the empty string.
func FormatISO(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("2006-01-02")
}

// FormatBR renders a date as DD/MM/YYYY for display and export.
// Nil renders as the empty string.
func FormatBR(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format("02/01/2006")
}
