package domain

import "time"

// dateLayout is the canonical calendar-date form. Because it is zero-padded
// and fixed-width, lexicographic order on these strings equals chronological
// order, which the log query engine relies on.
const dateLayout = "2006-01-02"

// NormalizeDate resolves a raw date string to canonical YYYY-MM-DD form.
// Empty input defaults to today's date in UTC. Input that does not parse as a
// valid YYYY-MM-DD calendar date is silently replaced by today's date rather
// than rejected; an already-canonical value passes through unchanged.
func NormalizeDate(raw string) string {
	return normalizeDateAt(raw, time.Now().UTC())
}

func normalizeDateAt(raw string, now time.Time) string {
	if raw == "" {
		return now.Format(dateLayout)
	}
	if _, err := time.Parse(dateLayout, raw); err != nil {
		return now.Format(dateLayout)
	}
	return raw
}
