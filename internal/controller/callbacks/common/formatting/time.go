package formatting

import (
	"fmt"
	"time"
)

// The backend sends appointment dates as "2006-01-02" and times as either
// "15:04" or "15:04:05" depending on the column driver. Every screen goes
// through these helpers so the two spellings render identically.

// FormatTime12h converts a wire time to a 12-hour clock ("14:30" → "2:30 PM").
// Anything unparseable is returned unchanged.
func FormatTime12h(raw string) string {
	for _, layout := range []string{"15:04:05", "15:04"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("3:04 PM")
		}
	}
	return raw
}

// FormatDateHuman converts a wire date to a readable form
// ("2026-09-01" → "Mon, Sep 1 2026"). Anything unparseable is returned
// unchanged.
func FormatDateHuman(raw string) string {
	t, err := time.Parse("2006-01-02", raw)
	if err != nil {
		return raw
	}
	return t.Format("Mon, Jan 2 2006")
}

// FormatDateTimeHuman renders a date and time pair on one line.
func FormatDateTimeHuman(date, tm string) string {
	return fmt.Sprintf("%s at %s", FormatDateHuman(date), FormatTime12h(tm))
}

// FormatTimestamp renders a backend timestamp ("2026-08-25 14:30:07" or RFC
// 3339) in short local form, falling back to the raw value.
func FormatTimestamp(raw string) string {
	for _, layout := range []string{"2006-01-02 15:04:05", time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.Format("Jan 2 2006, 3:04 PM")
		}
	}
	return raw
}
