// Package cli provides the headless command surface and its terminal
// formatting helpers.
package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

// FormatPercent renders a completion percentage.
func FormatPercent(pct int) string {
	return fmt.Sprintf("%d%%", pct)
}

// FormatBar renders a fixed-width completion bar, e.g. "██████░░░░".
func FormatBar(pct, width int) string {
	if width <= 0 {
		return ""
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	filled := pct * width / 100
	return strings.Repeat("█", filled) + strings.Repeat("░", width-filled)
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatEpochMillis renders a millisecond timestamp as local wall time.
func FormatEpochMillis(ms int64) string {
	if ms == 0 {
		return "-"
	}
	return time.UnixMilli(ms).Local().Format("2006-01-02 15:04")
}

// FormatCompletion renders an entry's completion timestamp. Only entries
// currently marked done carry one: a later flip to failed keeps the stamp
// in the data but it is not surfaced until the habit is done again.
func FormatCompletion(entry model.Entry) string {
	if entry.Status != model.StatusDone || entry.CompletedAt == nil {
		return "-"
	}
	return FormatEpochMillis(*entry.CompletedAt)
}

// ParseDateArg resolves a user-supplied date argument. Empty input and
// "today" map to the current day, "yesterday" to the day before, and
// anything else must be a calendar date in YYYY-MM-DD form.
func ParseDateArg(arg string, now time.Time) (model.DateKey, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "", "today":
		return model.KeyFor(now), nil
	case "yesterday":
		return model.KeyFor(now.AddDate(0, 0, -1)), nil
	default:
		return model.ParseDateKey(strings.TrimSpace(arg))
	}
}
