package model

import (
	"errors"
	"fmt"
	"time"
)

// dateKeyLayout is the canonical day-record key: zero-padded, local calendar.
const dateKeyLayout = "2006-01-02"

var ErrInvalidDateKey = errors.New("model: invalid date key")

// DateKey addresses one day record in the ledger ("YYYY-MM-DD").
type DateKey string

// ParseDateKey validates a raw key. Round-tripping through the layout
// rejects unpadded or out-of-range components ("2026-2-3", "2026-02-30").
func ParseDateKey(raw string) (DateKey, error) {
	t, err := time.ParseInLocation(dateKeyLayout, raw, time.Local)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, raw)
	}
	if t.Format(dateKeyLayout) != raw {
		return "", fmt.Errorf("%w: %q", ErrInvalidDateKey, raw)
	}
	return DateKey(raw), nil
}

// KeyFor derives the key for the calendar day containing t.
func KeyFor(t time.Time) DateKey {
	return DateKey(t.Format(dateKeyLayout))
}

// KeyForDate builds a key from explicit components.
func KeyForDate(year int, month time.Month, day int) DateKey {
	return KeyFor(time.Date(year, month, day, 0, 0, 0, 0, time.Local))
}

func (k DateKey) Valid() bool {
	_, err := ParseDateKey(string(k))
	return err == nil
}

// Time returns local midnight of the keyed day.
func (k DateKey) Time() (time.Time, error) {
	t, err := time.ParseInLocation(dateKeyLayout, string(k), time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateKey, string(k))
	}
	return t, nil
}

func (k DateKey) AddDays(n int) DateKey {
	t, err := k.Time()
	if err != nil {
		return k
	}
	return KeyFor(t.AddDate(0, 0, n))
}

// StartOfWeek returns local midnight of the Monday of t's week.
func StartOfWeek(t time.Time) time.Time {
	year, month, day := t.Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, t.Location())
	back := (int(midnight.Weekday()) + 6) % 7
	return midnight.AddDate(0, 0, -back)
}

// MonthDays returns the day count of a month, leap years included.
func MonthDays(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
