package ledger

import (
	"math"
	"sort"
	"strings"
	"time"

	"github.com/sandeepkv93/habitd/internal/model"
)

// DayBar is one day of a weekly report.
type DayBar struct {
	Date    model.DateKey
	Percent int
}

// ReasonCount is one aggregated failure reason.
type ReasonCount struct {
	Reason string
	Count  int
}

// DayPercent is the binary discipline score: 100 only when every habit in
// the set has a "done" entry for the day. A day with zero habits defined
// scores 0 — absence of habits is not success. There is no partial credit.
func (e *Engine) DayPercent(key model.DateKey) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.dayPercentLocked(key)
}

func (e *Engine) dayPercentLocked(key model.DateKey) int {
	if len(e.habits) == 0 {
		return 0
	}
	day, ok := e.records[key]
	if !ok {
		return 0
	}
	for _, h := range e.habits {
		entry, ok := day[h.ID]
		if !ok || entry.Status != model.StatusDone {
			return 0
		}
	}
	return 100
}

// DoneCount counts "done" entries in the day record, stale ids included.
func (e *Engine) DoneCount(key model.DateKey) int {
	e.mu.Lock()
	defer e.mu.Unlock()
	n := 0
	for _, entry := range e.records[key] {
		if entry.Status == model.StatusDone {
			n++
		}
	}
	return n
}

// SummarizeReasons collects the trimmed, non-empty reasons of failed entries
// for one day. Known habits come first in display order, then any entries
// for ids no longer in the habit set, sorted by id.
func (e *Engine) SummarizeReasons(key model.DateKey) []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	day, ok := e.records[key]
	if !ok {
		return []string{}
	}

	out := make([]string, 0, len(day))
	seen := make(map[string]bool, len(day))
	appendReason := func(entry model.Entry) {
		if entry.Status != model.StatusFailed {
			return
		}
		if reason := strings.TrimSpace(entry.Reason); reason != "" {
			out = append(out, reason)
		}
	}

	for _, h := range e.habits {
		if entry, ok := day[h.ID]; ok {
			seen[h.ID] = true
			appendReason(entry)
		}
	}
	stale := make([]string, 0)
	for id := range day {
		if !seen[id] {
			stale = append(stale, id)
		}
	}
	sort.Strings(stale)
	for _, id := range stale {
		appendReason(day[id])
	}
	return out
}

// MonthlyPerfectCount walks every calendar day of the month and counts the
// ones scoring 100. total is the month's day count, leap years respected.
func (e *Engine) MonthlyPerfectCount(year int, month time.Month) (perfect, total int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.monthlyPerfectLocked(year, month)
}

func (e *Engine) monthlyPerfectLocked(year int, month time.Month) (perfect, total int) {
	total = model.MonthDays(year, month)
	for d := 1; d <= total; d++ {
		if e.dayPercentLocked(model.KeyForDate(year, month, d)) == 100 {
			perfect++
		}
	}
	return perfect, total
}

// MonthlyPercent is the rounded share of perfect days in the month.
func (e *Engine) MonthlyPercent(year int, month time.Month) int {
	perfect, total := e.MonthlyPerfectCount(year, month)
	return roundedPercent(perfect, total)
}

// YearlyBestWorstMonth ranks the twelve months by their rounded monthly
// percentage. Ties keep the earliest month: comparisons are strict, so the
// first maximum and first minimum win.
func (e *Engine) YearlyBestWorstMonth(year int) (best time.Month, bestPct int, worst time.Month, worstPct int) {
	e.mu.Lock()
	defer e.mu.Unlock()

	bestPct = -1
	worstPct = 101
	for month := time.January; month <= time.December; month++ {
		perfect, total := e.monthlyPerfectLocked(year, month)
		pct := roundedPercent(perfect, total)
		if pct > bestPct {
			best = month
			bestPct = pct
		}
		if pct < worstPct {
			worst = month
			worstPct = pct
		}
	}
	return best, bestPct, worst, worstPct
}

// WeeklyBars scores each day of the Monday-start week containing anchor.
func (e *Engine) WeeklyBars(anchor time.Time) []DayBar {
	e.mu.Lock()
	defer e.mu.Unlock()

	start := model.StartOfWeek(anchor)
	out := make([]DayBar, 0, 7)
	for i := 0; i < 7; i++ {
		key := model.KeyFor(start.AddDate(0, 0, i))
		out = append(out, DayBar{Date: key, Percent: e.dayPercentLocked(key)})
	}
	return out
}

// TopReasons aggregates failure reasons across a month by frequency,
// descending; equal counts sort by reason for a stable report.
func (e *Engine) TopReasons(year int, month time.Month, limit int) []ReasonCount {
	counts := make(map[string]int)
	for d := 1; d <= model.MonthDays(year, month); d++ {
		for _, reason := range e.SummarizeReasons(model.KeyForDate(year, month, d)) {
			counts[reason]++
		}
	}

	out := make([]ReasonCount, 0, len(counts))
	for reason, count := range counts {
		out = append(out, ReasonCount{Reason: reason, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Reason < out[j].Reason
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

func roundedPercent(part, whole int) int {
	if whole == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(whole) * 100))
}
