package datecalc

import (
	"fmt"
	"sort"
	"strings"
	"time"
)

// DateLayout is the ISO 8601 calendar date format used for application dates.
const DateLayout = "2006-01-02"

// Today returns t's calendar date in DateLayout.
func Today(t time.Time) string {
	return t.Format(DateLayout)
}

// ParseDate parses an ISO 8601 date. A full RFC 3339 timestamp is accepted too
// and truncated to its date, since some servers return datetimes.
func ParseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(DateLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	return time.Time{}, fmt.Errorf("cannot parse date %q (want YYYY-MM-DD)", s)
}

// ISOWeekLabel returns a label like "2026-W09".
func ISOWeekLabel(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekCount is the number of dates falling into one ISO week.
type WeekCount struct {
	Week  string
	Count int
}

// CountByWeek buckets dates into ISO weeks, oldest week first. Dates that do
// not parse are counted separately as undated.
func CountByWeek(dates []string) (weeks []WeekCount, undated int) {
	totals := map[string]int{}
	for _, d := range dates {
		t, err := ParseDate(d)
		if err != nil {
			undated++
			continue
		}
		totals[ISOWeekLabel(t)]++
	}

	labels := make([]string, 0, len(totals))
	for l := range totals {
		labels = append(labels, l)
	}
	// Labels are zero-padded, so lexical order is chronological.
	sort.Strings(labels)

	weeks = make([]WeekCount, 0, len(labels))
	for _, l := range labels {
		weeks = append(weeks, WeekCount{Week: l, Count: totals[l]})
	}
	return weeks, undated
}
