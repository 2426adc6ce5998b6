// Package dateparse resolves natural-language date phrases against a
// reference "today". It is a fixed, ordered set of heuristics, not a
// general NLP parser: the same text and reference time always produce
// the same result.
package dateparse

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Tiliavir/eventcal/internal/timeutil"
)

// Kind tags which rule produced a result.
type Kind string

const (
	KindKeyword     Kind = "keyword"
	KindWeekday     Kind = "weekday"
	KindNumericDate Kind = "numeric-date"
	KindMonthName   Kind = "month-name"
	KindNone        Kind = "none"
)

// Result is a resolved date. Matched distinguishes an explicit "today"
// from the fallback applied when no rule fired.
type Result struct {
	Date    time.Time
	Matched bool
	Rule    Kind
}

var (
	// The two separator forms are spelled out so mixed separators and
	// odd-width years never match.
	reNumericDate = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{4}|\d{2})\b|\b(\d{1,2})-(\d{1,2})-(\d{4}|\d{2})\b`)
	reMonthDay    = regexp.MustCompile(`(january|february|march|april|may|june|july|august|september|october|november|december)\s+(\d{1,2})(?:st|nd|rd|th)?`)
	reDayMonth    = regexp.MustCompile(`(\d{1,2})(?:st|nd|rd|th)?\s+(?:of\s+)?(january|february|march|april|may|june|july|august|september|october|november|december)`)
)

var monthsByName = map[string]time.Month{
	"january": time.January, "february": time.February, "march": time.March,
	"april": time.April, "may": time.May, "june": time.June,
	"july": time.July, "august": time.August, "september": time.September,
	"october": time.October, "november": time.November, "december": time.December,
}

var weekdaysByName = []struct {
	name string
	day  time.Weekday
}{
	{"sunday", time.Sunday},
	{"monday", time.Monday},
	{"tuesday", time.Tuesday},
	{"wednesday", time.Wednesday},
	{"thursday", time.Thursday},
	{"friday", time.Friday},
	{"saturday", time.Saturday},
}

// rule is one heuristic. Rules are evaluated in a fixed order and the
// first match wins.
type rule struct {
	kind  Kind
	apply func(text string, now time.Time) (time.Time, bool)
}

var rules = []rule{
	{KindKeyword, matchKeyword},
	{KindWeekday, matchWeekday},
	{KindNumericDate, matchNumericDate},
	{KindMonthName, matchMonthName},
}

// Parse resolves text to a date relative to now. When no rule matches,
// the result is today with Matched=false.
func Parse(text string, now time.Time) Result {
	lower := strings.ToLower(strings.TrimSpace(text))

	for _, r := range rules {
		if date, ok := r.apply(lower, now); ok {
			return Result{Date: date, Matched: true, Rule: r.kind}
		}
	}
	return Result{Date: timeutil.StartOfDay(now), Matched: false, Rule: KindNone}
}

func matchKeyword(text string, now time.Time) (time.Time, bool) {
	today := timeutil.StartOfDay(now)
	switch {
	case strings.Contains(text, "today"):
		return today, true
	case strings.Contains(text, "tomorrow"):
		return today.AddDate(0, 0, 1), true
	case strings.Contains(text, "next week"):
		return today.AddDate(0, 0, 7), true
	}
	return time.Time{}, false
}

func matchWeekday(text string, now time.Time) (time.Time, bool) {
	for _, wd := range weekdaysByName {
		if !strings.Contains(text, wd.name) {
			continue
		}
		date := timeutil.NextWeekday(now, wd.day)
		// "next monday" means the Monday after the nearest one, even
		// when the bare weekday already lands in the future.
		if strings.Contains(text, "next") {
			date = date.AddDate(0, 0, 7)
		}
		return date, true
	}
	return time.Time{}, false
}

func matchNumericDate(text string, _ time.Time) (time.Time, bool) {
	m := reNumericDate.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	// Groups 1-3 hold the slash form, 4-6 the dash form.
	parts := m[1:4]
	if m[1] == "" {
		parts = m[4:7]
	}
	month, _ := strconv.Atoi(parts[0])
	day, _ := strconv.Atoi(parts[1])
	year, _ := strconv.Atoi(parts[2])
	if year < 100 {
		year += 2000
	}
	return buildDate(year, time.Month(month), day)
}

func matchMonthName(text string, now time.Time) (time.Time, bool) {
	if m := reMonthDay.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[2])
		return buildDate(now.Year(), monthsByName[m[1]], day)
	}
	if m := reDayMonth.FindStringSubmatch(text); m != nil {
		day, _ := strconv.Atoi(m[1])
		return buildDate(now.Year(), monthsByName[m[2]], day)
	}
	return time.Time{}, false
}

// buildDate constructs a date and rejects values time.Date would have
// normalized away (e.g. 13/45), so an impossible date is a non-match
// rather than a rolled-over one.
func buildDate(year int, month time.Month, day int) (time.Time, bool) {
	t := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
	if t.Year() != year || t.Month() != month || t.Day() != day {
		return time.Time{}, false
	}
	return t, true
}
