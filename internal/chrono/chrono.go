// Package chrono orders records by the date representations the backend
// sends: ISO-like timestamps, "dd-mm-yyyy hh:mm:ss" timestamps and
// "M/YYYY" period labels.
package chrono

import (
	"cmp"
	"slices"
	"strconv"
	"strings"
	"time"
)

// Layout is the backend's custom timestamp layout.
const Layout = "02-01-2006 15:04:05"

var isoLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// Period is a month of a year, as found in "M/YYYY" labels.
type Period struct {
	Year  int
	Month int
}

// ParsePeriod parses a "M/YYYY" label.
func ParsePeriod(label string) (Period, bool) {
	month, year, ok := strings.Cut(strings.TrimSpace(label), "/")
	if !ok {
		return Period{}, false
	}

	m, err := strconv.Atoi(month)
	if err != nil {
		return Period{}, false
	}

	y, err := strconv.Atoi(year)
	if err != nil {
		return Period{}, false
	}

	return Period{Year: y, Month: m}, true
}

// Compare orders periods by year, then month.
func (p Period) Compare(other Period) int {
	if c := cmp.Compare(p.Year, other.Year); c != 0 {
		return c
	}

	return cmp.Compare(p.Month, other.Month)
}

// String formats the period back into its "M/YYYY" label.
func (p Period) String() string {
	return strconv.Itoa(p.Month) + "/" + strconv.Itoa(p.Year)
}

// ComparePeriods compares two "M/YYYY" labels ascending. A label that does
// not parse compares equal to anything.
func ComparePeriods(a, b string) int {
	pa, okA := ParsePeriod(a)
	pb, okB := ParsePeriod(b)

	if !okA || !okB {
		return 0
	}

	return pa.Compare(pb)
}

// ParseTimestamp reads an ISO-like timestamp or one in the custom
// "dd-mm-yyyy hh:mm:ss" format. It reports false when neither applies.
func ParseTimestamp(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}

	return parseCustom(s)
}

func parseCustom(s string) (time.Time, bool) {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '-' || r == ' ' || r == ':'
	})
	if len(parts) != 6 {
		return time.Time{}, false
	}

	var n [6]int

	for i, p := range parts {
		v, err := strconv.Atoi(p)
		if err != nil {
			return time.Time{}, false
		}

		n[i] = v
	}

	day, month, year, hour, minute, second := n[0], n[1], n[2], n[3], n[4], n[5]

	return time.Date(year, time.Month(month), day, hour, minute, second, 0, time.UTC), true
}

// CompareTimestamps compares two timestamps ascending. If either side is
// unorderable the result is 0, so a malformed value never moves in a stable
// sort.
func CompareTimestamps(a, b string) int {
	ta, okA := ParseTimestamp(a)
	tb, okB := ParseTimestamp(b)

	if !okA || !okB {
		return 0
	}

	return ta.Compare(tb)
}

// SortNewestFirst sorts items in place, most recent first.
func SortNewestFirst[T any](items []T, date func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return CompareTimestamps(date(b), date(a))
	})
}

// SortPeriodsAscending sorts items in place by their "M/YYYY" label.
func SortPeriodsAscending[T any](items []T, label func(T) string) {
	slices.SortStableFunc(items, func(a, b T) int {
		return ComparePeriods(label(a), label(b))
	})
}
