package billing

import (
	"time"

	"github.com/restrohub/api/internal/enum"
)

// Since returns the lower creation-time bound for a bill history filter,
// evaluated against now in now's location. ok is false for empty or
// unrecognised filters, which mean "no bound".
func Since(filter string, now time.Time) (since time.Time, ok bool) {
	switch filter {
	case enum.BillFilterLast7:
		return now.AddDate(0, 0, -7), true
	case enum.BillFilterLast30:
		return now.AddDate(0, 0, -30), true
	case enum.BillFilterLast60:
		return now.AddDate(0, 0, -60), true
	case enum.BillFilterThisWeek:
		today := StartOfDay(now)
		return today.AddDate(0, 0, -int(today.Weekday())), true
	case enum.BillFilterMonth:
		return time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()), true
	case enum.BillFilterYear:
		return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location()), true
	}
	return time.Time{}, false
}

// StartOfDay returns midnight of t's calendar day in t's location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
