// File: services/subscription/occurrences.go
package subscription

import (
	"time"

	"futsal/calendar"
)

// Occurrences enumerates the business dates a weekly subscription covers:
// the first date on or after startDate falling on weeklyDay, then every
// seventh day strictly before the end date. The walk happens on the
// business-local calendar, so the weekday test and the AddDate month
// arithmetic are immune to the UTC offset of the stored instants. Returned
// dates and the exclusive end date are business-midnight UTC.
func Occurrences(cal *calendar.BusinessCalendar, startDate time.Time, weeklyDay, months int) ([]time.Time, time.Time) {
	local := startDate.In(cal.Location())
	end := local.AddDate(0, months, 0)

	first := local
	for int(first.Weekday()) != weeklyDay {
		first = first.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for d := first; d.Before(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d.UTC())
	}
	return dates, end.UTC()
}

// occurrencesBetween re-derives the covered dates of an existing
// subscription from its stored bounds, for idempotent materialization.
func occurrencesBetween(cal *calendar.BusinessCalendar, startDate, endDate time.Time, weeklyDay int) []time.Time {
	local := startDate.In(cal.Location())
	end := endDate.In(cal.Location())

	first := local
	for int(first.Weekday()) != weeklyDay {
		first = first.AddDate(0, 0, 1)
	}

	var dates []time.Time
	for d := first; d.Before(end); d = d.AddDate(0, 0, 7) {
		dates = append(dates, d.UTC())
	}
	return dates
}
