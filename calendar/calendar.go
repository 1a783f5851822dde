// Package calendar provides the business-timezone time authority. Every
// "today", "past" and entry-window decision in the system goes through a
// BusinessCalendar so the host timezone never leaks into scheduling logic.
package calendar

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"futsal/models"
)

const dateLayout = "2006-01-02"

var timePattern = regexp.MustCompile(`^([01]?[0-9]|2[0-3]):[0-5][0-9]$`)

// BusinessCalendar converts between wall-clock dates in the configured
// business timezone and the UTC instants persisted in storage. The now
// function is injectable so time-dependent logic stays testable.
type BusinessCalendar struct {
	loc *time.Location
	now func() time.Time
}

// New builds a calendar for the given IANA timezone name.
func New(timezone string) (*BusinessCalendar, error) {
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid business timezone %q: %w", timezone, err)
	}
	return &BusinessCalendar{loc: loc, now: time.Now}, nil
}

// NewFixed builds a calendar whose clock is pinned to the given instant.
func NewFixed(timezone string, at time.Time) (*BusinessCalendar, error) {
	cal, err := New(timezone)
	if err != nil {
		return nil, err
	}
	cal.now = func() time.Time { return at }
	return cal, nil
}

// Location returns the business timezone.
func (c *BusinessCalendar) Location() *time.Location { return c.loc }

// Timezone returns the business timezone name.
func (c *BusinessCalendar) Timezone() string { return c.loc.String() }

// Now returns the current instant expressed in the business timezone.
func (c *BusinessCalendar) Now() time.Time {
	return c.now().In(c.loc)
}

// Today returns the current business date as YYYY-MM-DD.
func (c *BusinessCalendar) Today() string {
	return c.Now().Format(dateLayout)
}

// DateKey renders an instant as its business-timezone calendar date.
func (c *BusinessCalendar) DateKey(t time.Time) string {
	return t.In(c.loc).Format(dateLayout)
}

// MidnightUTC parses a YYYY-MM-DD string and returns the UTC instant of
// midnight of that date as observed in the business timezone. This is the
// canonical stored form for all date fields.
func (c *BusinessCalendar) MidnightUTC(dateStr string) (time.Time, error) {
	d, err := time.ParseInLocation(dateLayout, dateStr, c.loc)
	if err != nil {
		return time.Time{}, models.ErrInvalidDate
	}
	return d.UTC(), nil
}

// TruncateToMidnightUTC snaps an arbitrary instant to business-midnight UTC
// of its business calendar date.
func (c *BusinessCalendar) TruncateToMidnightUTC(t time.Time) time.Time {
	local := t.In(c.loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.loc).UTC()
}

// IsPastDate reports whether the instant's business date is strictly before
// business today.
func (c *BusinessCalendar) IsPastDate(t time.Time) bool {
	return c.DateKey(t) < c.Today()
}

// IsToday reports whether the instant falls on business today.
func (c *BusinessCalendar) IsToday(t time.Time) bool {
	return c.DateKey(t) == c.Today()
}

// Weekday returns the instant's day of week in the business timezone,
// 0 = Sunday through 6 = Saturday.
func (c *BusinessCalendar) Weekday(t time.Time) int {
	return int(t.In(c.loc).Weekday())
}

// NowMinutes returns the current business time as minutes since midnight.
func (c *BusinessCalendar) NowMinutes() int {
	now := c.Now()
	return now.Hour()*60 + now.Minute()
}

// ValidTimeString reports whether s is a well-formed HH:MM 24-hour time.
func ValidTimeString(s string) bool {
	return timePattern.MatchString(s)
}

// TimeToMinutes converts an HH:MM string to minutes since midnight.
// Malformed input yields ErrInvalidTime; values are never clamped.
func TimeToMinutes(s string) (int, error) {
	if !ValidTimeString(s) {
		return 0, models.ErrInvalidTime
	}
	parts := strings.SplitN(s, ":", 2)
	hours, _ := strconv.Atoi(parts[0])
	minutes, _ := strconv.Atoi(parts[1])
	return hours*60 + minutes, nil
}

// CompareTimeStrings returns the signed difference a-b in minutes between two
// HH:MM values after validating both.
func CompareTimeStrings(a, b string) (int, error) {
	am, err := TimeToMinutes(a)
	if err != nil {
		return 0, err
	}
	bm, err := TimeToMinutes(b)
	if err != nil {
		return 0, err
	}
	return am - bm, nil
}
