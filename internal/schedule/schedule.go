// SPDX-License-Identifier: MPL-2.0

// Package schedule tracks semester dates and due-date arithmetic.
//
// A semester is anchored on the Monday of its first week; all week and
// due-date computations are offsets from that anchor. Due timestamps are
// rendered in the Canvas-compatible local form "2006-01-02T15:04:05".
package schedule

import (
	"fmt"
	"strings"
	"time"

	"canvasctl/internal/naming"
)

// DefaultDueTime is the fallback time-of-day for due dates when neither the
// semester nor the caller specifies one.
const DefaultDueTime = "23:59:00"

// Day identifies a day within a semester week. Monday is 0, matching the
// week-offset arithmetic in WeekAndDay.
type Day int

// Days of the week, Monday first.
const (
	Monday Day = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var dayNames = map[string]Day{
	"monday":    Monday,
	"tuesday":   Tuesday,
	"wednesday": Wednesday,
	"thursday":  Thursday,
	"friday":    Friday,
	"saturday":  Saturday,
	"sunday":    Sunday,
}

// ParseDay converts a day name ("Monday", "friday") to a Day.
func ParseDay(s string) (Day, error) {
	d, ok := dayNames[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("unknown weekday %q", s)
	}
	return d, nil
}

// String returns the English day name.
func (d Day) String() string {
	names := [...]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}
	if d < Monday || d > Sunday {
		return fmt.Sprintf("Day(%d)", int(d))
	}
	return names[d]
}

// Semester anchors a semester's start date and default due time.
// Construct via NewSemester so the Monday invariant holds.
type Semester struct {
	// Start is the Monday of the semester's first week.
	Start time.Time

	// DueTime is the default due time-of-day in "HH:MM:SS" form.
	DueTime string
}

// NewSemester builds a Semester from any date in the first week. The start
// is normalized to that week's Monday; dueTime defaults to DefaultDueTime
// when empty.
func NewSemester(start time.Time, dueTime string) Semester {
	if dueTime == "" {
		dueTime = DefaultDueTime
	}
	day := naming.WeekMonday(start)
	return Semester{
		Start:   time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, start.Location()),
		DueTime: dueTime,
	}
}

// WeekStart returns the Monday of the given semester week. Weeks are
// numbered from 1.
func (s Semester) WeekStart(week int) time.Time {
	return s.Start.AddDate(0, 0, (week-1)*7)
}

// WeekAndDay returns the date of the given week and day.
func (s Semester) WeekAndDay(week int, day Day) time.Time {
	return s.Start.AddDate(0, 0, (week-1)*7+int(day))
}

// DueDay renders the due timestamp for the given week and day. An empty
// timeOfDay falls back to the semester default.
func (s Semester) DueDay(week int, day Day, timeOfDay string) string {
	if timeOfDay == "" {
		timeOfDay = s.DueTime
	}
	date := s.WeekAndDay(week, day)
	return fmt.Sprintf("%sT%s", date.Format("2006-01-02"), timeOfDay)
}

// DueDate renders a due timestamp from a "mm-dd" or "mm/dd" date, with the
// year inherited from the semester start. An empty timeOfDay falls back to
// the semester default.
func (s Semester) DueDate(monthDay, timeOfDay string) string {
	if timeOfDay == "" {
		timeOfDay = s.DueTime
	}
	monthDay = strings.ReplaceAll(monthDay, "/", "-")
	return fmt.Sprintf("%d-%sT%s", s.Start.Year(), monthDay, timeOfDay)
}
