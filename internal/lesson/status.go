// Package lesson derives the presentation status of a lesson from the wall clock.
// The derived status is independent of the status the journal server stores.
package lesson

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/noah-isme/journal-portal/internal/models"
)

// Status is the time-derived lesson status.
type Status string

const (
	Upcoming  Status = "upcoming"
	Current   Status = "current"
	Completed Status = "completed"
)

// Action is what a teacher view offers for a lesson.
type Action string

const (
	ActionNone           Action = ""
	ActionStart          Action = "start"
	ActionView           Action = "view"
	ActionMarkAttendance Action = "mark_attendance"
)

const dateLayout = "2006-01-02"

// Resolve computes the status of a lesson held on date between startTime and endTime
// ("HH:MM", wall clock in loc). Both bounds are inclusive, so ties resolve to Current.
func Resolve(now time.Time, date, startTime, endTime string, loc *time.Location) (Status, error) {
	start, end, err := Bounds(date, startTime, endTime, loc)
	if err != nil {
		return "", err
	}
	switch {
	case !now.Before(start) && !now.After(end):
		return Current, nil
	case now.After(end):
		return Completed, nil
	default:
		return Upcoming, nil
	}
}

// ResolveInstance applies Resolve to a lesson instance.
func ResolveInstance(now time.Time, l models.LessonInstance, loc *time.Location) (Status, error) {
	return Resolve(now, l.Date, l.StartTime, l.EndTime, loc)
}

// ActionFor maps a derived status to the action a teacher is offered.
func ActionFor(status Status, attendanceMarked bool) Action {
	switch status {
	case Current:
		return ActionStart
	case Upcoming:
		return ActionView
	case Completed:
		if !attendanceMarked {
			return ActionMarkAttendance
		}
	}
	return ActionNone
}

// Bounds returns the start and end instants of a lesson.
func Bounds(date, startTime, endTime string, loc *time.Location) (time.Time, time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	day, err := Day(date, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	sh, sm, err := parseClock(startTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("start time: %w", err)
	}
	eh, em, err := parseClock(endTime)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("end time: %w", err)
	}
	y, m, d := day.Date()
	return time.Date(y, m, d, sh, sm, 0, 0, loc), time.Date(y, m, d, eh, em, 0, 0, loc), nil
}

// Day returns midnight of the lesson's calendar day in loc. A bare date is taken as a
// day in loc; a full timestamp is converted to loc first.
func Day(date string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	date = strings.TrimSpace(date)
	if len(date) == len(dateLayout) {
		return time.ParseInLocation(dateLayout, date, loc)
	}
	ts, err := time.Parse(time.RFC3339Nano, date)
	if err != nil {
		return time.Time{}, fmt.Errorf("lesson date %q: %w", date, err)
	}
	y, m, d := ts.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, loc), nil
}

// DayKey formats the lesson's calendar day as yyyy-MM-dd in loc, or "" if unparseable.
func DayKey(date string, loc *time.Location) string {
	day, err := Day(date, loc)
	if err != nil {
		return ""
	}
	return day.Format(dateLayout)
}

func parseClock(raw string) (int, int, error) {
	parts := strings.Split(strings.TrimSpace(raw), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, fmt.Errorf("%q is not HH:MM", raw)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, 0, fmt.Errorf("%q has an invalid hour", raw)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, 0, fmt.Errorf("%q has an invalid minute", raw)
	}
	// seconds are tolerated and dropped
	if len(parts) == 3 {
		if s, err := strconv.Atoi(parts[2]); err != nil || s < 0 || s > 59 {
			return 0, 0, fmt.Errorf("%q has an invalid second", raw)
		}
	}
	return h, m, nil
}
