package export

import (
	"fmt"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"flowlyfe/internal/models"
)

const renderURL = "https://calendar.google.com/calendar/render"

// clockRe parses the raw time strings the extractor produces: H[:MM][am|pm].
var clockRe = regexp.MustCompile(`(?i)(\d{1,2})(?::(\d{2}))?\s*(am|pm)?`)

// GoogleCalendarLink builds a prefilled event-creation URL for the event.
//
// The fallback time supplies the date when the extractor resolved none, and
// its clock hour when no start time was matched. A missing end time defaults
// to one hour after the start; an end hour past 23 is deliberately not
// wrapped to the next day, matching the raw arithmetic callers rely on.
func GoogleCalendarLink(e models.Event, fallback time.Time) string {
	date := fallback
	if e.StartDate != nil {
		date = *e.StartDate
	}

	startHour, startMin := fallback.Hour(), 0
	if h, m, ok := Clock(e.StartTime); ok {
		startHour, startMin = h, m
	}
	endHour, endMin := startHour+1, startMin
	if h, m, ok := Clock(e.EndTime); ok {
		endHour, endMin = h, m
	}

	title := e.Title
	if title == "" {
		title = "New Event"
	}

	v := url.Values{}
	v.Set("action", "TEMPLATE")
	v.Set("text", title)
	v.Set("dates", stamp(date, startHour, startMin)+"/"+stamp(date, endHour, endMin))
	v.Set("details", e.Description)
	return renderURL + "?" + v.Encode()
}

// Clock converts a raw matched time string to a 24-hour clock value.
// "pm" adds 12 unless the hour already is 12; "12am" maps to hour 0.
func Clock(s string) (hour, min int, ok bool) {
	if s == "" {
		return 0, 0, false
	}
	m := clockRe.FindStringSubmatch(s)
	if m == nil {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, 0, false
	}
	if m[2] != "" {
		min, _ = strconv.Atoi(m[2])
	}
	switch strings.ToLower(m[3]) {
	case "pm":
		if hour != 12 {
			hour += 12
		}
	case "am":
		if hour == 12 {
			hour = 0
		}
	}
	return hour, min, true
}

// stamp formats a date plus clock values as YYYYMMDDTHHMMSS. The hour is
// printed as given, so an unwrapped 24 comes out as "T240000".
func stamp(date time.Time, hour, min int) string {
	return fmt.Sprintf("%04d%02d%02dT%02d%02d00", date.Year(), int(date.Month()), date.Day(), hour, min)
}

// ResolveSpan converts the raw extracted fields into concrete start/end
// instants for exports that need real timestamps (iCalendar, API pushes).
// Unlike the calendar link, time.Date arithmetic normalizes an end hour past
// midnight into the following day.
func ResolveSpan(e models.Event, fallback time.Time) (start, end time.Time) {
	date := fallback
	if e.StartDate != nil {
		date = *e.StartDate
	}

	startHour, startMin := fallback.Hour(), 0
	if h, m, ok := Clock(e.StartTime); ok {
		startHour, startMin = h, m
	}
	endHour, endMin := startHour+1, startMin
	if h, m, ok := Clock(e.EndTime); ok {
		endHour, endMin = h, m
	}

	loc := date.Location()
	start = time.Date(date.Year(), date.Month(), date.Day(), startHour, startMin, 0, 0, loc)
	end = time.Date(date.Year(), date.Month(), date.Day(), endHour, endMin, 0, 0, loc)
	return start, end
}
