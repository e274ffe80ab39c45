package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/emersion/go-ical"

	"flowlyfe/internal/models"
)

// ICS encodes a triaged event as a standalone iCalendar document, usable
// both for file export and as the payload for a CalDAV push.
func ICS(e models.Event, fallback time.Time) (string, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//flowlyfe//EN")
	cal.Children = append(cal.Children, toVEvent(e, fallback))

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return "", fmt.Errorf("failed to encode event to iCal format: %w", err)
	}
	return buf.String(), nil
}

// toVEvent converts an event record to a VEVENT component. The UID must be
// set by the caller before pushing anywhere that deduplicates by UID.
func toVEvent(e models.Event, fallback time.Time) *ical.Component {
	start, end := ResolveSpan(e, fallback)

	title := e.Title
	if title == "" {
		title = "New Event"
	}

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, e.UID)
	ve.Props.SetText(ical.PropSummary, title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now().UTC())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end)

	if e.Description != "" {
		ve.Props.SetText(ical.PropDescription, e.Description)
	}
	if e.Location != "" {
		ve.Props.SetText(ical.PropLocation, e.Location)
	}
	return ve
}
