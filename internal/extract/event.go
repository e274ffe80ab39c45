package extract

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"flowlyfe/internal/models"
)

var (
	// H[:MM][am|pm] - H[:MM][am|pm], e.g. "1pm-2pm" or "9:00 - 10:30".
	timeRangeRe = regexp.MustCompile(`(?i)\b(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\s*-\s*(\d{1,2}(?::\d{2})?\s*(?:am|pm)?)\b`)

	// A standalone time needs either minutes or a meridiem; a bare number is
	// not a time.
	timeTokenRe = regexp.MustCompile(`(?i)\b\d{1,2}:\d{2}\s*(?:am|pm)?\b|\b\d{1,2}\s*(?:am|pm)\b`)

	weekdayRe        = regexp.MustCompile(`(?i)\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\b`)
	weekdayOrdinalRe = regexp.MustCompile(`(?i)\b(sunday|monday|tuesday|wednesday|thursday|friday|saturday)\s+(?:the\s+)?(\d{1,2})(?:st|nd|rd|th)\b`)
	ordinalRe        = regexp.MustCompile(`(?i)\b(?:the\s+)?\d{1,2}(?:st|nd|rd|th)\b`)
	todayRe          = regexp.MustCompile(`(?i)\btoday\b`)
	tomorrowRe       = regexp.MustCompile(`(?i)\btomorrow\b`)
	slashDateRe      = regexp.MustCompile(`\b(\d{1,2})/(\d{1,2})/(\d{2,4})\b`)
	monthDayRe       = regexp.MustCompile(`(?i)\b(jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t(?:ember)?)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s+(\d{1,2})\b`)
)

var weekdays = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

// dateMatcher tries to resolve a calendar date from the text. Matchers are
// independent; precedence lives entirely in the order of dateMatchers.
type dateMatcher func(text string, now time.Time) (time.Time, bool)

// dateMatchers is tried in order and the first success wins. The order
// matters: "friday the 10th" must be claimed by the weekday+ordinal matcher
// before the bare weekday matcher sees "friday", and the numeric/month-name
// forms only apply when no relative term resolved anything.
var dateMatchers = []dateMatcher{
	matchWeekdayOrdinal,
	matchToday,
	matchTomorrow,
	matchWeekday,
	matchSlashDate,
	matchMonthDay,
}

// ExtractEvent parses freeform text into a calendar event record.
//
// The current time is passed in explicitly so relative terms ("today",
// "tomorrow", weekday names) resolve deterministically; callers outside of
// tests pass time.Now(). The first line of the text carries the title and any
// date/time phrases; remaining lines become the description.
func ExtractEvent(text string, now time.Time) models.Event {
	var e models.Event

	// Times first: the title cleanup below needs the time span identified
	// regardless of which date rule fires.
	e.StartTime, e.EndTime = extractTimes(text)

	for _, match := range dateMatchers {
		if d, ok := match(text, now); ok {
			d = dateOnly(d)
			e.StartDate = &d
			break
		}
	}

	lines := strings.Split(text, "\n")
	e.Title = cleanTitle(lines[0])
	if len(lines) > 1 {
		e.Description = strings.TrimSpace(strings.Join(lines[1:], "\n"))
	}
	return e
}

// extractTimes returns the raw start/end time strings. A time range wins
// over standalone tokens; with neither, both stay empty.
func extractTimes(text string) (start, end string) {
	if m := timeRangeRe.FindStringSubmatch(text); m != nil {
		return m[1], m[2]
	}
	tokens := timeTokenRe.FindAllString(text, 2)
	if len(tokens) > 0 {
		start = tokens[0]
	}
	if len(tokens) > 1 {
		end = tokens[1]
	}
	return start, end
}

// matchWeekdayOrdinal handles "friday the 10th": resolve the weekday to its
// next occurrence, then override the day-of-month with the explicit number.
func matchWeekdayOrdinal(text string, now time.Time) (time.Time, bool) {
	m := weekdayOrdinalRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	d := nextWeekday(now, weekdays[strings.ToLower(m[1])])
	day, err := strconv.Atoi(m[2])
	if err != nil {
		return d, true
	}
	return time.Date(d.Year(), d.Month(), day, 0, 0, 0, 0, d.Location()), true
}

func matchToday(text string, now time.Time) (time.Time, bool) {
	return now, todayRe.MatchString(text)
}

func matchTomorrow(text string, now time.Time) (time.Time, bool) {
	return now.AddDate(0, 0, 1), tomorrowRe.MatchString(text)
}

func matchWeekday(text string, now time.Time) (time.Time, bool) {
	m := weekdayRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	return nextWeekday(now, weekdays[strings.ToLower(m[1])]), true
}

func matchSlashDate(text string, now time.Time) (time.Time, bool) {
	m := slashDateRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month, _ := strconv.Atoi(m[1])
	day, _ := strconv.Atoi(m[2])
	year, _ := strconv.Atoi(m[3])
	if year < 100 {
		year += 2000
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, now.Location()), true
}

func matchMonthDay(text string, now time.Time) (time.Time, bool) {
	m := monthDayRe.FindStringSubmatch(text)
	if m == nil {
		return time.Time{}, false
	}
	month := monthFromName(m[1])
	day, _ := strconv.Atoi(m[2])
	return time.Date(now.Year(), month, day, 0, 0, 0, 0, now.Location()), true
}

// nextWeekday returns the next occurrence of wd strictly after now's date:
// when today already is that weekday the result is a full week out, never
// today.
func nextWeekday(now time.Time, wd time.Weekday) time.Time {
	days := (int(wd) - int(now.Weekday()) + 7) % 7
	if days == 0 {
		days = 7
	}
	return dateOnly(now).AddDate(0, 0, days)
}

func monthFromName(name string) time.Month {
	switch strings.ToLower(name)[:3] {
	case "jan":
		return time.January
	case "feb":
		return time.February
	case "mar":
		return time.March
	case "apr":
		return time.April
	case "may":
		return time.May
	case "jun":
		return time.June
	case "jul":
		return time.July
	case "aug":
		return time.August
	case "sep":
		return time.September
	case "oct":
		return time.October
	case "nov":
		return time.November
	default:
		return time.December
	}
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// cleanTitle strips every date and time phrase from the first line and
// collapses the leftover whitespace.
func cleanTitle(line string) string {
	for _, re := range []*regexp.Regexp{
		timeRangeRe,
		timeTokenRe,
		weekdayOrdinalRe,
		weekdayRe,
		ordinalRe,
		todayRe,
		tomorrowRe,
		monthDayRe,
		slashDateRe,
	} {
		line = re.ReplaceAllString(line, " ")
	}
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(line, " "))
}
