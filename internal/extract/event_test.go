package extract

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// monday is the reference "now" for relative-date tests: Mon Jan 1 2024.
var monday = time.Date(2024, time.January, 1, 10, 30, 0, 0, time.UTC)

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func TestExtractEvent(t *testing.T) {
	tests := []struct {
		name      string
		text      string
		wantTitle string
		wantDate  *time.Time
		wantStart string
		wantEnd   string
		wantDesc  string
	}{
		{
			name:      "tomorrow with time range",
			text:      "Lunch tomorrow 1pm-2pm",
			wantTitle: "Lunch",
			wantDate:  ptr(day(2024, time.January, 2)),
			wantStart: "1pm",
			wantEnd:   "2pm",
		},
		{
			name:      "weekday with single time",
			text:      "Standup friday 9am",
			wantTitle: "Standup",
			wantDate:  ptr(day(2024, time.January, 5)),
			wantStart: "9am",
		},
		{
			name:      "weekday with ordinal overrides day of month",
			text:      "Dentist friday the 10th",
			wantTitle: "Dentist",
			wantDate:  ptr(day(2024, time.January, 10)),
		},
		{
			name:      "today",
			text:      "Call mom today",
			wantTitle: "Call mom",
			wantDate:  ptr(day(2024, time.January, 1)),
		},
		{
			name:      "same weekday resolves a full week out",
			text:      "Retro monday",
			wantTitle: "Retro",
			wantDate:  ptr(day(2024, time.January, 8)),
		},
		{
			name:      "slash date with two digit year",
			text:      "Party 3/15/24",
			wantTitle: "Party",
			wantDate:  ptr(day(2024, time.March, 15)),
		},
		{
			name:      "slash date with four digit year",
			text:      "Launch 6/1/2025",
			wantTitle: "Launch",
			wantDate:  ptr(day(2025, time.June, 1)),
		},
		{
			name:      "month name and day",
			text:      "Review mar 3",
			wantTitle: "Review",
			wantDate:  ptr(day(2024, time.March, 3)),
		},
		{
			name:      "relative term wins over numeric date",
			text:      "Sync tomorrow re 3/15/24 planning",
			wantTitle: "Sync re planning",
			wantDate:  ptr(day(2024, time.January, 2)),
		},
		{
			name:      "24 hour time token",
			text:      "Dinner tomorrow 18:30",
			wantTitle: "Dinner",
			wantDate:  ptr(day(2024, time.January, 2)),
			wantStart: "18:30",
		},
		{
			name:      "two standalone times become start and end",
			text:      "Workshop friday 9am to 11am",
			wantTitle: "Workshop to",
			wantDate:  ptr(day(2024, time.January, 5)),
			wantStart: "9am",
			wantEnd:   "11am",
		},
		{
			name:      "bare number is not a time",
			text:      "Order 5 chairs",
			wantTitle: "Order 5 chairs",
		},
		{
			name:      "no date or time",
			text:      "Plan the offsite",
			wantTitle: "Plan the offsite",
		},
		{
			name:      "second line becomes description",
			text:      "Lunch tomorrow 1pm-2pm\nwith Sam\nat the usual place",
			wantTitle: "Lunch",
			wantDate:  ptr(day(2024, time.January, 2)),
			wantStart: "1pm",
			wantEnd:   "2pm",
			wantDesc:  "with Sam\nat the usual place",
		},
		{
			name: "empty input",
			text: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := ExtractEvent(tt.text, monday)

			assert.Equal(t, tt.wantTitle, e.Title)
			assert.Equal(t, tt.wantStart, e.StartTime)
			assert.Equal(t, tt.wantEnd, e.EndTime)
			assert.Equal(t, tt.wantDesc, e.Description)

			if tt.wantDate == nil {
				assert.Nil(t, e.StartDate)
			} else {
				require.NotNil(t, e.StartDate)
				assert.Equal(t, *tt.wantDate, *e.StartDate)
			}
		})
	}
}

func TestExtractEventDateIsMidnight(t *testing.T) {
	e := ExtractEvent("Lunch tomorrow 1pm", monday)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, 0, e.StartDate.Hour())
	assert.Equal(t, 0, e.StartDate.Minute())
}

func TestNextWeekday(t *testing.T) {
	// From Monday Jan 1: each target lands within the next seven days and
	// never on the reference day itself.
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		got := nextWeekday(monday, wd)
		assert.Equal(t, wd, got.Weekday())
		assert.True(t, got.After(monday.Truncate(24*time.Hour)))
		assert.LessOrEqual(t, got.Sub(day(2024, time.January, 1)), 7*24*time.Hour)
	}
}

func ptr(t time.Time) *time.Time { return &t }
