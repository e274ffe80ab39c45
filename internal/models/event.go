package models

import "time"

// Event represents a calendar event triaged out of a capture.
//
// StartDate is nil when no recognizable date was found in the text; callers
// are expected to default it to the current day. StartTime and EndTime hold
// the raw matched time strings (e.g. "3pm", "15:30"), not normalized clock
// values; normalization happens in the formatters.
type Event struct {
	ID          string     `json:"id"`
	UID         string     `json:"uid,omitempty"` // iCalendar UID, assigned when pushing to external calendars
	Title       string     `json:"title"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	StartTime   string     `json:"start_time,omitempty"`
	EndTime     string     `json:"end_time,omitempty"`
	Description string     `json:"description,omitempty"`
	Location    string     `json:"location,omitempty"`

	// Mirroring metadata: events created from a dated todo carry the todo's
	// ID so edits and deletes cascade both ways.
	IsFromTodo bool   `json:"is_from_todo,omitempty"`
	TodoID     string `json:"todo_id,omitempty"`
}

// TodoTask is a todo-bucket record. Tasks carrying a due date are mirrored
// into the events bucket and kept in sync by the triage layer.
type TodoTask struct {
	ID        string `json:"id"`
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
	List      string `json:"list,omitempty"`     // "active", "someday" or "awaiting"
	DueDate   string `json:"due_date,omitempty"` // YYYY-MM-DD
	DueTime   string `json:"due_time,omitempty"` // HH:MM
	Location  string `json:"location,omitempty"`
}

// Todo sub-list names.
const (
	ListActive   = "active"
	ListSomeday  = "someday"
	ListAwaiting = "awaiting"
)
