// Package triage converts inbox captures into typed records and keeps the
// todo and event buckets mirrored: a dated todo shows up on the calendar,
// and a calendar event created directly gets a matching todo.
package triage

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"flowlyfe/internal/export"
	"flowlyfe/internal/extract"
	"flowlyfe/internal/models"
	"flowlyfe/internal/store"
)

// Kind names the bucket a capture can be filed into.
type Kind string

const (
	KindThought Kind = "thought"
	KindTodo    Kind = "todo"
	KindContact Kind = "contact"
	KindEvent   Kind = "event"
)

// ParseKind validates a user-supplied bucket name.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindThought, KindTodo, KindContact, KindEvent:
		return Kind(s), nil
	}
	return "", fmt.Errorf("unknown triage kind %q (want thought, todo, contact or event)", s)
}

// Triager files captures into buckets. The clock is injected so the
// relative-date resolution inside event extraction stays testable.
type Triager struct {
	logger *slog.Logger
	store  *store.Store
	now    func() time.Time
}

// New creates a Triager. A nil clock defaults to time.Now.
func New(logger *slog.Logger, st *store.Store, now func() time.Time) *Triager {
	if now == nil {
		now = time.Now
	}
	return &Triager{logger: logger, store: st, now: now}
}

// File removes an inbox item and converts it into the requested bucket
// record, persisting the result. The extraction itself never fails; only a
// missing item or a failed save produces an error.
func (t *Triager) File(itemID string, kind Kind) error {
	st := t.store.State()

	item, err := st.RemoveItem(itemID)
	if err != nil {
		return err
	}

	switch kind {
	case KindThought:
		st.Thoughts = append([]models.Thought{{
			ID:        uuid.New().String(),
			Content:   item.Content,
			CreatedAt: t.now(),
		}}, st.Thoughts...)

	case KindTodo:
		task := t.taskFromCapture(item.Content)
		t.AddTask(task)

	case KindContact:
		st.Contacts = append([]models.Card{{
			ID:        uuid.New().String(),
			Contact:   extract.ExtractContact(item.Content),
			CreatedAt: t.now(),
		}}, st.Contacts...)

	case KindEvent:
		e := extract.ExtractEvent(item.Content, t.now())
		e.ID = uuid.New().String()
		t.AddEvent(e)

	default:
		// Put the item back rather than lose it.
		st.AddItem(item)
		return fmt.Errorf("unknown triage kind %q", kind)
	}

	t.logger.Info("Filed inbox item.", "id", itemID, "kind", string(kind))
	return t.store.Save()
}

// taskFromCapture builds a todo from capture text, reusing the event
// extractor to pick up a due date and time when the text mentions one.
func (t *Triager) taskFromCapture(content string) models.TodoTask {
	parsed := extract.ExtractEvent(content, t.now())

	task := models.TodoTask{
		ID:   uuid.New().String(),
		Text: content,
		List: models.ListActive,
	}
	if parsed.StartDate != nil {
		task.Text = parsed.Title
		task.DueDate = parsed.StartDate.Format("2006-01-02")
		if h, m, ok := export.Clock(parsed.StartTime); ok {
			task.DueTime = fmt.Sprintf("%02d:%02d", h, m)
		}
	}
	return task
}

// AddTask stores a todo and, when it carries a due date, mirrors it into the
// events bucket under the derived ID "task-<todo id>".
func (t *Triager) AddTask(task models.TodoTask) {
	st := t.store.State()
	st.SetTask(task)
	t.mirrorTask(task)
}

// UpdateTask rewrites a stored todo and cascades the change into its
// mirrored event: the mirror is created, updated or removed depending on
// whether the task still has a due date.
func (t *Triager) UpdateTask(task models.TodoTask) error {
	st := t.store.State()
	if _, err := st.FindTask(task.ID); err != nil {
		return err
	}
	st.SetTask(task)
	t.mirrorTask(task)
	return nil
}

// DeleteTask removes a todo and its mirrored event, if any.
func (t *Triager) DeleteTask(id string) {
	st := t.store.State()
	st.RemoveTask(id)
	st.RemoveEvent("task-" + id)
}

func (t *Triager) mirrorTask(task models.TodoTask) {
	st := t.store.State()
	if task.DueDate == "" {
		st.RemoveEvent("task-" + task.ID)
		return
	}

	e := models.Event{
		ID:         "task-" + task.ID,
		Title:      task.Text,
		StartTime:  task.DueTime,
		Location:   task.Location,
		IsFromTodo: true,
		TodoID:     task.ID,
	}
	if due, err := time.ParseInLocation("2006-01-02", task.DueDate, t.now().Location()); err == nil {
		e.StartDate = &due
	}
	st.SetEvent(e)
}

// AddEvent stores an event and, unless it came from a todo, mirrors it into
// the todos bucket under the derived ID "event-<event id>".
func (t *Triager) AddEvent(e models.Event) {
	st := t.store.State()

	if e.IsFromTodo {
		st.SetEvent(e)
		return
	}
	task := models.TodoTask{
		ID:       "event-" + e.ID,
		Text:     e.Title,
		List:     models.ListActive,
		Location: e.Location,
	}
	if e.StartDate != nil {
		task.DueDate = e.StartDate.Format("2006-01-02")
	}
	if h, m, ok := export.Clock(e.StartTime); ok {
		task.DueTime = fmt.Sprintf("%02d:%02d", h, m)
	}
	st.SetTask(task)

	// Record the link so later event edits cascade into the todo.
	e.TodoID = task.ID
	st.SetEvent(e)
}

// UpdateEvent rewrites a stored event and cascades title/date/time changes
// into the originating todo when the event mirrors one.
func (t *Triager) UpdateEvent(e models.Event) error {
	st := t.store.State()
	if _, err := st.FindEvent(e.ID); err != nil {
		return err
	}
	st.SetEvent(e)

	if e.TodoID == "" {
		return nil
	}
	task, err := st.FindTask(e.TodoID)
	if err != nil {
		return nil
	}
	task.Text = e.Title
	task.Location = e.Location
	task.DueDate = ""
	task.DueTime = ""
	if e.StartDate != nil {
		task.DueDate = e.StartDate.Format("2006-01-02")
	}
	if h, m, ok := export.Clock(e.StartTime); ok {
		task.DueTime = fmt.Sprintf("%02d:%02d", h, m)
	}
	st.SetTask(task)
	return nil
}

// DeleteEvent removes an event; events that spawned a mirrored todo take it
// along, while events mirrored from a todo leave the todo in place.
func (t *Triager) DeleteEvent(id string) {
	st := t.store.State()
	e, err := st.FindEvent(id)
	st.RemoveEvent(id)
	if err == nil && !e.IsFromTodo {
		st.RemoveTask("event-" + id)
	}
}
