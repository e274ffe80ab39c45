package triage

import (
	"io"
	"log/slog"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlyfe/internal/models"
	"flowlyfe/internal/store"
)

// monday is Mon Jan 1 2024, the fixed clock for relative-date resolution.
var monday = time.Date(2024, time.January, 1, 10, 0, 0, 0, time.UTC)

func newTestTriager(t *testing.T) (*Triager, *store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(logger, filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return New(logger, st, func() time.Time { return monday }), st
}

func capture(st *store.Store, id, content string) {
	st.State().AddItem(models.Item{ID: id, Content: content, CreatedAt: monday})
}

func TestParseKind(t *testing.T) {
	for _, valid := range []string{"thought", "todo", "contact", "event"} {
		kind, err := ParseKind(valid)
		require.NoError(t, err)
		assert.Equal(t, Kind(valid), kind)
	}
	_, err := ParseKind("note")
	assert.Error(t, err)
}

func TestFileThought(t *testing.T) {
	tr, st := newTestTriager(t)
	capture(st, "i1", "what if the garden had a pond")

	require.NoError(t, tr.File("i1", KindThought))

	assert.Empty(t, st.State().Inbox)
	require.Len(t, st.State().Thoughts, 1)
	assert.Equal(t, "what if the garden had a pond", st.State().Thoughts[0].Content)
}

func TestFileContact(t *testing.T) {
	tr, st := newTestTriager(t)
	capture(st, "i1", "Jane doe 555-1234 jane@example.com meet friday")

	require.NoError(t, tr.File("i1", KindContact))

	require.Len(t, st.State().Contacts, 1)
	c := st.State().Contacts[0].Contact
	assert.Equal(t, "Jane", c.FirstName)
	assert.Equal(t, "Doe", c.LastName)
	assert.Equal(t, "555-1234", c.Phone)
	assert.Equal(t, "jane@example.com", c.Email)
	assert.Equal(t, "meet friday", c.Notes)
}

func TestFileEventMirrorsIntoTodos(t *testing.T) {
	tr, st := newTestTriager(t)
	capture(st, "i1", "Lunch tomorrow 1pm-2pm")

	require.NoError(t, tr.File("i1", KindEvent))

	require.Len(t, st.State().Events, 1)
	e := st.State().Events[0]
	assert.Equal(t, "Lunch", e.Title)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC), *e.StartDate)

	// A directly filed event grows a companion todo.
	task, err := st.State().FindTask("event-" + e.ID)
	require.NoError(t, err)
	assert.Equal(t, "Lunch", task.Text)
	assert.Equal(t, "2024-01-02", task.DueDate)
	assert.Equal(t, "13:00", task.DueTime)
}

func TestFileTodoWithDueDateMirrorsIntoEvents(t *testing.T) {
	tr, st := newTestTriager(t)
	capture(st, "i1", "Dentist friday 9am")

	require.NoError(t, tr.File("i1", KindTodo))

	require.Len(t, st.State().Todos, 1)
	task := st.State().Todos[0]
	assert.Equal(t, "Dentist", task.Text)
	assert.Equal(t, models.ListActive, task.List)
	assert.Equal(t, "2024-01-05", task.DueDate)
	assert.Equal(t, "09:00", task.DueTime)

	e, err := st.State().FindEvent("task-" + task.ID)
	require.NoError(t, err)
	assert.True(t, e.IsFromTodo)
	assert.Equal(t, task.ID, e.TodoID)
	assert.Equal(t, "Dentist", e.Title)
}

func TestFileTodoWithoutDateKeepsFullText(t *testing.T) {
	tr, st := newTestTriager(t)
	capture(st, "i1", "buy milk")

	require.NoError(t, tr.File("i1", KindTodo))

	require.Len(t, st.State().Todos, 1)
	task := st.State().Todos[0]
	assert.Equal(t, "buy milk", task.Text)
	assert.Empty(t, task.DueDate)
	assert.Empty(t, st.State().Events)
}

func TestFileMissingItem(t *testing.T) {
	tr, _ := newTestTriager(t)
	assert.Error(t, tr.File("nope", KindThought))
}

func TestUpdateTaskCascades(t *testing.T) {
	tr, st := newTestTriager(t)

	task := models.TodoTask{ID: "t1", Text: "review budget", List: models.ListActive, DueDate: "2024-01-10"}
	tr.AddTask(task)
	_, err := st.State().FindEvent("task-t1")
	require.NoError(t, err)

	// Clearing the due date removes the mirror.
	task.DueDate = ""
	require.NoError(t, tr.UpdateTask(task))
	_, err = st.State().FindEvent("task-t1")
	assert.Error(t, err)

	// Restoring it brings the mirror back.
	task.DueDate = "2024-01-12"
	require.NoError(t, tr.UpdateTask(task))
	e, err := st.State().FindEvent("task-t1")
	require.NoError(t, err)
	require.NotNil(t, e.StartDate)
	assert.Equal(t, "2024-01-12", e.StartDate.Format("2006-01-02"))
}

func TestDeleteTaskRemovesMirror(t *testing.T) {
	tr, st := newTestTriager(t)
	tr.AddTask(models.TodoTask{ID: "t1", Text: "pay rent", DueDate: "2024-01-31"})

	tr.DeleteTask("t1")

	_, err := st.State().FindTask("t1")
	assert.Error(t, err)
	_, err = st.State().FindEvent("task-t1")
	assert.Error(t, err)
}

func TestUpdateEventCascadesToTodo(t *testing.T) {
	tr, st := newTestTriager(t)
	due := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC)
	tr.AddEvent(models.Event{ID: "e1", Title: "Lunch", StartDate: &due, StartTime: "1pm"})

	e, err := st.State().FindEvent("e1")
	require.NoError(t, err)
	assert.Equal(t, "event-e1", e.TodoID)
	e.Title = "Long lunch"
	e.StartTime = "2pm"
	require.NoError(t, tr.UpdateEvent(e))

	task, err := st.State().FindTask("event-e1")
	require.NoError(t, err)
	assert.Equal(t, "Long lunch", task.Text)
	assert.Equal(t, "14:00", task.DueTime)
}

func TestDeleteEventTakesMirroredTodoAlong(t *testing.T) {
	tr, st := newTestTriager(t)
	tr.AddEvent(models.Event{ID: "e1", Title: "Lunch"})
	_, err := st.State().FindTask("event-e1")
	require.NoError(t, err)

	tr.DeleteEvent("e1")

	_, err = st.State().FindTask("event-e1")
	assert.Error(t, err)
}

func TestDeleteMirroredEventLeavesTodoInPlace(t *testing.T) {
	tr, st := newTestTriager(t)
	tr.AddTask(models.TodoTask{ID: "t1", Text: "ship release", DueDate: "2024-01-10"})

	tr.DeleteEvent("task-t1")

	_, err := st.State().FindTask("t1")
	assert.NoError(t, err)
}
