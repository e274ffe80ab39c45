package store

import (
	"fmt"
	"sort"

	"flowlyfe/internal/models"
)

// State is the whole persisted document. Buckets are kept newest-first,
// matching how the inbox and journal views list them.
type State struct {
	Version  int                   `json:"version"`
	Inbox    []models.Item         `json:"inbox"`
	Thoughts []models.Thought      `json:"thoughts"`
	Todos    []models.TodoTask     `json:"todos"`
	Contacts []models.Card         `json:"contacts"`
	Events   []models.Event        `json:"events"`
	Journal  []models.JournalEntry `json:"journal"`
}

func emptyState() *State {
	return &State{
		Version:  SchemaVersion,
		Inbox:    []models.Item{},
		Thoughts: []models.Thought{},
		Todos:    []models.TodoTask{},
		Contacts: []models.Card{},
		Events:   []models.Event{},
		Journal:  []models.JournalEntry{},
	}
}

// AddItem prepends a capture to the inbox.
func (st *State) AddItem(item models.Item) {
	st.Inbox = append([]models.Item{item}, st.Inbox...)
}

// FindItem returns the inbox item with the given ID.
func (st *State) FindItem(id string) (models.Item, error) {
	for _, item := range st.Inbox {
		if item.ID == id {
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("no inbox item with id %s", id)
}

// RemoveItem deletes an inbox item and returns it.
func (st *State) RemoveItem(id string) (models.Item, error) {
	for i, item := range st.Inbox {
		if item.ID == id {
			st.Inbox = append(st.Inbox[:i], st.Inbox[i+1:]...)
			return item, nil
		}
	}
	return models.Item{}, fmt.Errorf("no inbox item with id %s", id)
}

// FindEvent returns the event-bucket record with the given ID.
func (st *State) FindEvent(id string) (models.Event, error) {
	for _, e := range st.Events {
		if e.ID == id {
			return e, nil
		}
	}
	return models.Event{}, fmt.Errorf("no event with id %s", id)
}

// SetEvent replaces the stored event with the same ID, or appends it.
func (st *State) SetEvent(e models.Event) {
	for i := range st.Events {
		if st.Events[i].ID == e.ID {
			st.Events[i] = e
			return
		}
	}
	st.Events = append(st.Events, e)
}

// RemoveEvent deletes the event with the given ID; missing IDs are a no-op.
func (st *State) RemoveEvent(id string) {
	for i := range st.Events {
		if st.Events[i].ID == id {
			st.Events = append(st.Events[:i], st.Events[i+1:]...)
			return
		}
	}
}

// FindCard returns the contact-bucket record with the given ID.
func (st *State) FindCard(id string) (models.Card, error) {
	for _, c := range st.Contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Card{}, fmt.Errorf("no contact with id %s", id)
}

// FindTask returns the todo with the given ID.
func (st *State) FindTask(id string) (models.TodoTask, error) {
	for _, t := range st.Todos {
		if t.ID == id {
			return t, nil
		}
	}
	return models.TodoTask{}, fmt.Errorf("no todo with id %s", id)
}

// SetTask replaces the stored todo with the same ID, or appends it.
func (st *State) SetTask(task models.TodoTask) {
	for i := range st.Todos {
		if st.Todos[i].ID == task.ID {
			st.Todos[i] = task
			return
		}
	}
	st.Todos = append(st.Todos, task)
}

// RemoveTask deletes the todo with the given ID; missing IDs are a no-op.
func (st *State) RemoveTask(id string) {
	for i := range st.Todos {
		if st.Todos[i].ID == id {
			st.Todos = append(st.Todos[:i], st.Todos[i+1:]...)
			return
		}
	}
}

// AddJournalEntry prepends an entry, keeping the journal newest-first.
func (st *State) AddJournalEntry(entry models.JournalEntry) {
	st.Journal = append([]models.JournalEntry{entry}, st.Journal...)
}

// JournalNewestFirst returns the entries sorted by creation time descending.
// Entries are stored in that order already, but hand-edited files may not be.
func (st *State) JournalNewestFirst() []models.JournalEntry {
	out := make([]models.JournalEntry, len(st.Journal))
	copy(out, st.Journal)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out
}
