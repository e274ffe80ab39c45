// Package journal implements the reflection subsystem: freeform entries,
// roteform daily reflections and flowform quick captures. It is independent
// of the capture/triage pipeline and shares only the store.
package journal

import (
	"fmt"
	"log/slog"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"flowlyfe/internal/models"
	"flowlyfe/internal/store"
)

// Category is a flowform capture tile.
type Category struct {
	Key    string
	Name   string
	Prompt string
}

// Categories lists the flowform tiles in display order.
var Categories = []Category{
	{Key: "mood", Name: "Mood", Prompt: "How are you feeling right now?"},
	{Key: "gratitude", Name: "Gratitude", Prompt: "What are you grateful for today?"},
	{Key: "event", Name: "Event", Prompt: "Note a moment you want to remember."},
	{Key: "accomplishment", Name: "Accomplishment", Prompt: "What did you move forward?"},
	{Key: "idea", Name: "Idea", Prompt: "Capture your sparks before they fade."},
	{Key: "quote", Name: "Quote", Prompt: "Log a phrase that stayed with you."},
	{Key: "picture", Name: "Picture", Prompt: "Pin a photo from today with an optional caption."},
}

// Moods are the selectable mood options.
var Moods = []string{
	"Peaceful", "Grateful", "Happy", "Energized", "Content", "Thoughtful",
	"Neutral", "Tired", "Anxious", "Tender", "Fiery",
}

// RoteformFields are the fixed daily-reflection prompts, in form order.
var RoteformFields = []string{
	"gratitude", "emotions", "values", "growth", "connection", "compassion", "story",
}

// FreeformPrompts is the pool RandomPrompt draws from.
var FreeformPrompts = []string{
	"What three moments did you feel grateful for today and why?",
	"Describe a moment today when you felt fully alive.",
	"What emotion surprised you, and what do you think sparked it?",
	"What did you learn about yourself from today's interactions?",
	"How did you step toward the person you want to become?",
	"Recall a conversation that energized you. What stayed with you?",
	"If today were a story, what would the title be?",
	"Where did you notice beauty or stillness in the day?",
	"Write a note of encouragement to tomorrow's self.",
	"What question do you want to carry into tomorrow?",
}

// Journal owns journal entries within the shared store.
type Journal struct {
	logger *slog.Logger
	store  *store.Store
	now    func() time.Time
}

// New creates a Journal. A nil clock defaults to time.Now.
func New(logger *slog.Logger, st *store.Store, now func() time.Time) *Journal {
	if now == nil {
		now = time.Now
	}
	return &Journal{logger: logger, store: st, now: now}
}

// AddFreeform saves a freeform entry. Content is required; an empty title
// falls back to the formatted entry date.
func (j *Journal) AddFreeform(title, content string) (models.JournalEntry, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return models.JournalEntry{}, fmt.Errorf("freeform entry needs a few words before saving")
	}

	now := j.now()
	if strings.TrimSpace(title) == "" {
		title = formatEntryDate(now)
	}

	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		Type:      models.JournalFreeform,
		Title:     strings.TrimSpace(title),
		Content:   content,
		CreatedAt: now,
	}
	return j.add(entry)
}

// AddRoteform saves a daily reflection. At least one field must be answered;
// unknown field names are rejected so typos don't silently vanish.
func (j *Journal) AddRoteform(sections map[string]string) (models.JournalEntry, error) {
	valid := make(map[string]bool, len(RoteformFields))
	for _, f := range RoteformFields {
		valid[f] = true
	}

	answered := 0
	clean := make(map[string]string, len(sections))
	for field, value := range sections {
		if !valid[field] {
			return models.JournalEntry{}, fmt.Errorf("unknown reflection field %q", field)
		}
		value = strings.TrimSpace(value)
		clean[field] = value
		if value != "" {
			answered++
		}
	}
	if answered == 0 {
		return models.JournalEntry{}, fmt.Errorf("capture at least one reflection before saving")
	}

	now := j.now()
	entry := models.JournalEntry{
		ID:        uuid.New().String(),
		Type:      models.JournalRoteform,
		Title:     "Daily Reflection - " + formatEntryDate(now),
		Sections:  clean,
		CreatedAt: now,
	}
	return j.add(entry)
}

// AddFlowformNote appends a quick capture to today's flowform day, creating
// the day snapshot on first use. The day lives in the journal as a single
// entry that keeps accumulating notes.
func (j *Journal) AddFlowformNote(categoryKey, text, context string) (models.JournalEntry, error) {
	if !validCategory(categoryKey) {
		return models.JournalEntry{}, fmt.Errorf("unknown flowform category %q", categoryKey)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return models.JournalEntry{}, fmt.Errorf("write a quick note before saving")
	}

	now := j.now()
	dayKey := now.Format("2006-01-02")
	st := j.store.State()

	note := models.FlowformNote{Text: text, Context: strings.TrimSpace(context), Timestamp: now}

	// Reuse today's flowform entry when one exists.
	for i := range st.Journal {
		entry := &st.Journal[i]
		if entry.Type == models.JournalFlowform && entry.Flow != nil && entry.Flow.Date == dayKey {
			if entry.Flow.Entries == nil {
				// Hand-trimmed state files may drop the map entirely.
				entry.Flow.Entries = map[string][]models.FlowformNote{}
			}
			entry.Flow.Entries[categoryKey] = append(entry.Flow.Entries[categoryKey], note)
			if err := j.store.Save(); err != nil {
				return models.JournalEntry{}, err
			}
			return *entry, nil
		}
	}

	entry := models.JournalEntry{
		ID:    uuid.New().String(),
		Type:  models.JournalFlowform,
		Title: "Flowform - " + formatEntryDate(now),
		Flow: &models.FlowformDay{
			Date:    dayKey,
			Entries: map[string][]models.FlowformNote{categoryKey: {note}},
		},
		CreatedAt: now,
	}
	return j.add(entry)
}

func (j *Journal) add(entry models.JournalEntry) (models.JournalEntry, error) {
	j.store.State().AddJournalEntry(entry)
	if err := j.store.Save(); err != nil {
		return models.JournalEntry{}, err
	}
	j.logger.Info("Journal entry saved.", "type", string(entry.Type), "id", entry.ID)
	return entry, nil
}

// Entries lists journal entries newest-first, optionally filtered by type
// and by a case-insensitive search over titles and bodies.
func (j *Journal) Entries(filter models.JournalType, search string) []models.JournalEntry {
	entries := j.store.State().JournalNewestFirst()
	search = strings.ToLower(strings.TrimSpace(search))

	var out []models.JournalEntry
	for _, entry := range entries {
		if filter != "" && entry.Type != filter {
			continue
		}
		if search != "" && !entryMatches(entry, search) {
			continue
		}
		out = append(out, entry)
	}
	return out
}

// RandomPrompt returns one of the freeform writing prompts.
func RandomPrompt() string {
	return FreeformPrompts[rand.Intn(len(FreeformPrompts))]
}

// WordCount counts whitespace-separated words, the figure shown while
// writing a freeform entry.
func WordCount(s string) int {
	return len(strings.Fields(s))
}

func entryMatches(entry models.JournalEntry, search string) bool {
	if strings.Contains(strings.ToLower(entry.Title), search) {
		return true
	}
	switch entry.Type {
	case models.JournalFreeform:
		return strings.Contains(strings.ToLower(entry.Content), search)
	case models.JournalRoteform:
		for _, value := range entry.Sections {
			if strings.Contains(strings.ToLower(value), search) {
				return true
			}
		}
	case models.JournalFlowform:
		if entry.Flow == nil {
			return false
		}
		for _, notes := range entry.Flow.Entries {
			for _, note := range notes {
				if strings.Contains(strings.ToLower(note.Text), search) ||
					strings.Contains(strings.ToLower(note.Context), search) {
					return true
				}
			}
		}
	}
	return false
}

func validCategory(key string) bool {
	for _, c := range Categories {
		if c.Key == key {
			return true
		}
	}
	return false
}

func formatEntryDate(t time.Time) string {
	return t.Format("Mon, Jan 2, 2006")
}
