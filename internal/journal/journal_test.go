package journal

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"flowlyfe/internal/models"
	"flowlyfe/internal/store"
)

var newYear = time.Date(2024, time.January, 1, 9, 0, 0, 0, time.UTC)

func newTestJournal(t *testing.T) (*Journal, *store.Store) {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	st, err := store.Open(logger, filepath.Join(t.TempDir(), "state.json"))
	require.NoError(t, err)
	return New(logger, st, func() time.Time { return newYear }), st
}

func TestAddFreeform(t *testing.T) {
	j, st := newTestJournal(t)

	entry, err := j.AddFreeform("", "Today I planted the tomatoes.")
	require.NoError(t, err)

	assert.Equal(t, models.JournalFreeform, entry.Type)
	assert.Equal(t, "Mon, Jan 1, 2024", entry.Title)
	assert.Equal(t, "Today I planted the tomatoes.", entry.Content)
	require.Len(t, st.State().Journal, 1)
}

func TestAddFreeformCustomTitle(t *testing.T) {
	j, _ := newTestJournal(t)
	entry, err := j.AddFreeform("Garden log", "Tomatoes are in.")
	require.NoError(t, err)
	assert.Equal(t, "Garden log", entry.Title)
}

func TestAddFreeformRejectsEmptyContent(t *testing.T) {
	j, _ := newTestJournal(t)
	_, err := j.AddFreeform("title", "   ")
	assert.Error(t, err)
}

func TestAddRoteform(t *testing.T) {
	j, _ := newTestJournal(t)

	entry, err := j.AddRoteform(map[string]string{
		"gratitude": "a quiet morning",
		"growth":    "",
	})
	require.NoError(t, err)

	assert.Equal(t, models.JournalRoteform, entry.Type)
	assert.Equal(t, "Daily Reflection - Mon, Jan 1, 2024", entry.Title)
	assert.Equal(t, "a quiet morning", entry.Sections["gratitude"])
}

func TestAddRoteformRejectsUnknownField(t *testing.T) {
	j, _ := newTestJournal(t)
	_, err := j.AddRoteform(map[string]string{"vibes": "good"})
	assert.Error(t, err)
}

func TestAddRoteformNeedsAtLeastOneAnswer(t *testing.T) {
	j, _ := newTestJournal(t)
	_, err := j.AddRoteform(map[string]string{"gratitude": "  "})
	assert.Error(t, err)
}

func TestAddFlowformNoteAccumulatesWithinDay(t *testing.T) {
	j, st := newTestJournal(t)

	first, err := j.AddFlowformNote("mood", "Peaceful", "slow start")
	require.NoError(t, err)
	second, err := j.AddFlowformNote("gratitude", "coffee", "")
	require.NoError(t, err)

	// Same calendar day, same entry.
	assert.Equal(t, first.ID, second.ID)
	require.Len(t, st.State().Journal, 1)

	entry := st.State().Journal[0]
	require.NotNil(t, entry.Flow)
	assert.Equal(t, "2024-01-01", entry.Flow.Date)
	require.Len(t, entry.Flow.Entries["mood"], 1)
	assert.Equal(t, "Peaceful", entry.Flow.Entries["mood"][0].Text)
	assert.Equal(t, "slow start", entry.Flow.Entries["mood"][0].Context)
	require.Len(t, entry.Flow.Entries["gratitude"], 1)
}

func TestAddFlowformNoteRepairsMissingEntriesMap(t *testing.T) {
	// A hand-trimmed state file can carry today's flowform day with a null
	// entries map; adding a note must repair it, not crash.
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	path := filepath.Join(t.TempDir(), "state.json")
	doc := `{"version": 2, "journal": [{
		"id": "j1",
		"type": "flowform",
		"title": "Flowform - Mon, Jan 1, 2024",
		"flow": {"date": "2024-01-01", "entries": null},
		"created_at": "2024-01-01T08:00:00Z"
	}]}`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	st, err := store.Open(logger, path)
	require.NoError(t, err)
	j := New(logger, st, func() time.Time { return newYear })

	entry, err := j.AddFlowformNote("mood", "Peaceful", "")
	require.NoError(t, err)

	assert.Equal(t, "j1", entry.ID)
	require.NotNil(t, entry.Flow)
	require.Len(t, entry.Flow.Entries["mood"], 1)
	assert.Equal(t, "Peaceful", entry.Flow.Entries["mood"][0].Text)
}

func TestAddFlowformNoteRejectsUnknownCategory(t *testing.T) {
	j, _ := newTestJournal(t)
	_, err := j.AddFlowformNote("weather", "sunny", "")
	assert.Error(t, err)
}

func TestEntriesFilterAndSearch(t *testing.T) {
	j, _ := newTestJournal(t)

	_, err := j.AddFreeform("Garden log", "Planted tomatoes by the fence.")
	require.NoError(t, err)
	_, err = j.AddRoteform(map[string]string{"gratitude": "rain on the roof"})
	require.NoError(t, err)
	_, err = j.AddFlowformNote("idea", "a tomato trellis", "")
	require.NoError(t, err)

	all := j.Entries("", "")
	assert.Len(t, all, 3)

	onlyFreeform := j.Entries(models.JournalFreeform, "")
	require.Len(t, onlyFreeform, 1)
	assert.Equal(t, "Garden log", onlyFreeform[0].Title)

	// Search reaches freeform bodies, roteform answers and flowform notes.
	assert.Len(t, j.Entries("", "tomato"), 2)
	assert.Len(t, j.Entries("", "RAIN"), 1)
	assert.Empty(t, j.Entries("", "snow"))
}

func TestRandomPromptDrawsFromPool(t *testing.T) {
	pool := make(map[string]bool, len(FreeformPrompts))
	for _, p := range FreeformPrompts {
		pool[p] = true
	}
	for i := 0; i < 20; i++ {
		assert.True(t, pool[RandomPrompt()])
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   "))
	assert.Equal(t, 4, WordCount("one two\nthree\tfour"))
}
