package store

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"flowlyfe/internal/models"
)

// SchemaVersion is the current on-disk document version.
//
// History:
//
//	v0 — a bare JSON array of inbox items with numeric IDs, the shape the
//	     first capture-only release wrote.
//	v1 — an envelope {version, inbox} with string IDs.
//	v2 — adds the triaged buckets (thoughts, todos, contacts, events) and
//	     the journal.
const SchemaVersion = 2

// decodeState parses a state document of any known version and upgrades it
// to the current schema. The second return value reports whether an upgrade
// happened, so the caller can rewrite the file immediately.
func decodeState(data []byte) (*State, bool, error) {
	// v0 files are a bare array, not an object.
	if isJSONArray(data) {
		state, err := migrateV0(data)
		return state, true, err
	}

	var envelope struct {
		Version int `json:"version"`
	}
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, false, fmt.Errorf("unreadable state document: %w", err)
	}

	switch envelope.Version {
	case 0, 1:
		state, err := migrateV1(data)
		return state, true, err
	case SchemaVersion:
		var state State
		if err := json.Unmarshal(data, &state); err != nil {
			return nil, false, fmt.Errorf("unreadable v%d state: %w", SchemaVersion, err)
		}
		normalize(&state)
		return &state, false, nil
	default:
		return nil, false, fmt.Errorf("state version %d is newer than this build supports (%d)", envelope.Version, SchemaVersion)
	}
}

func isJSONArray(data []byte) bool {
	for _, b := range data {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}

// legacyItem is the original capture shape: millisecond-epoch numeric ID and
// an ISO timestamp string.
type legacyItem struct {
	ID        json.Number `json:"id"`
	Content   string      `json:"content"`
	Timestamp string      `json:"timestamp"`
}

func migrateV0(data []byte) (*State, error) {
	var legacy []legacyItem
	if err := json.Unmarshal(data, &legacy); err != nil {
		return nil, fmt.Errorf("unreadable v0 inbox array: %w", err)
	}

	state := emptyState()
	for _, l := range legacy {
		state.Inbox = append(state.Inbox, models.Item{
			ID:        l.ID.String(),
			Content:   l.Content,
			CreatedAt: parseLegacyTimestamp(l),
		})
	}
	return state, nil
}

func migrateV1(data []byte) (*State, error) {
	var v1 struct {
		Inbox []models.Item `json:"inbox"`
	}
	if err := json.Unmarshal(data, &v1); err != nil {
		return nil, fmt.Errorf("unreadable v1 state: %w", err)
	}

	state := emptyState()
	if v1.Inbox != nil {
		state.Inbox = v1.Inbox
	}
	return state, nil
}

// parseLegacyTimestamp prefers the ISO timestamp and falls back to the
// millisecond-epoch ID the old app used as both identity and creation time.
func parseLegacyTimestamp(l legacyItem) time.Time {
	if t, err := time.Parse(time.RFC3339, l.Timestamp); err == nil {
		return t
	}
	if ms, err := strconv.ParseInt(l.ID.String(), 10, 64); err == nil {
		return time.UnixMilli(ms)
	}
	return time.Time{}
}

// normalize replaces nil bucket slices (absent keys in a hand-trimmed file)
// with empty ones so callers can append without nil checks.
func normalize(state *State) {
	state.Version = SchemaVersion
	if state.Inbox == nil {
		state.Inbox = []models.Item{}
	}
	if state.Thoughts == nil {
		state.Thoughts = []models.Thought{}
	}
	if state.Todos == nil {
		state.Todos = []models.TodoTask{}
	}
	if state.Contacts == nil {
		state.Contacts = []models.Card{}
	}
	if state.Events == nil {
		state.Events = []models.Event{}
	}
	if state.Journal == nil {
		state.Journal = []models.JournalEntry{}
	}
}
