package models

import "time"

// JournalType distinguishes the three reflection formats.
type JournalType string

const (
	JournalFlowform JournalType = "flowform"
	JournalFreeform JournalType = "freeform"
	JournalRoteform JournalType = "roteform"
)

// JournalEntry is one saved journal record. Exactly one of Content, Sections
// or Flow is populated depending on Type.
type JournalEntry struct {
	ID        string            `json:"id"`
	Type      JournalType       `json:"type"`
	Title     string            `json:"title"`
	Content   string            `json:"content,omitempty"`  // freeform body
	Sections  map[string]string `json:"sections,omitempty"` // roteform reflections keyed by field name
	Flow      *FlowformDay      `json:"flow,omitempty"`     // flowform day snapshot
	CreatedAt time.Time         `json:"created_at"`
}

// FlowformDay collects the day's quick captures grouped by category.
type FlowformDay struct {
	Date    string                    `json:"date"` // YYYY-MM-DD
	Entries map[string][]FlowformNote `json:"entries"`
}

// FlowformNote is a single capture inside a flowform category. Mood notes
// store the mood name in Text and optional context alongside.
type FlowformNote struct {
	Text      string    `json:"text"`
	Context   string    `json:"context,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}
