package models

import "time"

// Item is a single freeform capture sitting in the inbox until the user
// triages it into one of the typed buckets.
type Item struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// Thought is the simplest triage bucket: the capture text kept verbatim.
type Thought struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
