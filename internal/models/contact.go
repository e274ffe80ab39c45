package models

import "time"

// Contact is a structured contact extracted from capture text, suitable for
// vCard export. Every field defaults to the empty string when the matching
// heuristic finds nothing; extraction never fails.
type Contact struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
	Email     string `json:"email"`
	Notes     string `json:"notes"`
}

// Card wraps a contact with identity and provenance for the contacts bucket.
// The Contact itself stays a plain value so the extractor and the vCard
// formatter never deal with storage concerns.
type Card struct {
	ID        string    `json:"id"`
	Contact   Contact   `json:"contact"`
	CreatedAt time.Time `json:"created_at"`
}
