// Package export serializes triaged records into interchange formats: vCard
// text for contacts, a prefilled Google Calendar link and iCalendar bodies
// for events. Like the extractors, everything here is total: an all-empty
// record still yields syntactically valid output.
package export

import (
	"strings"

	"flowlyfe/internal/models"
)

// VCard renders a contact as a vCard 3.0 block with CRLF line endings.
// Optional lines are emitted only when the corresponding field is set, so an
// empty contact reduces to the bare BEGIN/VERSION/END skeleton, which is
// still a valid card.
func VCard(c models.Contact) string {
	lines := []string{"BEGIN:VCARD", "VERSION:3.0"}

	if c.FirstName != "" || c.LastName != "" {
		lines = append(lines,
			"N:"+c.LastName+";"+c.FirstName+";;;",
			"FN:"+strings.TrimSpace(c.FirstName+" "+c.LastName),
		)
	}
	if c.Phone != "" {
		lines = append(lines, "TEL;TYPE=CELL:"+c.Phone)
	}
	if c.Email != "" {
		lines = append(lines, "EMAIL:"+c.Email)
	}
	if c.Notes != "" {
		lines = append(lines, "NOTE:"+strings.ReplaceAll(c.Notes, "\n", `\n`))
	}

	lines = append(lines, "END:VCARD")
	return strings.Join(lines, "\r\n")
}
