package export

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"flowlyfe/internal/models"
)

func TestVCard(t *testing.T) {
	tests := []struct {
		name    string
		contact models.Contact
		want    string
	}{
		{
			name:    "empty contact is still a valid card",
			contact: models.Contact{},
			want:    "BEGIN:VCARD\r\nVERSION:3.0\r\nEND:VCARD",
		},
		{
			name: "full contact",
			contact: models.Contact{
				FirstName: "Jane",
				LastName:  "Doe",
				Phone:     "555-1234",
				Email:     "jane@example.com",
				Notes:     "meet friday",
			},
			want: strings.Join([]string{
				"BEGIN:VCARD",
				"VERSION:3.0",
				"N:Doe;Jane;;;",
				"FN:Jane Doe",
				"TEL;TYPE=CELL:555-1234",
				"EMAIL:jane@example.com",
				"NOTE:meet friday",
				"END:VCARD",
			}, "\r\n"),
		},
		{
			name:    "first name only",
			contact: models.Contact{FirstName: "Madonna"},
			want:    "BEGIN:VCARD\r\nVERSION:3.0\r\nN:;Madonna;;;\r\nFN:Madonna\r\nEND:VCARD",
		},
		{
			name:    "newlines in notes are escaped",
			contact: models.Contact{Notes: "line one\nline two"},
			want:    "BEGIN:VCARD\r\nVERSION:3.0\r\nNOTE:line one\\nline two\r\nEND:VCARD",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, VCard(tt.contact))
		})
	}
}
