// Package extract turns freeform capture text into structured records using
// rule-based heuristics. Both extractors are total functions: any input,
// including the empty string, yields a fully-shaped record with empty fields
// standing in for anything that could not be recognized.
package extract

import (
	"regexp"
	"strings"
	"unicode"

	"flowlyfe/internal/models"
)

var (
	// At least 7 consecutive characters drawn from digits, spaces, hyphens,
	// parentheses and plus signs. First match wins; digit count beyond the
	// length threshold is not validated.
	phoneRe = regexp.MustCompile(`\b[0-9()+\- ]{7,}\b`)

	emailRe = regexp.MustCompile(`[\w.\-]+@[\w.\-]+\.\w+`)

	multiSpaceRe = regexp.MustCompile(`\s+`)
)

// ExtractContact parses freeform text into a contact record.
//
// Detection order: phone first, then email, then names from whatever tokens
// remain, and finally the leftover text becomes the notes. There is no
// explicit note delimiter in a capture, so "everything that is not a phone,
// email or name" is the deliberate notes policy.
func ExtractContact(text string) models.Contact {
	var c models.Contact

	// Raw matches keep their surrounding whitespace so removal below takes
	// the exact substring out of the text.
	rawPhone := phoneRe.FindString(text)
	c.Phone = strings.TrimSpace(rawPhone)
	c.Email = emailRe.FindString(text)

	remainder := text
	if rawPhone != "" {
		remainder = strings.Replace(remainder, rawPhone, " ", 1)
	}
	if c.Email != "" {
		remainder = strings.Replace(remainder, c.Email, " ", 1)
	}

	tokens := strings.Fields(remainder)
	var nameTokens []string
	switch {
	case len(tokens) >= 2:
		// First two tokens are treated as the name; anything further stays
		// in the text and ends up in the notes.
		c.FirstName = capitalize(tokens[0])
		c.LastName = capitalize(tokens[1])
		nameTokens = tokens[:2]
	case len(tokens) == 1:
		c.FirstName = capitalize(tokens[0])
		nameTokens = tokens[:1]
	}

	c.Notes = leftoverNotes(text, rawPhone, c.Email, nameTokens)
	return c
}

// leftoverNotes removes the phone, email and name substrings from the
// original text and returns the trimmed remainder.
func leftoverNotes(text, rawPhone, email string, nameTokens []string) string {
	notes := text
	if rawPhone != "" {
		notes = strings.Replace(notes, rawPhone, " ", 1)
	}
	if email != "" {
		notes = strings.Replace(notes, email, " ", 1)
	}
	if len(nameTokens) > 0 {
		quoted := make([]string, len(nameTokens))
		for i, tok := range nameTokens {
			quoted[i] = regexp.QuoteMeta(tok)
		}
		nameRe, err := regexp.Compile(`(?i)` + strings.Join(quoted, `\s+`))
		if err == nil {
			notes = nameRe.ReplaceAllString(notes, " ")
		}
	}
	return strings.TrimSpace(multiSpaceRe.ReplaceAllString(notes, " "))
}

// capitalize uppercases the first letter and lowercases the rest. This
// mis-handles embedded capitals ("McDonald" becomes "Mcdonald"); that is the
// documented heuristic, not something to fix silently.
func capitalize(s string) string {
	r := []rune(s)
	if len(r) == 0 {
		return s
	}
	return string(unicode.ToUpper(r[0])) + strings.ToLower(string(r[1:]))
}
