package chat

import "strings"

// NewlinePolicy selects how line feeds are handled when text is escaped.
// The two policies match the two behaviors found in deployed chat widgets:
// dropping newlines entirely, or escaping them to a literal backslash-n.
// A session must use one policy for its whole lifetime; mixing policies
// across turns corrupts round-trip fidelity of stored text.
type NewlinePolicy int

const (
	// NewlineStrip removes line feeds from the escaped text.
	NewlineStrip NewlinePolicy = iota
	// NewlineEscape replaces line feeds with the two characters `\n`.
	NewlineEscape
)

// Escaper prepares arbitrary user or model text for safe embedding in a
// structured request payload. Escape is deterministic and total: backslash,
// double quote, and single quote gain a backslash prefix; carriage return
// and tab become their two-character escapes; line feeds follow the
// configured policy. Everything else, including non-ASCII text, passes
// through unchanged.
type Escaper struct {
	Newlines NewlinePolicy
}

func (e Escaper) Escape(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\'':
			b.WriteString(`\'`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case '\n':
			if e.Newlines == NewlineEscape {
				b.WriteString(`\n`)
			}
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
