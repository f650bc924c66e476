package chat

import (
	"strings"
	"time"
)

// datePrefix introduces the current-date annotation appended to the
// persona block.
const datePrefix = " Date actuelle: "

// Block is one role-tagged text block of an assembled request payload.
type Block struct {
	Role Role
	Text string
}

// RequestPayload is the fully assembled, escaped structure handed to the
// transport collaborator. Transient; never persisted. Every text block has
// passed through the Escaper, and role order is exactly as recorded.
type RequestPayload struct {
	Blocks     []Block
	Generation GenerationParams
}

// RequestBuilder composes a persona, the conversation so far, and new user
// input into a request payload with a fixed block order:
//
//  1. the persona's seed exchange, role order as configured
//  2. the escaped system description plus a current-date annotation,
//     tagged with the user role (the persona is injected as if the user
//     had stated it)
//  3. every turn of the history, individually escaped, roles preserved
//  4. the escaped new input, tagged with the user role
//
// Now is injectable so that tests can pin the date annotation; it defaults
// to time.Now.
type RequestBuilder struct {
	Escaper Escaper
	Now     func() time.Time
}

// Build assembles the payload. The history is read, never mutated. Empty
// or blank newInput fails with ErrInvalidInput before any block is built.
func (b RequestBuilder) Build(persona PersonaConfig, history *History, newInput string) (RequestPayload, error) {
	if strings.TrimSpace(newInput) == "" {
		return RequestPayload{}, ErrInvalidInput
	}

	now := b.Now
	if now == nil {
		now = time.Now
	}

	blocks := make([]Block, 0, len(persona.SeedExchange)+2+history.Len())

	for _, t := range persona.SeedExchange {
		blocks = append(blocks, Block{Role: t.Role, Text: b.Escaper.Escape(t.Text)})
	}

	personaText := b.Escaper.Escape(persona.SystemDescription) + datePrefix + FormatDateFR(now())
	blocks = append(blocks, Block{Role: RoleUser, Text: personaText})

	for _, t := range history.turns {
		blocks = append(blocks, Block{Role: t.Role, Text: b.Escaper.Escape(t.Text)})
	}

	blocks = append(blocks, Block{Role: RoleUser, Text: b.Escaper.Escape(newInput)})

	return RequestPayload{Blocks: blocks, Generation: persona.Generation}, nil
}
