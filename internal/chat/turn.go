// Package chat implements the conversation-assembly and turn-taking core:
// it accumulates ordered turns, assembles escaped request payloads for a
// stateless generative-language model, and folds replies back into history.
// It has no dependency on HTTP, storage, or any rendering surface.
package chat

// Role identifies the speaker of a Turn.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Turn is one role-tagged utterance in a conversation. Immutable once
// created; the text is carried verbatim, never truncated.
type Turn struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}

// History is the ordered, append-only record of Turns for one session.
// Insertion order is conversation order; turns are never reordered,
// deduplicated, or removed.
type History struct {
	turns []Turn
}

// NewHistory creates a history seeded with previously recorded turns,
// in the order given.
func NewHistory(turns ...Turn) *History {
	h := &History{}
	h.turns = append(h.turns, turns...)
	return h
}

// Append records one more turn at the end of the conversation.
func (h *History) Append(t Turn) {
	h.turns = append(h.turns, t)
}

// Len reports the number of recorded turns.
func (h *History) Len() int {
	return len(h.turns)
}

// Turns returns a copy of the recorded turns. Mutating the returned slice
// does not affect the history.
func (h *History) Turns() []Turn {
	out := make([]Turn, len(h.turns))
	copy(out, h.turns)
	return out
}
