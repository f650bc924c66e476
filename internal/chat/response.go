package chat

import "strings"

// Candidate is one completion alternative in a model reply. A nil or empty
// fragment list means the candidate carried no usable content.
type Candidate struct {
	Fragments []string
}

// ResponsePayload is the inbound reply structure from the model, reduced
// to the parts the conversation core cares about.
type ResponsePayload struct {
	Candidates []Candidate
}

// ExtractReply parses a reply payload into an assistant Turn. At least one
// candidate with at least one fragment must be present, otherwise the call
// failed with ErrMalformedResponse. On success the fragments of the first
// candidate are joined with a single space, in their original order.
func ExtractReply(p ResponsePayload) (Turn, error) {
	if len(p.Candidates) == 0 {
		return Turn{}, ErrMalformedResponse
	}
	first := p.Candidates[0]
	if len(first.Fragments) == 0 {
		return Turn{}, ErrMalformedResponse
	}
	return Turn{Role: RoleAssistant, Text: strings.Join(first.Fragments, " ")}, nil
}
