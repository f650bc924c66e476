package chat

import (
	"errors"
	"testing"
)

func TestExtractReply_Malformed(t *testing.T) {
	tests := []struct {
		name    string
		payload ResponsePayload
	}{
		{"no candidates", ResponsePayload{}},
		{"empty candidate list", ResponsePayload{Candidates: []Candidate{}}},
		{"first candidate without content", ResponsePayload{Candidates: []Candidate{{}}}},
		{"first candidate with empty fragments", ResponsePayload{Candidates: []Candidate{{Fragments: []string{}}}}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ExtractReply(tc.payload)
			if !errors.Is(err, ErrMalformedResponse) {
				t.Errorf("Expected ErrMalformedResponse, got %v", err)
			}
		})
	}
}

func TestExtractReply_JoinsFragments(t *testing.T) {
	tests := []struct {
		name      string
		fragments []string
		expected  string
	}{
		{"single fragment", []string{"Bonjour"}, "Bonjour"},
		{"two fragments", []string{"Hello", "world"}, "Hello world"},
		{"order preserved", []string{"a", "b", "c"}, "a b c"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			turn, err := ExtractReply(ResponsePayload{
				Candidates: []Candidate{{Fragments: tc.fragments}},
			})
			if err != nil {
				t.Fatalf("ExtractReply failed: %v", err)
			}
			if turn.Role != RoleAssistant {
				t.Errorf("Expected assistant role, got %q", turn.Role)
			}
			if turn.Text != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, turn.Text)
			}
		})
	}
}

func TestExtractReply_UsesFirstCandidateOnly(t *testing.T) {
	turn, err := ExtractReply(ResponsePayload{
		Candidates: []Candidate{
			{Fragments: []string{"first"}},
			{Fragments: []string{"second"}},
		},
	})
	if err != nil {
		t.Fatalf("ExtractReply failed: %v", err)
	}
	if turn.Text != "first" {
		t.Errorf("Expected %q, got %q", "first", turn.Text)
	}
}
