package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"assistant-backend/internal/chat"
)

func TestMemorySessionStore_GetMissing(t *testing.T) {
	store := NewMemorySessionStore()

	turns, ok, err := store.Get(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if ok {
		t.Error("Expected ok=false for missing session")
	}
	if turns != nil {
		t.Errorf("Expected nil turns, got %+v", turns)
	}
}

func TestMemorySessionStore_SetGetDelete(t *testing.T) {
	store := NewMemorySessionStore()
	id := uuid.New()
	turns := []chat.Turn{
		{Role: chat.RoleUser, Text: "q"},
		{Role: chat.RoleAssistant, Text: "a"},
	}

	if err := store.Set(context.Background(), id, turns); err != nil {
		t.Fatalf("Set failed: %v", err)
	}

	got, ok, err := store.Get(context.Background(), id)
	if err != nil || !ok {
		t.Fatalf("Get failed: ok=%v err=%v", ok, err)
	}
	if len(got) != 2 || got[0].Text != "q" || got[1].Text != "a" {
		t.Errorf("Unexpected turns: %+v", got)
	}

	if err := store.Delete(context.Background(), id); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, ok, _ := store.Get(context.Background(), id); ok {
		t.Error("Expected session gone after Delete")
	}
}

func TestMemorySessionStore_IsolatesCallers(t *testing.T) {
	store := NewMemorySessionStore()
	id := uuid.New()
	turns := []chat.Turn{{Role: chat.RoleUser, Text: "original"}}

	store.Set(context.Background(), id, turns)

	// Mutating what was passed in or read out must not affect the store.
	turns[0].Text = "mutated input"
	got, _, _ := store.Get(context.Background(), id)
	got[0].Text = "mutated output"

	final, _, _ := store.Get(context.Background(), id)
	if final[0].Text != "original" {
		t.Errorf("Store leaked shared slices: got %q", final[0].Text)
	}
}
