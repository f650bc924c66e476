package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"assistant-backend/internal/chat"
)

// SessionStore persists conversation history between HTTP requests so a
// chat widget can keep a session alive across calls.
type SessionStore interface {
	// Get returns the recorded turns for a session. The second return
	// value reports whether the session exists.
	Get(ctx context.Context, id uuid.UUID) ([]chat.Turn, bool, error)

	// Set replaces the recorded turns for a session.
	Set(ctx context.Context, id uuid.UUID, turns []chat.Turn) error

	// Delete removes a session and its history.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisSessionStore keeps history as JSON in Redis with a sliding TTL:
// every read or write pushes expiry out by the configured duration.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	return &RedisSessionStore{client: client, ttl: ttl}
}

func sessionKey(id uuid.UUID) string {
	return fmt.Sprintf("chat_session:%s", id.String())
}

func (s *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) ([]chat.Turn, bool, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to load session %s: %w", id, err)
	}

	var turns []chat.Turn
	if err := json.Unmarshal(data, &turns); err != nil {
		return nil, false, fmt.Errorf("failed to decode session %s: %w", id, err)
	}

	s.client.Expire(ctx, sessionKey(id), s.ttl)
	return turns, true, nil
}

func (s *RedisSessionStore) Set(ctx context.Context, id uuid.UUID, turns []chat.Turn) error {
	data, err := json.Marshal(turns)
	if err != nil {
		return fmt.Errorf("failed to encode session %s: %w", id, err)
	}
	return s.client.Set(ctx, sessionKey(id), data, s.ttl).Err()
}

func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, sessionKey(id)).Err()
}

// MemorySessionStore is the fallback when Redis is not configured, and the
// store used in tests. Safe for concurrent use.
type MemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[uuid.UUID][]chat.Turn
}

func NewMemorySessionStore() *MemorySessionStore {
	return &MemorySessionStore{sessions: make(map[uuid.UUID][]chat.Turn)}
}

func (s *MemorySessionStore) Get(ctx context.Context, id uuid.UUID) ([]chat.Turn, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	turns, ok := s.sessions[id]
	if !ok {
		return nil, false, nil
	}
	out := make([]chat.Turn, len(turns))
	copy(out, turns)
	return out, true, nil
}

func (s *MemorySessionStore) Set(ctx context.Context, id uuid.UUID, turns []chat.Turn) error {
	stored := make([]chat.Turn, len(turns))
	copy(stored, turns)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = stored
	return nil
}

func (s *MemorySessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}
