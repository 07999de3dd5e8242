// Package session persists the learner's session token between runs.
//
// The store is a single key/value slot, the terminal counterpart of the
// browser's localStorage entry. A token is opaque: its validity is decided
// by the evaluation service only, never here.
package session

import (
	"context"
	"sync"
)

// Store is the persistent token slot.
type Store interface {
	// Read returns the persisted token. ok is false when no token is stored.
	Read(ctx context.Context) (token string, ok bool, err error)
	// Write persists token, replacing any previous value.
	Write(ctx context.Context, token string) error
	// Clear removes the persisted token. Clearing an empty slot is not an error.
	Clear(ctx context.Context) error
	Close() error
}

// MemoryStore is an in-process Store, used by tests and the headless check
// command when persistence is disabled.
type MemoryStore struct {
	mu    sync.Mutex
	token string
	ok    bool
}

// NewMemoryStore returns a store, optionally seeded with a token.
func NewMemoryStore(seed ...string) *MemoryStore {
	s := &MemoryStore{}
	if len(seed) > 0 {
		s.token, s.ok = seed[0], true
	}
	return s
}

func (s *MemoryStore) Read(ctx context.Context) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.ok, nil
}

func (s *MemoryStore) Write(ctx context.Context, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ok = token, true
	return nil
}

func (s *MemoryStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token, s.ok = "", false
	return nil
}

func (s *MemoryStore) Close() error { return nil }
