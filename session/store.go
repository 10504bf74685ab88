// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"sync"
	"time"
)

// Store persists session slots by session id.
type Store interface {
	// Load returns the user stored for id, or nil if the session is empty
	// or unknown.
	Load(ctx context.Context, id string) (*User, error)

	// Save stores user for id. A nil user empties the session.
	Save(ctx context.Context, id string, user *User) error

	// Delete forgets id entirely.
	Delete(ctx context.Context, id string) error

	// Purge deletes sessions not saved since before and reports how many
	// were removed.
	Purge(ctx context.Context, before time.Time) (int, error)
}

// InMemoryStore provides an in-memory implementation of Store
// This is the default; sessions do not survive a restart.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]storedUser
	now      func() time.Time
}

type storedUser struct {
	user      User
	updatedAt time.Time
}

// NewInMemoryStore creates a new in-memory session store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string]storedUser),
		now:      time.Now,
	}
}

func (s *InMemoryStore) Load(_ context.Context, id string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored, ok := s.sessions[id]
	if !ok {
		return nil, nil
	}
	u := stored.user
	return &u, nil
}

func (s *InMemoryStore) Save(ctx context.Context, id string, user *User) error {
	if user == nil {
		return s.Delete(ctx, id)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[id] = storedUser{user: *user, updatedAt: s.now()}
	return nil
}

func (s *InMemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, id)
	return nil
}

func (s *InMemoryStore) Purge(_ context.Context, before time.Time) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, stored := range s.sessions {
		if stored.updatedAt.Before(before) {
			delete(s.sessions, id)
			removed++
		}
	}
	return removed, nil
}
