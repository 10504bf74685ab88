// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
)

// DefaultTTL is how long an idle session lives.
const DefaultTTL = 24 * time.Hour

// Manager maps session ids to their State, writing every change through to
// a Store and expiring sessions idle longer than the TTL.
type Manager struct {
	mu     sync.Mutex
	states map[string]*entry

	store    Store
	ttl      time.Duration
	now      func() time.Time
	logger   *zap.Logger
	recorder activity.Recorder
}

type entry struct {
	state    *State
	lastSeen time.Time
}

// NewManager creates a session manager. A nil store uses an InMemoryStore
// and a non-positive ttl uses DefaultTTL.
func NewManager(store Store, ttl time.Duration, logger *zap.Logger, recorder activity.Recorder) *Manager {
	if store == nil {
		store = NewInMemoryStore()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Manager{
		states:   make(map[string]*entry),
		store:    store,
		ttl:      ttl,
		now:      time.Now,
		logger:   logger,
		recorder: recorder,
	}
}

// TTL returns the idle lifetime of a session.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Open returns the State for id, loading it from the store on first use.
// A store failure is logged and the session starts empty. An empty session
// is not held by the manager until it logs in.
func (m *Manager) Open(ctx context.Context, id string) *State {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.states[id]; ok {
		e.lastSeen = now
		return e.state
	}

	state := NewState(id, m.logger, m.recorder)
	user, err := m.store.Load(ctx, id)
	if err != nil {
		m.logger.Warn("Failed to load session, starting empty", zap.String("session", id), zap.Error(err))
	} else if user != nil {
		state.restore(user)
	}
	state.onChange = func(id string, user *User) {
		if user != nil {
			m.register(state)
		}
		m.persist(id, user)
	}

	if user != nil {
		m.states[id] = &entry{state: state, lastSeen: now}
	}
	return state
}

// register starts tracking state. Called with the state's lock held.
func (m *Manager) register(state *State) {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	if e, ok := m.states[state.id]; ok && e.state == state {
		e.lastSeen = now
		return
	}
	m.states[state.id] = &entry{state: state, lastSeen: now}
}

// Len returns how many sessions are held in memory.
func (m *Manager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.states)
}

// Sweep ends every session idle longer than the TTL and reports how many
// in-memory sessions were dropped.
func (m *Manager) Sweep(ctx context.Context) int {
	cutoff := m.now().Add(-m.ttl)

	m.mu.Lock()
	var expired []string
	var live []*State
	for id, e := range m.states {
		if e.lastSeen.Before(cutoff) {
			expired = append(expired, id)
			delete(m.states, id)
		} else {
			live = append(live, e.state)
		}
	}
	m.mu.Unlock()

	for _, id := range expired {
		if err := m.store.Delete(ctx, id); err != nil {
			m.logger.Warn("Failed to delete expired session", zap.String("session", id), zap.Error(err))
		}
	}

	// Refresh stored rows of active sessions so Purge keeps them.
	for _, state := range live {
		if user := state.User(); user != nil {
			if err := m.store.Save(ctx, state.ID(), user); err != nil {
				m.logger.Warn("Failed to refresh session", zap.String("session", state.ID()), zap.Error(err))
			}
		}
	}

	purged, err := m.store.Purge(ctx, cutoff)
	if err != nil {
		m.logger.Warn("Failed to purge expired sessions", zap.Error(err))
	}

	if len(expired) > 0 || purged > 0 {
		m.logger.Debug("Expired sessions", zap.Int("in_memory", len(expired)), zap.Int("stored", purged))
	}
	return len(expired)
}

// Run sweeps expired sessions every interval until ctx is done.
func (m *Manager) Run(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			m.Sweep(ctx)
		}
	}
}

// persist is called by a State, under its lock, after every change.
func (m *Manager) persist(id string, user *User) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := m.store.Save(ctx, id, user); err != nil {
		m.logger.Warn("Failed to persist session", zap.String("session", id), zap.Error(err))
	}
}
