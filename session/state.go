// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package session holds the mock authentication state of a browser session.
//
// A session is a single slot that is either empty or holds the logged-in
// user. There is no credential verification: Login always succeeds.
package session

import (
	"sync"

	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
)

// User is the populated form of a session.
type User struct {
	Username string `json:"username"`
}

// State is the session slot for one session id.
type State struct {
	mu   sync.RWMutex
	id   string
	user *User

	logger   *zap.Logger
	recorder activity.Recorder
	onChange func(id string, user *User)
}

// NewState creates an empty session slot. logger and recorder may be nil.
func NewState(id string, logger *zap.Logger, recorder activity.Recorder) *State {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &State{
		id:       id,
		logger:   logger,
		recorder: recorder,
	}
}

// ID returns the session id.
func (s *State) ID() string {
	return s.id
}

// User returns a copy of the logged-in user, or nil if the session is empty.
func (s *State) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

// LoggedIn reports whether the session holds a user.
func (s *State) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user != nil
}

// Login stores username in the session.
func (s *State) Login(username string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = &User{Username: username}
	s.logger.Info("User logged in", zap.String("session", s.id), zap.String("username", username))
	s.record(username, "logged in")
	s.changed()
}

// Logout empties the session. Logging out an empty session is a no-op
// apart from the log line.
func (s *State) Logout() {
	s.mu.Lock()
	defer s.mu.Unlock()

	actor := ""
	if s.user != nil {
		actor = s.user.Username
	}
	s.user = nil
	s.logger.Info("User logged out", zap.String("session", s.id), zap.String("username", actor))
	s.record(actor, "logged out")
	s.changed()
}

// restore sets the user without logging, used when loading from a Store.
func (s *State) restore(user *User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.user = user
}

func (s *State) record(actor, message string) {
	if s.recorder != nil {
		s.recorder.Record(activity.KindSession, actor, message)
	}
}

// changed must be called with s.mu held.
func (s *State) changed() {
	if s.onChange == nil {
		return
	}
	var u *User
	if s.user != nil {
		copied := *s.user
		u = &copied
	}
	s.onChange(s.id, u)
}
