// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package counter is the application counter store.
package counter

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/clock"
)

const (
	DefaultInitValue = 100
	DefaultInitDelay = 100 * time.Millisecond
)

// Snapshot is the JSON view of the store.
type Snapshot struct {
	Count       int `json:"count"`
	DoubleCount int `json:"doubleCount"`
}

// Store holds the application counter.
type Store struct {
	mu    sync.RWMutex
	count int

	initValue int
	initDelay time.Duration
	sleeper   clock.Sleeper
	logger    *zap.Logger
	recorder  activity.Recorder
}

// Option configures a Store.
type Option func(*Store)

func WithInit(value int, delay time.Duration) Option {
	return func(s *Store) {
		s.initValue = value
		s.initDelay = delay
	}
}

func WithSleeper(sleeper clock.Sleeper) Option {
	return func(s *Store) { s.sleeper = sleeper }
}

func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) { s.logger = logger }
}

func WithRecorder(recorder activity.Recorder) Option {
	return func(s *Store) { s.recorder = recorder }
}

// NewStore creates a counter starting at 0.
func NewStore(opts ...Option) *Store {
	s := &Store{
		initValue: DefaultInitValue,
		initDelay: DefaultInitDelay,
		sleeper:   clock.Real{},
		logger:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Value() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.count
}

func (s *Store) DoubleCount() int {
	return s.Snapshot().DoubleCount
}

func (s *Store) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return Snapshot{Count: s.count, DoubleCount: s.count * 2}
}

// Increment adds one and returns the new value.
func (s *Store) Increment() int {
	return s.set(func(n int) int { return n + 1 }, "increment")
}

// Decrement subtracts one and returns the new value. The counter may go
// negative.
func (s *Store) Decrement() int {
	return s.set(func(n int) int { return n - 1 }, "decrement")
}

// Init waits for the init delay and then resets the counter to the init
// value, whatever it was before. If ctx ends first the counter is left
// untouched and ctx's error is returned.
func (s *Store) Init(ctx context.Context) (int, error) {
	if err := s.sleeper.Sleep(ctx, s.initDelay); err != nil {
		return s.Value(), err
	}
	return s.set(func(int) int { return s.initValue }, "init"), nil
}

func (s *Store) set(next func(int) int, op string) int {
	s.mu.Lock()
	s.count = next(s.count)
	n := s.count
	s.mu.Unlock()

	s.logger.Debug("Counter updated", zap.String("op", op), zap.Int("count", n))
	if s.recorder != nil {
		s.recorder.Record(activity.KindCounter, "", fmt.Sprintf("%s: count=%d", op, n))
	}
	return n
}
