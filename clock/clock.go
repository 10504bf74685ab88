// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package clock provides the time source and delays used by handlers and
// stores, so tests can run without waiting on real timers.
package clock

import (
	"context"
	"time"
)

// Sleeper suspends the caller for a duration.
type Sleeper interface {
	// Sleep blocks for d or until ctx is done, whichever comes first.
	// It returns ctx.Err() if the context ended the wait.
	Sleep(ctx context.Context, d time.Duration) error
}

// Real sleeps on a runtime timer.
type Real struct{}

func (Real) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Instant returns immediately and remembers the requested durations.
type Instant struct {
	Slept []time.Duration
}

func (i *Instant) Sleep(ctx context.Context, d time.Duration) error {
	i.Slept = append(i.Slept, d)
	return ctx.Err()
}

// NowFunc returns the current time.
type NowFunc func() time.Time

// Fixed returns a NowFunc that always reports t.
func Fixed(t time.Time) NowFunc {
	return func() time.Time { return t }
}
