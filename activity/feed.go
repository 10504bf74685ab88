// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package activity

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/eapache/queue"
	"github.com/google/uuid"

	"DemoLab/DemoServer/clock"
)

// Kinds of activity recorded by the server.
const (
	KindSession = "session"
	KindGuard   = "guard"
	KindCounter = "counter"
	KindQuote   = "quote"
)

// DefaultMaxEntries is how much history a Feed keeps unless told otherwise.
const DefaultMaxEntries = 100

// Entry is a single diagnostic event
type Entry struct {
	ID        string    `json:"id"`
	Kind      string    `json:"kind"`
	Actor     string    `json:"actor,omitempty"`
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}

// Subscriber receives entries recorded after it subscribed
type Subscriber struct {
	ID      string
	Entries chan Entry
}

// Recorder is the write side of a Feed.
type Recorder interface {
	Record(kind, actor, message string) Entry
}

// Feed keeps recent diagnostic entries and fans them out to subscribers
type Feed struct {
	subscribers sync.Map // subscriber ID -> *Subscriber

	mu         sync.RWMutex
	history    *queue.Queue
	maxEntries int
	now        clock.NowFunc
}

// NewFeed creates a feed keeping at most maxEntries entries.
// A non-positive maxEntries uses DefaultMaxEntries.
func NewFeed(maxEntries int) *Feed {
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &Feed{
		history:    queue.New(),
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Record stores an entry and broadcasts it to all subscribers.
func (f *Feed) Record(kind, actor, message string) Entry {
	entry := Entry{
		ID:        uuid.NewString(),
		Kind:      kind,
		Actor:     actor,
		Message:   message,
		Timestamp: f.now(),
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	f.history.Add(entry)
	for f.history.Length() > f.maxEntries {
		f.history.Remove()
	}

	// Unsubscribe closes channels under mu, so sends here never race a close.
	f.subscribers.Range(func(key, value any) bool {
		sub := value.(*Subscriber)
		select {
		case sub.Entries <- entry:
		default:
			// Slow subscriber, drop the entry for it.
		}
		return true
	})

	return entry
}

// History returns up to limit of the most recent entries, oldest first.
// A non-positive limit returns everything kept.
func (f *Feed) History(limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := f.history.Length()
	if limit <= 0 || limit > n {
		limit = n
	}

	entries := make([]Entry, 0, limit)
	for i := n - limit; i < n; i++ {
		entries = append(entries, f.history.Get(i).(Entry))
	}
	return entries
}

// Subscribe registers a new subscriber with a buffered channel.
func (f *Feed) Subscribe() *Subscriber {
	sub := &Subscriber{
		ID:      uuid.NewString(),
		Entries: make(chan Entry, 16),
	}
	f.subscribers.Store(sub.ID, sub)
	return sub
}

// Unsubscribe removes a subscriber and closes its channel.
func (f *Feed) Unsubscribe(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if v, ok := f.subscribers.LoadAndDelete(id); ok {
		close(v.(*Subscriber).Entries)
	}
}

// EntryToJSON converts an entry to a JSON string
func EntryToJSON(entry Entry) (string, error) {
	data, err := json.Marshal(entry)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
