// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package quote proxies the Hitokoto quote API.
package quote

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"go.uber.org/zap"

	"DemoLab/DemoServer/clock"
)

const (
	// DefaultURL is the upstream quote API.
	DefaultURL = "https://v1.hitokoto.cn/"

	// DefaultDelay is the artificial latency added before every fetch.
	DefaultDelay = 2 * time.Second

	maxBodyBytes = 1 << 20
)

// Source produces one quote body per call.
type Source interface {
	Fetch(ctx context.Context) (json.RawMessage, error)
}

// Fetcher waits a fixed delay and then performs a single GET against the
// upstream API. It never retries.
type Fetcher struct {
	url     string
	delay   time.Duration
	client  *http.Client
	sleeper clock.Sleeper
	logger  *zap.Logger
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default client (10 s timeout).
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) { f.client = client }
}

// WithSleeper replaces the real timer used for the delay.
func WithSleeper(s clock.Sleeper) Option {
	return func(f *Fetcher) { f.sleeper = s }
}

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) { f.logger = logger }
}

// NewFetcher creates a Fetcher for url. An empty url uses DefaultURL.
func NewFetcher(url string, delay time.Duration, opts ...Option) *Fetcher {
	if url == "" {
		url = DefaultURL
	}
	f := &Fetcher{
		url:   url,
		delay: delay,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		sleeper: clock.Real{},
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch returns the upstream body unchanged. A network error, a non-2xx
// status or a body that is not JSON is an error.
func (f *Fetcher) Fetch(ctx context.Context) (json.RawMessage, error) {
	if err := f.sleeper.Sleep(ctx, f.delay); err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("[GET] %q: %w", f.url, err)
	}
	defer resp.Body.Close()

	f.logger.Debug("Quote upstream responded",
		zap.String("url", f.url),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("[GET] %q: %s", f.url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("[GET] %q: failed to read body: %w", f.url, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("[GET] %q: response is not valid JSON", f.url)
	}

	return json.RawMessage(body), nil
}
