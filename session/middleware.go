// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultCookieName is the cookie carrying the session token.
const DefaultCookieName = "demo_session"

type stateKey struct{}

// WithState returns a copy of ctx carrying state.
func WithState(ctx context.Context, state *State) context.Context {
	return context.WithValue(ctx, stateKey{}, state)
}

// FromContext returns the State attached by the middleware.
func FromContext(ctx context.Context) (*State, bool) {
	state, ok := ctx.Value(stateKey{}).(*State)
	return state, ok && state != nil
}

// Middleware resolves the session cookie to a State for every request.
type Middleware struct {
	manager    *Manager
	tokens     *TokenManager
	cookieName string
	secure     bool
	logger     *zap.Logger
}

// NewMiddleware creates the session middleware. secure marks the cookie
// HTTPS-only.
func NewMiddleware(manager *Manager, tokens *TokenManager, cookieName string, secure bool, logger *zap.Logger) *Middleware {
	if cookieName == "" {
		cookieName = DefaultCookieName
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Middleware{
		manager:    manager,
		tokens:     tokens,
		cookieName: cookieName,
		secure:     secure,
		logger:     logger,
	}
}

// Handler returns the gin middleware. A missing or invalid cookie starts a
// fresh empty session; the cookie is re-issued on every request so an
// active session does not expire.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := ""
		if raw, err := c.Cookie(m.cookieName); err == nil && raw != "" {
			parsed, err := m.tokens.Parse(raw)
			if err != nil {
				m.logger.Debug("Discarding session cookie", zap.Error(err))
			} else {
				id = parsed
			}
		}
		if id == "" {
			id = uuid.NewString()
		}

		token, err := m.tokens.Issue(id)
		if err != nil {
			m.logger.Error("Failed to issue session token", zap.Error(err))
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(m.cookieName, token, int(m.manager.TTL().Seconds()), "/", "", m.secure, true)

		state := m.manager.Open(c.Request.Context(), id)
		c.Request = c.Request.WithContext(WithState(c.Request.Context(), state))
		c.Next()
	}
}

// Current returns the State of the request, as resolved by the middleware.
func Current(c *gin.Context) (*State, bool) {
	return FromContext(c.Request.Context())
}
