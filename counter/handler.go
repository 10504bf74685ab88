// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package counter

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Handler exposes the store over HTTP.
type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

// Get handles GET /api/counter.
func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Increment handles POST /api/counter/increment.
func (h *Handler) Increment(c *gin.Context) {
	h.store.Increment()
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Decrement handles POST /api/counter/decrement.
func (h *Handler) Decrement(c *gin.Context) {
	h.store.Decrement()
	c.JSON(http.StatusOK, h.store.Snapshot())
}

// Init handles POST /api/counter/init.
func (h *Handler) Init(c *gin.Context) {
	if _, err := h.store.Init(c.Request.Context()); err != nil {
		// The client went away before the delay finished.
		c.AbortWithStatus(http.StatusServiceUnavailable)
		return
	}
	c.JSON(http.StatusOK, h.store.Snapshot())
}
