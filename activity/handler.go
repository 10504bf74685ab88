// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package activity

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// Handler serves the feed over HTTP.
type Handler struct {
	feed *Feed
}

func NewHandler(feed *Feed) *Handler {
	return &Handler{feed: feed}
}

// GetHistory handles GET /api/activity?limit=n.
func (h *Handler) GetHistory(c *gin.Context) {
	limit := 20
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be an integer"})
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"entries": h.feed.History(limit)})
}

// Stream handles GET /api/activity/stream as server-sent events.
func (h *Handler) Stream(c *gin.Context) {
	sub := h.feed.Subscribe()
	defer h.feed.Unsubscribe(sub.ID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)
	c.Writer.Flush()

	ctx := c.Request.Context()
	for {
		select {
		case entry, ok := <-sub.Entries:
			if !ok {
				return
			}
			c.SSEvent(entry.Kind, entry)
			c.Writer.Flush()
		case <-ctx.Done():
			return
		}
	}
}
