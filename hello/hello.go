// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package hello

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"DemoLab/DemoServer/clock"
)

// DefaultMessage is the greeting returned by /api/hello.
const DefaultMessage = "你好，来自 API 路由！"

// Greeting is the /api/hello response body.
type Greeting struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Handler serves GET /api/hello.
type Handler struct {
	message string
	now     clock.NowFunc
}

// NewHandler creates the greeting handler. A nil now uses time.Now.
func NewHandler(message string, now clock.NowFunc) *Handler {
	if message == "" {
		message = DefaultMessage
	}
	if now == nil {
		now = time.Now
	}
	return &Handler{message: message, now: now}
}

// Greet builds a greeting stamped with the current time.
func (h *Handler) Greet() Greeting {
	return Greeting{
		Message:   h.message,
		Timestamp: h.now().UTC().Format(time.RFC3339),
	}
}

func (h *Handler) Get(c *gin.Context) {
	c.JSON(http.StatusOK, h.Greet())
}
