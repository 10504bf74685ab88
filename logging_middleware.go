// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package main

import (
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		r := c.Request

		// Log request details including session ID if present
		fields := []zap.Field{
			zap.String("remote", c.ClientIP()),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
		}
		if sessionID := r.Header.Get("Mcp-Session-Id"); sessionID != "" {
			fields = append(fields, zap.String("session", sessionID))
		}
		logger.Info("[REQUEST]", fields...)

		c.Next()

		// Log response details including session ID if set in response
		fields = append(fields,
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
		if sessionID := c.Writer.Header().Get("Mcp-Session-Id"); sessionID != "" {
			fields = append(fields, zap.String("response_session", sessionID))
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}
		logger.Info("[RESPONSE]", fields...)
	}
}
