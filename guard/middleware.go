// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package guard

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/session"
)

// Middleware runs the guard before every navigation on the routes it wraps.
// It relies on the session middleware having run first; a request without a
// session is treated as a guest.
func Middleware(rules Rules, logger *zap.Logger, recorder activity.Recorder) gin.HandlerFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(c *gin.Context) {
		var user *session.User
		if state, ok := session.Current(c); ok {
			user = state.User()
		}

		target := c.Request.URL.Path
		decision := rules.Decide(user, target)
		if decision.Redirected() {
			logger.Info("Guest redirected to login", zap.String("path", target), zap.String("location", decision.Location))
			if recorder != nil {
				recorder.Record(activity.KindGuard, "", fmt.Sprintf("redirect %s -> %s", target, decision.Location))
			}
			c.Redirect(http.StatusFound, decision.Location)
			c.Abort()
			return
		}

		logger.Info("Navigation allowed", zap.String("path", target), zap.Bool("logged_in", user != nil))
		c.Next()
	}
}
