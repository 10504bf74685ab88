// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

package session

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Status is the JSON view of a session.
type Status struct {
	LoggedIn bool  `json:"loggedIn"`
	User     *User `json:"user"`
}

type loginRequest struct {
	Username string `json:"username" form:"username"`
}

// Handler serves the login, logout and session endpoints.
type Handler struct {
	afterLogin  string
	afterLogout string
}

// NewHandler creates the session handler. Form submissions are redirected to
// afterLogin and afterLogout; JSON requests get a Status body.
func NewHandler(afterLogin, afterLogout string) *Handler {
	return &Handler{afterLogin: afterLogin, afterLogout: afterLogout}
}

// Login handles POST /api/login.
func (h *Handler) Login(c *gin.Context) {
	state, ok := Current(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	var req loginRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid login request"})
		return
	}

	state.Login(req.Username)
	h.respond(c, state, h.afterLogin)
}

// Logout handles POST /api/logout.
func (h *Handler) Logout(c *gin.Context) {
	state, ok := Current(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}

	state.Logout()
	h.respond(c, state, h.afterLogout)
}

// Get handles GET /api/session.
func (h *Handler) Get(c *gin.Context) {
	state, ok := Current(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "no session"})
		return
	}
	c.JSON(http.StatusOK, StatusOf(state))
}

func (h *Handler) respond(c *gin.Context, state *State, redirect string) {
	if isFormPost(c) && redirect != "" {
		c.Redirect(http.StatusSeeOther, redirect)
		return
	}
	c.JSON(http.StatusOK, StatusOf(state))
}

// StatusOf snapshots state.
func StatusOf(state *State) Status {
	user := state.User()
	return Status{LoggedIn: user != nil, User: user}
}

func isFormPost(c *gin.Context) bool {
	ct := c.ContentType()
	return ct == gin.MIMEPOSTForm || strings.HasPrefix(ct, gin.MIMEMultipartPOSTForm)
}
