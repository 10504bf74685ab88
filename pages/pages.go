// Copyright 2025 The Go MCP SDK Authors. All rights reserved.
// Use of this source code is governed by an MIT-style
// license that can be found in the LICENSE file.

// Package pages serves the server-rendered views: the home page, the login
// form and the protected profile page.
package pages

import (
	"embed"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"DemoLab/DemoServer/counter"
	"DemoLab/DemoServer/guard"
	"DemoLab/DemoServer/session"
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates. Pass the result to
// gin.Engine.SetHTMLTemplate before registering the handler.
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

type view struct {
	Title         string
	User          *session.User
	Count         int
	DoubleCount   int
	LoginPath     string
	ProtectedPath string
}

// Handler renders the pages.
type Handler struct {
	rules   guard.Rules
	counter *counter.Store
}

// NewHandler creates the page handler. counter may be nil, in which case the
// home page omits the counter.
func NewHandler(rules guard.Rules, counter *counter.Store) *Handler {
	return &Handler{rules: rules, counter: counter}
}

// Register mounts the pages on r behind the route guard.
func (h *Handler) Register(r gin.IRouter, guardMiddleware gin.HandlerFunc) {
	g := r.Group("/", guardMiddleware)
	g.GET("/", h.Index)
	g.GET(h.rules.LoginPath, h.Login)
	g.GET(h.rules.ProtectedPath, h.Profile)
}

func (h *Handler) view(c *gin.Context, title string) view {
	v := view{
		Title:         title,
		LoginPath:     h.rules.LoginPath,
		ProtectedPath: h.rules.ProtectedPath,
	}
	if state, ok := session.Current(c); ok {
		v.User = state.User()
	}
	if h.counter != nil {
		snap := h.counter.Snapshot()
		v.Count = snap.Count
		v.DoubleCount = snap.DoubleCount
	}
	return v
}

// Index renders the home page.
func (h *Handler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", h.view(c, "Home"))
}

// Login renders the login form.
func (h *Handler) Login(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", h.view(c, "Login"))
}

// Profile renders the protected profile page.
func (h *Handler) Profile(c *gin.Context) {
	v := h.view(c, "Profile")
	if v.User == nil {
		// Only reachable when mounted without the guard.
		c.Redirect(http.StatusFound, h.rules.LoginPath)
		return
	}
	c.HTML(http.StatusOK, "profile.html", v)
}
