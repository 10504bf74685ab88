package guard

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"DemoLab/DemoServer/activity"
	"DemoLab/DemoServer/session"
)

func TestDecide(t *testing.T) {
	alice := &session.User{Username: "alice"}

	tests := []struct {
		name   string
		user   *session.User
		target string
		want   Decision
	}{
		{"guest to protected", nil, "/profile", Decision{Action: Redirect, Location: "/login"}},
		{"guest to home", nil, "/", Decision{Action: Allow}},
		{"guest to login", nil, "/login", Decision{Action: Allow}},
		{"user to protected", alice, "/profile", Decision{Action: Allow}},
		{"user to home", alice, "/", Decision{Action: Allow}},
		{"guest to sub path", nil, "/profile/settings", Decision{Action: Allow}},
		{"guest to trailing slash", nil, "/profile/", Decision{Action: Allow}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Decide(tt.user, tt.target))
		})
	}
}

func TestCustomRules(t *testing.T) {
	rules := Rules{ProtectedPath: "/admin", LoginPath: "/signin"}
	assert.Equal(t, Decision{Action: Redirect, Location: "/signin"}, rules.Decide(nil, "/admin"))
	assert.Equal(t, Decision{Action: Allow}, rules.Decide(nil, "/profile"))
}

func TestActionString(t *testing.T) {
	assert.Equal(t, "allow", Allow.String())
	assert.Equal(t, "redirect", Redirect.String())
	assert.Equal(t, "unknown", Action(7).String())
}

func newGuardedRouter(t *testing.T, state *session.State, feed *activity.Feed) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.Use(func(c *gin.Context) {
		if state != nil {
			c.Request = c.Request.WithContext(session.WithState(c.Request.Context(), state))
		}
		c.Next()
	})
	var recorder activity.Recorder
	if feed != nil {
		recorder = feed
	}
	router.Use(Middleware(DefaultRules, zaptest.NewLogger(t), recorder))
	for _, path := range []string{"/", "/login", "/profile"} {
		router.GET(path, func(c *gin.Context) { c.String(http.StatusOK, "page") })
	}
	return router
}

func serve(router http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil).WithContext(context.Background())
	router.ServeHTTP(w, req)
	return w
}

func TestMiddlewareRedirectsGuest(t *testing.T) {
	feed := activity.NewFeed(10)
	router := newGuardedRouter(t, session.NewState("s1", nil, nil), feed)

	w := serve(router, "/profile")
	require.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	history := feed.History(0)
	require.Len(t, history, 1)
	assert.Equal(t, activity.KindGuard, history[0].Kind)

	w = serve(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestMiddlewareAllowsLoggedInUser(t *testing.T) {
	state := session.NewState("s1", nil, nil)
	state.Login("alice")
	router := newGuardedRouter(t, state, nil)

	w := serve(router, "/profile")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "page", w.Body.String())
}

func TestMiddlewareWithoutSessionTreatsGuest(t *testing.T) {
	router := newGuardedRouter(t, nil, nil)

	w := serve(router, "/profile")
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestMiddlewareLogsBothOutcomes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	router := gin.New()
	router.Use(Middleware(DefaultRules, zap.New(core), nil))
	router.GET("/profile", func(c *gin.Context) { c.String(http.StatusOK, "page") })
	router.GET("/", func(c *gin.Context) { c.String(http.StatusOK, "page") })

	serve(router, "/profile")
	serve(router, "/")

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "Guest redirected to login", entries[0].Message)
	assert.Equal(t, "/profile", entries[0].ContextMap()["path"])
	assert.Equal(t, "Navigation allowed", entries[1].Message)
	assert.Equal(t, "/", entries[1].ContextMap()["path"])
}
