package pages

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"DemoLab/DemoServer/clock"
	"DemoLab/DemoServer/counter"
	"DemoLab/DemoServer/guard"
	"DemoLab/DemoServer/session"
)

func newRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	logger := zaptest.NewLogger(t)
	manager := session.NewManager(nil, time.Hour, logger, nil)
	mw := session.NewMiddleware(manager, session.NewTokenManager("pages-secret", time.Hour), "", false, logger)
	sessions := session.NewHandler(guard.DefaultRules.ProtectedPath, "/")
	store := counter.NewStore(counter.WithSleeper(&clock.Instant{}))

	router := gin.New()
	router.SetHTMLTemplate(Templates())
	router.Use(mw.Handler())
	router.POST("/api/login", sessions.Login)
	router.POST("/api/logout", sessions.Logout)
	NewHandler(guard.DefaultRules, store).Register(router, guard.Middleware(guard.DefaultRules, logger, nil))
	return router
}

func serve(router http.Handler, req *http.Request, cookies []*http.Cookie) *httptest.ResponseRecorder {
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestGuestPages(t *testing.T) {
	router := newRouter(t)

	w := serve(router, httptest.NewRequest(http.MethodGet, "/", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "browsing as a guest")
	assert.Contains(t, w.Body.String(), `<span id="count">0</span>`)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/login", nil), nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `action="/api/login"`)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/profile", nil), nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestLoginFlow(t *testing.T) {
	router := newRouter(t)

	form := url.Values{"username": {"alice"}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := serve(router, req, nil)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/profile", w.Header().Get("Location"))
	cookies := w.Result().Cookies()
	require.NotEmpty(t, cookies)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/profile", nil), cookies)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `<strong id="username">alice</strong>`)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/", nil), cookies)
	assert.Contains(t, w.Body.String(), "Signed in as <strong>alice</strong>")

	req = httptest.NewRequest(http.MethodPost, "/api/logout", strings.NewReader(""))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w = serve(router, req, cookies)
	require.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	w = serve(router, httptest.NewRequest(http.MethodGet, "/profile", nil), cookies)
	assert.Equal(t, http.StatusFound, w.Code)
}

func TestUsernameIsEscaped(t *testing.T) {
	router := newRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(`{"username":"<b>x</b>"}`))
	req.Header.Set("Content-Type", "application/json")
	w := serve(router, req, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = serve(router, httptest.NewRequest(http.MethodGet, "/profile", nil), w.Result().Cookies())
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "<b>x</b>")
	assert.Contains(t, w.Body.String(), "&lt;b&gt;x&lt;/b&gt;")
}
