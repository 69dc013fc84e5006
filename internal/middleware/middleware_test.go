package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/a-h/templ"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/templui/studyokr/internal/config"
	"github.com/templui/studyokr/internal/ctxkeys"
	"github.com/templui/studyokr/internal/metrics"
	"github.com/templui/studyokr/internal/model"
)

var ok = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
})

func TestChainRunsInOrder(t *testing.T) {
	var calls []string
	mark := func(name string) func(http.Handler) http.Handler {
		return func(next http.Handler) http.Handler {
			return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				calls = append(calls, name)
				next.ServeHTTP(w, r)
			})
		}
	}

	h := Chain(ok, mark("first"), mark("second"), mark("third"))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, []string{"first", "second", "third"}, calls)
}

func TestSecurityHeaders(t *testing.T) {
	var nonce string
	h := Chain(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nonce = templ.GetNonce(r.Context())
	}), NonceMiddleware, SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	require.NotEmpty(t, nonce)
	assert.Equal(t, "DENY", rec.Header().Get("X-Frame-Options"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
	assert.Equal(t, "strict-origin-when-cross-origin", rec.Header().Get("Referrer-Policy"))
	assert.Equal(t, "on", rec.Header().Get("X-DNS-Prefetch-Control"))
	assert.Empty(t, rec.Header().Get("Strict-Transport-Security"))

	csp := rec.Header().Get("Content-Security-Policy")
	assert.Contains(t, csp, "'nonce-"+nonce+"'")
	assert.Contains(t, csp, "frame-ancestors 'none'")
	assert.NotContains(t, csp, "unsafe-eval")
}

func TestSecurityHeadersHSTSInProduction(t *testing.T) {
	h := Chain(ok, Config(&config.Config{AppEnv: "production"}), SecurityHeaders)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Contains(t, rec.Header().Get("Strict-Transport-Security"), "max-age=")
}

func TestCSRFProtection(t *testing.T) {
	var seen string
	h := CSRFProtection(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = ctxkeys.CSRFToken(r.Context())
	}))

	t.Run("safe method issues a token", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/auth", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		require.NotEmpty(t, seen)
		cookies := rec.Result().Cookies()
		require.Len(t, cookies, 1)
		assert.Equal(t, csrfCookieName, cookies[0].Name)
		assert.Equal(t, seen, cookies[0].Value)
	})

	t.Run("post without token is rejected", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/app/chat", strings.NewReader("message=hi"))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: generateCSRFToken()})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusForbidden, rec.Code)
	})

	t.Run("header token is accepted", func(t *testing.T) {
		token := generateCSRFToken()
		req := httptest.NewRequest(http.MethodPost, "/app/chat", nil)
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})
		req.Header.Set(csrfHeader, token)

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, token, seen)
	})

	t.Run("form token is accepted", func(t *testing.T) {
		token := generateCSRFToken()
		req := httptest.NewRequest(http.MethodPost, "/auth", strings.NewReader("csrf_token="+token))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		req.AddCookie(&http.Cookie{Name: csrfCookieName, Value: token})

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRateLimitAuth(t *testing.T) {
	limited := RateLimitAuth(2, time.Minute)(ok)

	send := func(remote string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/auth", nil)
		req.RemoteAddr = remote
		rec := httptest.NewRecorder()
		limited(rec, req)
		return rec
	}

	assert.Equal(t, http.StatusOK, send("10.0.0.1:1000").Code)
	assert.Equal(t, http.StatusOK, send("10.0.0.1:1001").Code)

	rec := send("10.0.0.1:1002")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "60", rec.Header().Get("Retry-After"))

	assert.Equal(t, http.StatusOK, send("10.0.0.2:1000").Code, "other clients keep their own budget")
}

func TestRateLimiterWindowExpires(t *testing.T) {
	rl := &RateLimiter{requests: map[string][]time.Time{}, limit: 1, window: time.Minute}
	rl.requests["ip"] = []time.Time{time.Now().Add(-2 * time.Minute)}

	assert.True(t, rl.Allow("ip"))
	assert.False(t, rl.Allow("ip"))

	rl.requests["ip"] = []time.Time{time.Now().Add(-3 * time.Minute)}
	rl.cleanup()
	assert.NotContains(t, rl.requests, "ip")
}

func TestRequireAuth(t *testing.T) {
	h := RequireAuth(ok)

	t.Run("anonymous is redirected", func(t *testing.T) {
		rec := httptest.NewRecorder()
		h(rec, httptest.NewRequest(http.MethodGet, "/app/dashboard", nil))
		assert.Equal(t, http.StatusSeeOther, rec.Code)
		assert.Equal(t, "/auth", rec.Header().Get("Location"))
	})

	t.Run("htmx gets HX-Redirect", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/app/chat", nil)
		req.Header.Set("HX-Request", "true")
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, "/auth", rec.Header().Get("HX-Redirect"))
	})

	t.Run("signed in passes", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/app/dashboard", nil)
		req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))
		rec := httptest.NewRecorder()
		h(rec, req)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestRequireGuest(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/auth", nil)
	req = req.WithContext(ctxkeys.WithUser(req.Context(), &model.User{ID: "u1"}))

	rec := httptest.NewRecorder()
	RequireGuest(ok)(rec, req)

	assert.Equal(t, "/app/dashboard", rec.Header().Get("Location"))
}

func TestRequestLoggingRecordsRoutePattern(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /app/history/{session}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	counter := metrics.RequestsTotal.WithLabelValues(http.MethodGet, "GET /app/history/{session}", "404")
	before := testutil.ToFloat64(counter)

	h := RequestLogging(mux)(mux)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/app/history/abc", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, before+1, testutil.ToFloat64(counter))
}

func TestWithURLPath(t *testing.T) {
	var path string
	h := WithURLPath(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path = ctxkeys.URLPath(r.Context())
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/app/chat?session=1", nil))

	assert.Equal(t, "/app/chat", path)
}
