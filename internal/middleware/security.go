package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/templui/studyokr/internal/ctxkeys"
)

// External sources the layout loads (Tailwind and HTMX from CDNs)
var (
	scriptSources = []string{"https://cdn.tailwindcss.com", "https://unpkg.com"}
	styleSources  = []string{"'unsafe-inline'"}
)

// SecurityHeaders sets the browser hardening headers for every response.
// It must run after NonceMiddleware.
func SecurityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("X-DNS-Prefetch-Control", "on")
		h.Set("Content-Security-Policy", contentSecurityPolicy(GetNonce(r.Context())))

		cfg := ctxkeys.Config(r.Context())
		if cfg != nil && cfg.IsProduction() {
			h.Set("Strict-Transport-Security", "max-age=63072000; includeSubDomains")
		}

		next.ServeHTTP(w, r)
	})
}

func contentSecurityPolicy(nonce string) string {
	script := append([]string{"'self'"}, scriptSources...)
	if nonce != "" {
		script = append(script, fmt.Sprintf("'nonce-%s'", nonce))
	}
	style := append([]string{"'self'"}, styleSources...)

	directives := []string{
		"default-src 'self'",
		"script-src " + strings.Join(script, " "),
		"style-src " + strings.Join(style, " "),
		"img-src 'self' data:",
		"connect-src 'self'",
		"frame-ancestors 'none'",
		"base-uri 'self'",
		"form-action 'self'",
	}
	return strings.Join(directives, "; ")
}
