package server

import (
	"net/http"
	"slices"
	"strings"

	"github.com/agbru/fpcore/internal/config"
)

// SecurityConfig controls response hardening and request limits.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	// MaxSamples bounds the samples parameter of /check.
	MaxSamples int
}

// DefaultSecurityConfig allows cross-origin GET requests from any origin and
// caps /check at config.MaxServeSamples.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodOptions},
		MaxSamples:     config.MaxServeSamples,
	}
}

// allowedOrigin returns the Access-Control-Allow-Origin value for origin, or
// "" when the origin is not allowed.
func (c SecurityConfig) allowedOrigin(origin string) string {
	if slices.Contains(c.AllowedOrigins, "*") {
		return "*"
	}
	if origin != "" && slices.Contains(c.AllowedOrigins, origin) {
		return origin
	}
	return ""
}

// SecurityMiddleware sets security headers, applies CORS and answers
// preflight requests without calling next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("Referrer-Policy", "no-referrer")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if allowed := config.allowedOrigin(r.Header.Get("Origin")); allowed != "" {
				h.Set("Access-Control-Allow-Origin", allowed)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", "86400")
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next(w, r)
	}
}
