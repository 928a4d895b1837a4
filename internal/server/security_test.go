package server

import (
	"net/http"
	"net/http/httptest"
	"slices"
	"testing"
)

func TestDefaultSecurityConfig(t *testing.T) {
	config := DefaultSecurityConfig()

	if !config.EnableCORS {
		t.Error("EnableCORS should be true by default")
	}
	if len(config.AllowedOrigins) != 1 || config.AllowedOrigins[0] != "*" {
		t.Errorf("AllowedOrigins = %v, want [\"*\"]", config.AllowedOrigins)
	}
	if !slices.Contains(config.AllowedMethods, "GET") || !slices.Contains(config.AllowedMethods, "OPTIONS") {
		t.Errorf("AllowedMethods = %v, want GET and OPTIONS", config.AllowedMethods)
	}
	if config.MaxSamples != 10_000 {
		t.Errorf("MaxSamples = %d, want 10000", config.MaxSamples)
	}
}

func TestSecurityMiddleware_SecurityHeaders(t *testing.T) {
	nextCalled := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	rec := httptest.NewRecorder()
	handler(rec, httptest.NewRequest("GET", "/check", http.NoBody))

	tests := []struct {
		header string
		want   string
	}{
		{"X-Content-Type-Options", "nosniff"},
		{"X-Frame-Options", "DENY"},
		{"Referrer-Policy", "no-referrer"},
		{"Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.header, func(t *testing.T) {
			if got := rec.Header().Get(tt.header); got != tt.want {
				t.Errorf("%s = %q, want %q", tt.header, got, tt.want)
			}
		})
	}

	if !nextCalled {
		t.Error("next handler was not called")
	}
}

func TestSecurityMiddleware_CORS(t *testing.T) {
	tests := []struct {
		name           string
		config         SecurityConfig
		origin         string
		expectedOrigin string
	}{
		{"CORS disabled", SecurityConfig{EnableCORS: false}, "http://example.com", ""},
		{"wildcard origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}}, "http://example.com", "*"},
		{"specific allowed origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://allowed.com"}, AllowedMethods: []string{"GET"}}, "http://allowed.com", "http://allowed.com"},
		{"disallowed origin", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://allowed.com"}, AllowedMethods: []string{"GET"}}, "http://notallowed.com", ""},
		{"second of several origins", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://first.com", "http://second.com"}, AllowedMethods: []string{"GET"}}, "http://second.com", "http://second.com"},
		{"no origin with wildcard", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"*"}, AllowedMethods: []string{"GET"}}, "", "*"},
		{"no origin with specific origins", SecurityConfig{EnableCORS: true, AllowedOrigins: []string{"http://specific.com"}, AllowedMethods: []string{"GET"}}, "", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			handler := SecurityMiddleware(tt.config, func(w http.ResponseWriter, r *http.Request) {})

			req := httptest.NewRequest("GET", "/check", http.NoBody)
			if tt.origin != "" {
				req.Header.Set("Origin", tt.origin)
			}
			rec := httptest.NewRecorder()
			handler(rec, req)

			got := rec.Header().Get("Access-Control-Allow-Origin")
			if got != tt.expectedOrigin {
				t.Errorf("Access-Control-Allow-Origin = %q, want %q", got, tt.expectedOrigin)
			}
			if tt.expectedOrigin != "" {
				if rec.Header().Get("Access-Control-Allow-Methods") == "" {
					t.Error("Access-Control-Allow-Methods should be set")
				}
				if rec.Header().Get("Access-Control-Max-Age") == "" {
					t.Error("Access-Control-Max-Age should be set")
				}
			}
		})
	}
}

func TestSecurityMiddleware_Preflight(t *testing.T) {
	nextCalled := false
	handler := SecurityMiddleware(DefaultSecurityConfig(), func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest("OPTIONS", "/check", http.NoBody)
	req.Header.Set("Origin", "http://example.com")
	rec := httptest.NewRecorder()
	handler(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusNoContent)
	}
	if nextCalled {
		t.Error("next handler should not be called for OPTIONS")
	}
	if rec.Header().Get("Access-Control-Allow-Origin") == "" {
		t.Error("CORS headers should be set for OPTIONS")
	}
}
