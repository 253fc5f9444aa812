package server

import (
	"net/http/httptest"
	"testing"
	"time"
)

func TestRateLimiterAllow(t *testing.T) {
	// 60 requests per minute with a burst of 2: the first two requests
	// pass immediately, the third is rejected.
	limiter := NewRateLimiter(60, time.Minute, 2, nil)
	defer limiter.Close()

	if !limiter.Allow("client-a") {
		t.Error("first request should be allowed")
	}
	if !limiter.Allow("client-a") {
		t.Error("second request should be allowed within burst")
	}
	if limiter.Allow("client-a") {
		t.Error("third request should exceed the burst")
	}

	// Other keys have independent buckets.
	if !limiter.Allow("client-b") {
		t.Error("a different key should not share the exhausted bucket")
	}
}

func TestRateLimiterStats(t *testing.T) {
	limiter := NewRateLimiter(120, time.Minute, 5, nil)
	defer limiter.Close()

	limiter.Allow("a")
	limiter.Allow("b")

	stats := limiter.GetStats()
	if stats["active_limiters"] != 2 {
		t.Errorf("active_limiters = %v, want 2", stats["active_limiters"])
	}
	if stats["rate_per_minute"] != 120.0 {
		t.Errorf("rate_per_minute = %v, want 120", stats["rate_per_minute"])
	}
	if stats["burst_capacity"] != 5 {
		t.Errorf("burst_capacity = %v, want 5", stats["burst_capacity"])
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	limiter := NewRateLimiter(60, time.Minute, 1, nil)
	defer limiter.Close()

	limiter.Allow("stale")
	limiter.cleanup(0)

	stats := limiter.GetStats()
	if stats["active_limiters"] != 0 {
		t.Errorf("active_limiters after cleanup = %v, want 0", stats["active_limiters"])
	}
}

func TestGetRateLimitKey(t *testing.T) {
	tests := []struct {
		name     string
		header   map[string]string
		byAPIKey bool
		byIP     bool
		want     string
	}{
		{
			name:     "api key header",
			header:   map[string]string{"X-API-Key": "secret"},
			byAPIKey: true,
			want:     "api:secret",
		},
		{
			name:     "bearer token",
			header:   map[string]string{"Authorization": "Bearer secret"},
			byAPIKey: true,
			want:     "api:secret",
		},
		{
			name:     "api key falls back to ip",
			byAPIKey: true,
			byIP:     true,
			want:     "ip:192.0.2.1",
		},
		{
			name: "ip only",
			byIP: true,
			want: "ip:192.0.2.1",
		},
		{
			name: "nothing configured",
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = "192.0.2.1:12345"
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			if got := getRateLimitKey(r, tt.byAPIKey, tt.byIP); got != tt.want {
				t.Errorf("getRateLimitKey() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetClientIP(t *testing.T) {
	tests := []struct {
		name       string
		remoteAddr string
		header     map[string]string
		want       string
	}{
		{
			name:       "remote addr",
			remoteAddr: "192.0.2.1:12345",
			want:       "192.0.2.1",
		},
		{
			name:       "x-forwarded-for wins",
			remoteAddr: "192.0.2.1:12345",
			header:     map[string]string{"X-Forwarded-For": "203.0.113.7, 192.0.2.1"},
			want:       "203.0.113.7",
		},
		{
			name:       "invalid forwarded entries are skipped",
			remoteAddr: "192.0.2.1:12345",
			header:     map[string]string{"X-Forwarded-For": "not-an-ip, 203.0.113.7"},
			want:       "203.0.113.7",
		},
		{
			name:       "x-real-ip",
			remoteAddr: "192.0.2.1:12345",
			header:     map[string]string{"X-Real-IP": "203.0.113.9"},
			want:       "203.0.113.9",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest("GET", "/health", nil)
			r.RemoteAddr = tt.remoteAddr
			for k, v := range tt.header {
				r.Header.Set(k, v)
			}

			if got := getClientIP(r); got != tt.want {
				t.Errorf("getClientIP() = %q, want %q", got, tt.want)
			}
		})
	}
}
