package kit

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func okHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
}

func TestIPRateLimiter_SlidingWindow(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	l := NewIPRateLimiter(2, time.Minute)
	l.now = func() time.Time { return now }
	h := l.Middleware(okHandler())

	call := func(remote, xff string) int {
		r := httptest.NewRequest(http.MethodGet, "/api/apis", nil)
		r.RemoteAddr = remote
		if xff != "" {
			r.Header.Set("X-Forwarded-For", xff)
		}
		w := httptest.NewRecorder()
		h.ServeHTTP(w, r)
		return w.Code
	}

	for i := 0; i < 2; i++ {
		if code := call("10.0.0.1:5000", ""); code != http.StatusOK {
			t.Fatalf("call %d: status=%d", i, code)
		}
	}
	if code := call("10.0.0.1:5001", ""); code != http.StatusTooManyRequests {
		t.Fatalf("status=%d want 429", code)
	}
	if code := call("10.0.0.2:5000", ""); code != http.StatusOK {
		t.Fatalf("other client limited: %d", code)
	}
	if code := call("10.0.0.9:5000", "10.0.0.1, 172.16.0.1"); code != http.StatusTooManyRequests {
		t.Fatalf("forwarded client not limited: %d", code)
	}

	now = now.Add(time.Minute + time.Second)
	if code := call("10.0.0.1:5000", ""); code != http.StatusOK {
		t.Fatalf("after window: status=%d", code)
	}
}

func TestMetricsAuth(t *testing.T) {
	cases := []struct {
		name   string
		token  string
		header string
		want   int
	}{
		{"open when no token", "", "", http.StatusOK},
		{"missing header", "s3cret", "", http.StatusForbidden},
		{"wrong token", "s3cret", "Bearer nope", http.StatusForbidden},
		{"wrong scheme", "s3cret", "Basic s3cret", http.StatusForbidden},
		{"ok", "s3cret", "Bearer s3cret", http.StatusOK},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/metrics", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()

			MetricsAuth(tc.token)(okHandler()).ServeHTTP(w, r)
			if w.Code != tc.want {
				t.Fatalf("status=%d want %d", w.Code, tc.want)
			}
		})
	}
}

func TestWriteFailure(t *testing.T) {
	w := httptest.NewRecorder()
	WriteFailure(w, http.StatusInternalServerError, "Failed to load API data")

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", w.Code)
	}
	if got := w.Body.String(); got != "{\"success\":false,\"message\":\"Failed to load API data\"}\n" {
		t.Fatalf("body=%q", got)
	}
}
