package requestutil

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSanitizeRequestID(t *testing.T) {
	if got := SanitizeRequestID("valid-123"); got != "valid-123" {
		t.Fatalf("expected pass-through, got %s", got)
	}
	if got := SanitizeRequestID("bad id"); got == "" || got == "bad id" {
		t.Fatalf("expected sanitized id, got %s", got)
	}
	id := NewRequestID()
	if len(id) != 32 || !requestIDPattern.MatchString(id) {
		t.Fatalf("expected 32-char id accepted by the pattern, got %q", id)
	}
	if NewRequestID() == id {
		t.Fatalf("expected unique ids")
	}
}

func TestClientIP(t *testing.T) {
	if got := ClientIP(nil); got != "" {
		t.Fatalf("expected empty for nil request, got %q", got)
	}

	cases := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "1.2.3.4, 5.6.7.8"}, "9.9.9.9:1", "1.2.3.4"},
		{"real ip", map[string]string{"X-Real-IP": "4.4.4.4"}, "9.9.9.9:1", "4.4.4.4"},
		{"empty forwarded", map[string]string{"X-Forwarded-For": " ,5.6.7.8"}, "9.9.9.9:1234", "9.9.9.9"},
		{"peer without port", nil, "unix-socket", "unix-socket"},
	}
	for _, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = tc.remote
		for k, v := range tc.headers {
			req.Header.Set(k, v)
		}
		if got := ClientIP(req); got != tc.want {
			t.Fatalf("%s: expected %s, got %s", tc.name, tc.want, got)
		}
	}
}

func TestBearerToken(t *testing.T) {
	if _, ok := BearerToken(nil); ok {
		t.Fatalf("expected no token for nil request")
	}

	cases := map[string]struct {
		header string
		want   string
		ok     bool
	}{
		"valid":        {"Bearer abc", "abc", true},
		"case":         {"bearer abc", "abc", true},
		"basic":        {"Basic abc", "", false},
		"missing":      {"", "", false},
		"empty token":  {"Bearer ", "", false},
		"no separator": {"Bearerabc", "", false},
	}
	for name, tc := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		if tc.header != "" {
			req.Header.Set("Authorization", tc.header)
		}
		got, ok := BearerToken(req)
		if got != tc.want || ok != tc.ok {
			t.Fatalf("%s: expected (%q,%v), got (%q,%v)", name, tc.want, tc.ok, got, ok)
		}
	}
}
