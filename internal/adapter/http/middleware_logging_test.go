package adapthttp

import (
	"bytes"
	"log"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestLoggingMiddleware(t *testing.T) {
	var buf bytes.Buffer
	originalOutput := log.Writer()
	log.SetOutput(&buf)
	defer log.SetOutput(originalOutput)

	s := &Server{}
	handler := s.loggingMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/students", nil))

	if w.Code != http.StatusTeapot {
		t.Fatalf("expected %d, got %d", http.StatusTeapot, w.Code)
	}
	for _, want := range []string{"GET", "/students", "418"} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("log line missing %q: %s", want, buf.String())
		}
	}
}

func TestSafeNext(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", "/students"},
		{"/students/7", "/students/7"},
		{"//evil.example", "/students"},
		{"https://evil.example", "/students"},
		{"students", "/students"},
	}
	for _, tc := range tests {
		if got := safeNext(tc.in, "/students"); got != tc.want {
			t.Errorf("safeNext(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
