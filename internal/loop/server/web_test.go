package server

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestLandingHandler(t *testing.T) {
	s := newTestServer()
	s.now = func() time.Time { return time.Date(2024, 3, 9, 17, 45, 0, 0, time.UTC) }
	alice := s.RegisterClient("alice")
	s.RegisterClient("bob")
	s.ReportResult(alice.ID, 42, true)

	h := LandingHandler(s, LandingOptions{SSHHost: "game.example.com", SSHPort: "2222"})

	tests := []struct {
		name     string
		path     string
		status   int
		contains []string
	}{
		{
			name:   "landing",
			path:   "/",
			status: http.StatusOK,
			contains: []string{
				"ssh -t game.example.com -p 2222",
				"Players online: 2",
				"alice", "42", "won", "2024-03-09 17:45",
			},
		},
		{name: "unknown path", path: "/favicon.ico", status: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if rec.Code != tt.status {
				t.Fatalf("status = %d, want %d", rec.Code, tt.status)
			}
			body := rec.Body.String()
			for _, want := range tt.contains {
				if !strings.Contains(body, want) {
					t.Errorf("body missing %q", want)
				}
			}
		})
	}
}

func TestLandingHandlerDefaultPort(t *testing.T) {
	s := newTestServer()
	h := LandingHandler(s, LandingOptions{SSHHost: "host", SSHPort: "22"})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	body := rec.Body.String()
	if !strings.Contains(body, "<code>ssh -t host</code>") {
		t.Errorf("connect command not shortened: %s", body)
	}
	if strings.Contains(body, "Best scores") {
		t.Error("empty leaderboard rendered")
	}
}
