package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/eslsoft/studydesk/internal/infrastructure/config"
)

func TestDetermineLogLevel(t *testing.T) {
	tests := []struct {
		status int
		want   logrus.Level
	}{
		{http.StatusOK, logrus.InfoLevel},
		{http.StatusNoContent, logrus.InfoLevel},
		{http.StatusNotFound, logrus.WarnLevel},
		{http.StatusUnprocessableEntity, logrus.WarnLevel},
		{http.StatusInternalServerError, logrus.ErrorLevel},
	}
	for _, tt := range tests {
		if got := determineLogLevel(tt.status); got != tt.want {
			t.Errorf("determineLogLevel(%d) = %v, want %v", tt.status, got, tt.want)
		}
	}
}

func TestAccessLogRecordsStatus(t *testing.T) {
	logger, hook := test.NewNullLogger()
	handler := AccessLog(logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "missing", http.StatusNotFound)
	}))

	req := httptest.NewRequest(http.MethodGet, "/api/courses/x", nil)
	req.Header.Set("X-Owner-ID", "alice")
	handler.ServeHTTP(httptest.NewRecorder(), req)

	entry := hook.LastEntry()
	if entry == nil {
		t.Fatalf("expected an access log entry")
	}
	if entry.Level != logrus.WarnLevel || entry.Data["status"] != http.StatusNotFound || entry.Data["owner"] != "alice" {
		t.Fatalf("unexpected entry level=%v data=%v", entry.Level, entry.Data)
	}
}

func TestServerAllowsConfiguredOrigins(t *testing.T) {
	cfg := &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", HTTPPort: 0, AllowedOrigins: []string{"http://localhost:5173"}},
	}
	logger, _ := test.NewNullLogger()
	srv := NewServer(cfg, logger, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	req := httptest.NewRequest(http.MethodOptions, "/api/tasks", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	req.Header.Set("Access-Control-Request-Headers", "X-Owner-ID")
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)

	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Fatalf("Access-Control-Allow-Origin = %q", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/tasks", nil)
	req.Header.Set("Origin", "http://evil.example")
	rec = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Fatalf("unexpected origin allowed: %q", got)
	}
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "debug", Format: "json"}})
	if err != nil {
		t.Fatalf("NewLogger returned error: %v", err)
	}
	if logger.GetLevel() != logrus.DebugLevel {
		t.Fatalf("level = %v", logger.GetLevel())
	}
	if _, ok := logger.Formatter.(*logrus.JSONFormatter); !ok {
		t.Fatalf("expected JSON formatter, got %T", logger.Formatter)
	}
	if _, err := NewLogger(&config.Config{Log: config.LogConfig{Level: "loud"}}); err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
