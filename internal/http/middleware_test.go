package http_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	httptransport "github.com/example/shower-timer/internal/http"
)

func TestRequestLogger(t *testing.T) {
	t.Parallel()

	t.Run("injects a request-scoped logger", func(t *testing.T) {
		t.Parallel()

		var sawLogger bool
		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sawLogger = httptransport.LoggerFromContext(r.Context()) != nil
			w.WriteHeader(http.StatusNoContent)
		})

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := httptransport.RequestLogger(base)(inner)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

		if rec.Code != http.StatusNoContent {
			t.Fatalf("expected 204, got %d", rec.Code)
		}
		if !sawLogger {
			t.Fatal("expected a logger in the request context")
		}
	})

	t.Run("logs the request boundaries with a request id", func(t *testing.T) {
		t.Parallel()

		inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})

		var buf bytes.Buffer
		base := slog.New(slog.NewJSONHandler(&buf, nil))
		handler := httptransport.RequestLogger(base)(inner)

		handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/showers", nil))

		decoder := json.NewDecoder(&buf)
		var entries []map[string]any
		for decoder.More() {
			var entry map[string]any
			if err := decoder.Decode(&entry); err != nil {
				t.Fatalf("failed to decode log entry: %v", err)
			}
			entries = append(entries, entry)
		}

		if len(entries) != 2 {
			t.Fatalf("expected start and completion entries, got %d", len(entries))
		}
		for _, entry := range entries {
			if entry["request_id"] == "" || entry["request_id"] == nil {
				t.Errorf("expected a request_id, got %v", entry)
			}
			if entry["path"] != "/showers" {
				t.Errorf("expected path /showers, got %v", entry["path"])
			}
		}
	})
}
