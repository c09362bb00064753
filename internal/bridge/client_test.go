package bridge

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestClient_NotifyUsername(t *testing.T) {
	t.Parallel()

	t.Run("posts the name as a message payload", func(t *testing.T) {
		t.Parallel()

		var (
			gotMethod      string
			gotContentType string
			gotBody        map[string]string
		)
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotMethod = r.Method
			gotContentType = r.Header.Get("Content-Type")
			payload, _ := io.ReadAll(r.Body)
			_ = json.Unmarshal(payload, &gotBody)
			w.WriteHeader(http.StatusOK)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		if err := client.NotifyUsername(context.Background(), "Hopper"); err != nil {
			t.Fatalf("NotifyUsername returned error: %v", err)
		}

		if gotMethod != http.MethodPost {
			t.Errorf("expected POST, got %s", gotMethod)
		}
		if gotContentType != "application/json" {
			t.Errorf("expected JSON content type, got %q", gotContentType)
		}
		if gotBody["message"] != "Hopper" {
			t.Errorf("expected message Hopper, got %v", gotBody)
		}
	})

	t.Run("reports non-2xx responses as errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Second)
		if err := client.NotifyUsername(context.Background(), "Hopper"); err == nil {
			t.Fatal("expected error for 502 response")
		}
	})

	t.Run("reports unreachable bridges as errors", func(t *testing.T) {
		t.Parallel()

		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		server.Close()

		client := NewClient(server.URL, time.Second)
		if err := client.NotifyUsername(context.Background(), "Hopper"); err == nil {
			t.Fatal("expected error for closed server")
		}
	})

	t.Run("honours context cancellation", func(t *testing.T) {
		t.Parallel()

		started := make(chan struct{})
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			close(started)
			// Drain the body so the server watches the connection and
			// cancels the request context when the client disconnects.
			_, _ = io.Copy(io.Discard, r.Body)
			<-r.Context().Done()
		}))
		defer server.Close()

		client := NewClient(server.URL, time.Minute)
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			<-started
			cancel()
		}()

		if err := client.NotifyUsername(ctx, "Hopper"); err == nil {
			t.Fatal("expected error after cancellation")
		}
	})
}
