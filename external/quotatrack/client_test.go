package quotatrack

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

func TestIsQuotaExhausted_CachesAnswer(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer tracker-token" {
			t.Errorf("auth header: got=%q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"provider": "apifootball", "exhausted": true, "remaining": 0}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:  server.URL,
		Token:    "tracker-token",
		CacheTTL: time.Minute,
		Logger:   logging.NewNop(),
	})

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		exhausted, err := client.IsQuotaExhausted(ctx, "apifootball")
		if err != nil {
			t.Fatalf("quota check %d: unexpected error %v", i, err)
		}
		if !exhausted {
			t.Fatalf("quota check %d: got=false want=true", i)
		}
	}
	if calls != 1 {
		t.Fatalf("tracker calls: got=%d want=%d", calls, 1)
	}
}

func TestRecordCall_InvalidatesCache(t *testing.T) {
	t.Parallel()

	var statusCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		if r.Method == http.MethodPost {
			w.WriteHeader(http.StatusAccepted)
			return
		}
		statusCalls++
		_, _ = w.Write([]byte(`{"provider": "apifootball", "exhausted": false, "remaining": 10}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:  server.URL,
		CacheTTL: time.Minute,
		Logger:   logging.NewNop(),
	})

	ctx := context.Background()
	if _, err := client.IsQuotaExhausted(ctx, "apifootball"); err != nil {
		t.Fatalf("first check: unexpected error %v", err)
	}
	if err := client.RecordCall(ctx, "apifootball", 1); err != nil {
		t.Fatalf("record call: unexpected error %v", err)
	}
	if _, err := client.IsQuotaExhausted(ctx, "apifootball"); err != nil {
		t.Fatalf("second check: unexpected error %v", err)
	}
	if statusCalls != 2 {
		t.Fatalf("status calls after invalidation: got=%d want=%d", statusCalls, 2)
	}
}

func TestRecordCall_SendsCountPayload(t *testing.T) {
	t.Parallel()

	var payload struct {
		Count int `json:"count"`
	}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/json" {
			t.Errorf("content type: got=%q want=application/json", got)
		}
		body, err := io.ReadAll(r.Body)
		if err != nil {
			t.Errorf("read payload: %v", err)
		}
		if err := sonic.Unmarshal(body, &payload); err != nil {
			t.Errorf("decode payload %q: %v", body, err)
		}
		w.WriteHeader(http.StatusAccepted)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	if err := client.RecordCall(context.Background(), "apifootball", 7); err != nil {
		t.Fatalf("record call: unexpected error %v", err)
	}
	if payload.Count != 7 {
		t.Fatalf("count payload: got=%d want=%d", payload.Count, 7)
	}
}

func TestRecordCall_ZeroCountIsNoop(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
		t.Errorf("zero count must not reach the tracker")
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	if err := client.RecordCall(context.Background(), "apifootball", 0); err != nil {
		t.Fatalf("zero count: unexpected error %v", err)
	}
}

func TestIsQuotaExhausted_ServerErrorSurfaces(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(ClientConfig{BaseURL: server.URL, Logger: logging.NewNop()})
	if _, err := client.IsQuotaExhausted(context.Background(), "apifootball"); err == nil {
		t.Fatalf("expected tracker failure to surface")
	}
}
