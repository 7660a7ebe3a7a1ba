package apifootball

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/match-relevance/internal/domain/provider"
	"github.com/riskibarqy/match-relevance/internal/platform/logging"
)

func TestFetchFixtures_DecodesAndRedacts(t *testing.T) {
	t.Parallel()

	var capturedQuery string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		capturedQuery = r.URL.RawQuery
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"match_id": "100",
			"league_id": "302",
			"league_name": "La Liga",
			"match_date": "2024-03-10",
			"match_time": "20:00",
			"match_status": "",
			"match_hometeam_id": "76",
			"match_hometeam_name": "Real Madrid",
			"match_awayteam_id": "97",
			"match_awayteam_name": "Barcelona"
		}]`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "secret-key",
		Logger:  logging.NewNop(),
	})

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	got, err := client.FetchFixtures(context.Background(), day, day)
	if err != nil {
		t.Fatalf("fetch fixtures: unexpected error %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("fixture count: got=%d want=%d", len(got), 1)
	}
	if got[0].HomeTeam.Name != "Real Madrid" {
		t.Fatalf("home team: got=%s want=Real Madrid", got[0].HomeTeam.Name)
	}
	if !strings.Contains(capturedQuery, "action=get_events") {
		t.Fatalf("request query missing action: %s", capturedQuery)
	}
	if !strings.Contains(capturedQuery, "from=2024-03-10") || !strings.Contains(capturedQuery, "to=2024-03-10") {
		t.Fatalf("request query missing date range: %s", capturedQuery)
	}
}

func TestFetchFixtures_ErrorObjectPayload(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error": 404, "message": "No event found"}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL: server.URL,
		APIKey:  "secret-key",
		Logger:  logging.NewNop(),
	})

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	_, err := client.FetchFixtures(context.Background(), day, day)
	if err == nil {
		t.Fatalf("expected error payload to surface as error")
	}

	var provErr *provider.Error
	if !errors.As(err, &provErr) {
		t.Fatalf("expected provider error wrapper, got %v", err)
	}
	if provErr.Name != "apifootball" {
		t.Fatalf("provider name got=%q want=%q", provErr.Name, "apifootball")
	}
}

func TestFetchFixtures_NonRetryableStatusFailsFast(t *testing.T) {
	t.Parallel()

	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"error": 403}`))
	}))
	defer server.Close()

	client := NewClient(ClientConfig{
		BaseURL:    server.URL,
		APIKey:     "secret-key",
		MaxRetries: 3,
		Logger:     logging.NewNop(),
	})

	day := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)
	if _, err := client.FetchFixtures(context.Background(), day, day); err == nil {
		t.Fatalf("expected forbidden status to error")
	}
	if calls != 1 {
		t.Fatalf("forbidden status retried: calls got=%d want=%d", calls, 1)
	}
}

func TestRedactAPIURL_HidesKey(t *testing.T) {
	t.Parallel()

	redacted := redactAPIURL("https://apiv3.apifootball.com/?APIkey=secret&action=get_events")
	if strings.Contains(redacted, "secret") {
		t.Fatalf("api key leaked in %s", redacted)
	}
	if !strings.Contains(redacted, "APIkey=REDACTED") {
		t.Fatalf("expected redaction marker in %s", redacted)
	}
}
