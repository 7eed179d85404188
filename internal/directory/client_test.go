package directory

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := New(Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	return client, server
}

func TestNew_MissingAPIKey(t *testing.T) {
	if _, err := New(Config{}); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey, got %v", err)
	}
	if _, err := New(Config{APIKey: "   "}); err != ErrMissingAPIKey {
		t.Fatalf("expected ErrMissingAPIKey for blank key, got %v", err)
	}
}

func TestSearchPositions_RequestShape(t *testing.T) {
	var captured searchRequest
	var apiKey, contentType string
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		apiKey = r.Header.Get("X-Api-Key")
		contentType = r.Header.Get("Content-Type")
		if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
			t.Errorf("decode request: %v", err)
		}
		w.Write([]byte(`{"data":[]}`))
	})

	_, err := client.SearchPositions(context.Background(), SearchQuery{
		Country: "ES",
		Titles:  []string{"Chief Product Officer", "VP of Product"},
		Limit:   10,
		Offset:  20,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if apiKey != "test-key" {
		t.Errorf("expected api key header, got %q", apiKey)
	}
	if contentType != "application/json" {
		t.Errorf("expected json content type, got %q", contentType)
	}
	if captured.Limit != 10 || captured.Offset != 20 {
		t.Errorf("unexpected pagination: %+v", captured)
	}
	if len(captured.Filters.Departments) != 1 || captured.Filters.Departments[0] != "product" {
		t.Errorf("expected product department filter, got %v", captured.Filters.Departments)
	}
	if len(captured.Filters.Locations) != 1 || captured.Filters.Locations[0].Country != "ES" {
		t.Errorf("expected ES location filter, got %v", captured.Filters.Locations)
	}
	if len(captured.Filters.JobTitles) != 2 {
		t.Errorf("expected job title filters, got %v", captured.Filters.JobTitles)
	}
}

func TestSearchPositions_FlatEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":[{"name":"Sarah Chen","title":"CPO","company":{"name":"TechFlow"}}]}`))
	})

	records, err := client.SearchPositions(context.Background(), SearchQuery{Country: "US"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Sarah Chen" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestSearchPositions_NestedEnvelope(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"data":{"items":[{"name":"Marcus Ruiz","title":"VP Product"}]}}`))
	})

	records, err := client.SearchPositions(context.Background(), SearchQuery{Country: "US"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(records) != 1 || records[0].Name != "Marcus Ruiz" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestSearchPositions_EnvelopeShapesEquivalent(t *testing.T) {
	record := `{"name":"Elena Volkov","title":"CPO","linkedInUrl":"https://linkedin.com/in/elena"}`
	bodies := []string{
		`{"data":[` + record + `]}`,
		`{"data":{"items":[` + record + `]}}`,
	}

	var results [][]Position
	for _, body := range bodies {
		payload := body
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		})
		records, err := client.SearchPositions(context.Background(), SearchQuery{})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		results = append(results, records)
	}

	if len(results[0]) != len(results[1]) {
		t.Fatalf("envelope shapes disagree: %d vs %d", len(results[0]), len(results[1]))
	}
	if results[0][0].LinkedInURL != results[1][0].LinkedInURL {
		t.Fatalf("envelope shapes produced different records")
	}
}

func TestSearchPositions_MalformedBody(t *testing.T) {
	cases := []string{``, `not json`, `{"data":"nope"}`, `{"something":"else"}`, `{"data":{"items":"nope"}}`}
	for _, body := range cases {
		payload := body
		client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(payload))
		})
		records, err := client.SearchPositions(context.Background(), SearchQuery{})
		if err != nil {
			t.Errorf("body %q: expected nil error, got %v", body, err)
		}
		if len(records) != 0 {
			t.Errorf("body %q: expected zero records, got %d", body, len(records))
		}
	}
}

func TestSearchPositions_UpstreamError(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte(`{"error":"upstream down"}`))
	})

	_, err := client.SearchPositions(context.Background(), SearchQuery{})
	if err == nil {
		t.Fatal("expected error")
	}
	if !IsDirectoryError(err) {
		t.Fatalf("expected DirectoryError, got %T", err)
	}
	de := err.(*DirectoryError)
	if de.StatusCode != http.StatusBadGateway {
		t.Errorf("expected status 502, got %d", de.StatusCode)
	}
	if de.Body == "" {
		t.Error("expected body carried for diagnostics")
	}
}

func TestSearchPositions_RateLimitRetriesOnce(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{"data":[{"name":"After Retry"}]}`))
	})

	records, err := client.SearchPositions(context.Background(), SearchQuery{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls)
	}
	if len(records) != 1 || records[0].Name != "After Retry" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestSearchPositions_RateLimitGivesUpAfterRetry(t *testing.T) {
	var calls int32
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusTooManyRequests)
	})

	_, err := client.SearchPositions(context.Background(), SearchQuery{})
	if !IsDirectoryError(err) {
		t.Fatalf("expected DirectoryError, got %v", err)
	}
	if atomic.LoadInt32(&calls) != 2 {
		t.Fatalf("expected exactly 2 calls, got %d", calls)
	}
}

func TestSearchPositions_ContextCancelled(t *testing.T) {
	client, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		w.Write([]byte(`{"data":[]}`))
	})

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := client.SearchPositions(ctx, SearchQuery{})
	if err == nil {
		t.Fatal("expected error from cancelled context")
	}
}
