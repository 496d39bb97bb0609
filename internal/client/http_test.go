package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groblegark/pushconfig/internal/events"
	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/server"
	"github.com/groblegark/pushconfig/internal/store/memory"
)

// newTestServer spins up the real HTTP handler over an in-memory store.
func newTestServer(t *testing.T, authToken string) (*httptest.Server, *HTTPClient) {
	t.Helper()
	srv := server.NewPushConfigServer(memory.New(100), &events.NoopPublisher{})
	ts := httptest.NewServer(srv.NewHTTPHandler(authToken))
	t.Cleanup(ts.Close)
	return ts, NewHTTPClient(ts.URL, authToken)
}

func TestHTTPClient_SetListDelete(t *testing.T) {
	_, c := newTestServer(t, "")
	ctx := context.Background()

	stored, err := c.SetInfo(ctx, "t1", &model.PushConfig{URL: "https://example.com/hook"})
	if err != nil {
		t.Fatalf("SetInfo: %v", err)
	}
	if stored.ID != "t1" {
		t.Fatalf("stored.ID = %q, want task ID default", stored.ID)
	}

	result, err := c.ListInfo(ctx, &ListInfoRequest{TaskID: "t1"})
	if err != nil {
		t.Fatalf("ListInfo: %v", err)
	}
	if len(result.Configs) != 1 || result.Configs[0].Config.URL != "https://example.com/hook" {
		t.Fatalf("got %+v", result.Configs)
	}

	if err := c.DeleteInfo(ctx, "t1", ""); err != nil {
		t.Fatalf("DeleteInfo: %v", err)
	}
	// Deleting again stays silent.
	if err := c.DeleteInfo(ctx, "t1", ""); err != nil {
		t.Fatalf("DeleteInfo (repeat): %v", err)
	}

	result, err = c.ListInfo(ctx, &ListInfoRequest{TaskID: "t1"})
	if err != nil {
		t.Fatalf("ListInfo after delete: %v", err)
	}
	if len(result.Configs) != 0 {
		t.Fatalf("expected no configs, got %d", len(result.Configs))
	}
}

func TestHTTPClient_ListPagination(t *testing.T) {
	_, c := newTestServer(t, "")
	ctx := context.Background()

	for _, id := range []string{"a", "b", "c", "d", "e"} {
		if _, err := c.SetInfo(ctx, "t1", &model.PushConfig{ID: id, URL: "https://" + id}); err != nil {
			t.Fatalf("seed %s: %v", id, err)
		}
	}

	seen := make(map[string]bool)
	token := ""
	for {
		result, err := c.ListInfo(ctx, &ListInfoRequest{TaskID: "t1", PageSize: 2, PageToken: token})
		if err != nil {
			t.Fatalf("ListInfo: %v", err)
		}
		if len(result.Configs) > 2 {
			t.Fatalf("page of %d exceeds page size", len(result.Configs))
		}
		for _, tc := range result.Configs {
			if seen[tc.Config.ID] {
				t.Fatalf("config %s returned twice", tc.Config.ID)
			}
			seen[tc.Config.ID] = true
		}
		if result.NextPageToken == "" {
			break
		}
		token = result.NextPageToken
	}
	if len(seen) != 5 {
		t.Fatalf("saw %d configs, want 5", len(seen))
	}
}

func TestHTTPClient_InvalidPageToken(t *testing.T) {
	_, c := newTestServer(t, "")

	_, err := c.ListInfo(context.Background(), &ListInfoRequest{TaskID: "t1", PageToken: "bogus:token"})
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", apiErr.StatusCode)
	}
	if apiErr.Message == "" {
		t.Fatal("expected an error message")
	}
}

func TestHTTPClient_Auth(t *testing.T) {
	ts, _ := newTestServer(t, "secret")
	ctx := context.Background()

	unauthed := NewHTTPClient(ts.URL, "")
	if _, err := unauthed.SetInfo(ctx, "t1", &model.PushConfig{URL: "https://a"}); err == nil {
		t.Fatal("expected error without token")
	}

	authed := NewHTTPClient(ts.URL, "secret")
	if _, err := authed.SetInfo(ctx, "t1", &model.PushConfig{URL: "https://a"}); err != nil {
		t.Fatalf("SetInfo with token: %v", err)
	}

	// Health works without a token.
	status, err := unauthed.Health(ctx)
	if err != nil {
		t.Fatalf("Health: %v", err)
	}
	if status != "ok" {
		t.Fatalf("status = %q, want ok", status)
	}
}

func TestHTTPClient_ErrorBodyParsing(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(map[string]string{"error": "database unavailable"})
	}))
	defer ts.Close()

	c := NewHTTPClient(ts.URL, "")
	_, err := c.Health(context.Background())
	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("err = %v, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusInternalServerError || apiErr.Message != "database unavailable" {
		t.Fatalf("got %+v", apiErr)
	}
}
