package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/groblegark/pushconfig/internal/events"
	"github.com/groblegark/pushconfig/internal/model"
	"github.com/groblegark/pushconfig/internal/store/memory"
)

// newTestHandler returns a handler backed by a fresh in-memory store.
func newTestHandler(t *testing.T) http.Handler {
	t.Helper()
	s := NewPushConfigServer(memory.New(100), &events.NoopPublisher{})
	return s.NewHTTPHandler("")
}

func doRequest(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHandleSetInfo(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
		&model.PushConfig{ID: "cfg-a", URL: "https://example.com/hook"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got model.PushConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "cfg-a" || got.URL != "https://example.com/hook" {
		t.Fatalf("got %+v", got)
	}
}

func TestHandleSetInfo_DefaultsID(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
		&model.PushConfig{URL: "https://example.com/hook"})
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var got model.PushConfig
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.ID != "t1" {
		t.Fatalf("got id=%q, want task ID", got.ID)
	}
}

func TestHandleSetInfo_BadRequests(t *testing.T) {
	h := newTestHandler(t)

	// Malformed body.
	req := httptest.NewRequest(http.MethodPut, "/v1/tasks/t1/push-configs",
		bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("malformed body: status = %d, want 400", rec.Code)
	}

	// Missing URL.
	rec = doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs", &model.PushConfig{ID: "cfg-a"})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing url: status = %d, want 400", rec.Code)
	}
}

func TestHandleListInfo_Pagination(t *testing.T) {
	h := newTestHandler(t)

	for _, id := range []string{"a", "b", "c"} {
		rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
			&model.PushConfig{ID: id, URL: "https://" + id})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed %s: status %d", id, rec.Code)
		}
	}

	var (
		seen  []string
		token string
		pages int
	)
	for {
		path := "/v1/tasks/t1/push-configs?page_size=2"
		if token != "" {
			path += "&page_token=" + token
		}
		rec := doRequest(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("list: status = %d, body = %s", rec.Code, rec.Body.String())
		}
		var result model.ListResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if len(result.Configs) > 2 {
			t.Fatalf("page exceeds page_size: %d", len(result.Configs))
		}
		for _, c := range result.Configs {
			if c.TaskID != "t1" {
				t.Errorf("item task = %q, want t1", c.TaskID)
			}
			seen = append(seen, c.Config.ID)
		}
		pages++
		if result.NextPageToken == "" {
			break
		}
		token = result.NextPageToken
	}

	if pages != 2 || len(seen) != 3 {
		t.Fatalf("walked %d pages with %d items: %v", pages, len(seen), seen)
	}
}

func TestHandleListInfo_Tenant(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
		&model.PushConfig{URL: "https://a"})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed: status %d", rec.Code)
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/tasks/t1/push-configs?tenant=acme", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var result model.ListResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(result.Configs) != 1 || result.Configs[0].Tenant != "acme" {
		t.Fatalf("got %+v", result.Configs)
	}
}

func TestHandleListInfo_BadParams(t *testing.T) {
	h := newTestHandler(t)

	for _, path := range []string{
		"/v1/tasks/t1/push-configs?page_token=notanumber:abc",
		"/v1/tasks/t1/push-configs?page_token=12345",
		"/v1/tasks/t1/push-configs?page_size=abc",
	} {
		rec := doRequest(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", path, rec.Code)
		}
	}

	// An empty list for an unknown task is not an error.
	rec := doRequest(t, h, http.MethodGet, "/v1/tasks/unknown/push-configs", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("unknown task: status = %d", rec.Code)
	}
	var result model.ListResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if result.Configs == nil || len(result.Configs) != 0 {
		t.Fatalf("want empty (non-null) configs, got %v", result.Configs)
	}
}

func TestHandleDeleteInfo_Idempotent(t *testing.T) {
	h := newTestHandler(t)

	rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
		&model.PushConfig{ID: "cfg-a", URL: "https://a"})
	if rec.Code != http.StatusOK {
		t.Fatalf("seed: status %d", rec.Code)
	}

	for i := 0; i < 2; i++ {
		rec := doRequest(t, h, http.MethodDelete, "/v1/tasks/t1/push-configs/cfg-a", nil)
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete attempt %d: status = %d, want 204", i+1, rec.Code)
		}
	}

	rec = doRequest(t, h, http.MethodGet, "/v1/tasks/t1/push-configs", nil)
	var result model.ListResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(result.Configs) != 0 {
		t.Fatalf("expected no configs after delete, got %d", len(result.Configs))
	}
}

func TestHandleHealth(t *testing.T) {
	h := newTestHandler(t)
	rec := doRequest(t, h, http.MethodGet, "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestAuthMiddleware(t *testing.T) {
	s := NewPushConfigServer(memory.New(100), &events.NoopPublisher{})
	h := s.NewHTTPHandler("secret")

	// Health is exempt.
	rec := doRequest(t, h, http.MethodGet, "/v1/health", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("health: status = %d", rec.Code)
	}

	for _, tc := range []struct {
		name   string
		header string
		want   int
	}{
		{"MissingHeader", "", http.StatusUnauthorized},
		{"WrongScheme", "Basic secret", http.StatusUnauthorized},
		{"WrongToken", "Bearer wrong", http.StatusUnauthorized},
		{"Valid", "Bearer secret", http.StatusOK},
	} {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/v1/tasks/t1/push-configs", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, req)
			if rec.Code != tc.want {
				t.Fatalf("status = %d, want %d", rec.Code, tc.want)
			}
		})
	}
}

func TestListInfo_ManyPagesThroughHandler(t *testing.T) {
	h := newTestHandler(t)

	const n = 12
	for i := 0; i < n; i++ {
		id := fmt.Sprintf("cfg-%02d", i)
		rec := doRequest(t, h, http.MethodPut, "/v1/tasks/t1/push-configs",
			&model.PushConfig{ID: id, URL: "https://" + id})
		if rec.Code != http.StatusOK {
			t.Fatalf("seed %s: status %d", id, rec.Code)
		}
	}

	seen := make(map[string]bool)
	token := ""
	for {
		path := "/v1/tasks/t1/push-configs?page_size=5"
		if token != "" {
			path += "&page_token=" + token
		}
		rec := doRequest(t, h, http.MethodGet, path, nil)
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d", rec.Code)
		}
		var result model.ListResult
		if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		for _, c := range result.Configs {
			if seen[c.Config.ID] {
				t.Fatalf("config %s returned twice", c.Config.ID)
			}
			seen[c.Config.ID] = true
		}
		if result.NextPageToken == "" {
			break
		}
		token = result.NextPageToken
	}
	if len(seen) != n {
		t.Fatalf("saw %d configs, want %d", len(seen), n)
	}
}
