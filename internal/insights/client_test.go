package insights

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newGeminiServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasSuffix(r.URL.Path, ":generateContent") {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("missing api key header")
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("bad request body: %v", err)
		}
		if len(req.Contents) != 1 || len(req.Contents[0].Parts) != 1 {
			t.Errorf("expected a single-turn prompt, got %+v", req.Contents)
		}
		if !strings.Contains(req.Contents[0].Parts[0].Text, "Usage Data:") {
			t.Errorf("prompt missing payload section")
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": reply}},
				}},
			},
		})
	}))
}

func newTestClient(url string) *Client {
	return NewClient(Config{APIKey: "test-key", Endpoint: url, Model: "gemini-2.0-flash"})
}

func TestClientSummarize(t *testing.T) {
	srv := newGeminiServer(t, "Room 204 peaks at 9am.")
	defer srv.Close()

	got, err := newTestClient(srv.URL).Summarize(context.Background(), instruction, `[{"room":"204"}]`)
	if err != nil {
		t.Fatalf("Summarize failed: %v", err)
	}
	if got != "Room 204 peaks at 9am." {
		t.Errorf("unexpected summary %q", got)
	}
}

func TestClientSummarize_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Summarize(context.Background(), instruction, "[]"); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}

func TestClientSummarize_APIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{
			"error": map[string]interface{}{"code": 400, "message": "invalid model"},
		})
	}))
	defer srv.Close()

	_, err := newTestClient(srv.URL).Summarize(context.Background(), instruction, "[]")
	if err == nil || !strings.Contains(err.Error(), "invalid model") {
		t.Fatalf("expected API error surfaced, got %v", err)
	}
}

func TestClientSummarize_NoCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]interface{}{"candidates": []interface{}{}})
	}))
	defer srv.Close()

	if _, err := newTestClient(srv.URL).Summarize(context.Background(), instruction, "[]"); err == nil {
		t.Fatal("expected error when no candidates are returned")
	}
}
