package services

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"slidecraft/internal/generation"

	"github.com/google/generative-ai-go/genai"
)

func TestUnsplashSearchImages(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/photos" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("query"); got != "electric vehicles" {
			t.Errorf("query = %q", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("per_page = %q", got)
		}
		if got := r.Header.Get("Authorization"); got != "Client-ID key" {
			t.Errorf("authorization = %q", got)
		}
		w.Write([]byte(`{"results":[{"urls":{"regular":"https://img/1"}},{"urls":{"regular":""}},{"urls":{"regular":"https://img/2"}}]}`))
	}))
	defer srv.Close()

	u := NewUnsplash("key")
	u.BaseURL = srv.URL
	urls, err := u.SearchImages(context.Background(), "electric vehicles", 10)
	if err != nil {
		t.Fatalf("SearchImages: %v", err)
	}
	if strings.Join(urls, ",") != "https://img/1,https://img/2" {
		t.Fatalf("urls = %v", urls)
	}
}

func TestUnsplashRateLimitedFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "Rate Limit Exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	u := NewUnsplash("key")
	u.BaseURL = srv.URL
	if _, err := u.SearchImages(context.Background(), "electric vehicles", 10); err == nil || !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected a 429 error, got %v", err)
	}

	resolver := generation.NewImageResolver(u, time.Second, nil)
	url := resolver.Resolve(context.Background(), "", "", "electric vehicles", generation.NewUsedImages())
	found := false
	for _, candidate := range generation.FallbackPool(generation.CategoryCars) {
		if candidate == url {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected a cars fallback image, got %q", url)
	}
}

func TestChatGPTGenerateText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer sk-test" {
			t.Errorf("authorization = %q", got)
		}
		var req OpenAIRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}
		if req.Model != "gpt-4o-mini" || len(req.Messages) != 2 || req.Messages[1].Content != "make slides" {
			t.Errorf("unexpected request %+v", req)
		}
		w.Write([]byte(`{"choices":[{"message":{"role":"assistant","content":"[{\"title\":\"A\"}]"}}]}`))
	}))
	defer srv.Close()

	c := NewChatGPT("sk-test", "gpt-4o-mini")
	c.URL = srv.URL
	text, err := c.GenerateText(context.Background(), "make slides")
	if err != nil {
		t.Fatalf("GenerateText: %v", err)
	}
	if text != `[{"title":"A"}]` {
		t.Fatalf("text = %q", text)
	}
}

func TestChatGPTErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":"overloaded"}`, http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := NewChatGPT("sk-test", "gpt-4o-mini")
	c.URL = srv.URL
	if _, err := c.GenerateText(context.Background(), "x"); err == nil || !strings.Contains(err.Error(), "503") {
		t.Fatalf("expected status error, got %v", err)
	}
}

func TestGeminiResponseText(t *testing.T) {
	resp := &genai.GenerateContentResponse{Candidates: []*genai.Candidate{{
		Content: &genai.Content{Parts: []genai.Part{genai.Text("[{\"title\":"), genai.Text("\"A\"}]")}},
	}}}
	text, err := responseText(resp)
	if err != nil || text != `[{"title":"A"}]` {
		t.Fatalf("responseText = %q, %v", text, err)
	}

	if _, err := responseText(&genai.GenerateContentResponse{}); err == nil {
		t.Error("expected an error without candidates")
	}
}
