package ai

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGetResponse_ExtractsAssistantText(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/responses" {
			t.Errorf("path = %q, want /responses", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer key-1" {
			t.Errorf("auth = %q", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"resp_1","status":"completed","output":[{"type":"message","role":"assistant","content":[{"type":"output_text","text":"hello back"}]}]}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("key-1", "gpt-4o-mini")
	c.SetAPIBase(srv.URL)

	got, err := c.GetResponse("hello")
	if err != nil {
		t.Fatalf("GetResponse failed: %v", err)
	}
	if got != "hello back" {
		t.Errorf("GetResponse = %q", got)
	}
}

func TestGetResponse_APIErrorSurfaces(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	c := NewOpenAIClient("key-1", "gpt-4o-mini")
	c.SetAPIBase(srv.URL)

	_, err := c.GetResponse("hello")
	if err == nil {
		t.Fatal("expected error for HTTP 429")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("error %q does not mention the status", err)
	}
}

func TestGetResponse_MissingKey(t *testing.T) {
	c := NewOpenAIClient("", "gpt-4o-mini")

	if _, err := c.GetResponse("hello"); err == nil {
		t.Fatal("expected error with no API key")
	}
	if c.IsConfigured() {
		t.Error("IsConfigured() = true with empty key")
	}
}
