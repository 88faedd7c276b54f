package azureopenai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	coredomain "github.com/okondratev/devdocs-qa/internal/core/domain"
)

func TestGenerateSendsAzureRequestShape(t *testing.T) {
	var gotPath, gotAPIKey, gotVersion string
	var gotBody map[string]any

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAPIKey = r.Header.Get("api-key")
		gotVersion = r.URL.Query().Get("api-version")
		_ = json.NewDecoder(r.Body).Decode(&gotBody)

		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "  generated answer  "}},
			},
		})
	}))
	defer server.Close()

	client := New(Config{
		Endpoint:   server.URL,
		Deployment: "gpt-4o",
		APIVersion: "2024-05-01-preview",
		APIKey:     "secret-key",
	})

	got, err := client.Generate(context.Background(), "the prompt", coredomain.GenerationOptions{
		MaxTokens:   256,
		Temperature: coredomain.Temperature(0.3),
	})
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "generated answer" {
		t.Fatalf("expected trimmed content, got %q", got)
	}
	if gotPath != "/openai/deployments/gpt-4o/chat/completions" {
		t.Fatalf("unexpected request path: %s", gotPath)
	}
	if gotAPIKey != "secret-key" {
		t.Fatalf("expected api-key header, got %q", gotAPIKey)
	}
	if gotVersion != "2024-05-01-preview" {
		t.Fatalf("unexpected api-version: %s", gotVersion)
	}
	if gotBody["max_tokens"].(float64) != 256 {
		t.Fatalf("unexpected max_tokens: %v", gotBody["max_tokens"])
	}
	messages := gotBody["messages"].([]any)
	if len(messages) != 1 {
		t.Fatalf("expected one message, got %v", messages)
	}
	msg := messages[0].(map[string]any)
	if msg["role"] != "user" || msg["content"] != "the prompt" {
		t.Fatalf("unexpected message: %v", msg)
	}
}

func TestGenerateAppliesDefaults(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client := New(Config{
		Endpoint:         server.URL,
		Deployment:       "gpt-4o",
		DefaultMaxTokens: 512,
	})

	if _, err := client.Generate(context.Background(), "prompt text", coredomain.GenerationOptions{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gotBody["max_tokens"].(float64) != 512 {
		t.Fatalf("expected default max_tokens 512, got %v", gotBody["max_tokens"])
	}
}

func TestGenerateExplicitZeroTemperature(t *testing.T) {
	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewDecoder(r.Body).Decode(&gotBody)
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	client := New(Config{
		Endpoint:           server.URL,
		Deployment:         "gpt-4o",
		DefaultTemperature: 0.2,
	})

	// An unset temperature takes the client default.
	if _, err := client.Generate(context.Background(), "prompt text", coredomain.GenerationOptions{}); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gotBody["temperature"].(float64) != 0.2 {
		t.Fatalf("expected default temperature 0.2, got %v", gotBody["temperature"])
	}

	// An explicit zero must be sent as zero, not swallowed by the default.
	opts := coredomain.GenerationOptions{Temperature: coredomain.Temperature(0)}
	if _, err := client.Generate(context.Background(), "prompt text", opts); err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if gotBody["temperature"].(float64) != 0 {
		t.Fatalf("expected explicit temperature 0, got %v", gotBody["temperature"])
	}
}

func TestGenerateNoChoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]any{"choices": []any{}})
	}))
	defer server.Close()

	client := New(Config{Endpoint: server.URL, Deployment: "gpt-4o"})
	if _, err := client.Generate(context.Background(), "prompt text", coredomain.GenerationOptions{}); err == nil {
		t.Fatalf("expected error for empty choices")
	}
}

func TestGenerateServerErrorIsTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := New(Config{Endpoint: server.URL, Deployment: "gpt-4o"})
	_, err := client.Generate(context.Background(), "prompt text", coredomain.GenerationOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if !coredomain.IsKind(err, coredomain.ErrTemporary) {
		t.Fatalf("expected ErrTemporary for 503, got %v", err)
	}
}

func TestGenerateClientErrorIsNotTemporary(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer server.Close()

	client := New(Config{Endpoint: server.URL, Deployment: "gpt-4o"})
	_, err := client.Generate(context.Background(), "prompt text", coredomain.GenerationOptions{})
	if err == nil {
		t.Fatalf("expected error")
	}
	if coredomain.IsKind(err, coredomain.ErrTemporary) {
		t.Fatalf("400 must not be classified temporary, got %v", err)
	}
}

func TestClassifyGenerationErrorRetryableStatuses(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		v := classifyGenerationError(&HTTPStatusError{StatusCode: code})
		if !v.Retryable {
			t.Fatalf("status %d should be retryable", code)
		}
	}
	if v := classifyGenerationError(&HTTPStatusError{StatusCode: 400}); v.Retryable {
		t.Fatalf("status 400 should not be retryable")
	}
	if v := classifyGenerationError(context.Canceled); v.Retryable || v.RecordFailure {
		t.Fatalf("context cancellation is neither retryable nor a breaker failure")
	}
}
