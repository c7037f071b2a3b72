package llm_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"feedloom/internal/services/llm"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *llm.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	client, err := llm.NewClient(llm.Config{APIKey: "test-key", BaseURL: server.URL})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	return client
}

func TestCompleteSuccess(t *testing.T) {
	var gotPath, gotAuth string
	var gotBody map[string]any
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotAuth = r.Header.Get("Authorization")
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Errorf("decode request: %v", err)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"keywords<br><br>Summary: body"}}]}`))
	})

	content, err := client.Complete(context.Background(), "gpt-4o-mini", []llm.Message{
		{Role: "user", Content: "article"},
		{Role: "assistant", Content: "instruction"},
	})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "keywords<br><br>Summary: body" {
		t.Fatalf("unexpected content: %q", content)
	}
	if gotPath != "/chat/completions" {
		t.Fatalf("unexpected path: %q", gotPath)
	}
	if gotAuth != "Bearer test-key" {
		t.Fatalf("unexpected auth header: %q", gotAuth)
	}
	if gotBody["model"] != "gpt-4o-mini" {
		t.Fatalf("unexpected model in request: %v", gotBody["model"])
	}
}

func TestCompleteDeltaFallback(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"delta":{"content":"from delta"}}]}`))
	})
	content, err := client.Complete(context.Background(), "m", []llm.Message{{Role: "user", Content: "x"}})
	if err != nil {
		t.Fatalf("Complete returned error: %v", err)
	}
	if content != "from delta" {
		t.Fatalf("unexpected content: %q", content)
	}
}

func TestCompleteHTTPError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	})
	_, err := client.Complete(context.Background(), "m", []llm.Message{{Role: "user", Content: "x"}})
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	if !strings.Contains(err.Error(), "429") {
		t.Fatalf("expected status in error, got %v", err)
	}
}

func TestCompleteAPIError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"error":{"message":"model overloaded"}}`))
	})
	_, err := client.Complete(context.Background(), "m", []llm.Message{{Role: "user", Content: "x"}})
	if err == nil || !strings.Contains(err.Error(), "model overloaded") {
		t.Fatalf("expected api error, got %v", err)
	}
}

func TestCompleteEmptyContent(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  "}}]}`))
	})
	_, err := client.Complete(context.Background(), "m", []llm.Message{{Role: "user", Content: "x"}})
	if err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestCompleteRequiresCredentials(t *testing.T) {
	client, err := llm.NewClient(llm.Config{})
	if err != nil {
		t.Fatalf("NewClient returned error: %v", err)
	}
	if client.Configured() {
		t.Fatal("expected unconfigured client without api key")
	}
	if _, err := client.Complete(context.Background(), "m", []llm.Message{{Role: "user", Content: "x"}}); err == nil {
		t.Fatal("expected error without credentials")
	}
}

func TestNewClientRejectsBadProxy(t *testing.T) {
	if _, err := llm.NewClient(llm.Config{Proxy: "://bad"}); err == nil {
		t.Fatal("expected error for invalid proxy url")
	}
}
