package fetch_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"feedloom/internal/fetch"
	"feedloom/internal/services"
)

const sampleRSS = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
<title>Sample</title>
<link>https://sample.example/</link>
<description>Sample feed</description>
<item>
<title>First</title>
<link>https://sample.example/1</link>
<description>first body</description>
</item>
<item>
<title>Second</title>
<link>https://sample.example/2</link>
<description>second body</description>
</item>
</channel>
</rss>`

func TestFetchParsesFeed(t *testing.T) {
	var gotAgent string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAgent = r.Header.Get("User-Agent")
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := fetch.NewClient(5 * time.Second)
	parsed, err := client.Fetch(context.Background(), server.URL)
	if err != nil {
		t.Fatalf("Fetch returned error: %v", err)
	}
	if parsed.Title != "Sample" {
		t.Fatalf("unexpected feed title: %q", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("expected 2 items, got %d", len(parsed.Items))
	}
	if gotAgent == "" || !strings.HasPrefix(gotAgent, "Mozilla/5.0") {
		t.Fatalf("expected browser user agent, got %q", gotAgent)
	}
}

func TestFetchNonOKStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.NotFound(w, r)
	}))
	defer server.Close()

	client := fetch.NewClient(5 * time.Second)
	_, err := client.Fetch(context.Background(), server.URL)
	if err == nil {
		t.Fatal("expected error for 404 response")
	}
	if !errors.Is(err, services.ErrFetch) {
		t.Fatalf("expected fetch error marker, got %v", err)
	}
}

func TestFetchUnparseableBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("not a feed"))
	}))
	defer server.Close()

	client := fetch.NewClient(5 * time.Second)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected error for unparseable body")
	}
}

func TestFetchTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(sampleRSS))
	}))
	defer server.Close()

	client := fetch.NewClient(50 * time.Millisecond)
	if _, err := client.Fetch(context.Background(), server.URL); err == nil {
		t.Fatal("expected timeout error")
	}
}

func TestReadStoredMissingFile(t *testing.T) {
	entries, err := fetch.ReadStored(filepath.Join(t.TempDir(), "absent.xml"))
	if err != nil {
		t.Fatalf("expected no error for missing file, got %v", err)
	}
	if entries != nil {
		t.Fatalf("expected nil entries, got %v", entries)
	}
}

func TestReadStoredParsesEntries(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stored.xml")
	if err := os.WriteFile(path, []byte(sampleRSS), 0o644); err != nil {
		t.Fatalf("write stored feed: %v", err)
	}

	entries, err := fetch.ReadStored(path)
	if err != nil {
		t.Fatalf("ReadStored returned error: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[0].Link != "https://sample.example/1" || entries[0].Title != "First" {
		t.Fatalf("unexpected first entry: %+v", entries[0])
	}
}

func TestReadStoredCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corrupt.xml")
	if err := os.WriteFile(path, []byte("garbage"), 0o644); err != nil {
		t.Fatalf("write corrupt feed: %v", err)
	}
	if _, err := fetch.ReadStored(path); err == nil {
		t.Fatal("expected error for corrupt file")
	}
}
