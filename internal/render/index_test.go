package render_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"feedloom/internal/render"
)

func TestNewIndexSection(t *testing.T) {
	sec := render.NewIndexSection("tech", []string{"https://a.example/rss?x=1&y=2", "https://b.example/rss"})
	if sec.Name != "tech" {
		t.Fatalf("unexpected name: %q", sec.Name)
	}
	display := string(sec.URLDisplay)
	if !strings.Contains(display, "<br>") {
		t.Fatalf("expected <br> separator: %q", display)
	}
	if !strings.Contains(display, "&amp;") {
		t.Fatalf("expected url to be escaped: %q", display)
	}
}

func TestWriteIndex(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	sections := []render.IndexSection{
		render.NewIndexSection("tech", []string{"https://a.example/rss"}),
		render.NewIndexSection("news", []string{"https://b.example/rss", "https://c.example/rss"}),
	}

	if err := render.WriteIndex(path, sections, now); err != nil {
		t.Fatalf("WriteIndex returned error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read index: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		`href="tech.xml"`,
		`href="news.xml"`,
		"https://b.example/rss<br>https://c.example/rss",
		"2024-06-01 10:30:00",
	} {
		if !strings.Contains(content, want) {
			t.Fatalf("index missing %q:\n%s", want, content)
		}
	}
}
