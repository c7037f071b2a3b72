package logging_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"feedloom/internal/logging"
)

func TestNewJSONLoggerFieldNames(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "info", Format: "json", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("fetch complete", slog.String("section", "tech"))

	var record map[string]any
	if err := json.Unmarshal(buf.Bytes(), &record); err != nil {
		t.Fatalf("log line is not json: %v (%q)", err, buf.String())
	}
	if record["msg"] != "fetch complete" {
		t.Fatalf("unexpected msg field: %v", record["msg"])
	}
	if record["level"] != "info" {
		t.Fatalf("unexpected level field: %v", record["level"])
	}
	if _, ok := record["ts"]; !ok {
		t.Fatal("expected ts field")
	}
	if record["section"] != "tech" {
		t.Fatalf("unexpected section attr: %v", record["section"])
	}
}

func TestNewConsoleLoggerRendersMessage(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "debug", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Warn("slow fetch", slog.String("url", "https://a.example/rss"))

	out := buf.String()
	if !strings.Contains(out, "slow fetch") {
		t.Fatalf("message missing from output: %q", out)
	}
	if !strings.Contains(out, "url=") {
		t.Fatalf("attr missing from output: %q", out)
	}
}

func TestNewRejectsUnknownFormat(t *testing.T) {
	if _, err := logging.New(logging.Options{Format: "yaml"}); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestLevelFiltering(t *testing.T) {
	var buf bytes.Buffer
	logger, err := logging.New(logging.Options{Level: "warn", Format: "console", Writer: &buf})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("visible")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Fatalf("info should be filtered at warn level: %q", out)
	}
	if !strings.Contains(out, "visible") {
		t.Fatalf("warn should pass: %q", out)
	}
}

func TestTeeLoggerDuplicatesRecords(t *testing.T) {
	var primary, secondary bytes.Buffer
	base, err := logging.New(logging.Options{Format: "console", Writer: &primary})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}
	extra, err := logging.New(logging.Options{Format: "console", Writer: &secondary})
	if err != nil {
		t.Fatalf("New returned error: %v", err)
	}

	teed := logging.TeeLogger(base, extra.Handler())
	teed.Info("both places")

	if !strings.Contains(primary.String(), "both places") {
		t.Fatalf("primary missing record: %q", primary.String())
	}
	if !strings.Contains(secondary.String(), "both places") {
		t.Fatalf("secondary missing record: %q", secondary.String())
	}
}

func TestFileSinkAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "section.log")

	for _, msg := range []string{"first run", "second run"} {
		sink, err := logging.NewFileSink(path)
		if err != nil {
			t.Fatalf("NewFileSink returned error: %v", err)
		}
		slog.New(sink.Handler()).Info(msg)
		if err := sink.Close(); err != nil {
			t.Fatalf("Close returned error: %v", err)
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "first run") || !strings.Contains(content, "second run") {
		t.Fatalf("expected both runs appended: %q", content)
	}
}
