package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func runCLI(t *testing.T, configPath string, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	if configPath != "" {
		args = append([]string{"--config", configPath}, args...)
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func writeCLIConfig(t *testing.T) string {
	t.Helper()
	base := t.TempDir()
	path := filepath.Join(base, "config.toml")
	content := fmt.Sprintf(`
[output]
base_dir = %q

[[section]]
name = "tech"
urls = ["https://a.example/rss"]
max_items = 3

[[section]]
name = "quiet"
urls = ["https://b.example/rss"]
disabled = true
`, filepath.Join(base, "out"))
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func requireContains(t *testing.T, output, substr string) {
	t.Helper()
	if !strings.Contains(output, substr) {
		t.Fatalf("expected %q to contain %q", output, substr)
	}
}

func TestConfigInit(t *testing.T) {
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	out, _, err := runCLI(t, "", "config", "init", "--path", target)
	if err != nil {
		t.Fatalf("config init: %v", err)
	}
	requireContains(t, out, "Wrote sample configuration")
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected config file at %s: %v", target, err)
	}

	// Refuses to clobber without --overwrite.
	if _, _, err := runCLI(t, "", "config", "init", "--path", target); err == nil {
		t.Fatal("expected error for existing file")
	}
	if _, _, err := runCLI(t, "", "config", "init", "--path", target, "--overwrite"); err != nil {
		t.Fatalf("config init --overwrite: %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	configPath := writeCLIConfig(t)
	out, _, err := runCLI(t, configPath, "config", "path")
	if err != nil {
		t.Fatalf("config path: %v", err)
	}
	requireContains(t, out, configPath)
}

func TestSectionsListsConfiguredSections(t *testing.T) {
	configPath := writeCLIConfig(t)
	out, _, err := runCLI(t, configPath, "sections")
	if err != nil {
		t.Fatalf("sections: %v", err)
	}
	requireContains(t, out, "tech")
	requireContains(t, out, "quiet")
	requireContains(t, out, "https://a.example/rss")
}

func TestRootShowsHelp(t *testing.T) {
	out, _, err := runCLI(t, writeCLIConfig(t))
	if err != nil {
		t.Fatalf("root command: %v", err)
	}
	requireContains(t, out, "feedloom")
	requireContains(t, out, "run")
}

func TestHistoryEmptyJournal(t *testing.T) {
	configPath := writeCLIConfig(t)
	out, _, err := runCLI(t, configPath, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	requireContains(t, out, "No recorded runs yet")
}

func TestInvalidConfigFailsEarly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[[section]]\nname = \"a/b\"\nurls = [\"https://a.example\"]\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, err := runCLI(t, path, "sections"); err == nil {
		t.Fatal("expected load failure for invalid section name")
	}
}
