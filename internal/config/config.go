package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Output contains the artifact directory and the deployment base URL used when
// building displayed feed links.
type Output struct {
	BaseDir   string `toml:"base_dir"`
	DeployURL string `toml:"deploy_url"`
}

// Summary contains prompt parameters for generated summaries.
type Summary struct {
	KeywordCount  int    `toml:"keyword_count"`
	SummaryLength int    `toml:"summary_length"`
	Language      string `toml:"language"`
	CustomModel   string `toml:"custom_model"`
}

// LLM contains connection settings for the completion API. The API key is
// normally supplied through the OPENAI_API_KEY environment variable.
type LLM struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	Proxy          string `toml:"proxy"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Workflow contains concurrency and scheduling settings.
type Workflow struct {
	MaxWorkers          int    `toml:"max_workers"`
	FetchTimeoutSeconds int    `toml:"fetch_timeout_seconds"`
	Schedule            string `toml:"schedule"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Journal contains configuration for the run history database.
type Journal struct {
	Enabled bool   `toml:"enabled"`
	Path    string `toml:"path"`
}

// Section is one configured feed group producing a single output file.
type Section struct {
	Name        string   `toml:"name"`
	URLs        []string `toml:"urls"`
	FilterApply string   `toml:"filter_apply"`
	FilterType  string   `toml:"filter_type"`
	FilterRule  string   `toml:"filter_rule"`
	MaxItems    int      `toml:"max_items"`
	Disabled    bool     `toml:"disabled"`
}

// Config encapsulates all configuration values for feedloom. It is constructed
// once at startup and passed by value into components; nothing reads it as
// ambient state afterwards.
type Config struct {
	Output   Output    `toml:"output"`
	Summary  Summary   `toml:"summary"`
	LLM      LLM       `toml:"llm"`
	Workflow Workflow  `toml:"workflow"`
	Logging  Logging   `toml:"logging"`
	Journal  Journal   `toml:"journal"`
	Sections []Section `toml:"section"`
}

// DefaultConfigPath returns the absolute path to the default configuration
// file location.
func DefaultConfigPath() (string, error) {
	return expandPath("~/.config/feedloom/config.toml")
}

// Load locates, parses, and validates a configuration file. The returned
// config has all path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := DefaultConfigPath()
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("feedloom.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the output directory tree.
func (c *Config) EnsureDirectories() error {
	if err := os.MkdirAll(c.Output.BaseDir, 0o755); err != nil {
		return fmt.Errorf("create output directory %q: %w", c.Output.BaseDir, err)
	}
	if c.Journal.Enabled {
		if dir := filepath.Dir(c.Journal.Path); dir != "" && dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return fmt.Errorf("create journal directory %q: %w", dir, err)
			}
		}
	}
	return nil
}

// EnabledSections returns the sections that participate in a run, preserving
// configuration order.
func (c *Config) EnabledSections() []Section {
	sections := make([]Section, 0, len(c.Sections))
	for _, sec := range c.Sections {
		if sec.Disabled {
			continue
		}
		sections = append(sections, sec)
	}
	return sections
}

// FeedPath returns the output feed file for a section name.
func (c *Config) FeedPath(name string) string {
	return filepath.Join(c.Output.BaseDir, name+".xml")
}

// SectionLogPath returns the per-section operational log file.
func (c *Config) SectionLogPath(name string) string {
	return filepath.Join(c.Output.BaseDir, name+".log")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
