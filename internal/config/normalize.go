package config

import (
	"os"
	"path/filepath"
	"strings"
)

// normalize trims values, applies environment overrides for credentials, splits
// comma-separated URL lists, and expands filesystem paths. It runs before
// Validate so validation sees final values.
func (c *Config) normalize() error {
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		c.LLM.APIKey = v
	}
	if v := os.Getenv("OPENAI_BASE_URL"); v != "" {
		c.LLM.BaseURL = v
	}
	if v := os.Getenv("OPENAI_PROXY"); v != "" {
		c.LLM.Proxy = v
	}
	if v := os.Getenv("CUSTOM_MODEL"); v != "" {
		c.Summary.CustomModel = v
	}
	if v := os.Getenv("FEEDLOOM_DEPLOY_URL"); v != "" {
		c.Output.DeployURL = v
	}

	c.Output.DeployURL = strings.TrimSpace(c.Output.DeployURL)
	c.Summary.Language = strings.TrimSpace(c.Summary.Language)
	c.Summary.CustomModel = strings.TrimSpace(c.Summary.CustomModel)
	c.LLM.APIKey = strings.TrimSpace(c.LLM.APIKey)
	c.LLM.BaseURL = strings.TrimSpace(c.LLM.BaseURL)
	c.LLM.Proxy = strings.TrimSpace(c.LLM.Proxy)
	c.Workflow.Schedule = strings.TrimSpace(c.Workflow.Schedule)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))

	baseDir, err := expandPath(strings.TrimSpace(c.Output.BaseDir))
	if err != nil {
		return err
	}
	c.Output.BaseDir = baseDir

	if c.Journal.Path == "" {
		c.Journal.Path = filepath.Join(c.Output.BaseDir, "feedloom.db")
	} else {
		journalPath, err := expandPath(strings.TrimSpace(c.Journal.Path))
		if err != nil {
			return err
		}
		c.Journal.Path = journalPath
	}

	for i := range c.Sections {
		sec := &c.Sections[i]
		sec.Name = strings.TrimSpace(sec.Name)
		sec.FilterApply = strings.TrimSpace(sec.FilterApply)
		sec.FilterType = strings.TrimSpace(sec.FilterType)
		sec.FilterRule = strings.TrimSpace(sec.FilterRule)
		sec.URLs = splitURLs(sec.URLs)
	}
	return nil
}

// splitURLs flattens comma-separated URL values, preserving order and dropping
// empties, so a section may use either one comma-joined string or a TOML array.
func splitURLs(values []string) []string {
	urls := make([]string, 0, len(values))
	for _, value := range values {
		for _, part := range strings.Split(value, ",") {
			if trimmed := strings.TrimSpace(part); trimmed != "" {
				urls = append(urls, trimmed)
			}
		}
	}
	return urls
}
