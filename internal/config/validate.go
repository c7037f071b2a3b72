package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable. Per-section filter completeness
// is deliberately not checked here: an incomplete filter disables only its own
// section at run time instead of failing the whole load.
func (c *Config) Validate() error {
	if err := c.validateOutput(); err != nil {
		return err
	}
	if err := c.validateSummary(); err != nil {
		return err
	}
	if err := c.validateWorkflow(); err != nil {
		return err
	}
	if err := c.validateLogging(); err != nil {
		return err
	}
	return c.validateSections()
}

func (c *Config) validateOutput() error {
	if strings.TrimSpace(c.Output.BaseDir) == "" {
		return errors.New("output.base_dir must be set")
	}
	return nil
}

func (c *Config) validateSummary() error {
	if c.Summary.KeywordCount <= 0 {
		return errors.New("summary.keyword_count must be positive")
	}
	if c.Summary.SummaryLength <= 0 {
		return errors.New("summary.summary_length must be positive")
	}
	if c.Summary.Language == "" {
		return errors.New("summary.language must be set")
	}
	return nil
}

func (c *Config) validateWorkflow() error {
	if c.Workflow.MaxWorkers <= 0 {
		return errors.New("workflow.max_workers must be positive")
	}
	if c.Workflow.FetchTimeoutSeconds <= 0 {
		return errors.New("workflow.fetch_timeout_seconds must be positive")
	}
	if c.LLM.TimeoutSeconds <= 0 {
		return errors.New("llm.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return fmt.Errorf("logging.format: unsupported value %q", c.Logging.Format)
	}
	return nil
}

func (c *Config) validateSections() error {
	seen := make(map[string]struct{}, len(c.Sections))
	for i, sec := range c.Sections {
		if sec.Name == "" {
			return fmt.Errorf("section %d: name must be set", i+1)
		}
		if strings.ContainsAny(sec.Name, `/\`) {
			return fmt.Errorf("section %q: name must not contain path separators", sec.Name)
		}
		if _, dup := seen[sec.Name]; dup {
			return fmt.Errorf("section %q: duplicate name", sec.Name)
		}
		seen[sec.Name] = struct{}{}
		if !sec.Disabled && len(sec.URLs) == 0 {
			return fmt.Errorf("section %q: at least one url must be set", sec.Name)
		}
		if sec.MaxItems < 0 {
			return fmt.Errorf("section %q: max_items must not be negative", sec.Name)
		}
	}
	return nil
}
