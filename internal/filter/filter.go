// Package filter evaluates per-section inclusion rules against normalized
// entries.
package filter

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"feedloom/internal/feed"
)

// Rule is a per-section filter. Either all three fields are set or none are; a
// partially specified rule is a configuration error the orchestrator reports.
type Rule struct {
	Apply   string
	Mode    string
	Pattern string
}

// IsZero reports whether no filtering is configured.
func (r Rule) IsZero() bool {
	return r.Apply == "" && r.Mode == "" && r.Pattern == ""
}

// Partial reports whether the rule is incompletely specified.
func (r Rule) Partial() bool {
	set := 0
	for _, v := range []string{r.Apply, r.Mode, r.Pattern} {
		if strings.TrimSpace(v) != "" {
			set++
		}
	}
	return set > 0 && set < 3
}

// Evaluator applies a compiled rule to entries.
type Evaluator struct {
	rule    Rule
	pattern *regexp.Regexp
	logger  *slog.Logger
}

// NewEvaluator compiles the rule. A zero rule yields an evaluator that permits
// everything. An invalid regular expression is an error.
func NewEvaluator(rule Rule, logger *slog.Logger) (*Evaluator, error) {
	ev := &Evaluator{rule: rule, logger: logger}
	if rule.IsZero() {
		return ev, nil
	}
	pattern, err := regexp.Compile(rule.Pattern)
	if err != nil {
		return nil, fmt.Errorf("compile filter pattern %q: %w", rule.Pattern, err)
	}
	ev.pattern = pattern
	return ev, nil
}

// Passes decides whether the entry survives the rule. The pattern is searched,
// not fully matched. Unknown apply fields or modes permit the entry with a
// warning rather than failing the run.
func (ev *Evaluator) Passes(entry feed.Entry) bool {
	if ev.pattern == nil {
		return true
	}

	var text string
	switch ev.rule.Apply {
	case "title":
		text = entry.Title
	case "article":
		text = entry.Article
	case "link":
		text = entry.Link
	default:
		ev.warn("unsupported filter apply field", slog.String("apply", ev.rule.Apply))
		return true
	}

	switch ev.rule.Mode {
	case "include", "regex match":
		return ev.pattern.MatchString(text)
	case "exclude", "regex not match":
		return !ev.pattern.MatchString(text)
	default:
		ev.warn("unsupported filter mode", slog.String("mode", ev.rule.Mode))
		return true
	}
}

func (ev *Evaluator) warn(msg string, attrs ...any) {
	if ev.logger != nil {
		ev.logger.Warn(msg, attrs...)
	}
}
