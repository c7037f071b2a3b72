// Package summary decides which accepted entries receive a generated summary
// and runs the model fallback chain for those that do.
package summary

import (
	"context"
	"log/slog"
	"strings"

	"feedloom/internal/services/llm"
)

// Default models tried when no custom model is configured, in order.
const (
	DefaultFastModel     = "gpt-4o-mini"
	DefaultFallbackModel = "gpt-4o"
)

// Completer is the slice of the LLM client the gate needs.
type Completer interface {
	Complete(ctx context.Context, model string, messages []llm.Message) (string, error)
	Configured() bool
}

// Gate applies the per-section summarization cap and the model fallback chain.
// A nil or unconfigured client disables summarization without error.
type Gate struct {
	client Completer
	opts   Options
	logger *slog.Logger
}

// NewGate constructs a gate. logger may be nil.
func NewGate(client Completer, opts Options, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Gate{client: client, opts: opts, logger: logger}
}

// WithLogger returns a copy of the gate bound to the given logger, so each
// section run can route gate output into its own log sink.
func (g *Gate) WithLogger(logger *slog.Logger) *Gate {
	if g == nil || logger == nil {
		return g
	}
	return &Gate{client: g.client, opts: g.opts, logger: logger}
}

// Enabled reports whether this gate can ever produce a summary.
func (g *Gate) Enabled() bool {
	return g != nil && g.client != nil && g.client.Configured()
}

// Summarize returns the generated summary for the accepted entry at position
// acceptedCount (1-based) under the section cap, or "" when summarization is
// skipped or every model attempt fails. Failures are logged, never fatal.
func (g *Gate) Summarize(ctx context.Context, article string, acceptedCount, sectionCap int) string {
	if sectionCap <= 0 || acceptedCount > sectionCap || !g.Enabled() {
		return ""
	}

	messages := Messages(article, g.opts)
	var lastErr error
	for _, model := range g.chain() {
		content, err := g.client.Complete(ctx, model, messages)
		if err == nil {
			g.logger.Info("summary generated",
				slog.String("model", model),
				slog.Int("article_length", len(article)))
			return content
		}
		lastErr = err
		g.logger.Warn("summary attempt failed",
			slog.String("model", model),
			slog.Any("error", err))
	}

	g.logger.Error("summary generation failed, entry kept without summary",
		slog.Any("error", lastErr))
	return ""
}

func (g *Gate) chain() []string {
	models := make([]string, 0, 3)
	if custom := strings.TrimSpace(g.opts.CustomModel); custom != "" {
		models = append(models, custom)
	}
	return append(models, DefaultFastModel, DefaultFallbackModel)
}
