// Package pipeline drives one polling pass: per-section merge of fetched
// feeds against prior state, summarization of accepted entries, and hand-off
// to the renderers.
package pipeline

import (
	"log/slog"
	"time"

	"feedloom/internal/config"
	"feedloom/internal/fetch"
	"feedloom/internal/journal"
	"feedloom/internal/sanitize"
	"feedloom/internal/summary"
)

// Result is the per-section outcome consumed by index/README generation.
type Result struct {
	Name       string
	URLs       []string
	Added      int
	Summarized int
	// FetchOK is true when at least one source URL was fetched successfully.
	FetchOK bool
	// ConfigError marks a section skipped for a configuration problem;
	// Name is empty in that case and the section renders nothing.
	ConfigError bool
}

// Pipeline owns the collaborators shared by all section runs. The summarizer
// client and configuration are read-only after construction; per-section state
// lives entirely inside each runSection call.
type Pipeline struct {
	cfg     *config.Config
	fetcher *fetch.Client
	cleaner *sanitize.Cleaner
	gate    *summary.Gate
	journal *journal.Store
	logger  *slog.Logger
	now     func() time.Time
}

// Option customizes pipeline construction.
type Option func(*Pipeline)

// WithFetcher overrides the feed fetch client.
func WithFetcher(client *fetch.Client) Option {
	return func(p *Pipeline) {
		if client != nil {
			p.fetcher = client
		}
	}
}

// WithJournal attaches a run journal. A nil store disables journaling.
func WithJournal(store *journal.Store) Option {
	return func(p *Pipeline) {
		p.journal = store
	}
}

// WithClock overrides the wall clock (used by tests).
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New constructs a pipeline over the given configuration. gate may be a gate
// around a nil client; summarization is then skipped for every entry.
func New(cfg *config.Config, gate *summary.Gate, logger *slog.Logger, opts ...Option) *Pipeline {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	p := &Pipeline{
		cfg:     cfg,
		fetcher: fetch.NewClient(time.Duration(cfg.Workflow.FetchTimeoutSeconds) * time.Second),
		cleaner: sanitize.NewCleaner(),
		gate:    gate,
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
