package pipeline

import (
	"context"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"feedloom/internal/config"
	"feedloom/internal/journal"
	"feedloom/internal/logging"
	"feedloom/internal/render"
)

// Run executes one polling pass: every enabled section in parallel under the
// worker cap, then index and README generation from the collected results.
// Section failures never propagate; only context cancellation aborts the pass.
func (p *Pipeline) Run(ctx context.Context) error {
	runID := uuid.NewString()
	logger := p.logger.With(slog.String(logging.FieldRunID, runID))
	sections := p.cfg.EnabledSections()
	logger.Info("run started", slog.Int("sections", len(sections)))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workflow.MaxWorkers)

	var mu sync.Mutex
	// Completion order; no cross-section ordering is guaranteed.
	results := make([]Result, 0, len(sections))

	for _, sec := range sections {
		g.Go(func() error {
			started := p.now()
			res := p.runSection(gctx, sec)
			p.record(gctx, runID, sec, res, started)
			mu.Lock()
			results = append(results, res)
			mu.Unlock()
			return gctx.Err()
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	p.writeOutputs(logger, results)

	var added, summarized int
	for _, res := range results {
		added += res.Added
		summarized += res.Summarized
	}
	logger.Info("run finished",
		slog.Int("added", added),
		slog.Int("summarized", summarized))
	return nil
}

// writeOutputs renders the index page and rewrites the README feed listings.
// Sections skipped for configuration errors carry an empty name and are left
// out.
func (p *Pipeline) writeOutputs(logger *slog.Logger, results []Result) {
	indexSections := make([]render.IndexSection, 0, len(results))
	links := make([]string, 0, len(results))
	for _, res := range results {
		if res.Name == "" {
			continue
		}
		indexSections = append(indexSections, render.NewIndexSection(res.Name, res.URLs))
		links = append(links, render.FeedLink(res.URLs, p.cfg.Output.DeployURL, res.Name))
	}

	indexPath := filepath.Join(p.cfg.Output.BaseDir, "index.html")
	if err := render.WriteIndex(indexPath, indexSections, p.now()); err != nil {
		logger.Error("index generation failed", slog.Any("error", err))
	}

	for _, readme := range []string{"README.md", "README-zh.md"} {
		if err := render.UpdateReadme(readme, links); err != nil {
			logger.Error("readme update failed",
				slog.String("path", readme), slog.Any("error", err))
		}
	}
}

// record appends the section outcome to the journal, best-effort.
func (p *Pipeline) record(ctx context.Context, runID string, sec config.Section, res Result, started time.Time) {
	if p.journal == nil {
		return
	}
	status := journal.StatusOK
	switch {
	case res.ConfigError:
		status = journal.StatusConfigError
	case !res.FetchOK:
		status = journal.StatusFailed
	case res.Added == 0:
		status = journal.StatusEmpty
	}
	rec := journal.Record{
		RunID:      runID,
		Section:    sec.Name,
		URLs:       sec.URLs,
		Status:     status,
		Added:      res.Added,
		Summarized: res.Summarized,
		StartedAt:  started,
		FinishedAt: p.now(),
	}
	if err := p.journal.Append(ctx, rec); err != nil {
		p.logger.Warn("journal write failed",
			slog.String(logging.FieldSection, sec.Name), slog.Any("error", err))
	}
}
