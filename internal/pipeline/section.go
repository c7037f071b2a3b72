package pipeline

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"feedloom/internal/config"
	"feedloom/internal/feed"
	"feedloom/internal/fetch"
	"feedloom/internal/filter"
	"feedloom/internal/logging"
	"feedloom/internal/render"
)

// runSection performs the full merge for one configured section: load prior
// state, fetch each source URL in order, dedup/filter/summarize, and hand the
// merged entries to the feed renderer. All per-URL and per-entry failures are
// absorbed and logged; the section always produces a Result.
func (p *Pipeline) runSection(ctx context.Context, sec config.Section) Result {
	logger := p.sectionLogger(sec)
	defer logger.close()

	rule := filter.Rule{Apply: sec.FilterApply, Mode: sec.FilterType, Pattern: sec.FilterRule}
	if rule.Partial() {
		logger.Error("filter_apply, filter_type and filter_rule must be set together")
		return Result{ConfigError: true}
	}
	evaluator, err := filter.NewEvaluator(rule, logger.Logger)
	if err != nil {
		logger.Error("invalid filter rule", slog.Any("error", err))
		return Result{ConfigError: true}
	}

	feedPath := p.cfg.FeedPath(sec.Name)
	existing, err := fetch.ReadStored(feedPath)
	if err != nil {
		logger.Warn("stored feed unreadable, treating as empty", slog.Any("error", err))
		existing = nil
	}
	logger.Info("section started", slog.Int("existing_entries", len(existing)))

	known := make(map[string]struct{}, len(existing))
	for _, entry := range existing {
		known[entry.Link] = struct{}{}
	}

	merge := &merger{
		evaluator:  evaluator,
		cleaner:    p.cleaner,
		gate:       p.gate.WithLogger(logger.Logger),
		summaryCap: sec.MaxItems,
		logger:     logger.Logger,
	}

	var accepted []feed.Entry
	var lastFeed *gofeed.Feed
	for _, url := range sec.URLs {
		logger.Info("fetching", slog.String(logging.FieldURL, url))
		parsed, err := p.fetcher.Fetch(ctx, url)
		if err != nil {
			logger.Error("fetch failed", slog.Any("error", err))
			continue
		}
		lastFeed = parsed
		accepted = append(accepted, merge.mergeBatch(ctx, known, parsed.Items)...)
	}

	result := Result{
		Name:    sec.Name,
		URLs:    sec.URLs,
		Added:   len(accepted),
		FetchOK: lastFeed != nil,
	}
	for _, entry := range accepted {
		if entry.HasSummary() {
			result.Summarized++
		}
	}
	logger.Info("section finished",
		slog.Int("added", result.Added),
		slog.Int("summarized", result.Summarized))

	if len(accepted) > 0 && lastFeed != nil {
		if err := render.WriteFeed(feedPath, lastFeed, accepted, existing, p.now()); err != nil {
			// Render failures leave the previous output in place; the section
			// still participates in index/README generation.
			logger.Error("render failed", slog.Any("error", err))
		}
	}
	return result
}

// sectionLogger tees the process logger into the section's private log file
// for the duration of one section run. The sink is owned by this run only, so
// concurrent sections never interleave in each other's files.
type sectionLogger struct {
	*slog.Logger
	sink *logging.FileSink
}

func (p *Pipeline) sectionLogger(sec config.Section) sectionLogger {
	base := p.logger.With(slog.String(logging.FieldSection, sec.Name))
	sink, err := logging.NewFileSink(p.cfg.SectionLogPath(sec.Name))
	if err != nil {
		base.Warn("section log file unavailable", slog.Any("error", err))
		return sectionLogger{Logger: base}
	}
	teed := logging.TeeLogger(p.logger, sink.Handler()).
		With(slog.String(logging.FieldSection, sec.Name))
	return sectionLogger{Logger: teed, sink: sink}
}

func (l sectionLogger) close() {
	if l.sink != nil {
		_ = l.sink.Close()
	}
}
