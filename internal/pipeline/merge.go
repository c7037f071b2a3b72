package pipeline

import (
	"context"
	"log/slog"

	"github.com/mmcdole/gofeed"

	"feedloom/internal/feed"
	"feedloom/internal/filter"
	"feedloom/internal/logging"
	"feedloom/internal/sanitize"
	"feedloom/internal/summary"
)

// MaxEntriesPerBatch caps how many entries one fetched feed may contribute per
// run. The cap is per URL: a section merging several feeds may accept up to
// this many from each.
const MaxEntriesPerBatch = 10

// merger is the dedup/merge engine for one section run. The known set carries
// dedup state across batches; counters reset per batch.
type merger struct {
	evaluator  *filter.Evaluator
	cleaner    *sanitize.Cleaner
	gate       *summary.Gate
	summaryCap int
	logger     *slog.Logger
}

// mergeBatch walks one fetched feed in order, skipping known links and
// filtered entries, and returns the accepted entries in encounter order.
// Accepted links are added to known so later batches in the same section
// observe them. Entries beyond the batch cap never enter the known set.
func (m *merger) mergeBatch(ctx context.Context, known map[string]struct{}, items []*gofeed.Item) []feed.Entry {
	var accepted []feed.Entry

	for i, item := range items {
		if len(accepted) >= MaxEntriesPerBatch {
			m.logger.Info("batch cap reached, skipping remaining entries",
				slog.Int("cap", MaxEntriesPerBatch),
				slog.Int("skipped", len(items)-i))
			break
		}

		entry := feed.Normalize(item)
		if _, seen := known[entry.Link]; seen {
			m.logger.Debug("skipping known entry", slog.String(logging.FieldLink, entry.Link))
			continue
		}
		if !m.evaluator.Passes(entry) {
			m.logger.Info("filtered",
				slog.String("title", entry.Title),
				slog.String(logging.FieldLink, entry.Link))
			continue
		}

		article := m.cleaner.Text(entry.Article)
		entry.Summary = m.gate.Summarize(ctx, article, len(accepted)+1, m.summaryCap)

		known[entry.Link] = struct{}{}
		accepted = append(accepted, entry)
		m.logger.Info("added",
			slog.String("title", entry.Title),
			slog.String(logging.FieldLink, entry.Link))
	}

	return accepted
}
