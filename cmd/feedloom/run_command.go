package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"feedloom/internal/config"
	"feedloom/internal/journal"
	"feedloom/internal/logging"
	"feedloom/internal/pipeline"
	"feedloom/internal/services/llm"
	"feedloom/internal/summary"
)

func newRunCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Fetch, merge and summarize every enabled section once",
		RunE: func(cmd *cobra.Command, args []string) error {
			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()
			return runOnce(signalCtx, ctx)
		},
	}
}

func runOnce(runCtx context.Context, ctx *commandContext) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	logger, err := logging.NewFromConfig(cfg)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	// One writer per output directory. A second run against the same
	// directory would race on the feed files, so it refuses instead.
	lockPath := filepath.Join(cfg.Output.BaseDir, "feedloom.lock")
	lock := flock.New(lockPath)
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire run lock %s: %w", lockPath, err)
	}
	if !locked {
		return fmt.Errorf("another feedloom run holds %s", lockPath)
	}
	defer func() { _ = lock.Unlock() }()

	p, cleanup, err := buildPipeline(runCtx, cfg, logger)
	if err != nil {
		return err
	}
	defer cleanup()
	return p.Run(runCtx)
}

func buildPipeline(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*pipeline.Pipeline, func(), error) {
	client, err := llm.NewClient(llm.Config{
		APIKey:         cfg.LLM.APIKey,
		BaseURL:        cfg.LLM.BaseURL,
		Proxy:          cfg.LLM.Proxy,
		TimeoutSeconds: cfg.LLM.TimeoutSeconds,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("init summarizer client: %w", err)
	}
	gate := summary.NewGate(client, summary.Options{
		KeywordCount:  cfg.Summary.KeywordCount,
		SummaryLength: cfg.Summary.SummaryLength,
		Language:      cfg.Summary.Language,
		CustomModel:   cfg.Summary.CustomModel,
	}, logger)
	if !gate.Enabled() {
		logger.Warn("no API key configured, entries will be merged without summaries")
	}

	opts := make([]pipeline.Option, 0, 1)
	cleanup := func() {}
	if cfg.Journal.Enabled {
		store, err := journal.Open(ctx, cfg.Journal.Path)
		if err != nil {
			logger.Warn("run journal unavailable", slog.Any("error", err))
		} else {
			opts = append(opts, pipeline.WithJournal(store))
			cleanup = func() { _ = store.Close() }
		}
	}
	return pipeline.New(cfg, gate, logger, opts...), cleanup, nil
}
