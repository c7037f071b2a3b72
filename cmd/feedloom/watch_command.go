package main

import (
	"fmt"
	"os/signal"
	"syscall"

	"github.com/robfig/cron/v3"
	"github.com/spf13/cobra"
)

func newWatchCommand(ctx *commandContext) *cobra.Command {
	var schedule string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Run on a cron schedule until interrupted",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}
			spec := schedule
			if spec == "" {
				spec = cfg.Workflow.Schedule
			}

			signalCtx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer cancel()

			c := cron.New()
			_, err = c.AddFunc(spec, func() {
				if err := runOnce(signalCtx, ctx); err != nil {
					fmt.Fprintf(cmd.ErrOrStderr(), "scheduled run failed: %v\n", err)
				}
			})
			if err != nil {
				return fmt.Errorf("invalid schedule %q: %w", spec, err)
			}

			// First pass immediately; the cron entry handles the rest.
			if err := runOnce(signalCtx, ctx); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "initial run failed: %v\n", err)
			}

			c.Start()
			<-signalCtx.Done()
			stopCtx := c.Stop()
			<-stopCtx.Done()
			return nil
		},
	}

	cmd.Flags().StringVar(&schedule, "schedule", "", "Cron expression overriding the configured schedule")
	return cmd
}
