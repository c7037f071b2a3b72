package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"feedloom/internal/config"
)

func newSectionsCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "sections",
		Short: "List configured sections",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return fmt.Errorf("load config: %w", err)
			}

			out := cmd.OutOrStdout()
			if len(cfg.Sections) == 0 {
				fmt.Fprintln(out, "No sections configured")
				return nil
			}

			rows := make([][]string, 0, len(cfg.Sections))
			for _, sec := range cfg.Sections {
				rows = append(rows, []string{
					sec.Name,
					strconv.Itoa(len(sec.URLs)),
					filterDescription(sec),
					strconv.Itoa(sec.MaxItems),
					yesNo(!sec.Disabled),
					cfg.FeedPath(sec.Name),
				})
			}
			fmt.Fprintln(out, renderTable(
				[]string{"Section", "Sources", "Filter", "Max Summaries", "Enabled", "Output"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignLeft, alignLeft},
			))
			return nil
		},
	}
}

func filterDescription(sec config.Section) string {
	if strings.TrimSpace(sec.FilterApply) == "" {
		return "none"
	}
	return fmt.Sprintf("%s %s %q", sec.FilterApply, sec.FilterType, sec.FilterRule)
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
