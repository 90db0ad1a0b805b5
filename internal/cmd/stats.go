package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

func newStatsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [locale-dir]",
		Short: "Update the README translation table",
		Long: `Compute the completion of every locale against the baseline locale
(en by default) and rewrite the HTML table between the
<!-- TRANSLATION-TABLE-START --> and <!-- TRANSLATION-TABLE-END -->
markers of the README.

Completion is capped at 100%. Rows are red below 60%, yellow below 90%,
green otherwise.`,
		Example: `  # Rewrite the table in README.md
  polyglot stats

  # Print the table instead
  polyglot stats --print

  # Keep the table current while translating
  polyglot stats --watch`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			watch, _ := cmd.Flags().GetBool("watch")
			print, _ := cmd.Flags().GetBool("print")
			if watch && print {
				return fmt.Errorf("--watch and --print cannot be combined")
			}
			return nil
		},
		RunE: runStats,
	}

	cmd.Flags().BoolP("watch", "w", false, "Re-render whenever a locale file changes")
	cmd.Flags().Bool("print", false, "Print the table to stdout instead of rewriting the README")

	return cmd
}

func runStats(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	outputFmt, _ := cmd.Flags().GetString("output")
	watch, _ := cmd.Flags().GetBool("watch")
	printOnly, _ := cmd.Flags().GetBool("print")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if printOnly {
		stats, err := polyglot.CollectStats(ctx, cfg.Folder, cfg.Baseline)
		if err != nil {
			return err
		}
		fmt.Fprint(cmd.OutOrStdout(), polyglot.RenderTable(stats))
		return nil
	}

	stats, err := polyglot.RunStats(ctx, cfg.Folder, cfg.Baseline, cfg.Readme)
	if err != nil {
		return err
	}
	if err := writeStats(cmd.OutOrStdout(), outputFmt, stats); err != nil {
		return err
	}
	if !watch {
		return nil
	}

	polyglot.LogInfo(polyglot.Msg("watching"), cfg.Folder)
	return polyglot.WatchLocales(ctx, cfg.Folder, func(string) {
		if _, err := polyglot.RunStats(ctx, cfg.Folder, cfg.Baseline, cfg.Readme); err != nil {
			polyglot.LogError(polyglot.Msg("watch_failed"), err)
		}
	}, nil)
}

func writeStats(w io.Writer, outputFmt string, stats []polyglot.LanguageStat) error {
	if outputFmt == "json" {
		data, err := json.Marshal(stats)
		if err != nil {
			return err
		}
		fmt.Fprintln(w, string(data))
		return nil
	}

	for _, s := range stats {
		paint := polyglot.Green
		switch s.Health {
		case polyglot.HealthRed:
			paint = polyglot.Red
		case polyglot.HealthYellow:
			paint = polyglot.Yellow
		}
		fmt.Fprintf(w, "  %-8s %-24s %s\n", s.Lang, polyglot.LanguageName(s.Lang), paint(fmt.Sprintf("%3d%%", s.Completed)))
	}
	return nil
}
