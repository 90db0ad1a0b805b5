package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sync [locale-dir]",
		Short: "Translate missing keys and prune stale ones",
		Long: `Fill every destination locale with the source keys it lacks, then
remove keys that are no longer in the source from every locale file.

Missing destination files are created. Each missing string is sent to the
translation provider once. Every distinct stale key is confirmed once
(default yes); the answer applies to all locale files.

Exits with code 1 when the pruning pass changed no file.`,
		Example: `  # Sync with the settings from .polyglot.yaml
  polyglot sync

  # Spanish source, English and French destinations
  polyglot sync -s es -d en,fr resources/translations

  # Show what would change
  polyglot sync --dry-run`,
		Args: cobra.MaximumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			tries, _ := cmd.Flags().GetInt("tries")
			if tries < 0 {
				return fmt.Errorf("--tries must not be negative, got %d", tries)
			}
			return nil
		},
		RunE: runSync,
	}

	cmd.Flags().BoolP("yes", "y", false, "Delete stale keys without asking")
	cmd.Flags().BoolP("dry-run", "n", false, "Report missing and stale keys without changing files")
	cmd.Flags().Bool("no-prune", false, "Skip the pruning pass")
	cmd.Flags().String("provider", polyglot.ProviderGoogle, "Translation provider: google, copy")
	cmd.Flags().Int("tries", polyglot.DefaultTries, "Attempts per translation request")
	cmd.Flags().Duration("delay", 0, "Delay between translation attempts")
	cmd.Flags().String("cache", "", "SQLite translation cache (disabled when empty)")

	return cmd
}

func runSync(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	outputFmt, _ := cmd.Flags().GetString("output")
	yes, _ := cmd.Flags().GetBool("yes")
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	noPrune, _ := cmd.Flags().GetBool("no-prune")

	shutdownTelemetry := polyglot.InitTelemetry("polyglot", Version)
	defer func() {
		shutdownCtx, c := context.WithTimeout(context.Background(), 5*time.Second)
		defer c()
		shutdownTelemetry(shutdownCtx)
	}()

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	tr, closeTranslator, err := polyglot.NewTranslator(ctx, cfg)
	if err != nil {
		return err
	}
	defer closeTranslator()

	var confirmer polyglot.Confirmer = polyglot.NewConfirmerWithIO(cmd.InOrStdin(), cmd.ErrOrStderr())
	if yes {
		confirmer = polyglot.AutoConfirmer{}
	}

	progress := polyglot.BarProgress(cmd.ErrOrStderr())
	if outputFmt == "json" || polyglot.Quiet() {
		progress = polyglot.SilentProgress
	}

	result, err := polyglot.RunSync(ctx, polyglot.SyncOptions{
		Folder:       cfg.Folder,
		Source:       cfg.Source,
		Destinations: cfg.Destinations,
		DryRun:       dryRun,
		NoPrune:      noPrune,
		Translator:   tr,
		Confirmer:    confirmer,
		Progress:     progress,
	})

	if outputFmt == "json" && result != nil {
		data, mErr := json.Marshal(result)
		if mErr != nil {
			return mErr
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
	}

	if errors.Is(err, polyglot.ErrNothingPruned) {
		return &ExitError{Code: 1, Err: err}
	}
	return err
}
