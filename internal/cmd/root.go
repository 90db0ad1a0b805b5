package cmd

import (
	"slices"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

func init() {
	cobra.EnableTraverseRunHooks = true
}

// NewRootCommand creates and returns the root cobra command for polyglot.
// Exported for testability (SetArgs/SetOut) and docgen.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "polyglot",
		Short: "Translation file maintenance",
		Long: `polyglot keeps a folder of <lang>.json translation files in shape.

It fills missing keys through machine translation, prunes keys that
left the source locale, and keeps the README completion table current.`,
		Version: Version,
		// Silence usage on RunE errors (cobra prints usage by default on error)
		SilenceUsage:      true,
		PersistentPreRunE: setupRoot,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			polyglot.CloseLogFile()
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable verbose output")
	pf.StringP("output", "o", "text", "Output format: text, json")
	pf.StringP("lang", "l", "en", "Output language: en, ja, fr")
	pf.StringP("config", "c", "", "Config file (default "+polyglot.ConfigFileName+" when present)")
	pf.Bool("quiet", false, "Suppress log lines and progress bars")
	pf.String("log-file", "", "Also append plain log lines to this file")
	pf.StringP("folder", "f", polyglot.DefaultFolder, "Locale folder")
	pf.StringP("source", "s", polyglot.DefaultSource, "Source language")
	pf.StringSliceP("dest", "d", []string{polyglot.DefaultBaseline}, "Destination languages")
	pf.String("baseline", polyglot.DefaultBaseline, "Language used as the 100% reference for stats")
	pf.String("readme", polyglot.DefaultReadme, "README holding the translation table")

	rootCmd.AddCommand(
		newSyncCommand(),
		newStatsCommand(),
		newInitCommand(),
		newDoctorCommand(),
		newVersionCommand(),
		newUpdateCommand(),
	)

	return rootCmd
}

func setupRoot(cmd *cobra.Command, args []string) error {
	lang, _ := cmd.Flags().GetString("lang")
	if slices.Contains(polyglot.MessageLangs, lang) {
		polyglot.Lang = lang
	}
	quiet, _ := cmd.Flags().GetBool("quiet")
	polyglot.SetQuiet(quiet)
	polyglot.SetLogOutput(cmd.ErrOrStderr())
	if path, _ := cmd.Flags().GetString("log-file"); path != "" {
		if err := polyglot.InitLogFile(path); err != nil {
			return err
		}
	}
	return nil
}
