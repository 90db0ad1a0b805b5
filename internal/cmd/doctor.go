package cmd

import (
	"fmt"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

func newDoctorCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "doctor [locale-dir]",
		Short: "Check the locale workspace",
		Long: `Check that the locale workspace is ready for sync and stats.

Verifies: the locale folder, the source and baseline locales, that every
locale file is a flat JSON object of strings, the destination locales, and
the README table markers. Reports missing and stale key counts.`,
		Example: `  # Check the workspace
  polyglot doctor

  # Machine-readable output
  polyglot doctor -o json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runDoctor,
	}
}

func runDoctor(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, args)
	if err != nil {
		return err
	}
	outputFmt, _ := cmd.Flags().GetString("output")
	checks := polyglot.RunDoctor(cfg)
	allRequired := polyglot.DoctorOK(checks)

	if outputFmt == "json" {
		out, err := polyglot.FormatDoctorJSON(checks)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		if !allRequired {
			return fmt.Errorf("some required checks failed")
		}
		return nil
	}

	// text output
	w := cmd.ErrOrStderr()
	fmt.Fprintln(w)
	fmt.Fprintln(w, polyglot.Cyan("╔══════════════════════════════════════════════╗"))
	fmt.Fprintln(w, polyglot.Cyan("║          Polyglot Doctor                     ║"))
	fmt.Fprintln(w, polyglot.Cyan("╚══════════════════════════════════════════════╝"))
	fmt.Fprintln(w)

	for _, c := range checks {
		if c.OK {
			fmt.Fprintf(w, "  %s  %-22s %s (%s)\n", polyglot.Green("✓"), c.Name, c.Detail, c.Path)
			continue
		}
		paint := polyglot.Red
		label := "FAILED (required)"
		if !c.Required {
			label = "warning (optional)"
			paint = polyglot.Yellow
		}
		fmt.Fprintf(w, "  %s  %-22s %s: %s\n", paint("✗"), c.Name, label, c.Detail)
	}
	fmt.Fprintln(w)

	if !allRequired {
		return fmt.Errorf("some required checks failed. Fix them and try again")
	}
	fmt.Fprintln(w, "All checks passed.")
	return nil
}
