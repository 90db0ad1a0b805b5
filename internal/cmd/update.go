package cmd

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/spf13/cobra"
)

// releaseSlug is the GitHub repository publishing polyglot releases.
const releaseSlug = "hironow/polyglot"

func newUpdateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update",
		Short: "Self-update polyglot to the latest release",
		Long: `Self-update polyglot to the latest GitHub release.

The release archive is checked against checksums.txt before the running
binary is replaced. Use --check to only report whether a newer release
exists.`,
		Example: `  # Check for updates
  polyglot update --check

  # Update to the latest version
  polyglot update`,
		Args: cobra.NoArgs,
		RunE: runUpdate,
	}

	cmd.Flags().BoolP("check", "C", false, "Check for updates without installing")

	return cmd
}

func runUpdate(cmd *cobra.Command, args []string) error {
	checkOnly, _ := cmd.Flags().GetBool("check")
	w := cmd.OutOrStdout()

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Validator: &selfupdate.ChecksumValidator{UniqueFilename: "checksums.txt"},
	})
	if err != nil {
		return fmt.Errorf("failed to create updater: %w", err)
	}

	latest, found, err := updater.DetectLatest(cmd.Context(), selfupdate.ParseSlug(releaseSlug))
	if err != nil {
		return fmt.Errorf("failed to detect latest version: %w", err)
	}
	if !found {
		fmt.Fprintln(w, "No release found.")
		return nil
	}

	current, ok := currentVersion()
	if !ok {
		fmt.Fprintf(w, "Development build (version %q), cannot compare versions.\nLatest release: v%s\n", Version, latest.Version())
		return nil
	}
	if latest.LessOrEqual(current.String()) {
		fmt.Fprintf(w, "Already up to date (v%s).\n", current)
		return nil
	}
	if checkOnly {
		fmt.Fprintf(w, "Update available: v%s → v%s\n", current, latest.Version())
		return nil
	}

	exe, err := selfupdate.ExecutablePath()
	if err != nil {
		return fmt.Errorf("failed to locate executable: %w", err)
	}
	if err := updater.UpdateTo(cmd.Context(), latest, exe); err != nil {
		return fmt.Errorf("update failed: %w", err)
	}
	fmt.Fprintf(w, "Updated to v%s\n", latest.Version())
	return nil
}

// currentVersion parses Version. Local builds report "dev", which is not semver.
func currentVersion() (*semver.Version, bool) {
	v, err := semver.NewVersion(strings.TrimPrefix(Version, "v"))
	if err != nil {
		return nil, false
	}
	return v, true
}
