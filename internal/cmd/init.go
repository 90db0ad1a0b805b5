package cmd

import (
	"fmt"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init [project-dir]",
		Short: "Initialize project configuration",
		Long: `Write a .polyglot.yaml into the project directory.

Asks for the locale folder, the source language and the destination
languages. Press Enter to keep a default. Language codes must be
BCP 47 tags such as en, pt-BR or zh-Hant.`,
		Example: `  # Initialize the current project
  polyglot init

  # Initialize and then sync
  polyglot init && polyglot sync`,
		Args: cobra.MaximumNArgs(1),
		RunE: runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}

	w := cmd.ErrOrStderr()
	fmt.Fprintln(w)
	fmt.Fprintln(w, polyglot.Cyan("╔══════════════════════════════════════════════╗"))
	fmt.Fprintln(w, polyglot.Cyan("║          Polyglot Init                       ║"))
	fmt.Fprintln(w, polyglot.Cyan("╚══════════════════════════════════════════════╝"))
	fmt.Fprintln(w)

	_, err := polyglot.RunInitWithReader(dir, cmd.InOrStdin(), w)
	return err
}
