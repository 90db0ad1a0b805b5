package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hironow/polyglot/internal/cmd"
	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

func main() {
	dir := "docs/cli"
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "mkdir %s: %v\n", dir, err)
		os.Exit(1)
	}

	rootCmd := cmd.NewRootCommand()
	rootCmd.DisableAutoGenTag = true
	// shell completion is cobra's, not ours
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	// link between pages without the .md suffix so the docs work as a wiki
	linkHandler := func(name string) string { return strings.TrimSuffix(name, ".md") }
	if err := doc.GenMarkdownTreeCustom(rootCmd, dir, func(string) string { return "" }, linkHandler); err != nil {
		fmt.Fprintf(os.Stderr, "docgen: %v\n", err)
		os.Exit(1)
	}

	for _, c := range documented(rootCmd) {
		fmt.Fprintf(os.Stderr, "  %s\n", filepath.Join(dir, strings.ReplaceAll(c.CommandPath(), " ", "_")+".md"))
	}
}

// documented returns root and its visible subcommands, the pages docgen writes.
func documented(root *cobra.Command) []*cobra.Command {
	cmds := []*cobra.Command{root}
	for _, c := range root.Commands() {
		if c.IsAvailableCommand() && !c.IsAdditionalHelpTopicCommand() {
			cmds = append(cmds, c)
		}
	}
	return cmds
}
