package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// NeedsDefaultSync reports whether args should be prefixed with "sync" so
// that `polyglot [flags] <locale-dir>` behaves like `polyglot sync`. It scans
// past known root persistent flags to find the first positional arg and
// checks whether it is a registered subcommand.
func NeedsDefaultSync(rootCmd *cobra.Command, args []string) bool {
	if len(args) == 0 {
		return false
	}

	// --version and --help exit early; never rewrite around them.
	for _, a := range args {
		if a == "--version" || a == "--help" || a == "-h" {
			return false
		}
		if a == "--" {
			break
		}
	}

	if first := args[0]; !strings.HasPrefix(first, "-") {
		return !isSubcommand(rootCmd, first)
	}

	// --version and --help are auto-added by cobra after Execute starts.
	boolFlags := map[string]bool{
		"--help": true, "-h": true,
		"--version": true,
	}
	valueFlags := map[string]bool{}

	rootCmd.PersistentFlags().VisitAll(func(f *pflag.Flag) {
		target := valueFlags
		if f.Value.Type() == "bool" {
			target = boolFlags
		}
		target["--"+f.Name] = true
		if f.Shorthand != "" {
			target["-"+f.Shorthand] = true
		}
	})

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") {
			return !isSubcommand(rootCmd, arg)
		}
		switch {
		case strings.Contains(arg, "="), boolFlags[arg]:
		case valueFlags[arg]:
			i++ // skip the value
		default:
			// unknown flag belongs to sync
			return true
		}
	}

	return false // only root flags, no positional
}

func isSubcommand(rootCmd *cobra.Command, name string) bool {
	for _, c := range rootCmd.Commands() {
		if c.Name() == name {
			return true
		}
		for _, a := range c.Aliases {
			if a == name {
				return true
			}
		}
	}
	return false
}
