package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
)

// Version is set at build time via -ldflags.
var Version = "dev"

type versionInfo struct {
	Version   string   `json:"version"`
	Providers []string `json:"providers"`
	Messages  []string `json:"messages"`
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long: `Show the polyglot version string set at build time via ldflags,
the translation providers sync accepts and the languages CLI messages
are available in.`,
		Example: `  # Show version
  polyglot version

  # Machine-readable
  polyglot version -o json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := versionInfo{
				Version:   Version,
				Providers: polyglot.Providers,
				Messages:  polyglot.MessageLangs,
			}
			w := cmd.OutOrStdout()
			if outputFmt, _ := cmd.Flags().GetString("output"); outputFmt == "json" {
				data, err := json.Marshal(info)
				if err != nil {
					return err
				}
				fmt.Fprintln(w, string(data))
				return nil
			}
			fmt.Fprintf(w, "polyglot %s\n", info.Version)
			fmt.Fprintf(w, "  providers: %s\n", strings.Join(info.Providers, ", "))
			fmt.Fprintf(w, "  messages:  %s\n", strings.Join(info.Messages, ", "))
			return nil
		},
	}
}
