package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/hironow/polyglot"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// loadConfig reads the project config and applies every flag the user set
// explicitly on top of it. A positional locale-dir overrides --folder.
func loadConfig(cmd *cobra.Command, args []string) (*polyglot.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
	} else {
		path = polyglot.ConfigFileName
	}

	cfg, err := polyglot.LoadConfig(path)
	if err != nil {
		return nil, err
	}
	if err := applyFlagOverrides(cmd.Flags(), cfg); err != nil {
		return nil, err
	}
	if len(args) > 0 {
		cfg.Folder = args[0]
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyFlagOverrides(fs *pflag.FlagSet, cfg *polyglot.Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case "folder":
			cfg.Folder = f.Value.String()
		case "source":
			cfg.Source = f.Value.String()
		case "dest":
			cfg.Destinations, err = fs.GetStringSlice("dest")
		case "baseline":
			cfg.Baseline = f.Value.String()
		case "readme":
			cfg.Readme = f.Value.String()
		case "provider":
			cfg.Provider = f.Value.String()
		case "tries":
			cfg.Tries, err = fs.GetInt("tries")
		case "delay":
			var d time.Duration
			d, err = fs.GetDuration("delay")
			cfg.Delay = d
		case "cache":
			cfg.Cache = f.Value.String()
		}
	})
	return err
}
