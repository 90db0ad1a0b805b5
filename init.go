package polyglot

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// RunInitWithReader prompts on w for the project settings, reading answers
// from r, and writes .polyglot.yaml into dir. Empty answers keep the default.
func RunInitWithReader(dir string, r io.Reader, w io.Writer) (*Config, error) {
	absPath, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("invalid path: %w", err)
	}
	if info, err := os.Stat(absPath); err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", absPath)
	}

	cfg := DefaultConfig()
	scanner := bufio.NewScanner(r)
	ask := func(prompt, def string) (string, error) {
		fmt.Fprintf(w, "%s [%s]: ", prompt, def)
		var answer string
		if scanner.Scan() {
			answer = strings.TrimSpace(scanner.Text())
		}
		if err := scanner.Err(); err != nil {
			return "", fmt.Errorf("reading input: %w", err)
		}
		if answer == "" {
			return def, nil
		}
		return answer, nil
	}

	if cfg.Folder, err = ask("Locale folder", cfg.Folder); err != nil {
		return nil, err
	}
	if cfg.Source, err = ask("Source language", cfg.Source); err != nil {
		return nil, err
	}
	dests, err := ask("Destination languages (comma separated)", strings.Join(cfg.Destinations, ","))
	if err != nil {
		return nil, err
	}
	cfg.Destinations = SplitLangList(dests)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	path := ProjectConfigPath(absPath)
	if err := SaveConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("save config: %w", err)
	}

	fmt.Fprintf(w, "\nConfig saved to %s\n", path)
	fmt.Fprintf(w, "  Folder:       %s\n", cfg.Folder)
	fmt.Fprintf(w, "  Source:       %s\n", cfg.Source)
	fmt.Fprintf(w, "  Destinations: %s\n", strings.Join(cfg.Destinations, ", "))
	return cfg, nil
}
