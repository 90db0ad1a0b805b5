package polyglot

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// ConfigFileName is the project config looked up in the working directory.
const ConfigFileName = ".polyglot.yaml"

// Defaults for a project without a config file.
const (
	DefaultFolder   = "resources/translations"
	DefaultSource   = "es"
	DefaultBaseline = "en"
	DefaultReadme   = "README.md"
	DefaultTries    = 3
)

// Config holds project-scoped settings stored in .polyglot.yaml.
type Config struct {
	Folder       string        `yaml:"folder"`
	Source       string        `yaml:"source"`
	Destinations []string      `yaml:"destinations"`
	Baseline     string        `yaml:"baseline"`
	Readme       string        `yaml:"readme"`
	Provider     string        `yaml:"provider,omitempty"`
	Tries        int           `yaml:"tries,omitempty"`
	Delay        time.Duration `yaml:"delay,omitempty"`
	Cache        string        `yaml:"cache,omitempty"`
}

// DefaultConfig returns the settings used when no config file exists.
func DefaultConfig() *Config {
	return &Config{
		Folder:       DefaultFolder,
		Source:       DefaultSource,
		Destinations: []string{DefaultBaseline},
		Baseline:     DefaultBaseline,
		Readme:       DefaultReadme,
		Provider:     ProviderGoogle,
		Tries:        DefaultTries,
	}
}

// ProjectConfigPath returns the path of the project config inside dir.
func ProjectConfigPath(dir string) string {
	return filepath.Join(dir, ConfigFileName)
}

// LoadConfig reads the config at path on top of DefaultConfig.
// Returns the defaults (no error) if the file does not exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return cfg, nil
		}
		return nil, err
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

// SaveConfig writes cfg to path.
func SaveConfig(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// SourcePath returns the path of the source locale file.
func (c *Config) SourcePath() string { return LocalePath(c.Folder, c.Source) }

// BaselinePath returns the path of the locale used as the stats denominator.
func (c *Config) BaselinePath() string { return LocalePath(c.Folder, c.Baseline) }

// Validate reports the first invalid setting.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Folder) == "" {
		return fmt.Errorf("config: folder is required")
	}
	if err := ValidateLangCode(c.Source); err != nil {
		return fmt.Errorf("config: source: %w", err)
	}
	if err := ValidateLangCode(c.Baseline); err != nil {
		return fmt.Errorf("config: baseline: %w", err)
	}
	if len(c.Destinations) == 0 {
		return fmt.Errorf("config: at least one destination language is required")
	}
	for _, d := range c.Destinations {
		if err := ValidateLangCode(d); err != nil {
			return fmt.Errorf("config: destination: %w", err)
		}
	}
	if slices.Contains(c.Destinations, c.Source) {
		return fmt.Errorf("config: source language %q is also listed as a destination", c.Source)
	}
	switch c.Provider {
	case "", ProviderGoogle, ProviderCopy:
	default:
		return fmt.Errorf("config: unknown provider %q (want %s or %s)", c.Provider, ProviderGoogle, ProviderCopy)
	}
	if c.Tries < 0 {
		return fmt.Errorf("config: tries must not be negative, got %d", c.Tries)
	}
	return nil
}

// ValidateLangCode checks that code is a well-formed BCP 47 language tag.
func ValidateLangCode(code string) error {
	if strings.TrimSpace(code) == "" {
		return fmt.Errorf("language code is required")
	}
	if _, err := language.Parse(code); err != nil {
		return fmt.Errorf("invalid language code %q: %w", code, err)
	}
	return nil
}

// SplitLangList parses a comma separated list of language codes.
func SplitLangList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
