package polyglot

import (
	"context"
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// README markers delimiting the generated translation table.
const (
	TableStartMarker = "<!-- TRANSLATION-TABLE-START -->"
	TableEndMarker   = "<!-- TRANSLATION-TABLE-END -->"
)

var (
	// ErrMarkersNotFound is returned when the README does not contain exactly
	// one start marker followed by exactly one end marker.
	ErrMarkersNotFound = errors.New("translation table markers not found exactly once")

	// ErrEmptyBaseline is returned when the baseline locale has no keys.
	ErrEmptyBaseline = errors.New("baseline locale has no keys")
)

// Health is the traffic-light classification of a completion percentage.
type Health string

const (
	HealthRed    Health = "red"
	HealthYellow Health = "yellow"
	HealthGreen  Health = "green"
)

// ClassifyCompletion maps a percentage to red (<60), yellow (<90) or green.
func ClassifyCompletion(pct int) Health {
	switch {
	case pct < 60:
		return HealthRed
	case pct < 90:
		return HealthYellow
	default:
		return HealthGreen
	}
}

// Completion returns floor(keys*100/baseline) capped at 100.
// Keys beyond the baseline are not rewarded.
func Completion(keys, baseline int) int {
	if baseline <= 0 {
		return 0
	}
	return min(keys*100/baseline, 100)
}

// LanguageStat is one row of the translation table.
type LanguageStat struct {
	Lang      string `json:"lang"`
	Keys      int    `json:"keys"`
	Completed int    `json:"completed"`
	Health    Health `json:"health"`
}

// CollectStats computes the completion of every locale file in folder
// against the baseline locale, sorted by completion, highest first.
// Languages with equal completion keep alphabetical order.
func CollectStats(ctx context.Context, folder, baseline string) ([]LanguageStat, error) {
	_, span := tracer.Start(ctx, "stats.run",
		trace.WithAttributes(attribute.String("baseline", baseline)))
	defer span.End()

	base, err := LoadLocale(LocalePath(folder, baseline))
	if err != nil {
		return nil, fmt.Errorf("baseline locale: %w", err)
	}
	if base.Len() == 0 {
		return nil, fmt.Errorf("%s: %w", LocalePath(folder, baseline), ErrEmptyBaseline)
	}

	files, err := ListLocaleFiles(folder)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}

	stats := make([]LanguageStat, 0, len(files))
	for _, path := range files {
		l, err := LoadLocale(path)
		if err != nil {
			return nil, err
		}
		pct := Completion(l.Len(), base.Len())
		stats = append(stats, LanguageStat{
			Lang:      LocaleLang(path),
			Keys:      l.Len(),
			Completed: pct,
			Health:    ClassifyCompletion(pct),
		})
	}
	slices.SortStableFunc(stats, func(a, b LanguageStat) int {
		return b.Completed - a.Completed
	})
	span.SetAttributes(attribute.Int("languages", len(stats)))
	return stats, nil
}

const (
	tableHeader = `
<table>
  <thead>
    <tr>
      <th>Language</th>
      <th>Status</th>
    </tr>
  </thead>
  <tbody>
`
	tableFooter = `
  </tbody>
</table>
`
)

// RenderTable renders stats as the HTML table embedded in the README.
func RenderTable(stats []LanguageStat) string {
	rows := make([]string, 0, len(stats))
	for _, s := range stats {
		rows = append(rows, fmt.Sprintf(
			"     <tr>\n      <td>%s</td>\n      <td style=\"color: %s;\">%d%%</td>\n    </tr>",
			s.Lang, ClassifyCompletion(s.Completed), s.Completed))
	}
	return tableHeader + strings.Join(rows, "\n") + tableFooter
}

// SpliceReadme replaces everything between the table markers with table.
// Text before the start marker and after the end marker is preserved.
func SpliceReadme(content, table string) (string, error) {
	if strings.Count(content, TableStartMarker) != 1 || strings.Count(content, TableEndMarker) != 1 {
		return "", ErrMarkersNotFound
	}
	before, rest, _ := strings.Cut(content, TableStartMarker)
	_, after, ok := strings.Cut(rest, TableEndMarker)
	if !ok {
		// end marker precedes the start marker
		return "", ErrMarkersNotFound
	}
	return before + TableStartMarker + "\n" + table + "\n" + TableEndMarker + after, nil
}

// UpdateReadme splices table into the README at path.
// The file is left untouched when the markers are missing.
func UpdateReadme(ctx context.Context, path, table string) error {
	_, span := tracer.Start(ctx, "readme.update",
		trace.WithAttributes(attribute.String("path", path)))
	defer span.End()

	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	updated, err := SpliceReadme(string(data), table)
	if err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return os.WriteFile(path, []byte(updated), 0644)
}

// RunStats collects stats and rewrites the README table.
func RunStats(ctx context.Context, folder, baseline, readme string) ([]LanguageStat, error) {
	stats, err := CollectStats(ctx, folder, baseline)
	if err != nil {
		return nil, err
	}
	if err := UpdateReadme(ctx, readme, RenderTable(stats)); err != nil {
		return stats, err
	}
	LogOK(Msg("readme_updated"), readme)
	return stats, nil
}

// LanguageName returns the English display name of a language code,
// or the code itself when it is not a known tag.
func LanguageName(code string) string {
	tag, err := language.Parse(code)
	if err != nil {
		return code
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return code
}
