package polyglot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// ErrNothingPruned is returned by RunSync when the pruning pass left every
// locale file untouched.
var ErrNothingPruned = errors.New("no locale file changed during pruning")

// FillResult describes the fill pass on one destination locale.
type FillResult struct {
	Lang    string   `json:"lang"`
	Path    string   `json:"path"`
	Created bool     `json:"created"`
	Added   []string `json:"added"`
}

// PruneResult describes the pruning pass on one locale file.
// Kept lists stale keys whose deletion was declined.
type PruneResult struct {
	Lang    string   `json:"lang"`
	Path    string   `json:"path"`
	Removed []string `json:"removed"`
	Kept    []string `json:"kept,omitempty"`
}

// SyncResult is the outcome of RunSync.
type SyncResult struct {
	RunID   string        `json:"run_id"`
	DryRun  bool          `json:"dry_run"`
	Filled  []FillResult  `json:"filled"`
	Pruned  []PruneResult `json:"pruned"`
	Changed bool          `json:"changed"`
}

// SyncOptions configures RunSync.
type SyncOptions struct {
	Folder       string
	Source       string
	Destinations []string
	DryRun       bool
	NoPrune      bool

	Translator Translator
	Confirmer  Confirmer
	Progress   ProgressFactory // nil = SilentProgress
}

// MissingKeys returns the keys of src absent from dst, in source order.
func MissingKeys(src, dst *Locale) []string {
	var missing []string
	for _, k := range src.Keys() {
		if !dst.Has(k) {
			missing = append(missing, k)
		}
	}
	return missing
}

// StaleKeys returns the keys of l absent from src, in document order.
func StaleKeys(src, l *Locale) []string {
	var stale []string
	for _, k := range l.Keys() {
		if !src.Has(k) {
			stale = append(stale, k)
		}
	}
	return stale
}

// FillMissing translates every source key missing from dst and appends the
// result to dst. Existing values in dst are never modified.
func FillMissing(ctx context.Context, src, dst *Locale, from, to string, tr Translator, p Progress) ([]string, error) {
	missing := MissingKeys(src, dst)
	for _, key := range missing {
		text, _ := src.Get(key)
		out, err := tr.Translate(ctx, text, from, to)
		if err != nil {
			return nil, fmt.Errorf("key %q: %w", key, err)
		}
		dst.Set(key, out)
		if p != nil {
			p.Add(1)
		}
	}
	if p != nil {
		p.Finish()
	}
	return missing, nil
}

// RunSync fills destination locales from the source locale and prunes stale
// keys from every locale file in the folder.
//
// When the pruning pass runs and changes no file, the result is returned
// together with ErrNothingPruned.
func RunSync(ctx context.Context, opts SyncOptions) (*SyncResult, error) {
	result := &SyncResult{RunID: uuid.NewString(), DryRun: opts.DryRun}

	ctx, span := tracer.Start(ctx, "sync.run",
		trace.WithAttributes(
			attribute.String("run_id", result.RunID),
			attribute.String("source", opts.Source),
			attribute.StringSlice("destinations", opts.Destinations),
			attribute.Bool("dry_run", opts.DryRun),
		),
	)
	defer span.End()

	srcPath := LocalePath(opts.Folder, opts.Source)
	src, err := LoadLocale(srcPath)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("source locale: %w", err)
	}
	LogInfo(Msg("source_info"), srcPath, src.Len())

	filled, err := fillDestinations(ctx, src, opts)
	result.Filled = filled
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}

	if opts.NoPrune {
		return result, nil
	}

	if opts.DryRun {
		result.Pruned, err = previewPrune(opts.Folder, src)
		return result, err
	}

	pruned, changed, err := PruneLocales(ctx, opts.Folder, src, opts.Confirmer)
	result.Pruned = pruned
	result.Changed = changed
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return result, err
	}
	span.SetAttributes(attribute.Bool("changed", changed))
	if !changed {
		LogWarn("%s", Msg("nothing_pruned"))
		return result, ErrNothingPruned
	}
	return result, nil
}

func fillDestinations(ctx context.Context, src *Locale, opts SyncOptions) ([]FillResult, error) {
	progress := opts.Progress
	if progress == nil {
		progress = SilentProgress
	}

	var results []FillResult
	for _, lang := range opts.Destinations {
		path := LocalePath(opts.Folder, lang)
		dst, existed, err := LoadLocaleOrEmpty(path)
		if err != nil {
			return results, fmt.Errorf("destination locale: %w", err)
		}
		fr := FillResult{Lang: lang, Path: path, Created: !existed}

		if opts.DryRun {
			fr.Added = MissingKeys(src, dst)
			LogInfo(Msg("dry_run_missing"), filepath.Base(path), len(fr.Added))
			results = append(results, fr)
			continue
		}

		fillCtx, span := tracer.Start(ctx, "sync.fill",
			trace.WithAttributes(attribute.String("lang", lang)))

		n := len(MissingKeys(src, dst))
		if n > 0 {
			LogInfo(Msg("translating"), n, opts.Source, lang)
		}
		added, err := FillMissing(fillCtx, src, dst, opts.Source, lang, opts.Translator, progress(n, lang))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			span.End()
			return results, fmt.Errorf("translate into %s: %w", lang, err)
		}
		fr.Added = added

		if err := SaveLocale(path, dst); err != nil {
			span.End()
			return results, fmt.Errorf("write %s: %w", path, err)
		}
		span.SetAttributes(attribute.Int("added", len(added)))
		span.End()

		switch {
		case fr.Created:
			LogOK(Msg("locale_created"), filepath.Base(path))
		case len(added) > 0:
			LogOK(Msg("locale_saved"), filepath.Base(path), len(added))
		default:
			LogInfo(Msg("locale_current"), filepath.Base(path))
		}
		results = append(results, fr)
	}
	return results, nil
}

// PruneLocales removes keys absent from src from every locale file in
// folder. Each distinct stale key is confirmed once through c; the decision
// is reused for the remaining files. A file is rewritten as soon as it has
// been processed. changed reports whether any file was rewritten.
func PruneLocales(ctx context.Context, folder string, src *Locale, c Confirmer) (results []PruneResult, changed bool, err error) {
	ctx, span := tracer.Start(ctx, "sync.prune")
	defer span.End()

	files, err := ListLocaleFiles(folder)
	if err != nil {
		return nil, false, fmt.Errorf("list locales: %w", err)
	}

	memo := newDecisionMemo(c)
	for _, path := range files {
		l, err := LoadLocale(path)
		if err != nil {
			return results, changed, err
		}
		pr := PruneResult{Lang: LocaleLang(path), Path: path}
		name := filepath.Base(path)

		for _, key := range StaleKeys(src, l) {
			ok, err := memo.shouldDelete(ctx, key)
			if err != nil {
				return results, changed, fmt.Errorf("confirm %q: %w", key, err)
			}
			if !ok {
				pr.Kept = append(pr.Kept, key)
				LogInfo(Msg("key_kept"), key, name)
				continue
			}
			l.Delete(key)
			pr.Removed = append(pr.Removed, key)
			LogOK(Msg("key_removed"), key, name)
		}

		if len(pr.Removed) > 0 {
			if err := SaveLocale(path, l); err != nil {
				return results, changed, fmt.Errorf("write %s: %w", path, err)
			}
			changed = true
			recordPruned(ctx, pr.Lang, len(pr.Removed))
		}
		results = append(results, pr)
	}
	span.SetAttributes(attribute.Bool("changed", changed))
	return results, changed, nil
}

// previewPrune lists stale keys per locale file without touching anything.
func previewPrune(folder string, src *Locale) ([]PruneResult, error) {
	files, err := ListLocaleFiles(folder)
	if err != nil {
		return nil, fmt.Errorf("list locales: %w", err)
	}
	var results []PruneResult
	for _, path := range files {
		l, err := LoadLocale(path)
		if err != nil {
			return results, err
		}
		stale := StaleKeys(src, l)
		if len(stale) > 0 {
			LogInfo(Msg("dry_run_stale"), filepath.Base(path), len(stale))
		}
		results = append(results, PruneResult{Lang: LocaleLang(path), Path: path, Removed: stale})
	}
	return results, nil
}
