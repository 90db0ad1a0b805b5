package polyglot

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestMissingAndStaleKeys(t *testing.T) {
	src, _ := ParseLocale([]byte(`{"a": "1", "b": "2", "c": "3"}`))
	dst, _ := ParseLocale([]byte(`{"c": "x", "z": "old", "a": "y"}`))

	if got := MissingKeys(src, dst); !equalStrings(got, []string{"b"}) {
		t.Errorf("MissingKeys = %v, want [b]", got)
	}
	if got := StaleKeys(src, dst); !equalStrings(got, []string{"z"}) {
		t.Errorf("StaleKeys = %v, want [z]", got)
	}
}

func TestFillMissing_TranslatesOnlyMissingKeys(t *testing.T) {
	// given
	src, _ := ParseLocale([]byte(`{"hello": "hola", "bye": "adiós", "thanks": "gracias"}`))
	dst, _ := ParseLocale([]byte(`{"bye": "goodbye (edited)"}`))
	tr := &stubTranslator{fn: func(text, to string) string { return to + ":" + text }}

	// when
	added, err := FillMissing(context.Background(), src, dst, "es", "en", tr, nil)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !equalStrings(added, []string{"hello", "thanks"}) {
		t.Errorf("added = %v, want [hello thanks]", added)
	}
	if !equalStrings(tr.calls, []string{"hola", "gracias"}) {
		t.Errorf("translator calls = %v, want [hola gracias]", tr.calls)
	}
	if v, _ := dst.Get("bye"); v != "goodbye (edited)" {
		t.Errorf("existing value changed: %q", v)
	}
	if v, _ := dst.Get("hello"); v != "en:hola" {
		t.Errorf("hello = %q, want %q", v, "en:hola")
	}
	if !equalStrings(dst.Keys(), []string{"bye", "hello", "thanks"}) {
		t.Errorf("keys = %v, want new keys appended", dst.Keys())
	}
}

func TestFillMissing_IdempotentWhenComplete(t *testing.T) {
	src, _ := ParseLocale([]byte(`{"a": "1"}`))
	dst, _ := ParseLocale([]byte(`{"a": "uno"}`))
	tr := &stubTranslator{}

	added, err := FillMissing(context.Background(), src, dst, "es", "en", tr, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(added) != 0 || len(tr.calls) != 0 {
		t.Errorf("added = %v, calls = %v, want none", added, tr.calls)
	}
}

func TestFillMissing_TranslatorErrorIsFatal(t *testing.T) {
	src, _ := ParseLocale([]byte(`{"a": "1"}`))
	tr := &stubTranslator{err: errors.New("quota exceeded")}

	_, err := FillMissing(context.Background(), src, NewLocale(), "es", "en", tr, nil)
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Fatalf("err = %v, want quota error", err)
	}
}

func TestRunSync_MissingSourceIsError(t *testing.T) {
	_, err := RunSync(context.Background(), SyncOptions{
		Folder:       t.TempDir(),
		Source:       "es",
		Destinations: []string{"en"},
		Translator:   CopyTranslator{},
		Confirmer:    AutoConfirmer{},
	})
	if err == nil {
		t.Fatal("expected error for missing source locale")
	}
}

func TestRunSync_FillThenPruneScenario(t *testing.T) {
	// given: source {a, b}, no destination file yet
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1", "b": "2"}`)
	opts := SyncOptions{
		Folder:       dir,
		Source:       "es",
		Destinations: []string{"en"},
		Translator:   CopyTranslator{},
		Confirmer:    AutoConfirmer{},
	}

	// when: first sync fills en
	res, err := RunSync(context.Background(), opts)

	// then: nothing to prune, so the run reports ErrNothingPruned
	if !errors.Is(err, ErrNothingPruned) {
		t.Fatalf("err = %v, want ErrNothingPruned", err)
	}
	if !res.Filled[0].Created {
		t.Error("en.json should be reported as created")
	}
	en := readLocale(t, dir, "en")
	if !equalStrings(en.Keys(), []string{"a", "b"}) {
		t.Fatalf("en keys = %v, want [a b]", en.Keys())
	}
	if v, _ := en.Get("b"); v != "2" {
		t.Errorf("en[b] = %q, want %q", v, "2")
	}

	// when: the source shrinks to {a}
	writeLocale(t, dir, "es", `{"a": "1"}`)
	res, err = RunSync(context.Background(), opts)

	// then: b is pruned from en and the run succeeds
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !res.Changed {
		t.Error("Changed = false, want true")
	}
	en = readLocale(t, dir, "en")
	if !equalStrings(en.Keys(), []string{"a"}) {
		t.Errorf("en keys = %v, want [a]", en.Keys())
	}
	if res.RunID == "" {
		t.Error("RunID should be set")
	}
}

func TestRunSync_NoPruneSkipsPruning(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1"}`)
	writeLocale(t, dir, "en", `{"a": "one", "gone": "x"}`)

	res, err := RunSync(context.Background(), SyncOptions{
		Folder:       dir,
		Source:       "es",
		Destinations: []string{"en"},
		NoPrune:      true,
		Translator:   CopyTranslator{},
		Confirmer:    AutoConfirmer{},
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(res.Pruned) != 0 {
		t.Errorf("Pruned = %v, want empty", res.Pruned)
	}
	if !readLocale(t, dir, "en").Has("gone") {
		t.Error("stale key should survive with NoPrune")
	}
}

func TestRunSync_DryRunWritesNothing(t *testing.T) {
	// given
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1", "b": "2"}`)
	writeLocale(t, dir, "en", `{"a": "one", "stale": "x"}`)
	tr := &stubTranslator{}
	c := &scriptedConfirmer{}

	// when
	res, err := RunSync(context.Background(), SyncOptions{
		Folder:       dir,
		Source:       "es",
		Destinations: []string{"en", "fr"},
		DryRun:       true,
		Translator:   tr,
		Confirmer:    c,
	})

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(tr.calls) != 0 || len(c.asked) != 0 {
		t.Errorf("dry-run should not translate or prompt: calls=%v asked=%v", tr.calls, c.asked)
	}
	if !equalStrings(res.Filled[0].Added, []string{"b"}) {
		t.Errorf("en missing = %v, want [b]", res.Filled[0].Added)
	}
	if !res.Filled[1].Created {
		t.Error("fr should be reported as to-be-created")
	}
	if l := readLocale(t, dir, "en"); !l.Has("stale") || l.Has("b") {
		t.Errorf("en.json was modified: %v", l.Keys())
	}
	if _, existed, _ := LoadLocaleOrEmpty(LocalePath(dir, "fr")); existed {
		t.Error("fr.json should not be created in dry-run")
	}
}

func TestPruneLocales_AsksOncePerKey(t *testing.T) {
	// given: the same stale key in two files, plus one declined key
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1"}`)
	writeLocale(t, dir, "en", `{"a": "one", "old": "x", "keep": "k"}`)
	writeLocale(t, dir, "fr", `{"old": "y", "keep": "k", "a": "un"}`)
	src := readLocale(t, dir, "es")
	c := &scriptedConfirmer{answers: map[string]bool{"keep": false}}

	// when
	results, changed, err := PruneLocales(context.Background(), dir, src, c)

	// then
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !changed {
		t.Error("changed = false, want true")
	}
	if !equalStrings(c.asked, []string{"old", "keep"}) {
		t.Errorf("asked = %v, want [old keep]", c.asked)
	}
	for _, lang := range []string{"en", "fr"} {
		l := readLocale(t, dir, lang)
		if l.Has("old") {
			t.Errorf("%s still has confirmed key", lang)
		}
		if !l.Has("keep") {
			t.Errorf("%s lost declined key", lang)
		}
	}
	// results follow file name order: en, es, fr
	if len(results) != 3 || results[1].Lang != "es" || len(results[1].Removed) != 0 {
		t.Errorf("results = %+v", results)
	}
	if !equalStrings(results[0].Kept, []string{"keep"}) {
		t.Errorf("en kept = %v, want [keep]", results[0].Kept)
	}
}

func TestPruneLocales_AllDeclinedIsUnchanged(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1"}`)
	writeLocale(t, dir, "en", `{"a": "one", "old": "x"}`)
	c := &scriptedConfirmer{answers: map[string]bool{"old": false}}

	_, changed, err := PruneLocales(context.Background(), dir, readLocale(t, dir, "es"), c)

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if changed {
		t.Error("changed = true, want false")
	}
}

func TestRunSync_DeclinedDeletionReportsNothingPruned(t *testing.T) {
	dir := t.TempDir()
	writeLocale(t, dir, "es", `{"a": "1"}`)
	writeLocale(t, dir, "en", `{"a": "one", "old": "x"}`)

	_, err := RunSync(context.Background(), SyncOptions{
		Folder:       dir,
		Source:       "es",
		Destinations: []string{"en"},
		Translator:   CopyTranslator{},
		Confirmer:    &scriptedConfirmer{answers: map[string]bool{"old": false}},
	})

	if !errors.Is(err, ErrNothingPruned) {
		t.Fatalf("err = %v, want ErrNothingPruned", err)
	}
}
