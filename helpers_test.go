package polyglot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

// writeLocale writes raw JSON as <folder>/<lang>.json.
func writeLocale(t *testing.T, folder, lang, content string) string {
	t.Helper()
	path := LocalePath(folder, lang)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func readLocale(t *testing.T, folder, lang string) *Locale {
	t.Helper()
	l, err := LoadLocale(LocalePath(folder, lang))
	if err != nil {
		t.Fatalf("LoadLocale(%s): %v", lang, err)
	}
	return l
}

// stubTranslator records calls and answers with fn(text), or err.
type stubTranslator struct {
	calls []string
	fn    func(text, to string) string
	err   error
}

func (s *stubTranslator) Translate(_ context.Context, text, _, to string) (string, error) {
	s.calls = append(s.calls, text)
	if s.err != nil {
		return "", s.err
	}
	if s.fn == nil {
		return text, nil
	}
	return s.fn(text, to), nil
}

// scriptedConfirmer answers from a map; keys not listed are confirmed.
type scriptedConfirmer struct {
	answers map[string]bool
	asked   []string
}

func (s *scriptedConfirmer) ConfirmDeletion(_ context.Context, key string) (bool, error) {
	s.asked = append(s.asked, key)
	if ok, found := s.answers[key]; found {
		return ok, nil
	}
	return true, nil
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
