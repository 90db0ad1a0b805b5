package polyglot

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// LocaleExt is the file extension of locale documents.
const LocaleExt = ".json"

// Locale is a flat translation table for one language.
// Keys keep their insertion order, both in memory and on disk.
type Locale struct {
	entries *orderedmap.OrderedMap[string, string]
}

// NewLocale returns an empty locale.
func NewLocale() *Locale {
	return &Locale{entries: orderedmap.New[string, string]()}
}

// ParseLocale decodes a JSON object of string values.
func ParseLocale(data []byte) (*Locale, error) {
	l := NewLocale()
	if err := json.Unmarshal(data, l.entries); err != nil {
		return nil, err
	}
	return l, nil
}

func (l *Locale) Len() int { return l.entries.Len() }

func (l *Locale) Get(key string) (string, bool) { return l.entries.Get(key) }

func (l *Locale) Has(key string) bool {
	_, ok := l.entries.Get(key)
	return ok
}

// Set stores value under key. A new key is appended after the existing ones;
// an existing key keeps its position.
func (l *Locale) Set(key, value string) { l.entries.Set(key, value) }

func (l *Locale) Delete(key string) bool {
	_, ok := l.entries.Delete(key)
	return ok
}

// Keys returns the keys in document order.
func (l *Locale) Keys() []string {
	keys := make([]string, 0, l.entries.Len())
	for pair := l.entries.Oldest(); pair != nil; pair = pair.Next() {
		keys = append(keys, pair.Key)
	}
	return keys
}

// Encode renders the locale as JSON indented by two spaces.
// HTML and non-ASCII characters, U+2028 and U+2029 included, are written
// as-is and there is no trailing newline. Invalid UTF-8 was already replaced
// with U+FFFD when the locale was parsed.
func (l *Locale) Encode() ([]byte, error) {
	if l.entries.Len() == 0 {
		return []byte("{}"), nil
	}

	var buf bytes.Buffer
	buf.WriteString("{\n")
	for pair := l.entries.Oldest(); pair != nil; pair = pair.Next() {
		buf.WriteString("  ")
		if err := writeJSONString(&buf, pair.Key); err != nil {
			return nil, err
		}
		buf.WriteString(": ")
		if err := writeJSONString(&buf, pair.Value); err != nil {
			return nil, err
		}
		if pair.Next() != nil {
			buf.WriteByte(',')
		}
		buf.WriteByte('\n')
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeJSONString(buf *bytes.Buffer, s string) error {
	var tmp bytes.Buffer
	enc := json.NewEncoder(&tmp)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return err
	}
	buf.Write(rawLineSeparators(bytes.TrimSuffix(tmp.Bytes(), []byte("\n"))))
	return nil
}

// rawLineSeparators turns the \u2028 and \u2029 escapes emitted by
// encoding/json back into the raw characters. An escaped backslash is
// copied as a pair, so a literal `\\u2028` in the text survives.
func rawLineSeparators(b []byte) []byte {
	if !bytes.Contains(b, []byte(`\u202`)) {
		return b
	}
	out := make([]byte, 0, len(b))
	for i := 0; i < len(b); i++ {
		if b[i] != '\\' || i+1 >= len(b) {
			out = append(out, b[i])
			continue
		}
		switch rest := b[i+1:]; {
		case bytes.HasPrefix(rest, []byte("u2028")):
			out = append(out, "\u2028"...)
			i += 5
		case bytes.HasPrefix(rest, []byte("u2029")):
			out = append(out, "\u2029"...)
			i += 5
		default:
			out = append(out, b[i], b[i+1])
			i++
		}
	}
	return out
}

// LocalePath returns the path of the locale file for lang inside folder.
func LocalePath(folder, lang string) string {
	return filepath.Join(folder, lang+LocaleExt)
}

// LocaleLang returns the language code encoded in a locale file name.
func LocaleLang(path string) string {
	return strings.TrimSuffix(filepath.Base(path), LocaleExt)
}

// LoadLocale reads a locale file. A missing file is an error.
func LoadLocale(path string) (*Locale, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	l, err := ParseLocale(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return l, nil
}

// LoadLocaleOrEmpty reads a locale file, returning an empty locale when the
// file does not exist. existed reports whether the file was found.
func LoadLocaleOrEmpty(path string) (l *Locale, existed bool, err error) {
	l, err = LoadLocale(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return NewLocale(), false, nil
		}
		return nil, false, err
	}
	return l, true, nil
}

// SaveLocale writes l to path.
func SaveLocale(path string, l *Locale) error {
	data, err := l.Encode()
	if err != nil {
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return os.WriteFile(path, data, 0644)
}

// ListLocaleFiles returns the locale files of folder sorted by name.
func ListLocaleFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, err
	}
	var files []string
	for _, e := range entries {
		if e.IsDir() || filepath.Ext(e.Name()) != LocaleExt {
			continue
		}
		files = append(files, filepath.Join(folder, e.Name()))
	}
	sort.Strings(files)
	return files, nil
}
