package polyglot

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DoctorCheck represents the result of checking one part of the locale workspace.
type DoctorCheck struct {
	Name     string `json:"name"`
	Required bool   `json:"required"`
	Path     string `json:"path"`
	Detail   string `json:"detail"`
	OK       bool   `json:"ok"`
}

// RunDoctor inspects the locale folder, the source, baseline and destination
// locales and the README described by cfg.
func RunDoctor(cfg *Config) []DoctorCheck {
	var checks []DoctorCheck

	folder := DoctorCheck{Name: "locale folder", Required: true, Path: cfg.Folder}
	if info, err := os.Stat(cfg.Folder); err != nil {
		folder.Detail = err.Error()
	} else if !info.IsDir() {
		folder.Detail = "not a directory"
	} else {
		folder.OK = true
	}
	checks = append(checks, folder)
	if !folder.OK {
		return checks
	}

	src, srcCheck := checkLocale("source ("+cfg.Source+")", cfg.SourcePath(), true)
	checks = append(checks, srcCheck)
	_, baseCheck := checkLocale("baseline ("+cfg.Baseline+")", cfg.BaselinePath(), true)
	if cfg.Baseline != cfg.Source {
		checks = append(checks, baseCheck)
	}

	for _, lang := range cfg.Destinations {
		path := LocalePath(cfg.Folder, lang)
		l, c := checkLocale("destination ("+lang+")", path, false)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			c.OK = true
			c.Detail = "missing, will be created by sync"
		} else if c.OK && src != nil {
			c.Detail = fmt.Sprintf("%d missing, %d stale", len(MissingKeys(src, l)), len(StaleKeys(src, l)))
		}
		checks = append(checks, c)
	}

	// every other locale file must at least parse
	files, listCheck := listLocales(cfg.Folder)
	if !listCheck.OK {
		checks = append(checks, listCheck)
	}
	known := map[string]bool{cfg.Source: true, cfg.Baseline: true}
	for _, d := range cfg.Destinations {
		known[d] = true
	}
	for _, path := range files {
		lang := LocaleLang(path)
		if known[lang] {
			continue
		}
		l, c := checkLocale("locale ("+lang+")", path, true)
		if c.OK && src != nil {
			c.Detail = fmt.Sprintf("%d keys, %d stale", l.Len(), len(StaleKeys(src, l)))
		}
		checks = append(checks, c)
	}

	checks = append(checks, checkReadme(cfg.Readme))
	return checks
}

func listLocales(folder string) ([]string, DoctorCheck) {
	c := DoctorCheck{Name: "locale files", Required: true, Path: folder}
	files, err := ListLocaleFiles(folder)
	if err != nil {
		c.Detail = err.Error()
		return nil, c
	}
	c.OK = true
	c.Detail = fmt.Sprintf("%d files", len(files))
	return files, c
}

func checkLocale(name, path string, required bool) (*Locale, DoctorCheck) {
	c := DoctorCheck{Name: name, Required: required, Path: path}
	l, err := LoadLocale(path)
	if err != nil {
		c.Detail = err.Error()
		return nil, c
	}
	c.OK = true
	c.Detail = fmt.Sprintf("%d keys", l.Len())
	return l, c
}

func checkReadme(path string) DoctorCheck {
	c := DoctorCheck{Name: filepath.Base(path), Path: path}
	data, err := os.ReadFile(path)
	if err != nil {
		c.Detail = err.Error()
		return c
	}
	if _, err := SpliceReadme(string(data), ""); err != nil {
		c.Detail = fmt.Sprintf("start=%d end=%d markers",
			strings.Count(string(data), TableStartMarker),
			strings.Count(string(data), TableEndMarker))
		return c
	}
	c.OK = true
	c.Detail = "table markers found"
	return c
}

// DoctorOK reports whether every required check passed.
func DoctorOK(checks []DoctorCheck) bool {
	for _, c := range checks {
		if c.Required && !c.OK {
			return false
		}
	}
	return true
}

// FormatDoctorJSON returns the checks as a JSON array string.
func FormatDoctorJSON(checks []DoctorCheck) (string, error) {
	data, err := json.Marshal(checks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
