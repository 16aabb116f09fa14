// Package translate holds the locale translation tables for gesture labels.
package translate

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Table maps a base language code to gesture-id translations. It is loaded
// once at startup and read-only afterwards, so lookups need no locking.
type Table struct {
	languages map[string]map[string]string
}

// builtin covers the languages the original deployment shipped with. A file
// loaded through Load replaces it entirely.
var builtin = map[string]map[string]string{
	"en": {
		"fist":      "Stop",
		"open":      "Hello",
		"thumbs_up": "Yes",
		"peace":     "Peace",
		"call_me":   "Call me",
		"ok":        "OK",
		"pointing":  "Look here",
		"rock_on":   "Rock on!",
	},
	"hi": {
		"fist":      "रुको",
		"open":      "नमस्ते",
		"thumbs_up": "हाँ",
		"peace":     "शांति",
		"call_me":   "मुझे कॉल करो",
		"ok":        "ठीक है",
		"pointing":  "यहाँ देखो",
		"rock_on":   "रॉक ऑन!",
	},
	"ta": {
		"fist":      "நிறுத்து",
		"open":      "வணக்கம்",
		"thumbs_up": "ஆம்",
		"peace":     "அமைதி",
		"call_me":   "என்னை அழை",
		"ok":        "சரி",
		"pointing":  "இங்கே பார்",
		"rock_on":   "ராக் ஆன்!",
	},
	"ml": {
		"fist":      "നിർത്തുക",
		"open":      "നമസ്കാരം",
		"thumbs_up": "അതെ",
		"peace":     "സമാധാനം",
		"call_me":   "എന്നെ വിളിക്കൂ",
		"ok":        "ശരി",
		"pointing":  "ഇവിടെ നോക്കൂ",
		"rock_on":   "റോക്ക് ഓൺ!",
	},
}

// Default returns a table backed by the built-in translations.
func Default() *Table {
	return &Table{languages: builtin}
}

// Load reads a translation file (JSON object of locale -> gesture -> text).
// An empty path returns the built-in table.
func Load(path string) (*Table, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read languages file: %w", err)
	}

	languages := make(map[string]map[string]string)
	if err := json.Unmarshal(data, &languages); err != nil {
		return nil, fmt.Errorf("parse languages file: %w", err)
	}

	return &Table{languages: languages}, nil
}

// Lookup returns the translation of a gesture id for a locale. A
// region-qualified locale such as "en-US" collapses to its base language.
// The second result is false when the locale or gesture is unknown.
func (t *Table) Lookup(locale, gestureID string) (string, bool) {
	lang := NormalizeLocale(locale)

	gestures, ok := t.languages[lang]
	if !ok {
		return "", false
	}

	text, ok := gestures[gestureID]
	return text, ok
}

// Languages lists the locales the table covers.
func (t *Table) Languages() []string {
	langs := make([]string, 0, len(t.languages))
	for lang := range t.languages {
		langs = append(langs, lang)
	}
	return langs
}

// NormalizeLocale truncates a locale at the first region separator,
// so "en-US" and "en_US" both become "en".
func NormalizeLocale(locale string) string {
	if i := strings.IndexAny(locale, "-_"); i >= 0 {
		return locale[:i]
	}
	return locale
}
