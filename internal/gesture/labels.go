package gesture

import (
	"fmt"
	"sort"
	"strings"
)

// AlphabetPrefix marks the letter gesture ids (alphabet_A..alphabet_Z).
// These exist as labels for the submission and suggestion features only;
// Classify never produces them.
const AlphabetPrefix = "alphabet_"

// defaultLabels maps every known gesture id to its built-in display text.
// "ok" is label-only: the rule table has no pattern for it.
var defaultLabels = map[string]string{
	"fist":      "Stop",
	"open":      "Hello",
	"thumbs_up": "Yes",
	"peace":     "Peace",
	"call_me":   "Call me",
	"ok":        "OK",
	"pointing":  "Look here",
	"rock_on":   "Rock on!",
}

// gestureImages maps gesture ids to reference image paths under /static/.
var gestureImages = map[string]string{}

// smartSuggestions offers example words for a subset of the letter gestures.
var smartSuggestions = map[string][]string{
	"A": {"Apple", "Ant", "Airplane"},
	"B": {"Ball", "Banana", "Book"},
	"C": {"Cat", "Car", "Cup"},
	"D": {"Dog", "Door", "Duck"},
	"E": {"Elephant", "Egg", "Eagle"},
}

func init() {
	for i := 0; i <= 5; i++ {
		id := fmt.Sprintf("number_%d", i)
		defaultLabels[id] = fmt.Sprintf("%d", i)
		gestureImages[id] = fmt.Sprintf("numbers/%d.jpg", i)
	}
	for c := 'A'; c <= 'Z'; c++ {
		id := AlphabetPrefix + string(c)
		defaultLabels[id] = string(c)
		gestureImages[id] = fmt.Sprintf("alphabets/%c.jpg", c)
	}
}

// DefaultLabel returns the built-in display text for a gesture id, or the
// empty string for an unknown id.
func DefaultLabel(id string) string {
	return defaultLabels[id]
}

// Known reports whether the gesture id exists in the label table.
func Known(id string) bool {
	_, ok := defaultLabels[id]
	return ok
}

// ImageRef returns the reference image path for a gesture id, or the empty
// string when the gesture has no image.
func ImageRef(id string) string {
	return gestureImages[id]
}

// IsAlphabet reports whether the gesture id is a letter gesture.
func IsAlphabet(id string) bool {
	return strings.HasPrefix(id, AlphabetPrefix)
}

// Suggestions returns the example words for a letter gesture, matching the
// letter case-insensitively. Non-letter gestures get nil.
func Suggestions(id string) []string {
	if !IsAlphabet(id) {
		return nil
	}
	letter := strings.ToUpper(strings.TrimPrefix(id, AlphabetPrefix))
	return smartSuggestions[letter]
}

// Catalog lists every known gesture id in sorted order, for the label API.
func Catalog() []string {
	ids := make([]string, 0, len(defaultLabels))
	for id := range defaultLabels {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
