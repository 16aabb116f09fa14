// Package meaning resolves gesture ids into user-facing display text.
package meaning

import (
	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/gesture"
	"github.com/keerthana/hushtone/internal/store"
	"github.com/keerthana/hushtone/internal/translate"
)

// Resolver layers three text sources for a gesture: the subject's approved
// custom meaning, the locale translation table, and the built-in default
// label. Resolution is a pure read: it depends only on the arguments and the
// current approval data, never on when the gesture was detected.
type Resolver struct {
	meanings     *store.MeaningRepository
	translations *translate.Table
}

// New creates a Resolver over the given meaning repository and translation
// table. Either may be nil, in which case that tier is skipped.
func New(meanings *store.MeaningRepository, translations *translate.Table) *Resolver {
	return &Resolver{meanings: meanings, translations: translations}
}

// Resolve returns the display text for a gesture id as seen by the subject in
// the requested locale. Unknown gestures and unsupported locales degrade to
// the default label and ultimately to the empty string; Resolve never fails
// the caller over them.
func (r *Resolver) Resolve(gestureID string, sub auth.Subject, locale string) string {
	if gestureID == "" {
		return ""
	}

	if sub.IsUser() && r.meanings != nil {
		m, err := r.meanings.LatestApproved(gestureID, sub.UserID)
		if err == nil && m != nil {
			return m.Text
		}
		// A store error here falls through to the shared tiers.
	}

	if r.translations != nil {
		if text, ok := r.translations.Lookup(locale, gestureID); ok {
			return text
		}
	}

	return gesture.DefaultLabel(gestureID)
}
