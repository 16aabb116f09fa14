package meaning

import (
	"path/filepath"
	"testing"

	"github.com/keerthana/hushtone/internal/auth"
	"github.com/keerthana/hushtone/internal/store"
	"github.com/keerthana/hushtone/internal/translate"
)

func newTestResolver(t *testing.T) (*Resolver, *store.Store, *store.User) {
	t.Helper()

	s, err := store.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("store.New() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })

	u := &store.User{Username: "meena", Email: "meena@example.com", PasswordHash: "x"}
	if err := s.Users().Create(u); err != nil {
		t.Fatalf("create user: %v", err)
	}

	return New(s.Meanings(), translate.Default()), s, u
}

func TestResolver_CustomMeaningWinsOverLocale(t *testing.T) {
	r, s, u := newTestResolver(t)
	sub := auth.UserSubject(u.ID)

	m := &store.Meaning{Gesture: "open", Text: "Good morning!", Language: "en", UserID: u.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("create meaning: %v", err)
	}
	if err := s.Meanings().Review(m.ID, store.MeaningApproved, "admin"); err != nil {
		t.Fatalf("approve meaning: %v", err)
	}

	// The approved meaning wins regardless of the locale argument.
	for _, locale := range []string{"en", "hi", "fr", ""} {
		if got := r.Resolve("open", sub, locale); got != "Good morning!" {
			t.Errorf("Resolve(open, user, %q) = %q, want custom meaning", locale, got)
		}
	}
}

func TestResolver_PendingMeaningIgnored(t *testing.T) {
	r, s, u := newTestResolver(t)

	m := &store.Meaning{Gesture: "open", Text: "Good morning!", Language: "en", UserID: u.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("create meaning: %v", err)
	}

	if got := r.Resolve("open", auth.UserSubject(u.ID), "en"); got != "Hello" {
		t.Errorf("Resolve() = %q, want locale fallback while approval is pending", got)
	}
}

func TestResolver_RejectionFallsBackToLocale(t *testing.T) {
	r, s, u := newTestResolver(t)
	sub := auth.UserSubject(u.ID)

	m := &store.Meaning{Gesture: "open", Text: "Good morning!", Language: "en", UserID: u.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("create meaning: %v", err)
	}
	if err := s.Meanings().Review(m.ID, store.MeaningApproved, "admin"); err != nil {
		t.Fatalf("approve meaning: %v", err)
	}
	if err := s.Meanings().Review(m.ID, store.MeaningRejected, "admin"); err != nil {
		t.Fatalf("reject meaning: %v", err)
	}

	if got := r.Resolve("open", sub, "hi"); got != "नमस्ते" {
		t.Errorf("Resolve() = %q, want hi translation after rejection", got)
	}
}

func TestResolver_GuestSkipsCustomTier(t *testing.T) {
	r, s, u := newTestResolver(t)

	m := &store.Meaning{Gesture: "open", Text: "Good morning!", Language: "en", UserID: u.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("create meaning: %v", err)
	}
	if err := s.Meanings().Review(m.ID, store.MeaningApproved, "admin"); err != nil {
		t.Fatalf("approve meaning: %v", err)
	}

	if got := r.Resolve("open", auth.GuestSubject("g1"), "en"); got != "Hello" {
		t.Errorf("Resolve(guest) = %q, custom meanings must not apply to guests", got)
	}
}

func TestResolver_LocaleFallbacks(t *testing.T) {
	r, _, u := newTestResolver(t)
	sub := auth.UserSubject(u.ID)

	// Region-qualified locale collapses to the base language.
	if got := r.Resolve("open", sub, "hi-IN"); got != "नमस्ते" {
		t.Errorf("Resolve(hi-IN) = %q", got)
	}

	// Unsupported locale falls back to the default label.
	if got := r.Resolve("open", sub, "fr"); got != "Hello" {
		t.Errorf("Resolve(fr) = %q, want default label", got)
	}

	// Gestures absent from the locale table fall back to defaults too.
	if got := r.Resolve("number_3", sub, "hi"); got != "3" {
		t.Errorf("Resolve(number_3, hi) = %q, want default label", got)
	}

	// Unknown gesture degrades to the empty string, never an error.
	if got := r.Resolve("no_such_gesture", sub, "en"); got != "" {
		t.Errorf("Resolve(no_such_gesture) = %q, want empty", got)
	}

	if got := r.Resolve("", sub, "en"); got != "" {
		t.Errorf("Resolve(\"\") = %q, want empty", got)
	}
}
