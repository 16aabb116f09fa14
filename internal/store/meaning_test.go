package store

import (
	"errors"
	"testing"
)

func TestMeaningRepository_CreateIsPending(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "meena")

	m := &Meaning{Gesture: "peace", Text: "Victory", Language: "en", UserID: u.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if m.Status != MeaningPending {
		t.Errorf("Status = %q, want pending", m.Status)
	}
	if m.ID == 0 {
		t.Error("expected id to be assigned")
	}

	// Pending submissions never resolve.
	got, err := s.Meanings().LatestApproved("peace", u.ID)
	if err != nil {
		t.Fatalf("LatestApproved() error = %v", err)
	}
	if got != nil {
		t.Errorf("pending meaning resolved: %+v", got)
	}
}

func TestMeaningRepository_ReviewAndLatestApproved(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "meena")

	first := &Meaning{Gesture: "peace", Text: "Victory", Language: "en", UserID: u.ID}
	second := &Meaning{Gesture: "peace", Text: "Harmony", Language: "en", UserID: u.ID}
	for _, m := range []*Meaning{first, second} {
		if err := s.Meanings().Create(m); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	if err := s.Meanings().Review(first.ID, MeaningApproved, "admin"); err != nil {
		t.Fatalf("Review() error = %v", err)
	}
	if err := s.Meanings().Review(second.ID, MeaningApproved, "admin"); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	// The most recent approved submission wins.
	got, err := s.Meanings().LatestApproved("peace", u.ID)
	if err != nil {
		t.Fatalf("LatestApproved() error = %v", err)
	}
	if got == nil || got.Text != "Harmony" {
		t.Fatalf("LatestApproved() = %+v, want Harmony", got)
	}
	if got.ReviewedBy != "admin" {
		t.Errorf("ReviewedBy = %q, want admin", got.ReviewedBy)
	}

	// Re-review overwrites status; a rejected meaning stops resolving.
	if err := s.Meanings().Review(second.ID, MeaningRejected, "admin2"); err != nil {
		t.Fatalf("re-Review() error = %v", err)
	}
	got, err = s.Meanings().LatestApproved("peace", u.ID)
	if err != nil {
		t.Fatalf("LatestApproved() error = %v", err)
	}
	if got == nil || got.Text != "Victory" {
		t.Errorf("LatestApproved() after rejection = %+v, want Victory", got)
	}
}

func TestMeaningRepository_ReviewMissing(t *testing.T) {
	s := newTestStore(t)

	if err := s.Meanings().Review(12345, MeaningApproved, "admin"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestMeaningRepository_ApprovedIsPerUser(t *testing.T) {
	s := newTestStore(t)
	u1 := newTestUser(t, s, "meena")
	u2 := newTestUser(t, s, "arun")

	m := &Meaning{Gesture: "fist", Text: "Wait", Language: "en", UserID: u1.ID}
	if err := s.Meanings().Create(m); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := s.Meanings().Review(m.ID, MeaningApproved, "admin"); err != nil {
		t.Fatalf("Review() error = %v", err)
	}

	got, err := s.Meanings().LatestApproved("fist", u2.ID)
	if err != nil {
		t.Fatalf("LatestApproved() error = %v", err)
	}
	if got != nil {
		t.Errorf("another user's approval leaked: %+v", got)
	}
}

func TestMeaningRepository_Lists(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "meena")

	for _, text := range []string{"one", "two"} {
		if err := s.Meanings().Create(&Meaning{Gesture: "open", Text: text, Language: "en", UserID: u.ID}); err != nil {
			t.Fatalf("Create() error = %v", err)
		}
	}

	mine, err := s.Meanings().ListByUser(u.ID)
	if err != nil {
		t.Fatalf("ListByUser() error = %v", err)
	}
	if len(mine) != 2 || mine[0].Text != "two" {
		t.Errorf("ListByUser() = %d items, first %q; want 2 items newest first", len(mine), mine[0].Text)
	}

	pending, err := s.Meanings().List(MeaningPending)
	if err != nil {
		t.Fatalf("List(pending) error = %v", err)
	}
	if len(pending) != 2 || pending[0].Username != "meena" {
		t.Errorf("List(pending) = %d items, username %q", len(pending), pending[0].Username)
	}

	all, err := s.Meanings().List("")
	if err != nil {
		t.Fatalf("List(all) error = %v", err)
	}
	if len(all) != 2 {
		t.Errorf("List(all) = %d items, want 2", len(all))
	}
}
