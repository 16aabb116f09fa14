package store

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/keerthana/hushtone/internal/auth"
)

// newTestStore creates a Store backed by a temp-dir database.
func newTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "test.db")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() {
		s.Close()
	})

	return s
}

// newTestUser inserts a user and returns it.
func newTestUser(t *testing.T, s *Store, username string) *User {
	t.Helper()

	u := &User{
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "x",
	}
	if err := s.Users().Create(u); err != nil {
		t.Fatalf("failed to create user %s: %v", username, err)
	}
	return u
}

func TestUserRepository_CreateAndGet(t *testing.T) {
	s := newTestStore(t)

	u := &User{
		Username:     "meena",
		Email:        "meena@example.com",
		PasswordHash: "hash",
		Name:         "Meena",
		Age:          24,
		City:         "Chennai",
	}
	if err := s.Users().Create(u); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if u.ID == 0 {
		t.Error("expected id to be assigned on create")
	}

	got, err := s.Users().GetByUsername("meena")
	if err != nil {
		t.Fatalf("GetByUsername() error = %v", err)
	}
	if got.Email != u.Email || got.Age != 24 || got.City != "Chennai" {
		t.Errorf("retrieved user mismatch: %+v", got)
	}

	if _, err := s.Users().GetByUsername("nobody"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestUserRepository_DuplicateUsername(t *testing.T) {
	s := newTestStore(t)
	newTestUser(t, s, "meena")

	err := s.Users().Create(&User{Username: "meena", Email: "other@example.com", PasswordHash: "x"})
	if !errors.Is(err, ErrDuplicate) {
		t.Errorf("expected ErrDuplicate for duplicate username, got %v", err)
	}
}

func TestUserRepository_UpdateProfile(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "meena")

	if err := s.Users().UpdateProfile(u.ID, "Meena R", "meena.r@example.com", 25, "Madurai"); err != nil {
		t.Fatalf("UpdateProfile() error = %v", err)
	}

	got, err := s.Users().GetByID(u.ID)
	if err != nil {
		t.Fatalf("GetByID() error = %v", err)
	}
	if got.Name != "Meena R" || got.Age != 25 || got.City != "Madurai" {
		t.Errorf("profile not updated: %+v", got)
	}

	if err := s.Users().UpdateProfile(9999, "x", "x@example.com", 0, ""); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for missing user, got %v", err)
	}
}

func TestUserRepository_Delete(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "meena")

	if err := s.Users().Delete(u.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := s.Users().GetByID(u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}
	if err := s.Users().Delete(u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound for second delete, got %v", err)
	}
}

func TestUserRepository_DeleteWithEvents(t *testing.T) {
	s := newTestStore(t)
	u := newTestUser(t, s, "ravi")
	sub := auth.UserSubject(u.ID)

	for _, gesture := range []string{"fist", "open", "peace"} {
		if err := s.Events().Record(sub, gesture, "x"); err != nil {
			t.Fatalf("Record() error = %v", err)
		}
	}

	if err := s.Users().Delete(u.ID); err != nil {
		t.Fatalf("Delete() of a user with events error = %v", err)
	}
	if _, err := s.Users().GetByID(u.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// The user's history goes with them.
	events, err := s.Events().Recent(sub, 10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events after delete = %d, want 0", len(events))
	}
}
