// Package auth provides subject identity, session tokens and password hashing.
package auth

import "github.com/google/uuid"

// SubjectKind distinguishes the two identities that can own gesture events.
type SubjectKind string

const (
	// SubjectUser is a registered user with a durable numeric id.
	SubjectUser SubjectKind = "user"
	// SubjectGuest is an anonymous session identified by an ephemeral token.
	SubjectGuest SubjectKind = "guest"
)

// Subject is the identity a stream of gesture events belongs to. Exactly one
// of UserID/GuestID is meaningful, selected by Kind.
type Subject struct {
	Kind    SubjectKind
	UserID  int64
	GuestID string
}

// UserSubject returns the subject for a registered user id.
func UserSubject(id int64) Subject {
	return Subject{Kind: SubjectUser, UserID: id}
}

// GuestSubject returns the subject for an existing guest token.
func GuestSubject(token string) Subject {
	return Subject{Kind: SubjectGuest, GuestID: token}
}

// NewGuest mints a fresh guest subject with a random token.
func NewGuest() Subject {
	return GuestSubject(uuid.New().String())
}

// IsUser reports whether the subject is a registered user.
func (s Subject) IsUser() bool {
	return s.Kind == SubjectUser && s.UserID != 0
}

// IsGuest reports whether the subject is an anonymous guest.
func (s Subject) IsGuest() bool {
	return s.Kind == SubjectGuest && s.GuestID != ""
}

// IsZero reports whether no subject is set.
func (s Subject) IsZero() bool {
	return !s.IsUser() && !s.IsGuest()
}
